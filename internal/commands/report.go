package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/ledgerview/internal/gitops"
	"github.com/cleared-dev/ledgerview/internal/reports"
)

// Output formats of the report command.
const (
	FormatJSON    = "json"
	FormatSummary = "summary"
)

func newReportCommand(g *globalFlags) *cobra.Command {
	var p reports.Params
	var format string

	cmd := &cobra.Command{
		Use:   "report <kind>... | all",
		Short: "Build financial statements from the ledger",
		Long: "Build one or more statements. Kinds: " + joinKinds() + ".\n" +
			"Several kinds, or \"all\", are built concurrently.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := parseKinds(args)
			if err != nil {
				return err
			}
			if format != FormatJSON && format != FormatSummary {
				return fmt.Errorf("unknown format %q", format)
			}
			req, err := p.Request()
			if err != nil {
				return err
			}

			e, err := g.load()
			if err != nil {
				return err
			}
			defer func() { _ = e.logger.Sync() }()

			in, err := e.loadInputs()
			if err != nil {
				return err
			}
			results, err := reports.NewEngine(in, e.logger).BuildAll(cmd.Context(), kinds, req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == FormatSummary {
				return writeSummary(out, revision(e.root), results)
			}
			return writeJSON(out, results)
		},
	}

	f := cmd.Flags()
	f.StringVar(&p.From, "from", "", "first day of the period (YYYY-MM-DD)")
	f.StringVar(&p.To, "to", "", "last day of the period (YYYY-MM-DD)")
	f.StringVar(&p.Source, "source", "", "only entries whose source contains this text")
	f.StringVar(&p.Account, "account", "", "account id (required by general-ledger)")
	f.StringVar(&p.Year, "year", "", "academic year id (ar-summary defaults to school.current_academic_year)")
	f.StringVar(&p.Level, "level", "all", "trial balance accounts: all, main or sub")
	f.StringVar(&p.AsOf, "as-of", "", "balance sheet date (defaults to --to)")
	f.BoolVar(&p.ShowZero, "show-zero", false, "list balance sheet accounts with a zero balance")
	f.StringVar(&p.Opening, "opening", "", "general ledger opening balance")
	f.StringVarP(&format, "format", "o", FormatJSON, "output format: json or summary")

	return cmd
}

func joinKinds() string {
	names := make([]string, len(reports.Kinds))
	for i, k := range reports.Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// parseKinds expands "all" and rejects duplicates.
func parseKinds(args []string) ([]reports.Kind, error) {
	if len(args) == 1 && strings.EqualFold(args[0], "all") {
		return reports.Kinds, nil
	}
	seen := make(map[reports.Kind]bool)
	var kinds []reports.Kind
	for _, a := range args {
		k, err := reports.ParseKind(a)
		if err != nil {
			return nil, err
		}
		if seen[k] {
			return nil, fmt.Errorf("report %s requested twice", k)
		}
		seen[k] = true
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// writeJSON prints a single result as is and several as an object keyed by
// report kind.
func writeJSON(w io.Writer, results []reports.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(results) == 1 {
		return enc.Encode(results[0])
	}
	byKind := make(map[reports.Kind]reports.Result, len(results))
	for _, r := range results {
		byKind[r.ReportKind()] = r
	}
	return enc.Encode(byKind)
}

func writeSummary(w io.Writer, rev string, results []reports.Result) error {
	if rev != "" {
		fmt.Fprintf(w, "ledger revision %s\n", rev)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "REPORT\tDATA\tMISSING REFS\tUNBALANCED\tUNDATED")
	for _, r := range results {
		an := r.Issues()
		data := "yes"
		if r.Empty() {
			data = "no"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\n", r.ReportKind(), data,
			an.MissingAccountRefs, len(an.UnbalancedEntries), len(an.UndatedEntries))
	}
	return tw.Flush()
}

// revision names the ledger commit when root is a git repository.
func revision(root string) string {
	if !gitops.IsRepo(root) {
		return ""
	}
	rev, err := gitops.Revision(root)
	if err != nil {
		return ""
	}
	return rev
}
