package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cleared-dev/ledgerview/internal/anomalylog"
	"github.com/cleared-dev/ledgerview/internal/journal"
)

func newValidateCommand(g *globalFlags) *cobra.Command {
	var record bool
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the chart of accounts and journal entries for problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.load()
			if err != nil {
				return err
			}
			defer func() { _ = e.logger.Sync() }()

			in, err := e.loadInputs()
			if err != nil {
				return err
			}

			rep := journal.Validate(in.Entries, in.Accounts)
			rep.Errors = append(journal.ValidateChart(in.Accounts), rep.Errors...)
			out := cmd.OutOrStdout()
			for _, ve := range rep.Errors {
				fmt.Fprintln(out, ve.Error())
			}
			fmt.Fprintf(out, "%d entries checked, %d unbalanced, %d problems\n",
				len(in.Entries), len(rep.Unbalanced), len(rep.Errors))

			if record {
				entries := anomalylog.FromReport(rep, time.Now())
				if err := anomalylog.Append(e.root, entries); err != nil {
					return err
				}
				e.logger.Info("anomalies recorded", zap.Int("count", len(entries)))
			}
			if strict && len(rep.Errors) > 0 {
				return fmt.Errorf("validation failed with %d problems", len(rep.Errors))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&record, "record", false, "append findings to logs/anomalies.csv")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error when problems are found")

	return cmd
}
