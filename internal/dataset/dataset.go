// Package dataset loads a ledger directory: the chart-of-accounts CSV, the
// journal CSV and any raw record files, normalized into model types.
package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/ledgerview/internal/accounts"
	"github.com/cleared-dev/ledgerview/internal/canon"
	"github.com/cleared-dev/ledgerview/internal/journal"
	"github.com/cleared-dev/ledgerview/internal/model"
)

// Paths locate the dataset files relative to the ledger root.
type Paths struct {
	Accounts string
	Journal  string
	Records  string
}

// DefaultPaths returns the standard ledger layout.
func DefaultPaths() Paths {
	return Paths{Accounts: accounts.ChartPath, Journal: journal.Path, Records: "records"}
}

// Record file base names under the records directory.
const (
	AccountsRecords = "accounts"
	EntriesRecords  = "entries"
	InvoicesRecords = "invoices"
	StudentsRecords = "students"
	GradesRecords   = "grades"
	FeeHeadRecords  = "fee-heads"
)

var recordExts = []string{".yaml", ".yml", ".json"}

// Skipped counts raw records the adapter could not resolve.
type Skipped struct {
	Accounts int `json:"accounts"`
	Entries  int `json:"entries"`
	Lines    int `json:"lines"`
	Invoices int `json:"invoices"`
	Students int `json:"students"`
	Grades   int `json:"grades"`
	FeeHeads int `json:"feeHeads"`
}

// Total sums every counter.
func (s Skipped) Total() int {
	return s.Accounts + s.Entries + s.Lines + s.Invoices + s.Students + s.Grades + s.FeeHeads
}

// Dataset is everything the statements are computed from.
type Dataset struct {
	Root     string
	Accounts []model.Account
	Entries  []model.JournalEntry
	Invoices []model.Invoice
	Students []model.Student
	Grades   []model.Grade
	FeeHeads []model.FeeHead
	Skipped  Skipped
}

// Directory builds the account directory. Record accounts come after CSV
// accounts and so replace CSV accounts with the same id.
func (d *Dataset) Directory() *accounts.Directory {
	return accounts.NewDirectory(d.Accounts)
}

// Loader reads datasets.
type Loader struct {
	paths  Paths
	logger *zap.Logger
}

// NewLoader returns a loader for paths. Empty paths fall back to
// DefaultPaths; a nil logger is replaced by a no-op one.
func NewLoader(paths Paths, logger *zap.Logger) *Loader {
	def := DefaultPaths()
	if paths.Accounts == "" {
		paths.Accounts = def.Accounts
	}
	if paths.Journal == "" {
		paths.Journal = def.Journal
	}
	if paths.Records == "" {
		paths.Records = def.Records
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{paths: paths, logger: logger}
}

// Load reads the dataset under root. Missing files are empty; malformed
// files are errors; records the adapter cannot resolve are counted in
// Dataset.Skipped.
func (l *Loader) Load(root string) (*Dataset, error) {
	ds := &Dataset{Root: root}

	accts, err := readAccountsCSV(filepath.Join(root, l.paths.Accounts))
	if err != nil {
		return nil, err
	}
	ds.Accounts = accts

	entries, err := readJournalCSV(filepath.Join(root, l.paths.Journal))
	if err != nil {
		return nil, err
	}
	ds.Entries = entries

	if err := l.loadRecords(ds, filepath.Join(root, l.paths.Records)); err != nil {
		return nil, err
	}

	l.logger.Info("dataset loaded",
		zap.String("root", root),
		zap.Int("accounts", len(ds.Accounts)),
		zap.Int("entries", len(ds.Entries)),
		zap.Int("invoices", len(ds.Invoices)),
		zap.Int("students", len(ds.Students)),
	)
	if n := ds.Skipped.Total(); n > 0 {
		l.logger.Warn("unresolvable records skipped",
			zap.Int("total", n),
			zap.Int("accounts", ds.Skipped.Accounts),
			zap.Int("entries", ds.Skipped.Entries),
			zap.Int("lines", ds.Skipped.Lines),
			zap.Int("invoices", ds.Skipped.Invoices),
			zap.Int("students", ds.Skipped.Students),
			zap.Int("grades", ds.Skipped.Grades),
			zap.Int("fee_heads", ds.Skipped.FeeHeads),
		)
	}
	return ds, nil
}

func readAccountsCSV(path string) ([]model.Account, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	accts, err := accounts.ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return accts, nil
}

func readJournalCSV(path string) ([]model.JournalEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	entries, err := journal.ReadEntries(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return entries, nil
}

func (l *Loader) loadRecords(ds *Dataset, dir string) error {
	load := func(name string, each func(canon.Record)) error {
		recs, err := ReadRecords(dir, name)
		if err != nil {
			return err
		}
		for _, r := range recs {
			each(r)
		}
		return nil
	}

	steps := []struct {
		name string
		each func(canon.Record)
	}{
		{AccountsRecords, func(r canon.Record) {
			if a, ok := canon.Account(r); ok {
				ds.Accounts = append(ds.Accounts, a)
			} else {
				ds.Skipped.Accounts++
			}
		}},
		{EntriesRecords, func(r canon.Record) {
			e, dropped, ok := canon.Entry(r)
			if !ok {
				ds.Skipped.Entries++
				return
			}
			ds.Skipped.Lines += dropped
			ds.Entries = append(ds.Entries, e)
		}},
		{InvoicesRecords, func(r canon.Record) {
			if inv, ok := canon.Invoice(r); ok {
				ds.Invoices = append(ds.Invoices, inv)
			} else {
				ds.Skipped.Invoices++
			}
		}},
		{StudentsRecords, func(r canon.Record) {
			if s, ok := canon.Student(r); ok {
				ds.Students = append(ds.Students, s)
			} else {
				ds.Skipped.Students++
			}
		}},
		{GradesRecords, func(r canon.Record) {
			if g, ok := canon.Grade(r); ok {
				ds.Grades = append(ds.Grades, g)
			} else {
				ds.Skipped.Grades++
			}
		}},
		{FeeHeadRecords, func(r canon.Record) {
			if f, ok := canon.FeeHead(r); ok {
				ds.FeeHeads = append(ds.FeeHeads, f)
			} else {
				ds.Skipped.FeeHeads++
			}
		}},
	}
	for _, s := range steps {
		if err := load(s.name, s.each); err != nil {
			return err
		}
	}
	return nil
}

// ReadRecords decodes <dir>/<name>.yaml, .yml or .json, whichever exists
// first. The document is either a list of records or a mapping holding the
// list under name, "data", "items" or "records". A missing file yields no
// records. Elements that are not mappings are dropped.
func ReadRecords(dir, name string) ([]canon.Record, error) {
	var path string
	for _, ext := range recordExts {
		p := filepath.Join(dir, name+ext)
		if _, err := os.Stat(p); err == nil {
			path = p
			break
		}
	}
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	list, err := recordList(doc, name)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	var out []canon.Record
	for _, el := range list {
		if m, ok := el.(map[string]any); ok {
			out = append(out, canon.Record(m))
		}
	}
	return out, nil
}

var errNotAList = errors.New("expected a list of records")

func recordList(doc any, name string) ([]any, error) {
	switch x := doc.(type) {
	case nil:
		return nil, nil
	case []any:
		return x, nil
	case map[string]any:
		for _, k := range []string{name, strings.ReplaceAll(name, "-", "_"), "data", "items", "records"} {
			if list, ok := x[k].([]any); ok {
				return list, nil
			}
		}
	}
	return nil, errNotAList
}
