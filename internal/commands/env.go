package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/cleared-dev/ledgerview/internal/config"
	"github.com/cleared-dev/ledgerview/internal/dataset"
	"github.com/cleared-dev/ledgerview/internal/filter"
	"github.com/cleared-dev/ledgerview/internal/ledger"
	"github.com/cleared-dev/ledgerview/internal/logging"
	"github.com/cleared-dev/ledgerview/internal/reports"
)

// env is the resolved runtime of one command invocation.
type env struct {
	root   string
	cfg    *config.Config
	logger *zap.Logger
}

// load resolves the ledger root, config and logger. A missing config file
// is fine unless --config named it explicitly.
func (g *globalFlags) load() (*env, error) {
	root, err := filepath.Abs(g.root)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	path := g.configPath
	if path == "" {
		path = filepath.Join(root, config.FileName)
	}
	cfg := config.Default("")
	if _, statErr := os.Stat(path); statErr == nil || g.configPath != "" {
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if err := config.ApplyEnv(cfg, g.envFile); err != nil {
		return nil, err
	}

	mode := cfg.Log.Mode
	if g.logMode != "" {
		mode = g.logMode
	}
	logger, err := logging.New(mode)
	if err != nil {
		return nil, err
	}
	return &env{root: root, cfg: cfg, logger: logger}, nil
}

// loadInputs reads the dataset and pairs it with the configured options.
func (e *env) loadInputs() (reports.Inputs, error) {
	opts, err := reportOptions(e.cfg)
	if err != nil {
		return reports.Inputs{}, err
	}
	paths := dataset.Paths{
		Accounts: e.cfg.Dataset.Accounts,
		Journal:  e.cfg.Dataset.Journal,
		Records:  e.cfg.Dataset.Records,
	}
	ds, err := dataset.NewLoader(paths, e.logger).Load(e.root)
	if err != nil {
		return reports.Inputs{}, err
	}
	return reports.Inputs{
		Accounts: ds.Directory(),
		Entries:  ds.Entries,
		Invoices: ds.Invoices,
		Students: ds.Students,
		Grades:   ds.Grades,
		FeeHeads: ds.FeeHeads,
		Options:  opts,
	}, nil
}

// reportOptions maps the reporting and receivables sections onto builder
// options. Empty lists keep the defaults.
func reportOptions(cfg *config.Config) (reports.Options, error) {
	opts := reports.DefaultOptions()

	policy, err := filter.ParseDatePolicy(cfg.Reporting.InvalidDates)
	if err != nil {
		return opts, fmt.Errorf("reporting.invalid_dates: %w", err)
	}
	opts.Filter.DatePolicy = policy

	if opts.Opening, err = reports.ParseOpeningMode(cfg.Reporting.OpeningBalance); err != nil {
		return opts, fmt.Errorf("reporting.opening_balance: %w", err)
	}

	cls := ledger.DefaultClassifier()
	if len(cfg.Reporting.CashTags) > 0 {
		cls.CashTags = cfg.Reporting.CashTags
	}
	if len(cfg.Reporting.FixedAssetSubTypes) > 0 {
		cls.FixedSubTypes = cfg.Reporting.FixedAssetSubTypes
	}
	opts.Classifier = cls

	if len(cfg.Receivables.ApprovedStatuses) > 0 {
		opts.Receivables.ApprovedStatuses = cfg.Receivables.ApprovedStatuses
	}
	if len(cfg.Receivables.VoidStatuses) > 0 {
		opts.Receivables.VoidStatuses = cfg.Receivables.VoidStatuses
	}
	opts.Receivables.CurrentAcademicYear = cfg.School.CurrentAcademicYear
	return opts, nil
}
