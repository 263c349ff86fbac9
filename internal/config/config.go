package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the config file at the root of a ledger directory.
const FileName = "ledgerview.yaml"

// Config represents the top-level ledgerview.yaml configuration.
type Config struct {
	School      SchoolConfig      `yaml:"school"`
	Dataset     DatasetConfig     `yaml:"dataset"`
	Reporting   ReportingConfig   `yaml:"reporting"`
	Receivables ReceivablesConfig `yaml:"receivables"`
	Log         LogConfig         `yaml:"log"`
	Server      ServerConfig      `yaml:"server"`
	Git         GitConfig         `yaml:"git"`
}

// SchoolConfig identifies the institution the books belong to.
type SchoolConfig struct {
	Name                string `yaml:"name"`
	CurrentAcademicYear string `yaml:"current_academic_year,omitempty"`
}

// DatasetConfig locates the ledger files, relative to the ledger root.
type DatasetConfig struct {
	Accounts string `yaml:"accounts"`
	Journal  string `yaml:"journal"`
	Records  string `yaml:"records"`
}

// ReportingConfig controls statement computation.
type ReportingConfig struct {
	InvalidDates       string   `yaml:"invalid_dates"`   // "now" or "exclude"
	OpeningBalance     string   `yaml:"opening_balance"` // "caller" or "history"
	CashTags           []string `yaml:"cash_tags"`
	FixedAssetSubTypes []string `yaml:"fixed_asset_subtypes"`
}

// ReceivablesConfig lists the invoice statuses the AR summary counts and
// the ones it treats as void.
type ReceivablesConfig struct {
	ApprovedStatuses []string `yaml:"approved_statuses"`
	VoidStatuses     []string `yaml:"void_statuses"`
}

// LogConfig selects the logger mode: debug, production or quiet.
type LogConfig struct {
	Mode string `yaml:"mode"`
}

// ServerConfig controls the HTTP API. CORS is off unless AllowedOrigins
// is set.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// GitConfig names the author of ledger snapshots committed by init --git.
type GitConfig struct {
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a ledgerview.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new ledger.
func Default(schoolName string) *Config {
	return &Config{
		School: SchoolConfig{Name: schoolName},
		Dataset: DatasetConfig{
			Accounts: "accounts/chart-of-accounts.csv",
			Journal:  "journal/journal.csv",
			Records:  "records",
		},
		Reporting: ReportingConfig{
			InvalidDates:       "now",
			OpeningBalance:     "caller",
			CashTags:           []string{"CASH", "BANK"},
			FixedAssetSubTypes: []string{"FIXED"},
		},
		Receivables: ReceivablesConfig{
			ApprovedStatuses: []string{"APPROVED", "POSTED", "PAID", "PARTIALLY_PAID", "PARTIAL"},
			VoidStatuses:     []string{"VOID", "VOIDED", "CANCELLED", "CANCELED"},
		},
		Log:    LogConfig{Mode: "production"},
		Server: ServerConfig{Addr: ":8080"},
		Git: GitConfig{
			AuthorName:  "Ledgerview",
			AuthorEmail: "ledgerview@localhost",
		},
	}
}

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LEDGERVIEW_"

// ApplyEnv overlays LEDGERVIEW_* environment variables onto cfg. When
// envFile is non-empty it is loaded first; variables already set in the
// environment win over the file. A missing file is not an error.
func ApplyEnv(cfg *Config, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}
	}
	setString(&cfg.School.Name, "SCHOOL_NAME")
	setString(&cfg.School.CurrentAcademicYear, "ACADEMIC_YEAR")
	setString(&cfg.Dataset.Accounts, "ACCOUNTS")
	setString(&cfg.Dataset.Journal, "JOURNAL")
	setString(&cfg.Dataset.Records, "RECORDS")
	setString(&cfg.Reporting.InvalidDates, "INVALID_DATES")
	setString(&cfg.Reporting.OpeningBalance, "OPENING_BALANCE")
	setList(&cfg.Reporting.CashTags, "CASH_TAGS")
	setList(&cfg.Reporting.FixedAssetSubTypes, "FIXED_ASSET_SUBTYPES")
	setList(&cfg.Receivables.ApprovedStatuses, "APPROVED_STATUSES")
	setList(&cfg.Receivables.VoidStatuses, "VOID_STATUSES")
	setString(&cfg.Log.Mode, "LOG_MODE")
	setString(&cfg.Server.Addr, "ADDR")
	setList(&cfg.Server.AllowedOrigins, "ALLOWED_ORIGINS")
	return nil
}

func getEnv(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(EnvPrefix + key))
	return v, v != ""
}

func setString(dst *string, key string) {
	if v, ok := getEnv(key); ok {
		*dst = v
	}
}

// setList splits a comma-separated value.
func setList(dst *[]string, key string) {
	v, ok := getEnv(key)
	if !ok {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	*dst = out
}
