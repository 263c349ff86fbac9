package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/ledgerview/internal/buildinfo"
)

// globalFlags are shared by every subcommand that reads a ledger.
type globalFlags struct {
	root       string
	configPath string
	envFile    string
	logMode    string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var g globalFlags

	rootCmd := &cobra.Command{
		Use:     "ledgerview",
		Short:   "Financial statements for school ledgers",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&g.root, "root", ".", "ledger directory")
	pf.StringVar(&g.configPath, "config", "", "config file (default <root>/ledgerview.yaml)")
	pf.StringVar(&g.envFile, "env-file", ".env", "dotenv file with LEDGERVIEW_* overrides")
	pf.StringVar(&g.logMode, "log-mode", "", "debug, production or quiet (overrides config)")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newReportCommand(&g))
	rootCmd.AddCommand(newValidateCommand(&g))
	rootCmd.AddCommand(newServeCommand(&g))

	return rootCmd
}
