// Package commands wires the aabhalint CLI. Each command loads its own
// configuration so that subcommands stay independently testable.
package commands

import (
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aabha-lang/aabhalint/internal/cli/ui"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// Persistent flags shared by every subcommand
var (
	configPath string
	noColor    bool
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "aabhalint",
		Short: "Metadata linter for Aabha sources",
		Long: color.CyanString(`Aabhalint - metadata linter for the Aabha language

Aabhalint inspects the decorator metadata attached to class declarations
(@Context, @Metric, @Journey and friends) and flags records missing the
fields reviewers keep asking for.

Features:
  • Presence, emptiness and consistency checks per decorator kind
  • Safe byte-range fixes for a subset of findings
  • Watch mode with a live browser dashboard
  • LSP server for in-editor diagnostics
  • Recorded run history for trend tracking`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: .aabhalint.yml in the current directory)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	// Add subcommands
	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewLintCommand())
	rootCmd.AddCommand(NewFixCommand())
	rootCmd.AddCommand(NewRulesCommand())
	rootCmd.AddCommand(NewDocsCommand())
	rootCmd.AddCommand(NewWatchCommand())
	rootCmd.AddCommand(NewLSPCommand())
	rootCmd.AddCommand(NewHistoryCommand())
	rootCmd.AddCommand(NewCacheCommand())
	rootCmd.AddCommand(NewInitCommand())

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the aabhalint version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			// Fall back to the runtime when not set at build time
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			table := ui.NewKeyValueTable(cmd.OutOrStdout(), noColor)
			table.AddRow("Version", Version)
			table.AddRow("Git commit", GitCommit)
			table.AddRow("Build date", BuildDate)
			table.AddRow("Go version", goVer)
			table.Render()
		},
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
