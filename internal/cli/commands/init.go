package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/aabha-lang/aabhalint/internal/cli/ui"
	"github.com/aabha-lang/aabhalint/internal/presets"
)

const configFileName = ".aabhalint.yml"

var initPreset string

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a .aabhalint.yml interactively",
		Long: `Walk through the common settings and write a .aabhalint.yml into the
current directory. Every answer can be changed later by editing the
file; rules are tuned there too.

With --preset the file is written without prompting, using the named
rule preset and default settings for everything else.`,
		Example: `  aabhalint init
  aabhalint init --preset strict`,
		RunE: runInit,
	}

	cmd.Flags().StringVar(&initPreset, "preset", "", "Write the named rule preset without prompting (recommended, strict, relaxed)")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	registry, err := presets.Builtin()
	if err != nil {
		return err
	}

	if initPreset != "" {
		return runInitPreset(cmd, registry)
	}

	if _, err := os.Stat(configFileName); err == nil {
		overwrite := false
		prompt := &survey.Confirm{
			Message: fmt.Sprintf("%s already exists. Overwrite?", configFileName),
			Default: false,
		}
		if err := survey.AskOne(prompt, &overwrite); err != nil {
			return err
		}
		if !overwrite {
			return nil
		}
	}

	var format string
	if err := survey.AskOne(&survey.Select{
		Message: "Default output format:",
		Options: []string{"text", "json"},
		Default: "text",
	}, &format); err != nil {
		return err
	}

	var backend string
	if err := survey.AskOne(&survey.Select{
		Message: "Result cache backend:",
		Options: []string{"memory", "redis", "off"},
		Default: "memory",
	}, &backend); err != nil {
		return err
	}

	redisAddr := ""
	if backend == "redis" {
		if err := survey.AskOne(&survey.Input{
			Message: "Redis address:",
			Default: "localhost:6379",
		}, &redisAddr, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}

	recordHistory := false
	if err := survey.AskOne(&survey.Confirm{
		Message: "Record run history?",
		Default: false,
	}, &recordHistory); err != nil {
		return err
	}

	driver := ""
	dsn := ""
	if recordHistory {
		if err := survey.AskOne(&survey.Select{
			Message: "History database:",
			Options: []string{"sqlite3", "postgres"},
			Default: "sqlite3",
		}, &driver); err != nil {
			return err
		}
		if driver == "postgres" {
			if err := survey.AskOne(&survey.Input{
				Message: "Postgres connection string:",
			}, &dsn, survey.WithValidator(survey.Required)); err != nil {
				return err
			}
		}
	}

	presetName := "recommended"
	if err := survey.AskOne(&survey.Select{
		Message: "Rule preset:",
		Options: registry.Names(),
		Default: "recommended",
		Description: func(value string, _ int) string {
			if preset, err := registry.Get(value); err == nil {
				return preset.Description
			}
			return ""
		},
	}, &presetName); err != nil {
		return err
	}
	preset, err := registry.Get(presetName)
	if err != nil {
		return err
	}

	content := renderConfig(format, backend, redisAddr, recordHistory, driver, dsn, preset)
	if err := os.WriteFile(configFileName, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configFileName, err)
	}

	ui.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Wrote %s", configFileName), noColor)
	ui.PrintHint(cmd.OutOrStdout(), "run 'aabhalint rules' to see what can be tuned", noColor)
	return nil
}

// runInitPreset writes the config non-interactively. It refuses to clobber
// an existing file: with no prompt there is no overwrite confirmation.
func runInitPreset(cmd *cobra.Command, registry *presets.Registry) error {
	preset, err := registry.Get(initPreset)
	if err != nil {
		return fmt.Errorf("unknown preset %q (available: %s)", initPreset, strings.Join(registry.Names(), ", "))
	}

	if _, err := os.Stat(configFileName); err == nil {
		return fmt.Errorf("%s already exists; remove it first or run 'aabhalint init' without --preset", configFileName)
	}

	content := renderConfig("text", "memory", "", false, "", "", preset)
	if err := os.WriteFile(configFileName, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configFileName, err)
	}

	ui.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Wrote %s with the %s preset", configFileName, preset.Name), noColor)
	ui.PrintHint(cmd.OutOrStdout(), "run 'aabhalint rules' to see what can be tuned", noColor)
	return nil
}

// renderConfig writes the YAML by hand so the file keeps its comments;
// a marshaler would strip them.
func renderConfig(format, backend, redisAddr string, recordHistory bool, driver, dsn string, preset *presets.Preset) string {
	var b strings.Builder

	b.WriteString("# aabhalint configuration\n")
	b.WriteString("# Linted paths when the command line names none.\n")
	b.WriteString("include:\n  - .\n\n")
	b.WriteString("# Glob patterns to skip, matched against paths and base names.\n")
	b.WriteString("# exclude:\n#   - \"*_generated.aabha\"\n\n")

	b.WriteString("output:\n")
	fmt.Fprintf(&b, "  format: %s\n\n", format)

	b.WriteString("cache:\n")
	fmt.Fprintf(&b, "  backend: %s\n", backend)
	if redisAddr != "" {
		fmt.Fprintf(&b, "  redis_addr: %s\n", redisAddr)
	}
	b.WriteString("\n")

	if recordHistory {
		b.WriteString("history:\n")
		b.WriteString("  enabled: true\n")
		fmt.Fprintf(&b, "  driver: %s\n", driver)
		if dsn != "" {
			fmt.Fprintf(&b, "  dsn: %s\n", dsn)
		}
		b.WriteString("\n")
	}

	b.WriteString(preset.RenderRules())

	return b.String()
}
