package commands

import (
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aabha-lang/aabhalint/internal/cli/config"
	"github.com/aabha-lang/aabhalint/internal/cli/ui"
	"github.com/aabha-lang/aabhalint/internal/format"
	"github.com/aabha-lang/aabhalint/internal/lint"
)

var (
	fixDiff    bool
	fixUnified bool
)

// NewFixCommand creates the fix command
func NewFixCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Apply safe fixes to Aabha sources",
		Long: `Lint the given paths and rewrite files in place wherever a finding
carries a fix. Fixes are byte-range edits produced by the rules
themselves; overlapping edits are resolved deterministically and the
losers are skipped for the next pass.

Only a subset of findings is fixable. Run 'aabhalint lint' afterwards to
see what remains.`,
		Example: `  # Fix everything under the current directory
  aabhalint fix

  # Fix one tree
  aabhalint fix src/contexts

  # Preview the rewrites without touching any file
  aabhalint fix --diff

  # Pipeable patch form
  aabhalint fix --diff --unified > fixes.patch`,
		RunE: runFix,
	}

	cmd.Flags().BoolVar(&fixDiff, "diff", false, "Preview the rewrites as a diff instead of writing files")
	cmd.Flags().BoolVar(&fixUnified, "unified", false, "With --diff, print unified patches instead of the line diff")

	return cmd
}

func runFix(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	plain := noColor || cfg.Output.NoColor

	files, err := collectFiles(cfg, args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .aabha files found")
	}

	spinner := ui.NewSpinner(cmd.ErrOrStderr(),
		fmt.Sprintf("Linting %d %s", len(files), ui.Plural(len(files), "file")), plain)
	spinner.Start()

	runner, closeCache, err := newRunner(cfg, true)
	if err != nil {
		spinner.Stop()
		return err
	}
	defer closeCache()

	results, err := runner.Run(cmd.Context(), files)
	if err != nil {
		spinner.Stop()
		return err
	}

	if fixDiff || fixUnified {
		spinner.Stop()
		return previewFixes(cmd, runner.Engine(), results, plain)
	}

	spinner.UpdateMessage("Applying fixes")
	applied, err := applyFixes(runner.Engine(), results)
	if err != nil {
		spinner.Error("fix failed")
		return err
	}

	if len(applied) == 0 {
		spinner.Success("Nothing to fix")
		return nil
	}

	edits := 0
	for _, outcome := range applied {
		edits += len(outcome.Applied)
	}
	spinner.Success(fmt.Sprintf("Applied %d %s across %d %s",
		edits, ui.Plural(edits, "edit"), len(applied), ui.Plural(len(applied), "file")))

	out := cmd.OutOrStdout()
	names := make([]string, 0, len(applied))
	for name := range applied {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		outcome := applied[name]
		fmt.Fprintf(out, "  %s\n", name)
		for _, edit := range outcome.Applied {
			fmt.Fprintf(out, "    %s (%s) at %d..%d\n", edit.RuleID, edit.MessageID, edit.Start, edit.End)
		}
		for _, skip := range outcome.Skipped {
			ui.PrintHint(out, fmt.Sprintf("skipped %s: %s", skip.RuleID, skip.Reason), plain)
		}
	}

	ui.PrintHint(out, "run 'aabhalint lint' to see remaining findings", plain)
	return nil
}

// previewFixes renders the would-be rewrites without touching any file.
// Files are diffed against the same fixpoint output the write path would
// produce, so the preview is exact.
func previewFixes(cmd *cobra.Command, engine *lint.Engine, results []*lint.FileResult, plain bool) error {
	out := cmd.OutOrStdout()
	fileColor := color.New(color.Bold, color.Underline)
	if plain {
		fileColor.DisableColor()
	}

	changed := 0
	for _, result := range results {
		if result.FixableCount() == 0 {
			continue
		}

		source, err := os.ReadFile(result.File)
		if err != nil {
			return fmt.Errorf("reading %s: %w", result.File, err)
		}
		if lint.Checksum(string(source)) != result.Checksum {
			continue
		}

		outcome := fixFile(engine, result.File, source, result.Diagnostics)
		if !outcome.Changed() {
			continue
		}
		changed++

		diff := format.Diff(string(source), string(outcome.Output))
		if fixUnified {
			fmt.Fprint(out, diff.Unified(result.File))
			continue
		}

		fileColor.Fprintf(out, "%s", result.File)
		fmt.Fprintf(out, "  (%s)\n", diff.Stats())
		fmt.Fprint(out, diff.Terminal(plain))
		fmt.Fprintln(out)
	}

	if changed == 0 {
		ui.PrintSuccess(cmd.ErrOrStderr(), "Nothing to fix", plain)
		return nil
	}
	if !fixUnified {
		ui.PrintHint(out, fmt.Sprintf("%d %s would change; run 'aabhalint fix' to apply",
			changed, ui.Plural(changed, "file")), plain)
	}
	return nil
}
