package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/aabha-lang/aabhalint/internal/cache"
	"github.com/aabha-lang/aabhalint/internal/cli/config"
	"github.com/aabha-lang/aabhalint/internal/cli/ui"
	"github.com/aabha-lang/aabhalint/internal/fix"
	"github.com/aabha-lang/aabhalint/internal/history"
	"github.com/aabha-lang/aabhalint/internal/lint"
	"github.com/aabha-lang/aabhalint/internal/lint/rules"
	"github.com/aabha-lang/aabhalint/internal/report"
	"github.com/aabha-lang/aabhalint/internal/utils"
)

var (
	lintFormat string
	lintFix    bool
	lintFailOn string
	lintCache  bool
)

// NewLintCommand creates the lint command
func NewLintCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint decorator metadata in Aabha sources",
		Long: `Lint the decorator metadata on class declarations in .aabha files.

Paths may name files or directories; directories are walked recursively.
With no paths, the configured include list is linted (default: the
current directory).

The lint process:
  1. Scan and parse each file
  2. Extract one metadata record per decorator
  3. Evaluate every applicable rule against every record
  4. Report findings, worst first`,
		Example: `  # Lint the current project
  aabhalint lint

  # Lint specific files or trees
  aabhalint lint src/orders contexts/billing.aabha

  # Emit JSON for CI tooling
  aabhalint lint --format json

  # Apply safe fixes, then report what remains
  aabhalint lint --fix

  # Treat suggestions as failures too
  aabhalint lint --fail-on suggestion`,
		RunE: runLint,
	}

	cmd.Flags().StringVar(&lintFormat, "format", "", "Output format: text, json, or json-compact")
	cmd.Flags().BoolVar(&lintFix, "fix", false, "Apply safe fixes before reporting")
	cmd.Flags().StringVar(&lintFailOn, "fail-on", "problem", "Exit non-zero on: problem, suggestion, or never")
	cmd.Flags().BoolVar(&lintCache, "cache", true, "Reuse cached results for unchanged files")

	return cmd
}

func runLint(cmd *cobra.Command, args []string) error {
	start := time.Now()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	plain := noColor || cfg.Output.NoColor

	warnUnknownRules(cmd.ErrOrStderr(), cfg, plain)

	files, err := collectFiles(cfg, args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .aabha files found")
	}

	runner, closeCache, err := newRunner(cfg, lintCache)
	if err != nil {
		return err
	}
	defer closeCache()

	results, err := runner.Run(cmd.Context(), files)
	if err != nil {
		return err
	}

	if lintFix {
		if _, err := applyFixes(runner.Engine(), results); err != nil {
			return err
		}
		// Re-lint so the report shows what the fixes left behind
		results, err = runner.Run(cmd.Context(), files)
		if err != nil {
			return err
		}
	}

	format := lintFormat
	if format == "" {
		format = cfg.Output.Format
	}
	reporter, err := report.New(format, plain)
	if err != nil {
		return err
	}
	if err := reporter.Report(cmd.OutOrStdout(), results); err != nil {
		return err
	}

	summary := report.Summarize(results)

	if summary.Internal > 0 {
		ui.PrintWarning(cmd.ErrOrStderr(),
			fmt.Sprintf("%d rule %s did not complete; findings may be incomplete",
				summary.Internal, ui.Plural(summary.Internal, "evaluation")), plain)
	}

	if cfg.History.Enabled {
		if err := recordRun(cmd.Context(), cfg, start, results, summary); err != nil {
			// History is bookkeeping; a failed write never fails the lint
			ui.PrintWarning(cmd.ErrOrStderr(), fmt.Sprintf("history not recorded: %v", err), plain)
		}
	}

	return failOn(lintFailOn, summary)
}

// collectFiles expands the lint targets into .aabha files, honoring the
// configured excludes. Explicit command-line paths win over the config's
// include list.
func collectFiles(cfg *config.Config, args []string) ([]string, error) {
	paths := args
	if len(paths) == 0 {
		paths = cfg.Include
	}

	files, err := utils.FindAabhaFiles(paths...)
	if err != nil {
		return nil, err
	}

	kept := files[:0]
	for _, file := range files {
		if !cfg.Excluded(file) {
			kept = append(kept, file)
		}
	}
	return kept, nil
}

// newRunner wires the engine, result cache, and worker pool from
// configuration. The returned cleanup closes the cache backend.
func newRunner(cfg *config.Config, useCache bool) (*lint.Runner, func(), error) {
	engine := lint.NewEngine(rules.All, cfg.RuleOverrides())

	runnerConfig := lint.RunnerConfig{
		Workers:  cfg.Lint.Workers,
		CacheTTL: cfg.Cache.TTL,
	}

	cleanup := func() {}
	if useCache {
		backend, err := cache.New(cfg.Cache.Backend, cfg.Cache.RedisAddr, cache.Config{
			DefaultTTL: cfg.Cache.TTL,
			Prefix:     cfg.Cache.Prefix,
		})
		if err != nil {
			return nil, nil, err
		}
		if backend != nil {
			runnerConfig.Cache = backend
			if closer, ok := backend.(io.Closer); ok {
				cleanup = func() { _ = closer.Close() }
			}
		}
	}

	return lint.NewRunner(engine, runnerConfig), cleanup, nil
}

// warnUnknownRules flags config entries naming no registered rule, with a
// "did you mean" when the name is a near miss.
func warnUnknownRules(w io.Writer, cfg *config.Config, plain bool) {
	names := make([]string, 0, len(cfg.Rules))
	for name := range cfg.Rules {
		if rules.ByID(name) == nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		message := fmt.Sprintf("config references unknown rule %q", name)
		if suggestions := ui.Suggest(name, rules.IDs()); len(suggestions) > 0 {
			message += fmt.Sprintf(" (did you mean %s?)", suggestions[0])
		}
		ui.PrintWarning(w, message, plain)
	}
}

// maxFixPasses bounds the lint-fix cycle per file. A fix skipped for
// overlap is regenerated against the updated source on the next pass, so
// a healthy file settles in two or three; the bound only cuts off rules
// whose fixes keep reintroducing each other's findings.
const maxFixPasses = 10

// applyFixes rewrites every file whose diagnostics carry fixes and returns
// the outcome per changed file. Files modified since the lint pass are
// skipped: their byte offsets no longer line up.
func applyFixes(engine *lint.Engine, results []*lint.FileResult) (map[string]*fix.Result, error) {
	applied := make(map[string]*fix.Result)

	for _, result := range results {
		if result.FixableCount() == 0 {
			continue
		}

		source, err := os.ReadFile(result.File)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", result.File, err)
		}
		if lint.Checksum(string(source)) != result.Checksum {
			continue
		}

		outcome := fixFile(engine, result.File, source, result.Diagnostics)
		if !outcome.Changed() {
			continue
		}

		if err := os.WriteFile(result.File, outcome.Output, 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", result.File, err)
		}
		applied[result.File] = outcome
	}

	return applied, nil
}

// fixFile applies one file's fixes to a fixpoint, re-linting between
// passes so edits skipped for overlap get another chance against the
// updated source. The returned result merges the applied edits of every
// pass but keeps only the last pass's skips: earlier skips were retried.
func fixFile(engine *lint.Engine, file string, source []byte, diagnostics []lint.Diagnostic) *fix.Result {
	merged := &fix.Result{Output: source}

	for pass := 0; pass < maxFixPasses; pass++ {
		outcome := fix.Apply(merged.Output, diagnostics)
		merged.Output = outcome.Output
		merged.Applied = append(merged.Applied, outcome.Applied...)
		merged.Skipped = outcome.Skipped

		if !outcome.Changed() {
			break
		}
		diagnostics = engine.LintSource(file, string(merged.Output)).Diagnostics
	}

	return merged
}

// recordRun persists one lint pass to the configured history store
func recordRun(ctx context.Context, cfg *config.Config, start time.Time, results []*lint.FileResult, summary report.Summary) error {
	db, err := history.Open(cfg.History.Driver, cfg.History.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	store := history.NewStore(db)
	if err := store.Migrate(ctx); err != nil {
		return err
	}

	run := &history.Run{
		StartedAt:    start,
		Duration:     time.Since(start).Milliseconds(),
		Files:        summary.Files,
		Problems:     summary.Problems,
		Suggestions:  summary.Suggestions,
		Fixable:      summary.Fixable,
		SyntaxErrors: summary.SyntaxErrors,
	}
	return store.RecordRun(ctx, run, results)
}

// failOn translates the summary into the command's exit status. Syntax
// errors count as problems: a file the linter cannot read is never clean.
func failOn(threshold string, summary report.Summary) error {
	problems := summary.Problems + summary.SyntaxErrors

	switch threshold {
	case "problem", "":
		if problems > 0 {
			return fmt.Errorf("%d %s found", problems, ui.Plural(problems, "problem"))
		}
	case "suggestion":
		if total := problems + summary.Suggestions; total > 0 {
			return fmt.Errorf("%d %s found", total, ui.Plural(total, "finding"))
		}
	case "never":
	default:
		return fmt.Errorf("unknown --fail-on value %q (expected problem, suggestion, or never)", threshold)
	}
	return nil
}
