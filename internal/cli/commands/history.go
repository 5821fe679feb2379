package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/aabha-lang/aabhalint/internal/cli/config"
	"github.com/aabha-lang/aabhalint/internal/cli/ui"
	"github.com/aabha-lang/aabhalint/internal/history"
)

// NewHistoryCommand creates the history command group
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded lint runs",
		Long: `Inspect lint runs recorded by 'aabhalint lint' when history is
enabled in the configuration. Runs carry their summary counts and every
diagnostic, so trends survive across branches and machines.`,
	}

	cmd.AddCommand(newHistoryListCommand())
	cmd.AddCommand(newHistoryShowCommand())
	cmd.AddCommand(newHistoryStatsCommand())
	cmd.AddCommand(newHistoryPruneCommand())

	return cmd
}

func newHistoryListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent lint runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, plain, err := openHistory(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				ui.PrintHint(cmd.OutOrStdout(), "no runs recorded yet; enable history in .aabhalint.yml and lint", plain)
				return nil
			}

			table := ui.NewTable(cmd.OutOrStdout(),
				[]string{"RUN", "STARTED", "DURATION", "FILES", "PROBLEMS", "SUGGESTIONS", "FIXABLE", "SYNTAX"}, plain)
			for _, run := range runs {
				table.AddRow(
					shortID(run.ID),
					run.StartedAt.Format("2006-01-02 15:04:05"),
					fmt.Sprintf("%dms", run.Duration),
					fmt.Sprintf("%d", run.Files),
					fmt.Sprintf("%d", run.Problems),
					fmt.Sprintf("%d", run.Suggestions),
					fmt.Sprintf("%d", run.Fixable),
					fmt.Sprintf("%d", run.SyntaxErrors),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")

	return cmd
}

func newHistoryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run with its diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, plain, err := openHistory(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := resolveRunID(cmd.Context(), store, args[0])
			if err != nil {
				return err
			}

			run, err := store.GetRun(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ui.Header(out, fmt.Sprintf("Run %s", shortID(run.ID)), plain)

			summary := ui.NewKeyValueTable(out, plain)
			summary.AddRow("Started", run.StartedAt.Format("2006-01-02 15:04:05"))
			summary.AddRow("Duration", fmt.Sprintf("%dms", run.Duration))
			summary.AddRow("Files", fmt.Sprintf("%d", run.Files))
			summary.AddRow("Problems", fmt.Sprintf("%d", run.Problems))
			summary.AddRow("Suggestions", fmt.Sprintf("%d", run.Suggestions))
			summary.AddRow("Fixable", fmt.Sprintf("%d", run.Fixable))
			summary.AddRow("Syntax errors", fmt.Sprintf("%d", run.SyntaxErrors))
			summary.Render()

			diagnostics, err := store.RunDiagnostics(cmd.Context(), id)
			if err != nil {
				return err
			}
			if len(diagnostics) == 0 {
				return nil
			}

			fmt.Fprintln(out)
			table := ui.NewTable(out, []string{"FILE", "POS", "SEVERITY", "RULE", "MESSAGE"}, plain)
			for _, diag := range diagnostics {
				table.AddRow(
					diag.Location.File,
					fmt.Sprintf("%d:%d", diag.Location.Line, diag.Location.Column),
					string(diag.Severity),
					diag.RuleID,
					diag.Message,
				)
			}
			table.Render()
			return nil
		},
	}
}

func newHistoryStatsCommand() *cobra.Command {
	var since time.Duration

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count findings per rule across recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, plain, err := openHistory(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			stats, err := store.RuleStats(cmd.Context(), time.Now().Add(-since))
			if err != nil {
				return err
			}
			if len(stats) == 0 {
				ui.PrintHint(cmd.OutOrStdout(), "no findings in the selected window", plain)
				return nil
			}

			table := ui.NewTable(cmd.OutOrStdout(), []string{"RULE", "FINDINGS"}, plain)
			for _, stat := range stats {
				table.AddRow(stat.RuleID, fmt.Sprintf("%d", stat.Count))
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().DurationVar(&since, "since", 30*24*time.Hour, "Only count runs newer than this")

	return cmd
}

func newHistoryPruneCommand() *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete runs older than a cutoff",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, plain, err := openHistory(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			removed, err := store.Purge(cmd.Context(), olderThan)
			if err != nil {
				return err
			}

			ui.PrintSuccess(cmd.OutOrStdout(),
				fmt.Sprintf("Removed %d %s", removed, ui.Plural(int(removed), "run")), plain)
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 90*24*time.Hour, "Delete runs older than this")

	return cmd
}

// openHistory opens the configured history store and ensures the schema
// exists. History commands work even when recording is disabled: an
// existing database is still worth querying.
func openHistory(ctx context.Context) (*history.Store, func(), bool, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, false, err
	}
	plain := noColor || cfg.Output.NoColor

	db, err := history.Open(cfg.History.Driver, cfg.History.DSN)
	if err != nil {
		return nil, nil, plain, err
	}

	store := history.NewStore(db)
	if err := store.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, plain, err
	}

	return store, func() { db.Close() }, plain, nil
}

// resolveRunID accepts a full run UUID or a unique prefix of one
func resolveRunID(ctx context.Context, store *history.Store, arg string) (uuid.UUID, error) {
	if id, err := uuid.Parse(arg); err == nil {
		return id, nil
	}

	runs, err := store.ListRuns(ctx, 1000)
	if err != nil {
		return uuid.Nil, err
	}

	prefix := strings.ToLower(arg)
	var matches []uuid.UUID
	for _, run := range runs {
		if strings.HasPrefix(run.ID.String(), prefix) {
			matches = append(matches, run.ID)
		}
	}

	switch len(matches) {
	case 0:
		return uuid.Nil, fmt.Errorf("no run matches %q", arg)
	case 1:
		return matches[0], nil
	default:
		return uuid.Nil, fmt.Errorf("%q matches %d runs; use more characters", arg, len(matches))
	}
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
