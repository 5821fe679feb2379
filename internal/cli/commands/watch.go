package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aabha-lang/aabhalint/internal/cli/config"
	"github.com/aabha-lang/aabhalint/internal/report"
	"github.com/aabha-lang/aabhalint/internal/watch"
)

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	var dashboard bool

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Re-lint Aabha sources as they change",
		Long: `Watch the given paths and re-lint files as they are saved. Changes
are debounced so one editor save triggers one pass, and results for
unchanged files come from the cache.

With --dashboard, a local web page shows live results for the whole
watched tree, updated over a websocket after every pass.`,
		Example: `  # Watch the current project
  aabhalint watch

  # Watch one tree with the browser dashboard
  aabhalint watch src/contexts --dashboard`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			plain := noColor || cfg.Output.NoColor

			warnUnknownRules(cmd.ErrOrStderr(), cfg, plain)

			paths := args
			if len(paths) == 0 {
				paths = cfg.Include
			}

			runner, closeCache, err := newRunner(cfg, true)
			if err != nil {
				return err
			}
			defer closeCache()

			reporter, err := report.New(cfg.Output.Format, plain)
			if err != nil {
				return err
			}

			port := 0
			if dashboard {
				port = cfg.Watch.DashboardPort
			}

			session, err := watch.NewSession(watch.SessionConfig{
				Paths:         paths,
				Runner:        runner,
				Reporter:      reporter,
				Out:           cmd.OutOrStdout(),
				Debounce:      cfg.Watch.Debounce,
				DashboardPort: port,
			})
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-sigChan
				cancel()
			}()

			return session.Run(ctx)
		},
	}

	cmd.Flags().BoolVar(&dashboard, "dashboard", false, "Serve a live results dashboard")

	return cmd
}
