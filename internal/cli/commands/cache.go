package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aabha-lang/aabhalint/internal/cache"
	"github.com/aabha-lang/aabhalint/internal/cli/config"
	"github.com/aabha-lang/aabhalint/internal/cli/ui"
)

// NewCacheCommand creates the cache command group
func NewCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the lint result cache",
		Long: `Manage the cache of lint results keyed by source checksum. The memory
backend lives inside one process; the redis backend shares results
across processes and machines.`,
	}

	cmd.AddCommand(newCacheClearCommand())
	cmd.AddCommand(newCacheStatsCommand())

	return cmd
}

func newCacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop every cached lint result",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			plain := noColor || cfg.Output.NoColor

			backend, err := openCache(cfg)
			if err != nil {
				return err
			}
			if backend == nil {
				ui.PrintHint(cmd.OutOrStdout(), "caching is disabled; nothing to clear", plain)
				return nil
			}
			defer closeCacheBackend(backend)

			if err := backend.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}

			ui.PrintSuccess(cmd.OutOrStdout(), "Cache cleared", plain)
			return nil
		},
	}
}

func newCacheStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the configured cache backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			plain := noColor || cfg.Output.NoColor

			table := ui.NewKeyValueTable(cmd.OutOrStdout(), plain)
			backendName := cfg.Cache.Backend
			if backendName == "" {
				backendName = "memory"
			}
			table.AddRow("Backend", backendName)
			if backendName == "redis" {
				table.AddRow("Address", cfg.Cache.RedisAddr)
			}
			table.AddRow("TTL", cfg.Cache.TTL.String())
			table.AddRow("Prefix", cfg.Cache.Prefix)
			table.AddRow("Status", cacheStatus(cmd, cfg))
			table.Render()
			return nil
		},
	}
}

// cacheStatus probes the backend so a dead Redis shows up here instead of
// as silent cache misses during lint
func cacheStatus(cmd *cobra.Command, cfg *config.Config) string {
	backend, err := openCache(cfg)
	if err != nil {
		return fmt.Sprintf("unreachable (%v)", err)
	}
	if backend == nil {
		return "disabled"
	}
	defer closeCacheBackend(backend)

	if _, err := backend.Exists(cmd.Context(), "probe"); err != nil {
		return fmt.Sprintf("unreachable (%v)", err)
	}
	return "ok"
}

func openCache(cfg *config.Config) (cache.Cache, error) {
	return cache.New(cfg.Cache.Backend, cfg.Cache.RedisAddr, cache.Config{
		DefaultTTL: cfg.Cache.TTL,
		Prefix:     cfg.Cache.Prefix,
	})
}

func closeCacheBackend(backend cache.Cache) {
	if closer, ok := backend.(io.Closer); ok {
		_ = closer.Close()
	}
}
