package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aabha-lang/aabhalint/internal/cli/config"
	"github.com/aabha-lang/aabhalint/internal/lint"
	"github.com/aabha-lang/aabhalint/internal/lint/rules"
	"github.com/aabha-lang/aabhalint/internal/lsp"
)

// NewLSPCommand creates the LSP command
func NewLSPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start the aabhalint Language Server Protocol (LSP) server.

The server lints open documents and publishes metadata diagnostics on
open, change, and save. It communicates via JSON-RPC over stdin/stdout
and is typically started automatically by your editor.`,
		RunE: runLSP,
	}
}

func runLSP(cmd *cobra.Command, args []string) error {
	// A broken config must not take the editor integration down with it;
	// fall back to registry defaults and say so on stderr.
	var overrides map[string]lint.RuleOverride
	if cfg, err := config.Load(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "aabhalint lsp: config ignored: %v\n", err)
	} else {
		overrides = cfg.RuleOverrides()
	}

	server := lsp.NewServer(lint.NewEngine(rules.All, overrides))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	return server.Run(ctx)
}
