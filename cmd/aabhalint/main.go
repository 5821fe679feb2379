package main

import (
	"os"

	"github.com/aabha-lang/aabhalint/internal/cli/commands"
)

// Version information - set at build time via -ldflags
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	if version != "dev" {
		commands.Version = version
	}
	if gitCommit != "unknown" {
		commands.GitCommit = gitCommit
	}
	if buildDate != "unknown" {
		commands.BuildDate = buildDate
	}

	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
