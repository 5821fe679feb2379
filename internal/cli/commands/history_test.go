package commands

import (
	"testing"
)

func TestNewHistoryCommand(t *testing.T) {
	cmd := NewHistoryCommand()

	for _, expected := range []string{"list", "show", "stats", "prune"} {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == expected {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected subcommand %s to be registered", expected)
		}
	}
}

func TestHistoryListFlags(t *testing.T) {
	cmd := newHistoryListCommand()

	flag := cmd.Flags().Lookup("limit")
	if flag == nil {
		t.Fatal("expected --limit to be registered")
	}
	if flag.DefValue != "20" {
		t.Errorf("--limit default = %q, want 20", flag.DefValue)
	}
}

func TestHistoryPruneFlags(t *testing.T) {
	cmd := newHistoryPruneCommand()

	flag := cmd.Flags().Lookup("older-than")
	if flag == nil {
		t.Fatal("expected --older-than to be registered")
	}
	if flag.DefValue != "2160h0m0s" {
		t.Errorf("--older-than default = %q, want 2160h0m0s", flag.DefValue)
	}
}
