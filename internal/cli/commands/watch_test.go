package commands

import (
	"testing"
)

func TestNewWatchCommand(t *testing.T) {
	cmd := NewWatchCommand()

	if cmd.Use != "watch [paths...]" {
		t.Errorf("expected Use to be 'watch [paths...]', got %s", cmd.Use)
	}

	flag := cmd.Flags().Lookup("dashboard")
	if flag == nil {
		t.Fatal("expected --dashboard to be registered")
	}
	if flag.DefValue != "false" {
		t.Errorf("--dashboard default = %q, want false", flag.DefValue)
	}
}

func TestNewLSPCommand(t *testing.T) {
	cmd := NewLSPCommand()

	if cmd.Use != "lsp" {
		t.Errorf("expected Use to be 'lsp', got %s", cmd.Use)
	}
	if cmd.RunE == nil {
		t.Error("lsp command RunE function is nil")
	}
}
