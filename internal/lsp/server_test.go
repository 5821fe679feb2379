package lsp

import (
	"testing"

	"go.lsp.dev/protocol"

	"github.com/aabha-lang/aabhalint/internal/lint"
	"github.com/aabha-lang/aabhalint/internal/lint/rules"
	"github.com/aabha-lang/aabhalint/internal/tooling"
)

func TestServerInitialization(t *testing.T) {
	server := NewServer(lint.NewEngine(rules.All, nil))
	if server == nil {
		t.Fatal("NewServer() returned nil")
	}

	if server.api == nil {
		t.Error("Server API is nil")
	}

	if server.logger == nil {
		t.Error("Server logger is nil")
	}

	caps := server.capabilities
	if caps.CompletionProvider == nil {
		t.Fatal("CompletionProvider is nil")
	}
	if len(caps.CompletionProvider.TriggerCharacters) == 0 {
		t.Error("CompletionProvider has no trigger characters")
	}

	if caps.HoverProvider != true {
		t.Error("HoverProvider should be true")
	}

	if caps.DocumentSymbolProvider != true {
		t.Error("DocumentSymbolProvider should be true")
	}

	if caps.CodeActionProvider == nil {
		t.Error("CodeActionProvider is nil")
	}
}

func TestConvertSeverity(t *testing.T) {
	tests := []struct {
		name     string
		input    tooling.DiagnosticSeverity
		expected protocol.DiagnosticSeverity
	}{
		{
			name:     "Error severity",
			input:    tooling.DiagnosticSeverityError,
			expected: protocol.DiagnosticSeverityError,
		},
		{
			name:     "Warning severity",
			input:    tooling.DiagnosticSeverityWarning,
			expected: protocol.DiagnosticSeverityWarning,
		},
		{
			name:     "Information severity",
			input:    tooling.DiagnosticSeverityInformation,
			expected: protocol.DiagnosticSeverityInformation,
		},
		{
			name:     "Hint severity",
			input:    tooling.DiagnosticSeverityHint,
			expected: protocol.DiagnosticSeverityHint,
		},
		{
			name:     "Unknown severity falls back to error",
			input:    tooling.DiagnosticSeverity(99),
			expected: protocol.DiagnosticSeverityError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := convertSeverity(tt.input)
			if result != tt.expected {
				t.Errorf("convertSeverity(%v): expected %v, got %v", tt.input, tt.expected, result)
			}
		})
	}
}

func TestConvertRange(t *testing.T) {
	rng := convertRange(tooling.Range{
		Start: tooling.Position{Line: 2, Character: 4},
		End:   tooling.Position{Line: 2, Character: 16},
	})

	if rng.Start.Line != 2 || rng.Start.Character != 4 {
		t.Errorf("start = %+v, want 2:4", rng.Start)
	}
	if rng.End.Line != 2 || rng.End.Character != 16 {
		t.Errorf("end = %+v, want 2:16", rng.End)
	}
}

func TestStdRWC(t *testing.T) {
	// Test that stdrwc struct exists and implements expected methods
	rwc := stdrwc{}

	_ = rwc.Read
	_ = rwc.Write
	_ = rwc.Close
}
