package rules

import (
	"testing"

	"github.com/aabha-lang/aabhalint/internal/lint"
)

func TestContextDescription(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			"good description",
			"@Context({ description: 'Everyday banking products for retail customers.' })\nclass C {}",
			nil,
		},
		{
			"missing",
			"@Context({ name: 'Retail' })\nclass C {}",
			[]string{"missingDescription"},
		},
		{
			"empty",
			"@Context({ description: '' })\nclass C {}",
			[]string{"emptyDescription"},
		},
		{
			"whitespace only",
			"@Context({ description: '   ' })\nclass C {}",
			[]string{"emptyDescription"},
		},
		{
			"too short",
			"@Context({ description: 'too brief' })\nclass C {}",
			[]string{"shortDescription"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := lintSource(t, tt.source)
			expectMessages(t, diagnosticsFor(result, "context-description"), tt.want...)
		})
	}
}

func TestContextDescriptionFixes(t *testing.T) {
	result := lintSource(t, "@Context({ name: 'Retail' })\nclass C {}")

	diags := diagnosticsFor(result, "context-description")
	if len(diags) != 1 || !diags[0].HasFix() {
		t.Fatalf("expected one fixable finding, got %v", diags)
	}
}

// The placeholder has to satisfy the default minimum length, or the fix
// would leave a shortDescription finding behind.
func TestContextDescriptionPlaceholderLength(t *testing.T) {
	if len(descriptionPlaceholder) < 20 {
		t.Errorf("placeholder is %d characters", len(descriptionPlaceholder))
	}
}

func TestContextDescriptionMinLengthOption(t *testing.T) {
	source := "@Context({ description: 'Everyday banking products.' })\nclass C {}"

	// Clean at the default threshold
	result := lintSource(t, source)
	expectMessages(t, diagnosticsFor(result, "context-description"))

	// Flagged when the project raises the bar
	engine := lint.NewEngine(All, map[string]lint.RuleOverride{
		"context-description": {Options: lint.Options{"minLength": 60}},
	})
	strict := engine.LintSource("test.aabha", source)
	expectMessages(t, diagnosticsFor(strict, "context-description"), "shortDescription")
}

func TestContextLayerPattern(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			"matched pair",
			"@Context({ layer: 'domain', pattern: 'aggregate' })\nclass C {}",
			nil,
		},
		{
			"neither declared",
			"@Context({ name: 'Orders' })\nclass C {}",
			nil,
		},
		{
			"layer alone",
			"@Context({ layer: 'process' })\nclass C {}",
			nil,
		},
		{
			"pattern alone",
			"@Context({ pattern: 'saga' })\nclass C {}",
			nil,
		},
		{
			"unknown layer",
			"@Context({ layer: 'cosmic' })\nclass C {}",
			[]string{"invalidLayer"},
		},
		{
			"unknown pattern",
			"@Context({ pattern: 'freeform' })\nclass C {}",
			[]string{"invalidPattern"},
		},
		{
			"mismatched pair",
			"@Context({ layer: 'domain', pattern: 'workflow' })\nclass C {}",
			[]string{"mismatchedPattern"},
		},
		{
			"both unknown",
			"@Context({ layer: 'cosmic', pattern: 'freeform' })\nclass C {}",
			[]string{"invalidLayer", "invalidPattern"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := lintSource(t, tt.source)
			expectMessages(t, diagnosticsFor(result, "context-layer-pattern"), tt.want...)
		})
	}
}

func TestContextLayerPatternMessageData(t *testing.T) {
	result := lintSource(t, "@Context({ layer: 'domain', pattern: 'workflow' })\nclass Orders {}")

	diags := diagnosticsFor(result, "context-layer-pattern")
	if len(diags) != 1 {
		t.Fatalf("diags = %v", diags)
	}

	data := diags[0].Data
	if data["pattern"] != "workflow" || data["layer"] != "domain" {
		t.Errorf("data = %v", data)
	}
	if data["expected"] != "aggregate, policy, event-stream" {
		t.Errorf("expected = %q", data["expected"])
	}
}

func TestLayerPatternTableIsClosed(t *testing.T) {
	// Every pattern must belong to exactly one layer
	owners := make(map[string]string)
	for layer, patterns := range layerPatterns {
		for _, pattern := range patterns {
			if prior, clash := owners[pattern]; clash {
				t.Errorf("pattern %q claimed by %q and %q", pattern, prior, layer)
			}
			owners[pattern] = layer
		}
	}
	if _, ok := layerPatterns["domain"]; !ok {
		t.Error("domain layer missing from the table")
	}
}
