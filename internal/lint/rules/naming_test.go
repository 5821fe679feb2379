package rules

import (
	"strings"
	"testing"

	"github.com/aabha-lang/aabhalint/internal/lint"
)

func TestDeclarationName(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			"pascal case",
			"@Persona({ goals: ['shop'] })\nclass BranchCustomer {}",
			nil,
		},
		{
			"snake case",
			"@Persona({ goals: ['shop'] })\nclass branch_customer {}",
			[]string{"preferPascalCase"},
		},
		{
			"lower camel",
			"@Persona({ goals: ['shop'] })\nclass branchCustomer {}",
			[]string{"preferPascalCase"},
		},
		{
			"digits allowed",
			"@Persona({ goals: ['shop'] })\nclass Customer360 {}",
			nil,
		},
		{
			"no pascal rendering",
			"@Persona({ goals: ['shop'] })\nclass _ {}",
			[]string{"invalidName"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := lintSource(t, tt.source)
			expectMessages(t, diagnosticsFor(result, "declaration-name"), tt.want...)
		})
	}
}

func TestDeclarationNameReportedOncePerClass(t *testing.T) {
	// Several annotations, one class: the name is reported once, anchored
	// at the first recognized decorator.
	source := `@Context({ description: 'Order intake and fulfillment for retail.' })
@Witness({ observes: OrderLog, evidence: ['log'] })
class order_intake {}`

	result := lintSource(t, source)

	diags := diagnosticsFor(result, "declaration-name")
	if len(diags) != 1 {
		t.Fatalf("diags = %v", diags)
	}
	if !strings.HasPrefix(source[diags[0].Location.Start:], "@Context") {
		t.Errorf("anchored at %q", source[diags[0].Location.Start:diags[0].Location.End])
	}
}

func TestDeclarationNameSkippedWhenPrecededByUnknownDecorator(t *testing.T) {
	// Unknown decorators are invisible: the first recognized one anchors
	source := `@Cached
@Persona({ goals: ['shop'] })
class branch_customer {}`

	result := lintSource(t, source)
	expectMessages(t, diagnosticsFor(result, "declaration-name"), "preferPascalCase")
}

func TestDeclarationNameSuggestsPascalRendering(t *testing.T) {
	result := lintSource(t, "@Persona({ goals: ['shop'] })\nclass branch_customer {}")

	diags := diagnosticsFor(result, "declaration-name")
	expectMessages(t, diags, "preferPascalCase")
	if diags[0].Data["suggestion"] != "BranchCustomer" {
		t.Errorf("suggestion = %q", diags[0].Data["suggestion"])
	}
	if !strings.Contains(diags[0].Message, "BranchCustomer") {
		t.Errorf("message = %q", diags[0].Message)
	}
}

func TestDeclarationNamePatternOption(t *testing.T) {
	engine := lint.NewEngine(All, map[string]lint.RuleOverride{
		"declaration-name": {Options: lint.Options{"pattern": `^[a-z_]+$`}},
	})

	result := engine.LintSource("test.aabha", "@Persona({ goals: ['shop'] })\nclass branch_customer {}")
	expectMessages(t, diagnosticsFor(result, "declaration-name"))

	result = engine.LintSource("test.aabha", "@Persona({ goals: ['shop'] })\nclass BranchCustomer {}")
	expectMessages(t, diagnosticsFor(result, "declaration-name"), "invalidName")
}

func TestDeclarationNameBadPatternFallsBack(t *testing.T) {
	engine := lint.NewEngine(All, map[string]lint.RuleOverride{
		"declaration-name": {Options: lint.Options{"pattern": `[unclosed`}},
	})

	result := engine.LintSource("test.aabha", "@Persona({ goals: ['shop'] })\nclass BranchCustomer {}")
	expectMessages(t, diagnosticsFor(result, "declaration-name"))

	result = engine.LintSource("test.aabha", "@Persona({ goals: ['shop'] })\nclass branch_customer {}")
	diags := diagnosticsFor(result, "declaration-name")
	expectMessages(t, diags, "preferPascalCase")
	if diags[0].Data["suggestion"] != "BranchCustomer" {
		t.Errorf("fallback should behave like the default pattern, got %v", diags[0].Data)
	}
}

func TestDescriptionLength(t *testing.T) {
	longText := strings.Repeat("very long words ", 40) // over 500 characters

	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			"within bounds",
			"@Journey({ persona: Shopper, stages: ['browse'], description: 'A shopper finds and buys a product.' })\nclass Checkout {}",
			nil,
		},
		{
			"too short",
			"@Journey({ persona: Shopper, stages: ['browse'], description: 'shopping' })\nclass Checkout {}",
			[]string{"shortDescription"},
		},
		{
			"too long",
			"@Journey({ persona: Shopper, stages: ['browse'], description: '" + longText + "' })\nclass Checkout {}",
			[]string{"longDescription"},
		},
		{
			"absent is fine",
			"@Journey({ persona: Shopper, stages: ['browse'] })\nclass Checkout {}",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := lintSource(t, tt.source)
			expectMessages(t, diagnosticsFor(result, "description-length"), tt.want...)
		})
	}
}

func TestDescriptionLengthDoesNotCoverContexts(t *testing.T) {
	// @Context descriptions belong to context-description, which owns the
	// stricter minimum.
	source := "@Context({ description: 'Order intake and fulfillment for retail teams.' })\nclass Orders {}"
	result := lintSource(t, source)
	expectMessages(t, diagnosticsFor(result, "description-length"))
}

func TestDescriptionLengthBoundsOptions(t *testing.T) {
	engine := lint.NewEngine(All, map[string]lint.RuleOverride{
		"description-length": {Options: lint.Options{"min": 2, "max": 10}},
	})

	result := engine.LintSource("test.aabha",
		"@Journey({ persona: Shopper, stages: ['browse'], description: 'way past the ten character cap' })\nclass Checkout {}")
	expectMessages(t, diagnosticsFor(result, "description-length"), "longDescription")
}
