package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aabha-lang/aabhalint/internal/lint"
	"github.com/aabha-lang/aabhalint/internal/meta"
)

// descriptionPlaceholder is long enough to satisfy the default minimum
// length, so applying the fix leaves nothing for the rule to report.
const descriptionPlaceholder = "TODO: describe the business purpose of this context."

var contextDescription = &lint.Rule{
	ID:          "context-description",
	Description: "require a meaningful description on every @Context",
	Kinds:       []string{meta.KindContext},
	Severity:    lint.SeverityProblem,
	Fixable:     true,
	Messages: map[string]string{
		"missingDescription": "@{{kind}} on class '{{class}}' is missing a 'description' field",
		"emptyDescription":   "'description' on @{{kind}} '{{class}}' is empty",
		"shortDescription":   "'description' on @{{kind}} '{{class}}' is too short ({{length}} characters, minimum {{min}})",
	},
	Check: lint.All(
		lint.RequireStringFix("description", "missingDescription", "emptyDescription", descriptionPlaceholder),
		lint.RequireMinLength("description", "minLength", 20, "shortDescription"),
	),
}

// layerPatterns pairs each architectural layer with the modeling patterns
// that belong to it.
var layerPatterns = map[string][]string{
	"experience":     {"journey-map", "service-blueprint", "touchpoint"},
	"process":        {"workflow", "saga", "checklist"},
	"domain":         {"aggregate", "policy", "event-stream"},
	"infrastructure": {"adapter", "gateway", "pipeline"},
}

var contextLayerPattern = &lint.Rule{
	ID:          "context-layer-pattern",
	Description: "check that a context's pattern belongs to its declared layer",
	Kinds:       []string{meta.KindContext},
	Severity:    lint.SeverityProblem,
	Messages: map[string]string{
		"invalidLayer":      "@{{kind}} '{{class}}' declares unknown layer '{{layer}}' (expected one of {{layers}})",
		"invalidPattern":    "@{{kind}} '{{class}}' declares unknown pattern '{{pattern}}'",
		"mismatchedPattern": "pattern '{{pattern}}' does not belong to layer '{{layer}}'; expected one of {{expected}}",
	},
	Check: checkLayerPattern,
}

func checkLayerPattern(ctx *lint.Context, record *meta.Record) {
	layer, hasLayer := record.GetString("layer")
	pattern, hasPattern := record.GetString("pattern")
	if !hasLayer && !hasPattern {
		return
	}

	layerValid := false
	if hasLayer {
		_, layerValid = layerPatterns[layer]
		if !layerValid {
			ctx.Report(record, "invalidLayer", lint.Data(
				"layer", layer,
				"layers", strings.Join(knownLayers(), ", "),
			))
		}
	}

	patternValid := false
	if hasPattern {
		for _, patterns := range layerPatterns {
			if contains(patterns, pattern) {
				patternValid = true
				break
			}
		}
		if !patternValid {
			ctx.Report(record, "invalidPattern", lint.Data("pattern", pattern))
		}
	}

	if layerValid && patternValid && !contains(layerPatterns[layer], pattern) {
		ctx.Report(record, "mismatchedPattern", lint.Data(
			"pattern", pattern,
			"layer", layer,
			"expected", strings.Join(layerPatterns[layer], ", "),
		))
	}
}

func knownLayers() []string {
	layers := make([]string, 0, len(layerPatterns))
	for layer := range layerPatterns {
		layers = append(layers, layer)
	}
	sort.Strings(layers)
	return layers
}

func contains(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}

func formatCount(n int) string {
	return fmt.Sprintf("%d", n)
}
