package rules

import (
	"strings"

	"github.com/aabha-lang/aabhalint/internal/lint"
	"github.com/aabha-lang/aabhalint/internal/meta"
)

// thresholdKeys is the canonical severity ladder, from worst to best.
var thresholdKeys = []string{"critical", "warning", "healthy"}

var metricThresholds = &lint.Rule{
	ID:          "metric-thresholds",
	Description: "check that metric thresholds are complete and ordered for their direction",
	Kinds:       []string{meta.KindMetric},
	Severity:    lint.SeverityProblem,
	Messages: map[string]string{
		"missingThresholds":    "@{{kind}} '{{class}}' is missing a 'thresholds' object",
		"incompleteThresholds": "'thresholds' on @{{kind}} '{{class}}' is missing numeric values for {{missing}}",
		"invalidDirection":     "@{{kind}} '{{class}}' declares unknown direction '{{direction}}' (expected 'higher-is-better' or 'lower-is-better')",
		"unorderedThresholds":  "'{{field}}' on @{{kind}} '{{class}}' must be strictly ordered across {{keys}}; got {{values}}",
	},
	Check: lint.All(
		checkThresholdShape,
		lint.RequireOrdering("thresholds", thresholdKeys, thresholdDirection, "unorderedThresholds"),
	),
}

func checkThresholdShape(ctx *lint.Context, record *meta.Record) {
	// A thresholds field that is not an object counts as missing.
	thresholds, ok := record.GetMap("thresholds")
	if !ok {
		ctx.Report(record, "missingThresholds", nil)
		return
	}

	var missing []string
	for _, key := range thresholdKeys {
		value, present := thresholds.Get(key)
		if !present {
			missing = append(missing, key)
			continue
		}
		if _, isNumber := value.(*meta.NumberValue); !isNumber {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		ctx.Report(record, "incompleteThresholds", lint.Data("missing", strings.Join(missing, ", ")))
	}

	direction, hasDirection := record.GetString("direction")
	if hasDirection && direction != "higher-is-better" && direction != "lower-is-better" {
		ctx.Report(record, "invalidDirection", lint.Data("direction", direction))
	}
}

// thresholdDirection orients the ordering check. Metrics default to
// higher-is-better, where the critical threshold sits below warning and
// warning below healthy. An unknown direction was already reported by the
// shape check, so the ordering check stays silent for it.
func thresholdDirection(record *meta.Record) lint.Order {
	direction, ok := record.GetString("direction")
	if !ok {
		return lint.OrderAscending
	}
	switch direction {
	case "higher-is-better":
		return lint.OrderAscending
	case "lower-is-better":
		return lint.OrderDescending
	default:
		return lint.OrderSkip
	}
}

var metricUnit = &lint.Rule{
	ID:          "metric-unit",
	Description: "require a unit on every @Metric",
	Kinds:       []string{meta.KindMetric},
	Severity:    lint.SeverityProblem,
	Fixable:     true,
	Messages: map[string]string{
		"missingUnit": "@{{kind}} '{{class}}' is missing a 'unit' field",
		"emptyUnit":   "'unit' on @{{kind}} '{{class}}' is empty",
	},
	Check: lint.RequireStringFix("unit", "missingUnit", "emptyUnit", "count"),
}
