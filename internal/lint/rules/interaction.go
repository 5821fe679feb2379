package rules

import (
	"github.com/aabha-lang/aabhalint/internal/lint"
	"github.com/aabha-lang/aabhalint/internal/meta"
)

var interactionEndpoints = &lint.Rule{
	ID:          "interaction-endpoints",
	Description: "check that an interaction connects two distinct endpoints over a channel",
	Kinds:       []string{meta.KindInteraction},
	Severity:    lint.SeverityProblem,
	Messages: map[string]string{
		"missingEndpoint":      "@{{kind}} '{{class}}' is missing the '{{endpoint}}' endpoint",
		"reflexiveInteraction": "@{{kind}} '{{class}}' connects '{{endpoint}}' to itself",
		"missingChannel":       "@{{kind}} '{{class}}' does not declare a 'channel'",
	},
	Check: lint.All(
		checkEndpoints,
		lint.RequireString("channel", "missingChannel", "missingChannel"),
	),
}

func checkEndpoints(ctx *lint.Context, record *meta.Record) {
	from, hasFrom := record.GetRef("from")
	if !hasFrom {
		ctx.Report(record, "missingEndpoint", lint.Data("endpoint", "from"))
	}
	to, hasTo := record.GetRef("to")
	if !hasTo {
		ctx.Report(record, "missingEndpoint", lint.Data("endpoint", "to"))
	}
	if hasFrom && hasTo && from == to {
		ctx.Report(record, "reflexiveInteraction", lint.Data("endpoint", from))
	}
}
