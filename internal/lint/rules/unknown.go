package rules

import (
	"strings"

	"github.com/aabha-lang/aabhalint/internal/lint"
	"github.com/aabha-lang/aabhalint/internal/meta"
)

var unknownField = &lint.Rule{
	ID:          "unknown-field",
	Description: "flag decorator fields outside the documented vocabulary",
	Severity:    lint.SeveritySuggestion,
	Messages: map[string]string{
		"unknownField": "'{{field}}' is not a documented @{{kind}} field (known: {{known}})",
	},
	Check: checkUnknownFields,
}

// checkUnknownFields compares every extracted field name against the same
// per-kind vocabulary that feeds editor completion. The allow option admits
// project-specific extensions without disabling the rule.
func checkUnknownFields(ctx *lint.Context, record *meta.Record) {
	known := meta.KnownFields(record.Kind)
	if len(known) == 0 {
		return
	}
	allow := ctx.Options.Strings("allow")

	for _, field := range record.Fields.Keys() {
		if contains(known, field) || contains(allow, field) {
			continue
		}
		ctx.Report(record, "unknownField", lint.Data(
			"field", field,
			"known", strings.Join(known, ", "),
		))
	}
}
