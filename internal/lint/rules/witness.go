package rules

import (
	"github.com/aabha-lang/aabhalint/internal/lint"
	"github.com/aabha-lang/aabhalint/internal/meta"
)

var witnessObserves = &lint.Rule{
	ID:          "witness-observes",
	Description: "check that a witness observes something and backs it with evidence",
	Kinds:       []string{meta.KindWitness},
	Severity:    lint.SeverityProblem,
	Messages: map[string]string{
		"missingObserves": "@{{kind}} '{{class}}' does not reference what it observes",
		"emptyEvidence":   "'evidence' on @{{kind}} '{{class}}' is empty; remove it or list the evidence sources",
	},
	Check: lint.All(
		lint.RequireRef("observes", "missingObserves"),
		checkEvidence,
	),
}

// Evidence is optional, but an empty list is a leftover worth flagging.
func checkEvidence(ctx *lint.Context, record *meta.Record) {
	evidence, ok := record.GetList("evidence")
	if ok && len(evidence.Items) == 0 {
		ctx.Report(record, "emptyEvidence", nil)
	}
}
