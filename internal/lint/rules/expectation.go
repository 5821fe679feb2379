package rules

import (
	"github.com/aabha-lang/aabhalint/internal/lint"
	"github.com/aabha-lang/aabhalint/internal/meta"
)

var expectationDependencies = &lint.Rule{
	ID:          "expectation-dependencies",
	Description: "check that an expectation's dependsOn list is sensible",
	Kinds:       []string{meta.KindExpectation},
	Severity:    lint.SeverityProblem,
	Messages: map[string]string{
		"emptyDependsOn": "'dependsOn' on @{{kind}} '{{class}}' is empty; remove it or list the upstream expectations",
		"selfDependency": "@{{kind}} '{{class}}' lists itself in 'dependsOn'",
	},
	Check: checkDependsOn,
}

func checkDependsOn(ctx *lint.Context, record *meta.Record) {
	deps, ok := record.GetList("dependsOn")
	if !ok {
		return
	}
	if len(deps.Items) == 0 {
		ctx.Report(record, "emptyDependsOn", nil)
		return
	}
	for _, item := range deps.Items {
		ref, isRef := item.(*meta.RefValue)
		if !isRef {
			continue
		}
		if ref.Name == record.ClassName {
			ctx.Report(record, "selfDependency", nil)
			return
		}
	}
}
