package rules

import (
	"github.com/aabha-lang/aabhalint/internal/lint"
	"github.com/aabha-lang/aabhalint/internal/meta"
)

var behaviorClauses = &lint.Rule{
	ID:          "behavior-clauses",
	Description: "require given/when/then clauses on every @Behavior",
	Kinds:       []string{meta.KindBehavior},
	Severity:    lint.SeverityProblem,
	Fixable:     true,
	Messages: map[string]string{
		"missingGiven": "@{{kind}} '{{class}}' is missing its 'given' clause",
		"missingWhen":  "@{{kind}} '{{class}}' is missing its 'when' clause",
		"missingThen":  "@{{kind}} '{{class}}' is missing its 'then' clause",
	},
	Check: lint.All(
		lint.RequireStringFix("given", "missingGiven", "missingGiven", "TODO: the starting state"),
		lint.RequireStringFix("when", "missingWhen", "missingWhen", "TODO: the triggering event"),
		lint.RequireStringFix("then", "missingThen", "missingThen", "TODO: the expected outcome"),
	),
}
