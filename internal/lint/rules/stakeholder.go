package rules

import (
	"github.com/aabha-lang/aabhalint/internal/lint"
	"github.com/aabha-lang/aabhalint/internal/meta"
)

var stakeholderConcerns = &lint.Rule{
	ID:          "stakeholder-concerns",
	Description: "recommend recording what each stakeholder cares about",
	Kinds:       []string{meta.KindStakeholder},
	Severity:    lint.SeveritySuggestion,
	Messages: map[string]string{
		"missingConcerns": "@{{kind}} '{{class}}' is missing a 'concerns' list",
		"emptyConcerns":   "'concerns' on @{{kind}} '{{class}}' is empty",
	},
	Check: lint.RequireNonEmptyList("concerns", "missingConcerns", "emptyConcerns"),
}

var personaGoals = &lint.Rule{
	ID:          "persona-goals",
	Description: "recommend recording what each persona is trying to achieve",
	Kinds:       []string{meta.KindPersona},
	Severity:    lint.SeveritySuggestion,
	Messages: map[string]string{
		"missingGoals": "@{{kind}} '{{class}}' is missing a 'goals' list",
		"emptyGoals":   "'goals' on @{{kind}} '{{class}}' is empty",
	},
	Check: lint.RequireNonEmptyList("goals", "missingGoals", "emptyGoals"),
}

var initiativeSponsor = &lint.Rule{
	ID:          "initiative-sponsor",
	Description: "require a sponsor on every @BusinessInitiative",
	Kinds:       []string{meta.KindBusinessInitiative},
	Severity:    lint.SeverityProblem,
	Messages: map[string]string{
		"missingSponsor": "@{{kind}} '{{class}}' does not reference a sponsor",
	},
	Check: lint.RequireRef("sponsor", "missingSponsor"),
}
