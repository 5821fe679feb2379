package rules

import (
	"github.com/aabha-lang/aabhalint/internal/lint"
	"github.com/aabha-lang/aabhalint/internal/meta"
)

var journeyStages = &lint.Rule{
	ID:          "journey-stages",
	Description: "require a non-empty stages list on every @Journey",
	Kinds:       []string{meta.KindJourney},
	Severity:    lint.SeverityProblem,
	Messages: map[string]string{
		"missingStages": "@{{kind}} '{{class}}' is missing a 'stages' list",
		"emptyStages":   "'stages' on @{{kind}} '{{class}}' is empty",
	},
	Check: lint.RequireNonEmptyList("stages", "missingStages", "emptyStages"),
}

var journeyPersona = &lint.Rule{
	ID:          "journey-persona",
	Description: "recommend linking each journey to the persona walking it",
	Kinds:       []string{meta.KindJourney},
	Severity:    lint.SeveritySuggestion,
	Messages: map[string]string{
		"missingPersona": "@{{kind}} '{{class}}' does not reference a persona",
	},
	Check: lint.RequireRef("persona", "missingPersona"),
}
