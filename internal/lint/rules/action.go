package rules

import (
	"github.com/aabha-lang/aabhalint/internal/lint"
	"github.com/aabha-lang/aabhalint/internal/meta"
)

var actionTrigger = &lint.Rule{
	ID:          "action-trigger",
	Description: "require a trigger on automated actions",
	Kinds:       []string{meta.KindAction},
	Severity:    lint.SeverityProblem,
	Messages: map[string]string{
		"missingTrigger": "@{{kind}} '{{class}}' with {{discriminator}} '{{value}}' requires a '{{field}}' field",
	},
	Check: lint.RequireWhenEquals("mode", "automated", "trigger", "missingTrigger", ""),
}

var strategyHorizon = &lint.Rule{
	ID:          "strategy-horizon",
	Description: "require initiatives on long-term strategies",
	Kinds:       []string{meta.KindStrategy},
	Severity:    lint.SeverityProblem,
	Messages: map[string]string{
		"missingInitiatives": "@{{kind}} '{{class}}' with {{discriminator}} '{{value}}' requires an '{{field}}' list",
		"emptyInitiatives":   "'{{field}}' on @{{kind}} '{{class}}' is empty despite {{discriminator}} '{{value}}'",
	},
	Check: lint.RequireWhenEquals("horizon", "long-term", "initiatives", "missingInitiatives", "emptyInitiatives"),
}
