package presets

import "github.com/aabha-lang/aabhalint/internal/lint"

// NewStrictPreset creates the strict preset: every style suggestion reports
// as a problem and the description length bounds tighten
func NewStrictPreset() *Preset {
	return &Preset{
		Name:        "strict",
		Description: "style suggestions report as problems and length bounds tighten",
		Settings: []RuleSetting{
			{
				RuleID:  "context-description",
				Options: map[string]interface{}{"minLength": 30},
			},
			{
				RuleID:   "declaration-name",
				Severity: lint.SeverityProblem,
			},
			{
				RuleID:   "description-length",
				Severity: lint.SeverityProblem,
				Options:  map[string]interface{}{"min": 20, "max": 400},
			},
			{
				RuleID:   "journey-persona",
				Severity: lint.SeverityProblem,
			},
			{
				RuleID:   "persona-goals",
				Severity: lint.SeverityProblem,
			},
			{
				RuleID:   "stakeholder-concerns",
				Severity: lint.SeverityProblem,
			},
			{
				RuleID:   "unknown-field",
				Severity: lint.SeverityProblem,
			},
		},
	}
}
