package presets

import "github.com/aabha-lang/aabhalint/internal/lint"

// NewRelaxedPreset creates the relaxed preset for codebases adopting the
// linter gradually: naming and vocabulary checks are off, layer pairing is
// advisory, and short descriptions pass
func NewRelaxedPreset() *Preset {
	off := false

	return &Preset{
		Name:        "relaxed",
		Description: "style checks off and shorter descriptions accepted",
		Settings: []RuleSetting{
			{
				RuleID:  "context-description",
				Options: map[string]interface{}{"minLength": 10},
			},
			{
				RuleID:   "context-layer-pattern",
				Severity: lint.SeveritySuggestion,
			},
			{
				RuleID:  "declaration-name",
				Enabled: &off,
			},
			{
				RuleID:  "description-length",
				Enabled: &off,
			},
			{
				RuleID:  "unknown-field",
				Enabled: &off,
			},
		},
	}
}
