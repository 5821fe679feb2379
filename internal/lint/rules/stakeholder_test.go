package rules

import "testing"

func TestStakeholderConcerns(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{"listed", "@Stakeholder({ concerns: ['credit exposure'] })\nclass RiskOfficer {}", nil},
		{"missing", "@Stakeholder({ name: 'Risk Officer' })\nclass RiskOfficer {}", []string{"missingConcerns"}},
		{"empty", "@Stakeholder({ concerns: [] })\nclass RiskOfficer {}", []string{"emptyConcerns"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := lintSource(t, tt.source)
			expectMessages(t, diagnosticsFor(result, "stakeholder-concerns"), tt.want...)
		})
	}
}

func TestPersonaGoals(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{"listed", "@Persona({ goals: ['deposit quickly'] })\nclass Customer {}", nil},
		{"missing", "@Persona({ name: 'Customer' })\nclass Customer {}", []string{"missingGoals"}},
		{"empty", "@Persona({ goals: [] })\nclass Customer {}", []string{"emptyGoals"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := lintSource(t, tt.source)
			expectMessages(t, diagnosticsFor(result, "persona-goals"), tt.want...)
		})
	}
}

func TestInitiativeSponsor(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			"sponsored",
			"@BusinessInitiative({ sponsor: RiskOfficer })\nclass FasterOnboarding {}",
			nil,
		},
		{
			"missing",
			"@BusinessInitiative({ name: 'Faster Onboarding' })\nclass FasterOnboarding {}",
			[]string{"missingSponsor"},
		},
		{
			"string instead of reference",
			"@BusinessInitiative({ sponsor: 'Risk Officer' })\nclass FasterOnboarding {}",
			[]string{"missingSponsor"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := lintSource(t, tt.source)
			expectMessages(t, diagnosticsFor(result, "initiative-sponsor"), tt.want...)
		})
	}
}
