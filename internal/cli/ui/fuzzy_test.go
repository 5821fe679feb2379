package ui

import (
	"reflect"
	"testing"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		s1, s2   string
		expected int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"metric-unit", "metric-unit", 0},
		{"metric-unit", "metric-units", 1},
		{"journey-persona", "journy-persona", 1},
	}

	for _, tt := range tests {
		if got := LevenshteinDistance(tt.s1, tt.s2); got != tt.expected {
			t.Errorf("LevenshteinDistance(%q, %q) = %d, expected %d", tt.s1, tt.s2, got, tt.expected)
		}
	}
}

func TestSuggest(t *testing.T) {
	ruleIDs := []string{
		"context-description",
		"metric-unit",
		"metric-thresholds",
		"journey-persona",
		"journey-stages",
	}

	got := Suggest("metric-unts", ruleIDs)
	if len(got) == 0 || got[0] != "metric-unit" {
		t.Errorf("Expected metric-unit as closest match, got %v", got)
	}

	// Nothing is close to garbage
	if got := Suggest("zzzzzzzzzzz", ruleIDs); len(got) != 0 {
		t.Errorf("Expected no suggestions, got %v", got)
	}
}

func TestSuggestCaseInsensitive(t *testing.T) {
	got := Suggest("Metric-Unit", []string{"metric-unit"})
	if !reflect.DeepEqual(got, []string{"metric-unit"}) {
		t.Errorf("Expected case-insensitive match, got %v", got)
	}
}

func TestSuggestCapsAtThree(t *testing.T) {
	candidates := []string{"rule-a", "rule-b", "rule-c", "rule-d"}
	got := Suggest("rule-x", candidates)
	if len(got) != 3 {
		t.Errorf("Expected at most 3 suggestions, got %d", len(got))
	}
}
