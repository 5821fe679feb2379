// Package lint defines the rule engine that evaluates decorator metadata
// records and collects diagnostics. Rules are pure functions: they read one
// record at a time, never mutate the AST, and report findings through a
// rule context.
package lint

import (
	"sort"
	"strings"
)

// Severity classifies a diagnostic as must-fix or should-fix
type Severity string

const (
	// SeverityProblem marks violations that must be fixed
	SeverityProblem Severity = "problem"
	// SeveritySuggestion marks violations that should be fixed
	SeveritySuggestion Severity = "suggestion"
)

// ValidSeverity reports whether s names a known severity class
func ValidSeverity(s Severity) bool {
	return s == SeverityProblem || s == SeveritySuggestion
}

// Location anchors a diagnostic in source. Line and Column are 1-indexed;
// Start and End are byte offsets (End exclusive).
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
}

// TextEdit is a declarative byte-range replacement. Start == End inserts.
type TextEdit struct {
	Start   int    `json:"start"`
	End     int    `json:"end"`
	NewText string `json:"new_text"`
}

// Diagnostic is one reported rule violation
type Diagnostic struct {
	RuleID    string            `json:"rule_id"`
	MessageID string            `json:"message_id"`
	Severity  Severity          `json:"severity"`
	Message   string            `json:"message"`
	Data      map[string]string `json:"data,omitempty"`
	Location  Location          `json:"location"`
	Fix       []TextEdit        `json:"fix,omitempty"`
}

// HasFix reports whether the diagnostic carries an auto-fix
func (d *Diagnostic) HasFix() bool {
	return len(d.Fix) > 0
}

// SortDiagnostics orders diagnostics deterministically: by file, then
// source position, then rule and message identifiers. Within one file this
// matches declaration order because positions increase down the file.
func SortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := &diags[i], &diags[j]
		if a.Location.File != b.Location.File {
			return a.Location.File < b.Location.File
		}
		if a.Location.Start != b.Location.Start {
			return a.Location.Start < b.Location.Start
		}
		if a.Location.End != b.Location.End {
			return a.Location.End < b.Location.End
		}
		if a.RuleID != b.RuleID {
			return a.RuleID < b.RuleID
		}
		return a.MessageID < b.MessageID
	})
}

// renderMessage substitutes {{name}} placeholders in a message template
func renderMessage(template string, data map[string]string) string {
	message := template
	for key, value := range data {
		message = strings.ReplaceAll(message, "{{"+key+"}}", value)
	}
	return message
}
