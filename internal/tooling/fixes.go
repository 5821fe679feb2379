package tooling

import (
	"fmt"

	"github.com/aabha-lang/aabhalint/internal/lint"
)

// TextEdit is an editor-applicable rewrite with zero-based positions
type TextEdit struct {
	Range   Range
	NewText string
}

// QuickFix pairs a fixable finding with the edits that resolve it. A fix
// is atomic: clients apply every edit or none.
type QuickFix struct {
	Title      string
	RuleID     string
	Diagnostic Diagnostic
	Edits      []TextEdit
}

// QuickFixes returns the fixes whose findings overlap the given range,
// ready for a code action response
func (a *API) QuickFixes(uri string, rng Range) ([]QuickFix, error) {
	doc, exists := a.GetDocument(uri)
	if !exists {
		return nil, fmt.Errorf("document not found: %s", uri)
	}

	start := doc.lines.offset(doc.Content, rng.Start)
	end := doc.lines.offset(doc.Content, rng.End)

	fixes := make([]QuickFix, 0)
	for i := range doc.Result.Diagnostics {
		diag := &doc.Result.Diagnostics[i]
		if !diag.HasFix() {
			continue
		}
		if diag.Location.End < start || end < diag.Location.Start {
			continue
		}

		severity := DiagnosticSeverityError
		if diag.Severity == lint.SeveritySuggestion {
			severity = DiagnosticSeverityInformation
		}

		edits := make([]TextEdit, 0, len(diag.Fix))
		for _, edit := range diag.Fix {
			edits = append(edits, TextEdit{
				Range:   doc.lines.span(edit.Start, edit.End),
				NewText: edit.NewText,
			})
		}

		fixes = append(fixes, QuickFix{
			Title:  fmt.Sprintf("Apply fix (%s)", diag.RuleID),
			RuleID: diag.RuleID,
			Diagnostic: Diagnostic{
				Range:    doc.lines.span(diag.Location.Start, diag.Location.End),
				Severity: severity,
				Code:     diag.RuleID,
				Message:  diag.Message,
				Source:   "aabhalint",
			},
			Edits: edits,
		})
	}

	return fixes, nil
}
