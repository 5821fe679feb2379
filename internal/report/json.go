package report

import (
	"encoding/json"
	"io"

	"github.com/aabha-lang/aabhalint/internal/lint"
)

// JSONOutput is the machine-readable report structure
type JSONOutput struct {
	Status  string             `json:"status"`
	Files   []*lint.FileResult `json:"files"`
	Summary Summary            `json:"summary"`
}

// JSONReporter writes the full result set as a single JSON document.
// Results arrive pre-sorted and diagnostics keep their emission order, so
// identical inputs serialize byte for byte identically.
type JSONReporter struct {
	Compact bool
}

func (r *JSONReporter) Report(w io.Writer, results []*lint.FileResult) error {
	summary := Summarize(results)

	output := JSONOutput{
		Status:  status(summary),
		Files:   results,
		Summary: summary,
	}

	encoder := json.NewEncoder(w)
	if !r.Compact {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(output)
}

func status(summary Summary) string {
	switch {
	case summary.SyntaxErrors > 0 || summary.Problems > 0 || summary.Internal > 0:
		return "problems"
	case summary.Suggestions > 0:
		return "suggestions"
	default:
		return "clean"
	}
}
