// Package report renders lint results for people and for machines. The
// text reporter targets terminals; the JSON reporter emits a stable
// structure for editors and CI.
package report

import (
	"fmt"
	"io"

	"github.com/aabha-lang/aabhalint/internal/lint"
)

// Reporter renders a batch of file results to a writer
type Reporter interface {
	Report(w io.Writer, results []*lint.FileResult) error
}

// New returns the reporter for an output format name
func New(format string, noColor bool) (Reporter, error) {
	switch format {
	case "", "text", "terminal":
		return &TextReporter{NoColor: noColor}, nil
	case "json":
		return &JSONReporter{}, nil
	case "json-compact":
		return &JSONReporter{Compact: true}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (expected text, json, or json-compact)", format)
	}
}

// Summary aggregates counts across every linted file
type Summary struct {
	Files        int `json:"files"`
	Problems     int `json:"problems"`
	Suggestions  int `json:"suggestions"`
	Fixable      int `json:"fixable"`
	SyntaxErrors int `json:"syntax_errors"`
	Internal     int `json:"internal"`
}

// Clean reports whether nothing at all was flagged
func (s Summary) Clean() bool {
	return s.Problems == 0 && s.Suggestions == 0 && s.SyntaxErrors == 0 && s.Internal == 0
}

// Summarize folds per-file results into totals
func Summarize(results []*lint.FileResult) Summary {
	summary := Summary{Files: len(results)}
	for _, result := range results {
		summary.Problems += result.Count(lint.SeverityProblem)
		summary.Suggestions += result.Count(lint.SeveritySuggestion)
		summary.Fixable += result.FixableCount()
		summary.SyntaxErrors += len(result.LexErrors) + len(result.ParseErrors)
		summary.Internal += len(result.Internal)
	}
	return summary
}
