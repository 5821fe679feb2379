package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/aabha-lang/aabhalint/internal/lint"
)

// TextReporter writes human-readable results with one block per file,
// in the style most linters print: location, severity, message, rule.
type TextReporter struct {
	NoColor bool
}

func (r *TextReporter) Report(w io.Writer, results []*lint.FileResult) error {
	fileColor := color.New(color.Bold, color.Underline)
	problemColor := color.New(color.FgRed)
	suggestionColor := color.New(color.FgYellow)
	syntaxColor := color.New(color.FgRed, color.Bold)
	ruleColor := color.New(color.Faint)
	if r.NoColor {
		fileColor.DisableColor()
		problemColor.DisableColor()
		suggestionColor.DisableColor()
		syntaxColor.DisableColor()
		ruleColor.DisableColor()
	}

	for _, result := range results {
		if r.skip(result) {
			continue
		}

		fileColor.Fprintln(w, result.File)

		for _, lexErr := range result.LexErrors {
			fmt.Fprintf(w, "  %d:%d  %s  %s\n",
				lexErr.Line, lexErr.Column,
				syntaxColor.Sprint("syntax"), lexErr.Message)
		}
		for _, parseErr := range result.ParseErrors {
			fmt.Fprintf(w, "  %d:%d  %s  %s\n",
				parseErr.Location.Line, parseErr.Location.Column,
				syntaxColor.Sprint("syntax"), parseErr.Message)
		}

		for i := range result.Diagnostics {
			diag := &result.Diagnostics[i]
			severity := problemColor.Sprint(string(diag.Severity))
			if diag.Severity == lint.SeveritySuggestion {
				severity = suggestionColor.Sprint(string(diag.Severity))
			}
			marker := ""
			if diag.HasFix() {
				marker = "  (fixable)"
			}
			fmt.Fprintf(w, "  %d:%d  %s  %s  %s%s\n",
				diag.Location.Line, diag.Location.Column,
				severity, diag.Message,
				ruleColor.Sprint(diag.RuleID), marker)
		}

		for _, internal := range result.Internal {
			fmt.Fprintf(w, "  %s  %s\n", syntaxColor.Sprint("internal"), internal)
		}

		fmt.Fprintln(w)
	}

	r.summary(w, Summarize(results))
	return nil
}

// skip hides files with nothing to say so clean runs stay quiet
func (r *TextReporter) skip(result *lint.FileResult) bool {
	return len(result.Diagnostics) == 0 &&
		!result.HasSyntaxErrors() &&
		len(result.Internal) == 0
}

func (r *TextReporter) summary(w io.Writer, summary Summary) {
	if summary.Clean() {
		green := color.New(color.FgGreen, color.Bold)
		if r.NoColor {
			green.DisableColor()
		}
		green.Fprintf(w, "✓ %d file(s) checked, no problems found\n", summary.Files)
		return
	}

	var parts []string
	if summary.SyntaxErrors > 0 {
		parts = append(parts, fmt.Sprintf("%d syntax error(s)", summary.SyntaxErrors))
	}
	if summary.Problems > 0 {
		parts = append(parts, fmt.Sprintf("%d problem(s)", summary.Problems))
	}
	if summary.Suggestions > 0 {
		parts = append(parts, fmt.Sprintf("%d suggestion(s)", summary.Suggestions))
	}
	if summary.Internal > 0 {
		parts = append(parts, fmt.Sprintf("%d internal error(s)", summary.Internal))
	}

	bold := color.New(color.Bold)
	if r.NoColor {
		bold.DisableColor()
	}
	bold.Fprintf(w, "✖ %s", strings.Join(parts, ", "))
	if summary.Fixable > 0 {
		fmt.Fprintf(w, "  (%d fixable with --fix)", summary.Fixable)
	}
	fmt.Fprintln(w)
}
