package ui

import (
	"io"
	"strings"

	"github.com/fatih/color"
)

// PrintError writes a styled error line, with optional "did you mean"
// suggestions on a following line.
func PrintError(w io.Writer, message string, suggestions []string, noColor bool) {
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow)
	if noColor {
		red.DisableColor()
		yellow.DisableColor()
	}

	red.Fprintf(w, "✖ %s\n", message)
	if len(suggestions) > 0 {
		yellow.Fprintf(w, "  Did you mean: %s?\n", strings.Join(suggestions, ", "))
	}
}

// PrintSuccess writes a styled success line
func PrintSuccess(w io.Writer, message string, noColor bool) {
	green := color.New(color.FgGreen, color.Bold)
	if noColor {
		green.DisableColor()
	}
	green.Fprintf(w, "✓ %s\n", message)
}

// PrintHint writes a dimmed follow-up command hint
func PrintHint(w io.Writer, hint string, noColor bool) {
	gray := color.New(color.FgHiBlack)
	if noColor {
		gray.DisableColor()
	}
	gray.Fprintf(w, "  → %s\n", hint)
}

// PrintWarning writes a styled warning line
func PrintWarning(w io.Writer, message string, noColor bool) {
	yellow := color.New(color.FgYellow, color.Bold)
	if noColor {
		yellow.DisableColor()
	}
	yellow.Fprintf(w, "⚠ %s\n", message)
}

// Plural appends "s" for counts other than one
func Plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
