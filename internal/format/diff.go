// Package format renders the difference between a source file and the
// fixer's rewrite of it, so 'aabhalint fix --diff' can show exactly what
// changed before and after each pass.
package format

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// DiffResult holds a file's content before and after fixes were applied
type DiffResult struct {
	Original string
	Fixed    string
	Changed  bool
}

// Diff compares a source text against its fixed form
func Diff(original, fixed string) *DiffResult {
	return &DiffResult{
		Original: original,
		Fixed:    fixed,
		Changed:  original != fixed,
	}
}

// Terminal renders a colored line diff. Fixes splice text into existing
// lines rather than adding or removing them, so lines are compared by
// position; a changed line shows as a remove/add pair under its number.
func (d *DiffResult) Terminal(noColor bool) string {
	if !d.Changed {
		green := color.New(color.FgGreen)
		if noColor {
			green.DisableColor()
		}
		return green.Sprint("no changes")
	}

	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)
	if noColor {
		red.DisableColor()
		green.DisableColor()
		cyan.DisableColor()
	}

	var buf bytes.Buffer
	eachChangedLine(d.Original, d.Fixed, func(line int, before, after string) {
		cyan.Fprintf(&buf, "@@ line %d @@\n", line)
		if before != "" {
			red.Fprintf(&buf, "- %s\n", before)
		}
		if after != "" {
			green.Fprintf(&buf, "+ %s\n", after)
		}
	})

	return buf.String()
}

// Unified renders the diff in unified format for piping into tooling
func (d *DiffResult) Unified(path string) string {
	if !d.Changed {
		return ""
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "--- a/%s\n", path)
	fmt.Fprintf(&buf, "+++ b/%s\n", path)

	eachChangedLine(d.Original, d.Fixed, func(line int, before, after string) {
		fmt.Fprintf(&buf, "@@ -%d +%d @@\n", line, line)
		if before != "" {
			fmt.Fprintf(&buf, "-%s\n", before)
		}
		if after != "" {
			fmt.Fprintf(&buf, "+%s\n", after)
		}
	})

	return buf.String()
}

// Stats summarizes the rewrite in one line
func (d *DiffResult) Stats() string {
	if !d.Changed {
		return "no changes"
	}

	changed := 0
	added := 0
	removed := 0
	eachChangedLine(d.Original, d.Fixed, func(line int, before, after string) {
		switch {
		case before == "":
			added++
		case after == "":
			removed++
		default:
			changed++
		}
	})

	parts := []string{fmt.Sprintf("%d changed", changed)}
	if added > 0 {
		parts = append(parts, fmt.Sprintf("%d added", added))
	}
	if removed > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", removed))
	}
	return strings.Join(parts, ", ") + " line(s)"
}

// eachChangedLine walks both texts by line number and calls visit for
// every position where they disagree. Lines past the shorter text come
// through as empty strings.
func eachChangedLine(original, fixed string, visit func(line int, before, after string)) {
	beforeLines := strings.Split(original, "\n")
	afterLines := strings.Split(fixed, "\n")

	count := len(beforeLines)
	if len(afterLines) > count {
		count = len(afterLines)
	}

	for i := 0; i < count; i++ {
		before := ""
		if i < len(beforeLines) {
			before = beforeLines[i]
		}
		after := ""
		if i < len(afterLines) {
			after = afterLines[i]
		}
		if before != after {
			visit(i+1, before, after)
		}
	}
}
