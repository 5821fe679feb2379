package tooling

import "strings"

// Position is a zero-based line/character pair, matching what LSP clients
// send. The AST uses one-based lines and columns; conversions live here so
// the rest of the package never mixes the two.
type Position struct {
	Line      int
	Character int
}

// Range is a half-open span between two positions
type Range struct {
	Start Position
	End   Position
}

// Location is a range within a named document
type Location struct {
	URI   string
	Range Range
}

// lineIndex maps byte offsets to positions for one document
type lineIndex struct {
	starts []int
}

func newLineIndex(content string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{starts: starts}
}

// position converts a byte offset to a zero-based position
func (idx *lineIndex) position(offset int) Position {
	line := 0
	for line+1 < len(idx.starts) && idx.starts[line+1] <= offset {
		line++
	}
	return Position{Line: line, Character: offset - idx.starts[line]}
}

// offset converts a zero-based position to a byte offset, clamping past
// the end of the line
func (idx *lineIndex) offset(content string, pos Position) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= len(idx.starts) {
		return len(content)
	}
	start := idx.starts[pos.Line]
	end := len(content)
	if pos.Line+1 < len(idx.starts) {
		end = idx.starts[pos.Line+1] - 1
	}
	offset := start + pos.Character
	if offset > end {
		offset = end
	}
	return offset
}

// span converts a byte range to a position range
func (idx *lineIndex) span(start, end int) Range {
	return Range{Start: idx.position(start), End: idx.position(end)}
}

// lineOf returns the text of a zero-based line without its newline
func lineOf(content string, idx *lineIndex, line int) string {
	if line < 0 || line >= len(idx.starts) {
		return ""
	}
	start := idx.starts[line]
	end := len(content)
	if line+1 < len(idx.starts) {
		end = idx.starts[line+1] - 1
	}
	return strings.TrimSuffix(content[start:end], "\r")
}
