package tooling

import (
	"fmt"
	"strings"

	"github.com/aabha-lang/aabhalint/internal/meta"
)

// Hover is markdown content for a position, plus the range it describes
type Hover struct {
	Contents string
	Range    Range
}

// Hover returns annotation details for the decorator under the cursor:
// the extracted fields and the rules that inspect this kind. Returns nil
// when the position is not inside a recognized annotation.
func (a *API) Hover(uri string, pos Position) (*Hover, error) {
	doc, exists := a.GetDocument(uri)
	if !exists {
		return nil, fmt.Errorf("document not found: %s", uri)
	}

	record := a.recordAtPosition(doc, pos)
	if record == nil {
		return nil, nil //nolint:nilnil // nil hover is valid when nothing is under the cursor
	}

	return &Hover{
		Contents: a.buildHover(record),
		Range:    doc.lines.span(record.Node.Span.Start, record.Node.Span.End),
	}, nil
}

// recordAtPosition finds the extracted record whose decorator span covers
// the position
func (a *API) recordAtPosition(doc *Document, pos Position) *meta.Record {
	offset := doc.lines.offset(doc.Content, pos)
	for _, record := range doc.Records {
		if record.Node.Span.Start <= offset && offset < record.Node.Span.End {
			return record
		}
	}
	return nil
}

func (a *API) buildHover(record *meta.Record) string {
	var b strings.Builder

	fmt.Fprintf(&b, "**@%s** on `%s`\n", record.Kind, record.ClassName)

	if record.Fields.Len() > 0 {
		b.WriteString("\nFields:\n")
		for _, key := range record.Fields.Keys() {
			value, _ := record.Fields.Get(key)
			fmt.Fprintf(&b, "- `%s`: %s\n", key, value.String())
		}
	}

	var applicable []string
	for _, rule := range a.engine.Rules() {
		if rule.AppliesTo(record.Kind) {
			applicable = append(applicable, rule.ID)
		}
	}
	if len(applicable) > 0 {
		fmt.Fprintf(&b, "\nChecked by: %s\n", strings.Join(applicable, ", "))
	}

	return b.String()
}
