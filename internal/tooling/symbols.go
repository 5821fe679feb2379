package tooling

import (
	"fmt"

	"github.com/aabha-lang/aabhalint/internal/meta"
)

// Symbol is a named entity shown in the editor outline
type Symbol struct {
	Name  string
	Kind  SymbolKind
	Range Range

	// ContainerName is the class name for decorator symbols
	ContainerName string

	// Detail provides additional information
	Detail string
}

// SymbolKind categorizes symbols for IDE display
type SymbolKind int

const (
	// SymbolKindClass represents a class declaration
	SymbolKindClass SymbolKind = iota
	// SymbolKindDecorator represents a domain annotation on a class
	SymbolKindDecorator
)

// extractSymbols flattens a document into outline entries: every class,
// then each recognized annotation beneath it.
func extractSymbols(doc *Document) []*Symbol {
	symbols := make([]*Symbol, 0, len(doc.AST.Classes))

	for _, class := range doc.AST.Classes {
		detail := ""
		if class.Parent != "" {
			detail = "extends " + class.Parent
		}
		symbols = append(symbols, &Symbol{
			Name:   class.Name,
			Kind:   SymbolKindClass,
			Range:  doc.lines.span(class.Span.Start, class.Span.End),
			Detail: detail,
		})

		for _, decorator := range class.Decorators {
			if !meta.IsDomainDecorator(decorator.Name) {
				continue
			}
			symbols = append(symbols, &Symbol{
				Name:          "@" + decorator.Name,
				Kind:          SymbolKindDecorator,
				Range:         doc.lines.span(decorator.Span.Start, decorator.Span.End),
				ContainerName: class.Name,
				Detail:        fmt.Sprintf("on %s", class.Name),
			})
		}
	}

	return symbols
}
