package lint

import (
	"strings"

	"github.com/aabha-lang/aabhalint/internal/lang/ast"
	"github.com/aabha-lang/aabhalint/internal/meta"
)

// Fix generation builds declarative text edits against the decorator's
// object-literal argument. Failure to locate a safe splice point returns
// nil so the caller reports the diagnostic without a fix; a corrupting
// edit is never produced.

// InsertFieldFix builds an edit inserting "<field>: <value>" into the
// decorator's object-literal argument, adding a separator comma when the
// object already has fields.
func InsertFieldFix(ctx *Context, record *meta.Record, field, value string) []TextEdit {
	object, ok := argumentObject(record)
	if !ok {
		return nil
	}

	closing := object.Span.End - 1
	if closing < 0 || closing >= len(ctx.Source) || ctx.Source[closing] != '}' {
		return nil
	}

	snippet := field + ": " + value

	if len(object.Pairs) == 0 {
		return []TextEdit{{Start: closing, End: closing, NewText: snippet}}
	}

	lastPair := object.Pairs[len(object.Pairs)-1]
	tailStart := lastPair.Span.End
	if tailStart < 0 || tailStart > closing {
		return nil
	}

	// A trailing comma already separates; splice right after it.
	tail := ctx.Source[tailStart:closing]
	if comma := strings.Index(tail, ","); comma >= 0 {
		at := tailStart + comma + 1
		return []TextEdit{{Start: at, End: at, NewText: " " + snippet}}
	}

	return []TextEdit{{Start: tailStart, End: tailStart, NewText: ", " + snippet}}
}

// ReplaceFieldFix builds an edit replacing the value of an existing field
// with the given source text.
func ReplaceFieldFix(ctx *Context, record *meta.Record, field, value string) []TextEdit {
	object, ok := argumentObject(record)
	if !ok {
		return nil
	}

	// Last occurrence wins, matching evaluation
	for i := len(object.Pairs) - 1; i >= 0; i-- {
		pair := object.Pairs[i]
		if pair.Key != field || pair.Value == nil {
			continue
		}
		span := exprSpan(pair.Value)
		if span.Start < 0 || span.End > len(ctx.Source) || span.Start > span.End {
			return nil
		}
		return []TextEdit{{Start: span.Start, End: span.End, NewText: value}}
	}

	return nil
}

// argumentObject returns the decorator's object-literal argument
func argumentObject(record *meta.Record) (*ast.ObjectLiteralExpr, bool) {
	if record.Node == nil || record.Node.Argument == nil {
		return nil, false
	}
	object, ok := record.Node.Argument.(*ast.ObjectLiteralExpr)
	return object, ok
}

// exprSpan returns the byte span of an expression node
func exprSpan(expr ast.ExprNode) ast.Span {
	switch node := expr.(type) {
	case *ast.LiteralExpr:
		return node.Span
	case *ast.IdentifierExpr:
		return node.Span
	case *ast.MemberAccessExpr:
		return node.Span
	case *ast.UnaryExpr:
		return node.Span
	case *ast.ArrayLiteralExpr:
		return node.Span
	case *ast.ObjectLiteralExpr:
		return node.Span
	case *ast.OpaqueExpr:
		return node.Span
	default:
		return ast.Span{Start: -1, End: -1}
	}
}

// quoteString renders a string as a single-quoted Aabha literal
func quoteString(s string) string {
	escaped := strings.ReplaceAll(s, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `'`, `\'`)
	return "'" + escaped + "'"
}
