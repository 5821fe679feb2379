package meta

import (
	"strings"

	"github.com/aabha-lang/aabhalint/internal/lang/ast"
)

// Decorator kinds recognized by the linter. The vocabulary is closed:
// decorators with other names are ignored entirely.
const (
	KindAction             = "Action"
	KindBehavior           = "Behavior"
	KindBusinessInitiative = "BusinessInitiative"
	KindCollaboration      = "Collaboration"
	KindContext            = "Context"
	KindExpectation        = "Expectation"
	KindInteraction        = "Interaction"
	KindJourney            = "Journey"
	KindMetric             = "Metric"
	KindPersona            = "Persona"
	KindStakeholder        = "Stakeholder"
	KindStrategy           = "Strategy"
	KindWitness            = "Witness"
)

// Kinds lists every recognized decorator kind in alphabetical order
var Kinds = []string{
	KindAction,
	KindBehavior,
	KindBusinessInitiative,
	KindCollaboration,
	KindContext,
	KindExpectation,
	KindInteraction,
	KindJourney,
	KindMetric,
	KindPersona,
	KindStakeholder,
	KindStrategy,
	KindWitness,
}

var kindSet = func() map[string]bool {
	set := make(map[string]bool, len(Kinds))
	for _, kind := range Kinds {
		set[kind] = true
	}
	return set
}()

// IsDomainDecorator reports whether name is a recognized decorator kind
func IsDomainDecorator(name string) bool {
	return kindSet[name]
}

// Extract walks a class declaration's decorator list and builds one Record
// per recognized decorator, in source order. Extraction never fails:
// malformed or partial decorator arguments degrade to partial or empty
// field maps, and unrecognized decorators are skipped. The AST is never
// mutated.
func Extract(class *ast.ClassNode) []*Record {
	records := make([]*Record, 0, len(class.Decorators))

	for _, decorator := range class.Decorators {
		if !IsDomainDecorator(decorator.Name) {
			continue
		}

		records = append(records, &Record{
			Kind:      decorator.Name,
			ClassName: class.Name,
			Class:     class,
			Node:      decorator,
			Fields:    evalArgument(decorator.Argument),
		})
	}

	return records
}

// ExtractProgram builds records for every class in a parsed file,
// preserving declaration order.
func ExtractProgram(program *ast.Program) []*Record {
	records := make([]*Record, 0)
	for _, class := range program.Classes {
		records = append(records, Extract(class)...)
	}
	return records
}

// evalArgument evaluates a decorator's sole call argument. Anything other
// than an object literal yields an empty field map.
func evalArgument(argument ast.ExprNode) *FieldMap {
	object, ok := argument.(*ast.ObjectLiteralExpr)
	if !ok {
		return NewFieldMap()
	}
	return evalObject(object)
}

// evalObject evaluates an object literal into a field map. Pairs whose
// values cannot be evaluated are dropped, which makes them absent for
// presence checks.
func evalObject(object *ast.ObjectLiteralExpr) *FieldMap {
	fields := NewFieldMap()
	for _, pair := range object.Pairs {
		if value := evalExpr(pair.Value); value != nil {
			fields.Set(pair.Key, value)
		}
	}
	return fields
}

// evalExpr evaluates a single expression into a Value. Returns nil for
// shapes outside the supported union; callers treat nil as absent.
func evalExpr(expr ast.ExprNode) Value {
	switch node := expr.(type) {
	case *ast.LiteralExpr:
		return evalLiteral(node)
	case *ast.IdentifierExpr:
		return &RefValue{Name: node.Name}
	case *ast.MemberAccessExpr:
		if name, ok := flattenMemberAccess(node); ok {
			return &RefValue{Name: name}
		}
		return nil
	case *ast.UnaryExpr:
		return evalUnary(node)
	case *ast.ArrayLiteralExpr:
		items := make([]Value, 0, len(node.Elements))
		for _, element := range node.Elements {
			if value := evalExpr(element); value != nil {
				items = append(items, value)
			}
		}
		return &ListValue{Items: items}
	case *ast.ObjectLiteralExpr:
		return &MapValue{Fields: evalObject(node)}
	default:
		// OpaqueExpr and anything unforeseen
		return nil
	}
}

// evalLiteral maps a literal's parsed value onto the Value union.
// Null literals evaluate to absent.
func evalLiteral(literal *ast.LiteralExpr) Value {
	switch val := literal.Value.(type) {
	case string:
		return &StringValue{Val: val}
	case int64:
		return &NumberValue{Val: float64(val), IsInt: true}
	case float64:
		return &NumberValue{Val: val}
	case bool:
		return &BoolValue{Val: val}
	default:
		return nil
	}
}

// evalUnary handles negated numeric literals
func evalUnary(unary *ast.UnaryExpr) Value {
	if unary.Operator != "-" {
		return nil
	}
	operand, ok := evalExpr(unary.Operand).(*NumberValue)
	if !ok {
		return nil
	}
	return &NumberValue{Val: -operand.Val, IsInt: operand.IsInt}
}

// flattenMemberAccess collapses a dotted access chain into one dotted name.
// Only chains rooted at an identifier qualify.
func flattenMemberAccess(access *ast.MemberAccessExpr) (string, bool) {
	parts := []string{access.Member}
	current := access.Object

	for {
		switch node := current.(type) {
		case *ast.IdentifierExpr:
			parts = append(parts, node.Name)
			reverse(parts)
			return strings.Join(parts, "."), true
		case *ast.MemberAccessExpr:
			parts = append(parts, node.Member)
			current = node.Object
		default:
			return "", false
		}
	}
}

func reverse(parts []string) {
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
}
