package parser

import (
	"strings"
	"testing"

	"github.com/aabha-lang/aabhalint/internal/lang/ast"
	"github.com/aabha-lang/aabhalint/internal/lang/lexer"
)

// Helper function to create a parser from source code
func parseSource(t *testing.T, source string) (*ast.Program, []ParseError) {
	t.Helper()

	lex := lexer.New(source)
	tokens, lexErrors := lex.ScanTokens()

	if len(lexErrors) > 0 {
		t.Fatalf("Lexer errors: %v", lexErrors)
	}

	parser := New(tokens)
	return parser.Parse()
}

// TestParseDecoratedClass tests parsing a class with a single decorator
func TestParseDecoratedClass(t *testing.T) {
	source := `@Context({ name: 'Orders', description: 'Order intake and fulfillment.' })
class Orders {}`

	program, errors := parseSource(t, source)

	if len(errors) > 0 {
		t.Fatalf("Parse errors: %v", errors)
	}

	if len(program.Classes) != 1 {
		t.Fatalf("Expected 1 class, got %d", len(program.Classes))
	}

	class := program.Classes[0]
	if class.Name != "Orders" {
		t.Errorf("Expected class name 'Orders', got '%s'", class.Name)
	}
	if class.Exported {
		t.Error("Expected class to not be exported")
	}

	if len(class.Decorators) != 1 {
		t.Fatalf("Expected 1 decorator, got %d", len(class.Decorators))
	}

	decorator := class.Decorators[0]
	if decorator.Name != "Context" {
		t.Errorf("Expected decorator 'Context', got '%s'", decorator.Name)
	}
	if !decorator.HasCall {
		t.Error("Expected decorator to have a call")
	}

	object, ok := decorator.Argument.(*ast.ObjectLiteralExpr)
	if !ok {
		t.Fatalf("Expected object argument, got %T", decorator.Argument)
	}
	if len(object.Pairs) != 2 {
		t.Fatalf("Expected 2 object pairs, got %d", len(object.Pairs))
	}
	if object.Pairs[0].Key != "name" {
		t.Errorf("Expected first key 'name', got '%s'", object.Pairs[0].Key)
	}

	literal, ok := object.Pairs[0].Value.(*ast.LiteralExpr)
	if !ok {
		t.Fatalf("Expected literal value, got %T", object.Pairs[0].Value)
	}
	if literal.Value != "Orders" {
		t.Errorf("Expected value 'Orders', got %v", literal.Value)
	}
}

// TestParseExportedClass tests decorators on either side of 'export'
func TestParseExportedClass(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"decorator before export", "@Persona({ name: 'Shopper' })\nexport class Shopper {}"},
		{"decorator after export", "export @Persona({ name: 'Shopper' })\nclass Shopper {}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, errors := parseSource(t, tt.source)

			if len(errors) > 0 {
				t.Fatalf("Parse errors: %v", errors)
			}
			if len(program.Classes) != 1 {
				t.Fatalf("Expected 1 class, got %d", len(program.Classes))
			}

			class := program.Classes[0]
			if !class.Exported {
				t.Error("Expected class to be exported")
			}
			if len(class.Decorators) != 1 {
				t.Errorf("Expected 1 decorator, got %d", len(class.Decorators))
			}
		})
	}
}

// TestParseMultipleDecorators tests stacked decorators
func TestParseMultipleDecorators(t *testing.T) {
	source := `@Context({ name: 'Billing' })
@Witness({ events: ['invoice.sent'] })
class Billing {}`

	program, errors := parseSource(t, source)

	if len(errors) > 0 {
		t.Fatalf("Parse errors: %v", errors)
	}

	class := program.Classes[0]
	if len(class.Decorators) != 2 {
		t.Fatalf("Expected 2 decorators, got %d", len(class.Decorators))
	}
	if class.Decorators[0].Name != "Context" {
		t.Errorf("Expected 'Context', got '%s'", class.Decorators[0].Name)
	}
	if class.Decorators[1].Name != "Witness" {
		t.Errorf("Expected 'Witness', got '%s'", class.Decorators[1].Name)
	}
}

// TestParseClassExtends tests the extends clause
func TestParseClassExtends(t *testing.T) {
	source := `@Actor({ name: 'Teller' })
class Teller extends Employee {}`

	program, errors := parseSource(t, source)

	if len(errors) > 0 {
		t.Fatalf("Parse errors: %v", errors)
	}

	class := program.Classes[0]
	if class.Parent != "Employee" {
		t.Errorf("Expected parent 'Employee', got '%s'", class.Parent)
	}
}

// TestParseClassBodySkipped tests that class bodies are consumed, not parsed
func TestParseClassBodySkipped(t *testing.T) {
	source := `@Behavior({ name: 'Checkout' })
class Checkout {
  run(cart) {
    if (cart.empty) { return null; }
    return { total: cart.sum() };
  }
}

@Metric({ name: 'Latency' })
class Latency {}`

	program, errors := parseSource(t, source)

	if len(errors) > 0 {
		t.Fatalf("Parse errors: %v", errors)
	}

	// The body's braces must not swallow the following class
	if len(program.Classes) != 2 {
		t.Fatalf("Expected 2 classes, got %d", len(program.Classes))
	}
	if program.Classes[1].Name != "Latency" {
		t.Errorf("Expected second class 'Latency', got '%s'", program.Classes[1].Name)
	}
}

// TestParseImports tests the three import forms
func TestParseImports(t *testing.T) {
	source := `import './shared.aabha'
import { Customer, Teller } from './actors.aabha'
import Billing from './billing.aabha'

@Context({ name: 'Orders' })
class Orders {}`

	program, errors := parseSource(t, source)

	if len(errors) > 0 {
		t.Fatalf("Parse errors: %v", errors)
	}

	if len(program.Imports) != 3 {
		t.Fatalf("Expected 3 imports, got %d", len(program.Imports))
	}

	if program.Imports[0].Path != "./shared.aabha" {
		t.Errorf("Expected path './shared.aabha', got '%s'", program.Imports[0].Path)
	}
	if len(program.Imports[0].Names) != 0 {
		t.Errorf("Expected no names on bare import, got %v", program.Imports[0].Names)
	}

	if len(program.Imports[1].Names) != 2 {
		t.Fatalf("Expected 2 names, got %v", program.Imports[1].Names)
	}
	if program.Imports[1].Names[0] != "Customer" || program.Imports[1].Names[1] != "Teller" {
		t.Errorf("Unexpected names %v", program.Imports[1].Names)
	}

	if len(program.Imports[2].Names) != 1 || program.Imports[2].Names[0] != "Billing" {
		t.Errorf("Unexpected default import names %v", program.Imports[2].Names)
	}
}

// TestParseValueShapes tests each literal shape in decorator arguments
func TestParseValueShapes(t *testing.T) {
	source := `@Metric({
  name: 'CheckoutLatency',
  threshold: 250,
  ratio: 0.95,
  enabled: true,
  owner: null,
  offset: -10,
  tags: ['speed', 'checkout'],
  window: { size: 60, unit: 'seconds' },
  layer: Layer.Domain,
  target: Checkout,
})
class CheckoutLatency {}`

	program, errors := parseSource(t, source)

	if len(errors) > 0 {
		t.Fatalf("Parse errors: %v", errors)
	}

	object := program.Classes[0].Decorators[0].Argument.(*ast.ObjectLiteralExpr)
	if len(object.Pairs) != 10 {
		t.Fatalf("Expected 10 pairs, got %d", len(object.Pairs))
	}

	values := make(map[string]ast.ExprNode)
	for _, pair := range object.Pairs {
		values[pair.Key] = pair.Value
	}

	if lit := values["threshold"].(*ast.LiteralExpr); lit.Value != int64(250) {
		t.Errorf("threshold = %v (%T)", lit.Value, lit.Value)
	}
	if lit := values["ratio"].(*ast.LiteralExpr); lit.Value != 0.95 {
		t.Errorf("ratio = %v", lit.Value)
	}
	if lit := values["enabled"].(*ast.LiteralExpr); lit.Value != true {
		t.Errorf("enabled = %v", lit.Value)
	}
	if lit := values["owner"].(*ast.LiteralExpr); lit.Value != nil {
		t.Errorf("owner = %v", lit.Value)
	}

	unary, ok := values["offset"].(*ast.UnaryExpr)
	if !ok {
		t.Fatalf("offset: expected unary, got %T", values["offset"])
	}
	if unary.Operator != "-" {
		t.Errorf("offset operator = %s", unary.Operator)
	}
	if unary.Operand.(*ast.LiteralExpr).Value != int64(10) {
		t.Errorf("offset operand = %v", unary.Operand.(*ast.LiteralExpr).Value)
	}

	array, ok := values["tags"].(*ast.ArrayLiteralExpr)
	if !ok {
		t.Fatalf("tags: expected array, got %T", values["tags"])
	}
	if len(array.Elements) != 2 {
		t.Errorf("tags has %d elements", len(array.Elements))
	}

	window, ok := values["window"].(*ast.ObjectLiteralExpr)
	if !ok {
		t.Fatalf("window: expected object, got %T", values["window"])
	}
	if len(window.Pairs) != 2 {
		t.Errorf("window has %d pairs", len(window.Pairs))
	}

	member, ok := values["layer"].(*ast.MemberAccessExpr)
	if !ok {
		t.Fatalf("layer: expected member access, got %T", values["layer"])
	}
	if member.Member != "Domain" {
		t.Errorf("layer member = %s", member.Member)
	}
	if member.Object.(*ast.IdentifierExpr).Name != "Layer" {
		t.Errorf("layer object = %v", member.Object)
	}

	if ident, ok := values["target"].(*ast.IdentifierExpr); !ok || ident.Name != "Checkout" {
		t.Errorf("target = %v", values["target"])
	}
}

// TestParseKeywordObjectKeys tests keywords used as object keys
func TestParseKeywordObjectKeys(t *testing.T) {
	source := `@Interaction({ from: 'Customer', class: 'request', 'with spaces': 1 })
class Handoff {}`

	program, errors := parseSource(t, source)

	if len(errors) > 0 {
		t.Fatalf("Parse errors: %v", errors)
	}

	object := program.Classes[0].Decorators[0].Argument.(*ast.ObjectLiteralExpr)
	want := []string{"from", "class", "with spaces"}
	if len(object.Pairs) != len(want) {
		t.Fatalf("Expected %d pairs, got %d", len(want), len(object.Pairs))
	}
	for i, key := range want {
		if object.Pairs[i].Key != key {
			t.Errorf("key %d = %q, want %q", i, object.Pairs[i].Key, key)
		}
	}
}

// TestParseOpaqueExpression tests that unevaluable shapes become opaque
func TestParseOpaqueExpression(t *testing.T) {
	source := `@Context({ name: buildName(), description: 'A plain string value here.' })
class Orders {}`

	program, errors := parseSource(t, source)

	if len(errors) > 0 {
		t.Fatalf("Parse errors: %v", errors)
	}

	object := program.Classes[0].Decorators[0].Argument.(*ast.ObjectLiteralExpr)

	if _, ok := object.Pairs[0].Value.(*ast.OpaqueExpr); !ok {
		t.Errorf("name: expected opaque, got %T", object.Pairs[0].Value)
	}

	// The opaque run must not eat the next pair
	literal, ok := object.Pairs[1].Value.(*ast.LiteralExpr)
	if !ok {
		t.Fatalf("description: expected literal, got %T", object.Pairs[1].Value)
	}
	if literal.Value != "A plain string value here." {
		t.Errorf("description = %v", literal.Value)
	}
}

// TestParseDecoratorWithoutCall tests bare marker decorators
func TestParseDecoratorWithoutCall(t *testing.T) {
	source := `@Deprecated
@Context({ name: 'Orders' })
class Orders {}`

	program, errors := parseSource(t, source)

	if len(errors) > 0 {
		t.Fatalf("Parse errors: %v", errors)
	}

	decorators := program.Classes[0].Decorators
	if len(decorators) != 2 {
		t.Fatalf("Expected 2 decorators, got %d", len(decorators))
	}
	if decorators[0].HasCall {
		t.Error("Expected @Deprecated to have no call")
	}
	if decorators[0].Argument != nil {
		t.Error("Expected @Deprecated to have no argument")
	}
}

// TestParseExtraDecoratorArguments tests that trailing arguments are ignored
func TestParseExtraDecoratorArguments(t *testing.T) {
	source := `@Context({ name: 'Orders' }, { scope: 'ignored' })
class Orders {}`

	program, errors := parseSource(t, source)

	if len(errors) > 0 {
		t.Fatalf("Parse errors: %v", errors)
	}

	decorator := program.Classes[0].Decorators[0]
	object, ok := decorator.Argument.(*ast.ObjectLiteralExpr)
	if !ok {
		t.Fatalf("Expected object argument, got %T", decorator.Argument)
	}
	if len(object.Pairs) != 1 || object.Pairs[0].Key != "name" {
		t.Errorf("Unexpected argument pairs: %v", object.Pairs)
	}
}

// TestParseErrorRecovery tests that a bad declaration does not hide later ones
func TestParseErrorRecovery(t *testing.T) {
	source := `class {}

@Context({ name: 'Orders' })
class Orders {}`

	program, errors := parseSource(t, source)

	if len(errors) == 0 {
		t.Fatal("Expected parse errors for the nameless class")
	}

	if len(program.Classes) != 1 {
		t.Fatalf("Expected 1 recovered class, got %d", len(program.Classes))
	}
	if program.Classes[0].Name != "Orders" {
		t.Errorf("Expected recovered class 'Orders', got '%s'", program.Classes[0].Name)
	}
}

// TestParseErrorLocation tests that errors carry the offending position
func TestParseErrorLocation(t *testing.T) {
	source := "class"

	_, errors := parseSource(t, source)

	if len(errors) == 0 {
		t.Fatal("Expected a parse error")
	}

	err := errors[0]
	if err.Location.Line != 1 {
		t.Errorf("Expected error on line 1, got %d", err.Location.Line)
	}
	if !strings.Contains(err.Error(), "Parse error at") {
		t.Errorf("Unexpected error string: %s", err.Error())
	}
}

// TestParseUnexpectedTopLevel tests stray tokens at the top level
func TestParseUnexpectedTopLevel(t *testing.T) {
	source := `42

@Context({ name: 'Orders' })
class Orders {}`

	program, errors := parseSource(t, source)

	if len(errors) == 0 {
		t.Fatal("Expected an error for the stray literal")
	}
	if !strings.Contains(errors[0].Message, "Unexpected token at top level") {
		t.Errorf("Unexpected message: %s", errors[0].Message)
	}
	if len(program.Classes) != 1 {
		t.Errorf("Expected 1 class after recovery, got %d", len(program.Classes))
	}
}

// TestParseSpans tests that node spans slice back to the source text
func TestParseSpans(t *testing.T) {
	source := `@Context({ name: 'Orders' })
class Orders {}`

	program, errors := parseSource(t, source)

	if len(errors) > 0 {
		t.Fatalf("Parse errors: %v", errors)
	}

	class := program.Classes[0]
	decorator := class.Decorators[0]

	if got := source[decorator.Span.Start:decorator.Span.End]; got != "@Context({ name: 'Orders' })" {
		t.Errorf("Decorator span = %q", got)
	}

	// The class span starts at the first decorator and ends at the closing brace
	if class.Span.Start != 0 {
		t.Errorf("Class span start = %d, want 0", class.Span.Start)
	}
	if class.Span.End != len(source) {
		t.Errorf("Class span end = %d, want %d", class.Span.End, len(source))
	}

	object := decorator.Argument.(*ast.ObjectLiteralExpr)
	pair := object.Pairs[0]
	if got := source[pair.Span.Start:pair.Span.End]; got != "name: 'Orders'" {
		t.Errorf("Pair span = %q", got)
	}
}

// TestParseUnterminatedClassBody tests EOF inside a class body
func TestParseUnterminatedClassBody(t *testing.T) {
	source := `@Context({ name: 'Orders' })
class Orders {
  run() {`

	program, errors := parseSource(t, source)

	if len(errors) == 0 {
		t.Fatal("Expected an error for the unterminated body")
	}
	if !strings.Contains(errors[0].Message, "Expected '}' to close class 'Orders'") {
		t.Errorf("Unexpected message: %s", errors[0].Message)
	}

	// The class itself is still returned
	if len(program.Classes) != 1 {
		t.Errorf("Expected 1 class, got %d", len(program.Classes))
	}
}
