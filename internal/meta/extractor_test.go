package meta

import (
	"testing"

	"github.com/aabha-lang/aabhalint/internal/lang/lexer"
	"github.com/aabha-lang/aabhalint/internal/lang/parser"
)

// Helper to lex, parse, and extract records from source
func extractSource(t *testing.T, source string) []*Record {
	t.Helper()

	lex := lexer.New(source)
	tokens, lexErrors := lex.ScanTokens()
	if len(lexErrors) > 0 {
		t.Fatalf("Lexer errors: %v", lexErrors)
	}

	program, parseErrors := parser.New(tokens).Parse()
	if len(parseErrors) > 0 {
		t.Fatalf("Parse errors: %v", parseErrors)
	}

	return ExtractProgram(program)
}

func TestExtractSingleDecorator(t *testing.T) {
	source := `@Context({ name: 'Orders', description: 'Order intake and fulfillment.' })
class Orders {}`

	records := extractSource(t, source)

	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}

	record := records[0]
	if record.Kind != KindContext {
		t.Errorf("Kind = %q, want %q", record.Kind, KindContext)
	}
	if record.ClassName != "Orders" {
		t.Errorf("ClassName = %q", record.ClassName)
	}
	if record.Node == nil || record.Node.Name != "Context" {
		t.Error("Record does not anchor its decorator node")
	}
	if record.Class == nil || record.Class.Name != "Orders" {
		t.Error("Record does not anchor its class node")
	}

	name, ok := record.GetString("name")
	if !ok || name != "Orders" {
		t.Errorf("GetString(name) = %q, %v", name, ok)
	}
	desc, ok := record.GetString("description")
	if !ok || desc != "Order intake and fulfillment." {
		t.Errorf("GetString(description) = %q, %v", desc, ok)
	}
}

func TestExtractIgnoresUnknownDecorators(t *testing.T) {
	source := `@Deprecated
@Route('/orders')
@Context({ name: 'Orders' })
class Orders {}`

	records := extractSource(t, source)

	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].Kind != KindContext {
		t.Errorf("Kind = %q", records[0].Kind)
	}
}

func TestExtractProgramOrder(t *testing.T) {
	source := `@Context({ name: 'Orders' })
@Witness({ observes: ['order.placed'] })
class Orders {}

@Metric({ name: 'Latency' })
class Latency {}`

	records := extractSource(t, source)

	want := []string{KindContext, KindWitness, KindMetric}
	if len(records) != len(want) {
		t.Fatalf("Expected %d records, got %d", len(want), len(records))
	}
	for i, kind := range want {
		if records[i].Kind != kind {
			t.Errorf("record %d: kind = %q, want %q", i, records[i].Kind, kind)
		}
	}
}

func TestExtractNonObjectArgument(t *testing.T) {
	sources := []string{
		"@Context('Orders')\nclass Orders {}",
		"@Context\nclass Orders {}",
		"@Context()\nclass Orders {}",
	}

	for _, source := range sources {
		records := extractSource(t, source)
		if len(records) != 1 {
			t.Fatalf("%q: expected 1 record, got %d", source, len(records))
		}
		if records[0].Fields.Len() != 0 {
			t.Errorf("%q: expected empty fields, got %v", source, records[0].Fields.Keys())
		}
	}
}

func TestExtractValueShapes(t *testing.T) {
	source := `@Metric({
  name: 'CheckoutLatency',
  threshold: 250,
  ratio: 0.95,
  offset: -10,
  enabled: true,
  owner: null,
  tags: ['speed', 'checkout'],
  window: { size: 60, unit: 'seconds' },
  layer: Layer.Domain,
  target: Checkout,
})
class CheckoutLatency {}`

	record := extractSource(t, source)[0]

	if num, ok := record.GetNumber("threshold"); !ok || num != 250 {
		t.Errorf("threshold = %v, %v", num, ok)
	}
	value, _ := record.Fields.Get("threshold")
	if !value.(*NumberValue).IsInt {
		t.Error("threshold should be marked integral")
	}

	if num, ok := record.GetNumber("ratio"); !ok || num != 0.95 {
		t.Errorf("ratio = %v, %v", num, ok)
	}
	value, _ = record.Fields.Get("ratio")
	if value.(*NumberValue).IsInt {
		t.Error("ratio should not be marked integral")
	}

	if num, ok := record.GetNumber("offset"); !ok || num != -10 {
		t.Errorf("offset = %v, %v", num, ok)
	}

	if b, ok := record.GetBool("enabled"); !ok || !b {
		t.Errorf("enabled = %v, %v", b, ok)
	}

	// Null evaluates to absent
	if record.Has("owner") {
		t.Error("owner: null should be absent")
	}

	list, ok := record.GetList("tags")
	if !ok || len(list.Items) != 2 {
		t.Fatalf("tags = %v, %v", list, ok)
	}
	if list.Items[0].(*StringValue).Val != "speed" {
		t.Errorf("tags[0] = %v", list.Items[0])
	}

	window, ok := record.GetMap("window")
	if !ok {
		t.Fatal("window should be a map")
	}
	if unit, ok := window.Get("unit"); !ok || unit.(*StringValue).Val != "seconds" {
		t.Errorf("window.unit = %v, %v", unit, ok)
	}

	if ref, ok := record.GetRef("layer"); !ok || ref != "Layer.Domain" {
		t.Errorf("layer = %q, %v", ref, ok)
	}
	if ref, ok := record.GetRef("target"); !ok || ref != "Checkout" {
		t.Errorf("target = %q, %v", ref, ok)
	}
}

func TestExtractDropsOpaqueValues(t *testing.T) {
	source := `@Context({ name: buildName(), description: 'Still extracted fine.' })
class Orders {}`

	record := extractSource(t, source)[0]

	if record.Has("name") {
		t.Error("name holds a call expression and should be absent")
	}
	if desc, ok := record.GetString("description"); !ok || desc != "Still extracted fine." {
		t.Errorf("description = %q, %v", desc, ok)
	}
}

func TestExtractDuplicateFieldsLastWins(t *testing.T) {
	source := `@Context({ name: 'First', layer: 'core', name: 'Second' })
class Orders {}`

	record := extractSource(t, source)[0]

	name, ok := record.GetString("name")
	if !ok || name != "Second" {
		t.Errorf("name = %q, want 'Second'", name)
	}

	// The key keeps its first position
	keys := record.Fields.Keys()
	want := []string{"name", "layer"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v", keys)
	}
	for i, key := range want {
		if keys[i] != key {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], key)
		}
	}
}

func TestExtractListDropsUnevaluableElements(t *testing.T) {
	source := `@Witness({ observes: ['order.placed', resolve(), 'order.shipped'] })
class Audit {}`

	record := extractSource(t, source)[0]

	list, ok := record.GetList("observes")
	if !ok {
		t.Fatal("observes should be a list")
	}
	if len(list.Items) != 2 {
		t.Fatalf("Expected 2 evaluable items, got %d", len(list.Items))
	}
	if list.Items[1].(*StringValue).Val != "order.shipped" {
		t.Errorf("items[1] = %v", list.Items[1])
	}
}

func TestRecordGettersRejectWrongTypes(t *testing.T) {
	source := `@Metric({ name: 'Latency', threshold: 250 })
class Latency {}`

	record := extractSource(t, source)[0]

	if _, ok := record.GetString("threshold"); ok {
		t.Error("GetString on a number should fail")
	}
	if _, ok := record.GetNumber("name"); ok {
		t.Error("GetNumber on a string should fail")
	}
	if _, ok := record.GetList("name"); ok {
		t.Error("GetList on a string should fail")
	}
	if _, ok := record.GetMap("name"); ok {
		t.Error("GetMap on a string should fail")
	}
	if _, ok := record.GetString("missing"); ok {
		t.Error("GetString on an absent field should fail")
	}
}

func TestIsDomainDecorator(t *testing.T) {
	for _, kind := range Kinds {
		if !IsDomainDecorator(kind) {
			t.Errorf("%s should be recognized", kind)
		}
	}

	for _, name := range []string{"Deprecated", "context", "Controller", ""} {
		if IsDomainDecorator(name) {
			t.Errorf("%q should not be recognized", name)
		}
	}
}

func TestKnownFields(t *testing.T) {
	fields := KnownFields(KindMetric)
	found := false
	for _, field := range fields {
		if field == "thresholds" {
			found = true
		}
	}
	if !found {
		t.Errorf("Metric known fields missing 'thresholds': %v", fields)
	}

	if KnownFields("Nonsense") != nil {
		t.Error("Unknown kinds should have no known fields")
	}
}

func TestValueStrings(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{&StringValue{Val: "orders"}, "orders"},
		{&NumberValue{Val: 250, IsInt: true}, "250"},
		{&NumberValue{Val: 0.95}, "0.95"},
		{&BoolValue{Val: true}, "true"},
		{&RefValue{Name: "Layer.Domain"}, "Layer.Domain"},
		{&ListValue{Items: []Value{&StringValue{Val: "a"}, &NumberValue{Val: 1, IsInt: true}}}, "[a, 1]"},
	}

	for _, tt := range tests {
		if got := tt.value.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}

	fields := NewFieldMap()
	fields.Set("size", &NumberValue{Val: 60, IsInt: true})
	fields.Set("unit", &StringValue{Val: "seconds"})
	mapValue := &MapValue{Fields: fields}
	if got := mapValue.String(); got != "{size: 60, unit: seconds}" {
		t.Errorf("MapValue.String() = %q", got)
	}
}

func TestFieldMapOrdering(t *testing.T) {
	fields := NewFieldMap()
	fields.Set("b", &StringValue{Val: "1"})
	fields.Set("a", &StringValue{Val: "2"})
	fields.Set("b", &StringValue{Val: "3"})

	keys := fields.Keys()
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Errorf("keys = %v, want [b a]", keys)
	}

	value, _ := fields.Get("b")
	if value.(*StringValue).Val != "3" {
		t.Errorf("duplicate set should keep the last value, got %v", value)
	}
	if fields.Len() != 2 {
		t.Errorf("Len() = %d", fields.Len())
	}
}
