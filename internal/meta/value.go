// Package meta extracts decorator metadata from Aabha class declarations.
// It evaluates decorator call arguments into plain records of named values
// that lint rules read without touching the AST again.
package meta

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is the evaluated form of one field in a decorator argument.
// The concrete types form a closed tagged union; a field whose source
// expression fits none of them is absent rather than mistyped.
type Value interface {
	value()
	String() string
}

// StringValue holds a string literal field value
type StringValue struct {
	Val string
}

func (v *StringValue) value() {}

// String returns the raw string content
func (v *StringValue) String() string {
	return v.Val
}

// NumberValue holds a numeric literal field value
type NumberValue struct {
	Val   float64
	IsInt bool // true when the source literal had no fractional part
}

func (v *NumberValue) value() {}

// String formats the number the way it was written
func (v *NumberValue) String() string {
	if v.IsInt {
		return strconv.FormatInt(int64(v.Val), 10)
	}
	return strconv.FormatFloat(v.Val, 'g', -1, 64)
}

// BoolValue holds a boolean literal field value
type BoolValue struct {
	Val bool
}

func (v *BoolValue) value() {}

// String returns "true" or "false"
func (v *BoolValue) String() string {
	return strconv.FormatBool(v.Val)
}

// ListValue holds an ordered list of evaluated values. Elements that
// could not be evaluated are dropped.
type ListValue struct {
	Items []Value
}

func (v *ListValue) value() {}

// String renders the list in source-like form
func (v *ListValue) String() string {
	parts := make([]string, 0, len(v.Items))
	for _, item := range v.Items {
		parts = append(parts, item.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// MapValue holds a nested field mapping
type MapValue struct {
	Fields *FieldMap
}

func (v *MapValue) value() {}

// String renders the mapping in source-like form
func (v *MapValue) String() string {
	parts := make([]string, 0, v.Fields.Len())
	for _, key := range v.Fields.Keys() {
		val, _ := v.Fields.Get(key)
		parts = append(parts, fmt.Sprintf("%s: %s", key, val.String()))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// RefValue holds a symbolic reference to another declaration. Dotted
// enum-like access folds into a single dotted name (e.g. "Layer.Domain").
// References are never resolved across files.
type RefValue struct {
	Name string
}

func (v *RefValue) value() {}

// String returns the referenced name
func (v *RefValue) String() string {
	return v.Name
}

// FieldMap is an ordered mapping from field name to Value. Iteration
// follows first-occurrence order; duplicate keys keep their original
// position but the last value wins.
type FieldMap struct {
	keys   []string
	values map[string]Value
}

// NewFieldMap creates an empty field map
func NewFieldMap() *FieldMap {
	return &FieldMap{
		keys:   make([]string, 0),
		values: make(map[string]Value),
	}
}

// Set stores a value under the given key
func (m *FieldMap) Set(key string, value Value) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under the given key
func (m *FieldMap) Get(key string) (Value, bool) {
	value, ok := m.values[key]
	return value, ok
}

// Has reports whether the key is present
func (m *FieldMap) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Keys returns the field names in first-occurrence order
func (m *FieldMap) Keys() []string {
	return m.keys
}

// Len returns the number of fields
func (m *FieldMap) Len() int {
	return len(m.keys)
}
