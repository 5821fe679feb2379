package meta

import "github.com/aabha-lang/aabhalint/internal/lang/ast"

// Record is the extracted metadata for one decorator instance. Records are
// created fresh for each class declaration during a lint pass, are read-only
// once built, and are discarded when the pass ends.
type Record struct {
	Kind      string             // Decorator name, e.g. "Context"
	ClassName string             // Name of the decorated class
	Class     *ast.ClassNode     // The decorated class declaration
	Node      *ast.DecoratorNode // Anchors diagnostics and fixes
	Fields    *FieldMap          // Evaluated decorator argument
}

// Has reports whether the named field was present and evaluable
func (r *Record) Has(name string) bool {
	return r.Fields.Has(name)
}

// GetString returns the named field as a string. The second result is
// false when the field is absent or not a string.
func (r *Record) GetString(name string) (string, bool) {
	value, ok := r.Fields.Get(name)
	if !ok {
		return "", false
	}
	str, ok := value.(*StringValue)
	if !ok {
		return "", false
	}
	return str.Val, true
}

// GetNumber returns the named field as a float64
func (r *Record) GetNumber(name string) (float64, bool) {
	value, ok := r.Fields.Get(name)
	if !ok {
		return 0, false
	}
	num, ok := value.(*NumberValue)
	if !ok {
		return 0, false
	}
	return num.Val, true
}

// GetBool returns the named field as a bool
func (r *Record) GetBool(name string) (bool, bool) {
	value, ok := r.Fields.Get(name)
	if !ok {
		return false, false
	}
	b, ok := value.(*BoolValue)
	if !ok {
		return false, false
	}
	return b.Val, true
}

// GetList returns the named field as a list
func (r *Record) GetList(name string) (*ListValue, bool) {
	value, ok := r.Fields.Get(name)
	if !ok {
		return nil, false
	}
	list, ok := value.(*ListValue)
	if !ok {
		return nil, false
	}
	return list, true
}

// GetMap returns the named field as a nested mapping
func (r *Record) GetMap(name string) (*FieldMap, bool) {
	value, ok := r.Fields.Get(name)
	if !ok {
		return nil, false
	}
	m, ok := value.(*MapValue)
	if !ok {
		return nil, false
	}
	return m.Fields, true
}

// GetRef returns the named field as a symbolic reference name
func (r *Record) GetRef(name string) (string, bool) {
	value, ok := r.Fields.Get(name)
	if !ok {
		return "", false
	}
	ref, ok := value.(*RefValue)
	if !ok {
		return "", false
	}
	return ref.Name, true
}
