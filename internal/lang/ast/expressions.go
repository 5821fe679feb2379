package ast

// ExprNode is the interface for all expression nodes
type ExprNode interface {
	Node
	exprNode()
}

// LiteralExpr represents a literal value (string, int, float, bool, null)
type LiteralExpr struct {
	Value interface{} // string, int64, float64, bool, or nil
	Loc   SourceLocation
	Span  Span
}

func (l *LiteralExpr) node()     {}
func (l *LiteralExpr) exprNode() {}

func (l *LiteralExpr) Location() SourceLocation {
	return l.Loc
}

// IdentifierExpr represents a bare identifier used as a value,
// typically a reference to another declared class
type IdentifierExpr struct {
	Name string
	Loc  SourceLocation
	Span Span
}

func (i *IdentifierExpr) node()     {}
func (i *IdentifierExpr) exprNode() {}

func (i *IdentifierExpr) Location() SourceLocation {
	return i.Loc
}

// MemberAccessExpr represents enum-like dotted access (Layer.Domain)
type MemberAccessExpr struct {
	Object ExprNode // IdentifierExpr or another MemberAccessExpr
	Member string
	Loc    SourceLocation
	Span   Span
}

func (m *MemberAccessExpr) node()     {}
func (m *MemberAccessExpr) exprNode() {}

func (m *MemberAccessExpr) Location() SourceLocation {
	return m.Loc
}

// UnaryExpr represents a unary operation on a literal (-5, !flag)
type UnaryExpr struct {
	Operator string // "-" or "!"
	Operand  ExprNode
	Loc      SourceLocation
	Span     Span
}

func (u *UnaryExpr) node()     {}
func (u *UnaryExpr) exprNode() {}

func (u *UnaryExpr) Location() SourceLocation {
	return u.Loc
}

// ArrayLiteralExpr represents an array literal [1, 2, 3]
type ArrayLiteralExpr struct {
	Elements []ExprNode
	Loc      SourceLocation
	Span     Span
}

func (a *ArrayLiteralExpr) node()     {}
func (a *ArrayLiteralExpr) exprNode() {}

func (a *ArrayLiteralExpr) Location() SourceLocation {
	return a.Loc
}

// ObjectLiteralExpr represents an object literal {key: value, ...}
type ObjectLiteralExpr struct {
	Pairs []ObjectPair
	Loc   SourceLocation
	Span  Span
}

func (o *ObjectLiteralExpr) node()     {}
func (o *ObjectLiteralExpr) exprNode() {}

func (o *ObjectLiteralExpr) Location() SourceLocation {
	return o.Loc
}

// ObjectPair represents a key-value pair in an object literal.
// Keys are identifiers or string literals in source; both are stored
// as the plain key text.
type ObjectPair struct {
	Key    string
	Value  ExprNode
	KeyLoc SourceLocation
	Span   Span // from the key through the value
}

// OpaqueExpr represents an expression shape the linter does not evaluate
// (function calls, arithmetic, spreads, template strings). The extractor
// treats fields holding an OpaqueExpr as absent.
type OpaqueExpr struct {
	Loc  SourceLocation
	Span Span
}

func (o *OpaqueExpr) node()     {}
func (o *OpaqueExpr) exprNode() {}

func (o *OpaqueExpr) Location() SourceLocation {
	return o.Loc
}
