package sem

import (
	"github.com/widsnoy/airyc/syntax"
	"github.com/widsnoy/airyc/types"
)

// ValueClass distinguishes an l-value from an r-value.
type ValueClass int

const (
	RValue ValueClass = iota
	LValue
)

// ExprFacts is everything the analyzer records about one expression node:
// its resolved type, value classification, optional constant value, and
// whether an implicit conversion applies when the expression is used in
// its surrounding context.
type ExprFacts struct {
	Type  types.Type
	Class ValueClass

	// Const and ConstVal are set when the expression folded to a compile
	// time constant; ConstVal is always stored widened to int64 (sign
	// bits reinterpreted as needed by the consuming integer type).
	Const    bool
	ConstVal int64

	// ConvertTo is non-nil when a call argument's or an initializer's
	// natural type differs from the type required by context and an
	// implicit conversion applies; generate reads this to insert the right
	// extend or cast. Assignment and return values carry no ConvertTo;
	// generate converts those by comparing the two types directly.
	ConvertTo types.Type

	// Symbol is set for identifier expressions, linking back to the
	// resolved declaration.
	Symbol *Symbol
}

// Facts is the append-only-during-analysis, read-only-during-lowering
// side table keyed by syntax-node identity. Using the node pointer itself
// as the map key is what makes this zero-copy: no id needs to be
// threaded through the CST.
type Facts struct {
	exprs map[*syntax.Node]*ExprFacts
}

// NewFacts creates an empty side table.
func NewFacts() *Facts {
	return &Facts{exprs: make(map[*syntax.Node]*ExprFacts)}
}

// SetExpr records the resolved facts for an expression node.
func (f *Facts) SetExpr(n *syntax.Node, ef *ExprFacts) {
	f.exprs[n] = ef
}

// Expr retrieves the resolved facts for an expression node. A node
// missing from the table (eg. one abandoned inside a NodeError recovery
// subtree) reports ok=false rather than panicking.
func (f *Facts) Expr(n *syntax.Node) (*ExprFacts, bool) {
	ef, ok := f.exprs[n]
	return ef, ok
}

// TypeOf is a convenience wrapper returning just the resolved type.
func (f *Facts) TypeOf(n *syntax.Node) (types.Type, bool) {
	ef, ok := f.exprs[n]
	if !ok {
		return nil, false
	}
	return ef.Type, true
}
