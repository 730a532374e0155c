package sem

import (
	"testing"

	"github.com/widsnoy/airyc/syntax"
	"github.com/widsnoy/airyc/types"
)

func TestFactsSetAndRetrieve(t *testing.T) {
	facts := NewFacts()
	n := &syntax.Node{Kind: syntax.NodeIntLit}

	facts.SetExpr(n, &ExprFacts{Type: types.I32, Class: RValue, Const: true, ConstVal: 42})

	ef, ok := facts.Expr(n)
	if !ok {
		t.Fatal("Expr should find the fact just set")
	}
	if !types.Equals(ef.Type, types.I32) || ef.ConstVal != 42 {
		t.Fatalf("got %+v, want Type=i32 ConstVal=42", ef)
	}

	ty, ok := facts.TypeOf(n)
	if !ok || !types.Equals(ty, types.I32) {
		t.Fatalf("TypeOf = %v, %v; want i32, true", ty, ok)
	}
}

func TestFactsMissingNodeReportsNotOK(t *testing.T) {
	facts := NewFacts()
	n := &syntax.Node{Kind: syntax.NodeIntLit}

	if _, ok := facts.Expr(n); ok {
		t.Fatal("a node never recorded should report ok=false, not panic")
	}
}

func TestFactsKeyedByNodeIdentityNotKind(t *testing.T) {
	facts := NewFacts()
	a := &syntax.Node{Kind: syntax.NodeIntLit}
	b := &syntax.Node{Kind: syntax.NodeIntLit}

	facts.SetExpr(a, &ExprFacts{Type: types.I32})

	if _, ok := facts.Expr(b); ok {
		t.Fatal("two distinct node pointers of the same kind must not alias in the facts table")
	}
}
