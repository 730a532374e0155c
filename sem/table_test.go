package sem

import "testing"

func TestSymbolTableDefineAndLookup(t *testing.T) {
	tbl := NewSymbolTable()
	fn := NewSymbol("main", SymFunction, nil)

	if !tbl.Define(fn) {
		t.Fatal("defining a fresh symbol should succeed")
	}
	if tbl.Define(NewSymbol("main", SymFunction, nil)) {
		t.Fatal("redefining the same top-level name should fail")
	}

	got, ok := tbl.Lookup("main")
	if !ok || got != fn {
		t.Fatalf("Lookup(main) = %v, %v; want the original symbol", got, ok)
	}

	if _, ok := tbl.Lookup("missing"); ok {
		t.Fatal("Lookup of an undefined name should report ok=false")
	}
}

func TestSymbolTableSymbolsPreservesOrder(t *testing.T) {
	tbl := NewSymbolTable()
	names := []string{"c", "a", "b"}
	for _, n := range names {
		tbl.Define(NewSymbol(n, SymVariable, nil))
	}

	syms := tbl.Symbols()
	if len(syms) != len(names) {
		t.Fatalf("Symbols() returned %d entries, want %d", len(syms), len(names))
	}
	for i, n := range names {
		if syms[i].Name != n {
			t.Errorf("Symbols()[%d].Name = %q, want %q (declaration order)", i, syms[i].Name, n)
		}
	}
}

func TestNewSymbolAssignsDistinctIDs(t *testing.T) {
	a := NewSymbol("a", SymVariable, nil)
	b := NewSymbol("b", SymVariable, nil)
	if a.Id == b.Id {
		t.Fatal("two freshly allocated symbols must not share an id")
	}
}
