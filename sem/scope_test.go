package sem

import "testing"

func TestScopeLookupWalksParents(t *testing.T) {
	module := NewScope(ScopeModule)
	global := NewSymbol("g", SymVariable, nil)
	if !module.Define(global) {
		t.Fatal("defining g in a fresh scope should succeed")
	}

	fn := module.NewChild(ScopeFunction)
	local := NewSymbol("x", SymVariable, nil)
	fn.Define(local)

	if sym, ok := fn.Lookup("g"); !ok || sym != global {
		t.Fatalf("fn.Lookup(g) should find the module-scope symbol, got %v, %v", sym, ok)
	}
	if sym, ok := fn.Lookup("x"); !ok || sym != local {
		t.Fatalf("fn.Lookup(x) should find its own local symbol, got %v, %v", sym, ok)
	}
	if _, ok := module.Lookup("x"); ok {
		t.Fatal("a local defined in a child scope must not be visible from the parent")
	}
}

func TestScopeDefineRejectsDuplicateInSameScope(t *testing.T) {
	s := NewScope(ScopeBlock)
	s.Define(NewSymbol("x", SymVariable, nil))

	if s.Define(NewSymbol("x", SymVariable, nil)) {
		t.Fatal("redefining x in the same scope should fail")
	}
}

func TestScopeShadowingIsAllowed(t *testing.T) {
	outer := NewScope(ScopeBlock)
	outer.Define(NewSymbol("x", SymVariable, nil))

	inner := outer.NewChild(ScopeBlock)
	shadow := NewSymbol("x", SymVariable, nil)
	if !inner.Define(shadow) {
		t.Fatal("shadowing an outer x from an inner scope should be allowed")
	}

	if sym, _ := inner.Lookup("x"); sym != shadow {
		t.Fatal("lookup from the inner scope should find the shadowing definition, not the outer one")
	}
}

func TestScopeInLoopInherited(t *testing.T) {
	fn := NewScope(ScopeFunction)
	if fn.InnermostLoop() {
		t.Fatal("a fresh function scope should not report being inside a loop")
	}

	loopBody := fn.NewChild(ScopeBlock)
	loopBody.InLoop = true

	nested := loopBody.NewChild(ScopeBlock)
	if !nested.InnermostLoop() {
		t.Fatal("a block nested inside a loop body should inherit InLoop")
	}
}

func TestLookupLocalDoesNotWalkParents(t *testing.T) {
	outer := NewScope(ScopeModule)
	outer.Define(NewSymbol("g", SymVariable, nil))
	inner := outer.NewChild(ScopeBlock)

	if _, ok := inner.LookupLocal("g"); ok {
		t.Fatal("LookupLocal must not fall back to the parent scope")
	}
}
