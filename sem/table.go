package sem

// SymbolTable is a module's table of top-level symbols: global variables,
// functions, and structs declared directly in that module. It is distinct
// from the module's root Scope only in that it is what an importing
// module consults to resolve `import "path" [:: Name]` -- the root scope
// additionally holds symbols brought in by the module's own imports,
// which must not themselves be re-exported transitively.
type SymbolTable struct {
	order  []string
	byName map[string]*Symbol
}

// NewSymbolTable creates an empty module symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{byName: make(map[string]*Symbol)}
}

// Define adds sym to the table. It returns false if a top-level symbol
// with the same name is already defined in this module.
func (t *SymbolTable) Define(sym *Symbol) bool {
	if _, exists := t.byName[sym.Name]; exists {
		return false
	}
	t.byName[sym.Name] = sym
	t.order = append(t.order, sym.Name)
	return true
}

// Lookup finds a top-level symbol declared directly in this module.
func (t *SymbolTable) Lookup(name string) (*Symbol, bool) {
	sym, ok := t.byName[name]
	return sym, ok
}

// Symbols returns every top-level symbol in declaration order.
func (t *SymbolTable) Symbols() []*Symbol {
	out := make([]*Symbol, len(t.order))
	for i, name := range t.order {
		out[i] = t.byName[name]
	}
	return out
}
