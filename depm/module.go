// Package depm builds and resolves the module graph: it loads source files
// reachable from the entry file, parses each exactly once, resolves
// `import` directives to their target modules, and detects circular
// dependencies.
//
// A module here is a single source file plus its analysis artifacts.
// Airyc has no package hierarchy -- imports name files, not directories.
package depm

import (
	"github.com/widsnoy/airyc/report"
	"github.com/widsnoy/airyc/sem"
	"github.com/widsnoy/airyc/syntax"
)

// ModuleID uniquely identifies a loaded module within a ModuleGraph.
type ModuleID uint32

// ImportKind distinguishes a bare `import "p"` from a selective
// `import "p" :: Name`.
type ImportKind int

const (
	ImportAll ImportKind = iota
	ImportSelective
)

// Import is one resolved `import` directive.
type Import struct {
	// Node is the NodeImport CST node this import was parsed from.
	Node *syntax.Node

	Kind ImportKind

	// Symbol is the selectively-imported name; empty when Kind is
	// ImportAll.
	Symbol string

	// Target is the resolved module, set once the loader has processed the
	// imported path. It is the zero ModuleID until resolution succeeds.
	Target ModuleID

	// Resolved reports whether Target was successfully filled in.
	Resolved bool

	// resolvedPath is the canonical absolute path the loader computed for
	// this import before the target module was necessarily loaded yet.
	resolvedPath string
}

// Module is a single loaded source file together with everything the
// analyzer and lowering phases attach to it.
type Module struct {
	ID ModuleID

	// AbsPath is the canonicalized absolute path used as the module's
	// identity in the graph. ReprPath is the path shown to the user in
	// diagnostics.
	AbsPath, ReprPath string

	Source []byte
	Root   *syntax.Node

	Imports []*Import

	// Scope and Symbols are populated by package walk during analysis; a
	// freshly loaded module has both nil.
	Scope   *sem.Scope
	Symbols *sem.SymbolTable

	// Failed is set if the module's own file failed to load or parse
	// badly enough that analysis should skip it.
	Failed bool
}

// NewModule constructs an unanalyzed module from parsed source.
func NewModule(id ModuleID, absPath, reprPath string, source []byte, root *syntax.Node) *Module {
	return &Module{
		ID:       id,
		AbsPath:  absPath,
		ReprPath: reprPath,
		Source:   source,
		Root:     root,
	}
}

// ModuleGraph is the full set of loaded modules and the import edges
// between them.
type ModuleGraph struct {
	byPath map[string]ModuleID
	byID   map[ModuleID]*Module

	// EntryID is the module containing the program's entry point.
	EntryID ModuleID

	nextID ModuleID

	Reporter *report.Reporter
}

// NewModuleGraph creates an empty module graph.
func NewModuleGraph() *ModuleGraph {
	return &ModuleGraph{
		byPath: make(map[string]ModuleID),
		byID:   make(map[ModuleID]*Module),
	}
}

// Lookup returns the module already loaded for a canonical path, if any.
func (g *ModuleGraph) Lookup(absPath string) (*Module, bool) {
	id, ok := g.byPath[absPath]
	if !ok {
		return nil, false
	}
	return g.byID[id], true
}

// Module returns the module with the given id.
func (g *ModuleGraph) Module(id ModuleID) *Module {
	return g.byID[id]
}

// Modules returns every loaded module, in load order.
func (g *ModuleGraph) Modules() []*Module {
	out := make([]*Module, 0, len(g.byID))
	for id := ModuleID(1); id <= g.nextID; id++ {
		if m, ok := g.byID[id]; ok {
			out = append(out, m)
		}
	}
	return out
}

// insert registers a freshly parsed module under its canonical path and
// assigns it a fresh id.
func (g *ModuleGraph) insert(absPath, reprPath string, source []byte, root *syntax.Node) *Module {
	g.nextID++
	id := g.nextID
	m := NewModule(id, absPath, reprPath, source, root)
	g.byPath[absPath] = id
	g.byID[id] = m
	return m
}
