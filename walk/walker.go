// Package walk implements the semantic analyzer: a stateful tree walk
// over every loaded module, in topological import order, that builds
// scopes and symbol tables, resolves types, evaluates constant
// expressions, and writes resolved facts into a side table the lowering
// phase later reads.
//
// A Walker struct carries the module being walked, a local scope stack,
// an enclosing-return-type slot, and a panic/recover escape hatch for
// errors that should abandon the current declaration without aborting
// the rest of the module. Orchestration runs across the whole module
// graph: modules are visited in topological import order, and a struct
// registry shared across the whole compile powers a single cross-module
// recursive-type check once every module's fields have been resolved.
package walk

import (
	"fmt"

	"github.com/widsnoy/airyc/depm"
	"github.com/widsnoy/airyc/report"
	"github.com/widsnoy/airyc/sem"
	"github.com/widsnoy/airyc/types"
)

// Walker analyzes one module's declarations. A fresh Walker is created
// per module by AnalyzeAll; its local-scope stack and enclosing-function
// state reset between top-level declarations.
type Walker struct {
	mod   *depm.Module
	graph *depm.ModuleGraph
	facts *sem.Facts

	scope *sem.Scope

	enclosingReturn types.Type
	sawReturn       bool
}

// newWalker creates a walker for mod, rooted at mod's module scope.
func newWalker(mod *depm.Module, graph *depm.ModuleGraph, facts *sem.Facts) *Walker {
	return &Walker{mod: mod, graph: graph, facts: facts, scope: mod.Scope}
}

// AnalyzeAll runs every analysis pass over the whole module graph in
// dependency order, returning the shared side table and whether the
// program is free of analysis errors.
func AnalyzeAll(graph *depm.ModuleGraph) (*sem.Facts, bool) {
	order := topoOrder(graph)
	facts := sem.NewFacts()

	for _, mod := range order {
		mod.Scope = sem.NewScope(sem.ScopeModule)
		mod.Symbols = sem.NewSymbolTable()
	}

	var allStructs []*types.StructDef
	for _, mod := range order {
		w := newWalker(mod, graph, facts)
		w.wireImportedStructs()
		allStructs = append(allStructs, w.declareStructs()...)
	}

	for _, mod := range order {
		w := newWalker(mod, graph, facts)
		w.resolveStructFields()
	}

	if cycle, ok := types.RecursiveType(allStructs); !ok {
		reportRecursiveType(order, cycle)
	}

	for _, sd := range allStructs {
		sd.Layout()
	}

	for _, mod := range order {
		w := newWalker(mod, graph, facts)
		w.wireImportedFuncs()
		w.declareFuncsAndGlobals()
	}

	for _, mod := range order {
		w := newWalker(mod, graph, facts)
		w.walkBodies()
	}

	return facts, report.ShouldProceed()
}

// reportRecursiveType attaches the RecursiveType diagnostic, without a
// source span, to the first module in analysis order, with a help line
// spelling out the cycle path.
func reportRecursiveType(order []*depm.Module, cyclePath []string) {
	if len(cyclePath) == 0 || len(order) == 0 {
		return
	}
	help := cyclePath[0]
	for _, name := range cyclePath[1:] {
		help += " -> " + name
	}
	m := order[0]
	report.ReportCompileError(m.AbsPath, m.ReprPath, nil, report.KindRecursiveType, help,
		"struct type contains itself by value")
}

// topoOrder returns the modules of graph sorted so that every module
// appears after all modules it imports. The import graph is acyclic by
// the time AnalyzeAll runs -- depm.CheckImportCycles has already rejected
// cycles during loading.
func topoOrder(graph *depm.ModuleGraph) []*depm.Module {
	var order []*depm.Module
	visited := make(map[depm.ModuleID]bool)

	var visit func(id depm.ModuleID)
	visit = func(id depm.ModuleID) {
		if visited[id] {
			return
		}
		visited[id] = true
		m := graph.Module(id)
		for _, imp := range m.Imports {
			if imp.Resolved {
				visit(imp.Target)
			}
		}
		order = append(order, m)
	}

	for _, m := range graph.Modules() {
		visit(m.ID)
	}

	return order
}

// -----------------------------------------------------------------------------
// Shared helpers used by every walk_*.go file in this package.

// error reports an unrecoverable error for the current declaration: it
// panics with a *report.LocalCompileError, which the deferred
// report.CatchErrors call at the top of each declaration's analysis
// catches and folds into the collected diagnostics.
func (w *Walker) error(span *report.TextSpan, kind report.Kind, msg string, args ...interface{}) {
	panic(report.Raise(span, kind, msg, args...))
}

// recError reports a recoverable error without abandoning the
// declaration's analysis.
func (w *Walker) recError(span *report.TextSpan, kind report.Kind, msg string, args ...interface{}) {
	report.ReportCompileError(w.mod.AbsPath, w.mod.ReprPath, span, kind, "", fmt.Sprintf(msg, args...))
}

// lookup searches the current scope chain, following shadowing rules
// (inner scopes first).
func (w *Walker) lookup(name string) (*sem.Symbol, bool) {
	return w.scope.Lookup(name)
}

// pushScope / popScope manage nested block scopes during statement
// walking.
func (w *Walker) pushScope(kind sem.ScopeKind) {
	w.scope = w.scope.NewChild(kind)
}

func (w *Walker) popScope() {
	w.scope = w.scope.Parent
}

// catchDecl wraps the analysis of a single top-level declaration so a
// LocalCompileError raised anywhere inside it aborts only that
// declaration, not the whole module, except when the failure has already
// invalidated state the rest of the module depends on.
func (w *Walker) catchDecl(f func()) {
	defer report.CatchErrors(w.mod.AbsPath, w.mod.ReprPath)
	f()
}

// structRefOf looks up a previously declared struct by name in the scope
// chain, returning its StructDef if the name resolves to a struct symbol.
func (w *Walker) structRefOf(name string) (*types.StructDef, bool) {
	sym, ok := w.lookup(name)
	if ok && sym.Kind == sem.SymImportedAlias {
		sym = sym.AliasOf
	}
	if !ok || sym.Kind != sem.SymStruct {
		return nil, false
	}
	return sym.StructDef, true
}
