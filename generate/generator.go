package generate

import (
	"strings"

	"github.com/llir/llvm/ir"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/widsnoy/airyc/ast"
	"github.com/widsnoy/airyc/depm"
	"github.com/widsnoy/airyc/sem"
	"github.com/widsnoy/airyc/syntax"
	"github.com/widsnoy/airyc/types"
)

// Output pairs one compiled module with its generated LLVM IR.
type Output struct {
	Module *depm.Module
	IR     *ir.Module
}

// Generator lowers a single Airyc module to one LLVM module. A fresh
// Generator is created per module by GenerateAll; cross-module symbol
// references are resolved lazily, by emitting an external (bodyless)
// declaration into this module's IR the first time an imported symbol is
// actually used, the same way separately compiled C translation units
// reference each other.
type Generator struct {
	mod   *depm.Module
	graph *depm.ModuleGraph
	facts *sem.Facts

	llMod *ir.Module

	structTypes map[*types.StructDef]*lltypes.StructType
	funcs       map[*sem.Symbol]*ir.Func
	globals     map[*sem.Symbol]value.Value

	enclosingFunc *ir.Func
	block         *ir.Block
	returnType    types.Type

	// locals is a stack of block scopes mapping a variable symbol to its
	// entry-block alloca.
	locals []map[*sem.Symbol]value.Value

	// loopExits/loopHeaders track the innermost enclosing while loop's
	// exit and header blocks, for break/continue lowering.
	loopExits   []*ir.Block
	loopHeaders []*ir.Block

	stringCounter int
}

func newGenerator(mod *depm.Module, graph *depm.ModuleGraph, facts *sem.Facts) *Generator {
	return &Generator{
		mod:         mod,
		graph:       graph,
		facts:       facts,
		llMod:       ir.NewModule(),
		structTypes: make(map[*types.StructDef]*lltypes.StructType),
		funcs:       make(map[*sem.Symbol]*ir.Func),
		globals:     make(map[*sem.Symbol]value.Value),
	}
}

// GenerateAll lowers every successfully analyzed module in graph to its
// own LLVM module, in no particular order -- each translation unit is
// independent once analysis has resolved every cross-module reference,
// since lowering itself performs no further name resolution.
func GenerateAll(graph *depm.ModuleGraph, facts *sem.Facts) []*Output {
	var outs []*Output
	for _, mod := range graph.Modules() {
		if mod.Failed {
			continue
		}
		g := newGenerator(mod, graph, facts)
		g.run()
		outs = append(outs, &Output{Module: mod, IR: g.llMod})
	}
	return outs
}

func (g *Generator) run() {
	for _, decl := range ast.Root(g.mod.Root) {
		switch decl.Kind {
		case syntax.NodeFuncSign, syntax.NodeFuncDef:
			g.declareOwnFunc(decl)
		case syntax.NodeVarDef:
			g.declareOwnGlobal(decl)
		}
	}

	for _, decl := range ast.Root(g.mod.Root) {
		switch decl.Kind {
		case syntax.NodeFuncDef:
			g.defineFuncBody(decl)
		case syntax.NodeAttachDef:
			g.defineAttachBody(decl)
		}
	}
}

// mangleModule turns an absolute source path into an identifier-safe
// fragment used to namespace per-module LLVM type and symbol names.
func mangleModule(absPath string) string {
	var sb strings.Builder
	for _, r := range absPath {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// pushScope / popScope manage the local-variable scope stack used during
// function body generation.
func (g *Generator) pushScope() {
	g.locals = append(g.locals, make(map[*sem.Symbol]value.Value))
}

func (g *Generator) popScope() {
	g.locals = g.locals[:len(g.locals)-1]
}

func (g *Generator) defineLocal(sym *sem.Symbol, addr value.Value) {
	g.locals[len(g.locals)-1][sym] = addr
}

// varAddr returns the address of sym's storage: a local's alloca, a
// parameter's alloca, or a global's address, declaring an external
// reference to an imported global on first use.
func (g *Generator) varAddr(sym *sem.Symbol) value.Value {
	for i := len(g.locals) - 1; i >= 0; i-- {
		if addr, ok := g.locals[i][sym]; ok {
			return addr
		}
	}
	return g.resolveGlobal(sym)
}

// terminated reports whether the current block already ends in a
// terminator instruction. After lowering an if or while, the caller
// checks this before inserting a fall-through branch to the resumed
// block.
func (g *Generator) terminated() bool {
	return g.block.Term != nil
}
