package generate

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"

	"github.com/widsnoy/airyc/ast"
	"github.com/widsnoy/airyc/sem"
	"github.com/widsnoy/airyc/syntax"
)

// declareOwnFunc registers the LLVM function for a signature or function
// definition owned by this module. The body, if any, is filled in later
// by defineFuncBody/defineAttachBody, so that a function calling another
// one declared later in the same file always finds a signature to call.
func (g *Generator) declareOwnFunc(decl *syntax.Node) {
	sig := decl
	if decl.Kind == syntax.NodeFuncDef {
		s, ok := ast.FuncDefSign(decl)
		if !ok {
			return
		}
		sig = s
	}
	nameTok, ok := ast.FuncSignName(sig)
	if !ok {
		return
	}
	sym, ok := g.mod.Symbols.Lookup(nameTok.Text)
	if !ok || sym.Kind != sem.SymFunction {
		return
	}
	if _, exists := g.funcs[sym]; exists {
		return
	}
	g.funcs[sym] = g.declareFuncSignature(sym, nameTok.Text)
}

// declareFuncSignature builds the *ir.Func for sym without a body; used
// both for this module's own functions and for lazily declared externs
// to imported functions.
func (g *Generator) declareFuncSignature(sym *sem.Symbol, name string) *ir.Func {
	params := make([]*ir.Param, len(sym.Params))
	for i, p := range sym.Params {
		params[i] = ir.NewParam(p.Name, g.convType(p.Type))
	}

	fn := g.llMod.NewFunc(name, g.convType(sym.ReturnType), params...)
	fn.Sig.Variadic = sym.IsVariadic
	fn.Linkage = enum.LinkageExternal
	return fn
}

// declareOwnGlobal registers the LLVM global for a module-level variable.
// Its initializer was required to be constant-foldable by the analyzer
// (walk.walkGlobalInit), so it is always emitted as a fully resolved
// constant rather than left for runtime init code.
func (g *Generator) declareOwnGlobal(decl *syntax.Node) {
	nameTok, ok := ast.VarDefName(decl)
	if !ok {
		return
	}
	sym, ok := g.mod.Symbols.Lookup(nameTok.Text)
	if !ok || sym.Kind != sem.SymVariable {
		return
	}
	if _, exists := g.globals[sym]; exists {
		return
	}

	storageType := g.convStorageType(sym.Type)
	var init constant.Constant
	if sym.InitExpr != nil {
		init = g.constExpr(sym.InitExpr, sym.Type)
	} else {
		init = constant.NewZeroInitializer(storageType)
	}

	gv := g.llMod.NewGlobalDef(nameTok.Text, init)
	gv.Immutable = sym.IsConst
	gv.Linkage = enum.LinkageExternal
	g.globals[sym] = gv
}

// resolveFunc returns the LLVM function for sym, lazily declaring an
// external signature in this module if sym belongs to another one.
func (g *Generator) resolveFunc(sym *sem.Symbol) *ir.Func {
	if fn, ok := g.funcs[sym]; ok {
		return fn
	}
	fn := g.declareFuncSignature(sym, sym.Name)
	g.funcs[sym] = fn
	return fn
}

// resolveGlobal returns the LLVM value for a global variable symbol,
// lazily declaring an external reference to an imported one.
func (g *Generator) resolveGlobal(sym *sem.Symbol) *ir.Global {
	if gv, ok := g.globals[sym]; ok {
		return gv.(*ir.Global)
	}
	gv := g.llMod.NewGlobal(sym.Name, g.convStorageType(sym.Type))
	gv.Linkage = enum.LinkageExternal
	g.globals[sym] = gv
	return gv
}

func (g *Generator) defineFuncBody(decl *syntax.Node) {
	sign, ok := ast.FuncDefSign(decl)
	if !ok {
		return
	}
	nameTok, ok := ast.FuncSignName(sign)
	if !ok {
		return
	}
	sym, ok := g.mod.Symbols.Lookup(nameTok.Text)
	if !ok || sym.Kind != sem.SymFunction {
		return
	}
	body, ok := ast.FuncDefBody(decl)
	if !ok {
		return
	}
	g.genFuncBody(sym, body)
}

func (g *Generator) defineAttachBody(decl *syntax.Node) {
	nameTok, ok := ast.AttachDefName(decl)
	if !ok {
		return
	}
	sym, ok := g.mod.Symbols.Lookup(nameTok.Text)
	if !ok || sym.Kind != sem.SymFunction {
		return
	}
	body, ok := ast.AttachDefBody(decl)
	if !ok {
		return
	}
	g.genFuncBody(sym, body)
}

// genFuncBody emits a function's entry block, allocas for every
// parameter so that later address-of and assignment lowering need not
// special-case them, and its statements, then closes any still-
// unterminated trailing block with an implicit return.
func (g *Generator) genFuncBody(sym *sem.Symbol, body *syntax.Node) {
	fn := g.funcs[sym]
	entry := fn.NewBlock("entry")
	g.enclosingFunc = fn
	g.block = entry
	g.returnType = sym.ReturnType

	g.pushScope()
	for i, p := range sym.Params {
		addr := entry.NewAlloca(g.convStorageType(p.Type))
		entry.NewStore(fn.Params[i], addr)
		g.defineLocal(p, addr)
	}

	g.genBlockStmts(body)

	if !g.terminated() {
		g.block.NewRet(nil)
	}
	g.popScope()
}
