package generate

import (
	"github.com/llir/llvm/ir/value"

	"github.com/widsnoy/airyc/ast"
	"github.com/widsnoy/airyc/syntax"
	"github.com/widsnoy/airyc/types"
)

// genBlockStmts lowers every statement in a block, in its own local
// scope so a variable declared inside shadows an outer one of the same
// name only for the remainder of the block.
func (g *Generator) genBlockStmts(n *syntax.Node) {
	g.pushScope()
	for _, stmt := range ast.BlockStmts(n) {
		g.genStmt(stmt)
	}
	g.popScope()
}

func (g *Generator) genStmt(n *syntax.Node) {
	// A block already closed by a return/break/continue has no further
	// reachable statements; the analyzer does not reject dead code
	// following one, so lowering just stops emitting into it.
	if g.terminated() {
		return
	}

	switch n.Kind {
	case syntax.NodeVarDeclStmt:
		g.genVarDeclStmt(n)
	case syntax.NodeAssignStmt:
		g.genAssignStmt(n)
	case syntax.NodeExprStmt:
		if expr, ok := ast.ExprStmtExpr(n); ok {
			g.genValue(expr)
		}
	case syntax.NodeIfStmt:
		g.genIfStmt(n)
	case syntax.NodeWhileStmt:
		g.genWhileStmt(n)
	case syntax.NodeBreakStmt:
		g.block.NewBr(g.loopExits[len(g.loopExits)-1])
	case syntax.NodeContinueStmt:
		g.block.NewBr(g.loopHeaders[len(g.loopHeaders)-1])
	case syntax.NodeReturnStmt:
		g.genReturnStmt(n)
	case syntax.NodeBlock:
		g.genBlockStmts(n)
	}
}

func (g *Generator) genVarDeclStmt(n *syntax.Node) {
	vf, _ := g.facts.Expr(n)
	sym := vf.Symbol

	addr := g.enclosingFunc.Blocks[0].NewAlloca(g.convStorageType(sym.Type))
	g.defineLocal(sym, addr)

	if initNode, ok := ast.VarDefInit(n); ok {
		g.genInitInto(addr, initNode, sym.Type)
	}
}

// genInitInto lowers a local's initializer directly into its just-
// allocated storage: a scalar expression stores once, a brace
// initializer recurses element-by-element/field-by-field, leaving any
// element or field the initializer list omits as whatever NewAlloca left
// there (uninitialized, matching C-style local storage).
func (g *Generator) genInitInto(addr value.Value, n *syntax.Node, t types.Type) {
	if n.Kind != syntax.NodeInitList {
		ef, _ := g.facts.Expr(n)
		val := g.genValue(n)
		if ef.ConvertTo != nil {
			val = g.genConvert(val, ef.Type, ef.ConvertTo)
		}
		g.store(addr, val, t)
		return
	}

	elems := ast.InitListElems(n)
	switch at := t.(type) {
	case *types.Array:
		storage := g.convStorageType(at)
		for i, elem := range elems {
			elemAddr := g.block.NewGetElementPtr(storage, addr, gepIdx(0), gepIdx(int64(i)))
			g.genInitInto(elemAddr, elem, at.Elem)
		}
	case *types.StructRef:
		storage := g.convStruct(at.Def)
		for i, elem := range elems {
			if i >= len(at.Def.Fields) {
				break
			}
			fieldAddr := g.block.NewGetElementPtr(storage, addr, gepIdx(0), gepIdx(int64(i)))
			g.genInitInto(fieldAddr, elem, at.Def.Fields[i].Type)
		}
	}
}

func (g *Generator) genAssignStmt(n *syntax.Node) {
	target, _ := ast.AssignTarget(n)
	valNode, _ := ast.AssignValue(n)

	addr := g.genAddr(target)
	tef, _ := g.facts.Expr(target)
	vef, _ := g.facts.Expr(valNode)

	val := g.genValue(valNode)
	if !types.Equals(vef.Type, tef.Type) {
		val = g.genConvert(val, vef.Type, tef.Type)
	}
	g.store(addr, val, tef.Type)
}

// genIfStmt lowers `if`/`else` as a standard three-block diamond; a
// missing else simply routes the false edge straight to the
// continuation block.
func (g *Generator) genIfStmt(n *syntax.Node) {
	cond, _ := ast.IfCond(n)
	then, _ := ast.IfThen(n)
	els, hasElse := ast.IfElse(n)

	condVal := g.genValue(cond)
	condEndBlock := g.block

	thenBlock := g.enclosingFunc.NewBlock("")
	contBlock := g.enclosingFunc.NewBlock("")
	elseBlock := contBlock
	if hasElse {
		elseBlock = g.enclosingFunc.NewBlock("")
	}
	condEndBlock.NewCondBr(condVal, thenBlock, elseBlock)

	g.block = thenBlock
	g.genBlockStmts(then)
	if !g.terminated() {
		g.block.NewBr(contBlock)
	}

	if hasElse {
		g.block = elseBlock
		g.genStmt(els)
		if !g.terminated() {
			g.block.NewBr(contBlock)
		}
	}

	g.block = contBlock
}

// genWhileStmt lowers `while` as header/body/exit blocks, with the
// condition re-evaluated in the header on every iteration including the
// first -- there is no separate loop-entry test.
func (g *Generator) genWhileStmt(n *syntax.Node) {
	cond, _ := ast.WhileCond(n)
	body, _ := ast.WhileBody(n)

	headerBlock := g.enclosingFunc.NewBlock("")
	bodyBlock := g.enclosingFunc.NewBlock("")
	exitBlock := g.enclosingFunc.NewBlock("")

	g.block.NewBr(headerBlock)

	g.block = headerBlock
	condVal := g.genValue(cond)
	g.block.NewCondBr(condVal, bodyBlock, exitBlock)

	g.block = bodyBlock
	g.loopHeaders = append(g.loopHeaders, headerBlock)
	g.loopExits = append(g.loopExits, exitBlock)

	g.genBlockStmts(body)
	if !g.terminated() {
		g.block.NewBr(headerBlock)
	}

	g.loopHeaders = g.loopHeaders[:len(g.loopHeaders)-1]
	g.loopExits = g.loopExits[:len(g.loopExits)-1]
	g.block = exitBlock
}

func (g *Generator) genReturnStmt(n *syntax.Node) {
	valNode, hasValue := ast.ReturnValue(n)
	if !hasValue {
		g.block.NewRet(nil)
		return
	}

	ef, _ := g.facts.Expr(valNode)
	val := g.genValue(valNode)
	if ef.ConvertTo != nil {
		val = g.genConvert(val, ef.Type, ef.ConvertTo)
	} else if !types.Equals(ef.Type, g.returnType) {
		val = g.genConvert(val, ef.Type, g.returnType)
	}
	g.block.NewRet(val)
}
