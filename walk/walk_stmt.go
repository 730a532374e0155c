package walk

import (
	"github.com/widsnoy/airyc/ast"
	"github.com/widsnoy/airyc/report"
	"github.com/widsnoy/airyc/sem"
	"github.com/widsnoy/airyc/syntax"
	"github.com/widsnoy/airyc/types"
)

// walkBodies analyzes every function body, attached body, and global
// initializer in this module, now that every module's signatures and
// struct layouts are final.
func (w *Walker) walkBodies() {
	for _, decl := range ast.Root(w.mod.Root) {
		switch decl.Kind {
		case syntax.NodeFuncDef:
			w.catchDecl(func() { w.walkFuncDef(decl) })
		case syntax.NodeAttachDef:
			w.catchDecl(func() { w.walkAttachDef(decl) })
		case syntax.NodeVarDef:
			w.catchDecl(func() { w.walkGlobalInit(decl) })
		}
	}
}

func (w *Walker) walkFuncDef(decl *syntax.Node) {
	sign, ok := ast.FuncDefSign(decl)
	if !ok {
		return
	}
	nameTok, ok := ast.FuncSignName(sign)
	if !ok {
		return
	}
	sym, ok := w.mod.Symbols.Lookup(nameTok.Text)
	if !ok || sym.Kind != sem.SymFunction {
		return
	}
	body, ok := ast.FuncDefBody(decl)
	if !ok {
		return
	}
	w.walkFunctionBody(sym, body)
}

func (w *Walker) walkAttachDef(decl *syntax.Node) {
	nameTok, ok := ast.AttachDefName(decl)
	if !ok {
		return
	}
	sym, ok := w.mod.Symbols.Lookup(nameTok.Text)
	if !ok || sym.Kind != sem.SymFunction {
		return
	}
	body, ok := ast.AttachDefBody(decl)
	if !ok {
		return
	}
	w.walkFunctionBody(sym, body)
}

func (w *Walker) walkFunctionBody(sym *sem.Symbol, body *syntax.Node) {
	w.pushScope(sem.ScopeFunction)
	for _, p := range sym.Params {
		w.scope.Define(p)
	}

	prevReturn, prevSaw := w.enclosingReturn, w.sawReturn
	w.enclosingReturn = sym.ReturnType
	w.sawReturn = false

	w.walkBlock(body)

	w.enclosingReturn, w.sawReturn = prevReturn, prevSaw
	w.popScope()
}

// walkGlobalInit requires every global's initializer (const or mut) to be
// a compile-time constant, since a global's storage is emitted as a
// statically initialized LLVM global with no runtime init code to run it.
func (w *Walker) walkGlobalInit(decl *syntax.Node) {
	nameTok, ok := ast.VarDefName(decl)
	if !ok {
		return
	}
	sym, ok := w.mod.Symbols.Lookup(nameTok.Text)
	if !ok || sym.Kind != sem.SymVariable || sym.InitExpr == nil {
		return
	}

	ef := w.walkInitializer(sym.InitExpr, sym.Type)
	if !ef.Const {
		w.error(sym.InitExpr.Span(), report.KindConstantExprExpected,
			"initializer for global `%s` must be a constant expression", sym.Name)
	}
}

func (w *Walker) walkBlock(n *syntax.Node) {
	w.pushScope(sem.ScopeBlock)
	for _, stmt := range ast.BlockStmts(n) {
		w.walkStmt(stmt)
	}
	w.popScope()
}

func (w *Walker) walkStmt(n *syntax.Node) {
	switch n.Kind {
	case syntax.NodeVarDeclStmt:
		w.walkVarDeclStmt(n)
	case syntax.NodeAssignStmt:
		w.walkAssignStmt(n)
	case syntax.NodeExprStmt:
		if expr, ok := ast.ExprStmtExpr(n); ok {
			w.walkExpr(expr)
		}
	case syntax.NodeIfStmt:
		w.walkIfStmt(n)
	case syntax.NodeWhileStmt:
		w.walkWhileStmt(n)
	case syntax.NodeBreakStmt:
		if !w.scope.InnermostLoop() {
			w.error(n.Span(), report.KindBreakOutsideLoop, "`break` outside a loop")
		}
	case syntax.NodeContinueStmt:
		if !w.scope.InnermostLoop() {
			w.error(n.Span(), report.KindContinueOutsideLoop, "`continue` outside a loop")
		}
	case syntax.NodeReturnStmt:
		w.walkReturnStmt(n)
	case syntax.NodeBlock:
		w.walkBlock(n)
	}
}

func (w *Walker) walkVarDeclStmt(n *syntax.Node) {
	nameTok, ok := ast.VarDefName(n)
	if !ok {
		return
	}
	typeNode, hasType := ast.VarDefType(n)
	isConst := hasType && ast.TypeIsConstPrefixed(typeNode)

	var declared types.Type
	if hasType {
		declared = w.resolveType(typeNode, false)
	}

	initNode, hasInit := ast.VarDefInit(n)
	if hasInit {
		if declared != nil {
			w.walkInitializer(initNode, declared)
		} else if initNode.Kind == syntax.NodeInitList {
			w.error(nameTok.Span, report.KindTypeMismatch,
				"cannot infer a type for `%s` from a brace initializer; add an explicit type", nameTok.Text)
		} else {
			declared = w.walkExpr(initNode).Type
		}
	} else if isConst {
		w.error(nameTok.Span, report.KindConstantExprExpected,
			"const local `%s` requires an initializer", nameTok.Text)
	}

	if declared == nil {
		declared = types.Void
	}

	sym := sem.NewSymbol(nameTok.Text, sem.SymVariable, nameTok.Span)
	sym.Type = declared
	sym.IsConst = isConst
	sym.Storage = sem.StorageLocal
	if hasInit {
		sym.InitExpr = initNode
	}

	if !w.scope.Define(sym) {
		w.recError(nameTok.Span, report.KindDuplicateDefinition,
			"`%s` is already defined in this scope", nameTok.Text)
	}

	// Recorded under the declaring statement's own node identity, not an
	// expression's, so that generate can recover the symbol it must
	// allocate storage for without re-deriving it from the name.
	w.facts.SetExpr(n, &sem.ExprFacts{Type: declared, Class: sem.LValue, Symbol: sym})
}

func (w *Walker) walkAssignStmt(n *syntax.Node) {
	target, ok := ast.AssignTarget(n)
	if !ok {
		return
	}
	value, ok := ast.AssignValue(n)
	if !ok {
		return
	}

	tef := w.walkExpr(target)
	if tef.Class != sem.LValue {
		w.error(target.Span(), report.KindNotALValue, "left side of `=` is not assignable")
	}
	if w.isConstTarget(target, tef) {
		w.error(target.Span(), report.KindAssignToConst, "cannot assign to a const value")
	}

	vef := w.walkExpr(value)
	w.checkAssignable(value, vef.Type, tef.Type)
}

// isConstTarget reports whether an l-value's underlying storage is
// const-qualified: a const variable binding, a pointer whose own
// qualifier is const, or storage reached through a pointer/array access
// whose pointee qualifier is const.
func (w *Walker) isConstTarget(n *syntax.Node, ef *sem.ExprFacts) bool {
	if ef.Symbol != nil && ef.Symbol.IsConst {
		return true
	}
	if pt, isPtr := ef.Type.(*types.Pointer); isPtr && pt.PointerQual == types.Const {
		return true
	}

	var baseNode *syntax.Node
	switch n.Kind {
	case syntax.NodeUnaryExpr:
		op, operand, ok := ast.UnaryParts(n)
		if !ok || op.Kind != syntax.TOK_STAR {
			return false
		}
		baseNode = operand
	case syntax.NodeArrowExpr:
		base, _, ok := ast.ArrowParts(n)
		if !ok {
			return false
		}
		baseNode = base
	case syntax.NodeIndexExpr:
		base, _, ok := ast.IndexParts(n)
		if !ok {
			return false
		}
		baseNode = base
	default:
		return false
	}

	bef, ok := w.facts.Expr(baseNode)
	if !ok {
		return false
	}
	pt, ok := bef.Type.(*types.Pointer)
	if !ok {
		return false
	}
	return pt.PointeeQual == types.Const
}

func (w *Walker) walkIfStmt(n *syntax.Node) {
	cond, ok := ast.IfCond(n)
	if !ok {
		return
	}
	cef := w.walkExpr(cond)
	if !types.Equals(cef.Type, types.Bool) {
		w.error(cond.Span(), report.KindTypeMismatch, "`if` condition must be a bool")
	}

	if then, ok := ast.IfThen(n); ok {
		w.walkBlock(then)
	}
	if els, ok := ast.IfElse(n); ok {
		w.walkStmt(els)
	}
}

func (w *Walker) walkWhileStmt(n *syntax.Node) {
	cond, ok := ast.WhileCond(n)
	if !ok {
		return
	}
	cef := w.walkExpr(cond)
	if !types.Equals(cef.Type, types.Bool) {
		w.error(cond.Span(), report.KindTypeMismatch, "`while` condition must be a bool")
	}

	body, ok := ast.WhileBody(n)
	if !ok {
		return
	}
	w.pushLoopScope()
	for _, stmt := range ast.BlockStmts(body) {
		w.walkStmt(stmt)
	}
	w.popScope()
}

// pushLoopScope opens a block scope with InLoop forced true, regardless of
// whether the enclosing scope is itself inside a loop -- while bodies
// always establish a fresh break/continue target.
func (w *Walker) pushLoopScope() {
	child := w.scope.NewChild(sem.ScopeBlock)
	child.InLoop = true
	w.scope = child
}

func (w *Walker) walkReturnStmt(n *syntax.Node) {
	value, hasValue := ast.ReturnValue(n)

	isVoidFn := types.Equals(w.enclosingReturn, types.Void)
	switch {
	case hasValue && isVoidFn:
		w.error(n.Span(), report.KindTypeMismatch, "function returning void cannot return a value")
	case !hasValue && !isVoidFn:
		w.error(n.Span(), report.KindTypeMismatch, "function must return a value of type `%s`", w.enclosingReturn.Repr())
	case hasValue:
		ef := w.walkExpr(value)
		w.checkAssignable(value, ef.Type, w.enclosingReturn)
	}

	w.sawReturn = true
}

func (w *Walker) checkAssignable(n *syntax.Node, from, to types.Type) {
	if types.Equals(from, to) {
		return
	}
	if !types.ConvertibleTo(from, to) {
		w.error(n.Span(), report.KindTypeMismatch, "cannot convert `%s` to `%s`", from.Repr(), to.Repr())
	}
}
