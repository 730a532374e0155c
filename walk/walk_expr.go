package walk

import (
	"github.com/widsnoy/airyc/ast"
	"github.com/widsnoy/airyc/report"
	"github.com/widsnoy/airyc/sem"
	"github.com/widsnoy/airyc/syntax"
	"github.com/widsnoy/airyc/types"
)

// walkExpr type-checks n, writes its resolved facts into the side table,
// and returns them. Every expression node is visited exactly once per
// analysis; callers that need the same facts again read them back from
// w.facts rather than re-walking.
func (w *Walker) walkExpr(n *syntax.Node) *sem.ExprFacts {
	var ef *sem.ExprFacts

	switch n.Kind {
	case syntax.NodeIntLit, syntax.NodeCharLit, syntax.NodeBoolLit:
		val, typ, ok := w.foldConst(n)
		if !ok {
			w.error(n.Span(), report.KindConstantExprExpected, "malformed literal")
		}
		ef = &sem.ExprFacts{Type: typ, Class: sem.RValue, Const: true, ConstVal: val}
	case syntax.NodeNullLit:
		ef = &sem.ExprFacts{
			Type:  &types.Pointer{Pointee: types.Void, PointerQual: types.Mut, PointeeQual: types.Mut},
			Class: sem.RValue, Const: true, ConstVal: 0,
		}
	case syntax.NodeStringLit:
		// A string literal's element type is unsigned: it never implicitly
		// converts to a signed-byte pointer. It counts as a constant
		// expression -- its address is fixed at link time -- so it may
		// initialize a global the same way an integer literal can.
		ef = &sem.ExprFacts{
			Type:  &types.Pointer{Pointee: types.U8, PointerQual: types.Mut, PointeeQual: types.Const},
			Class: sem.RValue,
			Const: true,
		}
	case syntax.NodeIdentExpr:
		ef = w.walkIdent(n)
	case syntax.NodeParenExpr:
		ef = w.walkParen(n)
	case syntax.NodeUnaryExpr:
		ef = w.walkUnary(n)
	case syntax.NodeBinaryExpr:
		ef = w.walkBinary(n)
	case syntax.NodeCallExpr:
		ef = w.walkCall(n)
	case syntax.NodeIndexExpr:
		ef = w.walkIndex(n)
	case syntax.NodeFieldExpr:
		ef = w.walkField(n)
	case syntax.NodeArrowExpr:
		ef = w.walkArrow(n)
	default:
		ef = &sem.ExprFacts{Type: types.Void, Class: sem.RValue}
	}

	w.facts.SetExpr(n, ef)
	return ef
}

func (w *Walker) walkIdent(n *syntax.Node) *sem.ExprFacts {
	tok, ok := ast.IdentName(n)
	if !ok {
		return &sem.ExprFacts{Type: types.Void, Class: sem.RValue}
	}
	sym, ok := w.lookup(tok.Text)
	if !ok {
		w.error(tok.Span, report.KindUnresolvedName, "undefined name `%s`", tok.Text)
	}
	actual := sym
	if sym.Kind == sem.SymImportedAlias {
		actual = sym.AliasOf
	}
	if actual.Kind != sem.SymVariable {
		w.error(tok.Span, report.KindTypeMismatch, "`%s` is not a variable", tok.Text)
	}
	return &sem.ExprFacts{Type: actual.Type, Class: sem.LValue, Symbol: actual}
}

func (w *Walker) walkParen(n *syntax.Node) *sem.ExprFacts {
	inner, ok := ast.ParenInner(n)
	if !ok {
		return &sem.ExprFacts{Type: types.Void, Class: sem.RValue}
	}
	ief := w.walkExpr(inner)
	cp := *ief
	return &cp
}

func (w *Walker) walkUnary(n *syntax.Node) *sem.ExprFacts {
	op, operand, ok := ast.UnaryParts(n)
	if !ok {
		return &sem.ExprFacts{Type: types.Void, Class: sem.RValue}
	}
	oef := w.walkExpr(operand)

	switch op.Kind {
	case syntax.TOK_PLUS, syntax.TOK_MINUS:
		if p, isPrim := oef.Type.(types.Prim); !isPrim || !p.IsInteger() {
			w.error(n.Span(), report.KindTypeMismatch, "unary `%s` requires an integer operand", op.Text)
		}
		return &sem.ExprFacts{Type: oef.Type, Class: sem.RValue}
	case syntax.TOK_NOT:
		if !types.Equals(oef.Type, types.Bool) {
			w.error(n.Span(), report.KindTypeMismatch, "`!` requires a bool operand")
		}
		return &sem.ExprFacts{Type: types.Bool, Class: sem.RValue}
	case syntax.TOK_AMP:
		if oef.Class != sem.LValue {
			w.error(operand.Span(), report.KindNotALValue, "cannot take the address of this expression")
		}
		pq := types.Mut
		if oef.Symbol != nil && oef.Symbol.IsConst {
			pq = types.Const
		}
		return &sem.ExprFacts{
			Type:  &types.Pointer{Pointee: oef.Type, PointerQual: types.Mut, PointeeQual: pq},
			Class: sem.RValue,
		}
	case syntax.TOK_STAR:
		pt, isPtr := oef.Type.(*types.Pointer)
		if !isPtr {
			w.error(n.Span(), report.KindTypeMismatch, "cannot dereference a non-pointer value")
		}
		if pt.IsVoidPointer() {
			w.error(n.Span(), report.KindVoidPointerDeref, "cannot dereference a pointer to void")
			return &sem.ExprFacts{Type: types.Void, Class: sem.RValue}
		}
		return &sem.ExprFacts{Type: pt.Pointee, Class: sem.LValue}
	default:
		return &sem.ExprFacts{Type: types.Void, Class: sem.RValue}
	}
}

func (w *Walker) walkBinary(n *syntax.Node) *sem.ExprFacts {
	lhs, op, rhs, ok := ast.BinaryParts(n)
	if !ok {
		return &sem.ExprFacts{Type: types.Void, Class: sem.RValue}
	}
	lef := w.walkExpr(lhs)

	switch op.Kind {
	case syntax.TOK_LAND, syntax.TOK_LOR:
		if !types.Equals(lef.Type, types.Bool) {
			w.error(lhs.Span(), report.KindTypeMismatch, "`%s` requires bool operands", op.Text)
		}
		ref := w.walkExpr(rhs)
		if !types.Equals(ref.Type, types.Bool) {
			w.error(rhs.Span(), report.KindTypeMismatch, "`%s` requires bool operands", op.Text)
		}
		return &sem.ExprFacts{Type: types.Bool, Class: sem.RValue}
	}

	ref := w.walkExpr(rhs)

	if lp, lok := lef.Type.(*types.Pointer); lok {
		return w.walkPointerBinary(n, op, lp, lef, rhs, ref)
	}
	if rp, rok := ref.Type.(*types.Pointer); rok && op.Kind == syntax.TOK_PLUS {
		return w.walkPointerBinary(n, op, rp, ref, lhs, lef)
	}

	common, ok := types.CommonType(lef.Type, ref.Type)
	if !ok {
		w.error(n.Span(), report.KindTypeMismatch, "mismatched operand types `%s` and `%s`", lef.Type.Repr(), ref.Type.Repr())
	}

	switch op.Kind {
	case syntax.TOK_EQ, syntax.TOK_NEQ, syntax.TOK_LT, syntax.TOK_GT, syntax.TOK_LE, syntax.TOK_GE:
		return &sem.ExprFacts{Type: types.Bool, Class: sem.RValue}
	default:
		return &sem.ExprFacts{Type: common, Class: sem.RValue}
	}
}

// walkPointerBinary type-checks pointer arithmetic: p+n and p-n scale by
// the pointee size, while p1-p2 over the same pointee yields an i64
// element count.
func (w *Walker) walkPointerBinary(n *syntax.Node, op *syntax.Token, pt *types.Pointer, ptFacts *sem.ExprFacts, otherNode *syntax.Node, otherFacts *sem.ExprFacts) *sem.ExprFacts {
	if otherPt, isPtr := otherFacts.Type.(*types.Pointer); isPtr {
		if op.Kind != syntax.TOK_MINUS {
			w.error(n.Span(), report.KindTypeMismatch, "two pointers may only be subtracted, not combined with `%s`", op.Text)
		}
		if pt.IsVoidPointer() || otherPt.IsVoidPointer() || !types.Equals(pt.Pointee, otherPt.Pointee) {
			w.error(n.Span(), report.KindTypeMismatch, "subtracted pointers must share a non-void pointee type")
		}
		return &sem.ExprFacts{Type: types.I64, Class: sem.RValue}
	}

	if p, isPrim := otherFacts.Type.(types.Prim); !isPrim || !p.IsInteger() {
		w.error(otherNode.Span(), report.KindTypeMismatch, "pointer arithmetic requires an integer offset")
	}
	if op.Kind != syntax.TOK_PLUS && op.Kind != syntax.TOK_MINUS {
		w.error(n.Span(), report.KindTypeMismatch, "`%s` is not valid between a pointer and an integer", op.Text)
	}

	_ = ptFacts
	return &sem.ExprFacts{Type: pt, Class: sem.RValue}
}

func (w *Walker) walkCall(n *syntax.Node) *sem.ExprFacts {
	callee, argNodes, ok := ast.CallParts(n)
	if !ok {
		return &sem.ExprFacts{Type: types.Void, Class: sem.RValue}
	}

	nameTok, isIdent := ast.IdentName(callee)
	if !isIdent {
		w.error(callee.Span(), report.KindTypeMismatch, "call target must be a function name")
		return &sem.ExprFacts{Type: types.Void, Class: sem.RValue}
	}

	sym, ok := w.lookup(nameTok.Text)
	if !ok {
		w.error(nameTok.Span, report.KindUnresolvedName, "undefined function `%s`", nameTok.Text)
	}
	if sym.Kind == sem.SymImportedAlias {
		sym = sym.AliasOf
	}
	if sym.Kind != sem.SymFunction {
		w.error(nameTok.Span, report.KindTypeMismatch, "`%s` is not a function", nameTok.Text)
	}

	if len(argNodes) < len(sym.Params) || (!sym.IsVariadic && len(argNodes) != len(sym.Params)) {
		w.error(n.Span(), report.KindArityMismatch, "function `%s` expects %d argument(s), got %d",
			nameTok.Text, len(sym.Params), len(argNodes))
	}

	for i, argNode := range argNodes {
		aef := w.walkExpr(argNode)
		argType := decayArray(aef.Type)
		if i < len(sym.Params) {
			want := sym.Params[i].Type
			if !types.Equals(argType, want) {
				if !types.ConvertibleTo(argType, want) {
					w.error(argNode.Span(), report.KindTypeMismatch,
						"argument %d to `%s`: cannot convert `%s` to `%s`", i+1, nameTok.Text, argType.Repr(), want.Repr())
				}
				aef.ConvertTo = want
			}
		}
	}

	return &sem.ExprFacts{Type: sym.ReturnType, Class: sem.RValue, Symbol: sym}
}

func (w *Walker) walkIndex(n *syntax.Node) *sem.ExprFacts {
	base, idx, ok := ast.IndexParts(n)
	if !ok {
		return &sem.ExprFacts{Type: types.Void, Class: sem.RValue}
	}
	bef := w.walkExpr(base)
	ief := w.walkExpr(idx)

	if p, isPrim := ief.Type.(types.Prim); !isPrim || !p.IsInteger() {
		w.error(idx.Span(), report.KindTypeMismatch, "array index must be an integer")
	}

	switch bt := bef.Type.(type) {
	case *types.Array:
		// A multi-dimensional index chain, a[i][j], is two IndexExpr nodes:
		// the outer one's base is the inner IndexExpr node, whose own facts
		// already give it the row's array type as an l-value, so indexing
		// it again recurses through this same case with no special casing.
		return &sem.ExprFacts{Type: bt.Elem, Class: sem.LValue}
	case *types.Pointer:
		if bt.IsVoidPointer() {
			w.error(base.Span(), report.KindVoidPointerDeref, "cannot index a pointer to void")
		}
		return &sem.ExprFacts{Type: bt.Pointee, Class: sem.LValue}
	default:
		w.error(base.Span(), report.KindTypeMismatch, "cannot index a value of type `%s`", bef.Type.Repr())
		return &sem.ExprFacts{Type: types.Void, Class: sem.RValue}
	}
}

func (w *Walker) walkField(n *syntax.Node) *sem.ExprFacts {
	base, fieldTok, ok := ast.FieldParts(n)
	if !ok {
		return &sem.ExprFacts{Type: types.Void, Class: sem.RValue}
	}
	bef := w.walkExpr(base)

	sr, isStruct := bef.Type.(*types.StructRef)
	if !isStruct {
		w.error(base.Span(), report.KindTypeMismatch, "`.` requires a struct value, got `%s`", bef.Type.Repr())
		return &sem.ExprFacts{Type: types.Void, Class: sem.RValue}
	}

	ft, ok := lookupField(sr.Def, fieldTok.Text)
	if !ok {
		w.error(fieldTok.Span, report.KindUnresolvedName, "struct `%s` has no field `%s`", sr.Def.Name, fieldTok.Text)
	}
	return &sem.ExprFacts{Type: ft, Class: sem.LValue}
}

func (w *Walker) walkArrow(n *syntax.Node) *sem.ExprFacts {
	base, fieldTok, ok := ast.ArrowParts(n)
	if !ok {
		return &sem.ExprFacts{Type: types.Void, Class: sem.RValue}
	}
	bef := w.walkExpr(base)

	pt, isPtr := bef.Type.(*types.Pointer)
	if !isPtr {
		w.error(base.Span(), report.KindTypeMismatch, "`->` requires a pointer value, got `%s`", bef.Type.Repr())
		return &sem.ExprFacts{Type: types.Void, Class: sem.RValue}
	}
	sr, isStruct := pt.Pointee.(*types.StructRef)
	if !isStruct {
		w.error(base.Span(), report.KindTypeMismatch, "`->` requires a pointer to struct")
		return &sem.ExprFacts{Type: types.Void, Class: sem.RValue}
	}

	ft, ok := lookupField(sr.Def, fieldTok.Text)
	if !ok {
		w.error(fieldTok.Span, report.KindUnresolvedName, "struct `%s` has no field `%s`", sr.Def.Name, fieldTok.Text)
	}
	return &sem.ExprFacts{Type: ft, Class: sem.LValue}
}

func lookupField(sd *types.StructDef, name string) (types.Type, bool) {
	for _, f := range sd.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}
