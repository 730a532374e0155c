package generate

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/widsnoy/airyc/ast"
	"github.com/widsnoy/airyc/sem"
	"github.com/widsnoy/airyc/syntax"
	"github.com/widsnoy/airyc/types"
)

// load reads t's value out of addr, truncating an i8 bool back down to
// the i1 every register-level bool value carries.
func (g *Generator) load(addr value.Value, t types.Type) value.Value {
	storage := g.convStorageType(t)
	v := g.block.NewLoad(storage, addr)
	if p, ok := t.(types.Prim); ok && p == types.Bool {
		return g.block.NewTrunc(v, lltypes.I1)
	}
	return v
}

// store writes val, a register-level value of type t, into addr, zero
// extending an i1 bool up to the i8 its storage occupies.
func (g *Generator) store(addr, val value.Value, t types.Type) {
	if p, ok := t.(types.Prim); ok && p == types.Bool {
		val = g.block.NewZExt(val, lltypes.I8)
	}
	g.block.NewStore(val, addr)
}

// genConvert widens val from one resolved type to another, the conversion
// the analyzer already proved legal (types.ConvertibleTo) when it set
// ConvertTo on the expression's facts.
func (g *Generator) genConvert(val value.Value, from, to types.Type) value.Value {
	if types.Equals(from, to) {
		return val
	}
	if _, ok := from.(*types.Pointer); ok {
		if _, ok := to.(*types.Pointer); ok {
			return g.block.NewBitCast(val, g.convType(to))
		}
	}
	fp, fok := from.(types.Prim)
	tp, tok := to.(types.Prim)
	if !fok || !tok {
		return val
	}
	dst := convPrim(tp)
	if fp == types.Bool || fp.IsUnsigned() {
		return g.block.NewZExt(val, dst)
	}
	return g.block.NewSExt(val, dst)
}

// toI64 widens an integer pointer-arithmetic offset to i64, the width
// NewGetElementPtr's index operand is generated at.
func (g *Generator) toI64(val value.Value, t types.Type) value.Value {
	p, ok := t.(types.Prim)
	if !ok || p == types.I64 || p == types.U64 {
		return val
	}
	if p.IsSigned() {
		return g.block.NewSExt(val, lltypes.I64)
	}
	return g.block.NewZExt(val, lltypes.I64)
}

func fieldIndex(sd *types.StructDef, name string) int {
	for i, f := range sd.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

func gepIdx(n int64) constant.Constant {
	return constant.NewInt(lltypes.I32, n)
}

// genValue lowers n to a register-level value, loading through an address
// for anything that is an l-value.
func (g *Generator) genValue(n *syntax.Node) value.Value {
	ef, _ := g.facts.Expr(n)

	switch n.Kind {
	case syntax.NodeIntLit, syntax.NodeCharLit, syntax.NodeBoolLit, syntax.NodeNullLit:
		return g.constScalar(ef)
	case syntax.NodeStringLit:
		return g.genStringLit(n)
	case syntax.NodeParenExpr:
		inner, _ := ast.ParenInner(n)
		return g.genValue(inner)
	case syntax.NodeUnaryExpr:
		return g.genUnary(n, ef)
	case syntax.NodeBinaryExpr:
		return g.genBinary(n, ef)
	case syntax.NodeCallExpr:
		return g.genCall(n, ef)
	case syntax.NodeIdentExpr, syntax.NodeIndexExpr, syntax.NodeFieldExpr, syntax.NodeArrowExpr:
		return g.load(g.genAddr(n), ef.Type)
	default:
		return constant.NewZeroInitializer(g.convType(ef.Type))
	}
}

// genAddr computes the address of an l-value expression.
func (g *Generator) genAddr(n *syntax.Node) value.Value {
	switch n.Kind {
	case syntax.NodeIdentExpr:
		ef, _ := g.facts.Expr(n)
		return g.varAddr(ef.Symbol)
	case syntax.NodeParenExpr:
		inner, _ := ast.ParenInner(n)
		return g.genAddr(inner)
	case syntax.NodeUnaryExpr:
		// Only '*' (deref) reaches here as an l-value; the dereferenced
		// address is simply the pointer's own value.
		_, operand, _ := ast.UnaryParts(n)
		return g.genValue(operand)
	case syntax.NodeIndexExpr:
		base, idx, _ := ast.IndexParts(n)
		bef, _ := g.facts.Expr(base)
		idxVal := g.genValue(idx)
		ief, _ := g.facts.Expr(idx)
		idxVal = g.toI64(idxVal, ief.Type)
		switch bt := bef.Type.(type) {
		case *types.Array:
			baseAddr := g.genAddr(base)
			return g.block.NewGetElementPtr(g.convStorageType(bt), baseAddr, gepIdx(0), idxVal)
		case *types.Pointer:
			ptrVal := g.genValue(base)
			return g.block.NewGetElementPtr(g.convStorageType(bt.Pointee), ptrVal, idxVal)
		}
		return nil
	case syntax.NodeFieldExpr:
		base, fieldTok, _ := ast.FieldParts(n)
		bef, _ := g.facts.Expr(base)
		sr := bef.Type.(*types.StructRef)
		baseAddr := g.genAddr(base)
		st := g.convStruct(sr.Def)
		return g.block.NewGetElementPtr(st, baseAddr, gepIdx(0), gepIdx(int64(fieldIndex(sr.Def, fieldTok.Text))))
	case syntax.NodeArrowExpr:
		base, fieldTok, _ := ast.ArrowParts(n)
		bef, _ := g.facts.Expr(base)
		pt := bef.Type.(*types.Pointer)
		sr := pt.Pointee.(*types.StructRef)
		ptrVal := g.genValue(base)
		st := g.convStruct(sr.Def)
		return g.block.NewGetElementPtr(st, ptrVal, gepIdx(0), gepIdx(int64(fieldIndex(sr.Def, fieldTok.Text))))
	default:
		return nil
	}
}

func (g *Generator) genUnary(n *syntax.Node, ef *sem.ExprFacts) value.Value {
	op, operand, _ := ast.UnaryParts(n)
	switch op.Kind {
	case syntax.TOK_PLUS:
		return g.genValue(operand)
	case syntax.TOK_MINUS:
		v := g.genValue(operand)
		return g.block.NewSub(constant.NewInt(v.Type().(*lltypes.IntType), 0), v)
	case syntax.TOK_NOT:
		v := g.genValue(operand)
		return g.block.NewXor(v, constant.NewBool(true))
	case syntax.TOK_AMP:
		return g.genAddr(operand)
	case syntax.TOK_STAR:
		ptrVal := g.genValue(operand)
		return g.load(ptrVal, ef.Type)
	default:
		return nil
	}
}

func (g *Generator) genBinary(n *syntax.Node, ef *sem.ExprFacts) value.Value {
	lhs, op, rhs, _ := ast.BinaryParts(n)

	if op.Kind == syntax.TOK_LAND || op.Kind == syntax.TOK_LOR {
		return g.genShortCircuit(op.Kind == syntax.TOK_LOR, lhs, rhs)
	}

	lef, _ := g.facts.Expr(lhs)
	ref, _ := g.facts.Expr(rhs)

	if _, ok := lef.Type.(*types.Pointer); ok {
		return g.genPointerBinary(op.Kind, lhs, lef, rhs, ref)
	}
	if _, ok := ref.Type.(*types.Pointer); ok && op.Kind == syntax.TOK_PLUS {
		return g.genPointerBinary(op.Kind, rhs, ref, lhs, lef)
	}

	return g.genArithBinary(op.Kind, lhs, lef, rhs, ref)
}

// genShortCircuit lowers && and || as a diamond of basic blocks: the
// right operand is only evaluated when its value could still change the
// result, and a phi joins whichever arm ran.
func (g *Generator) genShortCircuit(isOr bool, lhs, rhs *syntax.Node) value.Value {
	lv := g.genValue(lhs)
	lhsEndBlock := g.block

	rhsBlock := g.enclosingFunc.NewBlock("")
	contBlock := g.enclosingFunc.NewBlock("")

	if isOr {
		lhsEndBlock.NewCondBr(lv, contBlock, rhsBlock)
	} else {
		lhsEndBlock.NewCondBr(lv, rhsBlock, contBlock)
	}

	g.block = rhsBlock
	rv := g.genValue(rhs)
	rhsEndBlock := g.block
	rhsEndBlock.NewBr(contBlock)

	g.block = contBlock
	return contBlock.NewPhi(
		ir.NewIncoming(constant.NewBool(isOr), lhsEndBlock),
		ir.NewIncoming(rv, rhsEndBlock),
	)
}

// genArithBinary lowers a non-pointer binary operator. The analyzer
// records only the binary expression's own result type, not each
// operand's conversion, so lowering recomputes the common operand type
// independently -- deterministic, since analysis already proved it
// succeeds.
func (g *Generator) genArithBinary(op syntax.TokenKind, lhs *syntax.Node, lef *sem.ExprFacts, rhs *syntax.Node, ref *sem.ExprFacts) value.Value {
	common, _ := types.CommonType(lef.Type, ref.Type)
	lv := g.genConvert(g.genValue(lhs), lef.Type, common)
	rv := g.genConvert(g.genValue(rhs), ref.Type, common)

	signed := true
	if p, ok := common.(types.Prim); ok {
		signed = !p.IsUnsigned()
	}

	switch op {
	case syntax.TOK_PLUS:
		return g.block.NewAdd(lv, rv)
	case syntax.TOK_MINUS:
		return g.block.NewSub(lv, rv)
	case syntax.TOK_STAR:
		return g.block.NewMul(lv, rv)
	case syntax.TOK_SLASH:
		if signed {
			return g.block.NewSDiv(lv, rv)
		}
		return g.block.NewUDiv(lv, rv)
	case syntax.TOK_PERCENT:
		if signed {
			return g.block.NewSRem(lv, rv)
		}
		return g.block.NewURem(lv, rv)
	case syntax.TOK_EQ:
		return g.block.NewICmp(enum.IPredEQ, lv, rv)
	case syntax.TOK_NEQ:
		return g.block.NewICmp(enum.IPredNE, lv, rv)
	case syntax.TOK_LT:
		return g.block.NewICmp(signedPred(signed, enum.IPredSLT, enum.IPredULT), lv, rv)
	case syntax.TOK_GT:
		return g.block.NewICmp(signedPred(signed, enum.IPredSGT, enum.IPredUGT), lv, rv)
	case syntax.TOK_LE:
		return g.block.NewICmp(signedPred(signed, enum.IPredSLE, enum.IPredULE), lv, rv)
	case syntax.TOK_GE:
		return g.block.NewICmp(signedPred(signed, enum.IPredSGE, enum.IPredUGE), lv, rv)
	default:
		return lv
	}
}

func signedPred(signed bool, sp, up enum.IPred) enum.IPred {
	if signed {
		return sp
	}
	return up
}

// genPointerBinary lowers pointer +/- integer and pointer - pointer.
// Integer-minus-pointer never reaches here: walkPointerBinary only
// accepts it as pointer-first, or as either order for '+'.
func (g *Generator) genPointerBinary(op syntax.TokenKind, ptrNode *syntax.Node, ptrEf *sem.ExprFacts, otherNode *syntax.Node, otherEf *sem.ExprFacts) value.Value {
	pt := ptrEf.Type.(*types.Pointer)

	if _, ok := otherEf.Type.(*types.Pointer); ok {
		lv := g.block.NewPtrToInt(g.genValue(ptrNode), lltypes.I64)
		rv := g.block.NewPtrToInt(g.genValue(otherNode), lltypes.I64)
		diff := g.block.NewSub(lv, rv)
		size := types.SizeOf(pt.Pointee)
		if size <= 1 {
			return diff
		}
		return g.block.NewSDiv(diff, constant.NewInt(lltypes.I64, int64(size)))
	}

	ptrVal := g.genValue(ptrNode)
	offset := g.toI64(g.genValue(otherNode), otherEf.Type)
	if op == syntax.TOK_MINUS {
		offset = g.block.NewSub(constant.NewInt(lltypes.I64, 0), offset)
	}
	return g.block.NewGetElementPtr(g.convStorageType(pt.Pointee), ptrVal, offset)
}

func (g *Generator) genCall(n *syntax.Node, ef *sem.ExprFacts) value.Value {
	_, argNodes, _ := ast.CallParts(n)
	fn := g.resolveFunc(ef.Symbol)

	args := make([]value.Value, len(argNodes))
	for i, argNode := range argNodes {
		aef, _ := g.facts.Expr(argNode)
		if _, isArray := aef.Type.(*types.Array); isArray {
			addr := g.genAddr(argNode)
			args[i] = g.block.NewGetElementPtr(g.convStorageType(aef.Type), addr, gepIdx(0), gepIdx(0))
			continue
		}
		v := g.genValue(argNode)
		if aef.ConvertTo != nil {
			v = g.genConvert(v, aef.Type, aef.ConvertTo)
		}
		args[i] = v
	}

	return g.block.NewCall(fn, args...)
}

// genStringLit emits a new private global holding the literal's
// NUL-terminated bytes and returns a pointer to its first byte.
func (g *Generator) genStringLit(n *syntax.Node) value.Value {
	gv, arrType := g.stringLitGlobal(n)
	return g.block.NewGetElementPtr(arrType, gv, gepIdx(0), gepIdx(0))
}

// constScalar synthesizes a literal constant (int/char/bool/null) from
// its resolved facts; used both for runtime register values and for
// constant-folded global initializers.
func (g *Generator) constScalar(ef *sem.ExprFacts) constant.Constant {
	if p, ok := ef.Type.(types.Prim); ok {
		if p == types.Bool {
			return constant.NewBool(ef.ConstVal != 0)
		}
		return constant.NewInt(convPrim(p).(*lltypes.IntType), ef.ConstVal)
	}
	if pt, ok := ef.Type.(*types.Pointer); ok {
		return constant.NewNull(lltypes.NewPointer(g.convStorageType(pt.Pointee)))
	}
	return constant.NewZeroInitializer(lltypes.Void)
}
