package walk

import (
	"github.com/widsnoy/airyc/ast"
	"github.com/widsnoy/airyc/report"
	"github.com/widsnoy/airyc/syntax"
	"github.com/widsnoy/airyc/types"
)

// primTokens maps a NamedType's base token kind to its primitive type.
var primTokens = map[syntax.TokenKind]types.Prim{
	syntax.TOK_VOID: types.Void,
	syntax.TOK_BOOL: types.Bool,
	syntax.TOK_I8:   types.I8,
	syntax.TOK_I32:  types.I32,
	syntax.TOK_I64:  types.I64,
	syntax.TOK_U8:   types.U8,
	syntax.TOK_U32:  types.U32,
	syntax.TOK_U64:  types.U64,
}

// resolveType computes the canonical types.Type of a NodeNamedType,
// NodePtrType, or NodeArrayType by structural recursion. allowVoid
// permits void only where it's legal: a function return type or a
// pointer pointee.
func (w *Walker) resolveType(n ast.Type, allowVoid bool) types.Type {
	switch n.Kind {
	case syntax.NodeNamedType:
		return w.resolveNamedType(n, allowVoid)
	case syntax.NodePtrType:
		return w.resolvePtrType(n)
	case syntax.NodeArrayType:
		return w.resolveArrayType(n)
	default:
		w.error(n.Span(), report.KindParseError, "expected a type")
		return types.Void
	}
}

func (w *Walker) resolveNamedType(n ast.Type, allowVoid bool) types.Type {
	tok, ok := ast.NamedTypeToken(n)
	if !ok {
		w.error(n.Span(), report.KindParseError, "expected a type")
	}

	if prim, isPrim := primTokens[tok.Kind]; isPrim {
		if prim == types.Void && !allowVoid {
			w.error(n.Span(), report.KindInvalidVoidUsage,
				"'void' is only valid as a function return type or pointer pointee")
		}
		return prim
	}

	// Otherwise the token is an identifier naming a struct.
	sd, found := w.structRefOf(tok.Text)
	if !found {
		w.error(n.Span(), report.KindUnresolvedName, "undefined type `%s`", tok.Text)
	}
	return &types.StructRef{Def: sd}
}

func (w *Walker) resolvePtrType(n ast.Type) types.Type {
	qualTok, _ := ast.PtrQualifier(n)
	pointerQual := types.Mut
	if qualTok == syntax.TOK_CONST {
		pointerQual = types.Const
	}

	pointee, ok := ast.PtrPointee(n)
	if !ok {
		w.error(n.Span(), report.KindParseError, "expected a pointee type")
	}

	pointeeQual := types.Mut
	if ast.TypeIsConstPrefixed(pointee) {
		pointeeQual = types.Const
	}

	pointeeType := w.resolveType(pointee, true) // void is legal as a pointee

	return &types.Pointer{
		Pointee:     pointeeType,
		PointerQual: pointerQual,
		PointeeQual: pointeeQual,
	}
}

func (w *Walker) resolveArrayType(n ast.Type) types.Type {
	elem, ok := ast.ArrayElem(n)
	if !ok {
		w.error(n.Span(), report.KindParseError, "expected an array element type")
	}
	elemType := w.resolveType(elem, false)

	sizeExpr, ok := ast.ArraySize(n)
	if !ok {
		w.error(n.Span(), report.KindConstantExprExpected, "expected an array size")
	}
	count, countType, ok := w.foldConst(sizeExpr)
	if !ok {
		w.error(sizeExpr.Span(), report.KindConstantExprExpected, "array size must be a constant expression")
	}
	if p, isPrim := countType.(types.Prim); !isPrim || !p.IsInteger() {
		w.error(sizeExpr.Span(), report.KindTypeMismatch, "array size must be an integer constant")
	}
	if count < 0 {
		w.error(sizeExpr.Span(), report.KindTypeMismatch, "array size must not be negative")
	}

	return &types.Array{Elem: elemType, Count: count}
}
