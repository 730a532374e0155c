package ast

import "github.com/widsnoy/airyc/syntax"

// TypeIsConstPrefixed reports whether a NodeNamedType carries a leading
// 'const' keyword: `let x: const i32` makes the binding x const.
func TypeIsConstPrefixed(n *syntax.Node) bool {
	if n.Kind != syntax.NodeNamedType {
		return false
	}
	_, ok := n.FirstToken(syntax.TOK_CONST)
	return ok
}

// NamedTypeToken returns the base type token of a NodeNamedType: a
// primitive keyword (i32, bool, void, ...) or an identifier naming a
// struct.
func NamedTypeToken(n *syntax.Node) (*syntax.Token, bool) {
	for _, t := range n.Tokens() {
		switch t.Kind {
		case syntax.TOK_CONST, syntax.TOK_STRUCT:
			continue
		default:
			return t, true
		}
	}
	return nil, false
}

// PtrQualifier returns the pointer's own reassignability qualifier
// (TOK_MUT or TOK_CONST) from a NodePtrType.
func PtrQualifier(n *syntax.Node) (syntax.TokenKind, bool) {
	for _, t := range n.Tokens() {
		if t.Kind == syntax.TOK_MUT || t.Kind == syntax.TOK_CONST {
			return t.Kind, true
		}
	}
	return 0, false
}

// PtrPointee returns the pointee type node of a NodePtrType.
func PtrPointee(n *syntax.Node) (Type, bool) {
	return firstTypeNode(n)
}

// ArrayElem returns the element type node of a NodeArrayType.
func ArrayElem(n *syntax.Node) (Type, bool) {
	return firstTypeNode(n)
}

// ArraySize returns the constant-expression node giving a NodeArrayType's
// element count.
func ArraySize(n *syntax.Node) (Expr, bool) {
	for _, c := range n.NodeChildren() {
		switch c.Kind {
		case syntax.NodeNamedType, syntax.NodePtrType, syntax.NodeArrayType:
			continue
		default:
			return c, true
		}
	}
	return nil, false
}
