package ast

import "github.com/widsnoy/airyc/syntax"

// BinaryParts returns a NodeBinaryExpr's left operand, operator token, and
// right operand.
func BinaryParts(n *syntax.Node) (lhs Expr, op *syntax.Token, rhs Expr, ok bool) {
	children := n.NodeChildren()
	if len(children) != 2 {
		return nil, nil, nil, false
	}
	toks := n.Tokens()
	if len(toks) == 0 {
		return nil, nil, nil, false
	}
	return children[0], toks[0], children[1], true
}

// UnaryParts returns a NodeUnaryExpr's operator token and operand.
func UnaryParts(n *syntax.Node) (op *syntax.Token, operand Expr, ok bool) {
	children := n.NodeChildren()
	toks := n.Tokens()
	if len(children) != 1 || len(toks) == 0 {
		return nil, nil, false
	}
	return toks[0], children[0], true
}

// CallParts returns a NodeCallExpr's callee and argument expressions.
func CallParts(n *syntax.Node) (callee Expr, args []Expr, ok bool) {
	children := n.NodeChildren()
	if len(children) == 0 {
		return nil, nil, false
	}
	callee = children[0]
	if argList, has := n.FirstNode(syntax.NodeArgList); has {
		args = argList.NodeChildren()
	}
	return callee, args, true
}

// IndexParts returns a NodeIndexExpr's base and index expressions.
func IndexParts(n *syntax.Node) (base, index Expr, ok bool) {
	children := n.NodeChildren()
	if len(children) != 2 {
		return nil, nil, false
	}
	return children[0], children[1], true
}

// FieldParts returns a NodeFieldExpr's base expression and field name.
func FieldParts(n *syntax.Node) (base Expr, field *syntax.Token, ok bool) {
	children := n.NodeChildren()
	name, hasName := n.FirstToken(syntax.TOK_IDENT)
	if len(children) != 1 || !hasName {
		return nil, nil, false
	}
	return children[0], name, true
}

// ArrowParts returns a NodeArrowExpr's base expression and field name.
func ArrowParts(n *syntax.Node) (base Expr, field *syntax.Token, ok bool) {
	return FieldParts(n)
}

// IdentName returns a NodeIdentExpr's identifier token.
func IdentName(n *syntax.Node) (*syntax.Token, bool) {
	return n.FirstToken(syntax.TOK_IDENT)
}

// LitToken returns the literal token of a NodeIntLit, NodeCharLit,
// NodeStringLit, NodeBoolLit, or NodeNullLit node.
func LitToken(n *syntax.Node) (*syntax.Token, bool) {
	toks := n.Tokens()
	if len(toks) == 0 {
		return nil, false
	}
	return toks[0], true
}

// ParenInner returns a NodeParenExpr's wrapped expression.
func ParenInner(n *syntax.Node) (Expr, bool) {
	return firstExprChild(n)
}

// InitListElems returns a NodeInitList's element InitVals, each either an
// expression or a nested NodeInitList.
func InitListElems(n *syntax.Node) []*syntax.Node {
	return n.NodeChildren()
}
