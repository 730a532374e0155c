package ast

import "github.com/widsnoy/airyc/syntax"

// BlockStmts returns the statement children of a NodeBlock, in order.
func BlockStmts(n *syntax.Node) []Stmt {
	return n.NodeChildren()
}

// IfCond, IfThen, and IfElse access the parts of a NodeIfStmt. IfElse
// returns either a NodeBlock or a nested NodeIfStmt, matching the grammar
// `'else' (Block | IfStmt)`.
func IfCond(n *syntax.Node) (Expr, bool) {
	return firstExprChild(n)
}

func IfThen(n *syntax.Node) (*syntax.Node, bool) {
	blocks := n.AllNodes(syntax.NodeBlock)
	if len(blocks) == 0 {
		return nil, false
	}
	return blocks[0], true
}

func IfElse(n *syntax.Node) (Stmt, bool) {
	blocks := n.AllNodes(syntax.NodeBlock)
	if len(blocks) > 1 {
		return blocks[1], true
	}
	if elifs := n.AllNodes(syntax.NodeIfStmt); len(elifs) > 0 {
		return elifs[0], true
	}
	return nil, false
}

// WhileCond and WhileBody access the parts of a NodeWhileStmt.
func WhileCond(n *syntax.Node) (Expr, bool) { return firstExprChild(n) }
func WhileBody(n *syntax.Node) (*syntax.Node, bool) {
	return n.FirstNode(syntax.NodeBlock)
}

// ReturnValue returns the NodeReturnStmt's returned expression, if any.
func ReturnValue(n *syntax.Node) (Expr, bool) {
	return firstExprChild(n)
}

// AssignTarget and AssignValue access the two expression operands of a
// NodeAssignStmt.
func AssignTarget(n *syntax.Node) (Expr, bool) {
	children := n.NodeChildren()
	if len(children) == 0 {
		return nil, false
	}
	return children[0], true
}

func AssignValue(n *syntax.Node) (Expr, bool) {
	children := n.NodeChildren()
	if len(children) < 2 {
		return nil, false
	}
	return children[1], true
}

// ExprStmtExpr returns a NodeExprStmt's sole expression.
func ExprStmtExpr(n *syntax.Node) (Expr, bool) {
	return firstExprChild(n)
}

// firstExprChild returns the first (and, for most statement kinds, only)
// child node, used by statement forms that wrap exactly one expression.
func firstExprChild(n *syntax.Node) (Expr, bool) {
	children := n.NodeChildren()
	if len(children) == 0 {
		return nil, false
	}
	return children[0], true
}
