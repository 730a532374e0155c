package ast

import "github.com/widsnoy/airyc/syntax"

// VarDefName returns the name of a NodeVarDef or NodeVarDeclStmt.
func VarDefName(n *syntax.Node) (*syntax.Token, bool) {
	return n.FirstToken(syntax.TOK_IDENT)
}

// VarDefType returns the declared type node of a variable definition.
func VarDefType(n *syntax.Node) (Type, bool) {
	return firstTypeNode(n)
}

// VarDefInit returns the initializer (an expression or an InitList) of a
// variable definition, if one was given.
func VarDefInit(n *syntax.Node) (*syntax.Node, bool) {
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

func firstTypeNode(n *syntax.Node) (Type, bool) {
	for _, c := range n.NodeChildren() {
		switch c.Kind {
		case syntax.NodeNamedType, syntax.NodePtrType, syntax.NodeArrayType:
			return c, true
		}
	}
	return nil, false
}

// FuncSignName returns a function signature's name.
func FuncSignName(n *syntax.Node) (*syntax.Token, bool) {
	return n.FirstToken(syntax.TOK_IDENT)
}

// FuncSignParams returns the individual NodeParam children of a function
// signature's parameter list.
func FuncSignParams(n *syntax.Node) []*syntax.Node {
	list, ok := n.FirstNode(syntax.NodeParamList)
	if !ok {
		return nil
	}
	return list.AllNodes(syntax.NodeParam)
}

// FuncSignVariadic reports whether the parameter list ends with '...'.
func FuncSignVariadic(n *syntax.Node) bool {
	list, ok := n.FirstNode(syntax.NodeParamList)
	if !ok {
		return false
	}
	_, ok = list.FirstToken(syntax.TOK_ELLIPSIS)
	return ok
}

// FuncSignReturnType returns the declared return type, if any (a function
// with no '-> Type' returns void).
func FuncSignReturnType(n *syntax.Node) (Type, bool) {
	return firstTypeNode(n)
}

// ParamName and ParamType access a single NodeParam's parts.
func ParamName(n *syntax.Node) (*syntax.Token, bool) { return n.FirstToken(syntax.TOK_IDENT) }
func ParamType(n *syntax.Node) (Type, bool)          { return firstTypeNode(n) }

// FuncDefSign returns the NodeFuncSign child of a NodeFuncDef.
func FuncDefSign(n *syntax.Node) (*syntax.Node, bool) {
	return n.FirstNode(syntax.NodeFuncSign)
}

// FuncDefBody returns the NodeBlock child of a NodeFuncDef.
func FuncDefBody(n *syntax.Node) (*syntax.Node, bool) {
	return n.FirstNode(syntax.NodeBlock)
}

// IsFuncDef/IsExternalFunc distinguish a function with a body (NodeFuncDef)
// from an external declaration without one (bare NodeFuncSign at the
// CompUnit level).
func IsFuncDef(n *syntax.Node) bool     { return n.Kind == syntax.NodeFuncDef }
func IsExternalFunc(n *syntax.Node) bool { return n.Kind == syntax.NodeFuncSign }

// StructDefName returns a struct definition's name.
func StructDefName(n *syntax.Node) (*syntax.Token, bool) {
	return n.FirstToken(syntax.TOK_IDENT)
}

// StructDefFields returns a struct's fields in declaration order.
func StructDefFields(n *syntax.Node) []*syntax.Node {
	return n.AllNodes(syntax.NodeField)
}

// FieldName and FieldType access a single NodeField's parts.
func FieldName(n *syntax.Node) (*syntax.Token, bool) { return n.FirstToken(syntax.TOK_IDENT) }
func FieldType(n *syntax.Node) (Type, bool)          { return firstTypeNode(n) }

// AttachDefName returns the name of the function an AttachDef supplies a
// body for.
func AttachDefName(n *syntax.Node) (*syntax.Token, bool) {
	return n.FirstToken(syntax.TOK_IDENT)
}

// AttachDefBody returns an AttachDef's block.
func AttachDefBody(n *syntax.Node) (*syntax.Node, bool) {
	return n.FirstNode(syntax.NodeBlock)
}
