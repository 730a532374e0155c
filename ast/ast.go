// Package ast provides a typed, zero-copy view layer over the concrete
// syntax tree produced by package syntax. Every accessor in this package
// takes a *syntax.Node and returns either another *syntax.Node/*syntax.Token
// or an (value, ok) pair: the absence of an expected child is a parse-error
// recovery signal, never a panic.
//
// The view layer does no copying and holds no state of its own -- it is
// purely a set of typed accessors keyed by the syntax kind conventions the
// parser establishes in package syntax.
package ast

import "github.com/widsnoy/airyc/syntax"

// Decl, Stmt, Expr, and Type are aliases used only to make accessor
// signatures self-documenting; all four are interchangeable with
// *syntax.Node.
type (
	Decl = *syntax.Node
	Stmt = *syntax.Node
	Expr = *syntax.Node
	Type = *syntax.Node
)

// Root returns the top-level nodes of a CompUnit in source order: every
// node child of the tree root, which includes NodeImport nodes (and any
// NodeError recovery nodes) alongside the NodeVarDef, NodeFuncSign
// (external declaration), NodeFuncDef, NodeStructDef, and NodeAttachDef
// declarations. Callers dispatch on Kind.
func Root(root *syntax.Node) []Decl {
	return root.NodeChildren()
}

// Imports returns the import directives of a CompUnit, in source order.
func Imports(root *syntax.Node) []*syntax.Node {
	return root.AllNodes(syntax.NodeImport)
}

// ImportPath returns the string literal token naming the imported path.
func ImportPath(n *syntax.Node) (*syntax.Token, bool) {
	return n.FirstToken(syntax.TOK_STRINGLIT)
}

// ImportSymbol returns the selectively-imported symbol name, if the import
// used the `:: Name` form.
func ImportSymbol(n *syntax.Node) (*syntax.Token, bool) {
	if _, ok := n.FirstToken(syntax.TOK_COLONCOLON); !ok {
		return nil, false
	}
	// The symbol name is the identifier following the path string and the
	// '::' token; since an Import node only ever contains the path string,
	// an optional '::' token, and an optional identifier, the last
	// identifier token (if any) is the selective symbol name.
	idents := tokensOfKind(n, syntax.TOK_IDENT)
	if len(idents) == 0 {
		return nil, false
	}
	return idents[len(idents)-1], true
}

func tokensOfKind(n *syntax.Node, kind syntax.TokenKind) []*syntax.Token {
	var out []*syntax.Token
	for _, c := range n.Children {
		switch v := c.(type) {
		case *syntax.Token:
			if v.Kind == kind {
				out = append(out, v)
			}
		}
	}
	return out
}
