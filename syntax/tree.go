package syntax

import (
	"strings"

	"github.com/widsnoy/airyc/report"
)

// Element is either a *Token (a leaf) or a *Node (a subtree) in the
// concrete syntax tree. The tree is lossless: every byte of source text
// appears exactly once in the token stream reachable from the root, and
// offsets are never stored directly on a node -- they are recomputed on
// demand from the lengths of preceding siblings.
type Element interface {
	Len() int
}

// Node is an immutable composite node of the concrete syntax tree. Nodes
// are built once by the parser and never mutated afterwards; because a
// Node's identity is its pointer, Nodes also serve as the key into the
// analyzer's side table.
type Node struct {
	Kind     SyntaxKind
	Children []Element
}

// Len returns the number of source bytes spanned by this node, computed
// from the lengths of its children.
func (n *Node) Len() int {
	total := 0
	for _, c := range n.Children {
		total += c.Len()
	}
	return total
}

// Text reconstructs the exact source text spanned by this node by
// concatenating every leaf token's text in order. Reformatting any source
// file through Lex-then-Text is required to round-trip byte-for-byte.
func (n *Node) Text() string {
	var sb strings.Builder
	n.writeText(&sb)
	return sb.String()
}

func (n *Node) writeText(sb *strings.Builder) {
	for _, c := range n.Children {
		switch v := c.(type) {
		case *Token:
			sb.WriteString(v.Text)
		case *Node:
			v.writeText(sb)
		}
	}
}

// NodeChildren returns the direct child nodes (skipping tokens).
func (n *Node) NodeChildren() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if v, ok := c.(*Node); ok {
			out = append(out, v)
		}
	}
	return out
}

// Tokens returns the direct token children that are not trivia, in order.
func (n *Node) Tokens() []*Token {
	var out []*Token
	for _, c := range n.Children {
		if v, ok := c.(*Token); ok && !v.Kind.IsTrivia() {
			out = append(out, v)
		}
	}
	return out
}

// FirstToken returns the first direct, non-trivia token child of the given
// kind. Absence of an expected token is a parse-error recovery signal, not
// a panic.
func (n *Node) FirstToken(kind TokenKind) (*Token, bool) {
	for _, t := range n.Tokens() {
		if t.Kind == kind {
			return t, true
		}
	}
	return nil, false
}

// FirstNode returns the first direct child node of the given kind.
func (n *Node) FirstNode(kind SyntaxKind) (*Node, bool) {
	for _, c := range n.NodeChildren() {
		if c.Kind == kind {
			return c, true
		}
	}
	return nil, false
}

// AllNodes returns every direct child node of the given kind, in order.
func (n *Node) AllNodes(kind SyntaxKind) []*Node {
	var out []*Node
	for _, c := range n.NodeChildren() {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// firstLeafToken finds the first non-trivia token anywhere under n, in
// source order.
func (n *Node) firstLeafToken() *Token {
	for _, c := range n.Children {
		switch v := c.(type) {
		case *Token:
			if !v.Kind.IsTrivia() {
				return v
			}
		case *Node:
			if t := v.firstLeafToken(); t != nil {
				return t
			}
		}
	}
	return nil
}

// lastLeafToken finds the last non-trivia token anywhere under n, in
// source order.
func (n *Node) lastLeafToken() *Token {
	for i := len(n.Children) - 1; i >= 0; i-- {
		switch v := n.Children[i].(type) {
		case *Token:
			if !v.Kind.IsTrivia() {
				return v
			}
		case *Node:
			if t := v.lastLeafToken(); t != nil {
				return t
			}
		}
	}
	return nil
}

// Span returns the text span covering every significant token under n. It
// returns nil for an empty error-recovery node with no tokens at all.
func (n *Node) Span() *report.TextSpan {
	first := n.firstLeafToken()
	last := n.lastLeafToken()
	if first == nil || last == nil {
		return nil
	}
	return report.NewSpanOver(first.Span, last.Span)
}

// -----------------------------------------------------------------------------

// Builder incrementally assembles a syntax tree: StartNode/FinishNode pairs
// nest, and each call to PushToken appends a leaf to the currently open
// node (including trivia, which the parser pushes automatically between
// significant tokens so that no source byte is ever dropped).
type Builder struct {
	stack []*Node
}

// NewBuilder creates a builder with an open root node.
func NewBuilder() *Builder {
	return &Builder{stack: []*Node{{Kind: NodeRoot}}}
}

// StartNode opens a new composite node as a child of the currently open
// node.
func (b *Builder) StartNode(kind SyntaxKind) {
	b.stack = append(b.stack, &Node{Kind: kind})
}

// FinishNode closes the most recently opened node and attaches it as a
// child of its parent.
func (b *Builder) FinishNode() *Node {
	n := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	parent := b.stack[len(b.stack)-1]
	parent.Children = append(parent.Children, n)
	return n
}

// PushToken appends a token as a leaf child of the currently open node.
func (b *Builder) PushToken(tok *Token) {
	cur := b.stack[len(b.stack)-1]
	cur.Children = append(cur.Children, tok)
}

// WrapLastFinished takes the most recently finished child of the currently
// open node and re-opens it as the sole initial child of a new node of the
// given kind. This lets the parser retroactively group a node it already
// closed (eg. wrapping a finished NodeFuncSign together with the Block
// that follows it into a NodeFuncDef) without needing lookahead before
// opening the outer node.
func (b *Builder) WrapLastFinished(kind SyntaxKind) {
	cur := b.Current()
	last := cur.Children[len(cur.Children)-1]
	cur.Children = cur.Children[:len(cur.Children)-1]
	b.stack = append(b.stack, &Node{Kind: kind, Children: []Element{last}})
}

// Current returns the node currently open at the top of the builder stack.
func (b *Builder) Current() *Node {
	return b.stack[len(b.stack)-1]
}

// Finish closes the root node and returns it. It must be called exactly
// once, after every other StartNode has been matched with a FinishNode.
func (b *Builder) Finish() *Node {
	root := b.stack[0]
	b.stack = nil
	return root
}
