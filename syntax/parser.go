package syntax

import (
	"fmt"

	"github.com/widsnoy/airyc/report"
)

// Parser is an event-driven recursive-descent parser (with a Pratt parser
// for expressions) that builds a lossless concrete syntax tree for one
// source file. It never aborts on a syntax error: it synthesizes an error
// node, records a diagnostic, and resynchronizes at the next statement
// terminator, block boundary, or top-level declaration keyword, then keeps
// going so that the whole file is always consumed.
//
// All parsing methods assume the parser begins centered on the first
// token of their production and leave the parser positioned on the token
// following their production.
type Parser struct {
	absPath, reprPath string

	raw []*Token
	idx int

	cur *Token

	builder *Builder
}

// NewParser creates a parser for the given source bytes. absPath is used
// to read back source text when rendering diagnostics; reprPath is the
// path shown to the user.
func NewParser(absPath, reprPath string, src []byte) *Parser {
	p := &Parser{
		absPath:  absPath,
		reprPath: reprPath,
		raw:      tokenize(src),
		builder:  NewBuilder(),
	}
	p.advanceCur()
	return p
}

// tokenize runs the lexer to completion, returning the full lossless token
// stream (trivia included) ending in a single TOK_EOF token.
func tokenize(src []byte) []*Token {
	lexer := NewLexer(src)
	var toks []*Token
	for {
		tok := lexer.NextToken()
		toks = append(toks, tok)
		if tok.Kind == TOK_EOF {
			break
		}
	}
	return toks
}

// Parse parses the whole file and returns the root node of the concrete
// syntax tree. It always succeeds in the sense of returning a tree that
// covers every input byte; syntax errors are reported as diagnostics, not
// returned as a Go error.
func (p *Parser) Parse() *Node {
	p.parseCompUnit()
	return p.builder.Finish()
}

// -----------------------------------------------------------------------------
// Token stream primitives.

// advanceCur pulls the next significant token into p.cur, pushing any
// trivia encountered along the way directly into the tree so that no byte
// is ever dropped.
func (p *Parser) advanceCur() {
	for p.idx < len(p.raw) {
		t := p.raw[p.idx]
		p.idx++
		if t.Kind.IsTrivia() {
			p.builder.PushToken(t)
			continue
		}
		p.cur = t
		return
	}
	p.cur = &Token{Kind: TOK_EOF}
}

// at reports whether the current lookahead token has the given kind.
func (p *Parser) at(kind TokenKind) bool {
	return p.cur.Kind == kind
}

// bump consumes the current token unconditionally, attaching it to the
// tree, and advances the lookahead.
func (p *Parser) bump() *Token {
	t := p.cur
	if t.Kind != TOK_EOF {
		p.builder.PushToken(t)
	}
	p.advanceCur()
	return t
}

// eat consumes the current token if it has the given kind.
func (p *Parser) eat(kind TokenKind) (*Token, bool) {
	if p.at(kind) {
		return p.bump(), true
	}
	return nil, false
}

// expect consumes the current token if it has the given kind, otherwise
// reports a ParseError diagnostic naming what was expected and leaves the
// parser positioned where it was (the caller decides whether to
// resynchronize).
func (p *Parser) expect(kind TokenKind, what string) (*Token, bool) {
	if tok, ok := p.eat(kind); ok {
		return tok, true
	}
	p.errorHere("expected %s", what)
	return nil, false
}

// errorHere reports a ParseError at the current token's span.
func (p *Parser) errorHere(msg string, args ...interface{}) {
	span := p.cur.Span
	report.ReportCompileError(p.absPath, p.reprPath, span, report.KindParseError, "", fmt.Sprintf(msg, args...))
}

// isBlockBoundary/isTopLevelKeyword classify tokens used
// as resynchronization points after a syntax error.
func isBlockBoundary(k TokenKind) bool {
	return k == TOK_LBRACE || k == TOK_RBRACE
}

func isTopLevelKeyword(k TokenKind) bool {
	switch k {
	case TOK_LET, TOK_FN, TOK_STRUCT, TOK_ATTACH, TOK_IMPORT:
		return true
	default:
		return false
	}
}

// recover skips tokens, wrapping them in a NodeError node, until it finds
// a statement terminator (consumed), a block boundary, a top-level
// declaration keyword, or EOF (none of which are consumed).
func (p *Parser) recover() {
	p.builder.StartNode(NodeError)
	for {
		if p.at(TOK_EOF) || isBlockBoundary(p.cur.Kind) || isTopLevelKeyword(p.cur.Kind) {
			break
		}
		if p.at(TOK_SEMI) {
			p.bump()
			break
		}
		p.bump()
	}
	p.builder.FinishNode()
}
