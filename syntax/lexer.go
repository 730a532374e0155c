package syntax

import (
	"strings"

	"github.com/widsnoy/airyc/report"
)

// Lexer tokenizes a single source file. It is lossless: every byte of the
// input is returned as the text of some token, including whitespace and
// comments. A Lexer is finite and non-restartable; construct a fresh Lexer
// per file.
type Lexer struct {
	src  []byte
	pos  int
	line int
	col  int

	// prevLine, prevCol are the line/col of the last byte consumed by
	// advance(), used to compute a token's inclusive end position.
	prevLine, prevCol int
}

// NewLexer creates a new lexer over the given source bytes.
func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src}
}

// NextToken retrieves the next token from the input. Once the input is
// exhausted, every subsequent call returns a TOK_EOF token with an empty
// span at the end of the file.
func (l *Lexer) NextToken() *Token {
	if l.pos >= len(l.src) {
		pos := l.mark()
		return &Token{Kind: TOK_EOF, Span: report.NewSpanOver(pos, pos)}
	}

	c := l.src[l.pos]
	switch {
	case c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f':
		return l.lexWhitespace()
	case c == '/':
		if tok := l.lexCommentOrSlash(); tok != nil {
			return tok
		}
		return l.lexPunct()
	case c == '\'':
		return l.lexCharLit()
	case c == '"':
		return l.lexStringLit()
	case isDecimalDigit(c):
		return l.lexNumericLit()
	case isIdentStart(c):
		return l.lexIdentOrKeyword()
	default:
		return l.lexPunct()
	}
}

// -----------------------------------------------------------------------------

func (l *Lexer) mark() *report.TextSpan {
	return &report.TextSpan{StartLine: l.line, StartCol: l.col, EndLine: l.line, EndCol: l.col}
}

// advance consumes and returns the current byte, updating line/col
// tracking. The caller must have already checked that input remains.
func (l *Lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	l.prevLine, l.prevCol = l.line, l.col
	if c == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return c
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.src)
}

// finish builds a token spanning from the given start position to the
// lexer's current position (exclusive end, adjusted to be inclusive per
// TextSpan's convention).
func (l *Lexer) finish(kind TokenKind, startLine, startCol, startPos int) *Token {
	text := string(l.src[startPos:l.pos])
	endLine, endCol := startLine, startCol
	if l.pos > startPos {
		endLine, endCol = l.prevLine, l.prevCol
	}
	return &Token{
		Kind: kind,
		Text: text,
		Span: &report.TextSpan{StartLine: startLine, StartCol: startCol, EndLine: endLine, EndCol: endCol},
	}
}

// -----------------------------------------------------------------------------

func (l *Lexer) lexWhitespace() *Token {
	startLine, startCol, startPos := l.line, l.col, l.pos
	for !l.eof() {
		switch l.peek() {
		case ' ', '\t', '\r', '\n', '\v', '\f':
			l.advance()
		default:
			return l.finish(TOK_WHITESPACE, startLine, startCol, startPos)
		}
	}
	return l.finish(TOK_WHITESPACE, startLine, startCol, startPos)
}

// lexCommentOrSlash handles '/', which may begin a line comment, a block
// comment, or the division operator. It returns nil if the '/' turned out
// to be the division operator so the caller falls through to lexPunct.
func (l *Lexer) lexCommentOrSlash() *Token {
	startLine, startCol, startPos := l.line, l.col, l.pos

	if l.peekAt(1) == '/' {
		l.advance()
		l.advance()
		for !l.eof() && l.peek() != '\n' {
			l.advance()
		}
		return l.finish(TOK_LINE_COMMENT, startLine, startCol, startPos)
	}

	if l.peekAt(1) == '*' {
		l.advance()
		l.advance()
		for !l.eof() {
			if l.peek() == '*' && l.peekAt(1) == '/' {
				l.advance()
				l.advance()
				break
			}
			l.advance()
		}
		return l.finish(TOK_BLOCK_COMMENT, startLine, startCol, startPos)
	}

	return nil
}

func isDecimalDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDecimalDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDecimalDigit(c)
}

func (l *Lexer) lexIdentOrKeyword() *Token {
	startLine, startCol, startPos := l.line, l.col, l.pos
	for !l.eof() && isIdentCont(l.peek()) {
		l.advance()
	}
	tok := l.finish(TOK_IDENT, startLine, startCol, startPos)
	if kw, ok := keywords[tok.Text]; ok {
		tok.Kind = kw
	}
	return tok
}

// lexNumericLit lexes an integer literal, including an optional type
// suffix (i8/i32/i64/u8/u32/u64). Unsuffixed literals are typed i32 by the
// analyzer, not the lexer.
func (l *Lexer) lexNumericLit() *Token {
	startLine, startCol, startPos := l.line, l.col, l.pos

	if l.peek() == '0' && (l.peekAt(1) == 'x' || l.peekAt(1) == 'X') {
		l.advance()
		l.advance()
		for !l.eof() && isHexDigit(l.peek()) {
			l.advance()
		}
	} else {
		for !l.eof() && isDecimalDigit(l.peek()) {
			l.advance()
		}
	}

	// Optional type suffix: longest match among the known suffixes.
	for _, suf := range []string{"i32", "i64", "u32", "u64", "i8", "u8"} {
		if strings.HasPrefix(string(l.src[l.pos:]), suf) {
			for range suf {
				l.advance()
			}
			break
		}
	}

	return l.finish(TOK_INTLIT, startLine, startCol, startPos)
}

// lexCharLit lexes a character literal, including escape sequences.
func (l *Lexer) lexCharLit() *Token {
	startLine, startCol, startPos := l.line, l.col, l.pos
	l.advance() // opening quote

	if !l.eof() && l.peek() == '\\' {
		l.advance()
		if !l.eof() {
			l.lexEscapeBody()
		}
	} else if !l.eof() {
		l.advance()
	}

	if !l.eof() && l.peek() == '\'' {
		l.advance()
		return l.finish(TOK_CHARLIT, startLine, startCol, startPos)
	}

	return l.finish(TOK_ERROR, startLine, startCol, startPos)
}

// lexStringLit lexes a double-quoted string literal, including escape
// sequences, up to the closing quote or end of line/file.
func (l *Lexer) lexStringLit() *Token {
	startLine, startCol, startPos := l.line, l.col, l.pos
	l.advance() // opening quote

	for !l.eof() && l.peek() != '"' && l.peek() != '\n' {
		if l.peek() == '\\' {
			l.advance()
			if !l.eof() {
				l.lexEscapeBody()
			}
		} else {
			l.advance()
		}
	}

	if !l.eof() && l.peek() == '"' {
		l.advance()
		return l.finish(TOK_STRINGLIT, startLine, startCol, startPos)
	}

	return l.finish(TOK_ERROR, startLine, startCol, startPos)
}

// lexEscapeBody consumes the character(s) following a backslash in a
// character or string literal: \n \t \\ \" \0 or \xHH.
func (l *Lexer) lexEscapeBody() {
	c := l.peek()
	switch c {
	case 'n', 't', '\\', '"', '\'', '0':
		l.advance()
	case 'x':
		l.advance()
		for i := 0; i < 2 && !l.eof() && isHexDigit(l.peek()); i++ {
			l.advance()
		}
	default:
		l.advance()
	}
}

// multiCharSymbols maps multi-character punctuation/operator spellings to
// their token kind, longest-match-first order enforced by lexPunct.
var multiCharSymbols = []struct {
	text string
	kind TokenKind
}{
	{"->", TOK_ARROW},
	{"::", TOK_COLONCOLON},
	{"&&", TOK_LAND},
	{"||", TOK_LOR},
	{"==", TOK_EQ},
	{"!=", TOK_NEQ},
	{"<=", TOK_LE},
	{">=", TOK_GE},
	{"...", TOK_ELLIPSIS},
}

var singleCharSymbols = map[byte]TokenKind{
	'+': TOK_PLUS,
	'-': TOK_MINUS,
	'*': TOK_STAR,
	'/': TOK_SLASH,
	'%': TOK_PERCENT,
	'=': TOK_ASSIGN,
	'<': TOK_LT,
	'>': TOK_GT,
	'!': TOK_NOT,
	'&': TOK_AMP,
	'.': TOK_DOT,
	';': TOK_SEMI,
	',': TOK_COMMA,
	':': TOK_COLON,
	'(': TOK_LPAREN,
	')': TOK_RPAREN,
	'[': TOK_LBRACKET,
	']': TOK_RBRACKET,
	'{': TOK_LBRACE,
	'}': TOK_RBRACE,
}

func (l *Lexer) lexPunct() *Token {
	startLine, startCol, startPos := l.line, l.col, l.pos
	rest := l.src[l.pos:]

	// "..." must be checked before "." and ".." is not a token at all.
	if strings.HasPrefix(string(rest), "...") {
		for i := 0; i < 3; i++ {
			l.advance()
		}
		return l.finish(TOK_ELLIPSIS, startLine, startCol, startPos)
	}

	for _, sym := range multiCharSymbols {
		if sym.text == "..." {
			continue
		}
		if strings.HasPrefix(string(rest), sym.text) {
			for range sym.text {
				l.advance()
			}
			return l.finish(sym.kind, startLine, startCol, startPos)
		}
	}

	c := l.peek()
	if kind, ok := singleCharSymbols[c]; ok {
		l.advance()
		return l.finish(kind, startLine, startCol, startPos)
	}

	// Unrecognized byte: consume it and yield an error token so lexing
	// does not abort.
	l.advance()
	return l.finish(TOK_ERROR, startLine, startCol, startPos)
}
