package syntax

import "github.com/widsnoy/airyc/report"

// TokenKind identifies the lexical class of a Token.
type TokenKind int

// Enumeration of token kinds. Trivia kinds (whitespace, comments) are
// included so that the lexer output is lossless: every byte of the source
// file is represented by some token.
const (
	TOK_EOF TokenKind = iota
	TOK_ERROR

	// Trivia.
	TOK_WHITESPACE
	TOK_LINE_COMMENT
	TOK_BLOCK_COMMENT

	// Identifier and literals.
	TOK_IDENT
	TOK_INTLIT
	TOK_CHARLIT
	TOK_STRINGLIT

	// Keywords.
	TOK_LET
	TOK_CONST
	TOK_MUT
	TOK_FN
	TOK_STRUCT
	TOK_ATTACH
	TOK_IMPORT
	TOK_IF
	TOK_ELSE
	TOK_WHILE
	TOK_BREAK
	TOK_CONTINUE
	TOK_RETURN
	TOK_VOID
	TOK_BOOL
	TOK_I8
	TOK_I32
	TOK_I64
	TOK_U8
	TOK_U32
	TOK_U64
	TOK_NULL
	TOK_TRUE
	TOK_FALSE

	// Punctuation and operators.
	TOK_PLUS
	TOK_MINUS
	TOK_STAR
	TOK_SLASH
	TOK_PERCENT
	TOK_ASSIGN
	TOK_EQ
	TOK_NEQ
	TOK_LT
	TOK_GT
	TOK_LE
	TOK_GE
	TOK_LAND
	TOK_LOR
	TOK_NOT
	TOK_AMP
	TOK_DOT
	TOK_ARROW
	TOK_COLONCOLON
	TOK_SEMI
	TOK_COMMA
	TOK_COLON
	TOK_LPAREN
	TOK_RPAREN
	TOK_LBRACKET
	TOK_RBRACKET
	TOK_LBRACE
	TOK_RBRACE
	TOK_ELLIPSIS
)

// IsTrivia reports whether the token kind is whitespace or a comment: text
// that is reproduced losslessly but is skipped by the parser's grammar.
func (k TokenKind) IsTrivia() bool {
	switch k {
	case TOK_WHITESPACE, TOK_LINE_COMMENT, TOK_BLOCK_COMMENT:
		return true
	default:
		return false
	}
}

// keywords maps keyword spellings to their token kind.
var keywords = map[string]TokenKind{
	"let":      TOK_LET,
	"const":    TOK_CONST,
	"mut":      TOK_MUT,
	"fn":       TOK_FN,
	"struct":   TOK_STRUCT,
	"attach":   TOK_ATTACH,
	"import":   TOK_IMPORT,
	"if":       TOK_IF,
	"else":     TOK_ELSE,
	"while":    TOK_WHILE,
	"break":    TOK_BREAK,
	"continue": TOK_CONTINUE,
	"return":   TOK_RETURN,
	"void":     TOK_VOID,
	"bool":     TOK_BOOL,
	"i8":       TOK_I8,
	"i32":      TOK_I32,
	"i64":      TOK_I64,
	"u8":       TOK_U8,
	"u32":      TOK_U32,
	"u64":      TOK_U64,
	"null":     TOK_NULL,
	"true":     TOK_TRUE,
	"false":    TOK_FALSE,
}

// IntSuffixes maps the recognized integer literal suffixes to their token
// kind. The analyzer's constant folder (walk's foldIntLit) uses it to split
// a numeric literal's digits from its trailing type suffix; the lexer keeps
// its own suffix list.
var IntSuffixes = map[string]TokenKind{
	"i8":  TOK_I8,
	"i32": TOK_I32,
	"i64": TOK_I64,
	"u8":  TOK_U8,
	"u32": TOK_U32,
	"u64": TOK_U64,
}

// Token is a single lexical token: a tagged kind, its exact source text
// (including, for literals, any surrounding quotes), and the span it
// occupies.
type Token struct {
	Kind TokenKind
	Text string
	Span *report.TextSpan
}

// Len returns the number of source bytes this token's text occupies. It
// implements Element so tokens can be used as leaves of the lossless
// syntax tree.
func (t *Token) Len() int {
	return len(t.Text)
}
