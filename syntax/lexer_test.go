package syntax

import "testing"

func lexAll(src string) []*Token {
	l := NewLexer([]byte(src))
	var toks []*Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Kind == TOK_EOF {
			return toks
		}
	}
}

func TestLexerKeywordsAndIdents(t *testing.T) {
	toks := lexAll("let mut x")
	kinds := significantKinds(toks)

	want := []TokenKind{TOK_LET, TOK_MUT, TOK_IDENT, TOK_EOF}
	if len(kinds) != len(want) {
		t.Fatalf("got %d significant tokens, want %d: %v", len(kinds), len(want), kinds)
	}
	for i, k := range want {
		if kinds[i] != k {
			t.Errorf("token %d kind = %v, want %v", i, kinds[i], k)
		}
	}
}

func TestLexerOperators(t *testing.T) {
	tests := []struct {
		src  string
		kind TokenKind
	}{
		{"==", TOK_EQ},
		{"!=", TOK_NEQ},
		{"<=", TOK_LE},
		{">=", TOK_GE},
		{"&&", TOK_LAND},
		{"||", TOK_LOR},
		{"->", TOK_ARROW},
		{"::", TOK_COLONCOLON},
		{"...", TOK_ELLIPSIS},
		{"<", TOK_LT},
		{"&", TOK_AMP},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			toks := lexAll(tt.src)
			if toks[0].Kind != tt.kind {
				t.Errorf("lexing %q gave kind %v, want %v", tt.src, toks[0].Kind, tt.kind)
			}
		})
	}
}

// TestLexerRoundTrip exercises the lossless-token invariant: concatenating
// every token's raw text reproduces the source exactly, trivia included.
func TestLexerRoundTrip(t *testing.T) {
	src := "fn main() -> i32 { // comment\n\tlet a: i32 = 1 + 2;\n\treturn a;\n}\n"
	toks := lexAll(src)

	var rebuilt string
	for _, tok := range toks {
		rebuilt += tok.Text
	}

	if rebuilt != src {
		t.Fatalf("round trip mismatch:\ngot:  %q\nwant: %q", rebuilt, src)
	}
}

func TestLexerIntLitSuffix(t *testing.T) {
	toks := lexAll("42u32")
	if toks[0].Kind != TOK_INTLIT {
		t.Fatalf("expected an int literal token, got %v", toks[0].Kind)
	}
	if toks[0].Text != "42u32" {
		t.Errorf("int literal text = %q, want 42u32 (suffix kept as part of the lexeme)", toks[0].Text)
	}
}

func significantKinds(toks []*Token) []TokenKind {
	var out []TokenKind
	for _, tok := range toks {
		if tok.Kind == TOK_WHITESPACE || tok.Kind == TOK_LINE_COMMENT || tok.Kind == TOK_BLOCK_COMMENT {
			continue
		}
		out = append(out, tok.Kind)
	}
	return out
}
