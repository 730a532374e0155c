package walk

import (
	"strconv"
	"strings"

	"github.com/widsnoy/airyc/ast"
	"github.com/widsnoy/airyc/sem"
	"github.com/widsnoy/airyc/syntax"
	"github.com/widsnoy/airyc/types"
)

// foldConst recursively evaluates a constant expression using exact
// integer arithmetic in the expression's resolved type. It returns
// ok=false, rather than panicking, for any non-foldable subexpression --
// callers that require a constant raise ConstantExprExpected themselves
// so the diagnostic can name the enclosing context (array bound, global
// initializer, ...).
func (w *Walker) foldConst(n *syntax.Node) (val int64, typ types.Type, ok bool) {
	// Wrap each folded value to its type's width, so every step of a
	// nested expression computes in that type rather than in int64.
	defer func() {
		p, isPrim := typ.(types.Prim)
		if !ok || !isPrim || !p.IsInteger() || p.SizeBytes() >= 8 {
			return
		}
		bits := uint(p.SizeBytes() * 8)
		if p.IsUnsigned() {
			val &= int64(1)<<bits - 1
		} else {
			val = val << (64 - bits) >> (64 - bits)
		}
	}()
	switch n.Kind {
	case syntax.NodeIntLit:
		return foldIntLit(n)
	case syntax.NodeCharLit:
		return foldCharLit(n)
	case syntax.NodeBoolLit:
		return foldBoolLit(n)
	case syntax.NodeParenExpr:
		inner, ok := ast.ParenInner(n)
		if !ok {
			return 0, nil, false
		}
		return w.foldConst(inner)
	case syntax.NodeIdentExpr:
		return w.foldIdent(n)
	case syntax.NodeUnaryExpr:
		return w.foldUnary(n)
	case syntax.NodeBinaryExpr:
		return w.foldBinary(n)
	default:
		return 0, nil, false
	}
}

func foldIntLit(n *syntax.Node) (int64, types.Type, bool) {
	tok, ok := ast.LitToken(n)
	if !ok {
		return 0, nil, false
	}

	text := tok.Text
	typ := types.I32
	for suf, kind := range syntax.IntSuffixes {
		if strings.HasSuffix(text, suf) {
			text = strings.TrimSuffix(text, suf)
			typ = suffixPrim(kind)
			break
		}
	}

	base := 10
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		base = 16
		text = text[2:]
	}

	val, err := strconv.ParseUint(text, base, 64)
	if err != nil {
		return 0, nil, false
	}
	return int64(val), typ, true
}

func suffixPrim(kind syntax.TokenKind) types.Prim {
	switch kind {
	case syntax.TOK_I8:
		return types.I8
	case syntax.TOK_I64:
		return types.I64
	case syntax.TOK_U8:
		return types.U8
	case syntax.TOK_U32:
		return types.U32
	case syntax.TOK_U64:
		return types.U64
	default:
		return types.I32
	}
}

func foldCharLit(n *syntax.Node) (int64, types.Type, bool) {
	tok, ok := ast.LitToken(n)
	if !ok {
		return 0, nil, false
	}
	body := strings.Trim(tok.Text, "'")
	r, ok := decodeEscapes(body)
	if !ok {
		return 0, nil, false
	}
	return int64(r), types.I8, true
}

func foldBoolLit(n *syntax.Node) (int64, types.Type, bool) {
	tok, ok := ast.LitToken(n)
	if !ok {
		return 0, nil, false
	}
	if tok.Kind == syntax.TOK_TRUE {
		return 1, types.Bool, true
	}
	return 0, types.Bool, true
}

// decodeEscapes decodes the common escape sequences (\n, \t, \\, \", \0,
// \xHH) from a literal's unquoted body, returning the single encoded
// byte value.
func decodeEscapes(body string) (byte, bool) {
	if len(body) == 0 {
		return 0, false
	}
	if body[0] != '\\' {
		return body[0], true
	}
	if len(body) < 2 {
		return 0, false
	}
	switch body[1] {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case '\\':
		return '\\', true
	case '"':
		return '"', true
	case '\'':
		return '\'', true
	case '0':
		return 0, true
	case 'x':
		if len(body) < 4 {
			return 0, false
		}
		v, err := strconv.ParseUint(body[2:4], 16, 8)
		if err != nil {
			return 0, false
		}
		return byte(v), true
	default:
		return 0, false
	}
}

func (w *Walker) foldIdent(n *syntax.Node) (int64, types.Type, bool) {
	tok, ok := ast.IdentName(n)
	if !ok {
		return 0, nil, false
	}
	sym, ok := w.lookup(tok.Text)
	if !ok || sym.Kind != sem.SymVariable || !sym.IsConst || sym.InitExpr == nil {
		return 0, nil, false
	}
	return w.foldConst(sym.InitExpr)
}

func (w *Walker) foldUnary(n *syntax.Node) (int64, types.Type, bool) {
	op, operand, ok := ast.UnaryParts(n)
	if !ok {
		return 0, nil, false
	}
	val, typ, ok := w.foldConst(operand)
	if !ok {
		return 0, nil, false
	}

	switch op.Kind {
	case syntax.TOK_PLUS:
		return val, typ, true
	case syntax.TOK_MINUS:
		return -val, typ, true
	case syntax.TOK_NOT:
		if val == 0 {
			return 1, types.Bool, true
		}
		return 0, types.Bool, true
	default:
		// Address-of and dereference are never constant expressions.
		return 0, nil, false
	}
}

func (w *Walker) foldBinary(n *syntax.Node) (int64, types.Type, bool) {
	lhs, op, rhs, ok := ast.BinaryParts(n)
	if !ok {
		return 0, nil, false
	}

	lv, lt, ok := w.foldConst(lhs)
	if !ok {
		return 0, nil, false
	}

	// Short-circuit operators evaluate rhs only when necessary, in both
	// constant folding and runtime lowering.
	if op.Kind == syntax.TOK_LAND && lv == 0 {
		return 0, types.Bool, true
	}
	if op.Kind == syntax.TOK_LOR && lv != 0 {
		return 1, types.Bool, true
	}

	rv, rt, ok := w.foldConst(rhs)
	if !ok {
		return 0, nil, false
	}

	common, ok := types.CommonType(lt, rt)
	if !ok {
		return 0, nil, false
	}

	switch op.Kind {
	case syntax.TOK_PLUS:
		return lv + rv, common, true
	case syntax.TOK_MINUS:
		return lv - rv, common, true
	case syntax.TOK_STAR:
		return lv * rv, common, true
	case syntax.TOK_SLASH:
		if rv == 0 {
			return 0, nil, false
		}
		return lv / rv, common, true
	case syntax.TOK_PERCENT:
		if rv == 0 {
			return 0, nil, false
		}
		return lv % rv, common, true
	case syntax.TOK_EQ:
		return boolVal(lv == rv), types.Bool, true
	case syntax.TOK_NEQ:
		return boolVal(lv != rv), types.Bool, true
	case syntax.TOK_LT:
		return boolVal(lv < rv), types.Bool, true
	case syntax.TOK_GT:
		return boolVal(lv > rv), types.Bool, true
	case syntax.TOK_LE:
		return boolVal(lv <= rv), types.Bool, true
	case syntax.TOK_GE:
		return boolVal(lv >= rv), types.Bool, true
	case syntax.TOK_LAND:
		return boolVal(lv != 0 && rv != 0), types.Bool, true
	case syntax.TOK_LOR:
		return boolVal(lv != 0 || rv != 0), types.Bool, true
	default:
		return 0, nil, false
	}
}

func boolVal(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
