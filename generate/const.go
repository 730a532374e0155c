package generate

import (
	"strconv"
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"

	"github.com/widsnoy/airyc/ast"
	"github.com/widsnoy/airyc/syntax"
	"github.com/widsnoy/airyc/types"
)

// constExpr synthesizes a compile-time constant for a global initializer.
// walkGlobalInit already required the initializer to be constant-
// foldable, so this never needs to fall back to runtime init code.
func (g *Generator) constExpr(n *syntax.Node, target types.Type) constant.Constant {
	if n.Kind == syntax.NodeInitList {
		return g.constInitList(n, target)
	}
	if n.Kind == syntax.NodeStringLit {
		gv, arrType := g.stringLitGlobal(n)
		zero := gepIdx(0)
		return constant.NewGetElementPtr(arrType, gv, zero, zero)
	}
	ef, _ := g.facts.Expr(n)
	return g.constScalar(ef)
}

// constInitList synthesizes a brace-initializer constant, zero-filling
// any array elements or struct fields the initializer list left unset.
// A local's brace initializer, lowered by genInitInto, stores only the
// listed elements and leaves the rest of the slot unwritten.
func (g *Generator) constInitList(n *syntax.Node, target types.Type) constant.Constant {
	elems := ast.InitListElems(n)

	switch t := target.(type) {
	case *types.Array:
		elemType := g.convStorageType(t.Elem)
		vals := make([]constant.Constant, t.Count)
		for i := range vals {
			if i < len(elems) {
				vals[i] = g.constExpr(elems[i], t.Elem)
			} else {
				vals[i] = constant.NewZeroInitializer(elemType)
			}
		}
		return constant.NewArray(lltypes.NewArray(uint64(t.Count), elemType), vals...)
	case *types.StructRef:
		st := g.convStruct(t.Def)
		vals := make([]constant.Constant, len(t.Def.Fields))
		for i, f := range t.Def.Fields {
			if i < len(elems) {
				vals[i] = g.constExpr(elems[i], f.Type)
			} else {
				vals[i] = constant.NewZeroInitializer(st.Fields[i])
			}
		}
		return constant.NewStruct(st, vals...)
	default:
		return constant.NewZeroInitializer(g.convStorageType(target))
	}
}

// stringLitGlobal creates a new private global holding a string literal's
// bytes, named by a per-module counter; every call makes a fresh global,
// so equal literals are not shared. genStringLit and constExpr both GEP
// into the global it returns.
func (g *Generator) stringLitGlobal(n *syntax.Node) (*ir.Global, *lltypes.ArrayType) {
	tok, _ := ast.LitToken(n)
	body := decodeStringBody(tok.Text) + "\x00"
	data := constant.NewCharArrayFromString(body)

	g.stringCounter++
	name := mangleModule(g.mod.AbsPath) + ".str." + strconv.Itoa(g.stringCounter)

	gv := g.llMod.NewGlobalDef(name, data)
	gv.Immutable = true
	gv.Linkage = enum.LinkagePrivate
	return gv, data.Typ
}

// decodeStringBody strips the surrounding quotes from a string literal's
// raw source text and resolves its backslash escapes.
func decodeStringBody(raw string) string {
	body := raw
	if len(body) >= 2 {
		body = body[1 : len(body)-1]
	}

	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		if body[i] != '\\' {
			sb.WriteByte(body[i])
			continue
		}
		i++
		if i >= len(body) {
			break
		}
		switch body[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '0':
			sb.WriteByte(0)
		case '\\':
			sb.WriteByte('\\')
		case '"':
			sb.WriteByte('"')
		case '\'':
			sb.WriteByte('\'')
		case 'x':
			if i+2 < len(body) {
				if v, err := strconv.ParseUint(body[i+1:i+3], 16, 8); err == nil {
					sb.WriteByte(byte(v))
				}
				i += 2
			}
		default:
			sb.WriteByte(body[i])
		}
	}
	return sb.String()
}
