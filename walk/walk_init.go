package walk

import (
	"github.com/widsnoy/airyc/ast"
	"github.com/widsnoy/airyc/report"
	"github.com/widsnoy/airyc/sem"
	"github.com/widsnoy/airyc/syntax"
	"github.com/widsnoy/airyc/types"
)

// walkInitializer type-checks a variable or global's initializer against
// its declared type, recursing into brace-init lists for array and struct
// targets. It writes facts for n itself (and, transitively, for every
// expression nested in the init list) the same way walkExpr does, so
// generate can read them back by node identity regardless of which path
// produced them.
func (w *Walker) walkInitializer(n *syntax.Node, target types.Type) *sem.ExprFacts {
	if n.Kind != syntax.NodeInitList {
		ef := w.walkExpr(n)
		w.checkAssignable(n, ef.Type, target)
		if !types.Equals(ef.Type, target) {
			ef.ConvertTo = target
		}
		return ef
	}

	elems := ast.InitListElems(n)
	allConst := true

	switch t := target.(type) {
	case *types.Array:
		if int64(len(elems)) > t.Count {
			w.error(n.Span(), report.KindTypeMismatch,
				"too many initializers for array of size %d", t.Count)
		}
		for _, elem := range elems {
			ef := w.walkInitializer(elem, t.Elem)
			allConst = allConst && ef.Const
		}
	case *types.StructRef:
		if len(elems) > len(t.Def.Fields) {
			w.error(n.Span(), report.KindTypeMismatch,
				"too many initializers for struct `%s`", t.Def.Name)
		}
		for i, elem := range elems {
			ef := w.walkInitializer(elem, t.Def.Fields[i].Type)
			allConst = allConst && ef.Const
		}
	default:
		w.error(n.Span(), report.KindTypeMismatch,
			"brace initializer is not valid for type `%s`", target.Repr())
		allConst = false
	}

	ef := &sem.ExprFacts{Type: target, Class: sem.RValue, Const: allConst}
	w.facts.SetExpr(n, ef)
	return ef
}
