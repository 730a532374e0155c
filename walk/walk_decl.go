package walk

import (
	"github.com/widsnoy/airyc/ast"
	"github.com/widsnoy/airyc/depm"
	"github.com/widsnoy/airyc/report"
	"github.com/widsnoy/airyc/sem"
	"github.com/widsnoy/airyc/syntax"
	"github.com/widsnoy/airyc/types"
)

// wireImportedStructs brings every struct name exposed by this module's
// imports into its scope: a bare `import "p"` exposes all of p's public
// top-level symbols, while a selective import exposes only the named
// one. Called before declareStructs so within-module field resolution
// can already see imported struct names; at this point in AnalyzeAll's pipeline the
// imported modules (earlier in topological order) have only their
// struct names declared, not yet their functions -- wireImportedFuncs
// handles those in a later pass, once every module's structs exist.
func (w *Walker) wireImportedStructs() {
	w.wireImports(sem.SymStruct)
}

// wireImportedFuncs brings imported function symbols into scope; split
// from wireImportedStructs because functions are declared in a later
// pass than structs (function signatures can reference struct types that
// must already be known, including ones imported from sibling modules).
func (w *Walker) wireImportedFuncs() {
	w.wireImports(sem.SymFunction)
}

func (w *Walker) wireImports(kind sem.SymbolKind) {
	for _, imp := range w.mod.Imports {
		if !imp.Resolved {
			continue
		}
		target := w.graph.Module(imp.Target)
		if target.Symbols == nil {
			continue
		}

		bring := func(sym *sem.Symbol) {
			if sym.Kind != kind {
				return
			}
			alias := &sem.Symbol{
				Id: sym.Id, Name: sym.Name, Kind: sem.SymImportedAlias,
				DefSpan: sym.DefSpan, Type: sym.Type, AliasOf: sym,
			}
			if !w.mod.Scope.Define(alias) {
				w.recError(imp.Node.Span(), report.KindDuplicateDefinition,
					"imported name `%s` conflicts with another symbol in this module", sym.Name)
			}
		}

		if imp.Kind == depm.ImportSelective {
			if sym, ok := target.Symbols.Lookup(imp.Symbol); ok {
				bring(sym)
			}
			continue
		}

		for _, sym := range target.Symbols.Symbols() {
			bring(sym)
		}
	}
}

// declareStructs registers a types.StructDef stub (name only, empty
// field list) for every struct declared directly in this module, so
// that forward references -- including cross-module ones resolved via
// wireImportedStructs -- can find the pointer before fields are filled
// in by resolveStructFields.
func (w *Walker) declareStructs() []*types.StructDef {
	var out []*types.StructDef

	for _, decl := range ast.Root(w.mod.Root) {
		if decl.Kind != syntax.NodeStructDef {
			continue
		}

		nameTok, ok := ast.StructDefName(decl)
		if !ok {
			continue
		}

		sd := &types.StructDef{Name: nameTok.Text, ModPath: w.mod.AbsPath}
		sym := sem.NewSymbol(nameTok.Text, sem.SymStruct, nameTok.Span)
		sym.StructDef = sd

		if !w.mod.Symbols.Define(sym) {
			w.recError(nameTok.Span, report.KindDuplicateDefinition,
				"struct `%s` is already defined in this module", nameTok.Text)
			continue
		}
		w.mod.Scope.Define(sym)
		out = append(out, sd)
	}

	return out
}

// resolveStructFields fills in each of this module's structs' field
// types, now that every struct name in the whole program is known.
func (w *Walker) resolveStructFields() {
	for _, decl := range ast.Root(w.mod.Root) {
		if decl.Kind != syntax.NodeStructDef {
			continue
		}
		nameTok, ok := ast.StructDefName(decl)
		if !ok {
			continue
		}
		sym, ok := w.mod.Symbols.Lookup(nameTok.Text)
		if !ok {
			continue
		}
		sd := sym.StructDef

		w.catchDecl(func() {
			seen := make(map[string]bool)
			for _, fieldNode := range ast.StructDefFields(decl) {
				fnTok, ok := ast.FieldName(fieldNode)
				if !ok {
					continue
				}
				if seen[fnTok.Text] {
					w.recError(fnTok.Span, report.KindDuplicateDefinition,
						"field `%s` is already defined in struct `%s`", fnTok.Text, sd.Name)
					continue
				}
				seen[fnTok.Text] = true

				ftNode, ok := ast.FieldType(fieldNode)
				if !ok {
					continue
				}
				ft := w.resolveType(ftNode, false)
				sd.Fields = append(sd.Fields, types.Field{Name: fnTok.Text, Type: ft})
			}
		})
	}
}

// declareFuncsAndGlobals registers every top-level function signature and
// global variable in this module. Function bodies and global
// initializers are analyzed later, in walkBodies, once every module's
// signatures are visible (a function may call another declared later in
// the same file, or attach a body to an earlier external declaration).
func (w *Walker) declareFuncsAndGlobals() {
	for _, decl := range ast.Root(w.mod.Root) {
		switch decl.Kind {
		case syntax.NodeFuncSign, syntax.NodeFuncDef:
			w.catchDecl(func() { w.declareFunc(decl) })
		case syntax.NodeVarDef:
			w.catchDecl(func() { w.declareGlobal(decl) })
		case syntax.NodeAttachDef:
			w.catchDecl(func() { w.resolveAttach(decl) })
		}
	}
}

func (w *Walker) declareFunc(decl *syntax.Node) {
	sig := decl
	hasBody := decl.Kind == syntax.NodeFuncDef
	if hasBody {
		s, ok := ast.FuncDefSign(decl)
		if !ok {
			return
		}
		sig = s
	}

	nameTok, ok := ast.FuncSignName(sig)
	if !ok {
		return
	}

	paramNodes := ast.FuncSignParams(sig)
	params := make([]*sem.Symbol, 0, len(paramNodes))
	for _, pn := range paramNodes {
		pnTok, ok := ast.ParamName(pn)
		if !ok {
			continue
		}
		ptNode, ok := ast.ParamType(pn)
		if !ok {
			continue
		}
		pt := w.resolveType(ptNode, false)
		pt = decayArray(pt)
		psym := sem.NewSymbol(pnTok.Text, sem.SymVariable, pnTok.Span)
		psym.Type = pt
		psym.Storage = sem.StorageParam
		params = append(params, psym)
	}

	variadic := ast.FuncSignVariadic(sig)
	if variadic && hasBody {
		w.error(sig.Span(), report.KindTypeMismatch, "a function with a body may not be variadic")
	}

	retType := types.Type(types.Void)
	if rtNode, ok := ast.FuncSignReturnType(sig); ok {
		retType = w.resolveType(rtNode, true)
	}

	if existing, ok := w.mod.Symbols.Lookup(nameTok.Text); ok {
		if existing.Kind != sem.SymFunction || !signaturesCompatible(existing, params, retType) {
			w.recError(nameTok.Span, report.KindDuplicateDefinition,
				"function `%s` redeclared with an incompatible signature", nameTok.Text)
		}
		if hasBody {
			if existing.HasBody {
				w.recError(nameTok.Span, report.KindDuplicateDefinition,
					"function `%s` already has a body", nameTok.Text)
			} else {
				existing.HasBody = true
				existing.DeclNode = decl
			}
		}
		return
	}

	sym := sem.NewSymbol(nameTok.Text, sem.SymFunction, nameTok.Span)
	sym.Params = params
	sym.ReturnType = retType
	sym.IsVariadic = variadic
	sym.HasBody = hasBody
	sym.ExternalABI = !hasBody
	sym.DeclNode = decl

	w.mod.Symbols.Define(sym)
	w.mod.Scope.Define(sym)
}

func signaturesCompatible(existing *sem.Symbol, params []*sem.Symbol, ret types.Type) bool {
	if len(existing.Params) != len(params) {
		return false
	}
	for i, p := range existing.Params {
		if !types.Equals(p.Type, params[i].Type) {
			return false
		}
	}
	return types.Equals(existing.ReturnType, ret)
}

func (w *Walker) declareGlobal(decl *syntax.Node) {
	nameTok, ok := ast.VarDefName(decl)
	if !ok {
		return
	}
	typeNode, ok := ast.VarDefType(decl)
	if !ok {
		return
	}

	isConst := ast.TypeIsConstPrefixed(typeNode)
	resolved := w.resolveType(typeNode, false)

	sym := sem.NewSymbol(nameTok.Text, sem.SymVariable, nameTok.Span)
	sym.Type = resolved
	sym.IsConst = isConst
	sym.Storage = sem.StorageGlobal

	if initNode, ok := ast.VarDefInit(decl); ok {
		sym.InitExpr = initNode
	} else if isConst {
		w.error(nameTok.Span, report.KindConstantExprExpected, "const global `%s` requires an initializer", nameTok.Text)
	}

	if !w.mod.Symbols.Define(sym) {
		w.recError(nameTok.Span, report.KindDuplicateDefinition,
			"global `%s` is already defined in this module", nameTok.Text)
		return
	}
	w.mod.Scope.Define(sym)
}

// resolveAttach requires f to be a function declared earlier in the same
// module with no body; attaching to an imported symbol is an error.
func (w *Walker) resolveAttach(decl *syntax.Node) {
	nameTok, ok := ast.AttachDefName(decl)
	if !ok {
		return
	}

	sym, ok := w.mod.Symbols.Lookup(nameTok.Text)
	if !ok {
		if _, imported := w.mod.Scope.LookupLocal(nameTok.Text); imported {
			w.error(nameTok.Span, report.KindDuplicateDefinition,
				"cannot attach to imported symbol `%s`", nameTok.Text)
		}
		w.error(nameTok.Span, report.KindUnresolvedName,
			"`%s` is not a function declared in this module", nameTok.Text)
		return
	}
	if sym.Kind != sem.SymFunction {
		w.error(nameTok.Span, report.KindTypeMismatch, "`%s` is not a function", nameTok.Text)
	}
	if sym.HasBody {
		w.error(nameTok.Span, report.KindDuplicateDefinition, "function `%s` already has a body", nameTok.Text)
	}

	body, ok := ast.AttachDefBody(decl)
	if !ok {
		return
	}
	sym.HasBody = true
	sym.ExternalABI = false
	sym.DeclNode = body
}

// decayArray converts an array type to a pointer to its element type,
// the conversion applied to array-typed function arguments and params.
func decayArray(t types.Type) types.Type {
	if arr, ok := t.(*types.Array); ok {
		return &types.Pointer{Pointee: arr.Elem, PointerQual: types.Mut, PointeeQual: types.Mut}
	}
	return t
}
