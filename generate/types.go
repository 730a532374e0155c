// Package generate lowers an analyzed module graph to LLVM IR using
// github.com/llir/llvm, producing one *ir.Module per Airyc module. A
// Generator struct carries the module-level builder plus scope stacks for
// locals; generation is per-module rather than per-package, since Airyc
// has no package level between a module and the whole program.
package generate

import (
	lltypes "github.com/llir/llvm/ir/types"

	"github.com/widsnoy/airyc/types"
)

// convType translates an Airyc type to its LLVM representation. bool
// lowers to i1 in registers; storage locations (allocas, struct fields,
// array elements) always use i8 for bool, handled by convStorageType at
// call sites that need it.
func (g *Generator) convType(t types.Type) lltypes.Type {
	switch v := t.(type) {
	case types.Prim:
		return convPrim(v)
	case *types.Pointer:
		return lltypes.NewPointer(g.convStorageType(v.Pointee))
	case *types.Array:
		return lltypes.NewArray(uint64(v.Count), g.convStorageType(v.Elem))
	case *types.StructRef:
		return g.convStruct(v.Def)
	default:
		return lltypes.Void
	}
}

// convStorageType is convType, except bool is widened to i8: the type
// used for anything actually given an address (alloca, struct field,
// array element, global).
func (g *Generator) convStorageType(t types.Type) lltypes.Type {
	if p, ok := t.(types.Prim); ok && p == types.Bool {
		return lltypes.I8
	}
	return g.convType(t)
}

func convPrim(p types.Prim) lltypes.Type {
	switch p {
	case types.Void:
		return lltypes.Void
	case types.Bool:
		return lltypes.I1
	case types.I8, types.U8:
		return lltypes.I8
	case types.I32, types.U32:
		return lltypes.I32
	case types.I64, types.U64:
		return lltypes.I64
	default:
		return lltypes.Void
	}
}

// convStruct returns the named LLVM struct type for sd, defining it in
// this generator's module on first reference. A struct imported from
// another module is redefined here under the same mangled name so the two
// translation units agree on layout without sharing a type object (LLVM
// struct identity is per-module).
func (g *Generator) convStruct(sd *types.StructDef) *lltypes.StructType {
	if st, ok := g.structTypes[sd]; ok {
		return st
	}

	// Reserve the slot before recursing so a struct containing a pointer
	// to itself (legal; only by-value cycles are rejected) doesn't loop.
	st := lltypes.NewStruct()
	g.structTypes[sd] = st
	g.llMod.NewTypeDef(structTypeName(sd), st)

	for _, f := range sd.Fields {
		st.Fields = append(st.Fields, g.convStorageType(f.Type))
	}

	return st
}

func structTypeName(sd *types.StructDef) string {
	return "struct." + mangleModule(sd.ModPath) + "." + sd.Name
}
