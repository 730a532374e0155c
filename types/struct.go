package types

// Field is one member of a struct definition.
type Field struct {
	Name string
	Type Type

	// Offset and set once Layout has run.
	Offset int
}

// Color is the three-color DFS marker used by RecursiveType search,
// attached directly to StructDef rather than a separate wrapper type.
type Color int

const (
	ColorWhite Color = iota
	ColorGrey
	ColorBlack
)

// StructDef is a struct declaration together with its computed layout.
// Two StructDefs are distinct types even if structurally identical:
// struct identity is nominal, keyed by declaration site.
type StructDef struct {
	Name    string
	ModPath string // the AbsPath of the declaring module

	Fields []Field

	// Size and Align are computed once by Layout.
	Size, Align int
	laidOut     bool

	// color supports RecursiveType cycle detection; it is transient
	// analysis state, not part of the type's identity.
	color Color
}

// Layout computes each field's byte offset, the struct's total size, and
// its alignment: natural alignment for primitives, the maximum field
// alignment for the struct as a whole, with padding inserted between
// fields and at the tail so the struct's size is a multiple of its
// alignment. It recursively lays out
// any by-value struct fields first. The laidOut mark stops the recursion
// on a recursive value cycle, but the sizes computed along such a cycle
// are wrong; types.RecursiveType reports those cycles.
func (sd *StructDef) Layout() {
	if sd.laidOut {
		return
	}
	sd.laidOut = true // set before recursing: a cycle would otherwise loop

	offset := 0
	align := 1

	for i := range sd.Fields {
		f := &sd.Fields[i]
		if ref, ok := f.Type.(*StructRef); ok {
			ref.Def.Layout()
		}
		fa := typeAlign(f.Type)
		if fa > align {
			align = fa
		}
		offset = alignUp(offset, fa)
		f.Offset = offset
		offset += typeSize(f.Type)
	}

	sd.Size = alignUp(offset, align)
	sd.Align = align
}

func alignUp(n, align int) int {
	if align <= 1 {
		return n
	}
	rem := n % align
	if rem == 0 {
		return n
	}
	return n + (align - rem)
}

func typeSize(t Type) int {
	switch v := t.(type) {
	case Prim:
		return v.SizeBytes()
	case *Pointer:
		return 8
	case *Array:
		return typeSize(v.Elem) * int(v.Count)
	case *StructRef:
		return v.Def.Size
	default:
		return 0
	}
}

func typeAlign(t Type) int {
	switch v := t.(type) {
	case Prim:
		return v.AlignBytes()
	case *Pointer:
		return 8
	case *Array:
		return typeAlign(v.Elem)
	case *StructRef:
		return v.Def.Align
	default:
		return 1
	}
}

// SizeOf and AlignOf expose the layout helpers for use outside this
// package (eg. by generate when sizing GEP-scaled pointer arithmetic).
func SizeOf(t Type) int  { return typeSize(t) }
func AlignOf(t Type) int { return typeAlign(t) }
