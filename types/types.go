// Package types implements Airyc's type system: the primitive/pointer/
// array/struct sum type, struct layout computation, the integer widening
// lattice that governs implicit conversions, and cross-module recursive
// struct detection.
//
// The type set is deliberately small and value-semantics-only -- there
// is no alias, tuple, or generic type variable machinery.
package types

import "strings"

// Type is the parent interface of every Airyc type.
type Type interface {
	// Repr returns the type's surface-syntax representation, used in
	// diagnostic messages.
	Repr() string

	equals(Type) bool
}

// Equals reports whether two types are structurally identical.
func Equals(a, b Type) bool {
	return a.equals(b)
}

// -----------------------------------------------------------------------------

// Prim is a primitive scalar type.
type Prim int

const (
	Void Prim = iota
	Bool
	I8
	I32
	I64
	U8
	U32
	U64
)

func (p Prim) Repr() string {
	switch p {
	case Void:
		return "void"
	case Bool:
		return "bool"
	case I8:
		return "i8"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case U8:
		return "u8"
	case U32:
		return "u32"
	case U64:
		return "u64"
	default:
		return "<invalid prim>"
	}
}

func (p Prim) equals(other Type) bool {
	op, ok := other.(Prim)
	return ok && p == op
}

// IsInteger reports whether p is one of the signed or unsigned integer
// primitives (excludes Bool and Void).
func (p Prim) IsInteger() bool {
	switch p {
	case I8, I32, I64, U8, U32, U64:
		return true
	default:
		return false
	}
}

// IsSigned reports whether p is a signed integer primitive.
func (p Prim) IsSigned() bool {
	switch p {
	case I8, I32, I64:
		return true
	default:
		return false
	}
}

// IsUnsigned reports whether p is an unsigned integer primitive.
func (p Prim) IsUnsigned() bool {
	switch p {
	case U8, U32, U64:
		return true
	default:
		return false
	}
}

// SizeBytes returns a primitive's storage size in bytes. Bool is stored
// as a full byte even though it behaves as a single-bit value internally.
func (p Prim) SizeBytes() int {
	switch p {
	case Void:
		return 0
	case Bool, I8, U8:
		return 1
	case I32, U32:
		return 4
	case I64, U64:
		return 8
	default:
		return 0
	}
}

// AlignBytes returns a primitive's natural alignment, equal to its size
// for every Airyc primitive.
func (p Prim) AlignBytes() int {
	if p == Void {
		return 1
	}
	return p.SizeBytes()
}

// -----------------------------------------------------------------------------

// Qualifier is a mut/const qualifier attached independently to a pointer
// and to its pointee.
type Qualifier int

const (
	Mut Qualifier = iota
	Const
)

func (q Qualifier) String() string {
	if q == Const {
		return "const"
	}
	return "mut"
}

// Pointer is a pointer type. PointerQual governs whether the pointer
// itself may be reassigned; PointeeQual governs whether a store through
// the pointer is permitted.
type Pointer struct {
	Pointee     Type
	PointerQual Qualifier
	PointeeQual Qualifier
}

func (pt *Pointer) Repr() string {
	sb := strings.Builder{}
	sb.WriteByte('*')
	sb.WriteString(pt.PointerQual.String())
	sb.WriteByte(' ')
	if pt.PointeeQual == Const {
		sb.WriteString("const ")
	}
	sb.WriteString(pt.Pointee.Repr())
	return sb.String()
}

func (pt *Pointer) equals(other Type) bool {
	opt, ok := other.(*Pointer)
	if !ok {
		return false
	}
	return pt.PointerQual == opt.PointerQual &&
		pt.PointeeQual == opt.PointeeQual &&
		Equals(pt.Pointee, opt.Pointee)
}

// IsVoidPointer reports whether pt points at void, regardless of
// qualifiers.
func (pt *Pointer) IsVoidPointer() bool {
	p, ok := pt.Pointee.(Prim)
	return ok && p == Void
}

// CompatibleWith reports pointer compatibility: pointer-to-void is
// compatible with any other pointer type in either direction; otherwise
// the pointee structural types must be equal.
// Mut/const qualifiers never make two pointer types incompatible -- that
// is checked separately, at assignment sites.
func (pt *Pointer) CompatibleWith(other *Pointer) bool {
	if pt.IsVoidPointer() || other.IsVoidPointer() {
		return true
	}
	return Equals(pt.Pointee, other.Pointee)
}

// -----------------------------------------------------------------------------

// Array is a fixed-size array type.
type Array struct {
	Elem  Type
	Count int64
}

func (at *Array) Repr() string {
	return "[" + at.Elem.Repr() + "; " + itoa(at.Count) + "]"
}

func (at *Array) equals(other Type) bool {
	oat, ok := other.(*Array)
	return ok && at.Count == oat.Count && Equals(at.Elem, oat.Elem)
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// -----------------------------------------------------------------------------

// StructRef is a reference to a struct definition, resolved to the
// struct visible under a given (module, name) pair.
type StructRef struct {
	Def *StructDef
}

func (sr *StructRef) Repr() string {
	return sr.Def.Name
}

func (sr *StructRef) equals(other Type) bool {
	osr, ok := other.(*StructRef)
	return ok && sr.Def == osr.Def
}
