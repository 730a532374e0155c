package types

// ConvertibleTo reports whether a value of type from may be implicitly
// converted to type to: widening only, within the same signedness
// (bool -> i8 -> i32 -> i64 and u8 -> u32 -> u64), plus the void-pointer
// compatibility rule. Narrowing, and mixing signed with unsigned, are
// never implicit.
func ConvertibleTo(from, to Type) bool {
	if Equals(from, to) {
		return true
	}

	fp, fok := from.(Prim)
	tp, tok := to.(Prim)
	if fok && tok {
		return widens(fp, tp)
	}

	fpt, fok := from.(*Pointer)
	tpt, tok := to.(*Pointer)
	if fok && tok {
		return fpt.CompatibleWith(tpt)
	}

	return false
}

// signedRank and unsignedRank order the two widening chains (Bool heads
// the signed chain); they are kept in separate maps so that a signed
// target is never reachable from an unsigned source.
var signedRank = map[Prim]int{Bool: 0, I8: 1, I32: 2, I64: 3}
var unsignedRank = map[Prim]int{U8: 0, U32: 1, U64: 2}

func widens(from, to Prim) bool {
	if fr, ok := signedRank[from]; ok {
		if tr, ok := signedRank[to]; ok {
			return fr <= tr
		}
		return false
	}
	if fr, ok := unsignedRank[from]; ok {
		if tr, ok := unsignedRank[to]; ok {
			return fr <= tr
		}
		return false
	}
	return false
}

// CommonType returns the type two operands of a binary operator should be
// promoted to, or ok=false if neither widens to the other (a TypeMismatch
// at the call site).
func CommonType(a, b Type) (Type, bool) {
	if Equals(a, b) {
		return a, true
	}
	if ConvertibleTo(a, b) {
		return b, true
	}
	if ConvertibleTo(b, a) {
		return a, true
	}
	return nil, false
}
