package types

import "testing"

func TestConvertibleToWidening(t *testing.T) {
	tests := []struct {
		name     string
		from, to Type
		want     bool
	}{
		{"i8 to i32 widens", I8, I32, true},
		{"i32 to i64 widens", I32, I64, true},
		{"i64 to i32 narrows", I64, I32, false},
		{"bool to i8 widens", Bool, I8, true},
		{"u8 to u32 widens", U8, U32, true},
		{"u32 to i32 crosses signedness", U32, I32, false},
		{"i32 to u32 crosses signedness", I32, U32, false},
		{"same type always convertible", I32, I32, true},
		{"void pointer accepts any pointee", &Pointer{Pointee: Void}, &Pointer{Pointee: I32}, true},
		{"any pointee accepts void pointer", &Pointer{Pointee: I32}, &Pointer{Pointee: Void}, true},
		{"mismatched pointees", &Pointer{Pointee: I32}, &Pointer{Pointee: I8}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConvertibleTo(tt.from, tt.to); got != tt.want {
				t.Errorf("ConvertibleTo(%s, %s) = %v, want %v", tt.from.Repr(), tt.to.Repr(), got, tt.want)
			}
		})
	}
}

func TestCommonType(t *testing.T) {
	common, ok := CommonType(I8, I32)
	if !ok || !Equals(common, I32) {
		t.Fatalf("CommonType(i8, i32) = %v, %v; want i32, true", common, ok)
	}

	common, ok = CommonType(I32, I8)
	if !ok || !Equals(common, I32) {
		t.Fatalf("CommonType(i32, i8) = %v, %v; want i32, true", common, ok)
	}

	if _, ok := CommonType(I32, U32); ok {
		t.Fatal("CommonType(i32, u32) should fail: signed/unsigned never unify implicitly")
	}
}

func TestPointerQualifiersAffectEquality(t *testing.T) {
	a := &Pointer{Pointee: I32, PointerQual: Mut, PointeeQual: Mut}
	b := &Pointer{Pointee: I32, PointerQual: Const, PointeeQual: Const}
	if Equals(a, b) {
		t.Fatal("pointers with different qualifiers should not be structurally equal")
	}

	c := &Pointer{Pointee: I32, PointerQual: Mut, PointeeQual: Mut}
	if !Equals(a, c) {
		t.Fatal("identical pointer types should be equal")
	}
}

func TestArrayEquality(t *testing.T) {
	a := &Array{Elem: I32, Count: 5}
	b := &Array{Elem: I32, Count: 5}
	c := &Array{Elem: I32, Count: 6}

	if !Equals(a, b) {
		t.Fatal("arrays of same element type and count should be equal")
	}
	if Equals(a, c) {
		t.Fatal("arrays of different count should not be equal")
	}
}
