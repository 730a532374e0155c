package types

import "testing"

func TestLayoutPadding(t *testing.T) {
	// struct { a: i8; b: i32; c: i8 } -- b forces 4-byte alignment, so a
	// pads to offset 4; the tail pads back up to the struct's own
	// alignment (4) after c.
	sd := &StructDef{
		Name: "S",
		Fields: []Field{
			{Name: "a", Type: I8},
			{Name: "b", Type: I32},
			{Name: "c", Type: I8},
		},
	}
	sd.Layout()

	if sd.Fields[0].Offset != 0 {
		t.Errorf("field a offset = %d, want 0", sd.Fields[0].Offset)
	}
	if sd.Fields[1].Offset != 4 {
		t.Errorf("field b offset = %d, want 4", sd.Fields[1].Offset)
	}
	if sd.Fields[2].Offset != 8 {
		t.Errorf("field c offset = %d, want 8", sd.Fields[2].Offset)
	}
	if sd.Align != 4 {
		t.Errorf("struct align = %d, want 4", sd.Align)
	}
	if sd.Size != 12 {
		t.Errorf("struct size = %d, want 12 (offset of last field + its size, rounded up to align)", sd.Size)
	}
}

func TestLayoutNestedStruct(t *testing.T) {
	inner := &StructDef{
		Name: "Inner",
		Fields: []Field{
			{Name: "x", Type: I64},
		},
	}

	outer := &StructDef{
		Name: "Outer",
		Fields: []Field{
			{Name: "a", Type: I8},
			{Name: "in", Type: &StructRef{Def: inner}},
		},
	}
	outer.Layout()

	if inner.Size != 8 {
		t.Fatalf("inner struct should lay itself out on demand, got size %d", inner.Size)
	}
	if outer.Fields[1].Offset != 8 {
		t.Errorf("nested struct field offset = %d, want 8 (aligned to its own 8-byte alignment)", outer.Fields[1].Offset)
	}
	if outer.Size != 16 {
		t.Errorf("outer struct size = %d, want 16", outer.Size)
	}
}

func TestSizeOfArray(t *testing.T) {
	arr := &Array{Elem: I32, Count: 5}
	if got := SizeOf(arr); got != 20 {
		t.Errorf("SizeOf([i32; 5]) = %d, want 20", got)
	}
	if got := AlignOf(arr); got != 4 {
		t.Errorf("AlignOf([i32; 5]) = %d, want 4", got)
	}
}

func TestRecursiveTypeDetectsByValueCycle(t *testing.T) {
	a := &StructDef{Name: "A", ModPath: "m"}
	b := &StructDef{Name: "B", ModPath: "m"}
	a.Fields = []Field{{Name: "b", Type: &StructRef{Def: b}}}
	b.Fields = []Field{{Name: "a", Type: &StructRef{Def: a}}}

	if _, ok := RecursiveType([]*StructDef{a, b}); ok {
		t.Fatal("expected a by-value cycle to be detected")
	}
}

func TestRecursiveTypeAllowsPointerCycle(t *testing.T) {
	node := &StructDef{Name: "Node", ModPath: "m"}
	node.Fields = []Field{
		{Name: "value", Type: I32},
		{Name: "next", Type: &Pointer{Pointee: &StructRef{Def: node}, PointerQual: Mut, PointeeQual: Mut}},
	}

	if _, ok := RecursiveType([]*StructDef{node}); !ok {
		t.Fatal("a self-referential pointer field should not be flagged as a recursive value cycle")
	}
}
