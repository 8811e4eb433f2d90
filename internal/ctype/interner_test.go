package ctype

import (
	"testing"

	"tacc/internal/target"
)

func TestInternerBuiltins(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if b.Int == NoTypeID || b.Double == NoTypeID {
		t.Fatalf("builtins not initialized")
	}
	ti, _ := in.Lookup(b.Int)
	if ti.Kind != KindInt || ti.Unsigned {
		t.Fatalf("expected signed int kind, got %+v", ti)
	}
	tu, _ := in.Lookup(b.UInt)
	if tu.Kind != KindInt || !tu.Unsigned {
		t.Fatalf("expected unsigned int kind, got %+v", tu)
	}
}

func TestInternerDeduplicatesDescriptors(t *testing.T) {
	in := NewInterner()
	p1 := in.Intern(MakePointer(in.Builtins().Char))
	p2 := in.Intern(MakePointer(in.Builtins().Char))
	if p1 != p2 {
		t.Fatalf("pointer types should be deduplicated")
	}
	a1 := in.Intern(MakeArray(in.Builtins().Int, 8))
	a2 := in.Intern(MakeArray(in.Builtins().Int, 16))
	if a1 == a2 {
		t.Fatalf("arrays of different length must differ")
	}
}

func TestSignednessAffectsIdentity(t *testing.T) {
	in := NewInterner()
	if in.Builtins().Char == in.Builtins().UChar {
		t.Fatalf("char and unsigned char must differ")
	}
}

func TestRecordsAreDistinct(t *testing.T) {
	in := NewInterner()
	r1 := in.AddRecord(RecordInfo{Name: "point", Size: 8, Align: 4})
	r2 := in.AddRecord(RecordInfo{Name: "point", Size: 8, Align: 4})
	if r1 == r2 {
		t.Fatalf("each record registration must produce a distinct type")
	}
	info, ok := in.Record(r1)
	if !ok || info.Size != 8 {
		t.Fatalf("record layout lost: %+v ok=%v", info, ok)
	}
}

func TestWidthOf(t *testing.T) {
	in := NewInterner()
	mach := target.Default()
	b := in.Builtins()

	cases := []struct {
		id    TypeID
		width int64
	}{
		{b.Char, 1},
		{b.Short, 2},
		{b.Int, 4},
		{b.UInt, 4},
		{b.Long, 8},
		{b.Float, 4},
		{b.Double, 8},
		{b.Enum, 4},
		{in.Intern(MakePointer(b.Void)), 8},
		{in.Intern(MakeArray(b.Int, 10)), 40},
		{in.AddRecord(RecordInfo{Name: "pair", Size: 16, Align: 8}), 16},
	}
	for _, c := range cases {
		if got := WidthOf(in, c.id, mach); got != c.width {
			t.Fatalf("WidthOf(#%d) = %d, want %d", c.id, got, c.width)
		}
	}
}

func TestAlignOfArrayFollowsElement(t *testing.T) {
	in := NewInterner()
	mach := target.Default()
	arr := in.Intern(MakeArray(in.Builtins().Double, 4))
	if got := AlignOf(in, arr, mach); got != 8 {
		t.Fatalf("array of double should align to 8, got %d", got)
	}
}
