package ctype

import (
	"fmt"

	"tacc/internal/target"
)

// WidthOf returns the byte width of a type on the given target.
//
// Record widths come from the layout the front end registered; this layer
// never computes field offsets itself. Function designators occupy no
// storage, so their width is the width of a pointer to them.
func WidthOf(in *Interner, id TypeID, mach target.Desc) int64 {
	t := in.MustLookup(id)
	switch t.Kind {
	case KindVoid:
		return 0
	case KindBool:
		return mach.BoolWidth
	case KindChar:
		return mach.CharWidth
	case KindShort:
		return mach.ShortWidth
	case KindInt:
		return mach.IntWidth
	case KindLong:
		return mach.LongWidth
	case KindLongLong:
		return mach.LongLongWidth
	case KindFloat:
		return mach.FloatWidth
	case KindDouble:
		return mach.DoubleWidth
	case KindEnum:
		return mach.EnumWidth
	case KindPointer, KindFunc:
		return mach.PtrWidth
	case KindArray:
		return int64(t.Len) * WidthOf(in, t.Elem, mach)
	case KindStruct, KindUnion:
		info, ok := in.Record(id)
		if !ok {
			panic(fmt.Sprintf("ctype: record type #%d has no layout", id))
		}
		return info.Size
	default:
		panic(fmt.Sprintf("ctype: no width for %s", t.Kind))
	}
}

// AlignOf returns the byte alignment of a type on the given target.
// Scalars are self-aligned; arrays align to their element.
func AlignOf(in *Interner, id TypeID, mach target.Desc) int64 {
	t := in.MustLookup(id)
	switch t.Kind {
	case KindArray:
		return AlignOf(in, t.Elem, mach)
	case KindStruct, KindUnion:
		info, ok := in.Record(id)
		if !ok {
			panic(fmt.Sprintf("ctype: record type #%d has no layout", id))
		}
		return info.Align
	default:
		return WidthOf(in, id, mach)
	}
}
