package ctype

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the primitive types every translation needs.
type Builtins struct {
	Invalid  TypeID
	Void     TypeID
	Bool     TypeID
	Char     TypeID
	UChar    TypeID
	Short    TypeID
	UShort   TypeID
	Int      TypeID
	UInt     TypeID
	Long     TypeID
	ULong    TypeID
	LongLong TypeID
	ULLong   TypeID
	Float    TypeID
	Double   TypeID
	Enum     TypeID
}

// RecordInfo carries the externally computed layout of a struct or union.
// The middle end consumes Size only; field layout stays with the front end.
type RecordInfo struct {
	Name  string
	Union bool
	Size  int64
	Align int64
}

// Interner provides stable TypeIDs by hashing structural descriptors.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	builtins Builtins
	records  []RecordInfo
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[typeKey]TypeID, 32),
	}
	in.records = append(in.records, RecordInfo{}) // reserve 0 as invalid sentinel
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Void = in.Intern(Type{Kind: KindVoid})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool, Unsigned: true})
	in.builtins.Char = in.Intern(MakeChar(false))
	in.builtins.UChar = in.Intern(MakeChar(true))
	in.builtins.Short = in.Intern(Type{Kind: KindShort})
	in.builtins.UShort = in.Intern(Type{Kind: KindShort, Unsigned: true})
	in.builtins.Int = in.Intern(MakeInt(false))
	in.builtins.UInt = in.Intern(MakeInt(true))
	in.builtins.Long = in.Intern(MakeLong(false))
	in.builtins.ULong = in.Intern(MakeLong(true))
	in.builtins.LongLong = in.Intern(Type{Kind: KindLongLong})
	in.builtins.ULLong = in.Intern(Type{Kind: KindLongLong, Unsigned: true})
	in.builtins.Float = in.Intern(Type{Kind: KindFloat})
	in.builtins.Double = in.Intern(Type{Kind: KindDouble})
	in.builtins.Enum = in.Intern(Type{Kind: KindEnum})
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	key := typeKey(t)
	in.index[key] = id
	return id
}

// AddRecord registers a struct/union with its front-end-computed layout and
// returns the TypeID for it. Each call creates a distinct record type.
func (in *Interner) AddRecord(info RecordInfo) TypeID {
	recIdx, err := safecast.Conv[uint32](len(in.records))
	if err != nil {
		panic(fmt.Errorf("len(records) overflow: %w", err))
	}
	in.records = append(in.records, info)
	kind := KindStruct
	if info.Union {
		kind = KindUnion
	}
	return in.internRaw(Type{Kind: kind, Rec: recIdx})
}

// Record returns the layout info for a struct/union TypeID.
func (in *Interner) Record(id TypeID) (RecordInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || (t.Kind != KindStruct && t.Kind != KindUnion) {
		return RecordInfo{}, false
	}
	if t.Rec == 0 || int(t.Rec) >= len(in.records) {
		return RecordInfo{}, false
	}
	return in.records[t.Rec], true
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("ctype: invalid TypeID")
	}
	return tt
}

type typeKey struct {
	Kind     Kind
	Elem     TypeID
	Len      uint32
	Unsigned bool
	Rec      uint32
}
