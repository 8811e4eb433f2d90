// Package ctype models the source-level C types the middle end consumes.
//
// The TAC layer asks exactly two questions of a type: its byte width on the
// target machine and its 4-way operand classification. Types are interned
// structurally, so a TypeID is a stable, comparable handle for one type.
package ctype

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindVoid
	KindBool
	KindChar
	KindShort
	KindInt
	KindLong
	KindLongLong
	KindFloat
	KindDouble
	KindEnum
	KindPointer
	KindArray
	KindStruct
	KindUnion
	KindFunc
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindVoid:
		return "void"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindShort:
		return "short"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindLongLong:
		return "long long"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindEnum:
		return "enum"
	case KindPointer:
		return "pointer"
	case KindArray:
		return "array"
	case KindStruct:
		return "struct"
	case KindUnion:
		return "union"
	case KindFunc:
		return "func"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsIntegral reports whether the kind is an integer type (bool and enum
// included, per the usual C arithmetic conversions).
func (k Kind) IsIntegral() bool {
	switch k {
	case KindBool, KindChar, KindShort, KindInt, KindLong, KindLongLong, KindEnum:
		return true
	}
	return false
}

// IsFloating reports whether the kind is a floating-point type.
func (k Kind) IsFloating() bool {
	return k == KindFloat || k == KindDouble
}

// Type is a compact descriptor for any supported type.
type Type struct {
	Kind     Kind
	Elem     TypeID // pointer/array element type
	Len      uint32 // array element count
	Unsigned bool   // for integral kinds
	Rec      uint32 // record table index for struct/union
}

// Descriptor helpers ---------------------------------------------------------

// MakeInt describes a signed or unsigned int.
func MakeInt(unsigned bool) Type {
	return Type{Kind: KindInt, Unsigned: unsigned}
}

// MakeChar describes a char; plain char is signed here.
func MakeChar(unsigned bool) Type {
	return Type{Kind: KindChar, Unsigned: unsigned}
}

// MakeLong describes a signed or unsigned long.
func MakeLong(unsigned bool) Type {
	return Type{Kind: KindLong, Unsigned: unsigned}
}

// MakePointer describes a pointer to the element type.
func MakePointer(elem TypeID) Type {
	return Type{Kind: KindPointer, Elem: elem}
}

// MakeArray describes an array of len elements.
func MakeArray(elem TypeID, len uint32) Type {
	return Type{Kind: KindArray, Elem: elem, Len: len}
}
