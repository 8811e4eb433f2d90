// Package symbols holds the resolved program entities the TAC layer consumes:
// storage objects produced by symbol/storage allocation and literal constants
// produced by the front end. Allocation and layout decisions stay external;
// these are plain records.
package symbols

import "tacc/internal/ctype"

// Object is a resolved storage location: a global or local referenced by its
// symbolic name, or a frame slot referenced by its resolved offset. Exactly
// one of the two reference forms is populated.
type Object struct {
	Type      ctype.TypeID
	Name      string
	Offset    int64 // frame-relative, signed
	HasOffset bool
}

// NewNamed returns an object referenced symbolically.
func NewNamed(name string, ty ctype.TypeID) *Object {
	return &Object{Type: ty, Name: name}
}

// NewFrame returns an object referenced by its frame offset.
func NewFrame(offset int64, ty ctype.TypeID) *Object {
	return &Object{Type: ty, Offset: offset, HasOffset: true}
}

// Literal is a source-level constant with its declared type. Float carries
// the value for floating types; Bits carries the integer value otherwise.
type Literal struct {
	Type  ctype.TypeID
	Bits  uint64
	Float float64
}

// IntLiteral returns a literal for a (possibly negative) integer value.
// The value is stored as its raw two's-complement bit pattern.
func IntLiteral(ty ctype.TypeID, v int64) Literal {
	return Literal{Type: ty, Bits: uint64(v)}
}

// UintLiteral returns a literal for an unsigned integer value.
func UintLiteral(ty ctype.TypeID, v uint64) Literal {
	return Literal{Type: ty, Bits: v}
}

// FloatLiteral returns a literal for a floating-point value.
func FloatLiteral(ty ctype.TypeID, v float64) Literal {
	return Literal{Type: ty, Float: v}
}
