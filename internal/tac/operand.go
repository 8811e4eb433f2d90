// Package tac defines the three-address-code representation of the middle
// end: the operand family (variables, constants, temporaries), the closed
// operator set, and the instruction nodes with the factories that build
// well-formed streams of them. The translator that walks the typed program
// representation is a client of this package, not part of it.
package tac

import (
	"fmt"
	"math"
	"strconv"
	"sync"
	"sync/atomic"

	"tacc/internal/ctype"
	"tacc/internal/symbols"
	"tacc/internal/target"
)

// OperandType is the machine-level classification of a value.
type OperandType uint8

const (
	Signed OperandType = iota
	Unsigned
	Float
	Aggregate
)

func (t OperandType) String() string {
	switch t {
	case Signed:
		return "signed"
	case Unsigned:
		return "unsigned"
	case Float:
		return "float"
	case Aggregate:
		return "aggregate"
	default:
		return fmt.Sprintf("OperandType(%d)", t)
	}
}

// Operand is a value reference usable by a TAC instruction. Width and
// classification are fixed at construction and never change.
type Operand interface {
	// Repr is the readable representation of the operand.
	Repr() string

	Width() int64
	Type() OperandType
	IsInteger() bool
	IsSigned() bool
	IsUnsigned() bool
	IsFloat() bool
	IsAggregate() bool
}

// operandBase carries the width/classification pair shared by every operand.
type operandBase struct {
	width int64
	typ   OperandType
}

func (b operandBase) Width() int64      { return b.width }
func (b operandBase) Type() OperandType { return b.typ }
func (b operandBase) IsInteger() bool   { return b.typ == Signed || b.typ == Unsigned }
func (b operandBase) IsSigned() bool    { return b.typ == Signed }
func (b operandBase) IsUnsigned() bool  { return b.typ == Unsigned }
func (b operandBase) IsFloat() bool     { return b.typ == Float }
func (b operandBase) IsAggregate() bool { return b.typ == Aggregate }

// Variable is a named, source-level storage location. It references its
// object either symbolically (by name) or by resolved frame offset; the two
// construction paths are never mixed for one instance.
type Variable struct {
	operandBase
	name      string
	offset    int64
	hasOffset bool
}

// NewVariable builds a Variable from a resolved storage object. Width and
// classification derive from the object's declared type.
func NewVariable(in *ctype.Interner, mach target.Desc, obj *symbols.Object) *Variable {
	if obj == nil {
		panic("tac: NewVariable with nil object")
	}
	v := &Variable{
		operandBase: operandBase{
			width: ctype.WidthOf(in, obj.Type, mach),
			typ:   ToOperandType(in, obj.Type),
		},
	}
	if obj.HasOffset {
		v.offset = obj.Offset
		v.hasOffset = true
	} else {
		v.name = obj.Name
	}
	return v
}

func (v *Variable) Repr() string {
	if v.hasOffset {
		return fmt.Sprintf("%+d(fp)", v.offset)
	}
	return v.name
}

// Offset returns the frame offset for offset-based variables.
func (v *Variable) Offset() int64 { return v.offset }

// Named reports whether the variable is referenced symbolically.
func (v *Variable) Named() bool { return !v.hasOffset }

// Constant is an immutable literal. Val holds the raw 64-bit pattern:
// integers bit-cast, floats pre-converted to their IEEE representation at
// construction. The operand classification recovers the interpretation.
type Constant struct {
	operandBase
	val uint64
}

// NewConstant builds a Constant from a source-level literal.
func NewConstant(in *ctype.Interner, mach target.Desc, lit symbols.Literal) *Constant {
	width := ctype.WidthOf(in, lit.Type, mach)
	typ := ToOperandType(in, lit.Type)
	val := lit.Bits
	if typ == Float {
		if width == 4 {
			val = uint64(math.Float32bits(float32(lit.Float)))
		} else {
			val = math.Float64bits(lit.Float)
		}
	}
	return &Constant{operandBase: operandBase{width: width, typ: typ}, val: val}
}

func (c *Constant) Repr() string {
	return strconv.FormatUint(c.val, 10)
}

// Val returns the raw stored bit pattern.
func (c *Constant) Val() uint64 { return c.val }

var (
	zeroConst = sync.OnceValue(func() *Constant {
		return &Constant{operandBase: operandBase{width: 4, typ: Signed}, val: 0}
	})
	oneConst = sync.OnceValue(func() *Constant {
		return &Constant{operandBase: operandBase{width: 4, typ: Signed}, val: 1}
	})
)

// Zero returns the shared canonical integer 0, for synthesized code.
func Zero() *Constant { return zeroConst() }

// One returns the shared canonical integer 1, for synthesized code.
func One() *Constant { return oneConst() }

// tempSeq numbers temporaries process-wide; ids start at 1 and never repeat.
var tempSeq atomic.Uint64

// Temporary is a compiler-synthesized value mapping to one of an unbounded
// supply of virtual registers. Binding to physical registers or stack slots
// is a later pass's concern. Identity, not the displayed id, is what matters.
type Temporary struct {
	operandBase
	id uint64
}

// NewTemporary allocates a fresh temporary of the given type. Ids are
// strictly increasing in allocation order, across goroutines.
func NewTemporary(in *ctype.Interner, mach target.Desc, ty ctype.TypeID) *Temporary {
	return &Temporary{
		operandBase: operandBase{
			width: ctype.WidthOf(in, ty, mach),
			typ:   ToOperandType(in, ty),
		},
		id: tempSeq.Add(1),
	}
}

func (t *Temporary) Repr() string {
	return "t" + strconv.FormatUint(t.id, 10)
}

// ID returns the display identifier.
func (t *Temporary) ID() uint64 { return t.id }
