package tac

import (
	"fmt"

	"tacc/internal/ctype"
)

// ToOperandType maps a source-level type to its machine-level operand
// classification. This is the single seam between the richer source type
// system and the 4-way TAC classification; every operand constructor routes
// through it.
//
// Pointers classify as unsigned: pointer arithmetic and comparison behave
// like unsigned integers at the machine level. Anything without a scalar
// arithmetic representation (records, arrays, functions, void) is aggregate.
//
// An unclassifiable type means the type checker let through something this
// layer cannot represent; that is an internal error, not a diagnostic.
func ToOperandType(in *ctype.Interner, id ctype.TypeID) OperandType {
	t := in.MustLookup(id)
	switch t.Kind {
	case ctype.KindFloat, ctype.KindDouble:
		return Float
	case ctype.KindBool:
		return Unsigned
	case ctype.KindChar, ctype.KindShort, ctype.KindInt, ctype.KindLong, ctype.KindLongLong:
		if t.Unsigned {
			return Unsigned
		}
		return Signed
	case ctype.KindEnum:
		return Signed
	case ctype.KindPointer:
		return Unsigned
	case ctype.KindVoid, ctype.KindArray, ctype.KindStruct, ctype.KindUnion, ctype.KindFunc:
		return Aggregate
	default:
		panic(fmt.Sprintf("tac: cannot classify type kind %s", t.Kind))
	}
}
