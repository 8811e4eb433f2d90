package tac

import "fmt"

// Operator enumerates every operation TAC can express. Each maps to one
// machine instruction, or a short fixed sequence (e.g. PostInc).
type Operator uint8

const (
	// Binary
	Add     Operator = iota // des = lhs + rhs
	Sub                     // des = lhs - rhs
	Mul                     // des = lhs * rhs
	Div                     // des = lhs / rhs
	Less                    // des = lhs < rhs
	Greater                 // des = lhs > rhs
	Eq                      // des = lhs == rhs
	Ne                      // des = lhs != rhs
	Le                      // des = lhs <= rhs
	Ge                      // des = lhs >= rhs
	LShift                  // des = lhs << rhs
	RShift                  // des = lhs >> rhs
	Or                      // des = lhs | rhs
	And                     // des = lhs & rhs
	Xor                     // des = lhs ^ rhs

	// Assignment
	Assign      // des = lhs
	DesSSAssign // des[n] = lhs
	SrcSSAssign // des = lhs[n]
	DerefAssign // *des = lhs

	// Unary
	PreInc  // des = ++lhs
	PostInc // des = lhs++
	PreDec  // des = --lhs
	PostDec // des = lhs--
	Plus    // des = +lhs
	Minus   // des = -lhs
	Addr    // des = &lhs
	Deref   // des = *lhs
	Compt   // des = ~lhs
	Not     // des = !lhs
	Cast    // des = (T)lhs

	// Call protocol
	Param // param lhs
	Call  // des = call lhs, n

	// Control flow
	Jump    // goto target
	If      // if lhs goto target
	IfFalse // if !lhs goto target
	Label   // addressable anchor
)

var operatorNames = [...]string{
	Add:         "add",
	Sub:         "sub",
	Mul:         "mul",
	Div:         "div",
	Less:        "less",
	Greater:     "greater",
	Eq:          "eq",
	Ne:          "ne",
	Le:          "le",
	Ge:          "ge",
	LShift:      "lshift",
	RShift:      "rshift",
	Or:          "or",
	And:         "and",
	Xor:         "xor",
	Assign:      "assign",
	DesSSAssign: "des_ss_assign",
	SrcSSAssign: "src_ss_assign",
	DerefAssign: "deref_assign",
	PreInc:      "pre_inc",
	PostInc:     "post_inc",
	PreDec:      "pre_dec",
	PostDec:     "post_dec",
	Plus:        "plus",
	Minus:       "minus",
	Addr:        "addr",
	Deref:       "deref",
	Compt:       "compt",
	Not:         "not",
	Cast:        "cast",
	Param:       "param",
	Call:        "call",
	Jump:        "jump",
	If:          "if",
	IfFalse:     "if_false",
	Label:       "label",
}

func (op Operator) String() string {
	if int(op) < len(operatorNames) {
		return operatorNames[op]
	}
	return fmt.Sprintf("Operator(%d)", op)
}

// IsBinary reports whether op takes two source operands.
func (op Operator) IsBinary() bool {
	return op >= Add && op <= Xor
}

// IsAssign reports whether op belongs to the assignment family.
func (op Operator) IsAssign() bool {
	return op >= Assign && op <= DerefAssign
}

// IsUnary reports whether op takes one source operand.
func (op Operator) IsUnary() bool {
	return op >= PreInc && op <= Cast
}

// IsRelational reports whether op yields a comparison result.
func (op Operator) IsRelational() bool {
	return op >= Less && op <= Ge
}

// IsJump reports whether op transfers control to a label.
func (op Operator) IsJump() bool {
	return op == Jump || op == If || op == IfFalse
}
