package tac

import "fmt"

// Payload tags which arm of an instruction's third field is meaningful.
// Exactly one arm is valid per operator family; the others read as zero.
type Payload uint8

const (
	PayloadNone   Payload = iota
	PayloadRHS            // second source operand (binary family)
	PayloadOffset         // compile-time byte displacement (subscript assigns, call arity)
	PayloadTarget         // jump destination (control flow)
)

func (p Payload) String() string {
	switch p {
	case PayloadNone:
		return "none"
	case PayloadRHS:
		return "rhs"
	case PayloadOffset:
		return "offset"
	case PayloadTarget:
		return "target"
	default:
		return fmt.Sprintf("Payload(%d)", p)
	}
}

// TAC is one three-address-code instruction. Instances are built only
// through the New* factories, which enforce the operator/shape contract;
// execution order is the order nodes are appended to a Func.
type TAC struct {
	op  Operator
	des Operand
	lhs Operand

	payload Payload
	rhs     Operand
	n       int64
	target  *TAC
}

// Op returns the operator.
func (t *TAC) Op() Operator { return t.op }

// Des returns the destination operand, nil for jumps, labels and param.
func (t *TAC) Des() Operand { return t.des }

// LHS returns the first source operand, nil where the shape has none.
func (t *TAC) LHS() Operand { return t.lhs }

// Payload reports which third-field arm is meaningful for this instruction.
func (t *TAC) Payload() Payload { return t.payload }

// RHS returns the second source operand; nil unless the payload is an
// operand.
func (t *TAC) RHS() Operand {
	if t.payload != PayloadRHS {
		return nil
	}
	return t.rhs
}

// N returns the byte displacement of a subscript assignment, or the
// argument count of a call; zero unless the payload is an offset.
func (t *TAC) N() int64 {
	if t.payload != PayloadOffset {
		return 0
	}
	return t.n
}

// Target returns the jump destination; nil unless the payload is a target.
func (t *TAC) Target() *TAC {
	if t.payload != PayloadTarget {
		return nil
	}
	return t.target
}

// IsLabel reports whether the instruction is an addressable anchor.
func (t *TAC) IsLabel() bool { return t.op == Label }

func mustOperand(op Operator, role string, o Operand) {
	if o == nil {
		panic(fmt.Sprintf("tac: %s requires a %s operand", op, role))
	}
}

// mustWritable rejects constants as write targets. Anything the instruction
// stores through must be a variable or a temporary.
func mustWritable(op Operator, o Operand) {
	if _, ok := o.(*Constant); ok {
		panic(fmt.Sprintf("tac: %s destination cannot be a constant", op))
	}
}

func mustLabel(op Operator, t *TAC) {
	if t == nil {
		panic(fmt.Sprintf("tac: %s requires a target", op))
	}
	if !t.IsLabel() {
		panic(fmt.Sprintf("tac: %s target must be a label, got %s", op, t.op))
	}
}

// NewBinary builds des = lhs op rhs for the binary operator family.
func NewBinary(op Operator, des, lhs, rhs Operand) *TAC {
	if !op.IsBinary() {
		panic(fmt.Sprintf("tac: NewBinary with non-binary operator %s", op))
	}
	mustOperand(op, "destination", des)
	mustOperand(op, "left", lhs)
	mustOperand(op, "right", rhs)
	mustWritable(op, des)
	return &TAC{op: op, des: des, lhs: lhs, payload: PayloadRHS, rhs: rhs}
}

// NewUnary builds des = op lhs for the unary operator family. DerefAssign is
// accepted here too: its shape is unary, with des holding the pointer and
// lhs the stored value.
func NewUnary(op Operator, des, lhs Operand) *TAC {
	if !op.IsUnary() && op != DerefAssign {
		panic(fmt.Sprintf("tac: NewUnary with non-unary operator %s", op))
	}
	mustOperand(op, "destination", des)
	mustOperand(op, "operand", lhs)
	mustWritable(op, des)
	return &TAC{op: op, des: des, lhs: lhs}
}

// NewAssign builds the plain copy des = src.
func NewAssign(des, src Operand) *TAC {
	mustOperand(Assign, "destination", des)
	mustOperand(Assign, "source", src)
	mustWritable(Assign, des)
	return &TAC{op: Assign, des: des, lhs: src}
}

// NewDesSSAssign builds des[n] = src, with n a compile-time byte
// displacement from des.
func NewDesSSAssign(des, src Operand, n int64) *TAC {
	mustOperand(DesSSAssign, "destination", des)
	mustOperand(DesSSAssign, "source", src)
	mustWritable(DesSSAssign, des)
	return &TAC{op: DesSSAssign, des: des, lhs: src, payload: PayloadOffset, n: n}
}

// NewSrcSSAssign builds des = src[n], with n a compile-time byte
// displacement from src.
func NewSrcSSAssign(des, src Operand, n int64) *TAC {
	mustOperand(SrcSSAssign, "destination", des)
	mustOperand(SrcSSAssign, "source", src)
	mustWritable(SrcSSAssign, des)
	return &TAC{op: SrcSSAssign, des: des, lhs: src, payload: PayloadOffset, n: n}
}

// NewDerefAssign builds *des = src.
func NewDerefAssign(des, src Operand) *TAC {
	return NewUnary(DerefAssign, des, src)
}

// NewParam builds the argument-passing pseudo-op param operand.
func NewParam(operand Operand) *TAC {
	mustOperand(Param, "source", operand)
	return &TAC{op: Param, lhs: operand}
}

// NewCall builds des = call fn, nargs. des may be nil for calls whose result
// is discarded.
func NewCall(des, fn Operand, nargs int64) *TAC {
	mustOperand(Call, "callee", fn)
	if des != nil {
		mustWritable(Call, des)
	}
	if nargs < 0 {
		panic(fmt.Sprintf("tac: call with negative argument count %d", nargs))
	}
	return &TAC{op: Call, des: des, lhs: fn, payload: PayloadOffset, n: nargs}
}

// NewJump builds an unconditional transfer to target.
func NewJump(target *TAC) *TAC {
	mustLabel(Jump, target)
	return &TAC{op: Jump, payload: PayloadTarget, target: target}
}

// NewIf builds a transfer to target taken when cond is non-zero.
func NewIf(cond Operand, target *TAC) *TAC {
	mustOperand(If, "condition", cond)
	mustLabel(If, target)
	return &TAC{op: If, lhs: cond, payload: PayloadTarget, target: target}
}

// NewIfFalse builds a transfer to target taken when cond is zero.
func NewIfFalse(cond Operand, target *TAC) *TAC {
	mustOperand(IfFalse, "condition", cond)
	mustLabel(IfFalse, target)
	return &TAC{op: IfFalse, lhs: cond, payload: PayloadTarget, target: target}
}

// NewLabel builds an addressable anchor. All operand fields stay empty; the
// node exists only so jumps can reference it.
func NewLabel() *TAC {
	return &TAC{op: Label}
}
