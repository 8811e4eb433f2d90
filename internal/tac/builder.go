package tac

import (
	"fmt"

	"tacc/internal/ctype"
	"tacc/internal/symbols"
	"tacc/internal/target"
)

// Func is one function's finished instruction stream. Execution order is
// slice order unless redirected by a taken branch; every referenced label is
// a member of Instrs.
type Func struct {
	Name   string
	Instrs []*TAC
}

// Index returns the position of an instruction in the stream, or -1.
func (f *Func) Index(t *TAC) int {
	for i, ins := range f.Instrs {
		if ins == t {
			return i
		}
	}
	return -1
}

// Module groups the functions of one translation unit. Operands are shared
// by reference across instructions and live as long as the module.
type Module struct {
	Name  string
	Funcs []*Func
}

// Builder accumulates one function's TAC stream during translation. It wraps
// the node factories with append discipline and carries the type interner and
// target description so the translator does not thread them everywhere.
//
// Labels are created eagerly with NewLabel and appended with Place when their
// position is reached, so forward jumps need no patch-up pass: a jump holds
// the label node itself, and placement only fixes where in the stream that
// node sits.
type Builder struct {
	types  *ctype.Interner
	mach   target.Desc
	name   string
	instrs []*TAC
	placed map[*TAC]bool
}

// NewBuilder starts the translation of one function.
func NewBuilder(name string, types *ctype.Interner, mach target.Desc) *Builder {
	return &Builder{
		types:  types,
		mach:   mach,
		name:   name,
		placed: make(map[*TAC]bool),
	}
}

// Types returns the interner the builder classifies against.
func (b *Builder) Types() *ctype.Interner { return b.types }

// Target returns the machine description the builder sizes against.
func (b *Builder) Target() target.Desc { return b.mach }

// Len returns the number of instructions appended so far.
func (b *Builder) Len() int { return len(b.instrs) }

// Append adds an instruction to the stream and returns it. Labels must go
// through Place so double placement is caught.
func (b *Builder) Append(t *TAC) *TAC {
	if t == nil {
		panic("tac: append of nil instruction")
	}
	if t.IsLabel() {
		panic("tac: labels are appended with Place")
	}
	b.instrs = append(b.instrs, t)
	return t
}

// Place appends a label node at the current position. A label is placed
// exactly once per function.
func (b *Builder) Place(label *TAC) *TAC {
	if label == nil || !label.IsLabel() {
		panic("tac: Place requires a label")
	}
	if b.placed[label] {
		panic("tac: label placed twice")
	}
	b.placed[label] = true
	b.instrs = append(b.instrs, label)
	return label
}

// NewTemp allocates a fresh temporary of the given source type.
func (b *Builder) NewTemp(ty ctype.TypeID) *Temporary {
	return NewTemporary(b.types, b.mach, ty)
}

// NewVar builds a Variable for a resolved storage object.
func (b *Builder) NewVar(obj *symbols.Object) *Variable {
	return NewVariable(b.types, b.mach, obj)
}

// NewConst builds a Constant for a source literal.
func (b *Builder) NewConst(lit symbols.Literal) *Constant {
	return NewConstant(b.types, b.mach, lit)
}

// Emit wrappers: factory + append in one step.

func (b *Builder) EmitBinary(op Operator, des, lhs, rhs Operand) *TAC {
	return b.Append(NewBinary(op, des, lhs, rhs))
}

func (b *Builder) EmitUnary(op Operator, des, lhs Operand) *TAC {
	return b.Append(NewUnary(op, des, lhs))
}

func (b *Builder) EmitAssign(des, src Operand) *TAC {
	return b.Append(NewAssign(des, src))
}

func (b *Builder) EmitDesSSAssign(des, src Operand, n int64) *TAC {
	return b.Append(NewDesSSAssign(des, src, n))
}

func (b *Builder) EmitSrcSSAssign(des, src Operand, n int64) *TAC {
	return b.Append(NewSrcSSAssign(des, src, n))
}

func (b *Builder) EmitDerefAssign(des, src Operand) *TAC {
	return b.Append(NewDerefAssign(des, src))
}

func (b *Builder) EmitParam(operand Operand) *TAC {
	return b.Append(NewParam(operand))
}

func (b *Builder) EmitCall(des, fn Operand, nargs int64) *TAC {
	return b.Append(NewCall(des, fn, nargs))
}

func (b *Builder) EmitJump(target *TAC) *TAC {
	return b.Append(NewJump(target))
}

func (b *Builder) EmitIf(cond Operand, target *TAC) *TAC {
	return b.Append(NewIf(cond, target))
}

func (b *Builder) EmitIfFalse(cond Operand, target *TAC) *TAC {
	return b.Append(NewIfFalse(cond, target))
}

// Finish seals the stream and returns the function. Jumps to labels that
// were never placed are an internal error: the translator emitted a branch
// into nowhere.
func (b *Builder) Finish() (*Func, error) {
	for i, ins := range b.instrs {
		if tgt := ins.Target(); tgt != nil && !b.placed[tgt] {
			return nil, fmt.Errorf("tac: %s: instr %d: %s to unplaced label", b.name, i, ins.Op())
		}
	}
	return &Func{Name: b.name, Instrs: b.instrs}, nil
}
