package tac

import (
	"strings"
	"testing"

	"tacc/internal/symbols"
)

func sampleFunc(t *testing.T) *Func {
	t.Helper()
	in, mach := testEnv()
	ints := in.Builtins().Int
	b := NewBuilder("sample", in, mach)

	a := b.NewVar(symbols.NewNamed("a", ints))
	x := b.NewVar(symbols.NewNamed("x", ints))
	sum := b.NewTemp(ints)
	b.EmitBinary(Add, sum, a, One())
	b.EmitAssign(x, sum)
	end := NewLabel()
	b.EmitIf(sum, end)
	b.Place(end)

	f, err := b.Finish()
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	return f
}

func TestValidateAcceptsWellFormedStream(t *testing.T) {
	f := sampleFunc(t)
	if err := ValidateFunc(f); err != nil {
		t.Fatalf("validate: %v", err)
	}
	m := &Module{Name: "unit.c", Funcs: []*Func{f}}
	if err := Validate(m); err != nil {
		t.Fatalf("validate module: %v", err)
	}
}

func TestValidateRejectsForeignLabel(t *testing.T) {
	f := sampleFunc(t)
	// rewire a jump at a label that is not part of the stream
	foreign := NewLabel()
	for _, ins := range f.Instrs {
		if ins.Op() == If {
			ins.target = foreign
		}
	}
	err := ValidateFunc(f)
	if err == nil || !strings.Contains(err.Error(), "not in this function") {
		t.Fatalf("expected foreign-label error, got %v", err)
	}
}

func TestValidateRejectsHandAssembledShapes(t *testing.T) {
	in, mach := testEnv()
	ints := in.Builtins().Int
	x := NewVariable(in, mach, symbols.NewNamed("x", ints))

	cases := []struct {
		name string
		ins  *TAC
		want string
	}{
		{
			"binary with offset payload",
			&TAC{op: Add, des: x, lhs: x, rhs: x, payload: PayloadOffset},
			"payload",
		},
		{
			"assign without source",
			&TAC{op: Assign, des: x},
			"missing operand",
		},
		{
			"constant destination",
			&TAC{op: Assign, des: One(), lhs: x},
			"constant destination",
		},
		{
			"label with operands",
			&TAC{op: Label, des: x},
			"label",
		},
		{
			"jump without target",
			&TAC{op: Jump, payload: PayloadTarget},
			"nil target",
		},
	}
	for _, c := range cases {
		f := &Func{Name: "bad", Instrs: []*TAC{c.ins}}
		err := ValidateFunc(f)
		if err == nil || !strings.Contains(err.Error(), c.want) {
			t.Fatalf("%s: got %v, want substring %q", c.name, err, c.want)
		}
	}
}

func TestValidateRejectsDuplicateNode(t *testing.T) {
	in, mach := testEnv()
	ints := in.Builtins().Int
	x := NewVariable(in, mach, symbols.NewNamed("x", ints))
	ins := NewAssign(x, One())
	f := &Func{Name: "dup", Instrs: []*TAC{ins, ins}}
	err := ValidateFunc(f)
	if err == nil || !strings.Contains(err.Error(), "already appears") {
		t.Fatalf("expected duplicate-node error, got %v", err)
	}
}

func TestFuncIndex(t *testing.T) {
	f := sampleFunc(t)
	for i, ins := range f.Instrs {
		if f.Index(ins) != i {
			t.Fatalf("Index(%d) = %d", i, f.Index(ins))
		}
	}
	if f.Index(NewLabel()) != -1 {
		t.Fatalf("foreign node should index to -1")
	}
}
