package tac

import (
	"testing"

	"tacc/internal/ctype"
	"tacc/internal/symbols"
)

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestNewBinaryFields(t *testing.T) {
	in, mach := testEnv()
	b := in.Builtins()

	des := NewTemporary(in, mach, b.Int)
	lhs := NewVariable(in, mach, symbols.NewNamed("a", b.Int))
	rhs := One()

	ins := NewBinary(Add, des, lhs, rhs)
	if ins.Op() != Add || ins.Des() != des || ins.LHS() != lhs || ins.RHS() != rhs {
		t.Fatalf("binary fields lost: %s %v %v %v", ins.Op(), ins.Des(), ins.LHS(), ins.RHS())
	}
	if ins.Payload() != PayloadRHS {
		t.Fatalf("binary payload = %s", ins.Payload())
	}
	// the other interpretations must not leak through
	if ins.N() != 0 || ins.Target() != nil {
		t.Fatalf("offset/target leaked through a binary instruction")
	}
}

func TestSubscriptDirectionsAreDistinct(t *testing.T) {
	in, mach := testEnv()
	b := in.Builtins()

	arr := NewVariable(in, mach, symbols.NewNamed("arr", in.Intern(ctype.MakeArray(b.Int, 16))))
	x := NewVariable(in, mach, symbols.NewNamed("x", b.Int))

	store := NewDesSSAssign(arr, x, 8)
	load := NewSrcSSAssign(x, arr, 8)

	if store == load {
		t.Fatalf("expected two distinct instructions")
	}
	if store.Op() != DesSSAssign || load.Op() != SrcSSAssign {
		t.Fatalf("operators confused: %s %s", store.Op(), load.Op())
	}
	if store.N() != 8 || load.N() != 8 {
		t.Fatalf("offsets lost: %d %d", store.N(), load.N())
	}
	if store.RHS() != nil || load.Target() != nil {
		t.Fatalf("wrong payload arm visible")
	}
}

func TestJumpHoldsDirectReference(t *testing.T) {
	label := NewLabel()
	jump := NewJump(label)
	if jump.Target() != label {
		t.Fatalf("jump target is not the label node itself")
	}
	if jump.Op() != Jump || jump.Des() != nil || jump.LHS() != nil {
		t.Fatalf("jump shape wrong: %s", jump.Op())
	}
}

func TestConditionalJumps(t *testing.T) {
	in, mach := testEnv()
	cond := NewTemporary(in, mach, in.Builtins().Bool)
	label := NewLabel()

	ifIns := NewIf(cond, label)
	if ifIns.LHS() != cond || ifIns.Target() != label {
		t.Fatalf("if shape wrong")
	}
	ifz := NewIfFalse(cond, label)
	if ifz.Op() != IfFalse || ifz.Target() != label {
		t.Fatalf("if_false shape wrong")
	}
}

func TestLabelIsDegenerate(t *testing.T) {
	label := NewLabel()
	if label.Op() != Label || !label.IsLabel() {
		t.Fatalf("label operator wrong: %s", label.Op())
	}
	if label.Des() != nil || label.LHS() != nil || label.RHS() != nil ||
		label.N() != 0 || label.Target() != nil || label.Payload() != PayloadNone {
		t.Fatalf("label must have all fields empty")
	}
}

func TestCallShape(t *testing.T) {
	in, mach := testEnv()
	b := in.Builtins()

	fn := NewVariable(in, mach, symbols.NewNamed("f", in.Intern(ctype.Type{Kind: ctype.KindFunc})))
	res := NewTemporary(in, mach, b.Int)

	call := NewCall(res, fn, 2)
	if call.Des() != res || call.LHS() != fn || call.N() != 2 {
		t.Fatalf("call fields lost")
	}
	void := NewCall(nil, fn, 0)
	if void.Des() != nil || void.N() != 0 {
		t.Fatalf("void call shape wrong")
	}
	param := NewParam(res)
	if param.Op() != Param || param.LHS() != res || param.Des() != nil {
		t.Fatalf("param shape wrong")
	}
}

func TestFactoryShapeViolationsPanic(t *testing.T) {
	in, mach := testEnv()
	b := in.Builtins()

	x := NewVariable(in, mach, symbols.NewNamed("x", b.Int))
	tmp := NewTemporary(in, mach, b.Int)
	one := One()

	mustPanic(t, "binary with unary op", func() { NewBinary(Minus, tmp, x, one) })
	mustPanic(t, "binary with jump op", func() { NewBinary(Jump, tmp, x, one) })
	mustPanic(t, "unary with binary op", func() { NewUnary(Add, tmp, x) })
	mustPanic(t, "nil rhs", func() { NewBinary(Add, tmp, x, nil) })
	mustPanic(t, "constant destination assign", func() { NewAssign(one, x) })
	mustPanic(t, "constant destination binary", func() { NewBinary(Add, one, x, x) })
	mustPanic(t, "constant destination subscript", func() { NewDesSSAssign(one, x, 4) })
	mustPanic(t, "jump to nil", func() { NewJump(nil) })
	mustPanic(t, "jump to non-label", func() { NewJump(NewAssign(x, one)) })
	mustPanic(t, "if without condition", func() { NewIf(nil, NewLabel()) })
	mustPanic(t, "negative call arity", func() { NewCall(tmp, x, -1) })
}

func TestDerefAssignIsUnaryShaped(t *testing.T) {
	in, mach := testEnv()
	b := in.Builtins()

	ptr := NewVariable(in, mach, symbols.NewNamed("p", in.Intern(ctype.MakePointer(b.Int))))
	val := NewVariable(in, mach, symbols.NewNamed("v", b.Int))

	ins := NewDerefAssign(ptr, val)
	if ins.Op() != DerefAssign || ins.Des() != ptr || ins.LHS() != val {
		t.Fatalf("deref assign shape wrong")
	}
	if ins.Payload() != PayloadNone {
		t.Fatalf("deref assign payload = %s", ins.Payload())
	}
}
