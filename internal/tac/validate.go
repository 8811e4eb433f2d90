package tac

import (
	"errors"
	"fmt"
)

// Validate checks module invariants after translation.
// Returns an error joining every violation found.
func Validate(m *Module) error {
	if m == nil {
		return nil
	}
	var errs []error
	for _, f := range m.Funcs {
		if err := ValidateFunc(f); err != nil {
			errs = append(errs, fmt.Errorf("function %s: %w", f.Name, err))
		}
	}
	return errors.Join(errs...)
}

// ValidateFunc checks one function's stream: every jump resolves to a label
// inside the same stream, payload arms match operator families, and operands
// are present where the shape requires them. A nil result means later passes
// can map every instruction onto the machine.
func ValidateFunc(f *Func) error {
	if f == nil {
		return nil
	}

	var errs []error
	member := make(map[*TAC]bool, len(f.Instrs))
	for _, ins := range f.Instrs {
		member[ins] = true
	}
	seen := make(map[*TAC]int, len(f.Instrs))

	for i, ins := range f.Instrs {
		if ins == nil {
			errs = append(errs, fmt.Errorf("instr %d: nil instruction", i))
			continue
		}
		if prev, dup := seen[ins]; dup {
			errs = append(errs, fmt.Errorf("instr %d: node already appears at %d", i, prev))
			continue
		}
		seen[ins] = i
		if err := checkShape(ins, member); err != nil {
			errs = append(errs, fmt.Errorf("instr %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func checkShape(ins *TAC, member map[*TAC]bool) error {
	op := ins.op
	switch {
	case op.IsBinary():
		if ins.payload != PayloadRHS {
			return fmt.Errorf("%s: payload is %s, want rhs", op, ins.payload)
		}
		if ins.des == nil || ins.lhs == nil || ins.rhs == nil {
			return fmt.Errorf("%s: missing operand", op)
		}
		return checkDes(op, ins.des)
	case op == Assign, op == DerefAssign:
		if ins.payload != PayloadNone {
			return fmt.Errorf("%s: payload is %s, want none", op, ins.payload)
		}
		if ins.des == nil || ins.lhs == nil {
			return fmt.Errorf("%s: missing operand", op)
		}
		return checkDes(op, ins.des)
	case op == DesSSAssign, op == SrcSSAssign:
		if ins.payload != PayloadOffset {
			return fmt.Errorf("%s: payload is %s, want offset", op, ins.payload)
		}
		if ins.des == nil || ins.lhs == nil {
			return fmt.Errorf("%s: missing operand", op)
		}
		return checkDes(op, ins.des)
	case op.IsUnary():
		if ins.payload != PayloadNone {
			return fmt.Errorf("%s: payload is %s, want none", op, ins.payload)
		}
		if ins.des == nil || ins.lhs == nil {
			return fmt.Errorf("%s: missing operand", op)
		}
		return checkDes(op, ins.des)
	case op == Param:
		if ins.lhs == nil {
			return fmt.Errorf("param: missing operand")
		}
		return nil
	case op == Call:
		if ins.payload != PayloadOffset {
			return fmt.Errorf("call: payload is %s, want offset", ins.payload)
		}
		if ins.lhs == nil {
			return fmt.Errorf("call: missing callee")
		}
		if ins.des != nil {
			return checkDes(op, ins.des)
		}
		return nil
	case op.IsJump():
		if ins.payload != PayloadTarget {
			return fmt.Errorf("%s: payload is %s, want target", op, ins.payload)
		}
		tgt := ins.target
		if tgt == nil {
			return fmt.Errorf("%s: nil target", op)
		}
		if !tgt.IsLabel() {
			return fmt.Errorf("%s: target is %s, not a label", op, tgt.op)
		}
		if !member[tgt] {
			return fmt.Errorf("%s: target label is not in this function", op)
		}
		if op != Jump && ins.lhs == nil {
			return fmt.Errorf("%s: missing condition", op)
		}
		return nil
	case op == Label:
		if ins.des != nil || ins.lhs != nil || ins.payload != PayloadNone {
			return fmt.Errorf("label: must have no operands")
		}
		return nil
	default:
		return fmt.Errorf("unknown operator %s", op)
	}
}

func checkDes(op Operator, des Operand) error {
	if _, ok := des.(*Constant); ok {
		return fmt.Errorf("%s: constant destination", op)
	}
	return nil
}
