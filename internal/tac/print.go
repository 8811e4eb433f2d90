package tac

import (
	"fmt"
	"io"
)

// DumpModule writes a human-readable representation of a translated module.
// The output is a diagnostic dump, not a persistence format.
func DumpModule(w io.Writer, m *Module) error {
	if w == nil || m == nil {
		return nil
	}
	if m.Name != "" {
		if _, err := fmt.Fprintf(w, "unit %s\n", m.Name); err != nil {
			return err
		}
	}
	for _, f := range m.Funcs {
		if err := DumpFunc(w, f); err != nil {
			return err
		}
	}
	return nil
}

// DumpFunc writes one function's instruction stream. Labels print as L<i>
// where i is the stream index, and jumps print the index of their target.
func DumpFunc(w io.Writer, f *Func) error {
	if w == nil || f == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\nfn %s:\n", f.Name); err != nil {
		return err
	}
	idx := make(map[*TAC]int, len(f.Instrs))
	for i, ins := range f.Instrs {
		idx[ins] = i
	}
	for i, ins := range f.Instrs {
		if _, err := fmt.Fprintf(w, "  %3d: %s\n", i, formatInstr(ins, idx)); err != nil {
			return err
		}
	}
	return nil
}

var binarySymbols = map[Operator]string{
	Add:     "+",
	Sub:     "-",
	Mul:     "*",
	Div:     "/",
	Less:    "<",
	Greater: ">",
	Eq:      "==",
	Ne:      "!=",
	Le:      "<=",
	Ge:      ">=",
	LShift:  "<<",
	RShift:  ">>",
	Or:      "|",
	And:     "&",
	Xor:     "^",
}

func formatInstr(ins *TAC, idx map[*TAC]int) string {
	if ins == nil {
		return "<instr?>"
	}
	switch {
	case ins.op.IsBinary():
		return fmt.Sprintf("%s = %s %s %s",
			repr(ins.des), repr(ins.lhs), binarySymbols[ins.op], repr(ins.rhs))
	case ins.op == Assign:
		return fmt.Sprintf("%s = %s", repr(ins.des), repr(ins.lhs))
	case ins.op == DesSSAssign:
		return fmt.Sprintf("%s[%d] = %s", repr(ins.des), ins.n, repr(ins.lhs))
	case ins.op == SrcSSAssign:
		return fmt.Sprintf("%s = %s[%d]", repr(ins.des), repr(ins.lhs), ins.n)
	case ins.op == DerefAssign:
		return fmt.Sprintf("*%s = %s", repr(ins.des), repr(ins.lhs))
	case ins.op.IsUnary():
		return formatUnary(ins)
	case ins.op == Param:
		return fmt.Sprintf("param %s", repr(ins.lhs))
	case ins.op == Call:
		if ins.des != nil {
			return fmt.Sprintf("%s = call %s, %d", repr(ins.des), repr(ins.lhs), ins.n)
		}
		return fmt.Sprintf("call %s, %d", repr(ins.lhs), ins.n)
	case ins.op == Jump:
		return fmt.Sprintf("goto L%s", targetIndex(ins, idx))
	case ins.op == If:
		return fmt.Sprintf("if %s goto L%s", repr(ins.lhs), targetIndex(ins, idx))
	case ins.op == IfFalse:
		return fmt.Sprintf("if_false %s goto L%s", repr(ins.lhs), targetIndex(ins, idx))
	case ins.op == Label:
		return fmt.Sprintf("L%d:", idx[ins])
	default:
		return "<instr?>"
	}
}

func formatUnary(ins *TAC) string {
	des, lhs := repr(ins.des), repr(ins.lhs)
	switch ins.op {
	case PreInc:
		return fmt.Sprintf("%s = ++%s", des, lhs)
	case PostInc:
		return fmt.Sprintf("%s = %s++", des, lhs)
	case PreDec:
		return fmt.Sprintf("%s = --%s", des, lhs)
	case PostDec:
		return fmt.Sprintf("%s = %s--", des, lhs)
	case Plus:
		return fmt.Sprintf("%s = +%s", des, lhs)
	case Minus:
		return fmt.Sprintf("%s = -%s", des, lhs)
	case Addr:
		return fmt.Sprintf("%s = &%s", des, lhs)
	case Deref:
		return fmt.Sprintf("%s = *%s", des, lhs)
	case Compt:
		return fmt.Sprintf("%s = ~%s", des, lhs)
	case Not:
		return fmt.Sprintf("%s = !%s", des, lhs)
	case Cast:
		return fmt.Sprintf("%s = cast %s", des, lhs)
	default:
		return "<instr?>"
	}
}

func targetIndex(ins *TAC, idx map[*TAC]int) string {
	tgt := ins.Target()
	if tgt == nil {
		return "?"
	}
	if i, ok := idx[tgt]; ok {
		return fmt.Sprintf("%d", i)
	}
	return "?"
}

func repr(o Operand) string {
	if o == nil {
		return "_"
	}
	return o.Repr()
}
