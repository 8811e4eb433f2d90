package tac

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"
)

// Artifact codec: a translated module flattened for the dump tooling and
// inter-phase handoff. Operands go into a per-function table in first-use
// order; instructions reference operands and jump targets by index, so the
// pointer graph survives serialization without symbolic names.

// Current schema version - increment when the payload format changes.
const artifactSchema uint16 = 1

const noIndex int32 = -1

const (
	operandVariable uint8 = iota
	operandConstant
	operandTemporary
)

type operandRec struct {
	Kind      uint8
	Width     int64
	Type      uint8
	Name      string
	Offset    int64
	HasOffset bool
	Bits      uint64
	ID        uint64
}

type instrRec struct {
	Op      uint8
	Payload uint8
	Des     int32
	LHS     int32
	RHS     int32
	N       int64
	Target  int32
}

type funcRec struct {
	Name     string
	Operands []operandRec
	Instrs   []instrRec
}

type modulePayload struct {
	Schema uint16
	Name   string
	Funcs  []funcRec
}

// EncodeModule writes the artifact form of a module.
func EncodeModule(w io.Writer, m *Module) error {
	payload := modulePayload{Schema: artifactSchema, Name: m.Name}
	for _, f := range m.Funcs {
		fr, err := encodeFunc(f)
		if err != nil {
			return fmt.Errorf("tac: encode %s: %w", f.Name, err)
		}
		payload.Funcs = append(payload.Funcs, fr)
	}
	return msgpack.NewEncoder(w).Encode(&payload)
}

func encodeFunc(f *Func) (funcRec, error) {
	fr := funcRec{Name: f.Name}

	opIdx := make(map[Operand]int32)
	addOperand := func(o Operand) (int32, error) {
		if o == nil {
			return noIndex, nil
		}
		if i, ok := opIdx[o]; ok {
			return i, nil
		}
		i, err := safecast.Conv[int32](len(fr.Operands))
		if err != nil {
			return noIndex, fmt.Errorf("operand table overflow: %w", err)
		}
		rec := operandRec{Width: o.Width(), Type: uint8(o.Type())}
		switch o := o.(type) {
		case *Variable:
			rec.Kind = operandVariable
			rec.Name = o.name
			rec.Offset = o.offset
			rec.HasOffset = o.hasOffset
		case *Constant:
			rec.Kind = operandConstant
			rec.Bits = o.val
		case *Temporary:
			rec.Kind = operandTemporary
			rec.ID = o.id
		default:
			return noIndex, fmt.Errorf("unknown operand %T", o)
		}
		fr.Operands = append(fr.Operands, rec)
		opIdx[o] = i
		return i, nil
	}

	instrIdx := make(map[*TAC]int32, len(f.Instrs))
	for i, ins := range f.Instrs {
		idx, err := safecast.Conv[int32](i)
		if err != nil {
			return fr, fmt.Errorf("instruction stream overflow: %w", err)
		}
		instrIdx[ins] = idx
	}

	for i, ins := range f.Instrs {
		rec := instrRec{
			Op:      uint8(ins.op),
			Payload: uint8(ins.payload),
			Des:     noIndex,
			LHS:     noIndex,
			RHS:     noIndex,
			Target:  noIndex,
			N:       ins.n,
		}
		var err error
		if rec.Des, err = addOperand(ins.des); err != nil {
			return fr, err
		}
		if rec.LHS, err = addOperand(ins.lhs); err != nil {
			return fr, err
		}
		if ins.payload == PayloadRHS {
			if rec.RHS, err = addOperand(ins.rhs); err != nil {
				return fr, err
			}
		}
		if ins.payload == PayloadTarget {
			ti, ok := instrIdx[ins.target]
			if !ok {
				return fr, fmt.Errorf("instr %d: jump target not in stream", i)
			}
			rec.Target = ti
		}
		fr.Instrs = append(fr.Instrs, rec)
	}
	return fr, nil
}

// DecodeModule reads an artifact and rebuilds the pointer-linked module.
// Unknown schema versions and dangling indices are rejected.
func DecodeModule(r io.Reader) (*Module, error) {
	var payload modulePayload
	if err := msgpack.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("tac: decode artifact: %w", err)
	}
	if payload.Schema != artifactSchema {
		return nil, fmt.Errorf("tac: artifact schema %d, want %d", payload.Schema, artifactSchema)
	}
	m := &Module{Name: payload.Name}
	for i := range payload.Funcs {
		f, err := decodeFunc(&payload.Funcs[i])
		if err != nil {
			return nil, fmt.Errorf("tac: decode %s: %w", payload.Funcs[i].Name, err)
		}
		m.Funcs = append(m.Funcs, f)
	}
	return m, nil
}

func decodeFunc(fr *funcRec) (*Func, error) {
	operands := make([]Operand, len(fr.Operands))
	for i, rec := range fr.Operands {
		if rec.Type > uint8(Aggregate) {
			return nil, fmt.Errorf("operand %d: bad classification %d", i, rec.Type)
		}
		base := operandBase{width: rec.Width, typ: OperandType(rec.Type)}
		switch rec.Kind {
		case operandVariable:
			operands[i] = &Variable{operandBase: base, name: rec.Name, offset: rec.Offset, hasOffset: rec.HasOffset}
		case operandConstant:
			operands[i] = &Constant{operandBase: base, val: rec.Bits}
		case operandTemporary:
			operands[i] = &Temporary{operandBase: base, id: rec.ID}
		default:
			return nil, fmt.Errorf("operand %d: unknown kind %d", i, rec.Kind)
		}
	}

	lookup := func(idx int32) (Operand, error) {
		if idx == noIndex {
			return nil, nil
		}
		if idx < 0 || int(idx) >= len(operands) {
			return nil, fmt.Errorf("operand index %d out of range", idx)
		}
		return operands[idx], nil
	}

	instrs := make([]*TAC, len(fr.Instrs))
	for i := range fr.Instrs {
		instrs[i] = &TAC{}
	}
	for i, rec := range fr.Instrs {
		if rec.Op > uint8(Label) {
			return nil, fmt.Errorf("instr %d: unknown operator %d", i, rec.Op)
		}
		if rec.Payload > uint8(PayloadTarget) {
			return nil, fmt.Errorf("instr %d: unknown payload %d", i, rec.Payload)
		}
		ins := instrs[i]
		ins.op = Operator(rec.Op)
		ins.payload = Payload(rec.Payload)
		var err error
		if ins.des, err = lookup(rec.Des); err != nil {
			return nil, fmt.Errorf("instr %d: %w", i, err)
		}
		if ins.lhs, err = lookup(rec.LHS); err != nil {
			return nil, fmt.Errorf("instr %d: %w", i, err)
		}
		switch ins.payload {
		case PayloadRHS:
			if ins.rhs, err = lookup(rec.RHS); err != nil {
				return nil, fmt.Errorf("instr %d: %w", i, err)
			}
		case PayloadOffset:
			ins.n = rec.N
		case PayloadTarget:
			if rec.Target < 0 || int(rec.Target) >= len(instrs) {
				return nil, fmt.Errorf("instr %d: target index %d out of range", i, rec.Target)
			}
			ins.target = instrs[rec.Target]
		}
	}
	return &Func{Name: fr.Name, Instrs: instrs}, nil
}

// WriteFile encodes a module to path via a temp file and atomic rename.
func WriteFile(path string, m *Module) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := EncodeModule(f, m); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// ReadFile decodes a module artifact from path.
func ReadFile(path string) (*Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeModule(f)
}
