package simulator

import (
	"fmt"
)

type GateKind int

const (
	BitFlipGate GateKind = iota
	HadamardGate
	ControlledNotGate
)

func (k GateKind) String() string {
	switch k {
	case BitFlipGate:
		return "x"
	case HadamardGate:
		return "h"
	case ControlledNotGate:
		return "cx"
	default:
		return "unknown"
	}
}

// Instruction is one in-place unitary update. Control is -1 for
// single-qubit gates.
type Instruction struct {
	Kind    GateKind
	Control int
	Target  int
}

func BitFlip(target int) Instruction {
	return Instruction{Kind: BitFlipGate, Control: -1, Target: target}
}

func Hadamard(target int) Instruction {
	return Instruction{Kind: HadamardGate, Control: -1, Target: target}
}

func ControlledNot(control, target int) Instruction {
	return Instruction{Kind: ControlledNotGate, Control: control, Target: target}
}

func (i Instruction) String() string {
	if i.Kind == ControlledNotGate {
		return fmt.Sprintf("%s q[%d], q[%d]", i.Kind, i.Control, i.Target)
	}
	return fmt.Sprintf("%s q[%d]", i.Kind, i.Target)
}

// Validate rejects the instruction before it can mutate any state.
func (i Instruction) Validate(qubitCount int) error {
	if i.Target < 0 || i.Target >= qubitCount {
		return fmt.Errorf("%w: target %d of %q, register has %d qubits",
			ErrInvalidGateTarget, i.Target, i.String(), qubitCount)
	}
	if i.Kind == ControlledNotGate {
		if i.Control < 0 || i.Control >= qubitCount {
			return fmt.Errorf("%w: control %d of %q, register has %d qubits",
				ErrInvalidGateTarget, i.Control, i.String(), qubitCount)
		}
		if i.Control == i.Target {
			return fmt.Errorf("%w: control and target are both %d in %q",
				ErrInvalidGateTarget, i.Control, i.String())
		}
	}
	return nil
}
