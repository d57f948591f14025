package oracle

import (
	"fmt"

	"github.com/oqtopus-team/deutsch-jozsa-engine/simulator"
)

type Kind int

const (
	Constant Kind = iota
	Balanced
)

func (k Kind) String() string {
	switch k {
	case Constant:
		return "constant"
	case Balanced:
		return "balanced"
	default:
		return "unknown"
	}
}

func ToKind(s string) (Kind, error) {
	switch s {
	case "constant":
		return Constant, nil
	case "balanced":
		return Balanced, nil
	default:
		return 0, fmt.Errorf("unknown oracle kind: %s", s)
	}
}

const (
	Constant0Name         = "constant-0"
	Constant1Name         = "constant-1"
	BalancedParityName    = "balanced-parity"
	BalancedFirstHalfName = "balanced-first-half"
)

// Definition is an ordered gate sequence implementing a boolean function
// on the register. The declared Kind is carried for correctness checking
// by the caller, the circuit itself does not need it.
type Definition struct {
	Name  string
	Kind  Kind
	Gates []simulator.Instruction
}

// Registry returns the four supported oracles over inputQubits input
// qubits. The ancilla sits at index inputQubits.
func Registry(inputQubits int) []Definition {
	ancilla := inputQubits
	parityGates := make([]simulator.Instruction, 0, inputQubits)
	for i := 0; i < inputQubits; i++ {
		parityGates = append(parityGates, simulator.ControlledNot(i, ancilla))
	}
	return []Definition{
		{
			Name:  Constant0Name,
			Kind:  Constant,
			Gates: nil, // f(x) = 0, identity
		},
		{
			Name:  Constant1Name,
			Kind:  Constant,
			Gates: []simulator.Instruction{simulator.BitFlip(ancilla)}, // f(x) = 1
		},
		{
			Name:  BalancedParityName,
			Kind:  Balanced,
			Gates: parityGates, // f(x) = XOR of all input bits
		},
		{
			Name:  BalancedFirstHalfName,
			Kind:  Balanced,
			Gates: []simulator.Instruction{simulator.ControlledNot(0, ancilla)}, // f(x) = x_0
		},
	}
}

func Lookup(name string, inputQubits int) (Definition, error) {
	for _, def := range Registry(inputQubits) {
		if def.Name == name {
			return def, nil
		}
	}
	return Definition{}, fmt.Errorf("unknown oracle: %s", name)
}
