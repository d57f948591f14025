package simulator

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// RunCircuit prepares the Deutsch-Jozsa state for inputQubits input qubits
// plus one ancilla at index inputQubits. The oracle gates run between the
// two Hadamard layers. Deterministic and pure given its inputs; the
// returned vector must not be mutated by the caller.
func RunCircuit(inputQubits int, oracleGates []Instruction) (*StateVector, error) {
	if inputQubits < 1 {
		return nil, fmt.Errorf("input qubit count(%d) must be greater than 0", inputQubits)
	}
	total := inputQubits + 1
	ancilla := inputQubits

	// All oracle instructions are validated before any stage mutates state.
	var verr error
	for _, inst := range oracleGates {
		verr = multierr.Append(verr, inst.Validate(total))
	}
	if verr != nil {
		zap.L().Info(fmt.Sprintf("rejected oracle gate sequence/reason:%s", verr))
		return nil, verr
	}

	// Init: all amplitude on |0...0>, then flip the ancilla to |1>.
	s := NewStateVector(total)
	_ = Apply(s, BitFlip(ancilla))

	// SpreadHadamard1: inputs and ancilla.
	for q := 0; q < total; q++ {
		_ = Apply(s, Hadamard(q))
	}

	// Oracle: supplied sequence in order.
	for _, inst := range oracleGates {
		_ = Apply(s, inst)
	}

	// SpreadHadamard2: input qubits only.
	for q := 0; q < inputQubits; q++ {
		_ = Apply(s, Hadamard(q))
	}

	return s, nil
}
