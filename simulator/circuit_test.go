//go:build unit
// +build unit

package simulator

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
)

// inputProbabilities traces out the ancilla at index inputQubits.
func inputProbabilities(s *StateVector, inputQubits int) []float64 {
	mask := (1 << inputQubits) - 1
	probs := make([]float64, 1<<inputQubits)
	for i := 0; i < s.Dim(); i++ {
		a := s.Amplitude(i)
		probs[i&mask] += real(a * cmplx.Conj(a))
	}
	return probs
}

func TestRunCircuitConstantOracle(t *testing.T) {
	tests := []struct {
		name        string
		inputQubits int
		oracleGates []Instruction
	}{
		{
			name:        "identity oracle",
			inputQubits: 3,
			oracleGates: nil,
		},
		{
			name:        "ancilla flip oracle",
			inputQubits: 3,
			oracleGates: []Instruction{BitFlip(3)},
		},
		{
			name:        "single input qubit",
			inputQubits: 1,
			oracleGates: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := RunCircuit(tt.inputQubits, tt.oracleGates)
			assert.NoError(t, err)
			assert.NoError(t, s.CheckNorm(NormTolerance))
			probs := inputProbabilities(s, tt.inputQubits)
			assert.InDelta(t, 1.0, probs[0], 1e-9)
		})
	}
}

func TestRunCircuitBalancedOracle(t *testing.T) {
	// parity oracle over all three inputs, f(x) = x0 XOR x1 XOR x2
	inputQubits := 3
	ancilla := inputQubits
	gates := []Instruction{
		ControlledNot(0, ancilla),
		ControlledNot(1, ancilla),
		ControlledNot(2, ancilla),
	}
	s, err := RunCircuit(inputQubits, gates)
	assert.NoError(t, err)
	assert.NoError(t, s.CheckNorm(NormTolerance))

	probs := inputProbabilities(s, inputQubits)
	assert.InDelta(t, 0.0, probs[0], 1e-9)
	// all probability sits on |111>
	assert.InDelta(t, 1.0, probs[7], 1e-9)
}

func TestRunCircuitSingleVariableOracle(t *testing.T) {
	// f(x) = x0 concentrates the inputs on |100...>
	inputQubits := 3
	s, err := RunCircuit(inputQubits, []Instruction{ControlledNot(0, inputQubits)})
	assert.NoError(t, err)
	probs := inputProbabilities(s, inputQubits)
	assert.InDelta(t, 0.0, probs[0], 1e-9)
	assert.InDelta(t, 1.0, probs[1], 1e-9)
}

func TestRunCircuitSingleVariableOracleOneQubit(t *testing.T) {
	// with a single input qubit the first-half oracle is f(x) = x0,
	// still balanced, and the input register ends deterministically
	// in |1>: p0 = 0, p1 = 1
	s, err := RunCircuit(1, []Instruction{ControlledNot(0, 1)})
	assert.NoError(t, err)
	assert.NoError(t, s.CheckNorm(NormTolerance))
	probs := inputProbabilities(s, 1)
	assert.InDelta(t, 0.0, probs[0], 1e-9)
	assert.InDelta(t, 1.0, probs[1], 1e-9)
}

func TestRunCircuitPhase(t *testing.T) {
	// after the circuit the ancilla is (|0> - |1>)/sqrt(2) and the
	// sign of the input part encodes f(0)
	h := 1.0 / math.Sqrt2
	s, err := RunCircuit(2, nil)
	assert.NoError(t, err)
	assert.InDelta(t, h, real(s.Amplitude(0)), 1e-12)
	assert.InDelta(t, -h, real(s.Amplitude(4)), 1e-12)

	flipped, err := RunCircuit(2, []Instruction{BitFlip(2)})
	assert.NoError(t, err)
	assert.InDelta(t, -h, real(flipped.Amplitude(0)), 1e-12)
	assert.InDelta(t, h, real(flipped.Amplitude(4)), 1e-12)
}

func TestRunCircuitRejectsBadInput(t *testing.T) {
	tests := []struct {
		name        string
		inputQubits int
		oracleGates []Instruction
	}{
		{
			name:        "zero input qubits",
			inputQubits: 0,
			oracleGates: nil,
		},
		{
			name:        "oracle gate out of range",
			inputQubits: 2,
			oracleGates: []Instruction{BitFlip(3)},
		},
		{
			name:        "several invalid oracle gates",
			inputQubits: 2,
			oracleGates: []Instruction{BitFlip(3), ControlledNot(0, 9)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := RunCircuit(tt.inputQubits, tt.oracleGates)
			assert.Error(t, err)
			assert.Nil(t, s)
		})
	}
}
