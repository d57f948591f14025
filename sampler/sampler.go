package sampler

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/oqtopus-team/deutsch-jozsa-engine/common"
	"github.com/oqtopus-team/deutsch-jozsa-engine/core"
	"github.com/oqtopus-team/deutsch-jozsa-engine/simulator"
)

var ErrEmptyShotCount = errors.New("shot count must be at least 1")

// UniformSource yields independent uniform draws in [0,1).
// *math/rand.Rand satisfies it.
type UniformSource interface {
	Float64() float64
}

// Marginals sums the squared magnitudes over both ancilla values into a
// probability table of length 2^inputQubits over the input register.
func Marginals(s *simulator.StateVector, inputQubits int) ([]float64, error) {
	if s.QubitCount() != inputQubits+1 {
		return nil, fmt.Errorf("state vector has %d qubits, want %d inputs plus the ancilla",
			s.QubitCount(), inputQubits)
	}
	inputMask := (1 << inputQubits) - 1
	probs := make([]float64, 1<<inputQubits)
	for i := 0; i < s.Dim(); i++ {
		a := s.Amplitude(i)
		probs[i&inputMask] += real(a * cmplx.Conj(a))
	}
	return probs, nil
}

// Sample draws shots independent meas. outcomes of the input register by
// walking the cumulative distribution in ascending basis order. The last
// basis state absorbs any floating-point shortfall.
func Sample(s *simulator.StateVector, inputQubits, shots int, src UniformSource) (core.Counts, error) {
	if shots < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrEmptyShotCount, shots)
	}
	probs, err := Marginals(s, inputQubits)
	if err != nil {
		return nil, err
	}
	counts := make(core.Counts)
	last := len(probs) - 1
	for shot := 0; shot < shots; shot++ {
		u := src.Float64()
		cum := 0.0
		selected := last
		for idx, p := range probs {
			cum += p
			if u < cum {
				selected = idx
				break
			}
		}
		counts[common.FormatBasisState(selected, inputQubits)]++
	}
	return counts, nil
}
