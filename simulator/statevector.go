package simulator

import (
	"errors"
	"fmt"
	"math/cmplx"
)

// NormTolerance is the allowed relative deviation of the squared norm
// from 1 before a run is reported as drifting.
const NormTolerance = 1e-9

var ErrInvalidGateTarget = errors.New("gate references a qubit outside the register")
var ErrArithmeticDrift = errors.New("state vector norm drifted beyond tolerance")

// StateVector holds the joint amplitudes of a qubit register. Index bit i
// corresponds to qubit i. The length is fixed at 2^qubitCount.
type StateVector struct {
	amplitudes []complex128
	qubitCount int
}

func NewStateVector(qubitCount int) *StateVector {
	amps := make([]complex128, 1<<qubitCount)
	amps[0] = 1
	return &StateVector{
		amplitudes: amps,
		qubitCount: qubitCount,
	}
}

func (s *StateVector) QubitCount() int {
	return s.qubitCount
}

func (s *StateVector) Dim() int {
	return len(s.amplitudes)
}

func (s *StateVector) Amplitude(index int) complex128 {
	return s.amplitudes[index]
}

func (s *StateVector) SetAmplitude(index int, a complex128) {
	s.amplitudes[index] = a
}

// Norm is the sum of squared magnitudes. Exactly 1 up to rounding for any
// state reached through unitary gates only.
func (s *StateVector) Norm() float64 {
	var norm float64
	for _, a := range s.amplitudes {
		norm += real(a * cmplx.Conj(a))
	}
	return norm
}

// CheckNorm reports ErrArithmeticDrift when the norm deviates from 1 by
// more than tol. The state is left untouched, drift is recoverable by
// renormalization but the caller decides.
func (s *StateVector) CheckNorm(tol float64) error {
	norm := s.Norm()
	dev := norm - 1
	if dev < 0 {
		dev = -dev
	}
	if dev > tol {
		return fmt.Errorf("%w: norm=%.12f deviation=%.3e", ErrArithmeticDrift, norm, dev)
	}
	return nil
}

func (s *StateVector) Clone() *StateVector {
	amps := make([]complex128, len(s.amplitudes))
	copy(amps, s.amplitudes)
	return &StateVector{
		amplitudes: amps,
		qubitCount: s.qubitCount,
	}
}
