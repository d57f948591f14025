//go:build unit
// +build unit

package simulator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func amplitudes(s *StateVector) []complex128 {
	amps := make([]complex128, s.Dim())
	for i := range amps {
		amps[i] = s.Amplitude(i)
	}
	return amps
}

func TestBitFlip(t *testing.T) {
	s := NewStateVector(3)
	assert.NoError(t, Apply(s, BitFlip(1)))
	assert.Equal(t, complex128(0), s.Amplitude(0))
	assert.Equal(t, complex128(1), s.Amplitude(2))

	// a second flip restores the original state
	assert.NoError(t, Apply(s, BitFlip(1)))
	assert.Equal(t, complex128(1), s.Amplitude(0))
	assert.Equal(t, complex128(0), s.Amplitude(2))
}

func TestHadamard(t *testing.T) {
	h := 1.0 / math.Sqrt2
	s := NewStateVector(2)
	assert.NoError(t, Apply(s, Hadamard(0)))
	assert.InDelta(t, h, real(s.Amplitude(0)), 1e-12)
	assert.InDelta(t, h, real(s.Amplitude(1)), 1e-12)
	assert.InDelta(t, 1.0, s.Norm(), NormTolerance)

	// H applied to |1> produces (|0> - |1>)/sqrt(2)
	m := NewStateVector(1)
	assert.NoError(t, Apply(m, BitFlip(0)))
	assert.NoError(t, Apply(m, Hadamard(0)))
	assert.InDelta(t, h, real(m.Amplitude(0)), 1e-12)
	assert.InDelta(t, -h, real(m.Amplitude(1)), 1e-12)
}

func TestHadamardTwiceIsIdentity(t *testing.T) {
	s := NewStateVector(3)
	assert.NoError(t, Apply(s, BitFlip(2)))
	before := amplitudes(s)
	assert.NoError(t, Apply(s, Hadamard(2)))
	assert.NoError(t, Apply(s, Hadamard(2)))
	after := amplitudes(s)
	for i := range before {
		assert.InDelta(t, real(before[i]), real(after[i]), 1e-12)
		assert.InDelta(t, imag(before[i]), imag(after[i]), 1e-12)
	}
}

func TestControlledNot(t *testing.T) {
	tests := []struct {
		name      string
		prepare   []Instruction
		wantIndex int
	}{
		{
			name:      "control clear leaves target",
			prepare:   nil,
			wantIndex: 0,
		},
		{
			name:      "control set flips target",
			prepare:   []Instruction{BitFlip(0)},
			wantIndex: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStateVector(2)
			assert.NoError(t, ApplyAll(s, tt.prepare))
			assert.NoError(t, Apply(s, ControlledNot(0, 1)))
			assert.Equal(t, complex128(1), s.Amplitude(tt.wantIndex))
			assert.InDelta(t, 1.0, s.Norm(), NormTolerance)
		})
	}
}

func TestApplyInvalidTarget(t *testing.T) {
	tests := []struct {
		name string
		inst Instruction
	}{
		{
			name: "target out of range",
			inst: Hadamard(2),
		},
		{
			name: "negative target",
			inst: BitFlip(-1),
		},
		{
			name: "control out of range",
			inst: ControlledNot(5, 0),
		},
		{
			name: "control equals target",
			inst: ControlledNot(1, 1),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStateVector(2)
			err := Apply(s, tt.inst)
			assert.ErrorIs(t, err, ErrInvalidGateTarget)
			// state untouched
			assert.Equal(t, complex128(1), s.Amplitude(0))
			for i := 1; i < s.Dim(); i++ {
				assert.Equal(t, complex128(0), s.Amplitude(i))
			}
		})
	}
}

func TestApplyAllValidatesBeforeMutation(t *testing.T) {
	s := NewStateVector(2)
	insts := []Instruction{Hadamard(0), BitFlip(7)}
	err := ApplyAll(s, insts)
	assert.ErrorIs(t, err, ErrInvalidGateTarget)
	// the valid leading gate must not have run
	assert.Equal(t, complex128(1), s.Amplitude(0))
	assert.Equal(t, complex128(0), s.Amplitude(1))
}
