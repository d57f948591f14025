package simulator

import (
	"math"
)

// Apply runs one instruction against the state vector in place. The
// instruction is validated first so an invalid index never touches the
// amplitudes.
func Apply(s *StateVector, inst Instruction) error {
	if err := inst.Validate(s.qubitCount); err != nil {
		return err
	}
	switch inst.Kind {
	case BitFlipGate:
		applyBitFlip(s, inst.Target)
	case HadamardGate:
		applyHadamard(s, inst.Target)
	case ControlledNotGate:
		applyControlledNot(s, inst.Control, inst.Target)
	}
	return nil
}

// ApplyAll validates every instruction up front, then applies them in
// order. On a validation error no amplitude is modified.
func ApplyAll(s *StateVector, insts []Instruction) error {
	for _, inst := range insts {
		if err := inst.Validate(s.qubitCount); err != nil {
			return err
		}
	}
	for _, inst := range insts {
		// already validated
		_ = Apply(s, inst)
	}
	return nil
}

// applyBitFlip swaps the amplitudes of every index pair differing only in
// the target bit. A pure permutation, norm-preserving by construction.
func applyBitFlip(s *StateVector, target int) {
	n := len(s.amplitudes)
	bit := 1 << target
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			s.amplitudes[i], s.amplitudes[j] = s.amplitudes[j], s.amplitudes[i]
		}
	}
}

// applyHadamard iterates only over indices with the target bit clear so
// each pair is updated exactly once.
func applyHadamard(s *StateVector, target int) {
	hFactor := complex(1.0/math.Sqrt2, 0)
	n := len(s.amplitudes)
	bit := 1 << target
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			a, b := s.amplitudes[i], s.amplitudes[j]
			s.amplitudes[i] = hFactor * (a + b)
			s.amplitudes[j] = hFactor * (a - b)
		}
	}
}

// applyControlledNot swaps the target pair wherever the control bit is
// set. Indices with the control bit clear are untouched.
func applyControlledNot(s *StateVector, control, target int) {
	n := len(s.amplitudes)
	cBit := 1 << control
	tBit := 1 << target
	for i := 0; i < n; i++ {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			s.amplitudes[i], s.amplitudes[j] = s.amplitudes[j], s.amplitudes[i]
		}
	}
}
