//go:build unit
// +build unit

package classifier

import (
	"testing"

	"github.com/oqtopus-team/deutsch-jozsa-engine/core"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		counts      core.Counts
		inputQubits int
		threshold   float64
		want        core.Verdict
	}{
		{
			name:        "all shots on all-zero",
			counts:      core.Counts{"000": 1000},
			inputQubits: 3,
			threshold:   DefaultThreshold,
			want:        core.CONSTANT,
		},
		{
			name:        "no all-zero key at all",
			counts:      core.Counts{"111": 600, "101": 400},
			inputQubits: 3,
			threshold:   DefaultThreshold,
			want:        core.BALANCED,
		},
		{
			name:        "all-zero probability just above threshold",
			counts:      core.Counts{"00": 901, "10": 99},
			inputQubits: 2,
			threshold:   DefaultThreshold,
			want:        core.CONSTANT,
		},
		{
			name:        "all-zero probability exactly at threshold stays balanced",
			counts:      core.Counts{"00": 900, "10": 100},
			inputQubits: 2,
			threshold:   DefaultThreshold,
			want:        core.BALANCED,
		},
		{
			name:        "custom threshold",
			counts:      core.Counts{"00": 700, "11": 300},
			inputQubits: 2,
			threshold:   0.5,
			want:        core.CONSTANT,
		},
		{
			name:        "empty counts",
			counts:      core.Counts{},
			inputQubits: 2,
			threshold:   DefaultThreshold,
			want:        core.BALANCED,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.counts, tt.inputQubits, tt.threshold)
			assert.Equal(t, tt.want, got)
		})
	}
}
