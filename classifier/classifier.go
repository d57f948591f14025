package classifier

import (
	"fmt"

	"github.com/oqtopus-team/deutsch-jozsa-engine/common"
	"github.com/oqtopus-team/deutsch-jozsa-engine/core"
	"go.uber.org/zap"
)

// DefaultThreshold is tuned for shot counts around 1000. Its correctness
// is statistical, not exact, so it stays configurable.
const DefaultThreshold = 0.9

// Classify declares the measured oracle constant when the empirical
// probability of the all-zero input pattern exceeds threshold, balanced
// otherwise. A missing all-zero entry counts as probability 0.
func Classify(counts core.Counts, inputQubits int, threshold float64) core.Verdict {
	p0 := counts.Probability(common.AllZeroBits(inputQubits))
	zap.L().Debug(fmt.Sprintf("all-zero probability:%f/threshold:%f", p0, threshold))
	if p0 > threshold {
		return core.CONSTANT
	}
	return core.BALANCED
}
