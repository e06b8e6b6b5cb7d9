package scoring

import (
	"testing"

	"creditrisk/domain"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	th := Thresholds{Lower: 0.2, Upper: 0.6}

	cases := []struct {
		p    float64
		want domain.DecisionTier
	}{
		{0.0, domain.TierApprove},
		{0.19, domain.TierApprove},
		{0.2, domain.TierApprove}, // boundary is closed toward approval
		{0.21, domain.TierManualReview},
		{0.4, domain.TierManualReview},
		{0.59, domain.TierManualReview},
		{0.6, domain.TierReject}, // boundary is closed toward rejection
		{0.95, domain.TierReject},
		{1.0, domain.TierReject},
	}

	for _, tc := range cases {
		assert.Equalf(t, tc.want, Decide(tc.p, th), "p=%v", tc.p)
	}
}

func TestDecide_ThresholdsComeFromArtifact(t *testing.T) {
	// a conservative artifact shifts the same probability between tiers
	strict := Thresholds{Lower: 0.05, Upper: 0.3}
	lenient := Thresholds{Lower: 0.3, Upper: 0.8}

	assert.Equal(t, domain.TierReject, Decide(0.4, strict))
	assert.Equal(t, domain.TierManualReview, Decide(0.4, lenient))
}
