package scoring

import "creditrisk/domain"

// Decide maps a probability of default onto one of the three decision tiers.
// Boundaries are closed toward the terminal decisions: p == Upper rejects,
// p == Lower approves. Thresholds come from the artifact, never from code.
func Decide(p float64, th Thresholds) domain.DecisionTier {
	switch {
	case p >= th.Upper:
		return domain.TierReject
	case p <= th.Lower:
		return domain.TierApprove
	default:
		return domain.TierManualReview
	}
}
