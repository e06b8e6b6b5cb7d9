package scoring

import (
	"context"
	"fmt"
	"math"
	"sort"

	"creditrisk/domain"
)

// Explain computes the per-feature additive attribution of the ensemble's
// output for one feature vector, relative to the baseline frozen in the
// artifact, and returns the topK items by absolute contribution.
//
// The context deadline is checked between trees so an over-budget explanation
// can be abandoned without blocking scoring; the caller downgrades the
// response instead of failing the request.
func Explain(ctx context.Context, vec []float64, a *ModelArtifact, topK int) ([]domain.AttributionItem, error) {
	if topK <= 0 {
		topK = 5
	}

	phi := make([]float64, len(vec))
	for ti := range a.Trees {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("explanation aborted after %d/%d trees: %w", ti, len(a.Trees), err)
		}
		a.Trees[ti].shapley(vec, phi)
	}

	items := make([]domain.AttributionItem, len(phi))
	for i, contribution := range phi {
		direction := domain.DirectionDecreasesRisk
		if contribution > 0 {
			direction = domain.DirectionIncreasesRisk
		}
		items[i] = domain.AttributionItem{
			FeatureName:   a.Schema.Features[i].Name,
			ObservedValue: vec[i],
			Contribution:  contribution,
			Direction:     direction,
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return math.Abs(items[i].Contribution) > math.Abs(items[j].Contribution)
	})

	if len(items) > topK {
		items = items[:topK]
	}

	return items, nil
}
