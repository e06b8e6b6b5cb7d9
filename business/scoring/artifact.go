package scoring

import (
	"fmt"
	"math"
	"time"
)

// Thresholds are the artifact-scoped decision boundaries. Both are closed:
// a probability equal to Lower approves, equal to Upper rejects.
type Thresholds struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

type ScoreRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ModelArtifact is the immutable bundle produced by the offline fitting
// process: schema, ensemble parameters, decision thresholds and metadata.
// It is loaded once, shared read-only by all requests, and replaced only
// wholesale through the ArtifactStore.
type ModelArtifact struct {
	Version        int           `json:"version"`
	CreatedAt      time.Time     `json:"created_at"`
	ValidationAUC  float64       `json:"validation_auc"`
	ImbalanceRatio float64       `json:"imbalance_ratio"`
	BaseScore      float64       `json:"base_score"`
	Thresholds     Thresholds    `json:"thresholds"`
	ScoreRange     ScoreRange    `json:"score_range"`
	Schema         FeatureSchema `json:"schema"`
	Trees          []Tree        `json:"trees"`

	// Fingerprint is the canonical-JSON digest stamped by the loader.
	Fingerprint string `json:"-"`

	baselineMargin float64
	validated      bool
}

// Validate checks every invariant a candidate artifact must satisfy before
// it may be published, and freezes the explanation baseline. A rejected
// artifact never replaces an active one.
func (a *ModelArtifact) Validate() error {
	if a.Version < 1 {
		return &InvalidArtifactError{Reason: fmt.Sprintf("version %d must be positive", a.Version)}
	}

	th := a.Thresholds
	if th.Lower < 0 || th.Upper > 1 || th.Upper <= th.Lower {
		return &InvalidArtifactError{
			Reason: fmt.Sprintf("thresholds must satisfy 0 <= lower < upper <= 1, got lower=%v upper=%v", th.Lower, th.Upper),
		}
	}

	if a.ScoreRange.Min >= a.ScoreRange.Max {
		return &InvalidArtifactError{
			Reason: fmt.Sprintf("score range min %v must be below max %v", a.ScoreRange.Min, a.ScoreRange.Max),
		}
	}

	if err := a.Schema.Validate(); err != nil {
		return &InvalidArtifactError{Reason: "feature schema", Err: err}
	}

	if len(a.Trees) == 0 {
		return &InvalidArtifactError{Reason: "ensemble has no trees"}
	}
	for ti, tree := range a.Trees {
		if err := validateTree(tree, len(a.Schema.Features)); err != nil {
			return &InvalidArtifactError{Reason: fmt.Sprintf("tree %d", ti), Err: err}
		}
	}

	a.baselineMargin = a.BaseScore
	for _, t := range a.Trees {
		a.baselineMargin += t.expectedValue()
	}
	a.validated = true

	return nil
}

// BaselineMargin is the ensemble's expected output over the training
// background distribution, in log-odds space. Valid after Validate.
func (a *ModelArtifact) BaselineMargin() float64 {
	return a.baselineMargin
}

func validateTree(t Tree, numFeatures int) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("tree has no nodes")
	}

	for i, n := range t.Nodes {
		if n.Cover <= 0 {
			return fmt.Errorf("node %d: cover must be positive", i)
		}

		if n.isLeaf() {
			if !isFinite(n.Value) {
				return fmt.Errorf("node %d: non-finite leaf value", i)
			}
			continue
		}

		if n.Feature >= numFeatures {
			return fmt.Errorf("node %d: split feature %d out of schema range", i, n.Feature)
		}
		if !isFinite(n.Threshold) {
			return fmt.Errorf("node %d: non-finite threshold", i)
		}
		// children must point forward so the node array cannot cycle
		if n.Left <= i || n.Left >= len(t.Nodes) || n.Right <= i || n.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d: child index out of range", i)
		}
		if n.Left == n.Right {
			return fmt.Errorf("node %d: identical children", i)
		}

		childCover := t.Nodes[n.Left].Cover + t.Nodes[n.Right].Cover
		if math.Abs(childCover-n.Cover) > 1e-6*n.Cover {
			return fmt.Errorf("node %d: children covers %v do not sum to node cover %v", i, childCover, n.Cover)
		}
	}

	return nil
}
