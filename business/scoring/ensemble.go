package scoring

import "math"

// TreeNode is one node of a regression tree in the boosted ensemble,
// xgboost-style: a split sends x[Feature] < Threshold to Left, everything
// else to Right. Cover is the training-sample weight that reached the node
// and encodes the background distribution used for explanation baselines.
type TreeNode struct {
	Feature   int     `json:"feature"` // -1 marks a leaf
	Threshold float64 `json:"threshold,omitempty"`
	Left      int     `json:"left,omitempty"`
	Right     int     `json:"right,omitempty"`
	Value     float64 `json:"value,omitempty"` // leaf margin contribution
	Cover     float64 `json:"cover"`
}

func (n TreeNode) isLeaf() bool {
	return n.Feature < 0
}

type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

// evaluate walks the tree for a complete feature vector. Missing values never
// reach this point: the transform imputes them first.
func (t Tree) evaluate(x []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.isLeaf() {
			return n.Value
		}
		if x[n.Feature] < n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// expectedValue is the cover-weighted mean leaf value, i.e. the tree's output
// expectation over the frozen training background distribution.
func (t Tree) expectedValue() float64 {
	return t.expectedValueFrom(0)
}

func (t Tree) expectedValueFrom(i int) float64 {
	n := t.Nodes[i]
	if n.isLeaf() {
		return n.Value
	}
	left := t.Nodes[n.Left]
	right := t.Nodes[n.Right]
	return (left.Cover*t.expectedValueFrom(n.Left) + right.Cover*t.expectedValueFrom(n.Right)) / n.Cover
}

// Margin is the raw ensemble output in log-odds space.
func (a *ModelArtifact) Margin(vec []float64) float64 {
	margin := a.BaseScore
	for _, t := range a.Trees {
		margin += t.evaluate(vec)
	}
	return margin
}

// Score evaluates the frozen ensemble and squashes the margin into a
// probability of default. Pure: identical inputs always produce identical
// output.
func Score(vec []float64, a *ModelArtifact) float64 {
	return sigmoid(a.Margin(vec))
}

func sigmoid(margin float64) float64 {
	return 1.0 / (1.0 + math.Exp(-margin))
}

func logit(p float64) float64 {
	return math.Log(p / (1.0 - p))
}
