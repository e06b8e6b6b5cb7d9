package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// testArtifact is a small but fully valid ensemble over two features: the
// normalized external score and the annuity-to-income debt ratio. Leaf values
// and covers are chosen so both trees mostly see low-risk training mass.
func testArtifact(t *testing.T) *ModelArtifact {
	t.Helper()

	artifact := &ModelArtifact{
		Version:        1,
		CreatedAt:      time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		ValidationAUC:  0.76,
		ImbalanceRatio: 11.4,
		BaseScore:      -1.0,
		Thresholds:     Thresholds{Lower: 0.2, Upper: 0.6},
		ScoreRange:     ScoreRange{Min: 300, Max: 850},
		Schema: FeatureSchema{Features: []FeatureSpec{
			{Name: "ext_source_2", Kind: FeatureNumeric, Impute: 0.5},
			{Name: "annuity_income_percent", Kind: FeatureDerived, Impute: 0.2},
		}},
		Trees: []Tree{
			{Nodes: []TreeNode{
				{Feature: 0, Threshold: 0.3, Left: 1, Right: 2, Cover: 1000},
				{Feature: -1, Value: 2.0, Cover: 100},
				{Feature: -1, Value: -1.0, Cover: 900},
			}},
			{Nodes: []TreeNode{
				{Feature: 1, Threshold: 0.35, Left: 1, Right: 2, Cover: 1000},
				{Feature: -1, Value: -1.0, Cover: 800},
				{Feature: -1, Value: 2.0, Cover: 200},
			}},
		},
	}

	require.NoError(t, artifact.Validate())
	return artifact
}

func floatPtr(v float64) *float64 {
	return &v
}
