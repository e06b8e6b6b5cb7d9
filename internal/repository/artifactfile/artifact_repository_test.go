package artifactfile

import (
	"path/filepath"
	"testing"

	"creditrisk/business/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValidArtifact(t *testing.T) {
	repo, err := NewArtifactRepository()
	require.NoError(t, err)

	artifact, err := repo.Load(filepath.Join("testdata", "credit_risk_valid.json"))
	require.NoError(t, err)

	assert.Equal(t, 3, artifact.Version)
	assert.Equal(t, 0.762, artifact.ValidationAUC)
	assert.Len(t, artifact.Schema.Features, 7)
	assert.Len(t, artifact.Trees, 2)
	assert.Len(t, artifact.Fingerprint, 64) // sha-256 hex
	assert.InDelta(t, -2.1, artifact.BaselineMargin(), 1e-12)
}

func TestLoad_FingerprintIsCanonical(t *testing.T) {
	repo, err := NewArtifactRepository()
	require.NoError(t, err)

	a, err := repo.Load(filepath.Join("testdata", "credit_risk_valid.json"))
	require.NoError(t, err)

	// same artifact, different key order and whitespace
	b, err := repo.Load(filepath.Join("testdata", "credit_risk_valid_reordered.json"))
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint, b.Fingerprint)
}

func TestLoad_RejectsBadThresholds(t *testing.T) {
	repo, err := NewArtifactRepository()
	require.NoError(t, err)

	// structurally fine, semantically broken: lower above upper
	_, err = repo.Load(filepath.Join("testdata", "credit_risk_bad_thresholds.json"))
	var invalid *scoring.InvalidArtifactError
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Error(), "thresholds")
}

func TestLoad_RejectsSchemaViolation(t *testing.T) {
	repo, err := NewArtifactRepository()
	require.NoError(t, err)

	// trees is a required field, missing it fails before decoding
	_, err = repo.Load(filepath.Join("testdata", "credit_risk_missing_trees.json"))
	var invalid *scoring.InvalidArtifactError
	require.ErrorAs(t, err, &invalid)
}

func TestLoad_RejectsMalformedJSON(t *testing.T) {
	repo, err := NewArtifactRepository()
	require.NoError(t, err)

	_, err = repo.Load(filepath.Join("testdata", "credit_risk_malformed.json"))
	var invalid *scoring.InvalidArtifactError
	require.ErrorAs(t, err, &invalid)
}

func TestLoad_MissingFile(t *testing.T) {
	repo, err := NewArtifactRepository()
	require.NoError(t, err)

	_, err = repo.Load(filepath.Join("testdata", "no_such_artifact.json"))
	var invalid *scoring.InvalidArtifactError
	require.ErrorAs(t, err, &invalid)
}
