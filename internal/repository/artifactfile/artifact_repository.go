package artifactfile

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"creditrisk/business/scoring"

	"github.com/gowebpki/jcs"
	"github.com/kaptinlin/jsonschema"
)

//go:embed artifact_schema.json
var artifactSchemaJSON []byte

// ArtifactRepository loads self-contained model artifact bundles from disk.
// Structural problems are caught by an embedded JSON Schema before the
// semantic validation in the scoring package runs.
type ArtifactRepository struct {
	schema *jsonschema.Schema
}

func NewArtifactRepository() (*ArtifactRepository, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	schema, err := compiler.Compile(artifactSchemaJSON)
	if err != nil {
		return nil, fmt.Errorf("compile artifact schema: %w", err)
	}

	return &ArtifactRepository{schema: schema}, nil
}

// Load reads, validates and fingerprints one artifact file. A failed load
// never disturbs whatever artifact is currently in service; publishing is the
// caller's job.
func (r *ArtifactRepository) Load(path string) (*scoring.ModelArtifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &scoring.InvalidArtifactError{Reason: "read artifact file", Err: err}
	}

	result := r.schema.ValidateJSON(data)
	if !result.IsValid() {
		return nil, &scoring.InvalidArtifactError{
			Reason: fmt.Sprintf("artifact does not match schema: %v", result.Errors),
		}
	}

	var artifact scoring.ModelArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, &scoring.InvalidArtifactError{Reason: "decode artifact", Err: err}
	}

	if err := artifact.Validate(); err != nil {
		return nil, err
	}

	fingerprint, err := fingerprintJSON(data)
	if err != nil {
		return nil, &scoring.InvalidArtifactError{Reason: "fingerprint artifact", Err: err}
	}
	artifact.Fingerprint = fingerprint

	return &artifact, nil
}

// fingerprintJSON digests the canonical (RFC 8785) form of the artifact so
// the fingerprint is stable across whitespace and key-order differences.
func fingerprintJSON(data []byte) (string, error) {
	canonical, err := jcs.Transform(data)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
