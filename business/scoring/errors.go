package scoring

import (
	"errors"
	"fmt"
)

// ErrModelUnavailable is returned while no model artifact has been loaded.
// Every prediction fails with it until a load or reload succeeds.
var ErrModelUnavailable = errors.New("no model artifact loaded")

// SchemaMismatchError reports an internally inconsistent feature schema. It
// indicates a corrupted or incompatible artifact, never a bad applicant
// record; missing applicant fields are always recoverable via imputation.
type SchemaMismatchError struct {
	Feature string
	Reason  string
}

func (e *SchemaMismatchError) Error() string {
	if e.Feature == "" {
		return fmt.Sprintf("schema mismatch: %s", e.Reason)
	}
	return fmt.Sprintf("schema mismatch: feature %q: %s", e.Feature, e.Reason)
}

// InvalidArtifactError rejects a candidate artifact at load time. The
// previously active artifact, if any, stays in service.
type InvalidArtifactError struct {
	Reason string
	Err    error
}

func (e *InvalidArtifactError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid model artifact: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid model artifact: %s", e.Reason)
}

func (e *InvalidArtifactError) Unwrap() error {
	return e.Err
}
