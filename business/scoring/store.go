package scoring

import (
	"fmt"
	"sync/atomic"
)

// ArtifactStore publishes the active model artifact as an immutable snapshot
// behind an atomic pointer. Requests read without locking; a reload builds
// the full replacement off the hot path and swaps a single reference, so no
// request ever observes a half-swapped artifact.
type ArtifactStore struct {
	current atomic.Pointer[ModelArtifact]
}

func NewArtifactStore() *ArtifactStore {
	return &ArtifactStore{}
}

// Current returns the active artifact, or ErrModelUnavailable while none has
// been loaded yet.
func (s *ArtifactStore) Current() (*ModelArtifact, error) {
	a := s.current.Load()
	if a == nil {
		return nil, ErrModelUnavailable
	}
	return a, nil
}

// Swap publishes a validated artifact. Versions are monotonic: a candidate
// not newer than the active one is rejected and the active artifact stays in
// service.
func (s *ArtifactStore) Swap(next *ModelArtifact) error {
	if next == nil {
		return &InvalidArtifactError{Reason: "nil artifact"}
	}
	if !next.validated {
		return &InvalidArtifactError{Reason: "artifact was not validated"}
	}

	for {
		active := s.current.Load()
		if active != nil && next.Version <= active.Version {
			return &InvalidArtifactError{
				Reason: fmt.Sprintf("version %d is not newer than active version %d", next.Version, active.Version),
			}
		}
		if s.current.CompareAndSwap(active, next) {
			return nil
		}
	}
}
