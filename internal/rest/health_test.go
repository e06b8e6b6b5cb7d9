package rest

import (
	"net/http"
	"testing"

	"creditrisk/business/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthz(t *testing.T) {
	h := NewHealthHandler(scoring.NewArtifactStore())

	rec := performJSON(h.Healthz, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyz(t *testing.T) {
	store := scoring.NewArtifactStore()
	h := NewHealthHandler(store)

	rec := performJSON(h.Readyz, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	require.NoError(t, store.Swap(validArtifact(t, 2)))

	rec = performJSON(h.Readyz, http.MethodGet, "/readyz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"model_version":2`)
}
