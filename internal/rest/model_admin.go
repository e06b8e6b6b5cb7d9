package rest

import (
	"errors"
	"net/http"
	"time"

	"creditrisk/business/scoring"
	"creditrisk/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type (
	ModelAdminHandler struct {
		loader      ArtifactLoader
		store       *scoring.ArtifactStore
		defaultPath string
	}

	ArtifactLoader interface {
		Load(path string) (*scoring.ModelArtifact, error)
	}

	ReloadRequest struct {
		Path string `json:"path"`
	}

	ModelMetadata struct {
		Version        int                `json:"version"`
		Fingerprint    string             `json:"fingerprint"`
		CreatedAt      time.Time          `json:"created_at"`
		ValidationAUC  float64            `json:"validation_auc"`
		ImbalanceRatio float64            `json:"imbalance_ratio"`
		Thresholds     scoring.Thresholds `json:"thresholds"`
		ScoreRange     scoring.ScoreRange `json:"score_range"`
		FeatureCount   int                `json:"feature_count"`
		TreeCount      int                `json:"tree_count"`
	}
)

func NewModelAdminHandler(loader ArtifactLoader, store *scoring.ArtifactStore, defaultPath string) *ModelAdminHandler {
	return &ModelAdminHandler{
		loader:      loader,
		store:       store,
		defaultPath: defaultPath,
	}
}

// GET /api/v1/model
func (h *ModelAdminHandler) GetModel(c echo.Context) error {
	artifact, err := h.store.Current()
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(metadataOf(artifact)))
}

// POST /api/v1/admin/model/reload
//
// Builds the candidate artifact fully before publishing it; a rejected
// candidate leaves the active artifact untouched.
func (h *ModelAdminHandler) Reload(c echo.Context) error {
	var req ReloadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	path := req.Path
	if path == "" {
		path = h.defaultPath
	}

	artifact, err := h.loader.Load(path)
	if err != nil {
		logger.Error("model reload rejected", err, "path", path)
		return h.renderReloadError(c, err)
	}

	if err := h.store.Swap(artifact); err != nil {
		logger.Error("model reload rejected", err, "path", path)
		return h.renderReloadError(c, err)
	}

	logger.Info("model reloaded",
		"path", path,
		"version", artifact.Version,
		"fingerprint", artifact.Fingerprint,
	)

	return c.JSON(http.StatusOK, fres.Response.StatusOK(metadataOf(artifact)))
}

func (h *ModelAdminHandler) renderReloadError(c echo.Context, err error) error {
	var invalidErr *scoring.InvalidArtifactError
	if errors.As(err, &invalidErr) {
		return c.JSON(http.StatusUnprocessableEntity, ResponseError{Message: err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
}

func metadataOf(a *scoring.ModelArtifact) ModelMetadata {
	return ModelMetadata{
		Version:        a.Version,
		Fingerprint:    a.Fingerprint,
		CreatedAt:      a.CreatedAt,
		ValidationAUC:  a.ValidationAUC,
		ImbalanceRatio: a.ImbalanceRatio,
		Thresholds:     a.Thresholds,
		ScoreRange:     a.ScoreRange,
		FeatureCount:   len(a.Schema.Features),
		TreeCount:      len(a.Trees),
	}
}
