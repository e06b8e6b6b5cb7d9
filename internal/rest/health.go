package rest

import (
	"net/http"

	"creditrisk/business/scoring"

	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	store *scoring.ArtifactStore
}

func NewHealthHandler(store *scoring.ArtifactStore) *HealthHandler {
	return &HealthHandler{store: store}
}

// GET /healthz
func (h *HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// GET /readyz, not ready until a model artifact has been loaded.
func (h *HealthHandler) Readyz(c echo.Context) error {
	artifact, err := h.store.Current()
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"status": "unavailable",
			"reason": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":        "ok",
		"model_version": artifact.Version,
	})
}
