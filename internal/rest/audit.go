package rest

import (
	"context"
	"net/http"
	"strconv"

	"creditrisk/domain"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type (
	AuditHandler struct {
		eventReader PredictionEventReader
	}

	PredictionEventReader interface {
		RecentEvents(ctx context.Context, limit int) ([]domain.PredictionEvent, error)
	}
)

// NewAuditHandler exposes the prediction audit trail. eventReader may be nil
// when the audit database is disabled.
func NewAuditHandler(eventReader PredictionEventReader) *AuditHandler {
	return &AuditHandler{eventReader: eventReader}
}

// GET /api/v1/admin/predictions?limit=50
func (h *AuditHandler) RecentPredictions(c echo.Context) error {
	if h.eventReader == nil {
		return c.JSON(http.StatusServiceUnavailable, ResponseError{Message: "audit trail is disabled"})
	}

	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "limit must be a positive integer"})
		}
		limit = parsed
	}

	events, err := h.eventReader.RecentEvents(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(events))
}
