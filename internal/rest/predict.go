package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"creditrisk/business/scoring"
	"creditrisk/domain"
	"creditrisk/pkg/logger"
	"creditrisk/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	PredictHandler struct {
		validate      *validator.Validate
		scoringEngine ScoringEngine
		timeout       time.Duration
	}

	ScoringEngine interface {
		Predict(ctx context.Context, rec domain.ApplicantRecord) (domain.PredictionResult, error)
	}

	PredictRequest struct {
		Applicant map[string]any `json:"applicant" validate:"required"`
	}
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

func NewPredictHandler(engine ScoringEngine, timeout time.Duration) *PredictHandler {
	return &PredictHandler{
		validate:      validator.New(),
		scoringEngine: engine,
		timeout:       timeout,
	}
}

// POST /api/v1/predictions
func (h *PredictHandler) Predict(c echo.Context) error {
	var req PredictRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := validateRecordShape(req.Applicant); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	start := time.Now()
	result, err := h.scoringEngine.Predict(ctx, domain.ApplicantRecord(req.Applicant))
	metrics.PredictRequests.Inc()
	metrics.PredictLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		return h.renderError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

// validateRecordShape enforces the strict half of the inbound contract: the
// applicant mapping must be flat scalars. Missing fields are fine (the
// transform imputes them), nesting is not.
func validateRecordShape(rec map[string]any) error {
	for field, value := range rec {
		switch value.(type) {
		case nil, bool, string, float64:
		default:
			return fmt.Errorf("field %q must be a scalar value", field)
		}
	}
	return nil
}

func (h *PredictHandler) renderError(c echo.Context, err error) error {
	var schemaErr *scoring.SchemaMismatchError

	switch {
	case errors.Is(err, scoring.ErrModelUnavailable):
		return c.JSON(http.StatusServiceUnavailable, ResponseError{Message: err.Error()})
	case errors.As(err, &schemaErr):
		// corrupted artifact, a service problem rather than a bad request
		logger.Error("artifact schema mismatch while serving", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}
}
