package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"creditrisk/business/scoring"
	"creditrisk/domain"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	result domain.PredictionResult
	err    error
	gotRec domain.ApplicantRecord
}

func (f *fakeEngine) Predict(_ context.Context, rec domain.ApplicantRecord) (domain.PredictionResult, error) {
	f.gotRec = rec
	return f.result, f.err
}

func performPredict(h *PredictHandler, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/predictions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	_ = h.Predict(e.NewContext(req, rec))
	return rec
}

func TestPredictHandler_OK(t *testing.T) {
	engine := &fakeEngine{result: domain.PredictionResult{
		ProbabilityOfDefault: 0.9526,
		PresentationScore:    326.1,
		DecisionTier:         domain.TierReject,
		Attributions: []domain.AttributionItem{
			{FeatureName: "ext_source_2", ObservedValue: 0.05, Contribution: 2.7, Direction: domain.DirectionIncreasesRisk},
		},
		ModelVersion: 3,
	}}
	h := NewPredictHandler(engine, time.Second)

	rec := performPredict(h, `{"applicant": {"ext_source_2": 0.05, "amt_income_total": 100000}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"REJECT"`)
	assert.Contains(t, rec.Body.String(), `"ext_source_2"`)
	assert.Contains(t, rec.Body.String(), `"INCREASES_RISK"`)

	// the raw record reaches the engine untouched
	assert.EqualValues(t, 0.05, engine.gotRec["ext_source_2"])
}

func TestPredictHandler_MissingApplicant(t *testing.T) {
	h := NewPredictHandler(&fakeEngine{}, time.Second)

	rec := performPredict(h, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPredictHandler_MalformedBody(t *testing.T) {
	h := NewPredictHandler(&fakeEngine{}, time.Second)

	rec := performPredict(h, `{"applicant": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPredictHandler_RejectsNestedValues(t *testing.T) {
	h := NewPredictHandler(&fakeEngine{}, time.Second)

	rec := performPredict(h, `{"applicant": {"previous_loans": [1, 2, 3]}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "previous_loans")

	rec = performPredict(h, `{"applicant": {"address": {"city": "Jakarta"}}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPredictHandler_ScalarsAccepted(t *testing.T) {
	engine := &fakeEngine{result: domain.PredictionResult{DecisionTier: domain.TierApprove}}
	h := NewPredictHandler(engine, time.Second)

	rec := performPredict(h, `{"applicant": {"name_contract_type": "Cash loans", "flag_own_car": true, "amt_credit": 250000, "days_employed": null}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPredictHandler_ModelUnavailable(t *testing.T) {
	h := NewPredictHandler(&fakeEngine{err: scoring.ErrModelUnavailable}, time.Second)

	rec := performPredict(h, `{"applicant": {}}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestPredictHandler_SchemaMismatchIsServerError(t *testing.T) {
	h := NewPredictHandler(&fakeEngine{
		err: &scoring.SchemaMismatchError{Feature: "ext_source_2", Reason: "duplicate feature name"},
	}, time.Second)

	rec := performPredict(h, `{"applicant": {}}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
