package scoring

import (
	"context"
	"fmt"
	"math"
	"time"

	"creditrisk/domain"
	"creditrisk/pkg/logger"

	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

// ---- Repository interfaces ----

// PredictionRepository persists the audit trail of served predictions.
type PredictionRepository interface {
	SaveEvent(ctx context.Context, event domain.PredictionEvent) error
}

// ---- Usecase / Service ----

type ScoringService struct {
	store          *ArtifactStore
	predictionRepo PredictionRepository
	topK           int
	explainBudget  time.Duration
}

// NewScoringService wires the decision engine. predictionRepo may be nil when
// audit logging is disabled.
func NewScoringService(
	store *ArtifactStore,
	predictionRepo PredictionRepository,
	topK int,
	explainBudget time.Duration,
) *ScoringService {
	return &ScoringService{
		store:          store,
		predictionRepo: predictionRepo,
		topK:           topK,
		explainBudget:  explainBudget,
	}
}

// Predict turns a raw applicant record into a bounded risk decision plus its
// explanation. Scoring and explanation consume the same feature vector and
// artifact snapshot and run concurrently; only the explanation is allowed to
// degrade, never the decision.
func (s *ScoringService) Predict(ctx context.Context, rec domain.ApplicantRecord) (domain.PredictionResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.PredictionResult{}, fmt.Errorf("context error: %w", err)
	}

	art, err := s.store.Current()
	if err != nil {
		return domain.PredictionResult{}, err
	}

	vec, imputedFeatures, err := Transform(rec, art.Schema)
	if err != nil {
		return domain.PredictionResult{}, err
	}
	for _, name := range imputedFeatures {
		ImputationFallbackTotal.WithLabelValues(name).Inc()
	}

	var (
		prob       float64
		attrs      []domain.AttributionItem
		explainErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		prob = Score(vec, art)
		return nil
	})
	g.Go(func() error {
		explainCtx, cancel := context.WithTimeout(gctx, s.explainBudget)
		defer cancel()
		// explanation failure downgrades the response, never the request
		attrs, explainErr = Explain(explainCtx, vec, art, s.topK)
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.PredictionResult{}, err
	}

	degraded := explainErr != nil
	if degraded {
		attrs = []domain.AttributionItem{}
		ExplanationDegradedTotal.Inc()
		logger.Warn("explanation_degraded",
			"trace_id", TraceIDFromContext(ctx),
			"model_version", art.Version,
			"reason", explainErr.Error(),
		)
	}

	tier := Decide(prob, art.Thresholds)
	score := MapScore(prob, art.ScoreRange)

	PredictionsTotal.WithLabelValues(string(tier)).Inc()

	logger.Debug("prediction_served",
		"trace_id", TraceIDFromContext(ctx),
		"model_version", art.Version,
		"probability", prob,
		"decision", string(tier),
		"imputed_features", len(imputedFeatures),
		"degraded", degraded,
	)

	result := domain.PredictionResult{
		ProbabilityOfDefault: roundTo(prob, 4),
		PresentationScore:    roundTo(score, 1),
		DecisionTier:         tier,
		Attributions:         attrs,
		ExplanationDegraded:  degraded,
		ModelVersion:         art.Version,
	}

	s.logPredictionEvent(ctx, rec, result)

	return result, nil
}

// ActiveArtifact exposes the current snapshot for the metadata endpoint.
func (s *ScoringService) ActiveArtifact() (*ModelArtifact, error) {
	return s.store.Current()
}

// logPredictionEvent writes the audit row best effort: persistence problems
// are logged and counted against monitoring, never against the caller.
func (s *ScoringService) logPredictionEvent(ctx context.Context, rec domain.ApplicantRecord, res domain.PredictionResult) {
	if s.predictionRepo == nil {
		return
	}

	event := domain.PredictionEvent{
		RequestID:    TraceIDFromContext(ctx),
		ModelVersion: res.ModelVersion,
		Probability:  res.ProbabilityOfDefault,
		Score:        res.PresentationScore,
		Decision:     string(res.DecisionTier),
		Degraded:     res.ExplanationDegraded,
		Applicant:    datatypes.JSONMap(rec),
	}

	if err := s.predictionRepo.SaveEvent(ctx, event); err != nil {
		logger.Error("failed to save prediction event", err,
			"trace_id", TraceIDFromContext(ctx),
		)
	}
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
