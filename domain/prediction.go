package domain

import (
	"time"

	"gorm.io/datatypes"
)

type DecisionTier string

const (
	TierApprove      DecisionTier = "APPROVE"
	TierReject       DecisionTier = "REJECT"
	TierManualReview DecisionTier = "MANUAL_REVIEW"
)

const (
	DirectionIncreasesRisk = "INCREASES_RISK"
	DirectionDecreasesRisk = "DECREASES_RISK"
)

// AttributionItem is one entry of the per-request explanation. Contribution
// is in log-odds space; across all features it sums to the difference between
// the instance margin and the model baseline.
type AttributionItem struct {
	FeatureName   string  `json:"feature"`
	ObservedValue float64 `json:"observed_value"`
	Contribution  float64 `json:"contribution"`
	Direction     string  `json:"direction"`
}

type PredictionResult struct {
	ProbabilityOfDefault float64           `json:"probability_of_default"`
	PresentationScore    float64           `json:"presentation_score"`
	DecisionTier         DecisionTier      `json:"decision_tier"`
	Attributions         []AttributionItem `json:"attributions"`
	ExplanationDegraded  bool              `json:"explanation_degraded"`
	ModelVersion         int               `json:"model_version"`
}

// PredictionEvent is the audit-log row persisted (best effort) for every
// served prediction.
type PredictionEvent struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	RequestID    string            `gorm:"column:request_id" json:"request_id"`
	ModelVersion int               `gorm:"column:model_version;not null" json:"model_version"`
	Probability  float64           `gorm:"column:probability;not null" json:"probability"`
	Score        float64           `gorm:"column:score;not null" json:"score"`
	Decision     string            `gorm:"column:decision;not null" json:"decision"`
	Degraded     bool              `gorm:"column:degraded" json:"degraded"`
	Applicant    datatypes.JSONMap `gorm:"column:applicant;type:jsonb" json:"applicant"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (PredictionEvent) TableName() string {
	return "prediction_events"
}
