package scoring

import (
	"math"

	"creditrisk/domain"
)

type FeatureKind string

const (
	FeatureNumeric     FeatureKind = "numeric"
	FeatureCategorical FeatureKind = "categorical"
	FeatureDerived     FeatureKind = "derived"
)

// FeatureSpec describes one entry of the feature schema: its position in the
// vector is its index in FeatureSchema.Features, its imputation statistic was
// frozen at training time.
type FeatureSpec struct {
	Name string      `json:"name"`
	Kind FeatureKind `json:"kind"`

	// Impute is the training-time fallback (median for numerics, the
	// computed value of the imputation inputs for derived features).
	Impute float64 `json:"impute"`

	// Categorical features carry the frozen category->code map and the
	// training-time mode used when a category is missing or unknown.
	Categories     map[string]float64 `json:"categories,omitempty"`
	ImputeCategory string             `json:"impute_category,omitempty"`

	// AnomalyValue marks a sentinel raw value that is treated as missing,
	// e.g. 365243 in days_employed.
	AnomalyValue *float64 `json:"anomaly_value,omitempty"`
}

type FeatureSchema struct {
	Features []FeatureSpec `json:"features"`
}

// Validate checks the schema's own invariants. A failure here means the
// artifact is corrupted, not that a request was malformed.
func (s FeatureSchema) Validate() error {
	if len(s.Features) == 0 {
		return &SchemaMismatchError{Reason: "schema has no features"}
	}

	seen := make(map[string]struct{}, len(s.Features))
	for _, spec := range s.Features {
		if spec.Name == "" {
			return &SchemaMismatchError{Reason: "feature with empty name"}
		}
		if _, dup := seen[spec.Name]; dup {
			return &SchemaMismatchError{Feature: spec.Name, Reason: "duplicate feature name"}
		}
		seen[spec.Name] = struct{}{}

		switch spec.Kind {
		case FeatureNumeric:
			if !isFinite(spec.Impute) {
				return &SchemaMismatchError{Feature: spec.Name, Reason: "non-finite imputation value"}
			}
		case FeatureCategorical:
			if len(spec.Categories) == 0 {
				return &SchemaMismatchError{Feature: spec.Name, Reason: "categorical feature without categories"}
			}
			if _, ok := spec.Categories[spec.ImputeCategory]; !ok {
				return &SchemaMismatchError{Feature: spec.Name, Reason: "imputation category not in category map"}
			}
		case FeatureDerived:
			if _, ok := derivedFormulas[spec.Name]; !ok {
				return &SchemaMismatchError{Feature: spec.Name, Reason: "unknown derived feature"}
			}
			if !isFinite(spec.Impute) {
				return &SchemaMismatchError{Feature: spec.Name, Reason: "non-finite imputation value"}
			}
		default:
			return &SchemaMismatchError{Feature: spec.Name, Reason: "unknown feature kind " + string(spec.Kind)}
		}
	}

	return nil
}

// imputeValue returns the frozen fallback for this feature.
func (spec FeatureSpec) imputeValue() float64 {
	if spec.Kind == FeatureCategorical {
		return spec.Categories[spec.ImputeCategory]
	}
	return spec.Impute
}

// resolve looks the feature up in the raw record, returning ok=false whenever
// the frozen imputation value must be used instead.
func (spec FeatureSpec) resolve(rec domain.ApplicantRecord) (float64, bool) {
	switch spec.Kind {
	case FeatureNumeric:
		v, ok := rawNumber(rec, spec.Name)
		if !ok {
			return 0, false
		}
		if spec.AnomalyValue != nil && v == *spec.AnomalyValue {
			return 0, false
		}
		return v, true

	case FeatureCategorical:
		raw, ok := rec[spec.Name]
		if !ok {
			return 0, false
		}
		label, ok := raw.(string)
		if !ok {
			return 0, false
		}
		code, ok := spec.Categories[label]
		return code, ok

	case FeatureDerived:
		formula := derivedFormulas[spec.Name]
		v, ok := formula(rec)
		if !ok || !isFinite(v) {
			return 0, false
		}
		return v, true
	}

	return 0, false
}

// rawNumber converts a raw record value to float64. Strings holding numbers
// are accepted since upstream adapters are not always type-strict.
func rawNumber(rec domain.ApplicantRecord, field string) (float64, bool) {
	raw, ok := rec[field]
	if !ok || raw == nil {
		return 0, false
	}

	switch v := raw.(type) {
	case float64:
		if !isFinite(v) {
			return 0, false
		}
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		return parseNumber(v)
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	}

	return 0, false
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
