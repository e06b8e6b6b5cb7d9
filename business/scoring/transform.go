package scoring

import (
	"math"
	"strconv"

	"creditrisk/domain"
)

// employedAnomalyDays is the well-known placeholder the upstream data uses
// for "employment duration unknown" in days_employed.
const employedAnomalyDays = 365243.0

const daysPerYear = 365.0

// derivedFormulas are the financial-ratio features frozen at training time.
// They are computed from raw applicant fields, never from other schema
// entries; any missing operand or non-finite result falls back to the
// feature's imputation value.
var derivedFormulas = map[string]func(domain.ApplicantRecord) (float64, bool){
	// loan size relative to income
	"credit_income_percent": func(rec domain.ApplicantRecord) (float64, bool) {
		return ratio(rec, "amt_credit", "amt_income_total")
	},
	// debt service ratio: annuity relative to income
	"annuity_income_percent": func(rec domain.ApplicantRecord) (float64, bool) {
		return ratio(rec, "amt_annuity", "amt_income_total")
	},
	// rough number of installments
	"credit_term": func(rec domain.ApplicantRecord) (float64, bool) {
		return ratio(rec, "amt_credit", "amt_annuity")
	},
	// did they borrow more than the item value?
	"goods_loan_ratio": func(rec domain.ApplicantRecord) (float64, bool) {
		return ratio(rec, "amt_goods_price", "amt_credit")
	},
	// age of the identity document in years
	"id_age_years": func(rec domain.ApplicantRecord) (float64, bool) {
		days, ok := rawNumber(rec, "days_id_publish")
		if !ok {
			return 0, false
		}
		return math.Abs(days) / daysPerYear, true
	},
	// a fresh ID on an older applicant is more suspicious than on a young one
	"id_to_age_ratio": func(rec domain.ApplicantRecord) (float64, bool) {
		idDays, ok := rawNumber(rec, "days_id_publish")
		if !ok {
			return 0, false
		}
		birthDays, ok := rawNumber(rec, "days_birth")
		if !ok || birthDays == 0 {
			return 0, false
		}
		return math.Abs(idDays) / math.Abs(birthDays), true
	},
	"days_employed_anom": func(rec domain.ApplicantRecord) (float64, bool) {
		days, ok := rawNumber(rec, "days_employed")
		if !ok {
			return 0, true
		}
		if days == employedAnomalyDays {
			return 1, true
		}
		return 0, true
	},
}

// Transform maps a raw applicant record onto the artifact's fixed-order
// feature vector. The returned slice always has length len(schema.Features)
// in schema order; the second return value lists the features that fell back
// to their frozen imputation value (observability, not failure).
//
// The only error is a SchemaMismatchError for a malformed schema.
func Transform(rec domain.ApplicantRecord, schema FeatureSchema) ([]float64, []string, error) {
	if err := schema.Validate(); err != nil {
		return nil, nil, err
	}

	vec := make([]float64, len(schema.Features))
	var imputed []string

	for i, spec := range schema.Features {
		v, ok := spec.resolve(rec)
		if !ok {
			v = spec.imputeValue()
			imputed = append(imputed, spec.Name)
		}
		vec[i] = v
	}

	return vec, imputed, nil
}

func ratio(rec domain.ApplicantRecord, numerator, denominator string) (float64, bool) {
	n, ok := rawNumber(rec, numerator)
	if !ok {
		return 0, false
	}
	d, ok := rawNumber(rec, denominator)
	if !ok || d == 0 {
		return 0, false
	}
	return n / d, true
}

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(v) {
		return 0, false
	}
	return v, true
}
