package topicprovider

import (
	"time"

	"github.com/hverdal/marketpulse/internal/domain"
)

// Comorbidity correlations come from published cohort studies rather than a
// scrapeable page, so the topic is schema-only. The long TTL reflects how
// rarely the underlying studies change.
var comorbidityAnalysisTopic = Topic{
	Key: ComorbidityAnalysisKey,
	TTL: 120 * time.Minute,
	Sources: map[string]string{
		"icmr_indiab_cohort": "https://ijmr.org.in/high-prevalence-of-metabolic-obesity-in-india-the-icmr-indiab-national-study-icmr-indiab-23/",
		"lancet_comorbidity": "https://www.thelancet.com/journals/lancet/article/PIIS0140-6736(23)01301-6/fulltext",
	},
	Schema: domain.Schema{
		{Path: "obesity_diabetes_correlation.correlation_coefficient", Scalar: 0.76},
		{Path: "obesity_diabetes_correlation.risk_multiplier", Scalar: 3.2},
		{Path: "obesity_diabetes_correlation.prevalence_by_bmi", Compound: map[string]float64{
			"BMI 25-29.9": 18.5,
			"BMI 30-34.9": 42.8,
			"BMI 35+":     68.2,
		}},
		{Path: "obesity_hypertension_correlation.correlation_coefficient", Scalar: 0.68},
		{Path: "obesity_hypertension_correlation.risk_multiplier", Scalar: 2.8},
		{Path: "obesity_hypertension_correlation.prevalence_by_bmi", Compound: map[string]float64{
			"BMI 25-29.9": 24.8,
			"BMI 30-34.9": 48.6,
			"BMI 35+":     72.4,
		}},
		{Path: "obesity_cvd_correlation", Compound: map[string]float64{
			"correlation_coefficient":   0.58,
			"risk_increase_percentage":  85,
			"mortality_risk_multiplier": 2.4,
		}},
		{Path: "high_risk_demographics.urban_males_40_60", Compound: map[string]float64{
			"population_millions": 15.2,
			"comorbidity_overlap": 18.5,
			"treatment_readiness": 72,
		}},
		{Path: "high_risk_demographics.urban_females_30_50", Compound: map[string]float64{
			"population_millions": 18.8,
			"comorbidity_overlap": 16.8,
			"treatment_readiness": 68,
		}},
		{Path: "high_risk_demographics.healthcare_professionals", Compound: map[string]float64{
			"population_millions": 2.1,
			"comorbidity_overlap": 22.4,
			"treatment_readiness": 89,
		}},
	},
}
