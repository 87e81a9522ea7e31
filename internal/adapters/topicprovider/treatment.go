package topicprovider

import (
	"time"

	"github.com/hverdal/marketpulse/internal/domain"
)

var treatmentPatternsTopic = Topic{
	Key: TreatmentPatternsKey,
	TTL: 90 * time.Minute,
	Sources: map[string]string{
		"physician_survey_panel": "https://www.ima-india.org/ima/",
		"pharmatrac_adoption":    "https://www.aiocd.net/",
	},
	Schema: domain.Schema{
		{Path: "lifestyle_interventions.diet_modification", Compound: map[string]float64{
			"urban_adoption":           45.8,
			"rural_adoption":           18.2,
			"effectiveness_perception": 68.5,
			"long_term_adherence":      28.4,
		}},
		{Path: "lifestyle_interventions.exercise_programs", Compound: map[string]float64{
			"urban_adoption":           38.2,
			"rural_adoption":           12.8,
			"effectiveness_perception": 72.1,
			"long_term_adherence":      22.6,
		}},
		{Path: "lifestyle_interventions.behavioral_counseling", Compound: map[string]float64{
			"urban_adoption":           22.5,
			"rural_adoption":           6.4,
			"effectiveness_perception": 58.9,
			"long_term_adherence":      35.2,
		}},
		{Path: "pharmacological_treatments.glp1_agonists", Compound: map[string]float64{
			"current_adoption":    4.2,
			"urban_penetration":   8.5,
			"rural_penetration":   0.8,
			"physician_awareness": 76.5,
			"patient_acceptance":  58.2,
			"cost_barrier_impact": 68.9,
			"market_growth_rate":  25.8,
		}},
		{Path: "pharmacological_treatments.traditional_diabetes_drugs", Compound: map[string]float64{
			"current_adoption":    42.8,
			"urban_penetration":   65.2,
			"rural_penetration":   28.4,
			"physician_awareness": 95.8,
			"patient_acceptance":  78.5,
			"cost_barrier_impact": 35.2,
		}},
		{Path: "surgical_interventions.bariatric_surgery", Compound: map[string]float64{
			"annual_procedures":       15000,
			"urban_concentration":     98.5,
			"success_rate_perception": 85.2,
			"accessibility_score":     15.8,
		}},
		{Path: "urban_rural_differences.treatment_access", Compound: map[string]float64{
			"urban_score":    78.5,
			"rural_score":    32.8,
			"gap_percentage": 58.2,
		}},
		{Path: "urban_rural_differences.specialist_availability", Compound: map[string]float64{
			"urban_per_100k": 8.5,
			"rural_per_100k": 1.2,
			"gap_ratio":      7.1,
		}},
		{Path: "urban_rural_differences.cost_sensitivity", Compound: map[string]float64{
			"urban_willingness_to_pay":    68.2,
			"rural_willingness_to_pay":    28.5,
			"price_elasticity_difference": 2.4,
		}},
	},
}
