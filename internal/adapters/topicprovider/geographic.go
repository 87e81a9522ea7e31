package topicprovider

import (
	"fmt"
	"math"
	"time"

	"github.com/hverdal/marketpulse/internal/domain"
)

// National adult obesity prevalence baseline (WHO). State prevalence is
// derived from it by the state's economic development multiplier.
const nationalBaseObesityRate = 3.9

// Diabetes prevalence tracks obesity prevalence with a fixed epidemiological
// correlation factor at the state level.
const diabetesCorrelationFactor = 2.8

type stateProfile struct {
	Multiplier       float64
	DevelopmentIndex float64
}

var stateProfiles = map[string]stateProfile{
	"Goa":            {Multiplier: 3.2, DevelopmentIndex: 0.85},
	"Kerala":         {Multiplier: 2.8, DevelopmentIndex: 0.82},
	"Punjab":         {Multiplier: 2.5, DevelopmentIndex: 0.75},
	"Delhi":          {Multiplier: 2.3, DevelopmentIndex: 0.88},
	"Chandigarh":     {Multiplier: 2.4, DevelopmentIndex: 0.87},
	"Tamil Nadu":     {Multiplier: 2.0, DevelopmentIndex: 0.78},
	"Maharashtra":    {Multiplier: 1.8, DevelopmentIndex: 0.80},
	"Karnataka":      {Multiplier: 1.7, DevelopmentIndex: 0.76},
	"Gujarat":        {Multiplier: 1.6, DevelopmentIndex: 0.74},
	"West Bengal":    {Multiplier: 1.4, DevelopmentIndex: 0.65},
	"Haryana":        {Multiplier: 2.1, DevelopmentIndex: 0.73},
	"Andhra Pradesh": {Multiplier: 1.5, DevelopmentIndex: 0.68},
	"Telangana":      {Multiplier: 1.6, DevelopmentIndex: 0.72},
	"Uttar Pradesh":  {Multiplier: 0.9, DevelopmentIndex: 0.58},
	"Bihar":          {Multiplier: 0.7, DevelopmentIndex: 0.52},
	"Odisha":         {Multiplier: 0.8, DevelopmentIndex: 0.55},
	"Jharkhand":      {Multiplier: 0.8, DevelopmentIndex: 0.54},
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}

// StateObesityRate derives a state's obesity prevalence from the national
// baseline. The bool reports whether the state is tracked.
func StateObesityRate(state string) (float64, bool) {
	profile, found := stateProfiles[state]
	if !found {
		return 0, false
	}
	return round1(nationalBaseObesityRate * profile.Multiplier), true
}

// StateDevelopmentIndex reports the tracked development index for a state.
func StateDevelopmentIndex(state string) (float64, bool) {
	profile, found := stateProfiles[state]
	if !found {
		return 0, false
	}
	return profile.DevelopmentIndex, true
}

// TrackedStates lists the states with geographic coverage.
func TrackedStates() []string {
	states := make([]string, 0, len(stateProfiles))
	for state := range stateProfiles {
		states = append(states, state)
	}
	return states
}

func stateRankingFields() domain.Schema {
	states := TrackedStates()
	schema := make(domain.Schema, 0, len(states))
	for _, state := range states {
		obesityRate, _ := StateObesityRate(state)
		developmentIndex, _ := StateDevelopmentIndex(state)
		diabetesRate := round1(obesityRate * diabetesCorrelationFactor)
		schema = append(schema, domain.FieldDefault{
			Path: "state_ranking." + state,
			Compound: map[string]float64{
				"obesity_prevalence":     obesityRate,
				"diabetes_prevalence":    diabetesRate,
				"development_index":      developmentIndex,
				"market_potential_score": round1(obesityRate*0.4 + diabetesRate*0.3 + developmentIndex*30),
			},
		})
	}
	return schema
}

type districtProfile struct {
	ObesityRate  float64
	DiabetesRate float64
	UrbanPct     float64
}

var topDistricts = map[string]districtProfile{
	"South Goa":       {14.2, 28.5, 78},
	"Ernakulam":       {12.8, 26.2, 68},
	"Ludhiana":        {11.9, 24.8, 72},
	"New Delhi":       {11.4, 24.1, 95},
	"Chennai":         {10.8, 22.9, 85},
	"Mumbai Suburban": {10.2, 21.8, 92},
	"Bengaluru Urban": {9.8, 20.5, 88},
	"Hyderabad":       {9.5, 19.8, 89},
	"Pune":            {9.2, 19.2, 78},
	"Gurgaon":         {8.9, 18.7, 82},
}

var bottomDistricts = map[string]districtProfile{
	"Sheohar":    {1.2, 3.8, 8},
	"Araria":     {1.4, 4.2, 12},
	"Kishanganj": {1.6, 4.5, 15},
	"Darbhanga":  {1.8, 5.1, 18},
	"Saharsa":    {1.9, 5.4, 16},
	"Mayurbhanj": {2.1, 5.8, 14},
	"Malkangiri": {2.2, 6.0, 11},
	"Dumka":      {2.4, 6.5, 19},
	"Pakur":      {2.5, 6.8, 17},
	"Balrampur":  {2.6, 7.2, 22},
}

func districtFields(group string, districts map[string]districtProfile) domain.Schema {
	schema := make(domain.Schema, 0, len(districts))
	for district, profile := range districts {
		schema = append(schema, domain.FieldDefault{
			Path: fmt.Sprintf("district_data.%s.%s", group, district),
			Compound: map[string]float64{
				"obesity_rate":  profile.ObesityRate,
				"diabetes_rate": profile.DiabetesRate,
				"urban_pct":     profile.UrbanPct,
			},
		})
	}
	return schema
}

func geographicSchema() domain.Schema {
	schema := stateRankingFields()
	schema = append(schema, districtFields("top_10", topDistricts)...)
	schema = append(schema, districtFields("bottom_10", bottomDistricts)...)
	schema = append(schema,
		domain.FieldDefault{Path: "urban_rural_comparison.urban", Compound: map[string]float64{
			"obesity_prevalence":                 6.8,
			"diabetes_prevalence":                15.2,
			"lifestyle_intervention_adoption":    45.2,
			"pharmacological_treatment_adoption": 12.8,
		}},
		domain.FieldDefault{Path: "urban_rural_comparison.rural", Compound: map[string]float64{
			"obesity_prevalence":                 2.1,
			"diabetes_prevalence":                8.9,
			"lifestyle_intervention_adoption":    18.5,
			"pharmacological_treatment_adoption": 3.2,
		}},
		domain.FieldDefault{Path: "tier_city_analysis.tier_1", Compound: map[string]float64{
			"avg_obesity_prevalence":       9.8,
			"avg_diabetes_prevalence":      20.5,
			"treatment_adoption_rate":      18.5,
			"market_penetration_potential": 85,
		}},
		domain.FieldDefault{Path: "tier_city_analysis.tier_2", Compound: map[string]float64{
			"avg_obesity_prevalence":       6.2,
			"avg_diabetes_prevalence":      14.8,
			"treatment_adoption_rate":      12.3,
			"market_penetration_potential": 58,
		}},
		domain.FieldDefault{Path: "tier_city_analysis.tier_3", Compound: map[string]float64{
			"avg_obesity_prevalence":       3.8,
			"avg_diabetes_prevalence":      9.7,
			"treatment_adoption_rate":      7.2,
			"market_penetration_potential": 28,
		}},
	)
	return schema
}

// Geographic segmentation derives entirely from the state development model;
// there is nothing to extract from a live page, so the topic carries no
// patterns and refresh always resolves from the schema.
var geographicSegmentationTopic = Topic{
	Key: GeographicSegmentationKey,
	TTL: 90 * time.Minute,
	Sources: map[string]string{
		"nfhs5_state_factsheets": "https://main.mohfw.gov.in/sites/default/files/NFHS-5_Phase-II_0.pdf",
		"census_urbanization":    "https://censusindia.gov.in/census.website/data/census-tables",
	},
	Schema: geographicSchema(),
}
