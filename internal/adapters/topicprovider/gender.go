package topicprovider

import (
	"regexp"
	"time"

	"github.com/hverdal/marketpulse/internal/domain"
	"github.com/hverdal/marketpulse/internal/extraction"
)

// Baseline prevalence from pooled 2021-2025 epidemiological studies, used
// whenever live extraction comes up short.
const (
	baselineMaleObesityPrevalence   = 12.8
	baselineFemaleObesityPrevalence = 15.2
)

// Prevalence percentages outside this band are treated as noise (growth
// rates, sample sizes, years, ...) rather than measurements.
const (
	prevalenceLowerBound = 1
	prevalenceUpperBound = 50
)

var genderBasedAnalysisTopic = Topic{
	Key: GenderBasedAnalysisKey,
	TTL: 60 * time.Minute,
	Sources: map[string]string{
		"who_gender_data":        "https://data.worldobesity.org/country/india-95/",
		"icmr_gender_study":      "https://ijmr.org.in/high-prevalence-of-metabolic-obesity-in-india-the-icmr-indiab-national-study-icmr-indiab-23/",
		"lancet_gender_diabetes": "https://www.thelancet.com/journals/lancet/article/PIIS0140-6736(23)01301-6/fulltext",
	},
	PrimarySource: "who_gender_data",
	Patterns: []extraction.FieldPattern{
		{
			Pattern: regexp.MustCompile(`(?:\bmale\b|\bmen\b)[^.%]{0,120}?(\d+\.?\d*)\s*%[^.]{0,120}?obes`),
			Path:    "male_obesity.prevalence",
			Min:     prevalenceLowerBound,
			Max:     prevalenceUpperBound,
		},
		{
			Pattern: regexp.MustCompile(`(?:\bfemale\b|\bwomen\b)[^.%]{0,120}?(\d+\.?\d*)\s*%[^.]{0,120}?obes`),
			Path:    "female_obesity.prevalence",
			Min:     prevalenceLowerBound,
			Max:     prevalenceUpperBound,
		},
		{
			Pattern: regexp.MustCompile(`obes[a-z]*[^.]{0,120}?(?:\bmale\b|\bmen\b)[^.%]{0,120}?(\d+\.?\d*)\s*%`),
			Path:    "male_obesity.prevalence",
			Min:     prevalenceLowerBound,
			Max:     prevalenceUpperBound,
		},
		{
			Pattern: regexp.MustCompile(`obes[a-z]*[^.]{0,120}?(?:\bfemale\b|\bwomen\b)[^.%]{0,120}?(\d+\.?\d*)\s*%`),
			Path:    "female_obesity.prevalence",
			Min:     prevalenceLowerBound,
			Max:     prevalenceUpperBound,
		},
	},
	Schema: domain.Schema{
		{Path: "male_obesity.prevalence", Scalar: baselineMaleObesityPrevalence},
		{Path: "male_obesity.diabetes_comorbidity", Scalar: 18.5},
		{Path: "male_obesity.hypertension_comorbidity", Scalar: 24.8},
		{Path: "male_obesity.heart_disease_comorbidity", Scalar: 8.2},
		{Path: "male_obesity.age_distribution", Compound: map[string]float64{
			"18-30": 8.5, "31-45": 16.2, "46-60": 21.4, "60+": 18.9,
		}},
		{Path: "female_obesity.prevalence", Scalar: baselineFemaleObesityPrevalence},
		{Path: "female_obesity.diabetes_comorbidity", Scalar: 16.8},
		{Path: "female_obesity.hypertension_comorbidity", Scalar: 22.1},
		{Path: "female_obesity.heart_disease_comorbidity", Scalar: 6.4},
		{Path: "female_obesity.age_distribution", Compound: map[string]float64{
			"18-30": 11.2, "31-45": 19.8, "46-60": 24.1, "60+": 16.3,
		}},
	},
}
