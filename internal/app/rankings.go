package app

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/hverdal/marketpulse/internal/adapters/topicprovider"
)

// Commercial indices per state. These have no public live source and are
// maintained by the market research team.
var purchasingPowerByState = map[string]float64{
	"Goa": 85, "Delhi": 88, "Chandigarh": 82, "Kerala": 75, "Punjab": 72,
	"Maharashtra": 78, "Karnataka": 74, "Tamil Nadu": 76, "Gujarat": 73,
	"Haryana": 71, "West Bengal": 62, "Andhra Pradesh": 65, "Telangana": 68,
	"Uttar Pradesh": 45, "Bihar": 38, "Odisha": 42, "Jharkhand": 41,
}

var healthcareAccessByState = map[string]float64{
	"Delhi": 95, "Goa": 88, "Chandigarh": 90, "Kerala": 85, "Punjab": 78,
	"Maharashtra": 82, "Karnataka": 80, "Tamil Nadu": 83, "Gujarat": 79,
	"Haryana": 76, "West Bengal": 72, "Andhra Pradesh": 70, "Telangana": 75,
	"Uttar Pradesh": 58, "Bihar": 45, "Odisha": 52, "Jharkhand": 48,
}

// Adult population in millions, 2021 census projections.
var populationMillionsByState = map[string]float64{
	"Goa": 1.5, "Kerala": 35.0, "Punjab": 30.1, "Delhi": 32.9,
	"Maharashtra": 123.1, "Karnataka": 67.6, "Tamil Nadu": 77.8,
	"Gujarat": 70.1, "West Bengal": 97.7, "Haryana": 28.9,
	"Chandigarh": 1.2, "Andhra Pradesh": 53.9, "Telangana": 38.5,
	"Uttar Pradesh": 238.6, "Bihar": 128.5, "Odisha": 45.4, "Jharkhand": 38.6,
}

const (
	defaultPurchasingPower    = 50
	defaultHealthcareAccess   = 60
	defaultPopulationMillions = 20.0
)

// LaunchPhase is a static commercial recommendation: which markets to enter
// in which order, with the research team's timeline and investment estimates.
type LaunchPhase struct {
	Name                     string
	States                   []string
	TargetCities             []string
	EstimatedTimeline        string
	InvestmentRequiredCrores float64
	ProjectedROI             string
}

func LaunchRecommendations() []LaunchPhase {
	return []LaunchPhase{
		{
			Name:                     "Phase 1 Launch Markets",
			States:                   []string{"Goa", "Kerala", "Delhi", "Maharashtra", "Karnataka"},
			TargetCities:             []string{"Mumbai", "Delhi", "Bengaluru", "Chennai", "Hyderabad"},
			EstimatedTimeline:        "6-12 months",
			InvestmentRequiredCrores: 180,
			ProjectedROI:             "2.8x in 3 years",
		},
		{
			Name:                     "Phase 2 Expansion",
			States:                   []string{"Tamil Nadu", "Gujarat", "Punjab", "Haryana"},
			TargetCities:             []string{"Pune", "Ahmedabad", "Jaipur", "Lucknow", "Kochi"},
			EstimatedTimeline:        "12-24 months",
			InvestmentRequiredCrores: 240,
			ProjectedROI:             "2.1x in 4 years",
		},
	}
}

type StateMarketPotential struct {
	State                         string
	MarketScore                   float64
	ObesityPrevalence             float64
	DiabetesPrevalence            float64
	PurchasingPowerIndex          float64
	HealthcareAccessScore         float64
	AddressablePopulationMillions float64
}

// GetMarketRankings scores every tracked state for commercial potential,
// highest score first.
type GetMarketRankings func(ctx context.Context) ([]StateMarketPotential, error)

func BuildGetMarketRankings(getTopic GetTopic) GetMarketRankings {
	return func(ctx context.Context) ([]StateMarketPotential, error) {
		record, err := getTopic(ctx, topicprovider.GeographicSegmentationKey)
		if err != nil {
			// NOTE: GetTopic implementations handle their own error reporting
			return nil, fmt.Errorf("failed to resolve geographic segmentation: %w", err)
		}

		stateRanking, ok := record.Record.Section("state_ranking")
		if !ok {
			return nil, fmt.Errorf("geographic segmentation record is missing state ranking")
		}

		rankings := make([]StateMarketPotential, 0, len(stateRanking))
		for state, fields := range stateRanking {
			purchasingPower := indexOrDefault(purchasingPowerByState, state, defaultPurchasingPower)
			healthcareAccess := indexOrDefault(healthcareAccessByState, state, defaultHealthcareAccess)
			population := indexOrDefault(populationMillionsByState, state, defaultPopulationMillions)

			obesity := fields["obesity_prevalence"]
			diabetes := fields["diabetes_prevalence"]
			developmentIndex := fields["development_index"]

			marketScore := obesity*0.25 +
				diabetes*0.25 +
				developmentIndex*30*0.3 +
				purchasingPower*0.15 +
				healthcareAccess*0.05

			addressable := population * math.Max(obesity, diabetes*0.7) / 100

			rankings = append(rankings, StateMarketPotential{
				State:                         state,
				MarketScore:                   math.Round(marketScore*10) / 10,
				ObesityPrevalence:             obesity,
				DiabetesPrevalence:            diabetes,
				PurchasingPowerIndex:          purchasingPower,
				HealthcareAccessScore:         healthcareAccess,
				AddressablePopulationMillions: math.Round(addressable*100) / 100,
			})
		}

		sort.Slice(rankings, func(i, j int) bool {
			if rankings[i].MarketScore != rankings[j].MarketScore {
				return rankings[i].MarketScore > rankings[j].MarketScore
			}
			return rankings[i].State < rankings[j].State
		})

		return rankings, nil
	}
}

func indexOrDefault(indices map[string]float64, state string, fallback float64) float64 {
	value, found := indices[state]
	if !found {
		return fallback
	}
	return value
}
