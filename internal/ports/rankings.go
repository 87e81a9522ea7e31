package ports

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hverdal/marketpulse/internal/app"
	"github.com/hverdal/marketpulse/internal/logging"
	"github.com/hverdal/marketpulse/internal/reporting"
)

type stateMarketPotentialResponse struct {
	State                         string  `json:"state"`
	MarketScore                   float64 `json:"market_score"`
	ObesityPrevalence             float64 `json:"obesity_prevalence"`
	DiabetesPrevalence            float64 `json:"diabetes_prevalence"`
	PurchasingPowerIndex          float64 `json:"purchasing_power_index"`
	HealthcareAccessScore         float64 `json:"healthcare_access_score"`
	AddressablePopulationMillions float64 `json:"estimated_addressable_population_millions"`
}

type launchPhaseResponse struct {
	Name                     string   `json:"name"`
	States                   []string `json:"states"`
	TargetCities             []string `json:"target_cities"`
	EstimatedTimeline        string   `json:"estimated_timeline"`
	InvestmentRequiredCrores float64  `json:"investment_required_crores"`
	ProjectedROI             string   `json:"projected_roi"`
}

type rankingsResponse struct {
	Success      bool                           `json:"success"`
	Rankings     []stateMarketPotentialResponse `json:"rankings"`
	LaunchPhases []launchPhaseResponse          `json:"launch_phases"`
}

func MakeGetRankingsHandler(
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
	getMarketRankings app.GetMarketRankings,
) http.HandlerFunc {
	middleware := ComposeMiddlewares(
		buildMetricsMiddleware("get-rankings"),
		logging.NewRequestLoggerMiddleware(rootLogger),
		sentryMiddleware,
		newIPRateLimitMiddleware(4, 240),
	)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		rankings, err := getMarketRankings(ctx)
		if err != nil {
			logging.FromContext(ctx).ErrorContext(ctx, "Failed to get market rankings", "error", err)
			writeErrorResponse(w, err)
			return
		}

		phases := app.LaunchRecommendations()

		response := rankingsResponse{
			Success:      true,
			Rankings:     make([]stateMarketPotentialResponse, 0, len(rankings)),
			LaunchPhases: make([]launchPhaseResponse, 0, len(phases)),
		}
		for _, phase := range phases {
			response.LaunchPhases = append(response.LaunchPhases, launchPhaseResponse{
				Name:                     phase.Name,
				States:                   phase.States,
				TargetCities:             phase.TargetCities,
				EstimatedTimeline:        phase.EstimatedTimeline,
				InvestmentRequiredCrores: phase.InvestmentRequiredCrores,
				ProjectedROI:             phase.ProjectedROI,
			})
		}
		for _, ranking := range rankings {
			response.Rankings = append(response.Rankings, stateMarketPotentialResponse{
				State:                         ranking.State,
				MarketScore:                   ranking.MarketScore,
				ObesityPrevalence:             ranking.ObesityPrevalence,
				DiabetesPrevalence:            ranking.DiabetesPrevalence,
				PurchasingPowerIndex:          ranking.PurchasingPowerIndex,
				HealthcareAccessScore:         ranking.HealthcareAccessScore,
				AddressablePopulationMillions: ranking.AddressablePopulationMillions,
			})
		}

		responseData, err := json.Marshal(response)
		if err != nil {
			logging.FromContext(ctx).ErrorContext(ctx, "Failed to marshal rankings response", "error", err)
			reporting.Report(ctx, fmt.Errorf("failed to marshal rankings response: %w", err))

			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(responseData)
	}

	return middleware(handler)
}
