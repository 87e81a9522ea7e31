package ports

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	e "github.com/hverdal/marketpulse/internal/errors"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Cause   string `json:"cause"`
}

func writeErrorResponse(w http.ResponseWriter, responseError error) {
	w.Header().Set("Content-Type", "application/json")

	errorBytes, err := json.Marshal(errorResponse{
		Success: false,
		Cause:   responseError.Error(),
	})
	if err != nil {
		log.Println("Error marshalling error response: %w", err)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"cause":"Internal server error (marketpulse)"}`))
		return
	}

	// Unknown error: default to 500
	statusCode := http.StatusInternalServerError

	if errors.Is(responseError, e.APIServerError) {
		statusCode = http.StatusInternalServerError
	} else if errors.Is(responseError, e.UnknownTopicError) {
		statusCode = http.StatusNotFound
	} else if errors.Is(responseError, e.SnapshotNotFoundError) {
		statusCode = http.StatusNotFound
	} else if errors.Is(responseError, e.APIClientError) {
		statusCode = http.StatusBadRequest
	} else if errors.Is(responseError, e.RatelimitExceededError) {
		statusCode = http.StatusTooManyRequests
	}

	w.WriteHeader(statusCode)
	w.Write(errorBytes)
}
