// Package httpapi exposes the tracker service REST API.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"standup-tracker/internal/domain/entity"
)

// errorResponse is the wire shape of every error the API returns.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// respondError maps domain sentinel errors onto HTTP statuses.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, entity.ErrValidation):
		status = http.StatusBadRequest
		message = "Invalid request"
	case errors.Is(err, entity.ErrUnauthorized):
		status = http.StatusUnauthorized
		message = "Unauthorized"
	case errors.Is(err, entity.ErrNotFound):
		status = http.StatusNotFound
		message = "Not found"
	}

	respondJSON(w, status, errorResponse{Error: message, Details: err.Error()})
}

func respondBadRequest(w http.ResponseWriter, details string) {
	respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request", Details: details})
}
