package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"standup-tracker/internal/domain/service"
)

// AuthHandlers holds the OAuth sign-in endpoints.
type AuthHandlers struct {
	svc service.AuthService
}

// NewAuthHandlers creates the auth handler set.
func NewAuthHandlers(svc service.AuthService) *AuthHandlers {
	return &AuthHandlers{svc: svc}
}

type callbackRequest struct {
	Code string `json:"code"`
}

type callbackResponse struct {
	AccessToken  string  `json:"access_token"`
	SessionToken string  `json:"session_token"`
	User         userDTO `json:"user"`
}

// Callback exchanges a GitHub OAuth authorization code for tokens.
func (h *AuthHandlers) Callback(w http.ResponseWriter, r *http.Request) {
	var req callbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid JSON body")
		return
	}

	result, err := h.svc.ExchangeCode(r.Context(), req.Code)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, callbackResponse{
		AccessToken:  result.AccessToken,
		SessionToken: result.SessionToken,
		User:         toUserDTO(result.User),
	})
}

// Logout revokes the session behind the bearer token.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		respondJSON(w, http.StatusUnauthorized,
			errorResponse{Error: "Unauthorized", Details: "missing bearer token"})
		return
	}

	if err := h.svc.Logout(r.Context(), token); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
