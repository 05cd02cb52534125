package httpapi

import (
	"encoding/json"
	"net/http"

	"standup-tracker/internal/domain/service"
)

// UserHandlers holds the account settings endpoints.
type UserHandlers struct {
	svc service.AuthService
}

// NewUserHandlers creates the user handler set.
func NewUserHandlers(svc service.AuthService) *UserHandlers {
	return &UserHandlers{svc: svc}
}

type updateUserRequest struct {
	RemindersEnabled *bool `json:"remindersEnabled"`
}

// Me returns the signed-in user's account.
func (h *UserHandlers) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	user, err := h.svc.Profile(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toUserDTO(user))
}

// UpdateMe changes the signed-in user's settings. Only the reminder flag
// is client-writable; the rest of the account mirrors GitHub.
func (h *UserHandlers) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid JSON body")
		return
	}
	if req.RemindersEnabled == nil {
		respondBadRequest(w, "remindersEnabled is required")
		return
	}

	user, err := h.svc.UpdateReminders(r.Context(), userID, *req.RemindersEnabled)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toUserDTO(user))
}
