package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"standup-tracker/internal/domain/entity"
	"standup-tracker/internal/domain/service"
)

// StandupHandlers holds the standup CRUD endpoints.
type StandupHandlers struct {
	svc service.StandupService
}

// NewStandupHandlers creates the standup handler set.
func NewStandupHandlers(svc service.StandupService) *StandupHandlers {
	return &StandupHandlers{svc: svc}
}

// requestUserID resolves the acting user. The userId query parameter is
// accepted for compatibility but must match the authenticated session.
func requestUserID(r *http.Request) (string, error) {
	session := sessionFrom(r.Context())
	if session == nil {
		return "", fmt.Errorf("%w: no session", entity.ErrUnauthorized)
	}
	if q := r.URL.Query().Get("userId"); q != "" && q != session.UserID {
		return "", fmt.Errorf("%w: userId does not match session", entity.ErrUnauthorized)
	}
	return session.UserID, nil
}

func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

type createStandupRequest struct {
	RepoFullName  string          `json:"repoFullName"`
	Date          string          `json:"date"`
	WorkCompleted string          `json:"workCompleted"`
	WorkPlanned   string          `json:"workPlanned"`
	Blockers      string          `json:"blockers"`
	TaskIDs       []string        `json:"taskIds"`
	Commits       []entity.Commit `json:"commits"`
}

type updateStandupRequest struct {
	Date          *string  `json:"date"`
	WorkCompleted *string  `json:"workCompleted"`
	WorkPlanned   *string  `json:"workPlanned"`
	Blockers      *string  `json:"blockers"`
	TaskIDs       []string `json:"taskIds"`
}

// List returns all entries for the signed-in user, newest first.
func (h *StandupHandlers) List(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	entries, err := h.svc.ListStandups(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toStandupDTOs(entries))
}

// Get returns a single entry owned by the signed-in user.
func (h *StandupHandlers) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondBadRequest(w, "invalid standup id")
		return
	}

	entry, err := h.svc.GetStandup(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if entry.UserID != userID {
		respondError(w, entity.ErrNotFound)
		return
	}

	respondJSON(w, http.StatusOK, toStandupDTO(entry))
}

// Create persists a new entry.
func (h *StandupHandlers) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req createStandupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid JSON body")
		return
	}

	created, err := h.svc.CreateStandup(r.Context(), userID, service.CreateStandupInput{
		RepoFullName:  req.RepoFullName,
		Date:          req.Date,
		WorkCompleted: req.WorkCompleted,
		WorkPlanned:   req.WorkPlanned,
		Blockers:      req.Blockers,
		TaskIDs:       req.TaskIDs,
		Commits:       req.Commits,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toStandupDTO(created))
}

// Update applies a partial update to an entry owned by the signed-in user.
func (h *StandupHandlers) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondBadRequest(w, "invalid standup id")
		return
	}

	var req updateStandupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid JSON body")
		return
	}

	if err := h.checkOwnership(r, id, userID); err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.svc.UpdateStandup(r.Context(), id, entity.StandupUpdate{
		Date:          req.Date,
		WorkCompleted: req.WorkCompleted,
		WorkPlanned:   req.WorkPlanned,
		Blockers:      req.Blockers,
		TaskIDs:       req.TaskIDs,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toStandupDTO(updated))
}

// Delete removes an entry owned by the signed-in user.
func (h *StandupHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondBadRequest(w, "invalid standup id")
		return
	}

	if err := h.checkOwnership(r, id, userID); err != nil {
		respondError(w, err)
		return
	}

	if err := h.svc.DeleteStandup(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// checkOwnership hides other users' entries behind a 404.
func (h *StandupHandlers) checkOwnership(r *http.Request, id uuid.UUID, userID string) error {
	existing, err := h.svc.GetStandup(r.Context(), id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return entity.ErrNotFound
	}
	return nil
}
