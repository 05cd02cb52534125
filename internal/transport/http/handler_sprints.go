package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"standup-tracker/internal/domain/entity"
	"standup-tracker/internal/domain/service"
)

// SprintHandlers holds the sprint CRUD endpoints.
type SprintHandlers struct {
	svc service.PlanningService
}

// NewSprintHandlers creates the sprint handler set.
func NewSprintHandlers(svc service.PlanningService) *SprintHandlers {
	return &SprintHandlers{svc: svc}
}

type createSprintRequest struct {
	MilestoneID  *string `json:"milestoneId"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
	Status       string  `json:"status"`
	TargetPoints *int32  `json:"targetPoints"`
}

type updateSprintRequest struct {
	MilestoneID  *string `json:"milestoneId"`
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	StartDate    *string `json:"startDate"`
	EndDate      *string `json:"endDate"`
	Status       *string `json:"status"`
	TargetPoints *int32  `json:"targetPoints"`
}

// List returns the user's sprints, optionally filtered by milestone.
func (h *SprintHandlers) List(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	milestoneID, err := parseOptionalUUID(r.URL.Query().Get("milestoneId"))
	if err != nil {
		respondBadRequest(w, "invalid milestoneId")
		return
	}

	sprints, err := h.svc.ListSprints(r.Context(), userID, milestoneID)
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]sprintDTO, 0, len(sprints))
	for _, s := range sprints {
		out = append(out, toSprintDTO(s))
	}
	respondJSON(w, http.StatusOK, out)
}

// Get returns a single sprint owned by the signed-in user.
func (h *SprintHandlers) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondBadRequest(w, "invalid sprint id")
		return
	}

	sprint, err := h.svc.GetSprint(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if sprint.UserID != userID {
		respondError(w, entity.ErrNotFound)
		return
	}

	respondJSON(w, http.StatusOK, toSprintDTO(sprint))
}

// Create persists a new sprint.
func (h *SprintHandlers) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req createSprintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid JSON body")
		return
	}

	in := service.CreateSprintInput{
		Title:        req.Title,
		Description:  req.Description,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Status:       entity.SprintStatus(req.Status),
		TargetPoints: req.TargetPoints,
	}
	if req.MilestoneID != nil {
		id, err := uuid.Parse(*req.MilestoneID)
		if err != nil {
			respondBadRequest(w, "invalid milestoneId")
			return
		}
		in.MilestoneID = &id
	}

	created, err := h.svc.CreateSprint(r.Context(), userID, in)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toSprintDTO(created))
}

// Update applies a partial update to a sprint.
func (h *SprintHandlers) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondBadRequest(w, "invalid sprint id")
		return
	}

	var req updateSprintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid JSON body")
		return
	}

	if err := h.checkOwnership(r, id, userID); err != nil {
		respondError(w, err)
		return
	}

	in := service.UpdateSprintInput{
		Title:        req.Title,
		Description:  req.Description,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		TargetPoints: req.TargetPoints,
	}
	if req.Status != nil {
		s := entity.SprintStatus(*req.Status)
		in.Status = &s
	}
	if req.MilestoneID != nil {
		mid, err := uuid.Parse(*req.MilestoneID)
		if err != nil {
			respondBadRequest(w, "invalid milestoneId")
			return
		}
		in.MilestoneID = &mid
	}

	updated, err := h.svc.UpdateSprint(r.Context(), id, in)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toSprintDTO(updated))
}

// Delete removes a sprint.
func (h *SprintHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondBadRequest(w, "invalid sprint id")
		return
	}

	if err := h.checkOwnership(r, id, userID); err != nil {
		respondError(w, err)
		return
	}

	if err := h.svc.DeleteSprint(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *SprintHandlers) checkOwnership(r *http.Request, id uuid.UUID, userID string) error {
	existing, err := h.svc.GetSprint(r.Context(), id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return entity.ErrNotFound
	}
	return nil
}
