package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"standup-tracker/internal/domain/entity"
	"standup-tracker/internal/domain/service"
)

// MilestoneHandlers holds the milestone CRUD endpoints.
type MilestoneHandlers struct {
	svc service.PlanningService
}

// NewMilestoneHandlers creates the milestone handler set.
func NewMilestoneHandlers(svc service.PlanningService) *MilestoneHandlers {
	return &MilestoneHandlers{svc: svc}
}

type createMilestoneRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	TargetDate  *string `json:"targetDate"`
	Status      string  `json:"status"`
}

type updateMilestoneRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	TargetDate  *string `json:"targetDate"`
	Status      *string `json:"status"`
}

// List returns the user's milestones, optionally filtered by status.
func (h *MilestoneHandlers) List(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var status *entity.MilestoneStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := entity.MilestoneStatus(raw)
		status = &s
	}

	milestones, err := h.svc.ListMilestones(r.Context(), userID, status)
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]milestoneDTO, 0, len(milestones))
	for _, m := range milestones {
		out = append(out, toMilestoneDTO(m))
	}
	respondJSON(w, http.StatusOK, out)
}

// Get returns a single milestone owned by the signed-in user.
func (h *MilestoneHandlers) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondBadRequest(w, "invalid milestone id")
		return
	}

	milestone, err := h.svc.GetMilestone(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if milestone.UserID != userID {
		respondError(w, entity.ErrNotFound)
		return
	}

	respondJSON(w, http.StatusOK, toMilestoneDTO(milestone))
}

// Create persists a new milestone.
func (h *MilestoneHandlers) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req createMilestoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid JSON body")
		return
	}

	created, err := h.svc.CreateMilestone(r.Context(), userID, service.CreateMilestoneInput{
		Title:       req.Title,
		Description: req.Description,
		TargetDate:  req.TargetDate,
		Status:      entity.MilestoneStatus(req.Status),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toMilestoneDTO(created))
}

// Update applies a partial update to a milestone.
func (h *MilestoneHandlers) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondBadRequest(w, "invalid milestone id")
		return
	}

	var req updateMilestoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid JSON body")
		return
	}

	if err := h.checkOwnership(r, id, userID); err != nil {
		respondError(w, err)
		return
	}

	in := service.UpdateMilestoneInput{
		Title:       req.Title,
		Description: req.Description,
		TargetDate:  req.TargetDate,
	}
	if req.Status != nil {
		s := entity.MilestoneStatus(*req.Status)
		in.Status = &s
	}

	updated, err := h.svc.UpdateMilestone(r.Context(), id, in)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toMilestoneDTO(updated))
}

// Delete removes a milestone.
func (h *MilestoneHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondBadRequest(w, "invalid milestone id")
		return
	}

	if err := h.checkOwnership(r, id, userID); err != nil {
		respondError(w, err)
		return
	}

	if err := h.svc.DeleteMilestone(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *MilestoneHandlers) checkOwnership(r *http.Request, id uuid.UUID, userID string) error {
	existing, err := h.svc.GetMilestone(r.Context(), id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return entity.ErrNotFound
	}
	return nil
}
