package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"standup-tracker/internal/domain/entity"
	"standup-tracker/internal/domain/service"
)

// TaskHandlers holds the task CRUD endpoints.
type TaskHandlers struct {
	svc service.PlanningService
}

// NewTaskHandlers creates the task handler set.
func NewTaskHandlers(svc service.PlanningService) *TaskHandlers {
	return &TaskHandlers{svc: svc}
}

type createTaskRequest struct {
	SprintID         *string `json:"sprintId"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	Status           string  `json:"status"`
	StoryPoints      *int32  `json:"storyPoints"`
	StoryPointSystem *string `json:"storyPointSystem"`
	ExternalID       *string `json:"externalId"`
	ExternalSource   *string `json:"externalSource"`
	ExternalURL      *string `json:"externalUrl"`
	TargetDate       *string `json:"targetDate"`
}

type updateTaskRequest struct {
	SprintID         *string    `json:"sprintId"`
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	Status           *string    `json:"status"`
	StoryPoints      *int32     `json:"storyPoints"`
	StoryPointSystem *string    `json:"storyPointSystem"`
	ExternalID       *string    `json:"externalId"`
	ExternalSource   *string    `json:"externalSource"`
	ExternalURL      *string    `json:"externalUrl"`
	TargetDate       *string    `json:"targetDate"`
	CompletedAt      *time.Time `json:"completedAt"`
}

// List returns the user's tasks, optionally filtered by sprint and status.
func (h *TaskHandlers) List(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	sprintID, err := parseOptionalUUID(r.URL.Query().Get("sprintId"))
	if err != nil {
		respondBadRequest(w, "invalid sprintId")
		return
	}

	var status *entity.TaskStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := entity.TaskStatus(raw)
		status = &s
	}

	tasks, err := h.svc.ListTasks(r.Context(), userID, sprintID, status)
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]taskDTO, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskDTO(t))
	}
	respondJSON(w, http.StatusOK, out)
}

// Get returns a single task owned by the signed-in user.
func (h *TaskHandlers) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondBadRequest(w, "invalid task id")
		return
	}

	task, err := h.svc.GetTask(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if task.UserID != userID {
		respondError(w, entity.ErrNotFound)
		return
	}

	respondJSON(w, http.StatusOK, toTaskDTO(task))
}

// Create persists a new task.
func (h *TaskHandlers) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid JSON body")
		return
	}

	in := service.CreateTaskInput{
		Title:            req.Title,
		Description:      req.Description,
		Status:           entity.TaskStatus(req.Status),
		StoryPoints:      req.StoryPoints,
		StoryPointSystem: req.StoryPointSystem,
		ExternalID:       req.ExternalID,
		ExternalSource:   req.ExternalSource,
		ExternalURL:      req.ExternalURL,
		TargetDate:       req.TargetDate,
	}
	if req.SprintID != nil {
		id, err := uuid.Parse(*req.SprintID)
		if err != nil {
			respondBadRequest(w, "invalid sprintId")
			return
		}
		in.SprintID = &id
	}

	created, err := h.svc.CreateTask(r.Context(), userID, in)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toTaskDTO(created))
}

// Update applies a partial update to a task.
func (h *TaskHandlers) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondBadRequest(w, "invalid task id")
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid JSON body")
		return
	}

	if err := h.checkOwnership(r, id, userID); err != nil {
		respondError(w, err)
		return
	}

	in := service.UpdateTaskInput{
		Title:            req.Title,
		Description:      req.Description,
		StoryPoints:      req.StoryPoints,
		StoryPointSystem: req.StoryPointSystem,
		ExternalID:       req.ExternalID,
		ExternalSource:   req.ExternalSource,
		ExternalURL:      req.ExternalURL,
		TargetDate:       req.TargetDate,
		CompletedAt:      req.CompletedAt,
	}
	if req.Status != nil {
		s := entity.TaskStatus(*req.Status)
		in.Status = &s
	}
	if req.SprintID != nil {
		sid, err := uuid.Parse(*req.SprintID)
		if err != nil {
			respondBadRequest(w, "invalid sprintId")
			return
		}
		in.SprintID = &sid
	}

	updated, err := h.svc.UpdateTask(r.Context(), id, in)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toTaskDTO(updated))
}

// Delete removes a task.
func (h *TaskHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondBadRequest(w, "invalid task id")
		return
	}

	if err := h.checkOwnership(r, id, userID); err != nil {
		respondError(w, err)
		return
	}

	if err := h.svc.DeleteTask(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandlers) checkOwnership(r *http.Request, id uuid.UUID, userID string) error {
	existing, err := h.svc.GetTask(r.Context(), id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return entity.ErrNotFound
	}
	return nil
}
