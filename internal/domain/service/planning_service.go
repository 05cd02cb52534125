package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"standup-tracker/internal/domain/entity"
)

// CreateMilestoneInput carries the client-supplied fields of a new milestone.
type CreateMilestoneInput struct {
	Title       string
	Description string
	TargetDate  *string
	Status      entity.MilestoneStatus // defaults to active when empty
}

// UpdateMilestoneInput is a partial milestone update; nil means unchanged.
type UpdateMilestoneInput struct {
	Title       *string
	Description *string
	TargetDate  *string
	Status      *entity.MilestoneStatus
}

// CreateSprintInput carries the client-supplied fields of a new sprint.
type CreateSprintInput struct {
	MilestoneID  *uuid.UUID
	Title        string
	Description  string
	StartDate    string
	EndDate      string
	Status       entity.SprintStatus // defaults to planned when empty
	TargetPoints *int32
}

// UpdateSprintInput is a partial sprint update; nil means unchanged.
type UpdateSprintInput struct {
	MilestoneID  *uuid.UUID
	Title        *string
	Description  *string
	StartDate    *string
	EndDate      *string
	Status       *entity.SprintStatus
	TargetPoints *int32
}

// CreateTaskInput carries the client-supplied fields of a new task.
type CreateTaskInput struct {
	SprintID         *uuid.UUID
	Title            string
	Description      string
	Status           entity.TaskStatus // defaults to todo when empty
	StoryPoints      *int32
	StoryPointSystem *string
	ExternalID       *string
	ExternalSource   *string
	ExternalURL      *string
	TargetDate       *string
}

// UpdateTaskInput is a partial task update; nil means unchanged.
type UpdateTaskInput struct {
	SprintID         *uuid.UUID
	Title            *string
	Description      *string
	Status           *entity.TaskStatus
	StoryPoints      *int32
	StoryPointSystem *string
	ExternalID       *string
	ExternalSource   *string
	ExternalURL      *string
	TargetDate       *string
	CompletedAt      *time.Time
}

// PlanningService defines the interface for milestone/sprint/task CRUD.
type PlanningService interface {
	CreateMilestone(ctx context.Context, userID string, in CreateMilestoneInput) (*entity.Milestone, error)
	GetMilestone(ctx context.Context, id uuid.UUID) (*entity.Milestone, error)
	ListMilestones(ctx context.Context, userID string, status *entity.MilestoneStatus) ([]*entity.Milestone, error)
	UpdateMilestone(ctx context.Context, id uuid.UUID, in UpdateMilestoneInput) (*entity.Milestone, error)
	DeleteMilestone(ctx context.Context, id uuid.UUID) error

	CreateSprint(ctx context.Context, userID string, in CreateSprintInput) (*entity.Sprint, error)
	GetSprint(ctx context.Context, id uuid.UUID) (*entity.Sprint, error)
	ListSprints(ctx context.Context, userID string, milestoneID *uuid.UUID) ([]*entity.Sprint, error)
	UpdateSprint(ctx context.Context, id uuid.UUID, in UpdateSprintInput) (*entity.Sprint, error)
	DeleteSprint(ctx context.Context, id uuid.UUID) error

	// CreateTask creates a task; UpdateTask auto-populates CompletedAt when
	// the status transitions to done and no explicit completion time was given.
	CreateTask(ctx context.Context, userID string, in CreateTaskInput) (*entity.Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (*entity.Task, error)
	ListTasks(ctx context.Context, userID string, sprintID *uuid.UUID, status *entity.TaskStatus) ([]*entity.Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, in UpdateTaskInput) (*entity.Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
}
