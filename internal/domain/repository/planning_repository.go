package repository

import (
	"context"

	"github.com/google/uuid"

	"standup-tracker/internal/domain/entity"
)

// MilestoneRepository defines the interface for milestone persistence.
type MilestoneRepository interface {
	Create(ctx context.Context, m *entity.Milestone) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Milestone, error)
	GetByUserID(ctx context.Context, userID string, status *entity.MilestoneStatus) ([]*entity.Milestone, error)
	Update(ctx context.Context, m *entity.Milestone) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SprintRepository defines the interface for sprint persistence.
type SprintRepository interface {
	Create(ctx context.Context, s *entity.Sprint) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sprint, error)
	// GetByUserID lists sprints for a user, optionally narrowed to one milestone.
	GetByUserID(ctx context.Context, userID string, milestoneID *uuid.UUID) ([]*entity.Sprint, error)
	Update(ctx context.Context, s *entity.Sprint) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TaskRepository defines the interface for task persistence.
type TaskRepository interface {
	Create(ctx context.Context, t *entity.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Task, error)
	// GetByUserID lists tasks for a user, optionally narrowed by sprint and status.
	GetByUserID(ctx context.Context, userID string, sprintID *uuid.UUID, status *entity.TaskStatus) ([]*entity.Task, error)
	Update(ctx context.Context, t *entity.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
}
