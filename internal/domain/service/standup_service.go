package service

import (
	"context"

	"github.com/google/uuid"

	"standup-tracker/internal/domain/entity"
)

// CreateStandupInput carries the client-supplied fields of a new entry.
type CreateStandupInput struct {
	RepoFullName  string
	Date          string // YYYY-MM-DD
	WorkCompleted string
	WorkPlanned   string
	Blockers      string
	TaskIDs       []string
	Commits       []entity.Commit
}

// StandupService defines the interface for standup business logic.
type StandupService interface {
	// CreateStandup validates and persists a new entry for the user.
	// An empty blockers field is stored as the "None" sentinel and the
	// commit list is snapshotted by value.
	CreateStandup(ctx context.Context, userID string, in CreateStandupInput) (*entity.StandupEntry, error)

	// GetStandup retrieves a single entry.
	GetStandup(ctx context.Context, id uuid.UUID) (*entity.StandupEntry, error)

	// ListStandups retrieves all entries for a user, newest created first.
	ListStandups(ctx context.Context, userID string) ([]*entity.StandupEntry, error)

	// UpdateStandup applies a partial update to an entry.
	UpdateStandup(ctx context.Context, id uuid.UUID, upd entity.StandupUpdate) (*entity.StandupEntry, error)

	// DeleteStandup removes an entry.
	DeleteStandup(ctx context.Context, id uuid.UUID) error
}
