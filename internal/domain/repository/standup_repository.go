package repository

import (
	"context"

	"github.com/google/uuid"

	"standup-tracker/internal/domain/entity"
)

// StandupRepository defines the interface for standup entry persistence.
type StandupRepository interface {
	// Create inserts a new entry. ID, CreatedAt and UpdatedAt must already be set.
	Create(ctx context.Context, standup *entity.StandupEntry) error

	// GetByID retrieves an entry by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.StandupEntry, error)

	// GetByUserID retrieves all entries for a user, newest created first.
	GetByUserID(ctx context.Context, userID string) ([]*entity.StandupEntry, error)

	// ExistsForDate reports whether the user has an entry for the given
	// calendar day (YYYY-MM-DD).
	ExistsForDate(ctx context.Context, userID, date string) (bool, error)

	// Update replaces the mutable fields of an entry and bumps UpdatedAt.
	Update(ctx context.Context, standup *entity.StandupEntry) error

	// Delete removes an entry.
	Delete(ctx context.Context, id uuid.UUID) error
}
