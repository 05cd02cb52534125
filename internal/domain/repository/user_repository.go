package repository

import (
	"context"

	"standup-tracker/internal/domain/entity"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	// Upsert inserts the user or refreshes login/name/avatar on conflict.
	Upsert(ctx context.Context, user *entity.User) error

	// GetByID retrieves a user by GitHub ID.
	GetByID(ctx context.Context, id string) (*entity.User, error)

	// SetRemindersEnabled toggles the daily reminder flag for a user.
	SetRemindersEnabled(ctx context.Context, id string, enabled bool) error

	// GetReminderCandidates retrieves users with reminders enabled and an
	// email on file.
	GetReminderCandidates(ctx context.Context) ([]*entity.User, error)
}
