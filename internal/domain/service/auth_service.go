package service

import (
	"context"

	"standup-tracker/internal/domain/entity"
)

// AuthResult is what a successful OAuth code exchange yields: the GitHub
// access token the client uses against the GitHub API, plus a session token
// for this service's own API.
type AuthResult struct {
	AccessToken  string
	SessionToken string
	User         *entity.User
}

// AuthService defines the interface for OAuth sign-in and session validation.
type AuthService interface {
	// ExchangeCode trades an OAuth authorization code for an access token,
	// upserts the GitHub user and opens an API session.
	ExchangeCode(ctx context.Context, code string) (*AuthResult, error)

	// ValidateToken verifies a session token and returns the live session.
	ValidateToken(ctx context.Context, token string) (*entity.Session, error)

	// Logout revokes the session behind the token.
	Logout(ctx context.Context, token string) error

	// Profile returns the account behind a session's user id.
	Profile(ctx context.Context, userID string) (*entity.User, error)

	// UpdateReminders toggles the daily reminder flag and returns the
	// refreshed account.
	UpdateReminders(ctx context.Context, userID string, enabled bool) (*entity.User, error)
}
