package entity

import "time"

// User is a GitHub-authenticated account. The ID is the numeric GitHub user
// id rendered as a string; it is assigned by GitHub, never by this system.
type User struct {
	ID        string
	Login     string
	Name      string
	AvatarURL string

	// Email and RemindersEnabled drive the daily reminder checker.
	Email            *string
	RemindersEnabled bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Session is an authenticated API session backing a bearer token.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Login     string    `json:"login"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
