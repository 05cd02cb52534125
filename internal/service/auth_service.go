package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"standup-tracker/internal/domain/entity"
	"standup-tracker/internal/domain/repository"
	"standup-tracker/internal/domain/service"
	"standup-tracker/internal/infrastructure/github"
	"standup-tracker/pkg/token"
)

// SessionStore persists API sessions. Implemented by the redis adapter.
type SessionStore interface {
	Set(ctx context.Context, session *entity.Session) error
	Get(ctx context.Context, sessionID string) (*entity.Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// GitHubAuth is the slice of the GitHub client the auth service needs.
type GitHubAuth interface {
	ExchangeCode(ctx context.Context, code string) (string, error)
	GetUser(ctx context.Context, accessToken string) (*github.User, error)
}

type authService struct {
	gh         GitHubAuth
	users      repository.UserRepository
	sessions   SessionStore
	tokens     *token.Manager
	sessionTTL time.Duration
}

// NewAuthService creates a new auth service.
func NewAuthService(
	gh GitHubAuth,
	users repository.UserRepository,
	sessions SessionStore,
	tokens *token.Manager,
	sessionTTL time.Duration,
) service.AuthService {
	return &authService{gh: gh, users: users, sessions: sessions, tokens: tokens, sessionTTL: sessionTTL}
}

func (a *authService) ExchangeCode(ctx context.Context, code string) (*service.AuthResult, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", entity.ErrValidation)
	}

	accessToken, err := a.gh.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	ghUser, err := a.gh.GetUser(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch github user: %w", err)
	}

	now := time.Now().UTC()
	user := &entity.User{
		ID:        fmt.Sprintf("%d", ghUser.ID),
		Login:     ghUser.Login,
		Name:      ghUser.Name,
		AvatarURL: ghUser.AvatarURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if ghUser.Email != "" {
		user.Email = &ghUser.Email
	}
	if err := a.users.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	session := &entity.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Login:     user.Login,
		CreatedAt: now,
		ExpiresAt: now.Add(a.sessionTTL),
	}
	if err := a.sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	sessionToken, _, err := a.tokens.Generate(user.ID, session.ID)
	if err != nil {
		return nil, err
	}

	return &service.AuthResult{
		AccessToken:  accessToken,
		SessionToken: sessionToken,
		User:         user,
	}, nil
}

func (a *authService) ValidateToken(ctx context.Context, tokenString string) (*entity.Session, error) {
	claims, err := a.tokens.Parse(tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrUnauthorized, err)
	}

	session, err := a.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: session revoked or expired", entity.ErrUnauthorized)
	}
	if session.UserID != claims.UserID {
		return nil, fmt.Errorf("%w: session user mismatch", entity.ErrUnauthorized)
	}
	return session, nil
}

func (a *authService) Profile(ctx context.Context, userID string) (*entity.User, error) {
	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (a *authService) UpdateReminders(ctx context.Context, userID string, enabled bool) (*entity.User, error) {
	if err := a.users.SetRemindersEnabled(ctx, userID, enabled); err != nil {
		return nil, fmt.Errorf("failed to update reminders flag: %w", err)
	}
	return a.Profile(ctx, userID)
}

func (a *authService) Logout(ctx context.Context, tokenString string) error {
	claims, err := a.tokens.Parse(tokenString)
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrUnauthorized, err)
	}
	if err := a.sessions.Delete(ctx, claims.SessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
