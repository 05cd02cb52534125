package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"standup-tracker/internal/domain/entity"
	"standup-tracker/internal/domain/repository"
	"standup-tracker/internal/domain/service"
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// EventPublisher publishes standup lifecycle events. Implemented by the
// kafka producer; a nil publisher disables publishing.
type EventPublisher interface {
	PublishStandupEvent(ctx context.Context, eventType string, standup *entity.StandupEntry)
}

type standupService struct {
	repo   repository.StandupRepository
	events EventPublisher
}

// NewStandupService creates a new standup service.
func NewStandupService(repo repository.StandupRepository, events EventPublisher) service.StandupService {
	return &standupService{repo: repo, events: events}
}

func (s *standupService) CreateStandup(ctx context.Context, userID string, in service.CreateStandupInput) (*entity.StandupEntry, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", entity.ErrValidation)
	}
	if strings.TrimSpace(in.RepoFullName) == "" {
		return nil, fmt.Errorf("%w: repoFullName is required", entity.ErrValidation)
	}
	if !dateRe.MatchString(in.Date) {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD format", entity.ErrValidation)
	}
	if strings.TrimSpace(in.WorkCompleted) == "" {
		return nil, fmt.Errorf("%w: workCompleted is required", entity.ErrValidation)
	}
	if strings.TrimSpace(in.WorkPlanned) == "" {
		return nil, fmt.Errorf("%w: workPlanned is required", entity.ErrValidation)
	}

	blockers := in.Blockers
	if strings.TrimSpace(blockers) == "" {
		blockers = entity.DefaultBlockers
	}
	taskIDs := in.TaskIDs
	if taskIDs == nil {
		taskIDs = []string{}
	}

	now := time.Now().UTC()
	standup := &entity.StandupEntry{
		ID:            uuid.New(),
		UserID:        userID,
		RepoFullName:  in.RepoFullName,
		Date:          in.Date,
		WorkCompleted: in.WorkCompleted,
		WorkPlanned:   in.WorkPlanned,
		Blockers:      blockers,
		TaskIDs:       taskIDs,
		Commits:       entity.CloneCommits(in.Commits),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, standup); err != nil {
		return nil, fmt.Errorf("failed to create standup: %w", err)
	}

	if s.events != nil {
		s.events.PublishStandupEvent(ctx, "standup.created", standup)
	}
	return standup, nil
}

func (s *standupService) GetStandup(ctx context.Context, id uuid.UUID) (*entity.StandupEntry, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *standupService) ListStandups(ctx context.Context, userID string) ([]*entity.StandupEntry, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", entity.ErrValidation)
	}
	return s.repo.GetByUserID(ctx, userID)
}

func (s *standupService) UpdateStandup(ctx context.Context, id uuid.UUID, upd entity.StandupUpdate) (*entity.StandupEntry, error) {
	standup, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Date != nil {
		if !dateRe.MatchString(*upd.Date) {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD format", entity.ErrValidation)
		}
		standup.Date = *upd.Date
	}
	if upd.WorkCompleted != nil {
		standup.WorkCompleted = *upd.WorkCompleted
	}
	if upd.WorkPlanned != nil {
		standup.WorkPlanned = *upd.WorkPlanned
	}
	if upd.Blockers != nil {
		blockers := *upd.Blockers
		if strings.TrimSpace(blockers) == "" {
			blockers = entity.DefaultBlockers
		}
		standup.Blockers = blockers
	}
	if upd.TaskIDs != nil {
		standup.TaskIDs = upd.TaskIDs
	}
	standup.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, standup); err != nil {
		return nil, fmt.Errorf("failed to update standup: %w", err)
	}

	if s.events != nil {
		s.events.PublishStandupEvent(ctx, "standup.updated", standup)
	}
	return standup, nil
}

func (s *standupService) DeleteStandup(ctx context.Context, id uuid.UUID) error {
	standup, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete standup: %w", err)
	}

	if s.events != nil {
		s.events.PublishStandupEvent(ctx, "standup.deleted", standup)
	}
	return nil
}
