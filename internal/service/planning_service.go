package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"standup-tracker/internal/domain/entity"
	"standup-tracker/internal/domain/repository"
	"standup-tracker/internal/domain/service"
)

type planningService struct {
	milestones repository.MilestoneRepository
	sprints    repository.SprintRepository
	tasks      repository.TaskRepository
}

// NewPlanningService creates a new planning service over the milestone,
// sprint and task repositories.
func NewPlanningService(
	milestones repository.MilestoneRepository,
	sprints repository.SprintRepository,
	tasks repository.TaskRepository,
) service.PlanningService {
	return &planningService{milestones: milestones, sprints: sprints, tasks: tasks}
}

func validDate(s string) bool {
	return dateRe.MatchString(s)
}

// ==================== Milestones ====================

func (p *planningService) CreateMilestone(ctx context.Context, userID string, in service.CreateMilestoneInput) (*entity.Milestone, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", entity.ErrValidation)
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", entity.ErrValidation)
	}
	status := in.Status
	if status == "" {
		status = entity.MilestoneActive
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: invalid milestone status %q", entity.ErrValidation, status)
	}
	if in.TargetDate != nil && !validDate(*in.TargetDate) {
		return nil, fmt.Errorf("%w: targetDate must be YYYY-MM-DD format", entity.ErrValidation)
	}

	now := time.Now().UTC()
	m := &entity.Milestone{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		TargetDate:  in.TargetDate,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := p.milestones.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to create milestone: %w", err)
	}
	return m, nil
}

func (p *planningService) GetMilestone(ctx context.Context, id uuid.UUID) (*entity.Milestone, error) {
	return p.milestones.GetByID(ctx, id)
}

func (p *planningService) ListMilestones(ctx context.Context, userID string, status *entity.MilestoneStatus) ([]*entity.Milestone, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", entity.ErrValidation)
	}
	if status != nil && !status.IsValid() {
		return nil, fmt.Errorf("%w: invalid milestone status %q", entity.ErrValidation, *status)
	}
	return p.milestones.GetByUserID(ctx, userID, status)
}

func (p *planningService) UpdateMilestone(ctx context.Context, id uuid.UUID, in service.UpdateMilestoneInput) (*entity.Milestone, error) {
	m, err := p.milestones.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, fmt.Errorf("%w: title is required", entity.ErrValidation)
		}
		m.Title = *in.Title
	}
	if in.Description != nil {
		m.Description = *in.Description
	}
	if in.TargetDate != nil {
		if !validDate(*in.TargetDate) {
			return nil, fmt.Errorf("%w: targetDate must be YYYY-MM-DD format", entity.ErrValidation)
		}
		m.TargetDate = in.TargetDate
	}
	if in.Status != nil {
		if !in.Status.IsValid() {
			return nil, fmt.Errorf("%w: invalid milestone status %q", entity.ErrValidation, *in.Status)
		}
		m.Status = *in.Status
	}
	m.UpdatedAt = time.Now().UTC()

	if err := p.milestones.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to update milestone: %w", err)
	}
	return m, nil
}

func (p *planningService) DeleteMilestone(ctx context.Context, id uuid.UUID) error {
	if _, err := p.milestones.GetByID(ctx, id); err != nil {
		return err
	}
	if err := p.milestones.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete milestone: %w", err)
	}
	return nil
}

// ==================== Sprints ====================

func (p *planningService) CreateSprint(ctx context.Context, userID string, in service.CreateSprintInput) (*entity.Sprint, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", entity.ErrValidation)
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", entity.ErrValidation)
	}
	if !validDate(in.StartDate) {
		return nil, fmt.Errorf("%w: startDate must be YYYY-MM-DD format", entity.ErrValidation)
	}
	if !validDate(in.EndDate) {
		return nil, fmt.Errorf("%w: endDate must be YYYY-MM-DD format", entity.ErrValidation)
	}
	status := in.Status
	if status == "" {
		status = entity.SprintPlanned
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: invalid sprint status %q", entity.ErrValidation, status)
	}
	if in.TargetPoints != nil && *in.TargetPoints <= 0 {
		return nil, fmt.Errorf("%w: targetPoints must be positive", entity.ErrValidation)
	}

	now := time.Now().UTC()
	sp := &entity.Sprint{
		ID:           uuid.New(),
		UserID:       userID,
		MilestoneID:  in.MilestoneID,
		Title:        in.Title,
		Description:  in.Description,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Status:       status,
		TargetPoints: in.TargetPoints,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := p.sprints.Create(ctx, sp); err != nil {
		return nil, fmt.Errorf("failed to create sprint: %w", err)
	}
	return sp, nil
}

func (p *planningService) GetSprint(ctx context.Context, id uuid.UUID) (*entity.Sprint, error) {
	return p.sprints.GetByID(ctx, id)
}

func (p *planningService) ListSprints(ctx context.Context, userID string, milestoneID *uuid.UUID) ([]*entity.Sprint, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", entity.ErrValidation)
	}
	return p.sprints.GetByUserID(ctx, userID, milestoneID)
}

func (p *planningService) UpdateSprint(ctx context.Context, id uuid.UUID, in service.UpdateSprintInput) (*entity.Sprint, error) {
	sp, err := p.sprints.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.MilestoneID != nil {
		sp.MilestoneID = in.MilestoneID
	}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, fmt.Errorf("%w: title is required", entity.ErrValidation)
		}
		sp.Title = *in.Title
	}
	if in.Description != nil {
		sp.Description = *in.Description
	}
	if in.StartDate != nil {
		if !validDate(*in.StartDate) {
			return nil, fmt.Errorf("%w: startDate must be YYYY-MM-DD format", entity.ErrValidation)
		}
		sp.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		if !validDate(*in.EndDate) {
			return nil, fmt.Errorf("%w: endDate must be YYYY-MM-DD format", entity.ErrValidation)
		}
		sp.EndDate = *in.EndDate
	}
	if in.Status != nil {
		if !in.Status.IsValid() {
			return nil, fmt.Errorf("%w: invalid sprint status %q", entity.ErrValidation, *in.Status)
		}
		sp.Status = *in.Status
	}
	if in.TargetPoints != nil {
		if *in.TargetPoints <= 0 {
			return nil, fmt.Errorf("%w: targetPoints must be positive", entity.ErrValidation)
		}
		sp.TargetPoints = in.TargetPoints
	}
	sp.UpdatedAt = time.Now().UTC()

	if err := p.sprints.Update(ctx, sp); err != nil {
		return nil, fmt.Errorf("failed to update sprint: %w", err)
	}
	return sp, nil
}

func (p *planningService) DeleteSprint(ctx context.Context, id uuid.UUID) error {
	if _, err := p.sprints.GetByID(ctx, id); err != nil {
		return err
	}
	if err := p.sprints.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete sprint: %w", err)
	}
	return nil
}

// ==================== Tasks ====================

func (p *planningService) CreateTask(ctx context.Context, userID string, in service.CreateTaskInput) (*entity.Task, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", entity.ErrValidation)
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", entity.ErrValidation)
	}
	status := in.Status
	if status == "" {
		status = entity.TaskTodo
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: invalid task status %q", entity.ErrValidation, status)
	}
	if in.StoryPoints != nil && *in.StoryPoints <= 0 {
		return nil, fmt.Errorf("%w: storyPoints must be positive", entity.ErrValidation)
	}
	if in.TargetDate != nil && !validDate(*in.TargetDate) {
		return nil, fmt.Errorf("%w: targetDate must be YYYY-MM-DD format", entity.ErrValidation)
	}

	now := time.Now().UTC()
	t := &entity.Task{
		ID:               uuid.New(),
		UserID:           userID,
		SprintID:         in.SprintID,
		Title:            in.Title,
		Description:      in.Description,
		Status:           status,
		StoryPoints:      in.StoryPoints,
		StoryPointSystem: in.StoryPointSystem,
		ExternalID:       in.ExternalID,
		ExternalSource:   in.ExternalSource,
		ExternalURL:      in.ExternalURL,
		TargetDate:       in.TargetDate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := p.tasks.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return t, nil
}

func (p *planningService) GetTask(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	return p.tasks.GetByID(ctx, id)
}

func (p *planningService) ListTasks(ctx context.Context, userID string, sprintID *uuid.UUID, status *entity.TaskStatus) ([]*entity.Task, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", entity.ErrValidation)
	}
	if status != nil && !status.IsValid() {
		return nil, fmt.Errorf("%w: invalid task status %q", entity.ErrValidation, *status)
	}
	return p.tasks.GetByUserID(ctx, userID, sprintID, status)
}

func (p *planningService) UpdateTask(ctx context.Context, id uuid.UUID, in service.UpdateTaskInput) (*entity.Task, error) {
	t, err := p.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.SprintID != nil {
		t.SprintID = in.SprintID
	}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, fmt.Errorf("%w: title is required", entity.ErrValidation)
		}
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.StoryPoints != nil {
		if *in.StoryPoints <= 0 {
			return nil, fmt.Errorf("%w: storyPoints must be positive", entity.ErrValidation)
		}
		t.StoryPoints = in.StoryPoints
	}
	if in.StoryPointSystem != nil {
		t.StoryPointSystem = in.StoryPointSystem
	}
	if in.ExternalID != nil {
		t.ExternalID = in.ExternalID
	}
	if in.ExternalSource != nil {
		t.ExternalSource = in.ExternalSource
	}
	if in.ExternalURL != nil {
		t.ExternalURL = in.ExternalURL
	}
	if in.TargetDate != nil {
		if !validDate(*in.TargetDate) {
			return nil, fmt.Errorf("%w: targetDate must be YYYY-MM-DD format", entity.ErrValidation)
		}
		t.TargetDate = in.TargetDate
	}
	if in.CompletedAt != nil {
		t.CompletedAt = in.CompletedAt
	}
	if in.Status != nil {
		if !in.Status.IsValid() {
			return nil, fmt.Errorf("%w: invalid task status %q", entity.ErrValidation, *in.Status)
		}
		t.Status = *in.Status
		// Completion time is stamped when the task reaches its terminal
		// status without an explicit time supplied by the caller.
		if t.Status == entity.TaskDone && in.CompletedAt == nil && t.CompletedAt == nil {
			now := time.Now().UTC()
			t.CompletedAt = &now
		}
	}
	t.UpdatedAt = time.Now().UTC()

	if err := p.tasks.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return t, nil
}

func (p *planningService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if _, err := p.tasks.GetByID(ctx, id); err != nil {
		return err
	}
	if err := p.tasks.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
