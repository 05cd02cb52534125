package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"standup-tracker/internal/domain/entity"
	"standup-tracker/internal/domain/service"
)

type fakeMilestoneRepo struct {
	items map[uuid.UUID]*entity.Milestone
}

func (f *fakeMilestoneRepo) Create(ctx context.Context, m *entity.Milestone) error {
	cp := *m
	f.items[m.ID] = &cp
	return nil
}

func (f *fakeMilestoneRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Milestone, error) {
	m, ok := f.items[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMilestoneRepo) GetByUserID(ctx context.Context, userID string, status *entity.MilestoneStatus) ([]*entity.Milestone, error) {
	var out []*entity.Milestone
	for _, m := range f.items {
		if m.UserID != userID {
			continue
		}
		if status != nil && m.Status != *status {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeMilestoneRepo) Update(ctx context.Context, m *entity.Milestone) error {
	if _, ok := f.items[m.ID]; !ok {
		return entity.ErrNotFound
	}
	cp := *m
	f.items[m.ID] = &cp
	return nil
}

func (f *fakeMilestoneRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.items[id]; !ok {
		return entity.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeSprintRepo struct {
	items map[uuid.UUID]*entity.Sprint
}

func (f *fakeSprintRepo) Create(ctx context.Context, s *entity.Sprint) error {
	cp := *s
	f.items[s.ID] = &cp
	return nil
}

func (f *fakeSprintRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sprint, error) {
	s, ok := f.items[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSprintRepo) GetByUserID(ctx context.Context, userID string, milestoneID *uuid.UUID) ([]*entity.Sprint, error) {
	var out []*entity.Sprint
	for _, s := range f.items {
		if s.UserID != userID {
			continue
		}
		if milestoneID != nil && (s.MilestoneID == nil || *s.MilestoneID != *milestoneID) {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeSprintRepo) Update(ctx context.Context, s *entity.Sprint) error {
	if _, ok := f.items[s.ID]; !ok {
		return entity.ErrNotFound
	}
	cp := *s
	f.items[s.ID] = &cp
	return nil
}

func (f *fakeSprintRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.items[id]; !ok {
		return entity.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeTaskRepo struct {
	items map[uuid.UUID]*entity.Task
}

func (f *fakeTaskRepo) Create(ctx context.Context, t *entity.Task) error {
	cp := *t
	f.items[t.ID] = &cp
	return nil
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	t, ok := f.items[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTaskRepo) GetByUserID(ctx context.Context, userID string, sprintID *uuid.UUID, status *entity.TaskStatus) ([]*entity.Task, error) {
	var out []*entity.Task
	for _, t := range f.items {
		if t.UserID != userID {
			continue
		}
		if sprintID != nil && (t.SprintID == nil || *t.SprintID != *sprintID) {
			continue
		}
		if status != nil && t.Status != *status {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeTaskRepo) Update(ctx context.Context, t *entity.Task) error {
	if _, ok := f.items[t.ID]; !ok {
		return entity.ErrNotFound
	}
	cp := *t
	f.items[t.ID] = &cp
	return nil
}

func (f *fakeTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.items[id]; !ok {
		return entity.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func newPlanningFixture() service.PlanningService {
	return NewPlanningService(
		&fakeMilestoneRepo{items: make(map[uuid.UUID]*entity.Milestone)},
		&fakeSprintRepo{items: make(map[uuid.UUID]*entity.Sprint)},
		&fakeTaskRepo{items: make(map[uuid.UUID]*entity.Task)},
	)
}

func TestCreateMilestone_Defaults(t *testing.T) {
	svc := newPlanningFixture()

	m, err := svc.CreateMilestone(context.Background(), "42", service.CreateMilestoneInput{
		Title: "Ship v1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MilestoneActive, m.Status)
	assert.Nil(t, m.TargetDate)
}

func TestCreateMilestone_Validation(t *testing.T) {
	svc := newPlanningFixture()
	ctx := context.Background()

	_, err := svc.CreateMilestone(ctx, "42", service.CreateMilestoneInput{Title: "  "})
	assert.ErrorIs(t, err, entity.ErrValidation)

	bad := "03/15/2026"
	_, err = svc.CreateMilestone(ctx, "42", service.CreateMilestoneInput{Title: "x", TargetDate: &bad})
	assert.ErrorIs(t, err, entity.ErrValidation)

	_, err = svc.CreateMilestone(ctx, "42", service.CreateMilestoneInput{Title: "x", Status: "bogus"})
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestCreateSprint_Validation(t *testing.T) {
	svc := newPlanningFixture()
	ctx := context.Background()

	valid := service.CreateSprintInput{
		Title:     "Sprint 1",
		StartDate: "2026-02-02",
		EndDate:   "2026-02-13",
	}

	created, err := svc.CreateSprint(ctx, "42", valid)
	require.NoError(t, err)
	assert.Equal(t, entity.SprintPlanned, created.Status)

	in := valid
	in.EndDate = "not-a-date"
	_, err = svc.CreateSprint(ctx, "42", in)
	assert.ErrorIs(t, err, entity.ErrValidation)

	points := int32(-3)
	in = valid
	in.TargetPoints = &points
	_, err = svc.CreateSprint(ctx, "42", in)
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestUpdateTask_StampsCompletedAt(t *testing.T) {
	svc := newPlanningFixture()
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, "42", service.CreateTaskInput{Title: "Write docs"})
	require.NoError(t, err)
	require.Equal(t, entity.TaskTodo, created.Status)
	require.Nil(t, created.CompletedAt)

	done := entity.TaskDone
	updated, err := svc.UpdateTask(ctx, created.ID, service.UpdateTaskInput{Status: &done})
	require.NoError(t, err)
	assert.Equal(t, entity.TaskDone, updated.Status)
	require.NotNil(t, updated.CompletedAt)
	assert.False(t, updated.CompletedAt.IsZero())

	// A second transition to done keeps the original completion time.
	first := *updated.CompletedAt
	updated, err = svc.UpdateTask(ctx, created.ID, service.UpdateTaskInput{Status: &done})
	require.NoError(t, err)
	assert.Equal(t, first, *updated.CompletedAt)
}

func TestUpdateTask_ExplicitCompletedAtWins(t *testing.T) {
	svc := newPlanningFixture()
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, "42", service.CreateTaskInput{Title: "Review PR"})
	require.NoError(t, err)

	done := entity.TaskDone
	explicit := created.CreatedAt.Add(-time.Hour)
	updated, err := svc.UpdateTask(ctx, created.ID, service.UpdateTaskInput{
		Status:      &done,
		CompletedAt: &explicit,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, explicit, *updated.CompletedAt)
}

func TestListTasks_Filters(t *testing.T) {
	svc := newPlanningFixture()
	ctx := context.Background()

	sprint, err := svc.CreateSprint(ctx, "42", service.CreateSprintInput{
		Title:     "Sprint 1",
		StartDate: "2026-02-02",
		EndDate:   "2026-02-13",
	})
	require.NoError(t, err)

	_, err = svc.CreateTask(ctx, "42", service.CreateTaskInput{Title: "In sprint", SprintID: &sprint.ID})
	require.NoError(t, err)
	_, err = svc.CreateTask(ctx, "42", service.CreateTaskInput{Title: "Backlog"})
	require.NoError(t, err)

	all, err := svc.ListTasks(ctx, "42", nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	inSprint, err := svc.ListTasks(ctx, "42", &sprint.ID, nil)
	require.NoError(t, err)
	require.Len(t, inSprint, 1)
	assert.Equal(t, "In sprint", inSprint[0].Title)
}

func TestDeleteSprint_NotFound(t *testing.T) {
	svc := newPlanningFixture()
	err := svc.DeleteSprint(context.Background(), uuid.New())
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
