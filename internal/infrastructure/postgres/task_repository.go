package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"standup-tracker/internal/domain/entity"
	"standup-tracker/internal/domain/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository creates a new PostgreSQL task repository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) Create(ctx context.Context, t *entity.Task) error {
	query := `
		INSERT INTO tasks (
			id, user_id, sprint_id, title, description, status,
			story_points, story_point_system, external_id, external_source, external_url,
			target_date, completed_at, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13, $14, $15
		)
	`

	_, err := r.pool.Exec(ctx, query,
		t.ID, t.UserID, t.SprintID, t.Title, t.Description, t.Status,
		t.StoryPoints, t.StoryPointSystem, t.ExternalID, t.ExternalSource, t.ExternalURL,
		t.TargetDate, t.CompletedAt, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	query := `
		SELECT
			id, user_id, sprint_id, title, description, status,
			story_points, story_point_system, external_id, external_source, external_url,
			target_date, completed_at, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`

	t := &entity.Task{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.UserID, &t.SprintID, &t.Title, &t.Description, &t.Status,
		&t.StoryPoints, &t.StoryPointSystem, &t.ExternalID, &t.ExternalSource, &t.ExternalURL,
		&t.TargetDate, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return t, nil
}

func (r *taskRepository) GetByUserID(ctx context.Context, userID string, sprintID *uuid.UUID, status *entity.TaskStatus) ([]*entity.Task, error) {
	query := `
		SELECT
			id, user_id, sprint_id, title, description, status,
			story_points, story_point_system, external_id, external_source, external_url,
			target_date, completed_at, created_at, updated_at
		FROM tasks
		WHERE user_id = $1
	`
	args := []any{userID}

	if sprintID != nil {
		args = append(args, *sprintID)
		query += fmt.Sprintf(" AND sprint_id = $%d", len(args))
	}
	if status != nil {
		args = append(args, *status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*entity.Task
	for rows.Next() {
		t := &entity.Task{}
		err := rows.Scan(
			&t.ID, &t.UserID, &t.SprintID, &t.Title, &t.Description, &t.Status,
			&t.StoryPoints, &t.StoryPointSystem, &t.ExternalID, &t.ExternalSource, &t.ExternalURL,
			&t.TargetDate, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, t *entity.Task) error {
	query := `
		UPDATE tasks SET
			sprint_id = $1,
			title = $2,
			description = $3,
			status = $4,
			story_points = $5,
			story_point_system = $6,
			external_id = $7,
			external_source = $8,
			external_url = $9,
			target_date = $10,
			completed_at = $11,
			updated_at = $12
		WHERE id = $13
	`

	result, err := r.pool.Exec(ctx, query,
		t.SprintID, t.Title, t.Description, t.Status,
		t.StoryPoints, t.StoryPointSystem, t.ExternalID, t.ExternalSource, t.ExternalURL,
		t.TargetDate, t.CompletedAt, t.UpdatedAt, t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}
