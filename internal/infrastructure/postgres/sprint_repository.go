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

type sprintRepository struct {
	pool *pgxpool.Pool
}

// NewSprintRepository creates a new PostgreSQL sprint repository.
func NewSprintRepository(pool *pgxpool.Pool) repository.SprintRepository {
	return &sprintRepository{pool: pool}
}

func (r *sprintRepository) Create(ctx context.Context, s *entity.Sprint) error {
	query := `
		INSERT INTO sprints (
			id, user_id, milestone_id, title, description,
			start_date, end_date, status, target_points, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10, $11
		)
	`

	_, err := r.pool.Exec(ctx, query,
		s.ID, s.UserID, s.MilestoneID, s.Title, s.Description,
		s.StartDate, s.EndDate, s.Status, s.TargetPoints,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create sprint: %w", err)
	}

	return nil
}

func (r *sprintRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sprint, error) {
	query := `
		SELECT
			id, user_id, milestone_id, title, description,
			start_date, end_date, status, target_points, created_at, updated_at
		FROM sprints
		WHERE id = $1
	`

	s := &entity.Sprint{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.UserID, &s.MilestoneID, &s.Title, &s.Description,
		&s.StartDate, &s.EndDate, &s.Status, &s.TargetPoints,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get sprint: %w", err)
	}

	return s, nil
}

func (r *sprintRepository) GetByUserID(ctx context.Context, userID string, milestoneID *uuid.UUID) ([]*entity.Sprint, error) {
	query := `
		SELECT
			id, user_id, milestone_id, title, description,
			start_date, end_date, status, target_points, created_at, updated_at
		FROM sprints
		WHERE user_id = $1
	`
	args := []any{userID}

	if milestoneID != nil {
		query += " AND milestone_id = $2"
		args = append(args, *milestoneID)
	}

	query += " ORDER BY start_date DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get sprints: %w", err)
	}
	defer rows.Close()

	var sprints []*entity.Sprint
	for rows.Next() {
		s := &entity.Sprint{}
		err := rows.Scan(
			&s.ID, &s.UserID, &s.MilestoneID, &s.Title, &s.Description,
			&s.StartDate, &s.EndDate, &s.Status, &s.TargetPoints,
			&s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sprint: %w", err)
		}
		sprints = append(sprints, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sprints: %w", err)
	}

	return sprints, nil
}

func (r *sprintRepository) Update(ctx context.Context, s *entity.Sprint) error {
	query := `
		UPDATE sprints SET
			milestone_id = $1,
			title = $2,
			description = $3,
			start_date = $4,
			end_date = $5,
			status = $6,
			target_points = $7,
			updated_at = $8
		WHERE id = $9
	`

	result, err := r.pool.Exec(ctx, query,
		s.MilestoneID, s.Title, s.Description, s.StartDate, s.EndDate,
		s.Status, s.TargetPoints, s.UpdatedAt, s.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update sprint: %w", err)
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *sprintRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM sprints WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sprint: %w", err)
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}
