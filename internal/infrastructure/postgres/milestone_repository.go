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

type milestoneRepository struct {
	pool *pgxpool.Pool
}

// NewMilestoneRepository creates a new PostgreSQL milestone repository.
func NewMilestoneRepository(pool *pgxpool.Pool) repository.MilestoneRepository {
	return &milestoneRepository{pool: pool}
}

func (r *milestoneRepository) Create(ctx context.Context, m *entity.Milestone) error {
	query := `
		INSERT INTO milestones (
			id, user_id, title, description, target_date, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
	`

	_, err := r.pool.Exec(ctx, query,
		m.ID, m.UserID, m.Title, m.Description, m.TargetDate, m.Status,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create milestone: %w", err)
	}

	return nil
}

func (r *milestoneRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Milestone, error) {
	query := `
		SELECT id, user_id, title, description, target_date, status, created_at, updated_at
		FROM milestones
		WHERE id = $1
	`

	m := &entity.Milestone{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.UserID, &m.Title, &m.Description, &m.TargetDate, &m.Status,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get milestone: %w", err)
	}

	return m, nil
}

func (r *milestoneRepository) GetByUserID(ctx context.Context, userID string, status *entity.MilestoneStatus) ([]*entity.Milestone, error) {
	query := `
		SELECT id, user_id, title, description, target_date, status, created_at, updated_at
		FROM milestones
		WHERE user_id = $1
	`
	args := []any{userID}

	if status != nil {
		query += " AND status = $2"
		args = append(args, *status)
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get milestones: %w", err)
	}
	defer rows.Close()

	var milestones []*entity.Milestone
	for rows.Next() {
		m := &entity.Milestone{}
		err := rows.Scan(
			&m.ID, &m.UserID, &m.Title, &m.Description, &m.TargetDate, &m.Status,
			&m.CreatedAt, &m.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan milestone: %w", err)
		}
		milestones = append(milestones, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate milestones: %w", err)
	}

	return milestones, nil
}

func (r *milestoneRepository) Update(ctx context.Context, m *entity.Milestone) error {
	query := `
		UPDATE milestones SET
			title = $1,
			description = $2,
			target_date = $3,
			status = $4,
			updated_at = $5
		WHERE id = $6
	`

	result, err := r.pool.Exec(ctx, query,
		m.Title, m.Description, m.TargetDate, m.Status, m.UpdatedAt, m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update milestone: %w", err)
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *milestoneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM milestones WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete milestone: %w", err)
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}
