package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"standup-tracker/internal/domain/entity"
	"standup-tracker/internal/domain/repository"
)

type standupRepository struct {
	pool *pgxpool.Pool
}

// NewStandupRepository creates a new PostgreSQL standup repository.
func NewStandupRepository(pool *pgxpool.Pool) repository.StandupRepository {
	return &standupRepository{pool: pool}
}

func (r *standupRepository) Create(ctx context.Context, standup *entity.StandupEntry) error {
	query := `
		INSERT INTO standups (
			id, user_id, date, work_completed, work_planned, blockers,
			task_ids, commits, repo_full_name, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11
		)
	`

	taskIDs, commits, err := marshalStandupJSON(standup)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, query,
		standup.ID, standup.UserID, standup.Date,
		standup.WorkCompleted, standup.WorkPlanned, standup.Blockers,
		taskIDs, commits, standup.RepoFullName,
		standup.CreatedAt, standup.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create standup: %w", err)
	}

	return nil
}

func (r *standupRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.StandupEntry, error) {
	query := `
		SELECT
			id, user_id, date, work_completed, work_planned, blockers,
			task_ids, commits, repo_full_name, created_at, updated_at
		FROM standups
		WHERE id = $1
	`

	standup, err := scanStandup(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get standup: %w", err)
	}

	return standup, nil
}

func (r *standupRepository) GetByUserID(ctx context.Context, userID string) ([]*entity.StandupEntry, error) {
	query := `
		SELECT
			id, user_id, date, work_completed, work_planned, blockers,
			task_ids, commits, repo_full_name, created_at, updated_at
		FROM standups
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get standups: %w", err)
	}
	defer rows.Close()

	var standups []*entity.StandupEntry
	for rows.Next() {
		standup, err := scanStandup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan standup: %w", err)
		}
		standups = append(standups, standup)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate standups: %w", err)
	}

	return standups, nil
}

func (r *standupRepository) ExistsForDate(ctx context.Context, userID, date string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM standups WHERE user_id = $1 AND date = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check standup existence: %w", err)
	}

	return exists, nil
}

func (r *standupRepository) Update(ctx context.Context, standup *entity.StandupEntry) error {
	query := `
		UPDATE standups SET
			date = $1,
			work_completed = $2,
			work_planned = $3,
			blockers = $4,
			task_ids = $5,
			updated_at = $6
		WHERE id = $7
	`

	taskIDs, err := json.Marshal(standup.TaskIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal task ids: %w", err)
	}

	result, err := r.pool.Exec(ctx, query,
		standup.Date, standup.WorkCompleted, standup.WorkPlanned,
		standup.Blockers, taskIDs, standup.UpdatedAt, standup.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update standup: %w", err)
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *standupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM standups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete standup: %w", err)
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func marshalStandupJSON(standup *entity.StandupEntry) (taskIDs, commits []byte, err error) {
	taskIDs, err = json.Marshal(standup.TaskIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal task ids: %w", err)
	}
	commits, err = json.Marshal(standup.Commits)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal commits: %w", err)
	}
	return taskIDs, commits, nil
}

func scanStandup(row pgx.Row) (*entity.StandupEntry, error) {
	standup := &entity.StandupEntry{}
	var taskIDs, commits []byte

	err := row.Scan(
		&standup.ID, &standup.UserID, &standup.Date,
		&standup.WorkCompleted, &standup.WorkPlanned, &standup.Blockers,
		&taskIDs, &commits, &standup.RepoFullName,
		&standup.CreatedAt, &standup.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(taskIDs, &standup.TaskIDs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task ids: %w", err)
	}
	if err := json.Unmarshal(commits, &standup.Commits); err != nil {
		return nil, fmt.Errorf("failed to unmarshal commits: %w", err)
	}

	return standup, nil
}
