package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"trackmygoal/internal/model"
)

const goalColumns = `user_id, id, title, category, current_value, target_value, unit,
	start_date, end_date, public, created_at, updated_at`

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

// NextID replaces a max(id)+1 scan with a per-user counter. The row lock taken
// by the UPDATE serialises concurrent creates for the same user.
func (r *goalRepository) NextID(ctx context.Context, tx *sqlx.Tx, userID int64) (int, error) {
	query := `UPDATE users SET goal_seq = goal_seq + 1 WHERE id = $1 RETURNING goal_seq`

	var id int
	if err := sqlx.GetContext(ctx, conn(r.db, tx), &id, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, model.ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to allocate goal id: %w", err)
	}
	return id, nil
}

func (r *goalRepository) Create(ctx context.Context, tx *sqlx.Tx, g *model.Goal) error {
	query := `
		INSERT INTO user_goals (user_id, id, title, category, current_value, target_value, unit,
		                        start_date, end_date, public, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	row := conn(r.db, tx).QueryRowxContext(ctx, query,
		g.UserID, g.ID, g.Title, g.Category, g.CurrentValue, g.TargetValue, g.Unit,
		g.StartDate, g.EndDate, g.Public,
	)
	if err := row.Scan(&g.CreatedAt, &g.UpdatedAt); err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}
	return nil
}

func (r *goalRepository) GetByID(ctx context.Context, userID int64, goalID int) (*model.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM user_goals WHERE user_id = $1 AND id = $2`

	var g model.Goal
	if err := r.db.GetContext(ctx, &g, query, userID, goalID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return &g, nil
}

func (r *goalRepository) ListByUser(ctx context.Context, userID int64) ([]model.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM user_goals WHERE user_id = $1 ORDER BY id`

	goals := []model.Goal{}
	if err := r.db.SelectContext(ctx, &goals, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

func (r *goalRepository) ListPublicByUser(ctx context.Context, userID int64) ([]model.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM user_goals WHERE user_id = $1 AND public ORDER BY id`

	goals := []model.Goal{}
	if err := r.db.SelectContext(ctx, &goals, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list public goals: %w", err)
	}
	return goals, nil
}

// ListPublicByUsers batches the lookup for several owners in one query
// (user_id = ANY($1)) instead of one query per friend.
func (r *goalRepository) ListPublicByUsers(ctx context.Context, userIDs []int64) ([]model.Goal, error) {
	if len(userIDs) == 0 {
		return []model.Goal{}, nil
	}

	query := `SELECT ` + goalColumns + ` FROM user_goals WHERE user_id = ANY($1) AND public ORDER BY user_id, id`

	goals := []model.Goal{}
	if err := r.db.SelectContext(ctx, &goals, query, pq.Array(userIDs)); err != nil {
		return nil, fmt.Errorf("failed to list public goals for users: %w", err)
	}
	return goals, nil
}

func (r *goalRepository) Update(ctx context.Context, g *model.Goal) error {
	query := `
		UPDATE user_goals
		SET title = $1, category = $2, current_value = $3, target_value = $4, unit = $5,
		    start_date = $6, end_date = $7, public = $8, updated_at = NOW()
		WHERE user_id = $9 AND id = $10
		RETURNING updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		g.Title, g.Category, g.CurrentValue, g.TargetValue, g.Unit,
		g.StartDate, g.EndDate, g.Public, g.UserID, g.ID,
	).Scan(&g.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ErrGoalNotFound
		}
		return fmt.Errorf("failed to update goal: %w", err)
	}
	return nil
}

func (r *goalRepository) Delete(ctx context.Context, userID int64, goalID int) error {
	query := `DELETE FROM user_goals WHERE user_id = $1 AND id = $2`
	result, err := r.db.ExecContext(ctx, query, userID, goalID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrGoalNotFound
	}
	return nil
}
