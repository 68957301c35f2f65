package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"trackmygoal/internal/model"
)

const friendshipColumns = `id, user_id, friend_id, status, created_at, updated_at`

type friendRepository struct {
	db *sqlx.DB
}

func NewFriendRepository(db *sqlx.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) LockByID(ctx context.Context, tx *sqlx.Tx, id int64) (*model.Friendship, error) {
	query := `SELECT ` + friendshipColumns + ` FROM friendships WHERE id = $1 FOR UPDATE`

	var f model.Friendship
	if err := sqlx.GetContext(ctx, conn(r.db, tx), &f, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to lock friendship: %w", err)
	}
	return &f, nil
}

func (r *friendRepository) LockPair(ctx context.Context, tx *sqlx.Tx, userID, friendID int64) (*model.Friendship, error) {
	query := `SELECT ` + friendshipColumns + ` FROM friendships WHERE user_id = $1 AND friend_id = $2 FOR UPDATE`

	var f model.Friendship
	if err := sqlx.GetContext(ctx, conn(r.db, tx), &f, query, userID, friendID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock friendship pair: %w", err)
	}
	return &f, nil
}

// Create inserts a pending row. Losing a race against a concurrent send for
// the same pair surfaces as ErrRequestAlreadyPending.
func (r *friendRepository) Create(ctx context.Context, tx *sqlx.Tx, userID, friendID int64) (*model.Friendship, error) {
	query := `
		INSERT INTO friendships (user_id, friend_id, status)
		VALUES ($1, $2, 'pending')
		RETURNING ` + friendshipColumns

	var f model.Friendship
	if err := sqlx.GetContext(ctx, conn(r.db, tx), &f, query, userID, friendID); err != nil {
		if isUniqueViolation(err, "friendships_pair_unique") {
			return nil, model.ErrRequestAlreadyPending
		}
		return nil, fmt.Errorf("failed to create friend request: %w", err)
	}
	return &f, nil
}

func (r *friendRepository) UpdateStatus(ctx context.Context, tx *sqlx.Tx, id int64, status model.FriendshipStatus) (*model.Friendship, error) {
	query := `
		UPDATE friendships
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + friendshipColumns

	var f model.Friendship
	if err := sqlx.GetContext(ctx, conn(r.db, tx), &f, query, status, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to update friendship status: %w", err)
	}
	return &f, nil
}

// UpsertAccepted keys on (user_id, friend_id), so repeated accepts converge
// on a single reciprocal row.
func (r *friendRepository) UpsertAccepted(ctx context.Context, tx *sqlx.Tx, userID, friendID int64) (*model.Friendship, error) {
	query := `
		INSERT INTO friendships (user_id, friend_id, status)
		VALUES ($1, $2, 'accepted')
		ON CONFLICT (user_id, friend_id)
		DO UPDATE SET status = 'accepted', updated_at = NOW()
		RETURNING ` + friendshipColumns

	var f model.Friendship
	if err := sqlx.GetContext(ctx, conn(r.db, tx), &f, query, userID, friendID); err != nil {
		return nil, fmt.Errorf("failed to upsert reciprocal friendship: %w", err)
	}
	return &f, nil
}

func (r *friendRepository) DeletePair(ctx context.Context, tx *sqlx.Tx, userID, friendID int64) (int64, error) {
	query := `DELETE FROM friendships WHERE user_id = $1 AND friend_id = $2`
	result, err := conn(r.db, tx).ExecContext(ctx, query, userID, friendID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete friendship: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}

func (r *friendRepository) ListAccepted(ctx context.Context, userID int64) ([]model.FriendWithUser, error) {
	query := `
		SELECT f.id, f.user_id, f.friend_id, f.status, f.created_at, f.updated_at,
		       u.id AS "friend.id", u.username AS "friend.username",
		       u.first_name AS "friend.first_name", u.last_name AS "friend.last_name",
		       u.avatar AS "friend.avatar"
		FROM friendships f
		JOIN users u ON u.id = f.friend_id
		WHERE f.user_id = $1 AND f.status = 'accepted'
		ORDER BY f.id
	`

	friends := []model.FriendWithUser{}
	if err := r.db.SelectContext(ctx, &friends, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	return friends, nil
}

func (r *friendRepository) ListPendingFor(ctx context.Context, userID int64) ([]model.FriendRequestWithUser, error) {
	query := `
		SELECT f.id, f.user_id, f.friend_id, f.status, f.created_at, f.updated_at,
		       u.id AS "requester.id", u.username AS "requester.username",
		       u.first_name AS "requester.first_name", u.last_name AS "requester.last_name",
		       u.avatar AS "requester.avatar"
		FROM friendships f
		JOIN users u ON u.id = f.user_id
		WHERE f.friend_id = $1 AND f.status = 'pending'
		ORDER BY f.id
	`

	requests := []model.FriendRequestWithUser{}
	if err := r.db.SelectContext(ctx, &requests, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list friend requests: %w", err)
	}
	return requests, nil
}

func (r *friendRepository) AreFriends(ctx context.Context, userID, friendID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM friendships WHERE user_id = $1 AND friend_id = $2 AND status = 'accepted')`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, friendID); err != nil {
		return false, fmt.Errorf("failed to check friendship: %w", err)
	}
	return exists, nil
}
