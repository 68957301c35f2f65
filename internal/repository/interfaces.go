package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"trackmygoal/internal/model"
)

// Methods that take a *sqlx.Tx run on the plain connection when tx is nil.

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, user *model.User) error
}

type GoalRepository interface {
	// NextID bumps the owner's goal counter and returns the new id.
	NextID(ctx context.Context, tx *sqlx.Tx, userID int64) (int, error)
	Create(ctx context.Context, tx *sqlx.Tx, goal *model.Goal) error
	GetByID(ctx context.Context, userID int64, goalID int) (*model.Goal, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Goal, error)
	ListPublicByUser(ctx context.Context, userID int64) ([]model.Goal, error)
	// ListPublicByUsers returns public goals of several users ordered by (user_id, id).
	ListPublicByUsers(ctx context.Context, userIDs []int64) ([]model.Goal, error)
	Update(ctx context.Context, goal *model.Goal) error
	Delete(ctx context.Context, userID int64, goalID int) error
}

type FriendRepository interface {
	// LockByID loads a row with FOR UPDATE. Returns model.ErrRequestNotFound when absent.
	LockByID(ctx context.Context, tx *sqlx.Tx, id int64) (*model.Friendship, error)
	// LockPair loads the userID -> friendID row with FOR UPDATE, or nil when absent.
	LockPair(ctx context.Context, tx *sqlx.Tx, userID, friendID int64) (*model.Friendship, error)
	Create(ctx context.Context, tx *sqlx.Tx, userID, friendID int64) (*model.Friendship, error)
	UpdateStatus(ctx context.Context, tx *sqlx.Tx, id int64, status model.FriendshipStatus) (*model.Friendship, error)
	// UpsertAccepted creates or promotes the userID -> friendID row to accepted.
	UpsertAccepted(ctx context.Context, tx *sqlx.Tx, userID, friendID int64) (*model.Friendship, error)
	// DeletePair removes the userID -> friendID row and reports how many rows went away.
	DeletePair(ctx context.Context, tx *sqlx.Tx, userID, friendID int64) (int64, error)
	ListAccepted(ctx context.Context, userID int64) ([]model.FriendWithUser, error)
	ListPendingFor(ctx context.Context, userID int64) ([]model.FriendRequestWithUser, error)
	AreFriends(ctx context.Context, userID, friendID int64) (bool, error)
}

type NotificationRepository interface {
	// Create returns (nil, nil) for a duplicate NewNotification.EventID.
	Create(ctx context.Context, n model.NewNotification) (*model.Notification, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]model.Notification, error)
	MarkAsRead(ctx context.Context, userID int64, notificationIDs []int64) error
	MarkAllAsRead(ctx context.Context, userID int64) error
	GetUnreadCount(ctx context.Context, userID int64) (int, error)
}
