package model

import (
	"errors"
	"time"
)

// FriendshipStatus is the state of one directed relationship row.
type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	FriendshipDeclined FriendshipStatus = "declined"
)

// Friendship is a directed edge UserID -> FriendID. A mutual friendship is
// two accepted rows, one per direction.
type Friendship struct {
	ID        int64            `db:"id" json:"id"`
	UserID    int64            `db:"user_id" json:"userId"`
	FriendID  int64            `db:"friend_id" json:"friendId"`
	Status    FriendshipStatus `db:"status" json:"status"`
	CreatedAt time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time        `db:"updated_at" json:"updatedAt"`
}

// FriendWithUser is an accepted row joined with the friend's details.
type FriendWithUser struct {
	Friendship
	Friend UserSummary `db:"friend" json:"friend"`
}

// FriendRequestWithUser is a pending row joined with the requester's details.
type FriendRequestWithUser struct {
	Friendship
	Requester UserSummary `db:"requester" json:"requester"`
}

// SendFriendRequest is the body of POST /friends/send.
type SendFriendRequest struct {
	UserID         int64  `json:"userId"`
	FriendUsername string `json:"friendUsername"`
}

var (
	ErrSelfRequest           = errors.New("you cannot send a friend request to yourself")
	ErrRequestNotFound       = errors.New("friend request not found")
	ErrRequestAlreadyPending = errors.New("friend request already sent")
	ErrReverseRequestPending = errors.New("this user has already sent you a friend request")
	ErrAlreadyFriends        = errors.New("already friends with this user")
	ErrRequestNotPending     = errors.New("friend request is no longer pending")
)
