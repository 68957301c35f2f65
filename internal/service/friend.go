package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"trackmygoal/internal/logger"
	"trackmygoal/internal/model"
	"trackmygoal/internal/repository"
	"trackmygoal/internal/validation"
)

const friendRequestsLink = "/friends/requests"

// Notifier receives relationship events. Delivery is best-effort: the friend
// service logs and drops notifier errors.
type Notifier interface {
	CreateNotification(ctx context.Context, n model.NewNotification) error
}

// FriendService implements the directed friend-request lifecycle.
type FriendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
	tx         repository.TxRunner
	notifier   Notifier // Can be nil if notifications are not wired
}

func NewFriendService(
	friendRepo repository.FriendRepository,
	userRepo repository.UserRepository,
	tx repository.TxRunner,
	notifier Notifier,
) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
		tx:         tx,
		notifier:   notifier,
	}
}

// SendRequest creates a pending userID -> friendUsername request.
//
// The pair rows are locked inside one transaction, so a second send while a
// request is pending, or between friends, is rejected instead of producing a
// duplicate row. A previously declined request is reopened.
func (s *FriendService) SendRequest(ctx context.Context, userID int64, friendUsername string) (*model.Friendship, error) {
	friendUsername = strings.TrimSpace(friendUsername)
	if err := validation.Required("friendUsername", friendUsername); err != nil {
		return nil, err
	}

	requester, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if requester.Username == friendUsername {
		return nil, model.ErrSelfRequest
	}

	target, err := s.userRepo.GetByUsername(ctx, friendUsername)
	if err != nil {
		return nil, err
	}

	var request *model.Friendship
	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		existing, err := s.friendRepo.LockPair(ctx, tx, requester.ID, target.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			switch existing.Status {
			case model.FriendshipPending:
				return model.ErrRequestAlreadyPending
			case model.FriendshipAccepted:
				return model.ErrAlreadyFriends
			}
		}

		// Both the insert and the declined-reopen path must not leave the pair
		// pending in both directions.
		reverse, err := s.friendRepo.LockPair(ctx, tx, target.ID, requester.ID)
		if err != nil {
			return err
		}
		if reverse != nil && reverse.Status == model.FriendshipPending {
			return model.ErrReverseRequestPending
		}

		if existing != nil {
			request, err = s.friendRepo.UpdateStatus(ctx, tx, existing.ID, model.FriendshipPending)
			return err
		}
		request, err = s.friendRepo.Create(ctx, tx, requester.ID, target.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	link := friendRequestsLink
	s.notify(ctx, "send_request", model.NewNotification{
		UserID:  target.ID,
		Title:   "New friend request",
		Message: fmt.Sprintf("%s sent you a friend request", requester.Username),
		Link:    &link,
	})

	return request, nil
}

// AcceptRequest marks the request accepted and upserts the reciprocal row in
// the same transaction. Accepting an already accepted request returns it
// unchanged and still leaves exactly one reciprocal row.
func (s *FriendService) AcceptRequest(ctx context.Context, requestID int64) (*model.Friendship, error) {
	var accepted *model.Friendship
	var transitioned bool

	err := s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		request, err := s.friendRepo.LockByID(ctx, tx, requestID)
		if err != nil {
			return err
		}

		switch request.Status {
		case model.FriendshipDeclined:
			return model.ErrRequestNotPending
		case model.FriendshipAccepted:
			accepted = request
		default:
			accepted, err = s.friendRepo.UpdateStatus(ctx, tx, request.ID, model.FriendshipAccepted)
			if err != nil {
				return err
			}
			transitioned = true
		}

		_, err = s.friendRepo.UpsertAccepted(ctx, tx, request.FriendID, request.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if transitioned {
		s.notify(ctx, "accept_request", model.NewNotification{
			UserID:  accepted.UserID,
			Title:   "Friend request accepted",
			Message: fmt.Sprintf("%s accepted your friend request", s.usernameOrDefault(ctx, accepted.FriendID)),
			Link:    nil,
		})
	}

	return accepted, nil
}

// DeclineRequest returns (nil, nil) when requestID does not exist. Accepted
// friendships cannot be declined; they are removed with DeleteFriendship.
func (s *FriendService) DeclineRequest(ctx context.Context, requestID int64) (*model.Friendship, error) {
	var declined *model.Friendship

	err := s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		request, err := s.friendRepo.LockByID(ctx, tx, requestID)
		if err != nil {
			if errors.Is(err, model.ErrRequestNotFound) {
				return nil
			}
			return err
		}

		switch request.Status {
		case model.FriendshipAccepted:
			return model.ErrRequestNotPending
		case model.FriendshipDeclined:
			declined = request
			return nil
		}

		declined, err = s.friendRepo.UpdateStatus(ctx, tx, request.ID, model.FriendshipDeclined)
		return err
	})
	if err != nil {
		return nil, err
	}

	return declined, nil
}

// ListFriends returns the accepted rows owned by userID with the friend joined in.
func (s *FriendService) ListFriends(ctx context.Context, userID int64) ([]model.FriendWithUser, error) {
	return s.friendRepo.ListAccepted(ctx, userID)
}

// ListPendingRequests returns pending rows addressed to userID with the requester joined in.
func (s *FriendService) ListPendingRequests(ctx context.Context, userID int64) ([]model.FriendRequestWithUser, error) {
	return s.friendRepo.ListPendingFor(ctx, userID)
}

// DeleteFriendship removes both directions atomically. Missing rows are not
// an error.
func (s *FriendService) DeleteFriendship(ctx context.Context, userID, friendID int64) error {
	var removed int64

	err := s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		forward, err := s.friendRepo.DeletePair(ctx, tx, userID, friendID)
		if err != nil {
			return err
		}
		backward, err := s.friendRepo.DeletePair(ctx, tx, friendID, userID)
		if err != nil {
			return err
		}
		removed = forward + backward
		return nil
	})
	if err != nil {
		return err
	}

	logger.Debug("Friendship deleted", "user_id", userID, "friend_id", friendID, "rows", removed)
	return nil
}

// AreFriends reports whether userID has an accepted row towards friendID.
func (s *FriendService) AreFriends(ctx context.Context, userID, friendID int64) (bool, error) {
	return s.friendRepo.AreFriends(ctx, userID, friendID)
}

func (s *FriendService) notify(ctx context.Context, operation string, n model.NewNotification) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.CreateNotification(ctx, n); err != nil {
		logger.Warn("Failed to emit notification",
			"operation", operation,
			"recipient", n.UserID,
			"error", err,
		)
	}
}

func (s *FriendService) usernameOrDefault(ctx context.Context, userID int64) string {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Warn("Failed to load user for notification", "user_id", userID, "error", err)
		return "Someone"
	}
	return user.Username
}
