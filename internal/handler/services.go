package handler

import (
	"context"

	"trackmygoal/internal/model"
)

// The handlers depend on these narrow views of the service layer so that
// tests can substitute fakes. *service.X types satisfy them.

type UserService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int64, req *model.UpdateProfileRequest) (*model.User, error)
}

type TokenIssuer interface {
	GenerateAccessToken(userID int64) (string, error)
	ExpiresIn() int
}

type FriendService interface {
	SendRequest(ctx context.Context, userID int64, friendUsername string) (*model.Friendship, error)
	AcceptRequest(ctx context.Context, requestID int64) (*model.Friendship, error)
	DeclineRequest(ctx context.Context, requestID int64) (*model.Friendship, error)
	ListFriends(ctx context.Context, userID int64) ([]model.FriendWithUser, error)
	ListPendingRequests(ctx context.Context, userID int64) ([]model.FriendRequestWithUser, error)
	DeleteFriendship(ctx context.Context, userID, friendID int64) error
}

type GoalService interface {
	ListGoals(ctx context.Context, userID int64) ([]model.Goal, error)
	CreateGoal(ctx context.Context, userID int64, req *model.CreateGoalRequest) (*model.Goal, error)
	UpdateGoal(ctx context.Context, userID int64, goalID int, req *model.UpdateGoalRequest) (*model.Goal, error)
	DeleteGoal(ctx context.Context, userID int64, goalID int) error
}

type VisibilityService interface {
	GetPublicGoalsOfFriend(ctx context.Context, friendUserID int64) ([]model.FriendGoal, error)
	CanView(ctx context.Context, viewerID, ownerID int64) error
	GetAggregatedPublicGoals(ctx context.Context, userID int64) ([]model.FriendGoal, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int64, limit int) (*model.NotificationListResponse, error)
	MarkAsRead(ctx context.Context, userID int64, notificationIDs []int64) error
	MarkAllAsRead(ctx context.Context, userID int64) error
	GetUnreadCount(ctx context.Context, userID int64) (int, error)
}
