package service

import (
	"context"

	"trackmygoal/internal/model"
	"trackmygoal/internal/repository"
)

// VisibilityService exposes the public slice of users' goals to their friends.
// Nothing is cached; every call reads the current goal rows.
type VisibilityService struct {
	userRepo   repository.UserRepository
	goalRepo   repository.GoalRepository
	friendRepo repository.FriendRepository
}

func NewVisibilityService(
	userRepo repository.UserRepository,
	goalRepo repository.GoalRepository,
	friendRepo repository.FriendRepository,
) *VisibilityService {
	return &VisibilityService{
		userRepo:   userRepo,
		goalRepo:   goalRepo,
		friendRepo: friendRepo,
	}
}

// GetPublicGoalsOfFriend returns the public goals of friendUserID in goal order,
// each tagged with the owner's name and its progress.
func (s *VisibilityService) GetPublicGoalsOfFriend(ctx context.Context, friendUserID int64) ([]model.FriendGoal, error) {
	owner, err := s.userRepo.GetByID(ctx, friendUserID)
	if err != nil {
		return nil, err
	}

	goals, err := s.goalRepo.ListPublicByUser(ctx, owner.ID)
	if err != nil {
		return nil, err
	}

	summary := owner.Summary()
	result := make([]model.FriendGoal, 0, len(goals))
	for _, g := range goals {
		result = append(result, toFriendGoal(g, &summary))
	}
	return result, nil
}

// CanView returns model.ErrNotFriends unless viewerID owns the goals or has an
// accepted friendship towards ownerID.
func (s *VisibilityService) CanView(ctx context.Context, viewerID, ownerID int64) error {
	if viewerID == ownerID {
		return nil
	}

	ok, err := s.friendRepo.AreFriends(ctx, viewerID, ownerID)
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrNotFriends
	}
	return nil
}

// GetAggregatedPublicGoals flattens the public goals of every accepted friend
// of userID. Friends keep their friend-list order and goals keep goal order.
//
// The goals of all friends are loaded with one batched query.
func (s *VisibilityService) GetAggregatedPublicGoals(ctx context.Context, userID int64) ([]model.FriendGoal, error) {
	friends, err := s.friendRepo.ListAccepted(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(friends) == 0 {
		return []model.FriendGoal{}, nil
	}

	friendIDs := make([]int64, len(friends))
	for i, f := range friends {
		friendIDs[i] = f.Friend.ID
	}

	goals, err := s.goalRepo.ListPublicByUsers(ctx, friendIDs)
	if err != nil {
		return nil, err
	}

	byOwner := make(map[int64][]model.Goal, len(friends))
	for _, g := range goals {
		byOwner[g.UserID] = append(byOwner[g.UserID], g)
	}

	result := make([]model.FriendGoal, 0, len(goals))
	for i := range friends {
		friend := &friends[i].Friend
		for _, g := range byOwner[friend.ID] {
			result = append(result, toFriendGoal(g, friend))
		}
	}
	return result, nil
}

func toFriendGoal(g model.Goal, owner *model.UserSummary) model.FriendGoal {
	return model.FriendGoal{
		Goal:           g.WithProgress(),
		FriendID:       owner.ID,
		FriendUsername: owner.Username,
		FriendName:     owner.DisplayName(),
	}
}
