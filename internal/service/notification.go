package service

import (
	"context"
	"strings"

	"trackmygoal/internal/model"
	"trackmygoal/internal/repository"
)

const (
	defaultNotificationLimit = 20
	maxNotificationLimit     = 50
)

// NotificationService stores in-app notifications and serves the inbox.
type NotificationService struct {
	notifRepo repository.NotificationRepository
}

func NewNotificationService(notifRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifRepo: notifRepo}
}

// CreateNotification inserts one notification. It is called inline by the
// friend service or by the stream workers.
func (s *NotificationService) CreateNotification(ctx context.Context, n model.NewNotification) error {
	n.Title = strings.TrimSpace(n.Title)
	if n.UserID <= 0 || n.Title == "" {
		return model.ErrInvalidNotification
	}

	_, err := s.notifRepo.Create(ctx, n)
	return err
}

// GetNotifications returns the newest notifications with the unread badge count.
func (s *NotificationService) GetNotifications(ctx context.Context, userID int64, limit int) (*model.NotificationListResponse, error) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	if limit > maxNotificationLimit {
		limit = maxNotificationLimit
	}

	notifications, err := s.notifRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	unread, err := s.notifRepo.GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.NotificationListResponse{
		Notifications: notifications,
		UnreadCount:   unread,
	}, nil
}

// MarkAsRead marks specific notifications as read. Ids owned by other users are ignored.
func (s *NotificationService) MarkAsRead(ctx context.Context, userID int64, notificationIDs []int64) error {
	if len(notificationIDs) == 0 {
		return nil
	}
	return s.notifRepo.MarkAsRead(ctx, userID, notificationIDs)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.notifRepo.MarkAllAsRead(ctx, userID)
}

// GetUnreadCount returns the number of unread notifications (for badge display).
func (s *NotificationService) GetUnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.notifRepo.GetUnreadCount(ctx, userID)
}
