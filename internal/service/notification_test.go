package service

import (
	"context"
	"errors"
	"testing"

	"trackmygoal/internal/model"
)

func TestNotificationService_CreateNotification(t *testing.T) {
	repo := &mockNotificationRepository{}
	svc := NewNotificationService(repo)
	link := "/friends/requests"

	err := svc.CreateNotification(context.Background(), model.NewNotification{
		UserID: 2, Title: "  New friend request ", Message: "alice sent you a friend request", Link: &link,
	})

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("Create called %d times, want 1", len(repo.created))
	}
	if repo.created[0].Title != "New friend request" {
		t.Errorf("title = %q, want trimmed", repo.created[0].Title)
	}
}

func TestNotificationService_CreateNotification_Invalid(t *testing.T) {
	tests := []struct {
		name string
		n    model.NewNotification
	}{
		{"no recipient", model.NewNotification{Title: "hi"}},
		{"blank title", model.NewNotification{UserID: 1, Title: "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockNotificationRepository{}
			svc := NewNotificationService(repo)

			err := svc.CreateNotification(context.Background(), tt.n)

			if !errors.Is(err, model.ErrInvalidNotification) {
				t.Errorf("expected ErrInvalidNotification, got: %v", err)
			}
			if len(repo.created) != 0 {
				t.Error("invalid notification must not be stored")
			}
		})
	}
}

func TestNotificationService_CreateNotification_RepositoryError(t *testing.T) {
	repo := &mockNotificationRepository{
		createFn: func(ctx context.Context, n model.NewNotification) (*model.Notification, error) {
			return nil, errors.New("insert failed")
		},
	}

	if err := NewNotificationService(repo).CreateNotification(context.Background(), model.NewNotification{UserID: 1, Title: "x"}); err == nil {
		t.Error("expected error")
	}
}

func TestNotificationService_GetNotifications_Limits(t *testing.T) {
	tests := []struct {
		limit int
		want  int
	}{
		{0, 20},
		{-4, 20},
		{10, 10},
		{500, 50},
	}

	for _, tt := range tests {
		repo := &mockNotificationRepository{
			unreadCountFn: func(ctx context.Context, userID int64) (int, error) { return 3, nil },
		}
		svc := NewNotificationService(repo)

		resp, err := svc.GetNotifications(context.Background(), 1, tt.limit)

		if err != nil {
			t.Fatalf("limit %d: unexpected error: %v", tt.limit, err)
		}
		if repo.listLimits[0] != tt.want {
			t.Errorf("limit %d: repository limit = %d, want %d", tt.limit, repo.listLimits[0], tt.want)
		}
		if resp.UnreadCount != 3 || resp.Notifications == nil {
			t.Errorf("limit %d: response = %+v", tt.limit, resp)
		}
	}
}

func TestNotificationService_MarkAsRead(t *testing.T) {
	repo := &mockNotificationRepository{}
	svc := NewNotificationService(repo)
	ctx := context.Background()

	if err := svc.MarkAsRead(ctx, 1, nil); err != nil {
		t.Fatalf("empty ids: %v", err)
	}
	if len(repo.markReadCalls) != 0 {
		t.Error("empty id list should not reach the repository")
	}

	if err := svc.MarkAsRead(ctx, 1, []int64{4, 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.MarkAllAsRead(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.markReadCalls) != 1 || len(repo.markAllCalls) != 1 {
		t.Errorf("calls = %d mark, %d mark-all; want 1, 1", len(repo.markReadCalls), len(repo.markAllCalls))
	}
}

func TestNotificationService_GetUnreadCount(t *testing.T) {
	repo := &mockNotificationRepository{
		unreadCountFn: func(ctx context.Context, userID int64) (int, error) {
			if userID != 5 {
				t.Errorf("userID = %d, want 5", userID)
			}
			return 2, nil
		},
	}
	svc := NewNotificationService(repo)

	count, err := svc.GetUnreadCount(context.Background(), 5)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}
