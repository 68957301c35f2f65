package worker

import (
	"context"
	"fmt"
	"time"

	"trackmygoal/internal/logger"
	"trackmygoal/internal/model"
	"trackmygoal/internal/queue"
)

// NotificationCreator stores a notification. NotificationService satisfies it.
type NotificationCreator interface {
	CreateNotification(ctx context.Context, n model.NewNotification) error
}

// Handler processes events from the notification stream.
type Handler struct {
	notifCreator NotificationCreator
}

// NewHandler creates a new event handler.
func NewHandler(notifCreator NotificationCreator) *Handler {
	return &Handler{notifCreator: notifCreator}
}

// HandleEvent routes an event to the appropriate handler based on type.
func (h *Handler) HandleEvent(ctx context.Context, event queue.NotificationEvent) error {
	startTime := time.Now()
	var err error

	switch event.Type {
	case queue.EventNotificationRequested:
		err = h.handleNotificationRequested(ctx, event)
	default:
		logger.Warn("Unknown event type", "type", event.Type, "event_id", event.ID)
		return fmt.Errorf("unknown event type: %s", event.Type)
	}

	if err != nil {
		logger.Error("HandleEvent failed",
			"type", event.Type,
			"event_id", event.ID,
			"duration", time.Since(startTime),
			"error", err,
		)
		return err
	}

	logger.Debug("HandleEvent ok", "type", event.Type, "event_id", event.ID, "duration", time.Since(startTime))
	return nil
}

// handleNotificationRequested tags the notification with the event id so a
// redelivered message does not store it twice.
func (h *Handler) handleNotificationRequested(ctx context.Context, event queue.NotificationEvent) error {
	n := event.Notification
	n.EventID = event.ID
	if err := h.notifCreator.CreateNotification(ctx, n); err != nil {
		return fmt.Errorf("create notification for user %d: %w", event.Notification.UserID, err)
	}
	return nil
}
