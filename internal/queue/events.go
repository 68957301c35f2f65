package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"trackmygoal/internal/model"
)

// Event types for the notification stream
const (
	EventNotificationRequested = "notification_requested"
)

// Stream names
const (
	StreamNotifications = "stream:notifications"
)

// Consumer group name for notification workers
const (
	ConsumerGroupNotifications = "notification_workers"
)

// NotificationEvent asks a worker to store one notification.
type NotificationEvent struct {
	ID        string `json:"id"`        // uuid, dedupe key for at-least-once delivery
	Type      string `json:"type"`      // EventNotificationRequested
	Timestamp int64  `json:"timestamp"` // Unix timestamp when the event was emitted

	Notification model.NewNotification `json:"notification"`
}

// NewNotificationRequestedEvent wraps n in a freshly identified event.
func NewNotificationRequestedEvent(n model.NewNotification) NotificationEvent {
	return NotificationEvent{
		ID:           uuid.NewString(),
		Type:         EventNotificationRequested,
		Timestamp:    time.Now().Unix(),
		Notification: n,
	}
}

// ToMap converts the event to a map for Redis XADD.
// Redis Streams store field-value pairs, so we serialize to JSON in a "data" field.
func (e NotificationEvent) ToMap() (map[string]interface{}, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return map[string]interface{}{
		"type": e.Type,
		"data": string(data),
	}, nil
}

// ParseNotificationEvent parses an event from Redis stream message values.
func ParseNotificationEvent(values map[string]interface{}) (NotificationEvent, error) {
	data, ok := values["data"].(string)
	if !ok {
		return NotificationEvent{}, fmt.Errorf("missing or invalid 'data' field")
	}

	var event NotificationEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return NotificationEvent{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return event, nil
}
