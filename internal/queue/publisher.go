package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"trackmygoal/internal/logger"
	"trackmygoal/internal/model"
)

// Publisher defines the interface for publishing events to a stream.
type Publisher interface {
	// Publish adds an event to the specified stream.
	// Returns the message ID assigned by Redis.
	Publish(ctx context.Context, stream string, event NotificationEvent) (messageID string, err error)
}

// RedisPublisher implements Publisher using Redis Streams.
type RedisPublisher struct {
	client *redis.Client
}

// NewPublisher creates a new Publisher backed by Redis Streams.
func NewPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// Publish adds an event to the stream using XADD with an auto-generated ID.
func (p *RedisPublisher) Publish(ctx context.Context, stream string, event NotificationEvent) (string, error) {
	startTime := time.Now()

	values, err := event.ToMap()
	if err != nil {
		logger.Error("Publish failed", "stream", stream, "type", event.Type, "error", err)
		return "", fmt.Errorf("serialize event: %w", err)
	}

	messageID, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: values,
	}).Result()
	if err != nil {
		logger.Error("Publish failed", "stream", stream, "type", event.Type, "error", err)
		return "", fmt.Errorf("xadd to stream: %w", err)
	}

	logger.Debug("Publish ok",
		"stream", stream,
		"type", event.Type,
		"event_id", event.ID,
		"msg_id", messageID,
		"duration", time.Since(startTime),
	)
	return messageID, nil
}

// NotificationPublisher adapts a Publisher to the notifier interface used by
// services, so notifications are stored by the workers instead of inline.
type NotificationPublisher struct {
	publisher Publisher
}

func NewNotificationPublisher(publisher Publisher) *NotificationPublisher {
	return &NotificationPublisher{publisher: publisher}
}

// CreateNotification enqueues n on the notification stream.
func (p *NotificationPublisher) CreateNotification(ctx context.Context, n model.NewNotification) error {
	event := NewNotificationRequestedEvent(n)
	if _, err := p.publisher.Publish(ctx, StreamNotifications, event); err != nil {
		return err
	}
	return nil
}
