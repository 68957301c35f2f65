package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"trackmygoal/internal/logger"
)

const pingTimeout = 5 * time.Second

// Client is the shared Redis connection used by the notification queue.
type Client struct {
	*redis.Client
}

// Connect parses a redis:// URL, opens a pooled client and pings it so the
// server fails fast when Redis is configured but unreachable.
func Connect(ctx context.Context, redisURL string) (*Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := &Client{Client: redis.NewClient(opts)}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Client.Ping(pingCtx).Err(); err != nil {
		_ = client.Client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	logger.Info("Connected to redis", "addr", opts.Addr, "db", opts.DB)
	return client, nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.Client.Close()
}
