package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/brandonbohn/adebackend/common/config"

	"github.com/go-redis/redis/v8"
)

// Client is the go-redis client shared by the cache, the event stream and the admin CLI.
type Client = redis.Client

const dialTimeout = 2 * time.Second

// NewRedisClient builds a client for cfg. It does not dial.
func NewRedisClient(cfg *config.RedisConfig) *Client {
	return redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: dialTimeout,
		MaxRetries:  1,
	})
}

// Connect builds a client and pings it within timeout. On failure the
// client is closed and nil is returned.
func Connect(ctx context.Context, cfg *config.RedisConfig, timeout time.Duration) (*Client, error) {
	c := NewRedisClient(cfg)
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := Ping(pingCtx, c); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis %s unreachable: %w", cfg.Addr, err)
	}
	return c, nil
}

func Ping(ctx context.Context, client *Client) error {
	return client.Ping(ctx).Err()
}

func Close(client *Client) error {
	return client.Close()
}
