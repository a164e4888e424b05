package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is the go-redis client plus the settings it was built from.
type Client struct {
	rdb    *redis.Client
	config *Config
}

// NewClient validates config (nil means defaults) and builds the client. No connection is
// made until the first command.
func NewClient(config *Config) (*Client, error) {
	if config == nil {
		config = NewRedisConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid redis configuration: %w", err)
	}

	return &Client{
		rdb: redis.NewClient(&redis.Options{
			Addr:         config.Addr(),
			Password:     config.Password,
			DB:           config.Database,
			MinIdleConns: config.MinIdleConns,
			PoolSize:     config.PoolSize,
			MaxRetries:   config.MaxRetries,
			DialTimeout:  config.DialTimeout,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
		}),
		config: config,
	}, nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

// GetClient exposes go-redis for scripts.
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

func (c *Client) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return c.rdb.Set(ctx, key, value, expiration).Err()
}

func (c *Client) Decr(ctx context.Context, key string) (int64, error) {
	return c.rdb.Decr(ctx, key).Result()
}

func (c *Client) Stats() *redis.PoolStats {
	return c.rdb.PoolStats()
}
