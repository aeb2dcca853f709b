// Package cache holds the panel's shared state outside the database: the
// optional Redis connection backing the session store, and the in-memory
// caches for resolved sessions and measured column widths.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/taskmanager/taskmanager/logger"
)

var client *redis.Client

// InitRedis connects to the Redis server at addr and verifies it answers.
func InitRedis(ctx context.Context, addr string) (*redis.Client, error) {
	c := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	client = c
	logger.Info("Connected to Redis at ", addr)
	return c, nil
}

// GetClient returns the client created by InitRedis, or nil.
func GetClient() *redis.Client {
	return client
}

func CloseRedis() error {
	if client == nil {
		return nil
	}
	err := client.Close()
	client = nil
	return err
}
