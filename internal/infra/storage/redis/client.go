// Package redis provides Redis-backed adapters for the resolver's optional
// interface cache.
package redis

import (
	"context"
	"time"

	redis "github.com/redis/go-redis/v9"
)

type client struct {
	conn *redis.Client
	ttl  time.Duration
}

// Close releases the underlying connection pool.
func (c *client) Close() error {
	return c.conn.Close()
}

// NewClient connects to Redis and verifies the connection with a ping.
// Cached entries expire after ttl; a zero ttl stores them without expiry.
func NewClient(ctx context.Context, addr, username, password string, db int, ttl time.Duration) (*client, error) {
	conn := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       db,
	})

	if err := conn.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &client{
		conn: conn,
		ttl:  ttl,
	}, nil
}
