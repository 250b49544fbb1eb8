package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const pingTimeout = 2 * time.Second

// Client wraps the go-redis connection backing the login and
// registration rate limits. Redis holds only rate-limit counters here;
// sessions are stateless JWTs and never touch it.
type Client struct {
	rdb *goredis.Client
}

func New(addr, password string, db int) *Client {
	return &Client{
		rdb: goredis.NewClient(&goredis.Options{
			Addr:        addr,
			Password:    password,
			DB:          db,
			DialTimeout: 3 * time.Second,
			ReadTimeout: 2 * time.Second,
		}),
	}
}

// NewFromRedisClient wraps an existing go-redis client (tests use this
// with miniredis).
func NewFromRedisClient(rdb *goredis.Client) *Client {
	return &Client{rdb: rdb}
}

// Ping bounds its own wait so a down redis cannot stall bootstrap.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
