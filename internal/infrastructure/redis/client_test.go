package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func TestClient_PingAndClose(t *testing.T) {
	mr := miniredis.RunT(t)

	c := New(mr.Addr(), "", 0)
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("ping err: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("close err: %v", err)
	}
}

func TestClient_Ping_Unreachable(t *testing.T) {
	c := New("127.0.0.1:1", "", 0)
	defer c.Close()

	if err := c.Ping(context.Background()); err == nil {
		t.Fatalf("expected error for unreachable redis")
	}
}

func TestNewFromRedisClient_Wraps(t *testing.T) {
	mr := miniredis.RunT(t)

	c := NewFromRedisClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	defer c.Close()

	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("ping err: %v", err)
	}
}
