package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Gate guards against overlapping generation requests for the same
// session key across server instances.
type Gate interface {
	TryAcquire(ctx context.Context, key string) bool
	Release(ctx context.Context, key string)
}

// RedisGate takes a short-lived SetNX lock per session. When redis is
// unreachable it lets the call through; the per-session busy flag
// still guards a single instance.
type RedisGate struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisGate(rdb *redis.Client, ttl time.Duration) *RedisGate {
	return &RedisGate{rdb: rdb, ttl: ttl}
}

func (g *RedisGate) TryAcquire(ctx context.Context, key string) bool {
	ok, err := g.rdb.SetNX(ctx, "inflight:"+key, 1, g.ttl).Result()
	if err != nil {
		return true
	}
	return ok
}

func (g *RedisGate) Release(ctx context.Context, key string) {
	g.rdb.Del(ctx, "inflight:"+key)
}
