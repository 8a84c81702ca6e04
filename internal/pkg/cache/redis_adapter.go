package cache

import (
	"context"
	"time"

	redisrepo "go-userapi/internal/repository/redis"
)

// TTLFetcher 可选接口：返回剩余 TTL，用于 LayeredCache 回填 L1。
type TTLFetcher interface {
	RemainingTTL(ctx context.Context, key string) (time.Duration, bool)
}

// RedisAdapter 包装 redis 客户端实现 Cache 接口（L2）。
type RedisAdapter struct{ c *redisrepo.Client }

func NewRedisAdapter(c *redisrepo.Client) *RedisAdapter { return &RedisAdapter{c: c} }

func (r *RedisAdapter) Get(ctx context.Context, key string) (string, error) {
	return r.c.Get(ctx, key), nil
}

func (r *RedisAdapter) SetEX(ctx context.Context, key, val string, ttl time.Duration) error {
	return r.c.SetTTL(ctx, key, val, ttl)
}

func (r *RedisAdapter) Del(ctx context.Context, keys ...string) error {
	r.c.Del(ctx, keys...)
	return nil
}

// RemainingTTL 实现 TTLFetcher。-2 key不存在; -1 无过期; >0 正常
func (r *RedisAdapter) RemainingTTL(ctx context.Context, key string) (time.Duration, bool) {
	res := r.c.Client.TTL(ctx, key)
	if err := res.Err(); err != nil {
		return 0, false
	}
	d := res.Val()
	if d <= 0 {
		return 0, false
	}
	return d, true
}
