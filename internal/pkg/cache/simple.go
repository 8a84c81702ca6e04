package cache

import (
	"context"
	"sync"
	"time"
)

// Cache 统一缓存接口。value 统一以 string 存储（JSON 编解码在业务侧处理）。
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	SetEX(ctx context.Context, key, val string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type item struct {
	val string
	exp time.Time
}

// SimpleCache 线程安全、带 TTL 的进程级缓存（L1）。
type SimpleCache struct {
	mu   sync.RWMutex
	data map[string]item
	ttl  time.Duration // 默认 TTL，SetEX 可覆盖
}

func New(ttl time.Duration) *SimpleCache {
	return &SimpleCache{data: make(map[string]item), ttl: ttl}
}

func (c *SimpleCache) get(key string) (string, bool) {
	c.mu.RLock()
	it, ok := c.data[key]
	c.mu.RUnlock()
	if !ok {
		return "", false
	}
	if !it.exp.IsZero() && time.Now().After(it.exp) {
		return "", false
	}
	return it.val, true
}

func (c *SimpleCache) set(key, val string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.ttl
	}
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.data[key] = item{val: val, exp: exp}
	c.mu.Unlock()
}

func (c *SimpleCache) del(keys ...string) {
	c.mu.Lock()
	for _, k := range keys {
		delete(c.data, k)
	}
	c.mu.Unlock()
}

func (c *SimpleCache) Flush() {
	c.mu.Lock()
	c.data = make(map[string]item)
	c.mu.Unlock()
}

// ===== simpleAdapter: SimpleCache 适配为 Cache 接口 =====

type simpleAdapter struct{ c *SimpleCache }

func NewSimpleAdapter(c *SimpleCache) Cache { return &simpleAdapter{c: c} }

func (a *simpleAdapter) Get(_ context.Context, key string) (string, error) {
	if v, ok := a.c.get(key); ok {
		return v, nil
	}
	return "", nil
}

func (a *simpleAdapter) SetEX(_ context.Context, key, val string, ttl time.Duration) error {
	a.c.set(key, val, ttl)
	return nil
}

func (a *simpleAdapter) Del(_ context.Context, keys ...string) error {
	a.c.del(keys...)
	return nil
}

// RemainingTTL 与 RedisAdapter 对齐，供 LayeredCache 回填时透传
func (a *simpleAdapter) RemainingTTL(_ context.Context, key string) (time.Duration, bool) {
	a.c.mu.RLock()
	it, ok := a.c.data[key]
	a.c.mu.RUnlock()
	if !ok || it.exp.IsZero() || time.Now().After(it.exp) {
		return 0, false
	}
	return time.Until(it.exp), true
}
