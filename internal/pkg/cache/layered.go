package cache

import (
	"context"
	"sync/atomic"
	"time"
)

// LayeredCache 组合 L1 (本地) + L2 (远程) 两层。
// 读：L1 -> L2 -> miss；L2 命中回填 L1（透传剩余 TTL）。
// 写 / Del：两层同写同删。
type LayeredCache struct {
	L1 Cache
	L2 Cache

	hitsL1 uint64
	hitsL2 uint64
	miss   uint64
}

type LayeredMetrics struct {
	HitsL1  uint64  `json:"hits_l1"`
	HitsL2  uint64  `json:"hits_l2"`
	Miss    uint64  `json:"miss"`
	HitRate float64 `json:"hit_rate"`
}

func NewLayered(l1, l2 Cache) *LayeredCache { return &LayeredCache{L1: l1, L2: l2} }

func (c *LayeredCache) Get(ctx context.Context, key string) (string, error) {
	if c.L1 != nil {
		if v, _ := c.L1.Get(ctx, key); v != "" {
			atomic.AddUint64(&c.hitsL1, 1)
			return v, nil
		}
	}
	if c.L2 != nil {
		if v, _ := c.L2.Get(ctx, key); v != "" {
			atomic.AddUint64(&c.hitsL2, 1)
			if c.L1 != nil {
				ttl := 30 * time.Second // 兜底
				if tf, ok := c.L2.(TTLFetcher); ok {
					if d, ok2 := tf.RemainingTTL(ctx, key); ok2 && d > 0 {
						ttl = d
					}
				}
				_ = c.L1.SetEX(ctx, key, v, ttl)
			}
			return v, nil
		}
	}
	atomic.AddUint64(&c.miss, 1)
	return "", nil
}

func (c *LayeredCache) SetEX(ctx context.Context, key, val string, ttl time.Duration) error {
	if c.L1 != nil {
		_ = c.L1.SetEX(ctx, key, val, ttl)
	}
	if c.L2 != nil {
		return c.L2.SetEX(ctx, key, val, ttl)
	}
	return nil
}

func (c *LayeredCache) Del(ctx context.Context, keys ...string) error {
	if c.L1 != nil {
		_ = c.L1.Del(ctx, keys...)
	}
	if c.L2 != nil {
		return c.L2.Del(ctx, keys...)
	}
	return nil
}

// SnapshotMetrics 返回当前命中统计
func (c *LayeredCache) SnapshotMetrics() LayeredMetrics {
	m := LayeredMetrics{
		HitsL1: atomic.LoadUint64(&c.hitsL1),
		HitsL2: atomic.LoadUint64(&c.hitsL2),
		Miss:   atomic.LoadUint64(&c.miss),
	}
	if total := m.HitsL1 + m.HitsL2 + m.Miss; total > 0 {
		m.HitRate = float64(m.HitsL1+m.HitsL2) / float64(total)
	}
	return m
}
