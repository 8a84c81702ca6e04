package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleCacheExpiry(t *testing.T) {
	c := NewSimpleAdapter(New(50 * time.Millisecond))
	ctx := context.Background()

	require.NoError(t, c.SetEX(ctx, "k", "v", 0)) // 默认 TTL
	v, _ := c.Get(ctx, "k")
	assert.Equal(t, "v", v)

	time.Sleep(80 * time.Millisecond)
	v, _ = c.Get(ctx, "k")
	assert.Empty(t, v)
}

func TestSimpleCacheDel(t *testing.T) {
	c := NewSimpleAdapter(New(time.Minute))
	ctx := context.Background()
	_ = c.SetEX(ctx, "a", "1", time.Minute)
	_ = c.SetEX(ctx, "b", "2", time.Minute)
	require.NoError(t, c.Del(ctx, "a", "b"))
	v, _ := c.Get(ctx, "a")
	assert.Empty(t, v)
}

func TestLayeredBackfillsL1(t *testing.T) {
	l1 := NewSimpleAdapter(New(time.Minute))
	l2 := NewSimpleAdapter(New(time.Minute))
	lc := NewLayered(l1, l2)
	ctx := context.Background()

	// 只写 L2，读时应命中并回填 L1
	require.NoError(t, l2.SetEX(ctx, "k", "v", time.Minute))
	v, err := lc.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	direct, _ := l1.Get(ctx, "k")
	assert.Equal(t, "v", direct)

	m := lc.SnapshotMetrics()
	assert.Equal(t, uint64(1), m.HitsL2)
}

func TestLayeredDelRemovesBothLayers(t *testing.T) {
	l1 := NewSimpleAdapter(New(time.Minute))
	l2 := NewSimpleAdapter(New(time.Minute))
	lc := NewLayered(l1, l2)
	ctx := context.Background()

	require.NoError(t, lc.SetEX(ctx, "k", "v", time.Minute))
	require.NoError(t, lc.Del(ctx, "k"))

	v, _ := lc.Get(ctx, "k")
	assert.Empty(t, v)
	v1, _ := l1.Get(ctx, "k")
	assert.Empty(t, v1)
	v2, _ := l2.Get(ctx, "k")
	assert.Empty(t, v2)
}

func TestLayeredMissCounted(t *testing.T) {
	lc := NewLayered(NewSimpleAdapter(New(time.Minute)), nil)
	v, err := lc.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Empty(t, v)
	assert.Equal(t, uint64(1), lc.SnapshotMetrics().Miss)
}
