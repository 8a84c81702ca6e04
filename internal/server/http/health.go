package http

import (
	"context"
	"sync"
	"time"

	"go-userapi/internal/discovery/etcd"
	"go-userapi/internal/metrics"
	redisrepo "go-userapi/internal/repository/redis"

	"gorm.io/gorm"
)

// HealthChecker 聚合健康检查（liveness / readiness）
type HealthChecker struct {
	db      *gorm.DB
	redis   *redisrepo.Client
	etcdCli *etcd.Client

	cacheMu     sync.Mutex
	cacheResult map[string]interface{}
	cacheExpiry time.Time
	cacheTTL    time.Duration
}

func NewHealthChecker(db *gorm.DB, r *redisrepo.Client, e *etcd.Client) *HealthChecker {
	return &HealthChecker{db: db, redis: r, etcdCli: e, cacheTTL: 2 * time.Second}
}

// Liveness 仅表示进程活着，不依赖外部组件
func (h *HealthChecker) Liveness() map[string]interface{} {
	return map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}
}

type depResult struct {
	name string
	up   bool
	err  string
	dur  time.Duration
}

// Readiness 检测外部依赖，带缓存与耗时指标。db 为硬依赖，redis/etcd 只降级。
func (h *HealthChecker) Readiness(ctx context.Context) (map[string]interface{}, int) {
	h.cacheMu.Lock()
	if time.Now().Before(h.cacheExpiry) && h.cacheResult != nil {
		res := h.cacheResult
		h.cacheMu.Unlock()
		code := 200
		if res["status"] != "ok" {
			code = 503
		}
		return res, code
	}
	h.cacheMu.Unlock()

	results := make(chan depResult, 3)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		out := h.checkDB(ctx)
		metrics.DependencyCheckDuration.WithLabelValues("db").Observe(out.dur.Seconds())
		setGauge(metrics.DBUp, out.up)
		results <- out
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		out := h.checkRedis(ctx)
		metrics.DependencyCheckDuration.WithLabelValues("redis").Observe(out.dur.Seconds())
		setGauge(metrics.RedisUp, out.up)
		results <- out
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		out := h.checkEtcd(ctx)
		metrics.DependencyCheckDuration.WithLabelValues("etcd").Observe(out.dur.Seconds())
		setGauge(metrics.EtcdUp, out.up)
		results <- out
	}()
	wg.Wait()
	close(results)

	status := "ok"
	detail := make([]map[string]interface{}, 0, 3)
	for out := range results {
		d := map[string]interface{}{"name": out.name, "up": out.up, "duration_ms": out.dur.Milliseconds()}
		if out.err != "" {
			d["error"] = out.err
		}
		detail = append(detail, d)
		if !out.up && out.name == "db" {
			status = "degraded"
		}
	}
	res := map[string]interface{}{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
		"detail": detail,
	}

	h.cacheMu.Lock()
	h.cacheResult = res
	h.cacheExpiry = time.Now().Add(h.cacheTTL)
	h.cacheMu.Unlock()

	code := 200
	if status != "ok" {
		code = 503
	}
	return res, code
}

func (h *HealthChecker) checkDB(ctx context.Context) depResult {
	start := time.Now()
	out := depResult{name: "db"}
	if h.db == nil {
		out.err = "nil"
		out.dur = time.Since(start)
		return out
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		out.err = err.Error()
		out.dur = time.Since(start)
		return out
	}
	ctx2, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
	defer cancel()
	if err := sqlDB.PingContext(ctx2); err != nil {
		out.err = err.Error()
	} else {
		out.up = true
	}
	out.dur = time.Since(start)
	return out
}

func (h *HealthChecker) checkRedis(ctx context.Context) depResult {
	start := time.Now()
	out := depResult{name: "redis"}
	if h.redis == nil {
		out.err = "nil"
		out.dur = time.Since(start)
		return out
	}
	ctx2, cancel := context.WithTimeout(ctx, 250*time.Millisecond)
	defer cancel()
	if err := h.redis.Ping(ctx2); err != nil {
		out.err = err.Error()
	} else {
		out.up = true
	}
	out.dur = time.Since(start)
	return out
}

func (h *HealthChecker) checkEtcd(ctx context.Context) depResult {
	start := time.Now()
	out := depResult{name: "etcd"}
	if h.etcdCli == nil {
		out.err = "nil"
		out.dur = time.Since(start)
		return out
	}
	ctx2, cancel := context.WithTimeout(ctx, 250*time.Millisecond)
	defer cancel()
	_, err := h.etcdCli.Discover(ctx2, "/services/")
	if err != nil {
		out.err = err.Error()
	} else {
		out.up = true
	}
	out.dur = time.Since(start)
	return out
}

func setGauge(g interface{ Set(float64) }, up bool) {
	if up {
		g.Set(1)
	} else {
		g.Set(0)
	}
}
