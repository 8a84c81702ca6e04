package boot

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"go-userapi/internal/config"
	"go-userapi/internal/discovery/etcd"
	"go-userapi/internal/domain/model"
	"go-userapi/internal/logging"
	"go-userapi/internal/metrics"
	"go-userapi/internal/repository/postgres"
	redisrepo "go-userapi/internal/repository/redis"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/extra/redisotel/v9"
	clientv3 "go.etcd.io/etcd/client/v3"
	go_otel "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"
)

type App struct {
	Config *config.Config
	Logger *logging.Logger
	DB     *gorm.DB
	Redis  *redisrepo.Client
	Etcd   *etcd.Client
	HTTP   *gin.Engine

	serviceKey string
	leaseID    clientv3.LeaseID
	tracerProv *trace.TracerProvider
}

// Provider constructors for wire
func NewPostgres(c *config.Config) (*gorm.DB, error) {
	return postgres.New(postgres.Config{DSN: c.Postgres.DSN, MaxOpen: c.Postgres.MaxOpen, MaxIdle: c.Postgres.MaxIdle, AutoMigrate: c.Postgres.AutoMigrate})
}

// NewRedis 未配置 addr 时返回 nil，缓存退化为仅 L1
func NewRedis(c *config.Config) *redisrepo.Client {
	if c.Redis.Addr == "" {
		return nil
	}
	return redisrepo.New(redisrepo.Config{Addr: c.Redis.Addr, Password: c.Redis.Password, DB: c.Redis.DB})
}

// NewEtcd 未配置 endpoints 时返回 nil，跳过服务注册
func NewEtcd(c *config.Config) (*etcd.Client, error) {
	if len(c.Etcd.Endpoints) == 0 {
		return nil, nil
	}
	return etcd.New(etcd.Config{Endpoints: c.Etcd.Endpoints, TTL: c.Etcd.TTL})
}

func NewLogger(c *config.Config) (*logging.Logger, error) {
	return logging.New(c.Log.Level, c.Log.Format)
}

func NewApp(c *config.Config, l *logging.Logger, db *gorm.DB, r *redisrepo.Client, e *etcd.Client, engine *gin.Engine) *App {
	// 自动迁移（只在配置开启时）
	if c.Postgres.AutoMigrate {
		if err := postgres.AutoMigrateModels(db, &model.User{}); err != nil {
			l.Error("auto_migrate_failed", zap.Error(err))
		}
	}
	app := &App{Config: c, Logger: l, DB: db, Redis: r, Etcd: e, HTTP: engine}

	// Redis 启动健康检查
	if r != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(c.Redis.PingTimeoutMS)*time.Millisecond)
		defer cancel()
		if err := r.Ping(ctx); err != nil {
			metrics.RedisUp.Set(0)
			l.Error("redis_ping_failed", zap.Error(err), zap.String("addr", c.Redis.Addr))
		} else {
			metrics.RedisUp.Set(1)
			l.Info("redis_ping_ok", zap.String("addr", c.Redis.Addr))
		}
	}

	if e != nil {
		go app.registerService()
	}

	if c.OTel.Enable {
		app.initTracing()
	}
	return app
}

// registerService 在 etcd 写入实例元数据，key 以 ip:port 结尾保证重启稳定
func (a *App) registerService() {
	c, l := a.Config, a.Logger
	ctx := context.Background()
	port := ""
	addr := c.HTTP.Addr
	if addr != "" && addr[0] == ':' {
		port = addr[1:]
	} else if _, p, err := net.SplitHostPort(addr); err == nil {
		port = p
	}
	if port == "" {
		port = "0"
	}
	ip := firstNonLoopbackIPv4()
	if ip == "" {
		ip = "127.0.0.1"
	}
	serviceKey := fmt.Sprintf("/services/userapi/%s/%s/%s:%s", c.AppMeta.Env, c.AppMeta.Version, ip, port)
	meta := map[string]interface{}{
		"instance_id":  uuid.New().String(),
		"env":          c.AppMeta.Env,
		"version":      c.AppMeta.Version,
		"ip":           ip,
		"port":         port,
		"addr":         c.HTTP.Addr,
		"startup_unix": time.Now().Unix(),
	}
	valBytes, _ := json.Marshal(meta)
	// 指数退避重试注册
	for attempt := 0; attempt < 5; attempt++ {
		leaseID, err := a.Etcd.Register(ctx, serviceKey, string(valBytes), int64(c.Etcd.TTL))
		if err != nil {
			backoff := time.Duration(1<<uint(attempt+1)) * 100 * time.Millisecond
			l.Error("etcd_register_retry", zap.Error(err), zap.Int("attempt", attempt+1), zap.Duration("backoff", backoff))
			time.Sleep(backoff)
			continue
		}
		a.serviceKey = serviceKey
		a.leaseID = leaseID
		metrics.EtcdUp.Set(1)
		l.Info("etcd_registered", zap.String("key", serviceKey))
		return
	}
	l.Error("etcd_register_failed", zap.String("key", serviceKey))
}

func (a *App) initTracing() {
	c, l := a.Config, a.Logger
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(c.OTel.Endpoint)}
	if c.OTel.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	} else {
		opts = append(opts, otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
	}
	exp, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		l.Error("otel_exporter_init_failed", zap.Error(err))
		return
	}
	res, _ := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(c.AppMeta.Name),
		semconv.ServiceVersionKey.String(c.AppMeta.Version),
	))
	sampler := trace.ParentBased(trace.TraceIDRatioBased(c.OTel.SamplerRatio))
	a.tracerProv = trace.NewTracerProvider(trace.WithBatcher(exp), trace.WithResource(res), trace.WithSampler(sampler))
	go_otel.SetTracerProvider(a.tracerProv)
	l.Info("otel_tracer_provider_initialized")
	if a.DB != nil {
		if err := a.DB.Use(tracing.NewPlugin()); err != nil {
			l.Error("gorm_tracing_plugin_failed", zap.Error(err))
		}
	}
	if a.Redis != nil {
		if err := redisotel.InstrumentTracing(a.Redis.Client); err != nil {
			l.Error("redis_tracing_hook_failed", zap.Error(err))
		}
	}
}

func (a *App) Close() {
	// 优雅下线 etcd
	if a.Etcd != nil && a.serviceKey != "" && a.leaseID != 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := a.Etcd.Deregister(ctx, a.serviceKey, a.leaseID); err != nil {
			a.Logger.Error("etcd_deregister_failed", zap.Error(err))
		}
		metrics.EtcdUp.Set(0)
	}
	postgres.Close(a.DB)
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Logger.Error("redis_close_error", zap.Error(err))
		}
	}
	if a.Etcd != nil {
		if err := a.Etcd.Close(); err != nil {
			a.Logger.Error("etcd_close_error", zap.Error(err))
		}
	}
	if a.tracerProv != nil {
		if err := a.tracerProv.Shutdown(context.Background()); err != nil {
			a.Logger.Error("otel_tracer_shutdown_error", zap.Error(err))
		}
	}
}

// 获取首个非 loopback IPv4
func firstNonLoopbackIPv4() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return ""
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip == nil || ip.IsLoopback() {
				continue
			}
			if ip4 := ip.To4(); ip4 != nil {
				return ip4.String()
			}
		}
	}
	return ""
}
