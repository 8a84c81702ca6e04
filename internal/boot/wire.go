package boot

import (
	"time"

	"go-userapi/internal/config"
	"go-userapi/internal/discovery/etcd"
	"go-userapi/internal/logging"
	"go-userapi/internal/pkg/cache"
	"go-userapi/internal/repository/dao"
	redisrepo "go-userapi/internal/repository/redis"
	httpSrv "go-userapi/internal/server/http"
	"go-userapi/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"gorm.io/gorm"
)

// ProvideConfig wraps config.Load for wire with external path param
func ProvideConfig(path string) (*config.Config, error) { return config.Load(path) }

// ProvideLayeredCache 构建通用 LayeredCache（L1 本地, L2 Redis）。
// Redis 未配置时退化为仅 L1。
func ProvideLayeredCache(r *redisrepo.Client) cache.Cache {
	l1 := cache.NewSimpleAdapter(cache.New(60 * time.Second))
	if r == nil {
		return l1
	}
	return cache.NewLayered(l1, cache.NewRedisAdapter(r))
}

// ProvideUserService 注入 layered cache 版本，TTL 取自配置
func ProvideUserService(repo service.UserRepository, c cache.Cache, cfg *config.Config) *service.UserService {
	return service.NewUserServiceWithCache(repo, c, time.Duration(cfg.Cache.ListTTLSeconds)*time.Second)
}

// ProvideRouter 装配路由
func ProvideRouter(l *logging.Logger, db *gorm.DB, r *redisrepo.Client, u *service.UserService, e *etcd.Client, c *config.Config) *gin.Engine {
	return httpSrv.NewRouter(l, db, r, u, e, c)
}

func ProvideApp(c *config.Config, l *logging.Logger, db *gorm.DB, r *redisrepo.Client, e *etcd.Client, engine *gin.Engine) *App {
	return NewApp(c, l, db, r, e, engine)
}

var ProviderSet = wire.NewSet(
	ProvideConfig,
	NewLogger,
	NewPostgres,
	NewRedis,
	NewEtcd,
	ProvideLayeredCache,
	dao.NewUserDAO,
	wire.Bind(new(service.UserRepository), new(*dao.UserDAO)),
	ProvideUserService,
	ProvideRouter,
	ProvideApp,
)
