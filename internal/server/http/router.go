package http

import (
	"context"
	"time"

	"go-userapi/internal/config"
	"go-userapi/internal/discovery/etcd"
	"go-userapi/internal/logging"
	redisrepo "go-userapi/internal/repository/redis"
	userh "go-userapi/internal/server/http/handler/user"
	"go-userapi/internal/server/http/middleware"
	obs "go-userapi/internal/server/http/middleware/observability"
	"go-userapi/internal/service"
	"go-userapi/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// NewRouter 仅负责分组与中间件装配，具体业务放在 handler 层
func NewRouter(logger *logging.Logger, db *gorm.DB, redis *redisrepo.Client, userSvc *service.UserService, etcdCli *etcd.Client, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.CORS(), obs.TraceMiddleware(), obs.LoggerContextMiddleware(logger), obs.AccessLog(logger), obs.Metrics())

	// 健康检查
	hc := NewHealthChecker(db, redis, etcdCli)
	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, hc.Liveness()) })
	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()
		res, code := hc.Readiness(ctx)
		c.JSON(code, res)
	})
	// Prometheus
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := userh.NewHandler(userh.Dependencies{Users: userSvc, Config: cfg, Logger: logger})
	users := r.Group("/users")
	{
		users.POST("", h.Create)
		users.GET("", h.List)
		users.GET("/:id", h.Get)
		users.PUT("/:id", h.Update)
		users.DELETE("/:id", h.Delete)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, response.ErrorBody{Status: 404, Message: "no route"})
	})
	return r
}
