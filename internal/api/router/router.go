package router

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/d60-Lab/gymsocial/config"
	"github.com/d60-Lab/gymsocial/internal/api/dto"
	"github.com/d60-Lab/gymsocial/internal/api/handler"
	"github.com/d60-Lab/gymsocial/internal/api/middleware"
	"github.com/d60-Lab/gymsocial/internal/service"
	"github.com/d60-Lab/gymsocial/pkg/jwt"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, svc *service.Services, jwtMgr *jwt.Manager, logger *zap.Logger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	if err := dto.RegisterValidators(); err != nil {
		logger.Error("register validators", zap.Error(err))
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.OptionalAuth(jwtMgr))

	v1.GET("/gyms/:gymid/training_users", h.ListGymTrainingUsers)

	users := v1.Group("/users/:userid")
	users.Use(middleware.ResolveUserID(svc.Identity))
	{
		// 任何人可访问，按隐私设置裁剪
		users.GET("/profile", h.GetProfile)
		users.GET("/rel/followers", h.ListFollowers)
		users.GET("/rel/followings", h.ListFollowings)
		users.GET("/status", h.GetStatus)
		users.POST("/rel/partner_request", middleware.RequireAuth(), middleware.RejectSpecByAnon(), h.RequestPartner)

		// 仅本人，且不能以匿名 ID 寻址
		owner := users.Group("")
		owner.Use(middleware.RejectSpecByAnon(), middleware.RequireSelf())
		{
			owner.PATCH("/handle", h.UpdateHandle)

			owner.GET("/config/privacy", h.GetPrivacy)
			owner.PATCH("/config/privacy", h.PatchPrivacy)
			owner.GET("/config/privacy/anon", h.GetAnonPrivacy)
			owner.PATCH("/config/privacy/anon", h.PatchAnonPrivacy)

			owner.PATCH("/rel/followings", h.PatchFollowings)
			owner.GET("/rel/blocks", h.ListBlocks)
			owner.PATCH("/rel/blocks", h.PatchBlocks)

			owner.POST("/status", h.StartStatus)
			owner.POST("/status/finish", h.FinishStatus)

			owner.GET("/notices", h.ListNotices)
			owner.PATCH("/notices", h.PatchNotices)
			owner.GET("/notices/count", h.CountNotices)
			owner.PATCH("/notices/:noticeid", h.PatchNotice)
		}
	}

	return r
}
