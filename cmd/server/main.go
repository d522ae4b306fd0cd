package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"github.com/d60-Lab/gymsocial/config"
	_ "github.com/d60-Lab/gymsocial/docs"
	"github.com/d60-Lab/gymsocial/internal/api/handler"
	"github.com/d60-Lab/gymsocial/internal/api/router"
	"github.com/d60-Lab/gymsocial/internal/cache"
	"github.com/d60-Lab/gymsocial/internal/repository"
	"github.com/d60-Lab/gymsocial/internal/service"
	"github.com/d60-Lab/gymsocial/pkg/database"
	"github.com/d60-Lab/gymsocial/pkg/jwt"
	"github.com/d60-Lab/gymsocial/pkg/logger"
	"github.com/d60-Lab/gymsocial/pkg/redis"
	"github.com/d60-Lab/gymsocial/pkg/tracing"
)

// @title GymSocial API
// @version 1.0
// @description 健身社交：身份寻址、分字段隐私与通知分发
// @BasePath /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	log, err := logger.Init(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	// 3. 错误上报与链路追踪（未配置时为空操作）
	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.Sentry.Environment,
			EnableTracing:    cfg.Sentry.TracesSampleRate > 0,
			TracesSampleRate: cfg.Sentry.TracesSampleRate,
		}); err != nil {
			log.Warn("Sentry 初始化失败", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}
	shutdownTracing, err := tracing.Init(context.Background(), &cfg.Tracing)
	if err != nil {
		log.Fatal("链路追踪初始化失败", zap.Error(err))
	}

	// 4. 连接数据库（含迁移）
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatal("数据库连接失败", zap.Error(err))
	}
	log.Info("数据库连接成功")

	// 5. 连接 Redis（可选：失败时不缓存隐私策略）
	rdb, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn("Redis 连接失败，隐私策略缓存不可用", zap.Error(err))
		rdb = nil
	}

	// 6. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewServices(repo, cache.NewPolicyCache(rdb, cfg.Privacy.CacheTTL), cfg)
	h := handler.NewHandler(svc)
	jwtMgr := jwt.NewManager(&cfg.JWT)

	// 7. 初始化路由
	engine := router.Setup(cfg, h, svc, jwtMgr, log)

	// 8. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 9. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("服务器关闭异常", zap.Error(err))
	}
	if err := shutdownTracing(ctx); err != nil {
		log.Error("链路追踪关闭异常", zap.Error(err))
	}

	if sqlDB, _ := db.DB(); sqlDB != nil {
		sqlDB.Close()
	}
	if rdb != nil {
		rdb.Close()
	}

	log.Info("服务器已关闭")
}
