package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/skillbanto/internal/cache"
	"github.com/skillbanto/internal/config"
	"github.com/skillbanto/internal/db"
	"github.com/skillbanto/internal/handler"
	"github.com/skillbanto/internal/logger"
	"github.com/skillbanto/internal/render"
	"github.com/skillbanto/internal/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}
	defer func() { _ = db.Close(db.DB) }()

	pageCache, err := cache.New(cfg.RedisURL, cfg.CachePrefix, cfg.CacheTTL)
	if err != nil {
		zlog.Fatal("failed to connect page cache", zap.Error(err))
	}
	defer func() { _ = pageCache.Close() }()
	zlog.Info("page cache ready", zap.Bool("redis", cfg.UseRedisCache()), zap.Duration("ttl", cfg.CacheTTL))

	api := handler.NewAPI(db.DB,
		handler.WithCache(pageCache),
		handler.WithLogger(zlog),
		handler.WithRenderer(render.New(cfg.SiteName)),
	)

	if cfg.SeedPages {
		created, err := api.Pages().Bootstrap(cfg.SeedSlugs)
		if err != nil {
			zlog.Fatal("failed to seed pages", zap.Error(err))
		}
		zlog.Info("seed pages checked", zap.Int("created", created), zap.Strings("slugs", cfg.SeedSlugs))
	}

	// 设置并运行 Gin 服务器
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router.SetupRouter(api, zlog),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zlog.Info("server listening", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("failed to run server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
}
