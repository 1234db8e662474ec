package core

import (
	"net/http"
	"time"

	"github.com/dichfoto/dichfoto/api/middleware"
	"github.com/dichfoto/dichfoto/config"
	"github.com/dichfoto/dichfoto/internal/app"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// setupRouter 创建 gin 引擎并装配中间件与路由
func setupRouter(container *app.Container) (*gin.Engine, func()) {
	cfg := container.Config()

	if !config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// 仅在开发版本时启用 gin 日志
	if config.IsDevelopment() {
		router.Use(gin.Logger())
	}
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Origins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Share-Password"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.SetTrustedProxies(nil)

	// Host 头校验
	router.Use(middleware.TrustedHost(cfg.Hosts()))

	// 响应压缩
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// 基于 Cookie 的匿名会话（用于点赞去重）
	if cfg.EnableSessions {
		store := cookie.NewStore([]byte(cfg.SecretKey))
		store.Options(sessions.Options{
			Path:     "/",
			MaxAge:   86400 * 30,
			HttpOnly: true,
		})
		router.Use(sessions.Sessions(cfg.SessionCookieName, store))
	}

	// 静态资源
	if cfg.StaticDir != "" {
		router.Static("/static", cfg.StaticDir)
	}

	// 速率限制
	apiRateLimiter := middleware.NewIPRateLimiter(cfg.RateLimitApiRPS, cfg.RateLimitApiBurst, cfg.RateLimitExpireTime)
	publicRateLimiter := middleware.NewIPRateLimiter(cfg.RateLimitPublicRPS, cfg.RateLimitPublicBurst, cfg.RateLimitExpireTime)
	cleanup := func() {
		apiRateLimiter.StopCleanup()
		publicRateLimiter.StopCleanup()
	}

	RegisterRoutes(router, &RouterDependencies{
		Container:         container,
		APIRateLimiter:    apiRateLimiter,
		PublicRateLimiter: publicRateLimiter,
		ServerVersion: ServerVersion{
			Version:    config.Version,
			CommitHash: config.CommitHash,
		},
		Config: cfg,
	})

	return router, cleanup
}

// StartServer 创建 http.Server
func StartServer(container *app.Container) (*http.Server, func()) {
	cfg := container.Config()
	router, clean := setupRouter(container)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return srv, clean
}
