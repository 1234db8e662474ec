package core

import (
	handlerAlbums "github.com/dichfoto/dichfoto/api/handler/albums"
	handlerAssets "github.com/dichfoto/dichfoto/api/handler/assets"
	handlerDashboard "github.com/dichfoto/dichfoto/api/handler/dashboard"
	handlerPublic "github.com/dichfoto/dichfoto/api/handler/public"
	handlerShares "github.com/dichfoto/dichfoto/api/handler/shares"
	"github.com/dichfoto/dichfoto/api/common"
	"github.com/dichfoto/dichfoto/api/middleware"
	"github.com/dichfoto/dichfoto/config"
	"github.com/dichfoto/dichfoto/internal/app"
	"github.com/gin-gonic/gin"
)

// ServerVersion 服务版本信息
type ServerVersion struct {
	Version    string
	CommitHash string
}

// RouterDependencies 路由注册依赖
type RouterDependencies struct {
	Container         *app.Container
	APIRateLimiter    *middleware.IPRateLimiter
	PublicRateLimiter *middleware.IPRateLimiter
	ServerVersion     ServerVersion
	Config            *config.Config
}

// getBaseURL 从配置获取基础 URL
func getBaseURL(cfg *config.Config) string {
	if cfg != nil {
		return cfg.BaseURL()
	}
	return ""
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(router *gin.Engine, deps *RouterDependencies) {
	registerBasicRoutes(router, deps)
	registerPublicRoutes(router, deps)
	registerAPIRoutes(router, deps)
}

// registerBasicRoutes 注册基础路由
func registerBasicRoutes(router *gin.Engine, deps *RouterDependencies) {
	healthHandler := NewHealthHandler(deps.Container)
	router.GET("/health", healthHandler.Handle)

	router.GET("/version", func(c *gin.Context) {
		common.RespondSuccess(c, gin.H{
			"version": deps.ServerVersion.Version,
			"commit":  deps.ServerVersion.CommitHash,
		})
	})
}

// registerPublicRoutes 注册公共接口路由
func registerPublicRoutes(router *gin.Engine, deps *RouterDependencies) {
	cfg := deps.Config
	shareHandler := handlerPublic.NewHandler(deps.Container.SharesService)
	likesHandler := handlerPublic.NewLikesHandler(deps.Container.LikesRepo, deps.Container.Cache(), cfg.EnableSessions)

	// 公开分享页
	shareGroup := router.Group("/s")
	shareGroup.Use(deps.PublicRateLimiter.Middleware())
	{
		shareGroup.GET("/:slug", shareHandler.GetShareHandler)
	}

	// 点赞接口对公开页面开放
	likesGroup := router.Group("/likes")
	likesGroup.Use(deps.PublicRateLimiter.Middleware())
	{
		likesGroup.POST("/toggle", likesHandler.ToggleLikeHandler)
		likesGroup.GET("/count", likesHandler.CountLikesHandler)
	}
}

// registerAPIRoutes 注册 API 路由
func registerAPIRoutes(router *gin.Engine, deps *RouterDependencies) {
	cfg := deps.Config
	baseURL := getBaseURL(cfg)

	albumHandler := handlerAlbums.NewHandler(deps.Container.AlbumsService, baseURL)
	assetHandler := handlerAssets.NewHandler(deps.Container.AssetsService)
	shareHandler := handlerShares.NewHandler(deps.Container.SharesService, baseURL)
	dashboardHandler := handlerDashboard.NewHandler(deps.Container.DashboardService)

	apiGroup := router.Group("/api")
	apiGroup.Use(func(c *gin.Context) {
		// 所有 API 禁止缓存
		c.Header("Cache-Control", "no-store")
		c.Next()
	})
	{
		v1 := apiGroup.Group("/v1")
		v1.Use(deps.APIRateLimiter.Middleware())
		{
			// Albums
			albumsGroup := v1.Group("/albums")
			{
				albumsGroup.GET("", albumHandler.ListAlbumsHandler)
				albumsGroup.POST("", albumHandler.CreateAlbumHandler)
				albumsGroup.GET("/:id", albumHandler.GetAlbumDetailHandler)
				albumsGroup.PUT("/:id", albumHandler.UpdateAlbumHandler)
				albumsGroup.DELETE("/:id", albumHandler.DeleteAlbumHandler)
				albumsGroup.PUT("/:id/cover", albumHandler.SetCoverHandler)

				// 相册内照片
				albumsGroup.GET("/:id/assets", assetHandler.ListAssetsHandler)
				albumsGroup.POST("/:id/assets", assetHandler.RegisterAssetHandler)
				albumsGroup.PUT("/:id/assets/order", assetHandler.ReorderAssetsHandler)

				// 相册分享链接
				albumsGroup.GET("/:id/shares", shareHandler.ListSharesHandler)
				albumsGroup.POST("/:id/shares", shareHandler.CreateShareHandler)
				albumsGroup.DELETE("/:id/shares/:shareId", shareHandler.DeleteShareHandler)
			}

			// Assets
			assetsGroup := v1.Group("/assets")
			{
				assetsGroup.PUT("/:id/variants", assetHandler.ApplyVariantsHandler)
				assetsGroup.PATCH("/:id/visibility", assetHandler.UpdateVisibilityHandler)
				assetsGroup.DELETE("/:id", assetHandler.DeleteAssetHandler)
			}

			// Dashboard
			v1.GET("/dashboard/stats", dashboardHandler.GetStatsHandler)
		}
	}
}
