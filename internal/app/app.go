package app

import (
	"fmt"
	"log"
	"time"

	"github.com/dichfoto/dichfoto/cache"
	"github.com/dichfoto/dichfoto/cache/types"
	"github.com/dichfoto/dichfoto/config"
	"github.com/dichfoto/dichfoto/database"
	albumsrepo "github.com/dichfoto/dichfoto/database/repo/albums"
	assetsrepo "github.com/dichfoto/dichfoto/database/repo/assets"
	likesrepo "github.com/dichfoto/dichfoto/database/repo/likes"
	sharesrepo "github.com/dichfoto/dichfoto/database/repo/shares"
	"github.com/dichfoto/dichfoto/internal/albums"
	"github.com/dichfoto/dichfoto/internal/assets"
	"github.com/dichfoto/dichfoto/internal/dashboard"
	"github.com/dichfoto/dichfoto/internal/shares"
	"gorm.io/gorm"
)

// Container 依赖注入容器 - 管理所有服务的生命周期
type Container struct {
	config *config.Config
	db     *gorm.DB
	cache  types.Cache

	AlbumsRepo *albumsrepo.Repository
	AssetsRepo *assetsrepo.Repository
	SharesRepo *sharesrepo.Repository
	LikesRepo  *likesrepo.Repository

	AlbumsService    *albums.Service
	AssetsService    *assets.Service
	SharesService    *shares.Service
	DashboardService *dashboard.Service
}

// NewContainer 创建新的依赖注入容器
func NewContainer(cfg *config.Config) *Container {
	return &Container{config: cfg}
}

// Init 初始化数据库、缓存、仓库与服务
func (c *Container) Init() error {
	if err := c.initDatabase(); err != nil {
		return err
	}
	if err := c.initCache(); err != nil {
		return err
	}
	c.initRepositories()
	c.initServices()
	return nil
}

func (c *Container) initDatabase() error {
	db, err := database.NewDB(c.config)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	c.db = db
	return nil
}

func (c *Container) initCache() error {
	provider, err := cache.NewProvider(c.config)
	if err != nil {
		return fmt.Errorf("failed to initialize cache provider: %w", err)
	}
	c.cache = provider
	log.Printf("[Container] Cache provider: %s", provider.Name())
	return nil
}

func (c *Container) initRepositories() {
	c.AlbumsRepo = albumsrepo.NewRepository(c.db)
	c.AssetsRepo = assetsrepo.NewRepository(c.db)
	c.SharesRepo = sharesrepo.NewRepository(c.db)
	c.LikesRepo = likesrepo.NewRepository(c.db)
}

func (c *Container) initServices() {
	shareTTL := time.Duration(c.config.CacheShareTTL) * time.Second

	c.AlbumsService = albums.NewService(c.AlbumsRepo, c.SharesRepo, c.cache)
	c.AssetsService = assets.NewService(c.AssetsRepo, c.SharesRepo, c.cache)
	c.SharesService = shares.NewService(c.SharesRepo, c.AlbumsRepo, c.cache, shareTTL, c.config.ShareSlugLength)
	c.DashboardService = dashboard.NewService(c.AlbumsRepo, c.AssetsRepo, c.SharesRepo, c.LikesRepo, c.cache)
}

// Config 获取配置
func (c *Container) Config() *config.Config {
	return c.config
}

// DB 获取数据库连接
func (c *Container) DB() *gorm.DB {
	return c.db
}

// Cache 获取缓存提供者
func (c *Container) Cache() types.Cache {
	return c.cache
}

// Close 关闭容器持有的资源
func (c *Container) Close() {
	if c.cache != nil {
		if err := c.cache.Close(); err != nil {
			log.Printf("[Container] Failed to close cache: %v", err)
		}
	}
	if c.db != nil {
		if err := database.Close(c.db); err != nil {
			log.Printf("[Container] Failed to close database: %v", err)
		}
	}
}
