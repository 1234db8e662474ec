package dashboard

import (
	"context"
	"log"
	"time"

	"github.com/dichfoto/dichfoto/cache"
	"github.com/dichfoto/dichfoto/cache/types"
	"github.com/dichfoto/dichfoto/database/repo/albums"
	"github.com/dichfoto/dichfoto/database/repo/assets"
	"github.com/dichfoto/dichfoto/database/repo/likes"
	"github.com/dichfoto/dichfoto/database/repo/shares"
	"golang.org/x/sync/errgroup"
)

const statsCacheKey = "overview"

// Service 后台概览统计服务
type Service struct {
	albumsRepo *albums.Repository
	assetsRepo *assets.Repository
	sharesRepo *shares.Repository
	likesRepo  *likes.Repository
	cache      types.Cache
	cacheTTL   time.Duration
}

// NewService 创建新的统计服务
func NewService(albumsRepo *albums.Repository, assetsRepo *assets.Repository, sharesRepo *shares.Repository, likesRepo *likes.Repository, cacheProvider types.Cache) *Service {
	return &Service{
		albumsRepo: albumsRepo,
		assetsRepo: assetsRepo,
		sharesRepo: sharesRepo,
		likesRepo:  likesRepo,
		cache:      cacheProvider,
		cacheTTL:   5 * time.Minute,
	}
}

// Stats 概览统计
type Stats struct {
	Albums     int64 `json:"albums"`
	Assets     int64 `json:"assets"`
	ShareLinks int64 `json:"share_links"`
	Likes      int64 `json:"likes"`
}

// GetStats 并发收集各实体的总数
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	key := cache.Stats.Build(statsCacheKey)

	var cached Stats
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	stats := &Stats{}
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.albumsRepo.CountAlbums()
		stats.Albums = count
		return err
	})
	g.Go(func() error {
		count, err := s.assetsRepo.CountAssets()
		stats.Assets = count
		return err
	})
	g.Go(func() error {
		count, err := s.sharesRepo.CountShareLinks()
		stats.ShareLinks = count
		return err
	})
	g.Go(func() error {
		count, err := s.likesRepo.CountAll()
		stats.Likes = count
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, stats, s.cacheTTL); err != nil {
		log.Printf("[Dashboard] Failed to cache stats: %v", err)
	}
	return stats, nil
}
