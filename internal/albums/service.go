package albums

import (
	"context"
	"log"
	"time"

	"github.com/dichfoto/dichfoto/cache"
	"github.com/dichfoto/dichfoto/cache/types"
	"github.com/dichfoto/dichfoto/database/models"
	"github.com/dichfoto/dichfoto/database/repo/albums"
	"github.com/dichfoto/dichfoto/database/repo/shares"
)

// Service 相册服务层
type Service struct {
	repo       *albums.Repository
	sharesRepo *shares.Repository
	cache      types.Cache
	cacheTTL   time.Duration
}

// NewService 创建新的相册服务
func NewService(repo *albums.Repository, sharesRepo *shares.Repository, cacheProvider types.Cache) *Service {
	return &Service{
		repo:       repo,
		sharesRepo: sharesRepo,
		cache:      cacheProvider,
		cacheTTL:   5 * time.Minute,
	}
}

// CreateInput 创建相册的输入
type CreateInput struct {
	Title           string     `json:"title" binding:"required"`
	Photographer    string     `json:"photographer"`
	PhotographerURL string     `json:"photographer_url"`
	EventDate       *time.Time `json:"event_date"`
}

// UpdateInput 更新相册的输入（nil 字段保持不变）
type UpdateInput struct {
	Title           *string    `json:"title"`
	Photographer    *string    `json:"photographer"`
	PhotographerURL *string    `json:"photographer_url"`
	EventDate       *time.Time `json:"event_date"`
}

// CreateAlbum 创建相册
func (s *Service) CreateAlbum(input CreateInput) (*models.Album, error) {
	album := &models.Album{
		Title:           input.Title,
		Photographer:    input.Photographer,
		PhotographerURL: input.PhotographerURL,
		EventDate:       input.EventDate,
	}
	if err := s.repo.CreateAlbum(album); err != nil {
		return nil, err
	}
	return album, nil
}

// GetAlbum 获取相册（透传）
func (s *Service) GetAlbum(albumID uint) (*models.Album, error) {
	return s.repo.GetAlbumByID(albumID)
}

// GetAlbumWithAssets 获取相册及其照片，照片按 sort_order 升序
func (s *Service) GetAlbumWithAssets(ctx context.Context, albumID uint) (*models.Album, error) {
	key := cache.Album.BuildID(albumID)

	var cached models.Album
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	album, err := s.repo.GetAlbumWithAssets(albumID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, album, s.cacheTTL); err != nil {
		log.Printf("[Albums] Failed to cache album %d: %v", albumID, err)
	}
	return album, nil
}

// ListAlbums 分页获取相册列表，按创建时间倒序
func (s *Service) ListAlbums(page, pageSize int) ([]*models.Album, int64, error) {
	return s.repo.ListAlbums(page, pageSize)
}

// UpdateAlbum 更新相册元数据
func (s *Service) UpdateAlbum(ctx context.Context, albumID uint, input UpdateInput) (*models.Album, error) {
	album, err := s.repo.GetAlbumByID(albumID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		album.Title = *input.Title
	}
	if input.Photographer != nil {
		album.Photographer = *input.Photographer
	}
	if input.PhotographerURL != nil {
		album.PhotographerURL = *input.PhotographerURL
	}
	if input.EventDate != nil {
		album.EventDate = input.EventDate
	}

	if err := s.repo.UpdateAlbum(album); err != nil {
		return nil, err
	}
	s.invalidate(ctx, albumID)
	return album, nil
}

// SetCover 设置相册封面，assetID 为 nil 时清除封面
func (s *Service) SetCover(ctx context.Context, albumID uint, assetID *uint) error {
	if err := s.repo.SetCover(albumID, assetID); err != nil {
		return err
	}
	s.invalidate(ctx, albumID)
	return nil
}

// DeleteAlbum 删除相册及其全部照片与分享链接
func (s *Service) DeleteAlbum(ctx context.Context, albumID uint) error {
	// 级联删除会清掉分享链接行，先记下 slug 再删
	links, err := s.sharesRepo.ListByAlbum(albumID)
	if err != nil {
		log.Printf("[Albums] Failed to list shares of album %d: %v", albumID, err)
	}

	if err := s.repo.DeleteAlbum(albumID); err != nil {
		return err
	}

	if err := s.cache.Delete(ctx, cache.Album.BuildID(albumID)); err != nil {
		log.Printf("[Albums] Failed to invalidate album cache %d: %v", albumID, err)
	}
	s.dropShareKeys(ctx, links)
	return nil
}

// invalidate 清除相册缓存及其全部分享页缓存
func (s *Service) invalidate(ctx context.Context, albumID uint) {
	if err := s.cache.Delete(ctx, cache.Album.BuildID(albumID)); err != nil {
		log.Printf("[Albums] Failed to invalidate album cache %d: %v", albumID, err)
	}

	links, err := s.sharesRepo.ListByAlbum(albumID)
	if err != nil {
		log.Printf("[Albums] Failed to list shares of album %d: %v", albumID, err)
		return
	}
	s.dropShareKeys(ctx, links)
}

func (s *Service) dropShareKeys(ctx context.Context, links []*models.ShareLink) {
	for _, link := range links {
		if err := s.cache.Delete(ctx, cache.Share.Build(link.Slug)); err != nil {
			log.Printf("[Albums] Failed to invalidate share cache %s: %v", link.Slug, err)
		}
	}
}
