package shares

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/dichfoto/dichfoto/cache"
	"github.com/dichfoto/dichfoto/cache/types"
	"github.com/dichfoto/dichfoto/database/models"
	"github.com/dichfoto/dichfoto/database/repo/albums"
	"github.com/dichfoto/dichfoto/database/repo/shares"
	"github.com/dichfoto/dichfoto/utils"
	"github.com/dichfoto/dichfoto/utils/crypto"
)

var (
	// ErrShareExpired 分享链接已过期
	ErrShareExpired = errors.New("share link has expired")
	// ErrPasswordRequired 分享链接需要密码
	ErrPasswordRequired = errors.New("share link requires a password")
	// ErrWrongPassword 密码错误
	ErrWrongPassword = errors.New("wrong share password")
)

// slug 冲突时的重试次数
const slugRetries = 3

// Service 分享链接服务层
type Service struct {
	repo       *shares.Repository
	albumsRepo *albums.Repository
	cache      types.Cache
	cacheTTL   time.Duration
	slugLength int
}

// NewService 创建新的分享链接服务
func NewService(repo *shares.Repository, albumsRepo *albums.Repository, cacheProvider types.Cache, cacheTTL time.Duration, slugLength int) *Service {
	return &Service{
		repo:       repo,
		albumsRepo: albumsRepo,
		cache:      cacheProvider,
		cacheTTL:   cacheTTL,
		slugLength: slugLength,
	}
}

// CreateInput 创建分享链接的输入
type CreateInput struct {
	Slug      string     `json:"slug"`
	ExpiresAt *time.Time `json:"expires_at"`
	Password  string     `json:"password"`
	AllowZip  *bool      `json:"allow_zip"`
}

// ResolvedShare 公开访问解析出的分享内容
type ResolvedShare struct {
	Share *models.ShareLink `json:"share"`
	Album *models.Album     `json:"album"`
}

// CreateShareLink 为相册创建分享链接。
// 未指定 slug 时随机生成，冲突则换一个重试。
func (s *Service) CreateShareLink(albumID uint, input CreateInput) (*models.ShareLink, error) {
	link := models.NewShareLink(albumID, input.Slug)
	link.ExpiresAt = input.ExpiresAt
	if input.AllowZip != nil {
		link.AllowZip = *input.AllowZip
	}

	if input.Password != "" {
		hash, err := crypto.GenerateFromPassword(input.Password)
		if err != nil {
			return nil, err
		}
		link.PasswordHash = &hash
	}

	if input.Slug != "" {
		if err := s.repo.CreateShareLink(link); err != nil {
			return nil, err
		}
		return link, nil
	}

	var err error
	for i := 0; i < slugRetries; i++ {
		link.Slug, err = utils.GenerateSlug(s.slugLength)
		if err != nil {
			return nil, err
		}
		err = s.repo.CreateShareLink(link)
		if err == nil {
			return link, nil
		}
		if !errors.Is(err, shares.ErrSlugTaken) {
			return nil, err
		}
	}
	return nil, err
}

// GetShareLink 获取分享链接（透传）
func (s *Service) GetShareLink(id uint) (*models.ShareLink, error) {
	return s.repo.GetByID(id)
}

// ListByAlbum 获取相册的全部分享链接（透传）
func (s *Service) ListByAlbum(albumID uint) ([]*models.ShareLink, error) {
	return s.repo.ListByAlbum(albumID)
}

// DeleteShareLink 删除分享链接
func (s *Service) DeleteShareLink(ctx context.Context, id uint) error {
	link, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteShareLink(id); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, cache.Share.Build(link.Slug)); err != nil {
		log.Printf("[Shares] Failed to invalidate share cache %s: %v", link.Slug, err)
	}
	return nil
}

// Resolve 按 slug 解析公开分享。
// 过期链接返回 ErrShareExpired；带密码的链接要求提供正确密码。
func (s *Service) Resolve(ctx context.Context, slug, password string) (*ResolvedShare, error) {
	link, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}

	if link.IsExpired(time.Now()) {
		return nil, ErrShareExpired
	}

	if link.HasPassword() {
		if password == "" {
			return nil, ErrPasswordRequired
		}
		ok, err := crypto.ComparePasswordAndHash(password, *link.PasswordHash)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrWrongPassword
		}
	}

	// 无密码的分享可以整体缓存
	key := cache.Share.Build(slug)
	if !link.HasPassword() {
		var cached ResolvedShare
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	album, err := s.albumsRepo.GetAlbumWithAssets(link.AlbumID)
	if err != nil {
		return nil, err
	}

	// 公开页面不展示隐藏照片
	visible := make([]models.Asset, 0, len(album.Assets))
	for _, asset := range album.Assets {
		if !asset.IsHidden {
			visible = append(visible, asset)
		}
	}
	album.Assets = visible

	resolved := &ResolvedShare{Share: link, Album: album}
	if !link.HasPassword() {
		if err := s.cache.Set(ctx, key, resolved, s.cacheTTL); err != nil {
			log.Printf("[Shares] Failed to cache share %s: %v", slug, err)
		}
	}
	return resolved, nil
}
