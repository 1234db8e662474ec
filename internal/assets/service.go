package assets

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/dichfoto/dichfoto/cache"
	"github.com/dichfoto/dichfoto/cache/types"
	"github.com/dichfoto/dichfoto/database/models"
	"github.com/dichfoto/dichfoto/database/repo/assets"
	"github.com/dichfoto/dichfoto/database/repo/shares"
	"github.com/google/uuid"
)

// Service 照片服务层
type Service struct {
	repo       *assets.Repository
	sharesRepo *shares.Repository
	cache      types.Cache
}

// NewService 创建新的照片服务
func NewService(repo *assets.Repository, sharesRepo *shares.Repository, cacheProvider types.Cache) *Service {
	return &Service{repo: repo, sharesRepo: sharesRepo, cache: cacheProvider}
}

// RegisterInput 登记上传照片的输入
type RegisterInput struct {
	OriginalName string `json:"original_name" binding:"required"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size"`
	Width        *int   `json:"width"`
	Height       *int   `json:"height"`
	Lqip         string `json:"lqip"`
	SortOrder    *int   `json:"sort_order"`
}

// RegisterUpload 在相册中登记一张上传的照片。
// 存储文件名由 UUID 生成，保留原始扩展名。
func (s *Service) RegisterUpload(ctx context.Context, albumID uint, input RegisterInput) (*models.Asset, error) {
	ext := strings.ToLower(filepath.Ext(input.OriginalName))
	filename := fmt.Sprintf("%s%s", uuid.NewString(), ext)

	asset := &models.Asset{
		AlbumID:      albumID,
		Filename:     filename,
		OriginalName: input.OriginalName,
		MimeType:     input.MimeType,
		Size:         input.Size,
		Width:        input.Width,
		Height:       input.Height,
		Lqip:         input.Lqip,
		SortOrder:    input.SortOrder,
	}
	if err := s.repo.CreateAsset(asset); err != nil {
		return nil, err
	}
	s.invalidateAlbum(ctx, albumID)
	return asset, nil
}

// GetAsset 获取单张照片（透传）
func (s *Service) GetAsset(assetID uint) (*models.Asset, error) {
	return s.repo.GetAssetByID(assetID)
}

// ListByAlbum 获取相册内的照片，按 sort_order 升序（透传）
func (s *Service) ListByAlbum(albumID uint, includeHidden bool) ([]*models.Asset, error) {
	return s.repo.ListByAlbum(albumID, includeHidden)
}

// ApplyVariants 整体覆盖照片的派生规格集合。
// 集合中缺失的规格会被清空，重复应用同一集合结果不变。
func (s *Service) ApplyVariants(ctx context.Context, assetID uint, variants models.VariantSet) (*models.Asset, error) {
	asset, err := s.repo.ApplyVariants(assetID, variants)
	if err != nil {
		return nil, err
	}
	s.invalidateAlbum(ctx, asset.AlbumID)
	return asset, nil
}

// Reorder 按给定的 ID 顺序重排相册内的照片
func (s *Service) Reorder(ctx context.Context, albumID uint, orderedIDs []uint) error {
	if err := s.repo.SetSortOrder(albumID, orderedIDs); err != nil {
		return err
	}
	s.invalidateAlbum(ctx, albumID)
	return nil
}

// SetHidden 设置照片的隐藏状态
func (s *Service) SetHidden(ctx context.Context, assetID uint, hidden bool) error {
	asset, err := s.repo.GetAssetByID(assetID)
	if err != nil {
		return err
	}
	if err := s.repo.SetHidden(assetID, hidden); err != nil {
		return err
	}
	s.invalidateAlbum(ctx, asset.AlbumID)
	return nil
}

// DeleteAsset 删除照片，引用它作封面的相册会被置空封面
func (s *Service) DeleteAsset(ctx context.Context, assetID uint) error {
	asset, err := s.repo.GetAssetByID(assetID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteAsset(assetID); err != nil {
		return err
	}
	s.invalidateAlbum(ctx, asset.AlbumID)
	return nil
}

// invalidateAlbum 清除相册缓存及其全部分享页缓存，
// 隐藏、重排、覆盖规格等变更立即反映在公开分享页上
func (s *Service) invalidateAlbum(ctx context.Context, albumID uint) {
	if err := s.cache.Delete(ctx, cache.Album.BuildID(albumID)); err != nil {
		log.Printf("[Assets] Failed to invalidate album cache %d: %v", albumID, err)
	}

	links, err := s.sharesRepo.ListByAlbum(albumID)
	if err != nil {
		log.Printf("[Assets] Failed to list shares of album %d: %v", albumID, err)
		return
	}
	for _, link := range links {
		if err := s.cache.Delete(ctx, cache.Share.Build(link.Slug)); err != nil {
			log.Printf("[Assets] Failed to invalidate share cache %s: %v", link.Slug, err)
		}
	}
}
