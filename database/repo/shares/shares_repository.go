package shares

import (
	"context"
	"errors"
	"fmt"

	"github.com/dichfoto/dichfoto/database/models"
	"gorm.io/gorm"
)

var (
	// ErrShareNotFound 分享链接不存在
	ErrShareNotFound = errors.New("share link not found")
	// ErrSlugTaken slug 已被占用
	ErrSlugTaken = errors.New("share link slug already taken")
	// ErrAlbumNotFound 引用的相册不存在
	ErrAlbumNotFound = errors.New("referenced album not found")
)

// Repository 分享链接仓库
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的分享链接仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateShareLink 创建分享链接
//
// slug 全局唯一，重复插入返回 ErrSlugTaken（由唯一索引保证）。
func (r *Repository) CreateShareLink(link *models.ShareLink) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Album{}).Where("id = ?", link.AlbumID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrAlbumNotFound
		}

		if err := tx.Create(link).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSlugTaken
			}
			return fmt.Errorf("failed to create share link: %w", err)
		}
		return nil
	})
}

// GetBySlug 通过 slug 获取分享链接
func (r *Repository) GetBySlug(slug string) (*models.ShareLink, error) {
	var link models.ShareLink
	err := r.db.Where("slug = ?", slug).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShareNotFound
		}
		return nil, err
	}
	return &link, nil
}

// GetByID 通过ID获取分享链接
func (r *Repository) GetByID(id uint) (*models.ShareLink, error) {
	var link models.ShareLink
	err := r.db.First(&link, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShareNotFound
		}
		return nil, err
	}
	return &link, nil
}

// ListByAlbum 获取相册的全部分享链接，按创建时间倒序
func (r *Repository) ListByAlbum(albumID uint) ([]*models.ShareLink, error) {
	var links []*models.ShareLink
	err := r.db.Where("album_id = ?", albumID).Order("created_at desc").Find(&links).Error
	return links, err
}

// DeleteShareLink 撤销分享链接
func (r *Repository) DeleteShareLink(id uint) error {
	result := r.db.Delete(&models.ShareLink{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrShareNotFound
	}
	return nil
}

// CountShareLinks 统计分享链接总数
func (r *Repository) CountShareLinks() (int64, error) {
	var count int64
	err := r.db.Model(&models.ShareLink{}).Count(&count).Error
	return count, err
}

// WithContext 返回带上下文的仓库
func (r *Repository) WithContext(ctx context.Context) *Repository {
	return &Repository{db: r.db.WithContext(ctx)}
}
