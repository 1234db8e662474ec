package albums

import (
	"context"
	"errors"
	"fmt"

	"github.com/dichfoto/dichfoto/database/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrAlbumNotFound 相册不存在
	ErrAlbumNotFound = errors.New("album not found")
	// ErrTitleRequired 相册标题为必填项
	ErrTitleRequired = errors.New("album title is required")
	// ErrCoverNotInAlbum 封面必须是本相册内的照片
	ErrCoverNotInAlbum = errors.New("cover asset does not belong to this album")
)

// Repository 相册仓库 - 封装所有相册相关的数据库操作
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的相册仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateAlbum 创建相册
func (r *Repository) CreateAlbum(album *models.Album) error {
	if album.Title == "" {
		return ErrTitleRequired
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(album).Error; err != nil {
			return fmt.Errorf("failed to create album: %w", err)
		}
		return nil
	})
}

// GetAlbumByID 通过ID获取相册
func (r *Repository) GetAlbumByID(albumID uint) (*models.Album, error) {
	var album models.Album
	err := r.db.First(&album, albumID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlbumNotFound
		}
		return nil, err
	}
	return &album, nil
}

// GetAlbumWithAssets 获取相册及其照片，照片按 sort_order 升序
func (r *Repository) GetAlbumWithAssets(albumID uint) (*models.Album, error) {
	var album models.Album
	err := r.db.Preload("Assets", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order asc")
	}).First(&album, albumID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlbumNotFound
		}
		return nil, err
	}
	return &album, nil
}

// ListAlbums 分页获取相册列表，按创建时间倒序
func (r *Repository) ListAlbums(page, pageSize int) ([]*models.Album, int64, error) {
	var albums []*models.Album
	var total int64
	db := r.db.Model(&models.Album{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := db.Order("created_at desc").Offset(offset).Limit(pageSize).Find(&albums).Error
	return albums, total, err
}

// UpdateAlbum 更新相册
func (r *Repository) UpdateAlbum(album *models.Album) error {
	if album.Title == "" {
		return ErrTitleRequired
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Save(album).Error
	})
}

// SetCover 设置相册封面
//
// assetID 为 nil 时清除封面。封面必须属于本相册，写入时校验。
func (r *Repository) SetCover(albumID uint, assetID *uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var album models.Album
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&album, albumID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAlbumNotFound
			}
			return err
		}

		if assetID != nil {
			var count int64
			if err := tx.Model(&models.Asset{}).
				Where("id = ? AND album_id = ?", *assetID, albumID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrCoverNotInAlbum
			}
		}

		return tx.Model(&album).Update("cover_asset_id", assetID).Error
	})
}

// DeleteAlbum 删除相册及其全部照片与分享链接
//
// 三类删除在同一事务内完成，不允许出现照片已删而分享链接残留的中间状态。
func (r *Repository) DeleteAlbum(albumID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var album models.Album
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&album, albumID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAlbumNotFound
			}
			return err
		}

		// 先断开封面引用，避免 albums.cover_asset_id -> assets 阻塞照片删除
		if err := tx.Model(&album).Update("cover_asset_id", nil).Error; err != nil {
			return fmt.Errorf("failed to clear cover for album %d: %w", albumID, err)
		}

		if err := tx.Where("album_id = ?", albumID).Delete(&models.Asset{}).Error; err != nil {
			return fmt.Errorf("failed to delete assets of album %d: %w", albumID, err)
		}

		if err := tx.Where("album_id = ?", albumID).Delete(&models.ShareLink{}).Error; err != nil {
			return fmt.Errorf("failed to delete share links of album %d: %w", albumID, err)
		}

		if err := tx.Delete(&album).Error; err != nil {
			return fmt.Errorf("failed to delete album %d: %w", albumID, err)
		}

		return nil
	})
}

// AlbumExists 检查相册是否存在
func (r *Repository) AlbumExists(albumID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Album{}).Where("id = ?", albumID).Count(&count).Error
	return count > 0, err
}

// CountAlbums 统计相册总数
func (r *Repository) CountAlbums() (int64, error) {
	var count int64
	err := r.db.Model(&models.Album{}).Count(&count).Error
	return count, err
}

// WithContext 返回带上下文的仓库
func (r *Repository) WithContext(ctx context.Context) *Repository {
	return &Repository{db: r.db.WithContext(ctx)}
}
