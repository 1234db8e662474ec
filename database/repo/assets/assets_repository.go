package assets

import (
	"context"
	"errors"
	"fmt"

	"github.com/dichfoto/dichfoto/database/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrAssetNotFound 照片不存在
	ErrAssetNotFound = errors.New("asset not found")
	// ErrAlbumNotFound 引用的相册不存在
	ErrAlbumNotFound = errors.New("referenced album not found")
	// ErrFilenameRequired 文件名为必填项
	ErrFilenameRequired = errors.New("asset filename is required")
	// ErrAssetNotInAlbum 照片不属于指定相册
	ErrAssetNotInAlbum = errors.New("asset does not belong to this album")
)

// Repository 照片仓库 - 封装所有照片相关的数据库操作
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的照片仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateAsset 登记一张上传的照片
//
// album_id 必须指向已存在的相册，引用校验与写入在同一事务内完成。
func (r *Repository) CreateAsset(asset *models.Asset) error {
	if asset.Filename == "" || asset.OriginalName == "" {
		return ErrFilenameRequired
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Album{}).Where("id = ?", asset.AlbumID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrAlbumNotFound
		}

		if err := tx.Create(asset).Error; err != nil {
			return fmt.Errorf("failed to create asset: %w", err)
		}
		return nil
	})
}

// GetAssetByID 通过ID获取照片
func (r *Repository) GetAssetByID(assetID uint) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.First(&asset, assetID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return &asset, nil
}

// ListByAlbum 获取相册内照片，按 sort_order 升序
//
// includeHidden 为 false 时过滤 is_hidden 的照片（公开分享页使用）。
func (r *Repository) ListByAlbum(albumID uint, includeHidden bool) ([]*models.Asset, error) {
	var assets []*models.Asset
	db := r.db.Where("album_id = ?", albumID)
	if !includeHidden {
		db = db.Where("is_hidden = ?", false)
	}
	err := db.Order("sort_order asc").Find(&assets).Error
	return assets, err
}

// ApplyVariants 将图片处理结果整体写入照片记录
//
// 覆盖写：行内的宽高与十二个变体列在调用后与输入完全一致。Save 写全部
// 列，nil 指针落库为 NULL，上一次的残留值不会保留。
func (r *Repository) ApplyVariants(assetID uint, variants models.VariantSet) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&asset, assetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAssetNotFound
			}
			return err
		}

		asset.SetVariants(variants)
		return tx.Save(&asset).Error
	})
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// SetSortOrder 按给定的 ID 顺序重排相册内照片
func (r *Repository) SetSortOrder(albumID uint, orderedIDs []uint) error {
	if len(orderedIDs) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Asset{}).
			Where("album_id = ? AND id IN ?", albumID, orderedIDs).
			Count(&count).Error; err != nil {
			return err
		}
		if count != int64(len(orderedIDs)) {
			return ErrAssetNotInAlbum
		}

		for i, id := range orderedIDs {
			if err := tx.Model(&models.Asset{}).Where("id = ?", id).
				Update("sort_order", i+1).Error; err != nil {
				return fmt.Errorf("failed to reorder asset %d: %w", id, err)
			}
		}
		return nil
	})
}

// SetHidden 设置照片的隐藏状态
func (r *Repository) SetHidden(assetID uint, hidden bool) error {
	result := r.db.Model(&models.Asset{}).Where("id = ?", assetID).Update("is_hidden", hidden)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAssetNotFound
	}
	return nil
}

// DeleteAsset 删除照片
//
// 若照片是某相册的封面，先清空 cover_asset_id 再删除（SET NULL 语义），
// 两步在同一事务内完成。
func (r *Repository) DeleteAsset(assetID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var asset models.Asset
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&asset, assetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAssetNotFound
			}
			return err
		}

		if err := tx.Model(&models.Album{}).
			Where("cover_asset_id = ?", assetID).
			Update("cover_asset_id", nil).Error; err != nil {
			return fmt.Errorf("failed to clear cover references for asset %d: %w", assetID, err)
		}

		if err := tx.Delete(&asset).Error; err != nil {
			return fmt.Errorf("failed to delete asset %d: %w", assetID, err)
		}
		return nil
	})
}

// CountAssets 统计照片总数
func (r *Repository) CountAssets() (int64, error) {
	var count int64
	err := r.db.Model(&models.Asset{}).Count(&count).Error
	return count, err
}

// WithContext 返回带上下文的仓库
func (r *Repository) WithContext(ctx context.Context) *Repository {
	return &Repository{db: r.db.WithContext(ctx)}
}
