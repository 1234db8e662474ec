package likes

import (
	"context"
	"errors"

	"github.com/dichfoto/dichfoto/database/models"
	"gorm.io/gorm"
)

// ErrURLRequired 点赞资源 URL 为必填项
var ErrURLRequired = errors.New("like url is required")

// Repository 点赞仓库
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的点赞仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Toggle 切换点赞状态，返回切换后的状态
//
// 同一 url+user 只保留一行记录：已存在则翻转 liked，否则新建 liked=true。
func (r *Repository) Toggle(url string, userID *uint) (bool, error) {
	if url == "" {
		return false, ErrURLRequired
	}

	var liked bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var like models.Like
		query := tx.Where("url = ?", url)
		if userID != nil {
			query = query.Where("user_id = ?", *userID)
		} else {
			query = query.Where("user_id IS NULL")
		}

		err := query.First(&like).Error
		if err == nil {
			like.Liked = !like.Liked
			liked = like.Liked
			return tx.Save(&like).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		like = models.Like{URL: url, UserID: userID, Liked: true}
		liked = true
		return tx.Create(&like).Error
	})
	return liked, err
}

// Count 统计资源的有效点赞数
func (r *Repository) Count(url string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("url = ? AND liked = ?", url, true).Count(&count).Error
	return count, err
}

// CountAll 统计全站有效点赞数
func (r *Repository) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("liked = ?", true).Count(&count).Error
	return count, err
}

// WithContext 返回带上下文的仓库
func (r *Repository) WithContext(ctx context.Context) *Repository {
	return &Repository{db: r.db.WithContext(ctx)}
}
