package models

import "time"

// ShareLink 相册的公开分享链接
//
// Slug 全局唯一，作为不可猜测的公开访问令牌。
type ShareLink struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	AlbumID      uint       `gorm:"not null;index" json:"album_id"`
	Slug         string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	PasswordHash *string    `gorm:"type:varchar(255)" json:"-"`
	AllowZip     bool       `gorm:"not null" json:"allow_zip"`
	CreatedAt    time.Time  `json:"created_at"`
}

// TableName 指定表名
func (ShareLink) TableName() string {
	return "share_links"
}

// NewShareLink 创建分享链接，allow_zip 默认开启
func NewShareLink(albumID uint, slug string) *ShareLink {
	return &ShareLink{
		AlbumID:  albumID,
		Slug:     slug,
		AllowZip: true,
	}
}

// IsExpired 检查链接在给定时刻是否已过期，未设置过期时间视为永久有效
func (s *ShareLink) IsExpired(now time.Time) bool {
	return s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}

// HasPassword 检查链接是否设置了访问密码
func (s *ShareLink) HasPassword() bool {
	return s.PasswordHash != nil && *s.PasswordHash != ""
}
