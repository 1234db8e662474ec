package models

import "time"

// Like 公开访客的点赞记录
//
// 松耦合的互动数据：按资源 URL 记录，不与 Album/Asset 建立外键。
type Like struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	URL       string    `gorm:"type:varchar(500);index;not null" json:"url"`
	UserID    *uint     `json:"user_id,omitempty"`
	Liked     bool      `gorm:"not null" json:"liked"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定表名
func (Like) TableName() string {
	return "likes"
}
