package models

import "time"

// Album 相册
//
// CoverAssetID 指向本相册内的一张照片作为封面。封面照片被删除时该字段置空
// （SET NULL），避免 Album→封面 Asset 与 Asset→所属 Album 之间的引用环
// 阻塞删除。
type Album struct {
	ID              uint       `gorm:"primarykey" json:"id"`
	Title           string     `gorm:"type:varchar(255);not null" json:"title"`
	Photographer    string     `gorm:"type:varchar(255)" json:"photographer,omitempty"`
	PhotographerURL string     `gorm:"type:varchar(255)" json:"photographer_url,omitempty"`
	EventDate       *time.Time `json:"event_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`

	CoverAssetID *uint  `gorm:"index" json:"cover_asset_id,omitempty"`
	CoverAsset   *Asset `gorm:"foreignKey:CoverAssetID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`

	// 相册内照片按 sort_order 升序展示
	Assets []Asset     `gorm:"foreignKey:AlbumID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"assets,omitempty"`
	Shares []ShareLink `gorm:"foreignKey:AlbumID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (Album) TableName() string {
	return "albums"
}
