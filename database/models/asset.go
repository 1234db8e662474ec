package models

import "time"

// 变体断点常量（目标像素宽度）
const (
	Breakpoint480  = 480
	Breakpoint960  = 960
	Breakpoint1280 = 1280
	Breakpoint1920 = 1920
)

// Asset 相册内的一张照片及其派生文件记录
//
// 十二个变体列（jpg/webp/avif × 480/960/1280/1920）是缓存的处理产物，
// 只能由 SetVariants 整体写入，不允许调用方逐字段修改。
type Asset struct {
	ID      uint `gorm:"primarykey" json:"id"`
	AlbumID uint `gorm:"not null;index" json:"album_id"`

	SortOrder *int `json:"sort_order,omitempty"`

	Filename     string `gorm:"type:varchar(255);not null" json:"filename"`
	OriginalName string `gorm:"type:varchar(255);not null" json:"original_name"`
	MimeType     string `gorm:"type:varchar(128)" json:"mime_type,omitempty"`
	Size         int64  `json:"size,omitempty"`

	Width  *int   `json:"width,omitempty"`
	Height *int   `json:"height,omitempty"`
	Lqip   string `gorm:"type:text" json:"lqip,omitempty"`

	Jpg480  *string `gorm:"column:jpg_480;type:varchar(255)" json:"jpg_480,omitempty"`
	Jpg960  *string `gorm:"column:jpg_960;type:varchar(255)" json:"jpg_960,omitempty"`
	Jpg1280 *string `gorm:"column:jpg_1280;type:varchar(255)" json:"jpg_1280,omitempty"`
	Jpg1920 *string `gorm:"column:jpg_1920;type:varchar(255)" json:"jpg_1920,omitempty"`

	Webp480  *string `gorm:"column:webp_480;type:varchar(255)" json:"webp_480,omitempty"`
	Webp960  *string `gorm:"column:webp_960;type:varchar(255)" json:"webp_960,omitempty"`
	Webp1280 *string `gorm:"column:webp_1280;type:varchar(255)" json:"webp_1280,omitempty"`
	Webp1920 *string `gorm:"column:webp_1920;type:varchar(255)" json:"webp_1920,omitempty"`

	Avif480  *string `gorm:"column:avif_480;type:varchar(255)" json:"avif_480,omitempty"`
	Avif960  *string `gorm:"column:avif_960;type:varchar(255)" json:"avif_960,omitempty"`
	Avif1280 *string `gorm:"column:avif_1280;type:varchar(255)" json:"avif_1280,omitempty"`
	Avif1920 *string `gorm:"column:avif_1920;type:varchar(255)" json:"avif_1920,omitempty"`

	GdriveFileID  *string `gorm:"type:varchar(255)" json:"gdrive_file_id,omitempty"`
	GdriveThumbID *string `gorm:"type:varchar(255)" json:"gdrive_thumb_id,omitempty"`

	IsHidden  bool      `gorm:"default:false;not null" json:"is_hidden"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (Asset) TableName() string {
	return "assets"
}

// VariantPaths 单一编码在四个断点下的派生文件路径，缺失的断点为 nil
type VariantPaths struct {
	W480  *string `json:"480,omitempty"`
	W960  *string `json:"960,omitempty"`
	W1280 *string `json:"1280,omitempty"`
	W1920 *string `json:"1920,omitempty"`
}

// VariantSet 图片处理流水线交付的完整处理结果
//
// 固定形状：三种编码 × 四个断点。调用方每次必须提供期望的完整状态，
// SetVariants 按此整体覆盖，不做增量合并。
type VariantSet struct {
	Width  *int `json:"width,omitempty"`
	Height *int `json:"height,omitempty"`

	JPG  VariantPaths `json:"jpg"`
	WebP VariantPaths `json:"webp"`
	AVIF VariantPaths `json:"avif"`
}

// SetVariants 将处理结果整体写入 Asset 的宽高与十二个变体字段
//
// 覆盖语义：输入中缺失的字段一律清空，上一次调用的残留值不会保留。
// 相同输入重复调用结果一致。不校验路径格式与宽高一致性，由图片处理方
// 保证输入正确。
func (a *Asset) SetVariants(v VariantSet) {
	a.Width = v.Width
	a.Height = v.Height

	a.Jpg480 = v.JPG.W480
	a.Jpg960 = v.JPG.W960
	a.Jpg1280 = v.JPG.W1280
	a.Jpg1920 = v.JPG.W1920

	a.Webp480 = v.WebP.W480
	a.Webp960 = v.WebP.W960
	a.Webp1280 = v.WebP.W1280
	a.Webp1920 = v.WebP.W1920

	a.Avif480 = v.AVIF.W480
	a.Avif960 = v.AVIF.W960
	a.Avif1280 = v.AVIF.W1280
	a.Avif1920 = v.AVIF.W1920
}
