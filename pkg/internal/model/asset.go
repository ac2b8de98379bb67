package model

import "time"

// Asset 产品的媒体素材（图标/横幅/截图/预告片缩略图）.
// ID 为 ULID，签发上传 URL 前先落库，客户端未完成上传时记录依然存在，
// 孤儿素材由定时任务清理（见 jobs 包）.
type Asset struct {
	ID        string    `gorm:"primaryKey;size:26"          json:"id"`
	ProductID string    `gorm:"size:36;index:idx_prod_type" json:"product_id"`
	Type      AssetType `gorm:"size:32;index:idx_prod_type" json:"type"`
	// 对象存储中的路径，由 product/type/asset id 确定性派生
	StoragePath string    `gorm:"size:1024" json:"storage_path"`
	Width       *int      `json:"width,omitempty"`
	Height      *int      `json:"height,omitempty"`
	SizeBytes   int64     `json:"size_bytes"`
	UploadedBy  string    `gorm:"size:36" json:"uploaded_by"`
	UploadedAt  time.Time `json:"uploaded_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// All 返回全部需要迁移的模型，供 AutoMigrate 使用.
func All() []any {
	return []any{
		&Product{},
		&ProductVersion{},
		&PlatformBinary{},
		&BinaryManifest{},
		&Chunk{},
		&ProductCategory{},
		&Asset{},
	}
}
