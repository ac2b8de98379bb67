package types

import (
	"time"

	"github.com/allservices/registry/pkg/internal/model"
)

// InitiateAssetUploadRequest 素材上传签发请求.
type InitiateAssetUploadRequest struct {
	ProductID   string `binding:"required" json:"product_id"`
	Type        string `binding:"required" json:"type"`
	ContentType string `binding:"required" json:"content_type"`
}

// AssetUpload 素材上传签发结果：客户端向 UploadURL 直接 PUT，
// PublicURL 为上传完成后的最终访问地址（确定性派生，可提前返回）.
type AssetUpload struct {
	AssetID   string `json:"asset_id"`
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
	ExpiresIn int    `json:"expires_in"` // 秒
}

// AssetInfo 素材信息，URL 为读取时解析的公开地址.
type AssetInfo struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Type       model.AssetType `json:"type"`
	URL        string          `json:"url"`
	Width      *int            `json:"width,omitempty"`
	Height     *int            `json:"height,omitempty"`
	SizeBytes  int64           `json:"size_bytes"`
	UploadedAt time.Time       `json:"uploaded_at"`
}
