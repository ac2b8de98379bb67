package types

import (
	"time"

	"github.com/allservices/registry/pkg/internal/model"
)

// CreateProductRequest 创建产品请求.
type CreateProductRequest struct {
	Name             string                  `binding:"required" json:"name"              rule:"max=120"`
	Slug             string                  `binding:"required" json:"slug"              rule:"max=120,slug"`
	ShortDescription string                  `binding:"required" json:"short_description" rule:"max=300"`
	LongDescription  string                  `binding:"required" json:"long_description"  rule:"max=50000"`
	CategoryID       *string                 `json:"category_id,omitempty"`
	Tags             []string                `json:"tags,omitempty"       rule:"max=20,dive,max=50"`
	Visibility       model.ProductVisibility `json:"visibility,omitempty"`
	PlatformSupport  []model.Platform        `binding:"required" json:"platform_support" rule:"min=1"`
	TrailerURL       *string                 `json:"trailer_url,omitempty"`
}

// UpdateProductRequest 局部更新请求：只应用显式出现（非 nil）的字段.
type UpdateProductRequest struct {
	Name             *string                  `json:"name,omitempty"              rule:"omitempty,max=120"`
	ShortDescription *string                  `json:"short_description,omitempty" rule:"omitempty,max=300"`
	LongDescription  *string                  `json:"long_description,omitempty"  rule:"omitempty,max=50000"`
	CategoryID       *string                  `json:"category_id,omitempty"`
	Tags             *[]string                `json:"tags,omitempty"              rule:"omitempty,max=20,dive,max=50"`
	Visibility       *model.ProductVisibility `json:"visibility,omitempty"`
	PlatformSupport  *[]model.Platform        `json:"platform_support,omitempty"  rule:"omitempty,min=1"`
	TrailerURL       *string                  `json:"trailer_url,omitempty"`
	IconAssetID      *string                  `json:"icon_asset_id,omitempty"`
	BannerAssetID    *string                  `json:"banner_asset_id,omitempty"`
	ScreenshotIDs    *[]string                `json:"screenshot_asset_ids,omitempty"`
}

// ListProductsQuery 产品列表过滤参数.
type ListProductsQuery struct {
	DeveloperID string `form:"developer_id"`
	Status      string `form:"status"`
	CategoryID  string `form:"category_id"`
	// 对名称与短描述做大小写无关的模糊搜索
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// ProductDetail 产品详情，素材 ID 已解析为公开 URL.
type ProductDetail struct {
	ID               string                  `json:"id"`
	DeveloperID      string                  `json:"developer_id"`
	Name             string                  `json:"name"`
	Slug             string                  `json:"slug"`
	ShortDescription string                  `json:"short_description"`
	LongDescription  string                  `json:"long_description"`
	CategoryID       *string                 `json:"category_id,omitempty"`
	CategoryName     string                  `json:"category_name,omitempty"`
	Tags             []string                `json:"tags"`
	Status           model.ProductStatus     `json:"status"`
	Visibility       model.ProductVisibility `json:"visibility"`
	PlatformSupport  []model.Platform        `json:"platform_support"`
	TrustBadge       model.TrustBadge        `json:"trust_badge"`
	IconURL          string                  `json:"icon_url,omitempty"`
	BannerURL        string                  `json:"banner_url,omitempty"`
	ScreenshotURLs   []string                `json:"screenshot_urls,omitempty"`
	TrailerURL       *string                 `json:"trailer_url,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
	PublishedAt      *time.Time              `json:"published_at,omitempty"`
}

// ProductSummary 产品摘要，用于列表与搜索结果卡片.
type ProductSummary struct {
	ID               string                  `json:"id"`
	DeveloperID      string                  `json:"developer_id"`
	Name             string                  `json:"name"`
	Slug             string                  `json:"slug"`
	ShortDescription string                  `json:"short_description"`
	Status           model.ProductStatus     `json:"status"`
	Visibility       model.ProductVisibility `json:"visibility"`
	PlatformSupport  []model.Platform        `json:"platform_support"`
	TrustBadge       model.TrustBadge        `json:"trust_badge"`
	IconURL          string                  `json:"icon_url,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
	PublishedAt      *time.Time              `json:"published_at,omitempty"`
}
