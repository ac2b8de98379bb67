// Package model 定义注册中心的 GORM 数据模型.
// 所有实体由持久层统一盖 created/updated 时间戳，核心逻辑不依赖调用方传入时间.
package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Product 开发者发布的软件产品.
// Slug 全局唯一（创建时已统一小写），版本与素材随产品级联删除.
type Product struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	DeveloperID string `gorm:"size:36;index"      json:"developer_id"`
	Name        string `gorm:"size:120"           json:"name"`
	// URL 安全的唯一标识，创建时小写归一化
	Slug             string  `gorm:"size:120;uniqueIndex" json:"slug"`
	ShortDescription string  `gorm:"size:300"             json:"short_description"`
	LongDescription  string  `gorm:"type:text"            json:"long_description"`
	CategoryID       *string `gorm:"size:36;index"        json:"category_id,omitempty"`
	// Tags 以 JSON 字符串形式存储，便于模糊搜索；未来可替换为 JSONB
	TagsJSON   string            `gorm:"type:text"      json:"-"`
	Status     ProductStatus     `gorm:"size:32;index"  json:"status"`
	Visibility ProductVisibility `gorm:"size:32"        json:"visibility"`
	// 支持的平台集合，同样以 JSON 文本存储
	PlatformsJSON string     `gorm:"type:text" json:"-"`
	TrustBadge    TrustBadge `gorm:"size:32"   json:"trust_badge"`
	// 素材以 ID 引用，URL 在读取时向存储协作方解析
	IconAssetID            *string    `gorm:"size:26"   json:"icon_asset_id,omitempty"`
	BannerAssetID          *string    `gorm:"size:26"   json:"banner_asset_id,omitempty"`
	ScreenshotAssetIDsJSON string     `gorm:"type:text" json:"-"`
	TrailerURL             *string    `gorm:"size:512"  json:"trailer_url,omitempty"`
	PublishedAt            *time.Time `json:"published_at,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`

	Category *ProductCategory `gorm:"foreignKey:CategoryID" json:"-"`
}

// TagList 反序列化标签列表.
func (p *Product) TagList() ([]string, error) {
	return decodeStrings(p.TagsJSON, "tags")
}

// SetTagList 序列化标签列表.
func (p *Product) SetTagList(tags []string) error {
	s, err := encodeStrings(tags, "tags")
	if err != nil {
		return err
	}

	p.TagsJSON = s

	return nil
}

// PlatformList 反序列化平台支持集合.
func (p *Product) PlatformList() ([]Platform, error) {
	raw, err := decodeStrings(p.PlatformsJSON, "platforms")
	if err != nil {
		return nil, err
	}

	out := make([]Platform, 0, len(raw))
	for _, r := range raw {
		out = append(out, Platform(r))
	}

	return out, nil
}

// SetPlatformList 序列化平台支持集合.
func (p *Product) SetPlatformList(platforms []Platform) error {
	raw := make([]string, 0, len(platforms))
	for _, pf := range platforms {
		raw = append(raw, string(pf))
	}

	s, err := encodeStrings(raw, "platforms")
	if err != nil {
		return err
	}

	p.PlatformsJSON = s

	return nil
}

// ScreenshotIDs 反序列化截图素材 ID 列表.
func (p *Product) ScreenshotIDs() ([]string, error) {
	return decodeStrings(p.ScreenshotAssetIDsJSON, "screenshot_asset_ids")
}

// SetScreenshotIDs 序列化截图素材 ID 列表.
func (p *Product) SetScreenshotIDs(ids []string) error {
	s, err := encodeStrings(ids, "screenshot_asset_ids")
	if err != nil {
		return err
	}

	p.ScreenshotAssetIDsJSON = s

	return nil
}

func decodeStrings(s, field string) ([]string, error) {
	if s == "" {
		return nil, nil
	}

	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", field, err)
	}

	return out, nil
}

func encodeStrings(v []string, field string) (string, error) {
	if len(v) == 0 {
		return "", nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", field, err)
	}

	return string(b), nil
}
