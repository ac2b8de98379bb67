package model

import "time"

// ProductCategory 产品分类，父子关系以 (id, parent_id) 平表存储.
// 树在读取时于内存中物化（见 service），不维护带回引用的对象图.
// 分类较浅且由管理员维护，父指针只允许指向已存在的分类，不会成环.
type ProductCategory struct {
	ID               string  `gorm:"primaryKey;size:36"   json:"id"`
	Name             string  `gorm:"size:120"             json:"name"`
	Slug             string  `gorm:"size:120;uniqueIndex" json:"slug"`
	ParentCategoryID *string `gorm:"size:36;index"        json:"parent_category_id,omitempty"`
	// 图标标识（css class 或素材引用）
	Icon        string    `gorm:"size:128" json:"icon,omitempty"`
	SortOrder   int       `json:"sort_order"`
	Description string    `gorm:"size:512" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
