package types

// Category 分类节点，Children 为读取时在内存中物化的派生视图.
type Category struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Icon        string     `json:"icon,omitempty"`
	Description string     `json:"description,omitempty"`
	SortOrder   int        `json:"sort_order"`
	Children    []Category `json:"children"`
}
