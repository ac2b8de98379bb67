package queue

import "time"

// EventHeader 定义所有事件的通用头部元数据.
// 建议在发布消息时填充 TraceID、OccurredAt、Producer 等，便于追踪链路与审计.
type EventHeader struct {
	// Topic 冗余记录消息主题，便于离线处理或转储后定位来源主题.
	Topic string `json:"topic"`
	// TraceID 分布式追踪/关联 ID，可来自中间件或业务生成.
	TraceID string `json:"trace_id,omitempty"`
	// Producer 生产者服务名或节点标识.
	Producer string `json:"producer,omitempty"`
	// OccurredAt 事件发生时间（UTC，RFC3339）.
	OccurredAt time.Time `json:"occurred_at"`
	// Version 事件负载版本，便于向后兼容演进.
	Version string `json:"version,omitempty"`
}

// Message 是统一的消息封装，Header + Payload.
// T 即不同主题对应的负载结构体.
type Message[T any] struct {
	Header  EventHeader `json:"header"`
	Payload T           `json:"payload"`
}

// -------------------------- 产品领域 --------------------------

// ProductPayload 产品级事件的通用负载.
type ProductPayload struct {
	ProductID   string `json:"product_id"`
	DeveloperID string `json:"developer_id,omitempty"`
	Slug        string `json:"slug,omitempty"`
	Status      string `json:"status,omitempty"`
}

// -------------------------- 版本领域 --------------------------

// VersionStatusChangedPayload 审核流水线状态迁移.
type VersionStatusChangedPayload struct {
	ProductID     string `json:"product_id"`
	VersionID     string `json:"version_id"`
	VersionString string `json:"version_string,omitempty"`
	From          string `json:"from"`
	To            string `json:"to"`
}

// VersionCreatedPayload 新版本进入流水线.
type VersionCreatedPayload struct {
	ProductID     string `json:"product_id"`
	VersionID     string `json:"version_id"`
	VersionString string `json:"version_string"`
	Channel       string `json:"channel,omitempty"`
	Source        string `json:"source,omitempty"`
}

// -------------------------- 素材领域 --------------------------

// AssetPayload 素材级事件的通用负载.
type AssetPayload struct {
	AssetID   string `json:"asset_id"`
	ProductID string `json:"product_id"`
	Type      string `json:"type,omitempty"`
	// 对象存储中的路径
	StoragePath string `json:"storage_path,omitempty"`
}

// -------------------------- 分发领域 --------------------------

// ManifestServedPayload 清单下发事件，用于分发统计与热点分析.
type ManifestServedPayload struct {
	ProductID  string `json:"product_id"`
	VersionID  string `json:"version_id"`
	Platform   string `json:"platform"`
	Arch       string `json:"arch"`
	ChunkCount int    `json:"chunk_count,omitempty"`
	TotalBytes int64  `json:"total_bytes,omitempty"`
}
