package model

import "time"

// PlatformBinary 某版本在特定平台+架构上的二进制构建.
// (VersionID, Platform, Arch) 组合唯一——每个版本每个平台组合只有一个二进制.
type PlatformBinary struct {
	ID        string       `gorm:"primaryKey;size:36"                          json:"id"`
	VersionID string       `gorm:"size:36;index:idx_version_platform,unique"   json:"version_id"`
	Platform  Platform     `gorm:"size:16;index:idx_version_platform,unique"   json:"platform"`
	Arch      Architecture `gorm:"size:16;index:idx_version_platform,unique"   json:"arch"`
	// 关联的分块清单（1:1）
	ManifestID string `gorm:"size:36" json:"manifest_id"`
	SizeBytes  int64  `json:"size_bytes"`
	// 包含程序入口的分块，可为空
	EntryPointChunkID *string   `gorm:"size:36" json:"entry_point_chunk_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	Version  *ProductVersion `gorm:"foreignKey:VersionID"  json:"-"`
	Manifest *BinaryManifest `gorm:"foreignKey:ManifestID" json:"-"`
}

// BinaryManifest 描述二进制的分块布局，由签名服务签名，是客户端的信任锚.
type BinaryManifest struct {
	ID               string `gorm:"primaryKey;size:36" json:"id"`
	PlatformBinaryID string `gorm:"size:36;index"      json:"platform_binary_id"`
	// 重组后二进制的总大小
	TotalSizeBytes int64 `json:"total_size_bytes"`
	// 签名服务产出的签名（Base64）
	Signature     string `gorm:"size:1024" json:"signature"`
	HashAlgorithm string `gorm:"size:32"   json:"hash_algorithm"`
	// 清单载荷自身的哈希
	ManifestHash        string `gorm:"size:128" json:"manifest_hash"`
	EncryptionAlgorithm string `gorm:"size:32"  json:"encryption_algorithm"`
	// KMS 中主密钥的引用，密钥本体绝不落库
	KeyRefID  *string   `gorm:"size:128" json:"key_ref_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Chunks []Chunk `gorm:"foreignKey:ManifestID" json:"chunks,omitempty"`
}

// Chunk 二进制的一个独立可下载、可校验的加密分块.
// (ManifestID, SequenceIndex) 组合唯一，且同一清单的序号必须构成 0..N-1
// 的连续区间、大小之和等于清单总大小——该约束由写入方校验，存储层只保证唯一性.
type Chunk struct {
	ID            string `gorm:"primaryKey;size:36"                        json:"id"`
	ManifestID    string `gorm:"size:36;index:idx_manifest_seq,unique"     json:"manifest_id"`
	SequenceIndex int    `gorm:"index:idx_manifest_seq,unique"             json:"sequence_index"`
	// 在重组后二进制中的字节偏移
	OffsetInBinary int64 `json:"offset_in_binary"`
	SizeBytes      int64 `json:"size_bytes"`
	// 加密后分块内容的哈希
	HashSha256 string        `gorm:"size:128" json:"hash_sha256"`
	Priority   ChunkPriority `gorm:"size:16"  json:"priority"`
	// 对象存储中的路径；下载 URL 按请求即时签发，绝不落库
	StoragePath string    `gorm:"size:1024" json:"storage_path"`
	Encrypted   bool      `json:"encrypted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
