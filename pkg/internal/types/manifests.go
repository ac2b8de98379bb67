package types

import "github.com/allservices/registry/pkg/internal/model"

// Manifest 面向启动器的已签名分块清单.
// Chunks 按 sequence_index 升序排列：优先级决定客户端抓取顺序，
// 序号决定字节落位，重组正确性只依赖后者.
type Manifest struct {
	ID                  string           `json:"id"`
	PlatformBinaryID    string           `json:"platform_binary_id"`
	TotalSizeBytes      int64            `json:"total_size_bytes"`
	Signature           string           `json:"signature"`
	HashAlgorithm       string           `json:"hash_algorithm"`
	ManifestHash        string           `json:"manifest_hash"`
	EncryptionAlgorithm string           `json:"encryption_algorithm"`
	Chunks              []ChunkDescriptor `json:"chunks"`
}

// ChunkDescriptor 清单内单个分块的描述，URL 为按请求签发的短时效下载链接.
type ChunkDescriptor struct {
	ID             string              `json:"id"`
	SequenceIndex  int                 `json:"sequence_index"`
	OffsetInBinary int64               `json:"offset_in_binary"`
	SizeBytes      int64               `json:"size_bytes"`
	HashSha256     string              `json:"hash_sha256"`
	Priority       model.ChunkPriority `json:"priority"`
	URL            string              `json:"url"`
	Encrypted      bool                `json:"encrypted"`
}
