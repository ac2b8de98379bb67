package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/allservices/registry/pkg/configs"
	ctxPkg "github.com/allservices/registry/pkg/context"
	"github.com/allservices/registry/pkg/internal/model"
	"github.com/allservices/registry/pkg/internal/storage"
	"github.com/allservices/registry/pkg/internal/storage/db"
	"github.com/allservices/registry/pkg/internal/storage/mq"
	"github.com/allservices/registry/pkg/internal/types"
	nlog "github.com/allservices/registry/pkg/log"
	"github.com/allservices/registry/pkg/queue"
)

const (
	// 分块下载 URL 的有效期.URL 绝不落库，每次请求重新签发.
	chunkURLTTL = 5 * time.Minute

	// 单次清单装配的并发签发上限
	mintConcurrency = 8
)

// ManifestService 面向启动器装配已签名的分块清单.
// 只有 approved 状态的版本可被解析，其余情况一律 NotFound，不区分原因.
type ManifestService struct {
	dbc   *db.Client
	mqc   *mq.Client
	store storage.ObjectStorage

	binariesBucket string
}

// NewManifestService 创建并返回一个新的 ManifestService 实例.
func NewManifestService(c context.Context) *ManifestService {
	svc := &ManifestService{
		dbc:            ctxPkg.GetDBClient(c),
		mqc:            ctxPkg.GetMQClient(c),
		binariesBucket: configs.GetConfig().S3.BinariesBucket,
	}

	if s3 := ctxPkg.GetS3Client(c); s3 != nil {
		svc.store = s3
	}

	if svc.dbc == nil || svc.store == nil {
		nlog.Logger().Warn().Msg("storage not initialized, ManifestService features limited")
	}

	return svc
}

// GetManifest 解析 (product, version, platform, arch) 对应的清单.
// 分块按 sequence_index 升序返回，每个分块携带一条短时效签名下载 URL，
// URL 并发签发但落位顺序与分块顺序一致.
func (s *ManifestService) GetManifest(ctx context.Context, productID, versionID string, platform model.Platform, arch model.Architecture) (*types.Manifest, error) {
	if s.store == nil {
		return nil, errors.New("object storage not initialized")
	}

	var pb model.PlatformBinary

	err := s.dbc.GetDB().WithContext(ctx).
		Joins("JOIN product_versions ON product_versions.id = platform_binaries.version_id").
		Where("platform_binaries.version_id = ?", versionID).
		Where("platform_binaries.platform = ? AND platform_binaries.arch = ?", platform, arch).
		Where("product_versions.product_id = ?", productID).
		Where("product_versions.status = ?", model.VersionStatusApproved).
		First(&pb).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("manifest for version %s %s/%s: %w", versionID, platform, arch, ErrNotFound)
	}

	if err != nil {
		return nil, fmt.Errorf("resolve platform binary: %w", err)
	}

	var m model.BinaryManifest

	err = s.dbc.GetDB().WithContext(ctx).
		Preload("Chunks", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("sequence_index ASC")
		}).
		First(&m, "id = ?", pb.ManifestID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("manifest %s: %w", pb.ManifestID, ErrNotFound)
	}

	if err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}

	chunks := make([]types.ChunkDescriptor, len(m.Chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(mintConcurrency)

	for i := range m.Chunks {
		c := m.Chunks[i]

		g.Go(func() error {
			u, err := s.store.MintDownloadURL(gctx, s.binariesBucket, c.StoragePath, chunkURLTTL)
			if err != nil {
				return fmt.Errorf("sign chunk %d: %w", c.SequenceIndex, err)
			}

			// 按原始下标落位，保持 sequence_index 升序
			chunks[i] = types.ChunkDescriptor{
				ID:             c.ID,
				SequenceIndex:  c.SequenceIndex,
				OffsetInBinary: c.OffsetInBinary,
				SizeBytes:      c.SizeBytes,
				HashSha256:     c.HashSha256,
				Priority:       c.Priority,
				URL:            u,
				Encrypted:      c.Encrypted,
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &types.Manifest{
		ID:                  m.ID,
		PlatformBinaryID:    m.PlatformBinaryID,
		TotalSizeBytes:      m.TotalSizeBytes,
		Signature:           m.Signature,
		HashAlgorithm:       m.HashAlgorithm,
		ManifestHash:        m.ManifestHash,
		EncryptionAlgorithm: m.EncryptionAlgorithm,
		Chunks:              chunks,
	}

	publish(ctx, s.mqc, queue.TopicManifestServed, queue.ManifestServedPayload{
		ProductID:  productID,
		VersionID:  versionID,
		Platform:   string(platform),
		Arch:       string(arch),
		ChunkCount: len(chunks),
		TotalBytes: m.TotalSizeBytes,
	})

	return out, nil
}
