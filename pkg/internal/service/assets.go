package service

import (
	"context"
	"errors"
	"fmt"
	"time"

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

// 素材上传 URL 的有效期.
const uploadURLTTL = 15 * time.Minute

// AssetService 负责产品素材（图标/横幅/截图）的上传签发与管理.
// 客户端拿到预签名 URL 后直接 PUT 到对象存储，服务端不经手素材字节.
type AssetService struct {
	dbc   *db.Client
	mqc   *mq.Client
	store storage.ObjectStorage

	assetsBucket string
}

// NewAssetService 创建并返回一个新的 AssetService 实例.
func NewAssetService(c context.Context) *AssetService {
	svc := &AssetService{
		dbc:          ctxPkg.GetDBClient(c),
		mqc:          ctxPkg.GetMQClient(c),
		assetsBucket: configs.GetConfig().S3.AssetsBucket,
	}

	if s3 := ctxPkg.GetS3Client(c); s3 != nil {
		svc.store = s3
	}

	if svc.dbc == nil || svc.store == nil {
		nlog.Logger().Warn().Msg("storage not initialized, AssetService features limited")
	}

	return svc
}

// InitiateUpload 签发素材上传：生成 ULID 素材 ID，派生确定性存储路径，
// 签发 15 分钟有效的预签名 PUT URL.记录在返回前落库，未完成的上传
// 由定时任务清理.
func (s *AssetService) InitiateUpload(ctx context.Context, uploadedBy string, req *types.InitiateAssetUploadRequest) (*types.AssetUpload, error) {
	if s.store == nil {
		return nil, errors.New("object storage not initialized")
	}

	typ, err := model.ParseAssetType(req.Type)
	if err != nil {
		return nil, fmt.Errorf("asset type %q: %w", req.Type, ErrValidation)
	}

	now := time.Now().UTC()

	a := &model.Asset{
		ID:         newAssetID(now),
		ProductID:  req.ProductID,
		Type:       typ,
		UploadedBy: uploadedBy,
		UploadedAt: now,
	}
	a.StoragePath = assetObjectKey(req.ProductID, typ, a.ID)

	uploadURL, err := s.store.MintUploadURL(ctx, s.assetsBucket, a.StoragePath, req.ContentType, uploadURLTTL)
	if err != nil {
		return nil, fmt.Errorf("mint upload url: %w", err)
	}

	publicURL := s.store.PublicURL(s.assetsBucket, a.StoragePath)

	err = s.dbc.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.Product{}).Where("id = ?", req.ProductID).Count(&n).Error; err != nil {
			return fmt.Errorf("check product: %w", err)
		}

		if n == 0 {
			return fmt.Errorf("product %s: %w", req.ProductID, ErrNotFound)
		}

		if err := tx.Create(a).Error; err != nil {
			return fmt.Errorf("create asset: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.mqc, queue.TopicAssetUploadInitiated, queue.AssetPayload{
		AssetID:     a.ID,
		ProductID:   a.ProductID,
		Type:        string(a.Type),
		StoragePath: a.StoragePath,
	})

	return &types.AssetUpload{
		AssetID:   a.ID,
		UploadURL: uploadURL,
		PublicURL: publicURL,
		ExpiresIn: int(uploadURLTTL.Seconds()),
	}, nil
}

// ListAssets 列出某产品的素材，可按类型过滤，URL 在读取时解析.
func (s *AssetService) ListAssets(ctx context.Context, productID, typeFilter string) ([]types.AssetInfo, error) {
	if s.store == nil {
		return nil, errors.New("object storage not initialized")
	}

	tx := s.dbc.GetDB().WithContext(ctx).Model(&model.Asset{}).
		Where("product_id = ?", productID)

	if typeFilter != "" {
		typ, err := model.ParseAssetType(typeFilter)
		if err != nil {
			return nil, fmt.Errorf("asset type %q: %w", typeFilter, ErrValidation)
		}

		tx = tx.Where("type = ?", typ)
	}

	var rows []model.Asset
	if err := tx.Order("uploaded_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}

	out := make([]types.AssetInfo, 0, len(rows))
	for _, a := range rows {
		out = append(out, types.AssetInfo{
			ID:         a.ID,
			ProductID:  a.ProductID,
			Type:       a.Type,
			URL:        s.store.PublicURL(s.assetsBucket, a.StoragePath),
			Width:      a.Width,
			Height:     a.Height,
			SizeBytes:  a.SizeBytes,
			UploadedAt: a.UploadedAt,
		})
	}

	return out, nil
}

// DeleteAsset 删除素材记录.对象存储中的字节由清理任务回收，
// 删除记录本身即让素材对读取方不可见.
func (s *AssetService) DeleteAsset(ctx context.Context, assetID string) error {
	var a model.Asset

	err := s.dbc.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&a, "id = ?", assetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("asset %s: %w", assetID, ErrNotFound)
			}

			return fmt.Errorf("load asset: %w", err)
		}

		if err := tx.Delete(&a).Error; err != nil {
			return fmt.Errorf("delete asset: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	publish(ctx, s.mqc, queue.TopicAssetDeleted, queue.AssetPayload{
		AssetID:     a.ID,
		ProductID:   a.ProductID,
		Type:        string(a.Type),
		StoragePath: a.StoragePath,
	})

	return nil
}
