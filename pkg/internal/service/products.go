package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
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

// ProductService 负责产品目录：创建、查询、局部更新、软删除与上下架.
type ProductService struct {
	dbc   *db.Client
	mqc   *mq.Client
	store storage.ObjectStorage

	assetsBucket string
}

// NewProductService 创建并返回一个新的 ProductService 实例.
func NewProductService(c context.Context) *ProductService {
	svc := &ProductService{
		dbc:          ctxPkg.GetDBClient(c),
		mqc:          ctxPkg.GetMQClient(c),
		assetsBucket: configs.GetConfig().S3.AssetsBucket,
	}

	if s3 := ctxPkg.GetS3Client(c); s3 != nil {
		svc.store = s3
	}

	if svc.dbc == nil {
		nlog.Logger().Warn().Msg("DB client not initialized, ProductService features limited")
	}

	return svc
}

// CreateProduct 创建一个 draft 状态的新产品.slug 在写入前统一小写，
// 同一事务内先做友好预检，唯一索引兜底.
func (s *ProductService) CreateProduct(ctx context.Context, developerID string, req *types.CreateProductRequest) (*types.ProductDetail, error) {
	if s.dbc == nil || s.dbc.GetDB() == nil {
		return nil, errors.New("db not initialized")
	}

	slug := strings.ToLower(req.Slug)

	p := &model.Product{
		ID:               uuid.NewString(),
		DeveloperID:      developerID,
		Name:             req.Name,
		Slug:             slug,
		ShortDescription: req.ShortDescription,
		LongDescription:  req.LongDescription,
		CategoryID:       req.CategoryID,
		Status:           model.ProductStatusDraft,
		Visibility:       req.Visibility,
		TrustBadge:       model.TrustBadgeNone,
		TrailerURL:       req.TrailerURL,
	}

	if p.Visibility == "" {
		p.Visibility = model.VisibilityPublic
	}

	if err := p.SetTagList(req.Tags); err != nil {
		return nil, err
	}

	if err := p.SetPlatformList(req.PlatformSupport); err != nil {
		return nil, err
	}

	err := s.dbc.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.Product{}).Where("slug = ?", slug).Count(&n).Error; err != nil {
			return fmt.Errorf("check slug: %w", err)
		}

		if n > 0 {
			return fmt.Errorf("slug %q: %w", slug, ErrDuplicateSlug)
		}

		if err := tx.Create(p).Error; err != nil {
			return fmt.Errorf("create product: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.mqc, queue.TopicProductCreated, productPayload(p))

	return s.toDetail(p)
}

// GetProduct 按 ID 查询产品详情.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*types.ProductDetail, error) {
	var p model.Product

	err := s.dbc.GetDB().WithContext(ctx).Preload("Category").First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}

	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}

	return s.toDetail(&p)
}

// GetProductBySlug 按 slug 查询产品详情（大小写无关）.
func (s *ProductService) GetProductBySlug(ctx context.Context, slug string) (*types.ProductDetail, error) {
	var p model.Product

	err := s.dbc.GetDB().WithContext(ctx).Preload("Category").
		First(&p, "slug = ?", strings.ToLower(slug)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product %s: %w", slug, ErrNotFound)
	}

	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}

	return s.toDetail(&p)
}

// ListProducts 过滤 + 偏移分页的产品列表，返回总数.
func (s *ProductService) ListProducts(ctx context.Context, q *types.ListProductsQuery) (*types.Paged[types.ProductSummary], error) {
	page, size := normalizePage(q.Page, q.PageSize)

	tx := s.dbc.GetDB().WithContext(ctx).Model(&model.Product{})

	if q.DeveloperID != "" {
		tx = tx.Where("developer_id = ?", q.DeveloperID)
	}

	if q.Status != "" {
		st, err := model.ParseProductStatus(q.Status)
		if err != nil {
			return nil, fmt.Errorf("status filter %q: %w", q.Status, ErrValidation)
		}

		tx = tx.Where("status = ?", st)
	}

	if q.CategoryID != "" {
		tx = tx.Where("category_id = ?", q.CategoryID)
	}

	if q.Search != "" {
		like := "%" + strings.ToLower(q.Search) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(short_description) LIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	var rows []model.Product

	err := tx.Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	items := make([]types.ProductSummary, 0, len(rows))

	for i := range rows {
		sum, err := s.toSummary(&rows[i])
		if err != nil {
			return nil, err
		}

		items = append(items, *sum)
	}

	paged := types.NewPaged(items, total, page, size)

	return &paged, nil
}

// UpdateProduct 局部更新：只应用显式出现（非 nil）的字段.slug 不可更新.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, req *types.UpdateProductRequest) (*types.ProductDetail, error) {
	var p model.Product

	err := s.dbc.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product %s: %w", id, ErrNotFound)
			}

			return fmt.Errorf("load product: %w", err)
		}

		if req.Name != nil {
			p.Name = *req.Name
		}

		if req.ShortDescription != nil {
			p.ShortDescription = *req.ShortDescription
		}

		if req.LongDescription != nil {
			p.LongDescription = *req.LongDescription
		}

		if req.CategoryID != nil {
			p.CategoryID = req.CategoryID
		}

		if req.Tags != nil {
			if err := p.SetTagList(*req.Tags); err != nil {
				return err
			}
		}

		if req.Visibility != nil {
			p.Visibility = *req.Visibility
		}

		if req.PlatformSupport != nil {
			if err := p.SetPlatformList(*req.PlatformSupport); err != nil {
				return err
			}
		}

		if req.TrailerURL != nil {
			p.TrailerURL = req.TrailerURL
		}

		if req.IconAssetID != nil {
			p.IconAssetID = req.IconAssetID
		}

		if req.BannerAssetID != nil {
			p.BannerAssetID = req.BannerAssetID
		}

		if req.ScreenshotIDs != nil {
			if err := p.SetScreenshotIDs(*req.ScreenshotIDs); err != nil {
				return err
			}
		}

		if err := tx.Save(&p).Error; err != nil {
			return fmt.Errorf("update product: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.mqc, queue.TopicProductUpdated, productPayload(&p))

	return s.toDetail(&p)
}

// DeleteProduct 软删除：状态置为 delisted，记录保留.
// 是否存在阻止下架的外部义务（如有效授权）由调用方校验.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	p, err := s.setStatus(ctx, id, model.ProductStatusDelisted, nil)
	if err != nil {
		return err
	}

	publish(ctx, s.mqc, queue.TopicProductDelisted, productPayload(p))

	return nil
}

// SuspendProduct 管理员暂停产品.
func (s *ProductService) SuspendProduct(ctx context.Context, id string) error {
	p, err := s.setStatus(ctx, id, model.ProductStatusSuspended, nil)
	if err != nil {
		return err
	}

	publish(ctx, s.mqc, queue.TopicProductSuspended, productPayload(p))

	return nil
}

// UnsuspendProduct 解除暂停，恢复为 listed.仅当当前状态恰为 suspended 时允许.
func (s *ProductService) UnsuspendProduct(ctx context.Context, id string) error {
	p, err := s.setStatus(ctx, id, model.ProductStatusListed, func(p *model.Product) error {
		if p.Status != model.ProductStatusSuspended {
			return fmt.Errorf("product %s is %s: %w", id, p.Status, ErrInvalidState)
		}

		return nil
	})
	if err != nil {
		return err
	}

	publish(ctx, s.mqc, queue.TopicProductRestored, productPayload(p))

	return nil
}

// setStatus 在单个事务内完成"加载、前置校验、改状态、保存".
// 首次进入 listed 时盖 PublishedAt.
func (s *ProductService) setStatus(ctx context.Context, id string, to model.ProductStatus, guard func(*model.Product) error) (*model.Product, error) {
	var p model.Product

	err := s.dbc.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product %s: %w", id, ErrNotFound)
			}

			return fmt.Errorf("load product: %w", err)
		}

		if guard != nil {
			if err := guard(&p); err != nil {
				return err
			}
		}

		p.Status = to

		if to == model.ProductStatusListed && p.PublishedAt == nil {
			now := time.Now().UTC()
			p.PublishedAt = &now
		}

		if err := tx.Save(&p).Error; err != nil {
			return fmt.Errorf("update product status: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// -------------------------- 映射 --------------------------

func productPayload(p *model.Product) queue.ProductPayload {
	return queue.ProductPayload{
		ProductID:   p.ID,
		DeveloperID: p.DeveloperID,
		Slug:        p.Slug,
		Status:      string(p.Status),
	}
}

// assetURL 把素材 ID 解析为确定性的公开 URL，存储协作方缺失时返回空串.
func (s *ProductService) assetURL(productID string, typ model.AssetType, assetID *string) string {
	if assetID == nil || *assetID == "" || s.store == nil {
		return ""
	}

	return s.store.PublicURL(s.assetsBucket, assetObjectKey(productID, typ, *assetID))
}

func (s *ProductService) toDetail(p *model.Product) (*types.ProductDetail, error) {
	tags, err := p.TagList()
	if err != nil {
		return nil, err
	}

	platforms, err := p.PlatformList()
	if err != nil {
		return nil, err
	}

	shots, err := p.ScreenshotIDs()
	if err != nil {
		return nil, err
	}

	d := &types.ProductDetail{
		ID:               p.ID,
		DeveloperID:      p.DeveloperID,
		Name:             p.Name,
		Slug:             p.Slug,
		ShortDescription: p.ShortDescription,
		LongDescription:  p.LongDescription,
		CategoryID:       p.CategoryID,
		Tags:             tags,
		Status:           p.Status,
		Visibility:       p.Visibility,
		PlatformSupport:  platforms,
		TrustBadge:       p.TrustBadge,
		IconURL:          s.assetURL(p.ID, model.AssetTypeIcon, p.IconAssetID),
		BannerURL:        s.assetURL(p.ID, model.AssetTypeBanner, p.BannerAssetID),
		TrailerURL:       p.TrailerURL,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		PublishedAt:      p.PublishedAt,
	}

	if p.Category != nil {
		d.CategoryName = p.Category.Name
	}

	for _, id := range shots {
		if u := s.assetURL(p.ID, model.AssetTypeScreenshot, &id); u != "" {
			d.ScreenshotURLs = append(d.ScreenshotURLs, u)
		}
	}

	return d, nil
}

func (s *ProductService) toSummary(p *model.Product) (*types.ProductSummary, error) {
	platforms, err := p.PlatformList()
	if err != nil {
		return nil, err
	}

	return &types.ProductSummary{
		ID:               p.ID,
		DeveloperID:      p.DeveloperID,
		Name:             p.Name,
		Slug:             p.Slug,
		ShortDescription: p.ShortDescription,
		Status:           p.Status,
		Visibility:       p.Visibility,
		PlatformSupport:  platforms,
		TrustBadge:       p.TrustBadge,
		IconURL:          s.assetURL(p.ID, model.AssetTypeIcon, p.IconAssetID),
		CreatedAt:        p.CreatedAt,
		PublishedAt:      p.PublishedAt,
	}, nil
}
