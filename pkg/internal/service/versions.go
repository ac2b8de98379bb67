package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	ctxPkg "github.com/allservices/registry/pkg/context"
	"github.com/allservices/registry/pkg/internal/model"
	"github.com/allservices/registry/pkg/internal/storage/db"
	"github.com/allservices/registry/pkg/internal/storage/mq"
	"github.com/allservices/registry/pkg/internal/types"
	nlog "github.com/allservices/registry/pkg/log"
	"github.com/allservices/registry/pkg/queue"
)

// VersionService 负责版本审核流水线：创建、查询、状态迁移与撤回.
// 迁移合法性由 model 包的邻接表判定，本服务只负责事务与时间戳.
type VersionService struct {
	dbc *db.Client
	mqc *mq.Client
}

// NewVersionService 创建并返回一个新的 VersionService 实例.
func NewVersionService(c context.Context) *VersionService {
	svc := &VersionService{
		dbc: ctxPkg.GetDBClient(c),
		mqc: ctxPkg.GetMQClient(c),
	}

	if svc.dbc == nil {
		nlog.Logger().Warn().Msg("DB client not initialized, VersionService features limited")
	}

	return svc
}

// CreateVersion 为产品创建一个新版本，初始状态恒为 uploading.
// 同一产品下版本号唯一，事务内预检，复合唯一索引兜底.
func (s *VersionService) CreateVersion(ctx context.Context, productID string, req *types.CreateVersionRequest) (*types.VersionDetail, error) {
	if s.dbc == nil || s.dbc.GetDB() == nil {
		return nil, errors.New("db not initialized")
	}

	now := time.Now().UTC()

	v := &model.ProductVersion{
		ID:                     uuid.NewString(),
		ProductID:              productID,
		VersionString:          req.VersionString,
		Channel:                req.Channel,
		Changelog:              req.Changelog,
		ReleaseNotes:           req.ReleaseNotes,
		Source:                 req.Source,
		CIJobID:                req.CIJobID,
		Status:                 model.VersionStatusUploading,
		IsForcedUpdate:         req.IsForcedUpdate,
		RolloutPercentage:      100,
		MinimumLauncherVersion: req.MinimumLauncherVersion,
		UploadedAt:             now,
	}

	if v.Channel == "" {
		v.Channel = model.ChannelStable
	}

	if v.Source == "" {
		v.Source = model.SourceManualUpload
	}

	if req.RolloutPercentage != nil {
		v.RolloutPercentage = model.ClampRollout(*req.RolloutPercentage)
	}

	err := s.dbc.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.Product{}).Where("id = ?", productID).Count(&n).Error; err != nil {
			return fmt.Errorf("check product: %w", err)
		}

		if n == 0 {
			return fmt.Errorf("product %s: %w", productID, ErrNotFound)
		}

		if err := tx.Model(&model.ProductVersion{}).
			Where("product_id = ? AND version_string = ?", productID, req.VersionString).
			Count(&n).Error; err != nil {
			return fmt.Errorf("check version: %w", err)
		}

		if n > 0 {
			return fmt.Errorf("version %q of product %s: %w", req.VersionString, productID, ErrDuplicateVersion)
		}

		if err := tx.Create(v).Error; err != nil {
			return fmt.Errorf("create version: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.mqc, queue.TopicVersionCreated, queue.VersionCreatedPayload{
		ProductID:     v.ProductID,
		VersionID:     v.ID,
		VersionString: v.VersionString,
		Channel:       string(v.Channel),
		Source:        string(v.Source),
	})

	return s.toDetail(ctx, v)
}

// GetVersion 按 ID 查询版本详情，附带各平台二进制摘要.
// 查询限定在指定产品下，跨产品访问按不存在处理.
func (s *VersionService) GetVersion(ctx context.Context, productID, versionID string) (*types.VersionDetail, error) {
	var v model.ProductVersion

	err := s.dbc.GetDB().WithContext(ctx).First(&v, "id = ? AND product_id = ?", versionID, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("version %s: %w", versionID, ErrNotFound)
	}

	if err != nil {
		return nil, fmt.Errorf("load version: %w", err)
	}

	return s.toDetail(ctx, &v)
}

// ListVersions 列出某产品的版本，可按状态与渠道过滤.
func (s *VersionService) ListVersions(ctx context.Context, productID string, q *types.ListVersionsQuery) (*types.Paged[types.VersionSummary], error) {
	page, size := normalizePage(q.Page, q.PageSize)

	tx := s.dbc.GetDB().WithContext(ctx).Model(&model.ProductVersion{}).
		Where("product_id = ?", productID)

	if q.Status != "" {
		st, ok := model.ParseVersionStatus(q.Status)
		if !ok {
			return nil, fmt.Errorf("status filter %q: %w", q.Status, ErrValidation)
		}

		tx = tx.Where("status = ?", st)
	}

	if q.Channel != "" {
		ch, err := model.ParseReleaseChannel(q.Channel)
		if err != nil {
			return nil, fmt.Errorf("channel filter %q: %w", q.Channel, ErrValidation)
		}

		tx = tx.Where("channel = ?", ch)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count versions: %w", err)
	}

	var rows []model.ProductVersion

	err := tx.Order("uploaded_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}

	items := make([]types.VersionSummary, 0, len(rows))
	for i := range rows {
		items = append(items, toVersionSummary(&rows[i]))
	}

	paged := types.NewPaged(items, total, page, size)

	return &paged, nil
}

// TransitionStatus 沿审核流水线迁移版本状态.表外迁移（含迁移到自身）
// 返回 InvalidTransitionError；每次进入 approved 都会重新盖 ApprovedAt.
func (s *VersionService) TransitionStatus(ctx context.Context, productID, versionID, to string) error {
	target, ok := model.ParseVersionStatus(to)
	if !ok {
		return fmt.Errorf("status %q: %w", to, ErrValidation)
	}

	var (
		v    model.ProductVersion
		from model.VersionStatus
	)

	err := s.dbc.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&v, "id = ? AND product_id = ?", versionID, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("version %s: %w", versionID, ErrNotFound)
			}

			return fmt.Errorf("load version: %w", err)
		}

		from = v.Status

		if !model.CanTransition(from, target) {
			return &InvalidTransitionError{From: from, To: target}
		}

		v.Status = target

		// 只有 yank 操作盖 YankedAt，通用迁移不盖
		if target == model.VersionStatusApproved {
			now := time.Now().UTC()
			v.ApprovedAt = &now
		}

		if err := tx.Save(&v).Error; err != nil {
			return fmt.Errorf("update version status: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	publish(ctx, s.mqc, queue.TopicVersionStatusChanged, queue.VersionStatusChangedPayload{
		ProductID:     v.ProductID,
		VersionID:     v.ID,
		VersionString: v.VersionString,
		From:          string(from),
		To:            string(target),
	})

	return nil
}

// Yank 撤回版本：语义上等价于请求迁移到 yanked，但对已撤回版本
// 返回 AlreadyYanked 而非一般的非法迁移，便于调用方区分.
func (s *VersionService) Yank(ctx context.Context, productID, versionID string) error {
	var (
		v    model.ProductVersion
		from model.VersionStatus
	)

	err := s.dbc.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&v, "id = ? AND product_id = ?", versionID, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("version %s: %w", versionID, ErrNotFound)
			}

			return fmt.Errorf("load version: %w", err)
		}

		from = v.Status

		if from == model.VersionStatusYanked {
			return fmt.Errorf("version %s: %w", versionID, ErrAlreadyYanked)
		}

		if !model.CanTransition(from, model.VersionStatusYanked) {
			return &InvalidTransitionError{From: from, To: model.VersionStatusYanked}
		}

		now := time.Now().UTC()
		v.Status = model.VersionStatusYanked
		v.YankedAt = &now

		if err := tx.Save(&v).Error; err != nil {
			return fmt.Errorf("yank version: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	publish(ctx, s.mqc, queue.TopicVersionYanked, queue.VersionStatusChangedPayload{
		ProductID:     v.ProductID,
		VersionID:     v.ID,
		VersionString: v.VersionString,
		From:          string(from),
		To:            string(model.VersionStatusYanked),
	})

	return nil
}

// -------------------------- 映射 --------------------------

func (s *VersionService) toDetail(ctx context.Context, v *model.ProductVersion) (*types.VersionDetail, error) {
	var binaries []model.PlatformBinary

	err := s.dbc.GetDB().WithContext(ctx).
		Where("version_id = ?", v.ID).
		Order("platform ASC, arch ASC").
		Find(&binaries).Error
	if err != nil {
		return nil, fmt.Errorf("load platform binaries: %w", err)
	}

	infos := make([]types.PlatformBinaryInfo, 0, len(binaries))
	for _, b := range binaries {
		infos = append(infos, types.PlatformBinaryInfo{
			ID:         b.ID,
			Platform:   b.Platform,
			Arch:       b.Arch,
			SizeBytes:  b.SizeBytes,
			ManifestID: b.ManifestID,
		})
	}

	return &types.VersionDetail{
		ID:                     v.ID,
		ProductID:              v.ProductID,
		VersionString:          v.VersionString,
		Channel:                v.Channel,
		Changelog:              v.Changelog,
		ReleaseNotes:           v.ReleaseNotes,
		Source:                 v.Source,
		CIJobID:                v.CIJobID,
		Status:                 v.Status,
		IsForcedUpdate:         v.IsForcedUpdate,
		RolloutPercentage:      v.RolloutPercentage,
		MinimumLauncherVersion: v.MinimumLauncherVersion,
		UploadedAt:             v.UploadedAt,
		ApprovedAt:             v.ApprovedAt,
		YankedAt:               v.YankedAt,
		PlatformBinaries:       infos,
	}, nil
}

func toVersionSummary(v *model.ProductVersion) types.VersionSummary {
	return types.VersionSummary{
		ID:                v.ID,
		ProductID:         v.ProductID,
		VersionString:     v.VersionString,
		Channel:           v.Channel,
		Source:            v.Source,
		Status:            v.Status,
		RolloutPercentage: v.RolloutPercentage,
		UploadedAt:        v.UploadedAt,
		ApprovedAt:        v.ApprovedAt,
		YankedAt:          v.YankedAt,
	}
}
