// Package jobs 负责注册与实现业务定时任务（基于 scheduler）。
package jobs

import (
	"context"
	"fmt"
	"time"

	minio "github.com/minio/minio-go/v7"

	"github.com/allservices/registry/pkg/configs"
	ctxPkg "github.com/allservices/registry/pkg/context"
	"github.com/allservices/registry/pkg/internal/model"
	"github.com/allservices/registry/pkg/internal/storage"
	"github.com/allservices/registry/pkg/log"
	"github.com/allservices/registry/pkg/scheduler"
)

// 素材签发后留给客户端完成上传的宽限期，超过后对象仍不存在即视为孤儿.
const assetOrphanGrace = 24 * time.Hour

// 版本在上传/处理阶段停留超过该时长视为卡死，只告警不自动迁移.
const versionStaleAfter = 14 * 24 * time.Hour

// RegisterCronJobs 配置业务定时任务：
//   - 每小时 15 分清理孤儿素材（签发后始终未完成上传的记录）
//   - 每天 03:00 巡检长期停留在 uploading/processing 的版本并告警
func RegisterCronJobs(sched *scheduler.Scheduler, mgr *storage.Manager) error {
	if sched == nil {
		return fmt.Errorf("scheduler is nil")
	}

	if mgr == nil {
		return fmt.Errorf("storage manager is nil")
	}

	// 将 storage manager 注入到 context，便于任务内访问客户端
	baseCtx := ctxPkg.WithStorageManager(context.Background(), mgr)

	_ = sched.AddCron(JobAssetOrphanClean, CronAssetOrphanClean, func(ctx context.Context) {
		runAssetOrphanClean(ctx, mgr)
	}, baseCtx)

	_ = sched.AddCron(JobVersionStaleReport, CronVersionStaleReport, func(ctx context.Context) {
		runVersionStaleReport(ctx, mgr)
	}, baseCtx)

	return nil
}

// runAssetOrphanClean 删除签发超过宽限期、对象存储中始终不存在对应对象的素材记录。
// 记录先落库、客户端再上传，客户端放弃时会留下孤儿记录。
func runAssetOrphanClean(ctx context.Context, mgr *storage.Manager) {
	l := log.Logger().With().Str("job", JobAssetOrphanClean).Logger()

	dbc := mgr.GetDBClient()
	s3c := mgr.GetS3Client()

	if dbc == nil || dbc.GetDB() == nil || s3c == nil {
		l.Warn().Msg("storage not initialized, skipping")
		return
	}

	bucket := configs.GetConfig().S3.AssetsBucket
	cutoff := time.Now().UTC().Add(-assetOrphanGrace)

	var candidates []model.Asset

	err := dbc.GetDB().WithContext(ctx).
		Where("uploaded_at < ?", cutoff).
		Where("size_bytes = 0").
		Limit(500).
		Find(&candidates).Error
	if err != nil {
		l.Error().Err(err).Msg("list candidate assets failed")
		return
	}

	removed := 0

	for _, a := range candidates {
		_, err := s3c.StatObject(ctx, bucket, a.StoragePath, minio.StatObjectOptions{})
		if err == nil {
			// 对象已存在，说明上传完成但尺寸信息尚未回填，留给后续流程
			continue
		}

		if minio.ToErrorResponse(err).Code != "NoSuchKey" {
			l.Warn().Err(err).Str("asset_id", a.ID).Msg("stat object failed")
			continue
		}

		if err := dbc.GetDB().WithContext(ctx).Delete(&model.Asset{}, "id = ?", a.ID).Error; err != nil {
			l.Error().Err(err).Str("asset_id", a.ID).Msg("delete orphan asset failed")
			continue
		}

		removed++
	}

	if removed > 0 {
		l.Info().Int("removed", removed).Time("cutoff", cutoff).Msg("orphan assets cleaned")
	}
}

// runVersionStaleReport 巡检长期停留在上传/处理阶段的版本。
// 流水线迁移表是封闭的，不做自动迁移，只产出告警供人工跟进。
func runVersionStaleReport(ctx context.Context, mgr *storage.Manager) {
	l := log.Logger().With().Str("job", JobVersionStaleReport).Logger()

	dbc := mgr.GetDBClient()
	if dbc == nil || dbc.GetDB() == nil {
		l.Warn().Msg("db not initialized, skipping")
		return
	}

	cutoff := time.Now().UTC().Add(-versionStaleAfter)

	var stale []model.ProductVersion

	err := dbc.GetDB().WithContext(ctx).
		Where("status IN ?", []model.VersionStatus{
			model.VersionStatusUploading,
			model.VersionStatusProcessing,
		}).
		Where("uploaded_at < ?", cutoff).
		Find(&stale).Error
	if err != nil {
		l.Error().Err(err).Msg("list stale versions failed")
		return
	}

	for _, v := range stale {
		l.Warn().
			Str("version_id", v.ID).
			Str("product_id", v.ProductID).
			Str("version", v.VersionString).
			Str("status", string(v.Status)).
			Time("uploaded_at", v.UploadedAt).
			Msg("version stuck in pipeline")
	}
}
