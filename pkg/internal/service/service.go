// Package service 实现注册中心的核心业务：产品目录、版本审核流水线、
// 清单装配、素材上传与分类树.每个逻辑操作对应一个数据库事务，
// 对象存储与消息队列作为协作方注入.
package service

import (
	"context"
	crand "crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid"

	"github.com/allservices/registry/pkg/configs"
	"github.com/allservices/registry/pkg/internal/model"
	"github.com/allservices/registry/pkg/internal/storage/mq"
	nlog "github.com/allservices/registry/pkg/log"
	"github.com/allservices/registry/pkg/queue"
)

// 全局单例的 ULID 熵源，使用单调递增策略，同一毫秒内生成的 ID 保持有序。
var ulidEntropy = ulid.Monotonic(crand.Reader, 0)

// newAssetID 生成时间有序的素材 ID.
func newAssetID(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), ulidEntropy).String()
}

// assetObjectKey 素材在对象存储中的确定性路径，公开 URL 由它派生.
func assetObjectKey(productID string, typ model.AssetType, assetID string) string {
	return fmt.Sprintf("products/%s/%s/%s", productID, typ, assetID)
}

const (
	defaultPageSize = 20
	maxPageSize     = 100

	eventProducer = "registry"
)

// normalizePage 归一化分页参数，页码从 1 开始.
func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}

	if size < 1 {
		size = defaultPageSize
	}

	if size > maxPageSize {
		size = maxPageSize
	}

	return page, size
}

// publish 尽力而为地发布领域事件，MQ 不可用或发布失败不影响主流程.
// 事件开关由 events 配置控制，默认按主题的推荐集发布.
func publish[T any](ctx context.Context, mqc *mq.Client, topic string, payload T) {
	if mqc == nil || !topicEnabled(topic) {
		return
	}

	msg, err := queue.NewWatermillMessage(topic, payload, queue.WithProducer(eventProducer))
	if err == nil {
		err = mqc.Publish(ctx, topic, msg)
	}

	if err != nil {
		nlog.Logger().Warn().Err(err).Str("topic", topic).Msg("publish event failed")
	}
}

// topicEnabled 按配置判定某个主题是否发布.未列出的主题默认放行.
func topicEnabled(topic string) bool {
	ev := configs.GetConfig().Events
	if !ev.Enabled {
		return false
	}

	switch topic {
	case queue.TopicProductCreated:
		return ev.Product.Created
	case queue.TopicProductUpdated:
		return ev.Product.Updated
	case queue.TopicProductDelisted:
		return ev.Product.Delisted
	case queue.TopicProductSuspended:
		return ev.Product.Suspended
	case queue.TopicProductRestored:
		return ev.Product.Restored
	case queue.TopicVersionCreated:
		return ev.Version.Created
	case queue.TopicVersionStatusChanged:
		return ev.Version.StatusChanged
	case queue.TopicVersionYanked:
		return ev.Version.Yanked
	case queue.TopicAssetUploadInitiated:
		return ev.Asset.UploadInitiated
	case queue.TopicAssetDeleted:
		return ev.Asset.Deleted
	case queue.TopicManifestServed:
		return ev.Manifest.Served
	default:
		return true
	}
}
