// Package queue 定义消息主题常量与通配模式，供发布/订阅使用.
package queue

// 主题命名规范：reg.<域>.<动作>[.<状态>]，尽量稳定且向后兼容.
// 域：product(产品目录)、version(版本审核流水线)、asset(素材)、manifest(分发清单)
// 动作：created/updated/delisted/status.changed/yanked/served 等

const (
	// 产品领域.
	TopicProductCreated   = "reg.product.created"   // 产品已创建（draft 状态）
	TopicProductUpdated   = "reg.product.updated"   // 产品字段更新（局部补丁）
	TopicProductDelisted  = "reg.product.delisted"  // 产品软删除下架
	TopicProductSuspended = "reg.product.suspended" // 管理员暂停
	TopicProductRestored  = "reg.product.restored"  // 暂停解除，恢复上架

	// 版本领域.
	TopicVersionCreated       = "reg.version.created"        // 新版本进入 uploading
	TopicVersionStatusChanged = "reg.version.status.changed" // 审核流水线状态迁移
	TopicVersionYanked        = "reg.version.yanked"         // 已批准版本被撤回

	// 素材领域.
	TopicAssetUploadInitiated = "reg.asset.upload.initiated" // 素材上传 URL 已签发
	TopicAssetDeleted         = "reg.asset.deleted"          // 素材记录删除

	// 分发领域.
	TopicManifestServed = "reg.manifest.served" // 清单已下发（含签名 URL），用于分发统计
)

// 主题分组，用于批量订阅或权限控制.
var (
	// 产品相关主题集合.
	ProductTopics = []string{
		TopicProductCreated, TopicProductUpdated, TopicProductDelisted,
		TopicProductSuspended, TopicProductRestored,
	}

	// 版本相关主题集合.
	VersionTopics = []string{
		TopicVersionCreated, TopicVersionStatusChanged, TopicVersionYanked,
	}

	// 素材相关主题集合.
	AssetTopics = []string{
		TopicAssetUploadInitiated, TopicAssetDeleted,
	}

	// 分发相关主题集合.
	ManifestTopics = []string{
		TopicManifestServed,
	}
)

// AllTopics 返回全部已知主题.
func AllTopics() []string {
	out := make([]string, 0,
		len(ProductTopics)+len(VersionTopics)+len(AssetTopics)+len(ManifestTopics))
	out = append(out, ProductTopics...)
	out = append(out, VersionTopics...)
	out = append(out, AssetTopics...)
	out = append(out, ManifestTopics...)

	return out
}
