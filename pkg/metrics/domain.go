package metrics

// 领域级指标.通过 NewCounter 创建即完成注册.
var (
	// ManifestsServed 已下发的清单总数，按平台/架构维度.
	ManifestsServed = NewCounter(
		"registry_manifests_served_total",
		"Total number of signed manifests served to launchers",
		[]string{"platform", "arch"},
	)

	// VersionTransitions 版本状态迁移总数，按目标状态维度.
	VersionTransitions = NewCounter(
		"registry_version_transitions_total",
		"Total number of version pipeline status transitions",
		[]string{"to"},
	)

	// AssetUploadsInitiated 已签发的素材上传总数，按素材类型维度.
	AssetUploadsInitiated = NewCounter(
		"registry_asset_uploads_initiated_total",
		"Total number of presigned asset uploads issued",
		[]string{"type"},
	)
)
