package model

import "fmt"

type (
	// ProductStatus 产品生命周期状态.
	ProductStatus string
	// ProductVisibility 产品可见性.
	ProductVisibility string
	// TrustBadge 平台颁发的信任标识.
	TrustBadge string
	// Platform 目标操作系统.
	Platform string
	// Architecture 目标 CPU 架构.
	Architecture string
	// ReleaseChannel 发布渠道.
	ReleaseChannel string
	// VersionSource 版本提交来源.
	VersionSource string
	// ChunkPriority 分块下载优先级，决定客户端的抓取顺序（不影响字节布局）.
	ChunkPriority string
	// AssetType 产品素材类型.
	AssetType string
)

const (
	ProductStatusDraft     ProductStatus = "draft"     // 草稿，尚未提交审核
	ProductStatusInReview  ProductStatus = "in_review" // 审核中
	ProductStatusListed    ProductStatus = "listed"    // 已上架
	ProductStatusSuspended ProductStatus = "suspended" // 管理员暂停
	ProductStatusDelisted  ProductStatus = "delisted"  // 已下架（软删除）
)

const (
	VisibilityPublic     ProductVisibility = "public"      // 市场公开可见
	VisibilityUnlisted   ProductVisibility = "unlisted"    // 仅直链访问
	VisibilityInviteOnly ProductVisibility = "invite_only" // 仅受邀用户
)

const (
	TrustBadgeNone     TrustBadge = "none"
	TrustBadgeVerified TrustBadge = "verified"
	TrustBadgeFeatured TrustBadge = "featured"
)

const (
	PlatformWindows Platform = "windows"
	PlatformMacOS   Platform = "macos"
	PlatformLinux   Platform = "linux"
)

const (
	ArchX64       Architecture = "x64"
	ArchArm64     Architecture = "arm64"
	ArchUniversal Architecture = "universal" // macOS fat binary
)

const (
	ChannelStable  ReleaseChannel = "stable"
	ChannelBeta    ReleaseChannel = "beta"
	ChannelNightly ReleaseChannel = "nightly"
)

const (
	SourceCIPipeline   VersionSource = "ci_pipeline"
	SourceManualUpload VersionSource = "manual_upload"
)

const (
	PriorityCritical ChunkPriority = "critical" // 入口/头部，必须最先下载
	PriorityHigh     ChunkPriority = "high"     // 核心依赖
	PriorityNormal   ChunkPriority = "normal"
	PriorityLazy     ChunkPriority = "lazy" // 按需加载
)

const (
	AssetTypeIcon             AssetType = "icon"
	AssetTypeBanner           AssetType = "banner"
	AssetTypeScreenshot       AssetType = "screenshot"
	AssetTypeTrailerThumbnail AssetType = "trailer_thumbnail"
)

// ParsePlatform 解析平台标识（URL 路径参数）.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(s) {
	case PlatformWindows, PlatformMacOS, PlatformLinux:
		return Platform(s), nil
	}

	return "", fmt.Errorf("unknown platform %q", s)
}

// ParseArchitecture 解析架构标识（URL 路径参数）.
func ParseArchitecture(s string) (Architecture, error) {
	switch Architecture(s) {
	case ArchX64, ArchArm64, ArchUniversal:
		return Architecture(s), nil
	}

	return "", fmt.Errorf("unknown architecture %q", s)
}

// ParseAssetType 解析素材类型.
func ParseAssetType(s string) (AssetType, error) {
	switch AssetType(s) {
	case AssetTypeIcon, AssetTypeBanner, AssetTypeScreenshot, AssetTypeTrailerThumbnail:
		return AssetType(s), nil
	}

	return "", fmt.Errorf("unknown asset type %q", s)
}

// ParseProductStatus 解析产品状态（列表过滤参数）.
func ParseProductStatus(s string) (ProductStatus, error) {
	switch ProductStatus(s) {
	case ProductStatusDraft, ProductStatusInReview, ProductStatusListed,
		ProductStatusSuspended, ProductStatusDelisted:
		return ProductStatus(s), nil
	}

	return "", fmt.Errorf("unknown product status %q", s)
}

// ParseReleaseChannel 解析发布渠道.
func ParseReleaseChannel(s string) (ReleaseChannel, error) {
	switch ReleaseChannel(s) {
	case ChannelStable, ChannelBeta, ChannelNightly:
		return ReleaseChannel(s), nil
	}

	return "", fmt.Errorf("unknown release channel %q", s)
}
