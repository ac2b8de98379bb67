package configs

import "github.com/spf13/viper"

// EventsConfig 控制事件发布的开关（全局与分领域）。
type EventsConfig struct {
	Enabled  bool                 `mapstructure:"enabled"` // 总开关
	Product  ProductEventsConfig  `mapstructure:"product"`
	Version  VersionEventsConfig  `mapstructure:"version"`
	Asset    AssetEventsConfig    `mapstructure:"asset"`
	Manifest ManifestEventsConfig `mapstructure:"manifest"`
}

// ProductEventsConfig 针对产品目录领域的事件开关。
type ProductEventsConfig struct {
	Created   bool `mapstructure:"created"`
	Updated   bool `mapstructure:"updated"`
	Delisted  bool `mapstructure:"delisted"`
	Suspended bool `mapstructure:"suspended"`
	Restored  bool `mapstructure:"restored"`
}

// VersionEventsConfig 针对版本流水线领域的事件开关。
type VersionEventsConfig struct {
	Created       bool `mapstructure:"created"`
	StatusChanged bool `mapstructure:"status_changed"`
	Yanked        bool `mapstructure:"yanked"`
}

// AssetEventsConfig 针对素材领域的事件开关。
type AssetEventsConfig struct {
	UploadInitiated bool `mapstructure:"upload_initiated"`
	Deleted         bool `mapstructure:"deleted"`
}

// ManifestEventsConfig 针对清单分发领域的事件开关。
type ManifestEventsConfig struct {
	Served bool `mapstructure:"served"`
}

func (c *EventsConfig) setDefaults(v *viper.Viper) {
	// 总开关：默认启用事件系统
	v.SetDefault("events.enabled", true)

	// 目录与流水线的状态事件是下游（扫描、审核、通知）依赖的最小集，默认开启
	v.SetDefault("events.product.created", true)
	v.SetDefault("events.product.delisted", true)
	v.SetDefault("events.product.suspended", true)
	v.SetDefault("events.product.restored", true)
	v.SetDefault("events.version.created", true)
	v.SetDefault("events.version.status_changed", true)
	v.SetDefault("events.version.yanked", true)
	v.SetDefault("events.asset.upload_initiated", true)
	v.SetDefault("events.asset.deleted", true)

	// 可选事件：默认关闭，按需开启
	v.SetDefault("events.product.updated", false)
	v.SetDefault("events.manifest.served", false) // 每次拉取清单都会产生，量可能很大
}
