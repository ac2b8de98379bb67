package configs

import (
	"fmt"

	"github.com/spf13/viper"
)

// S3Config MinIO S3存储配置.
// 注册中心使用两个 bucket：assets 存放公开素材（经 CDN 访问），
// binaries 存放加密分块（仅通过短时效签名 URL 分发）.
type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	AssetsBucket    string `mapstructure:"assets_bucket"`
	BinariesBucket  string `mapstructure:"binaries_bucket"`
	Region          string `mapstructure:"region"`
	// CDN 基地址，用于派生素材的公开访问 URL
	CDNBaseURL string `mapstructure:"cdn_base_url"`
}

const (
	DefaultS3Endpoint        = "localhost:9000"           // 默认S3端点
	DefaultS3AccessKeyID     = "minioadmin"               // 默认访问密钥ID
	DefaultS3SecretAccessKey = "minioadmin"               // 默认秘密访问密钥
	DefaultS3UseSSL          = false                      // 默认是否使用SSL
	DefaultS3AssetsBucket    = "registry-assets"          // 默认素材桶
	DefaultS3BinariesBucket  = "registry-binaries"        // 默认二进制分块桶
	DefaultS3Region          = "us-east-1"                // 默认区域
	DefaultS3CDNBaseURL      = "https://cdn.allsvc.local" // 默认CDN基地址
)

// GetEndpointURL 获取完整的端点URL.
func (c *S3Config) GetEndpointURL() string {
	scheme := "http"
	if c.UseSSL {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s", scheme, c.Endpoint)
}

// Buckets 返回全部需要确保存在的 bucket.
func (c *S3Config) Buckets() []string {
	return []string{c.AssetsBucket, c.BinariesBucket}
}

// setDefaults 设置 S3 配置的默认值.
func (c *S3Config) setDefaults(v *viper.Viper) {
	v.SetDefault("s3.endpoint", DefaultS3Endpoint)
	v.SetDefault("s3.access_key_id", DefaultS3AccessKeyID)
	v.SetDefault("s3.secret_access_key", DefaultS3SecretAccessKey)
	v.SetDefault("s3.use_ssl", DefaultS3UseSSL)
	v.SetDefault("s3.assets_bucket", DefaultS3AssetsBucket)
	v.SetDefault("s3.binaries_bucket", DefaultS3BinariesBucket)
	v.SetDefault("s3.region", DefaultS3Region)
	v.SetDefault("s3.cdn_base_url", DefaultS3CDNBaseURL)
}
