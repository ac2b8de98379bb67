// Package s3 处理S3存储操作，实现对象存储协作方的三个能力：
// 签发上传 URL、签发下载 URL、解析公开 URL.
package s3

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/allservices/registry/pkg/configs"
	nlog "github.com/allservices/registry/pkg/log"
)

// Client 包装 MinIO 客户端.
type Client struct {
	*minio.Client

	cdnBaseURL string
}

// New 初始化 MinIO 客户端，若 bucket 不存在则尝试创建.
func New(ctx context.Context) (*Client, error) {
	cfg := configs.GetConfig().S3
	endpoint := cfg.Endpoint
	// 允许用户传完整 schema endpoint（http:// 或 https://）
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		if u.Scheme == "https" {
			cfg.UseSSL = true
		}
	}

	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	cli.SetAppInfo("registry", configs.AppVersion)

	// ensure all buckets
	for _, bkt := range cfg.Buckets() {
		if bkt == "" {
			continue
		}

		exists, err := cli.BucketExists(ctx, bkt)
		if err != nil {
			return nil, fmt.Errorf("check bucket %s: %w", bkt, err)
		}

		if !exists {
			if err := cli.MakeBucket(ctx, bkt, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
				return nil, fmt.Errorf("create bucket %s: %w", bkt, err)
			}

			nlog.Logger().Info().Str("bucket", bkt).Msg("bucket created")
		}
	}

	nlog.Logger().Info().Str("endpoint", cfg.Endpoint).Msg("s3 connected")

	return &Client{
		Client:     cli,
		cdnBaseURL: strings.TrimRight(cfg.CDNBaseURL, "/"),
	}, nil
}

// MintUploadURL 签发预签名 PUT 上传 URL，Content-Type 参与签名，
// 客户端必须以同样的类型上传.
func (c *Client) MintUploadURL(ctx context.Context, bucket, key, contentType string, ttl time.Duration) (string, error) {
	headers := http.Header{}
	if contentType != "" {
		headers.Set("Content-Type", contentType)
	}

	u, err := c.PresignHeader(ctx, http.MethodPut, bucket, key, ttl, nil, headers)
	if err != nil {
		return "", fmt.Errorf("presign put for %s/%s: %w", bucket, key, err)
	}

	return u.String(), nil
}

// MintDownloadURL 签发短时效的预签名 GET 下载 URL. URL 绝不持久化，按请求即时签发.
func (c *Client) MintDownloadURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	u, err := c.PresignedGetObject(ctx, bucket, key, ttl, nil)
	if err != nil {
		return "", fmt.Errorf("presign get for %s/%s: %w", bucket, key, err)
	}

	return u.String(), nil
}

// PublicURL 解析对象的确定性公开 URL（经 CDN），用于已公开的素材.
func (c *Client) PublicURL(bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", c.cdnBaseURL, bucket, key)
}

// HealthCheck 简单的健康检查，通过列出桶来验证连接.
func (c *Client) HealthCheck(ctx context.Context) error {
	_, err := c.ListBuckets(ctx)
	return err
}

// Close 关闭 S3 客户端连接（无实际操作，接口兼容）.
func (c *Client) Close() error {
	return nil
}

// GetConfig 返回当前 S3 配置.
func (c *Client) GetConfig() configs.S3Config {
	return configs.GetConfig().S3
}
