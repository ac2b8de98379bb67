// Package storage 聚合持久化与对象存储等外部协作方的客户端.
//
// Example:
//
// 初始化
//
//	 ctx := context.Background()
//	 mgr, err := storage.Init(ctx)
//
//		if err != nil {
//		    // 处理错误
//		}
//
// 获取存储客户端
//
//	s3Client := mgr.GetS3Client()
//	dbClient := mgr.GetDBClient()
package storage

import (
	"context"
	"sync"
	"time"

	dbc "github.com/allservices/registry/pkg/internal/storage/db"
	kvc "github.com/allservices/registry/pkg/internal/storage/kv"
	mqc "github.com/allservices/registry/pkg/internal/storage/mq"
	s3c "github.com/allservices/registry/pkg/internal/storage/s3"
	nlog "github.com/allservices/registry/pkg/log"
)

// ObjectStorage 对象存储协作方：预签名上传/下载 URL 签发与公开 URL 解析.
// service 层只依赖该接口，便于替换实现与测试.
type ObjectStorage interface {
	// MintUploadURL 签发预签名 PUT 上传 URL.
	MintUploadURL(ctx context.Context, bucket, key, contentType string, ttl time.Duration) (string, error)
	// MintDownloadURL 签发短时效的预签名 GET 下载 URL.
	MintDownloadURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
	// PublicURL 解析确定性的、不过期的公开 URL.
	PublicURL(bucket, key string) string
}

var _ ObjectStorage = (*s3c.Client)(nil)

// Manager 聚合所有存储资源.
type Manager struct {
	S3 *s3c.Client
	DB *dbc.Client
	KV *kvc.Client
	MQ *mqc.Client
}

var (
	mgr     *Manager
	mgrOnce sync.Once
)

// Init 初始化默认存储，使用全局配置.重复调用只返回已初始化实例.
func Init(ctx context.Context) (*Manager, error) {
	var err error

	mgrOnce.Do(func() {
		m := &Manager{}

		// DB
		dbi, e := dbc.New(ctx)
		if e != nil {
			err = e
			return
		}

		m.DB = dbi

		// S3
		s3i, e := s3c.New(ctx)
		if e != nil {
			err = e
			return
		}

		m.S3 = s3i

		// KV（缓存，可选）
		if kvi, e := kvc.NewKVClient(ctx); e != nil {
			nlog.Logger().Warn().Err(e).Msg("kv store unavailable, cache disabled")
		} else {
			m.KV = kvi
		}

		// MQ（事件总线，可选）
		if mqi, e := mqc.New(ctx); e != nil {
			nlog.Logger().Warn().Err(e).Msg("mq unavailable, events disabled")
		} else {
			m.MQ = mqi
		}

		mgr = m

		nlog.Logger().Info().Msg("storage manager initialized")
	})

	return mgr, err
}

// GetS3Client 获取 S3 客户端.
func (m *Manager) GetS3Client() *s3c.Client {
	return m.S3
}

// GetDBClient 获取 DB 客户端.
func (m *Manager) GetDBClient() *dbc.Client {
	return m.DB
}

// GetKVClient 获取 KV 客户端.
func (m *Manager) GetKVClient() *kvc.Client {
	return m.KV
}

// GetMQClient 获取 MQ 客户端.
func (m *Manager) GetMQClient() *mqc.Client {
	return m.MQ
}
