package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/allservices/registry/pkg/internal/model"
	"github.com/allservices/registry/pkg/internal/storage/db"
)

// newTestDB 创建内存 SQLite 并迁移全部模型.
func newTestDB(t *testing.T) *db.Client {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// 内存库每条连接都是独立数据库，限制连接数避免表丢失
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}

	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return &db.Client{DB: gdb}
}

// fakeStore 对象存储桩：签发可断言的假 URL，记录签发次数.
type fakeStore struct {
	uploads   int
	downloads int
}

func (f *fakeStore) MintUploadURL(ctx context.Context, bucket, key, contentType string, ttl time.Duration) (string, error) {
	f.uploads++
	return fmt.Sprintf("https://test/upload/%s/%s?ct=%s", bucket, key, contentType), nil
}

func (f *fakeStore) MintDownloadURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	f.downloads++
	return fmt.Sprintf("https://test/download/%s/%s", bucket, key), nil
}

func (f *fakeStore) PublicURL(bucket, key string) string {
	return fmt.Sprintf("https://test/public/%s/%s", bucket, key)
}

// seedProduct 插入一个最小可用的产品行.
func seedProduct(t *testing.T, dbc *db.Client, slug string) *model.Product {
	t.Helper()

	p := &model.Product{
		ID:          uuid.NewString(),
		DeveloperID: "dev-1",
		Name:        "Test Product",
		Slug:        slug,
		Status:      model.ProductStatusDraft,
		Visibility:  model.VisibilityPublic,
		TrustBadge:  model.TrustBadgeNone,
	}

	if err := dbc.GetDB().Create(p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	return p
}

// seedVersion 插入一个指定状态的版本行.
func seedVersion(t *testing.T, dbc *db.Client, productID string, versionString string, status model.VersionStatus) *model.ProductVersion {
	t.Helper()

	v := &model.ProductVersion{
		ID:                uuid.NewString(),
		ProductID:         productID,
		VersionString:     versionString,
		Channel:           model.ChannelStable,
		Source:            model.SourceManualUpload,
		Status:            status,
		RolloutPercentage: 100,
		UploadedAt:        time.Now().UTC(),
	}

	if err := dbc.GetDB().Create(v).Error; err != nil {
		t.Fatalf("seed version: %v", err)
	}

	return v
}

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		page, size         int
		wantPage, wantSize int
	}{
		{0, 0, 1, defaultPageSize},
		{-3, -1, 1, defaultPageSize},
		{2, 50, 2, 50},
		{1, 1000, 1, maxPageSize},
	}

	for _, c := range cases {
		gotPage, gotSize := normalizePage(c.page, c.size)
		if gotPage != c.wantPage || gotSize != c.wantSize {
			t.Errorf("normalizePage(%d, %d) = (%d, %d), want (%d, %d)",
				c.page, c.size, gotPage, gotSize, c.wantPage, c.wantSize)
		}
	}
}

func TestAssetObjectKey(t *testing.T) {
	key := assetObjectKey("prod-1", model.AssetTypeIcon, "01ARZ3NDEKTSV4RRFFQ69G5FAV")
	want := "products/prod-1/icon/01ARZ3NDEKTSV4RRFFQ69G5FAV"

	if key != want {
		t.Errorf("assetObjectKey = %q, want %q", key, want)
	}
}

func TestNewAssetIDOrdered(t *testing.T) {
	t1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Second)

	id1 := newAssetID(t1)
	id2 := newAssetID(t2)

	if len(id1) != 26 {
		t.Errorf("asset id length = %d, want 26", len(id1))
	}

	if id1 >= id2 {
		t.Errorf("expected %q < %q for increasing timestamps", id1, id2)
	}
}
