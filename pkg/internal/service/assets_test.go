package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/allservices/registry/pkg/internal/model"
	"github.com/allservices/registry/pkg/internal/types"
)

func newAssetService(t *testing.T) (*AssetService, *fakeStore) {
	t.Helper()

	store := &fakeStore{}

	return &AssetService{
		dbc:          newTestDB(t),
		store:        store,
		assetsBucket: "registry-assets",
	}, store
}

func TestInitiateUpload(t *testing.T) {
	svc, store := newAssetService(t)
	ctx := context.Background()

	p := seedProduct(t, svc.dbc, "upload-target")

	up, err := svc.InitiateUpload(ctx, "dev-1", &types.InitiateAssetUploadRequest{
		ProductID:   p.ID,
		Type:        "icon",
		ContentType: "image/png",
	})
	if err != nil {
		t.Fatalf("InitiateUpload: %v", err)
	}

	if len(up.AssetID) != 26 {
		t.Errorf("asset id %q is not a ULID", up.AssetID)
	}

	if up.ExpiresIn != 900 {
		t.Errorf("ExpiresIn = %d, want 900", up.ExpiresIn)
	}

	wantPath := "products/" + p.ID + "/icon/" + up.AssetID
	if !strings.Contains(up.UploadURL, wantPath) {
		t.Errorf("upload url %q should embed %q", up.UploadURL, wantPath)
	}

	if !strings.Contains(up.UploadURL, "ct=image/png") {
		t.Errorf("upload url %q should carry content type", up.UploadURL)
	}

	if store.uploads != 1 {
		t.Errorf("minted %d upload urls, want 1", store.uploads)
	}

	// 记录在返回前已落库
	var a model.Asset
	if err := svc.dbc.GetDB().First(&a, "id = ?", up.AssetID).Error; err != nil {
		t.Fatalf("asset record not persisted: %v", err)
	}

	if a.StoragePath != wantPath {
		t.Errorf("storage path = %q, want %q", a.StoragePath, wantPath)
	}

	if a.UploadedBy != "dev-1" {
		t.Errorf("uploaded by = %q", a.UploadedBy)
	}
}

func TestInitiateUploadValidation(t *testing.T) {
	svc, _ := newAssetService(t)
	ctx := context.Background()

	p := seedProduct(t, svc.dbc, "upload-validation")

	_, err := svc.InitiateUpload(ctx, "dev-1", &types.InitiateAssetUploadRequest{
		ProductID:   p.ID,
		Type:        "hologram",
		ContentType: "image/png",
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("unknown type: expected ErrValidation, got %v", err)
	}

	_, err = svc.InitiateUpload(ctx, "dev-1", &types.InitiateAssetUploadRequest{
		ProductID:   "missing",
		Type:        "icon",
		ContentType: "image/png",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown product: expected ErrNotFound, got %v", err)
	}
}

func TestListAssetsTypeFilter(t *testing.T) {
	svc, _ := newAssetService(t)
	ctx := context.Background()

	p := seedProduct(t, svc.dbc, "asset-list")

	for _, typ := range []string{"icon", "screenshot", "screenshot"} {
		if _, err := svc.InitiateUpload(ctx, "dev-1", &types.InitiateAssetUploadRequest{
			ProductID:   p.ID,
			Type:        typ,
			ContentType: "image/png",
		}); err != nil {
			t.Fatalf("seed asset: %v", err)
		}
	}

	all, err := svc.ListAssets(ctx, p.ID, "")
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}

	if len(all) != 3 {
		t.Errorf("all assets = %d, want 3", len(all))
	}

	shots, err := svc.ListAssets(ctx, p.ID, "screenshot")
	if err != nil {
		t.Fatalf("ListAssets filtered: %v", err)
	}

	if len(shots) != 2 {
		t.Errorf("screenshots = %d, want 2", len(shots))
	}

	for _, a := range shots {
		if a.URL == "" {
			t.Error("asset url should resolve on read")
		}
	}

	_, err = svc.ListAssets(ctx, p.ID, "hologram")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("bad filter: expected ErrValidation, got %v", err)
	}
}

func TestDeleteAsset(t *testing.T) {
	svc, _ := newAssetService(t)
	ctx := context.Background()

	p := seedProduct(t, svc.dbc, "asset-delete")

	up, err := svc.InitiateUpload(ctx, "dev-1", &types.InitiateAssetUploadRequest{
		ProductID:   p.ID,
		Type:        "banner",
		ContentType: "image/jpeg",
	})
	if err != nil {
		t.Fatalf("seed asset: %v", err)
	}

	if err := svc.DeleteAsset(ctx, up.AssetID); err != nil {
		t.Fatalf("DeleteAsset: %v", err)
	}

	var n int64

	svc.dbc.GetDB().Model(&model.Asset{}).Where("id = ?", up.AssetID).Count(&n)

	if n != 0 {
		t.Error("asset record should be removed")
	}

	err = svc.DeleteAsset(ctx, up.AssetID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}
