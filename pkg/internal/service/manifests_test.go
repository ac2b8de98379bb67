package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/allservices/registry/pkg/internal/model"
)

func newManifestService(t *testing.T) (*ManifestService, *fakeStore) {
	t.Helper()

	store := &fakeStore{}

	return &ManifestService{
		dbc:            newTestDB(t),
		store:          store,
		binariesBucket: "registry-binaries",
	}, store
}

// seedManifest 为版本插入 windows/x64 二进制与乱序写入的三个分块.
// 分块大小 1000/2000/500，总大小 3500.
func seedManifest(t *testing.T, svc *ManifestService, versionID string) (*model.PlatformBinary, *model.BinaryManifest) {
	t.Helper()

	m := &model.BinaryManifest{
		ID:             uuid.NewString(),
		TotalSizeBytes: 3500,
		Signature:      "c2lnbmF0dXJl",
		HashAlgorithm:  "sha256",
		ManifestHash:   "abc123",
	}

	pb := &model.PlatformBinary{
		ID:         uuid.NewString(),
		VersionID:  versionID,
		Platform:   model.PlatformWindows,
		Arch:       model.ArchX64,
		ManifestID: m.ID,
		SizeBytes:  3500,
	}
	m.PlatformBinaryID = pb.ID

	if err := svc.dbc.GetDB().Create(m).Error; err != nil {
		t.Fatalf("seed manifest: %v", err)
	}

	if err := svc.dbc.GetDB().Create(pb).Error; err != nil {
		t.Fatalf("seed platform binary: %v", err)
	}

	// 故意乱序插入，读取端必须按 sequence_index 升序返回
	chunks := []model.Chunk{
		{ID: uuid.NewString(), ManifestID: m.ID, SequenceIndex: 2, OffsetInBinary: 3000, SizeBytes: 500, HashSha256: "h2", Priority: model.PriorityLazy, StoragePath: "chunks/2", Encrypted: true},
		{ID: uuid.NewString(), ManifestID: m.ID, SequenceIndex: 0, OffsetInBinary: 0, SizeBytes: 1000, HashSha256: "h0", Priority: model.PriorityCritical, StoragePath: "chunks/0", Encrypted: true},
		{ID: uuid.NewString(), ManifestID: m.ID, SequenceIndex: 1, OffsetInBinary: 1000, SizeBytes: 2000, HashSha256: "h1", Priority: model.PriorityNormal, StoragePath: "chunks/1", Encrypted: true},
	}

	for i := range chunks {
		if err := svc.dbc.GetDB().Create(&chunks[i]).Error; err != nil {
			t.Fatalf("seed chunk: %v", err)
		}
	}

	return pb, m
}

func TestGetManifestOrdersChunks(t *testing.T) {
	svc, store := newManifestService(t)
	ctx := context.Background()

	p := seedProduct(t, svc.dbc, "manifest-order")
	v := seedVersion(t, svc.dbc, p.ID, "1.0.0", model.VersionStatusApproved)
	seedManifest(t, svc, v.ID)

	m, err := svc.GetManifest(ctx, p.ID, v.ID, model.PlatformWindows, model.ArchX64)
	if err != nil {
		t.Fatalf("GetManifest: %v", err)
	}

	if len(m.Chunks) != 3 {
		t.Fatalf("chunks = %d, want 3", len(m.Chunks))
	}

	var sum int64

	for i, c := range m.Chunks {
		if c.SequenceIndex != i {
			t.Errorf("chunk[%d].SequenceIndex = %d", i, c.SequenceIndex)
		}

		// 签名 URL 与分块一一对应（fakeStore 把存储路径编进 URL）
		if !strings.HasSuffix(c.URL, fmt.Sprintf("chunks/%d", i)) {
			t.Errorf("chunk[%d] url = %q", i, c.URL)
		}

		sum += c.SizeBytes
	}

	if sum != m.TotalSizeBytes {
		t.Errorf("chunk sizes sum to %d, manifest total is %d", sum, m.TotalSizeBytes)
	}

	if store.downloads != 3 {
		t.Errorf("signed %d urls, want 3", store.downloads)
	}
}

func TestGetManifestOnlyForApprovedVersions(t *testing.T) {
	svc, _ := newManifestService(t)
	ctx := context.Background()

	p := seedProduct(t, svc.dbc, "manifest-gate")

	for i, st := range []model.VersionStatus{
		model.VersionStatusUploading,
		model.VersionStatusReviewPending,
		model.VersionStatusRejected,
		model.VersionStatusYanked,
	} {
		v := seedVersion(t, svc.dbc, p.ID, "0."+string(rune('1'+i))+".0", st)
		seedManifest(t, svc, v.ID)

		_, err := svc.GetManifest(ctx, p.ID, v.ID, model.PlatformWindows, model.ArchX64)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("status %s: expected ErrNotFound, got %v", st, err)
		}
	}
}

func TestGetManifestUnknownPlatformCombo(t *testing.T) {
	svc, _ := newManifestService(t)
	ctx := context.Background()

	p := seedProduct(t, svc.dbc, "manifest-combo")
	v := seedVersion(t, svc.dbc, p.ID, "1.0.0", model.VersionStatusApproved)
	seedManifest(t, svc, v.ID)

	_, err := svc.GetManifest(ctx, p.ID, v.ID, model.PlatformLinux, model.ArchArm64)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for absent platform build, got %v", err)
	}
}

func TestGetManifestWrongProduct(t *testing.T) {
	svc, _ := newManifestService(t)
	ctx := context.Background()

	p := seedProduct(t, svc.dbc, "manifest-owner")
	other := seedProduct(t, svc.dbc, "manifest-other")
	v := seedVersion(t, svc.dbc, p.ID, "1.0.0", model.VersionStatusApproved)
	seedManifest(t, svc, v.ID)

	// 版本必须属于路径中的产品
	_, err := svc.GetManifest(ctx, other.ID, v.ID, model.PlatformWindows, model.ArchX64)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for mismatched product, got %v", err)
	}
}
