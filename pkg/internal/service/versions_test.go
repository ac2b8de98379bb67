package service

import (
	"context"
	"errors"
	"testing"

	"github.com/allservices/registry/pkg/internal/model"
	"github.com/allservices/registry/pkg/internal/types"
)

func newVersionService(t *testing.T) *VersionService {
	t.Helper()

	return &VersionService{dbc: newTestDB(t)}
}

func TestCreateVersionDefaults(t *testing.T) {
	svc := newVersionService(t)
	ctx := context.Background()

	p := seedProduct(t, svc.dbc, "version-defaults")

	d, err := svc.CreateVersion(ctx, p.ID, &types.CreateVersionRequest{
		VersionString: "1.0.0",
	})
	if err != nil {
		t.Fatalf("CreateVersion: %v", err)
	}

	if d.Status != model.VersionStatusUploading {
		t.Errorf("status = %s, want uploading", d.Status)
	}

	if d.Channel != model.ChannelStable {
		t.Errorf("channel = %s, want stable default", d.Channel)
	}

	if d.Source != model.SourceManualUpload {
		t.Errorf("source = %s, want manual_upload default", d.Source)
	}

	if d.RolloutPercentage != 100 {
		t.Errorf("rollout = %d, want 100 default", d.RolloutPercentage)
	}
}

func TestCreateVersionClampsRollout(t *testing.T) {
	svc := newVersionService(t)
	ctx := context.Background()

	p := seedProduct(t, svc.dbc, "version-clamp")

	over := 250

	d, err := svc.CreateVersion(ctx, p.ID, &types.CreateVersionRequest{
		VersionString:     "1.0.0",
		RolloutPercentage: &over,
	})
	if err != nil {
		t.Fatalf("CreateVersion: %v", err)
	}

	if d.RolloutPercentage != 100 {
		t.Errorf("rollout = %d, want clamped to 100", d.RolloutPercentage)
	}

	under := -10

	d2, err := svc.CreateVersion(ctx, p.ID, &types.CreateVersionRequest{
		VersionString:     "1.0.1",
		RolloutPercentage: &under,
	})
	if err != nil {
		t.Fatalf("CreateVersion: %v", err)
	}

	if d2.RolloutPercentage != 0 {
		t.Errorf("rollout = %d, want clamped to 0", d2.RolloutPercentage)
	}
}

func TestCreateVersionDuplicatePerProduct(t *testing.T) {
	svc := newVersionService(t)
	ctx := context.Background()

	p1 := seedProduct(t, svc.dbc, "dup-product-a")
	p2 := seedProduct(t, svc.dbc, "dup-product-b")

	if _, err := svc.CreateVersion(ctx, p1.ID, &types.CreateVersionRequest{VersionString: "2.0.0"}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.CreateVersion(ctx, p1.ID, &types.CreateVersionRequest{VersionString: "2.0.0"})
	if !errors.Is(err, ErrDuplicateVersion) {
		t.Errorf("same product: expected ErrDuplicateVersion, got %v", err)
	}

	// 不同产品下允许同一版本号
	if _, err := svc.CreateVersion(ctx, p2.ID, &types.CreateVersionRequest{VersionString: "2.0.0"}); err != nil {
		t.Errorf("different product: %v", err)
	}
}

func TestCreateVersionUnknownProduct(t *testing.T) {
	svc := newVersionService(t)

	_, err := svc.CreateVersion(context.Background(), "missing", &types.CreateVersionRequest{VersionString: "1.0.0"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTransitionStatusFullPipeline(t *testing.T) {
	svc := newVersionService(t)
	ctx := context.Background()

	p := seedProduct(t, svc.dbc, "pipeline")
	v := seedVersion(t, svc.dbc, p.ID, "1.0.0", model.VersionStatusUploading)

	for _, to := range []string{"processing", "scan_pending", "review_pending", "approved"} {
		if err := svc.TransitionStatus(ctx, p.ID, v.ID, to); err != nil {
			t.Fatalf("transition to %s: %v", to, err)
		}
	}

	d, err := svc.GetVersion(ctx, p.ID, v.ID)
	if err != nil {
		t.Fatalf("GetVersion: %v", err)
	}

	if d.Status != model.VersionStatusApproved {
		t.Errorf("status = %s, want approved", d.Status)
	}

	if d.ApprovedAt == nil {
		t.Error("ApprovedAt should be stamped on entering approved")
	}

	if d.YankedAt != nil {
		t.Error("YankedAt must not be stamped by generic transitions")
	}
}

func TestTransitionStatusRejectsOffTableMove(t *testing.T) {
	svc := newVersionService(t)
	ctx := context.Background()

	p := seedProduct(t, svc.dbc, "off-table")
	v := seedVersion(t, svc.dbc, p.ID, "1.0.0", model.VersionStatusUploading)

	err := svc.TransitionStatus(ctx, p.ID, v.ID, "approved")

	var ite *InvalidTransitionError
	if !errors.As(err, &ite) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}

	if ite.From != model.VersionStatusUploading || ite.To != model.VersionStatusApproved {
		t.Errorf("error carries %s -> %s", ite.From, ite.To)
	}

	// 迁移到自身同样非法
	err = svc.TransitionStatus(ctx, p.ID, v.ID, "uploading")
	if !errors.As(err, &ite) {
		t.Errorf("self transition: expected InvalidTransitionError, got %v", err)
	}
}

func TestTransitionStatusUnknownTarget(t *testing.T) {
	svc := newVersionService(t)
	ctx := context.Background()

	p := seedProduct(t, svc.dbc, "unknown-target")
	v := seedVersion(t, svc.dbc, p.ID, "1.0.0", model.VersionStatusUploading)

	err := svc.TransitionStatus(ctx, p.ID, v.ID, "published")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

// TestTransitionStatusRestampsApprovedAt 驳回重走流水线后再次批准，
// ApprovedAt 反映最近一次批准.
func TestTransitionStatusRestampsApprovedAt(t *testing.T) {
	svc := newVersionService(t)
	ctx := context.Background()

	p := seedProduct(t, svc.dbc, "restamp")
	v := seedVersion(t, svc.dbc, p.ID, "1.0.0", model.VersionStatusReviewPending)

	if err := svc.TransitionStatus(ctx, p.ID, v.ID, "approved"); err != nil {
		t.Fatalf("first approve: %v", err)
	}

	d1, _ := svc.GetVersion(ctx, p.ID, v.ID)

	// approved 只能去 yanked，走不回 review_pending；直接改库模拟第二轮审核
	svc.dbc.GetDB().Model(&model.ProductVersion{}).Where("id = ?", v.ID).
		Update("status", model.VersionStatusReviewPending)

	if err := svc.TransitionStatus(ctx, p.ID, v.ID, "approved"); err != nil {
		t.Fatalf("second approve: %v", err)
	}

	d2, _ := svc.GetVersion(ctx, p.ID, v.ID)
	if d2.ApprovedAt == nil || d1.ApprovedAt == nil {
		t.Fatal("ApprovedAt missing")
	}

	if d2.ApprovedAt.Before(*d1.ApprovedAt) {
		t.Errorf("second approval timestamp %v should not precede first %v", d2.ApprovedAt, d1.ApprovedAt)
	}
}

func TestYankApprovedVersion(t *testing.T) {
	svc := newVersionService(t)
	ctx := context.Background()

	p := seedProduct(t, svc.dbc, "yankable")
	v := seedVersion(t, svc.dbc, p.ID, "1.0.0", model.VersionStatusApproved)

	if err := svc.Yank(ctx, p.ID, v.ID); err != nil {
		t.Fatalf("Yank: %v", err)
	}

	d, _ := svc.GetVersion(ctx, p.ID, v.ID)
	if d.Status != model.VersionStatusYanked {
		t.Errorf("status = %s, want yanked", d.Status)
	}

	if d.YankedAt == nil {
		t.Error("YankedAt should be stamped by yank")
	}

	// 重复撤回返回专用错误
	err := svc.Yank(ctx, p.ID, v.ID)
	if !errors.Is(err, ErrAlreadyYanked) {
		t.Errorf("expected ErrAlreadyYanked, got %v", err)
	}
}

func TestYankNonApprovedVersion(t *testing.T) {
	svc := newVersionService(t)
	ctx := context.Background()

	p := seedProduct(t, svc.dbc, "not-yankable")

	for i, st := range []model.VersionStatus{
		model.VersionStatusUploading,
		model.VersionStatusProcessing,
		model.VersionStatusScanPending,
		model.VersionStatusScanFailed,
		model.VersionStatusReviewPending,
		model.VersionStatusRejected,
	} {
		v := seedVersion(t, svc.dbc, p.ID, "1.0."+string(rune('0'+i)), st)

		err := svc.Yank(ctx, p.ID, v.ID)

		var ite *InvalidTransitionError
		if !errors.As(err, &ite) {
			t.Errorf("yank from %s: expected InvalidTransitionError, got %v", st, err)
		}
	}
}

// TestVersionScopedToProduct 版本操作限定在所属产品下，
// 拿着别的产品 ID 访问同一版本按不存在处理.
func TestVersionScopedToProduct(t *testing.T) {
	svc := newVersionService(t)
	ctx := context.Background()

	owner := seedProduct(t, svc.dbc, "scope-owner")
	other := seedProduct(t, svc.dbc, "scope-other")
	v := seedVersion(t, svc.dbc, owner.ID, "1.0.0", model.VersionStatusApproved)

	if _, err := svc.GetVersion(ctx, owner.ID, v.ID); err != nil {
		t.Fatalf("GetVersion under owner: %v", err)
	}

	if _, err := svc.GetVersion(ctx, other.ID, v.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetVersion under other product: expected ErrNotFound, got %v", err)
	}

	if err := svc.Yank(ctx, other.ID, v.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Yank under other product: expected ErrNotFound, got %v", err)
	}

	err := svc.TransitionStatus(ctx, other.ID, v.ID, "yanked")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("TransitionStatus under other product: expected ErrNotFound, got %v", err)
	}

	// 错误产品下的操作不得改动版本本身
	d, err := svc.GetVersion(ctx, owner.ID, v.ID)
	if err != nil {
		t.Fatalf("GetVersion after misses: %v", err)
	}

	if d.Status != model.VersionStatusApproved {
		t.Errorf("status = %s, want approved untouched", d.Status)
	}
}

func TestListVersionsFilters(t *testing.T) {
	svc := newVersionService(t)
	ctx := context.Background()

	p := seedProduct(t, svc.dbc, "list-filters")
	seedVersion(t, svc.dbc, p.ID, "1.0.0", model.VersionStatusApproved)
	seedVersion(t, svc.dbc, p.ID, "1.1.0", model.VersionStatusUploading)

	beta := seedVersion(t, svc.dbc, p.ID, "2.0.0-beta.1", model.VersionStatusUploading)
	svc.dbc.GetDB().Model(beta).Update("channel", model.ChannelBeta)

	byStatus, err := svc.ListVersions(ctx, p.ID, &types.ListVersionsQuery{Status: "approved"})
	if err != nil {
		t.Fatalf("ListVersions by status: %v", err)
	}

	if byStatus.Total != 1 || byStatus.Items[0].VersionString != "1.0.0" {
		t.Errorf("status filter mismatch: %+v", byStatus)
	}

	byChannel, err := svc.ListVersions(ctx, p.ID, &types.ListVersionsQuery{Channel: "beta"})
	if err != nil {
		t.Fatalf("ListVersions by channel: %v", err)
	}

	if byChannel.Total != 1 || byChannel.Items[0].VersionString != "2.0.0-beta.1" {
		t.Errorf("channel filter mismatch: %+v", byChannel)
	}

	_, err = svc.ListVersions(ctx, p.ID, &types.ListVersionsQuery{Status: "bogus"})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for bogus status, got %v", err)
	}
}
