package service

import (
	"context"
	"errors"
	"testing"

	"github.com/allservices/registry/pkg/internal/model"
	"github.com/allservices/registry/pkg/internal/types"
)

func newProductService(t *testing.T) *ProductService {
	t.Helper()

	return &ProductService{
		dbc:          newTestDB(t),
		store:        &fakeStore{},
		assetsBucket: "registry-assets",
	}
}

func TestCreateProductLowercasesSlug(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	d, err := svc.CreateProduct(ctx, "dev-1", &types.CreateProductRequest{
		Name:             "Nebula Forge",
		Slug:             "Nebula-Forge",
		ShortDescription: "short",
		LongDescription:  "long",
		PlatformSupport:  []model.Platform{model.PlatformWindows},
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	if d.Slug != "nebula-forge" {
		t.Errorf("slug = %q, want lowercased", d.Slug)
	}

	if d.Status != model.ProductStatusDraft {
		t.Errorf("status = %s, want draft", d.Status)
	}

	if d.Visibility != model.VisibilityPublic {
		t.Errorf("visibility = %s, want public default", d.Visibility)
	}

	if d.TrustBadge != model.TrustBadgeNone {
		t.Errorf("trust badge = %s, want none", d.TrustBadge)
	}
}

func TestCreateProductDuplicateSlugCaseInsensitive(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	req := &types.CreateProductRequest{
		Name:             "First",
		Slug:             "my-game",
		ShortDescription: "s",
		LongDescription:  "l",
		PlatformSupport:  []model.Platform{model.PlatformLinux},
	}

	if _, err := svc.CreateProduct(ctx, "dev-1", req); err != nil {
		t.Fatalf("first create: %v", err)
	}

	req2 := *req
	req2.Slug = "MY-GAME"

	_, err := svc.CreateProduct(ctx, "dev-2", &req2)
	if !errors.Is(err, ErrDuplicateSlug) {
		t.Errorf("expected ErrDuplicateSlug, got %v", err)
	}
}

func TestGetProductBySlugIsCaseInsensitive(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	seedProduct(t, svc.dbc, "starfall")

	d, err := svc.GetProductBySlug(ctx, "StarFall")
	if err != nil {
		t.Fatalf("GetProductBySlug: %v", err)
	}

	if d.Slug != "starfall" {
		t.Errorf("slug = %q", d.Slug)
	}
}

func TestGetProductNotFound(t *testing.T) {
	svc := newProductService(t)

	_, err := svc.GetProduct(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteProductSoftDeletes(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	p := seedProduct(t, svc.dbc, "soft-delete")

	if err := svc.DeleteProduct(ctx, p.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}

	// 记录保留，状态变为 delisted
	d, err := svc.GetProduct(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProduct after delete: %v", err)
	}

	if d.Status != model.ProductStatusDelisted {
		t.Errorf("status = %s, want delisted", d.Status)
	}
}

func TestSuspendProductFromAnyState(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	for _, st := range []model.ProductStatus{
		model.ProductStatusDraft,
		model.ProductStatusListed,
		model.ProductStatusDelisted,
	} {
		p := seedProduct(t, svc.dbc, "suspend-"+string(st))
		svc.dbc.GetDB().Model(p).Update("status", st)

		if err := svc.SuspendProduct(ctx, p.ID); err != nil {
			t.Errorf("SuspendProduct from %s: %v", st, err)
		}
	}
}

func TestUnsuspendRequiresSuspendedState(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	for _, st := range []model.ProductStatus{
		model.ProductStatusDraft,
		model.ProductStatusInReview,
		model.ProductStatusListed,
		model.ProductStatusDelisted,
	} {
		p := seedProduct(t, svc.dbc, "unsuspend-"+string(st))
		svc.dbc.GetDB().Model(p).Update("status", st)

		err := svc.UnsuspendProduct(ctx, p.ID)
		if !errors.Is(err, ErrInvalidState) {
			t.Errorf("UnsuspendProduct from %s: expected ErrInvalidState, got %v", st, err)
		}
	}
}

func TestUnsuspendStampsPublishedAtOnce(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	p := seedProduct(t, svc.dbc, "publish-stamp")
	svc.dbc.GetDB().Model(p).Update("status", model.ProductStatusSuspended)

	if err := svc.UnsuspendProduct(ctx, p.ID); err != nil {
		t.Fatalf("UnsuspendProduct: %v", err)
	}

	d, err := svc.GetProduct(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}

	if d.Status != model.ProductStatusListed {
		t.Errorf("status = %s, want listed", d.Status)
	}

	if d.PublishedAt == nil {
		t.Fatal("PublishedAt should be stamped on first listing")
	}

	first := *d.PublishedAt

	// 再次暂停再恢复，PublishedAt 不应被覆盖
	if err := svc.SuspendProduct(ctx, p.ID); err != nil {
		t.Fatalf("SuspendProduct: %v", err)
	}

	if err := svc.UnsuspendProduct(ctx, p.ID); err != nil {
		t.Fatalf("second UnsuspendProduct: %v", err)
	}

	d2, _ := svc.GetProduct(ctx, p.ID)
	if d2.PublishedAt == nil || !d2.PublishedAt.Equal(first) {
		t.Errorf("PublishedAt changed on relist: %v -> %v", first, d2.PublishedAt)
	}
}

func TestUpdateProductSparsePatch(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	p := seedProduct(t, svc.dbc, "patchable")

	name := "Renamed"
	icon := "01ARZ3NDEKTSV4RRFFQ69G5FAV"

	d, err := svc.UpdateProduct(ctx, p.ID, &types.UpdateProductRequest{
		Name:        &name,
		IconAssetID: &icon,
	})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}

	if d.Name != "Renamed" {
		t.Errorf("name = %q", d.Name)
	}

	// 未出现的字段保持原值
	if d.Slug != "patchable" {
		t.Errorf("slug changed unexpectedly: %q", d.Slug)
	}

	if d.IconURL == "" {
		t.Error("icon url should resolve after patching icon asset id")
	}
}

func TestListProductsFilterAndSearch(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	a := seedProduct(t, svc.dbc, "alpha-quest")
	svc.dbc.GetDB().Model(a).Updates(map[string]any{"name": "Alpha Quest", "status": model.ProductStatusListed})

	b := seedProduct(t, svc.dbc, "beta-blast")
	svc.dbc.GetDB().Model(b).Update("name", "Beta Blast")

	byStatus, err := svc.ListProducts(ctx, &types.ListProductsQuery{Status: "listed"})
	if err != nil {
		t.Fatalf("ListProducts by status: %v", err)
	}

	if byStatus.Total != 1 || byStatus.Items[0].Slug != "alpha-quest" {
		t.Errorf("status filter: total=%d items=%v", byStatus.Total, byStatus.Items)
	}

	bySearch, err := svc.ListProducts(ctx, &types.ListProductsQuery{Search: "ALPHA"})
	if err != nil {
		t.Fatalf("ListProducts by search: %v", err)
	}

	if bySearch.Total != 1 {
		t.Errorf("search should be case-insensitive, total=%d", bySearch.Total)
	}

	_, err = svc.ListProducts(ctx, &types.ListProductsQuery{Status: "bogus"})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("invalid status filter: expected ErrValidation, got %v", err)
	}
}
