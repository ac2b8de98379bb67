package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/allservices/registry/pkg/internal/model"
)

func newCategoryService(t *testing.T) *CategoryService {
	t.Helper()

	// kv 留空：走直读路径，缓存行为由 pkg/cache 自己的测试覆盖
	return &CategoryService{dbc: newTestDB(t)}
}

func seedCategory(t *testing.T, svc *CategoryService, name, slug string, parentID *string, sortOrder int) *model.ProductCategory {
	t.Helper()

	c := &model.ProductCategory{
		ID:               uuid.NewString(),
		Name:             name,
		Slug:             slug,
		ParentCategoryID: parentID,
		SortOrder:        sortOrder,
	}

	if err := svc.dbc.GetDB().Create(c).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}

	return c
}

func TestGetTreeNestsAndSorts(t *testing.T) {
	svc := newCategoryService(t)
	ctx := context.Background()

	games := seedCategory(t, svc, "Games", "games", nil, 2)
	tools := seedCategory(t, svc, "Tools", "tools", nil, 1)
	seedCategory(t, svc, "Strategy", "strategy", &games.ID, 2)
	seedCategory(t, svc, "Action", "action", &games.ID, 1)
	_ = tools

	tree, err := svc.GetTree(ctx)
	if err != nil {
		t.Fatalf("GetTree: %v", err)
	}

	if len(tree) != 2 {
		t.Fatalf("roots = %d, want 2", len(tree))
	}

	// 根与子节点都按 sort_order 升序
	if tree[0].Slug != "tools" || tree[1].Slug != "games" {
		t.Errorf("root order: %s, %s", tree[0].Slug, tree[1].Slug)
	}

	children := tree[1].Children
	if len(children) != 2 || children[0].Slug != "action" || children[1].Slug != "strategy" {
		t.Errorf("child order: %+v", children)
	}
}

// TestGetTreeDanglingParent 父指针悬空的分类按根处理，不丢数据.
func TestGetTreeDanglingParent(t *testing.T) {
	svc := newCategoryService(t)
	ctx := context.Background()

	ghost := "no-such-parent"
	seedCategory(t, svc, "Orphan", "orphan", &ghost, 1)

	tree, err := svc.GetTree(ctx)
	if err != nil {
		t.Fatalf("GetTree: %v", err)
	}

	if len(tree) != 1 || tree[0].Slug != "orphan" {
		t.Errorf("dangling parent should surface as root: %+v", tree)
	}
}

func TestGetBySlug(t *testing.T) {
	svc := newCategoryService(t)
	ctx := context.Background()

	games := seedCategory(t, svc, "Games", "games", nil, 1)
	seedCategory(t, svc, "Strategy", "strategy", &games.ID, 1)

	c, err := svc.GetBySlug(ctx, "Strategy")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}

	if c.Name != "Strategy" {
		t.Errorf("name = %q", c.Name)
	}

	_, err = svc.GetBySlug(ctx, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBuildTreeEmpty(t *testing.T) {
	if got := buildTree(nil); len(got) != 0 {
		t.Errorf("buildTree(nil) = %v", got)
	}
}
