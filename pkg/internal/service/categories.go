package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/allservices/registry/pkg/cache"
	ctxPkg "github.com/allservices/registry/pkg/context"
	"github.com/allservices/registry/pkg/internal/model"
	"github.com/allservices/registry/pkg/internal/storage/db"
	"github.com/allservices/registry/pkg/internal/types"
	nlog "github.com/allservices/registry/pkg/log"
)

const (
	categoryTreeCacheKey = "registry:categories:tree"
	categoryTreeCacheTTL = 5 * time.Minute
)

// CategoryService 只读的分类树，供市场端过滤使用.
// 平表存储，树在读取时于内存中物化；分类由管理员离线维护，
// 树整体走 KV 缓存，TTL 过期即可，无需主动失效.
type CategoryService struct {
	dbc *db.Client
	kv  *cache.Cache
}

// NewCategoryService 创建并返回一个新的 CategoryService 实例.
func NewCategoryService(c context.Context) *CategoryService {
	svc := &CategoryService{
		dbc: ctxPkg.GetDBClient(c),
	}

	if kvc := ctxPkg.GetKVClient(c); kvc != nil {
		svc.kv = cache.NewCache(kvc)
	}

	if svc.dbc == nil {
		nlog.Logger().Warn().Msg("DB client not initialized, CategoryService features limited")
	}

	return svc
}

// GetTree 返回完整的分类树，根节点与各层子节点均按 sort_order 排序.
func (s *CategoryService) GetTree(ctx context.Context) ([]types.Category, error) {
	if s.kv == nil {
		return s.loadTree(ctx)
	}

	return cache.GetOrSet(ctx, s.kv, categoryTreeCacheKey, func() ([]types.Category, error) {
		return s.loadTree(ctx)
	}, categoryTreeCacheTTL)
}

// GetBySlug 按 slug 查询单个分类（含其子树）.
func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*types.Category, error) {
	tree, err := s.GetTree(ctx)
	if err != nil {
		return nil, err
	}

	if c := findBySlug(tree, strings.ToLower(slug)); c != nil {
		return c, nil
	}

	return nil, fmt.Errorf("category %s: %w", slug, ErrNotFound)
}

// loadTree 读出全部分类并在内存中物化父子结构.
func (s *CategoryService) loadTree(ctx context.Context) ([]types.Category, error) {
	if s.dbc == nil || s.dbc.GetDB() == nil {
		return nil, errors.New("db not initialized")
	}

	var rows []model.ProductCategory

	err := s.dbc.GetDB().WithContext(ctx).
		Order("sort_order ASC, name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	return buildTree(rows), nil
}

// buildTree 由平表构造树.父指针悬空的节点按根处理，不丢数据.
func buildTree(rows []model.ProductCategory) []types.Category {
	known := make(map[string]bool, len(rows))
	for _, r := range rows {
		known[r.ID] = true
	}

	children := make(map[string][]model.ProductCategory)

	var roots []model.ProductCategory

	for _, r := range rows {
		if r.ParentCategoryID != nil && known[*r.ParentCategoryID] {
			children[*r.ParentCategoryID] = append(children[*r.ParentCategoryID], r)
		} else {
			roots = append(roots, r)
		}
	}

	var build func(rs []model.ProductCategory) []types.Category

	build = func(rs []model.ProductCategory) []types.Category {
		sort.SliceStable(rs, func(i, j int) bool { return rs[i].SortOrder < rs[j].SortOrder })

		out := make([]types.Category, 0, len(rs))
		for _, r := range rs {
			out = append(out, types.Category{
				ID:          r.ID,
				Name:        r.Name,
				Slug:        r.Slug,
				Icon:        r.Icon,
				Description: r.Description,
				SortOrder:   r.SortOrder,
				Children:    build(children[r.ID]),
			})
		}

		return out
	}

	return build(roots)
}

func findBySlug(tree []types.Category, slug string) *types.Category {
	for i := range tree {
		if tree[i].Slug == slug {
			return &tree[i]
		}

		if c := findBySlug(tree[i].Children, slug); c != nil {
			return c
		}
	}

	return nil
}
