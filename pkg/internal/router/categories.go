package router

import (
	"time"

	"github.com/gin-gonic/gin"

	appcache "github.com/allservices/registry/pkg/cache"
	"github.com/allservices/registry/pkg/internal/handle"
	"github.com/allservices/registry/pkg/internal/storage"
	"github.com/allservices/registry/pkg/middleware"
)

// categoryCacheTTL 分类树是低频变更数据，响应缓存可以适当放宽.
const categoryCacheTTL = 5 * time.Minute

// RegisterCategoryRoutes 注册只读的分类路由.
// 当 KV 后端可用时，为分类路由挂载响应缓存中间件.
func RegisterCategoryRoutes(g *gin.RouterGroup, mgr *storage.Manager) {
	categories := g.Group("/categories")

	if mgr != nil && mgr.GetKVClient() != nil {
		cfg := middleware.DefaultCacheConfig(appcache.NewCache(mgr.GetKVClient()))
		cfg.TTL = categoryCacheTTL
		categories.Use(middleware.CacheMiddleware(cfg))
	}

	{
		categories.GET("", handle.GetCategoryTree)
		categories.GET("/by-slug/:slug", handle.GetCategoryBySlug)
	}
}
