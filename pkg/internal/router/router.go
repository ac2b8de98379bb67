// Package router 管理路由配置，用于设置HTTP服务的路由规则.
// 路由形状与各领域处理器的绑定集中在这里，处理器实现位于 pkg/internal/handle.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/allservices/registry/pkg/internal/storage"
)

// RegisterAPIRoutes 注册全部业务路由到传入的路由组.
// mgr 可为 nil，此时跳过依赖存储后端的路由级中间件（如分类树的响应缓存）.
func RegisterAPIRoutes(g *gin.RouterGroup, mgr *storage.Manager) {
	RegisterProductRoutes(g)
	RegisterManifestRoutes(g)
	RegisterAssetRoutes(g)
	RegisterCategoryRoutes(g, mgr)
	RegisterHealthCheckRoute(g)
	RegisterSchedulerRoutes(g)
}
