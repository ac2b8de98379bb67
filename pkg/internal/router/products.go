package router

import (
	"github.com/gin-gonic/gin"

	"github.com/allservices/registry/pkg/internal/handle"
	"github.com/allservices/registry/pkg/middleware"
)

// RegisterProductRoutes 注册产品目录与版本流水线路由.
func RegisterProductRoutes(g *gin.RouterGroup) {
	products := g.Group("/products")
	{
		products.POST("", handle.CreateProduct)
		products.GET("", handle.ListProducts)
		products.GET("/by-slug/:slug", handle.GetProductBySlug)

		single := products.Group("/:id")
		{
			single.GET("", handle.GetProduct)
			single.PATCH("", handle.UpdateProduct)
			single.DELETE("", handle.DeleteProduct)
			// 上下架属于平台治理操作，要求网关注入的管理员角色
			single.POST("/suspend", middleware.RequireMinRole(middleware.RoleAdmin), handle.SuspendProduct)
			single.POST("/unsuspend", middleware.RequireMinRole(middleware.RoleAdmin), handle.UnsuspendProduct)

			// 版本嵌套在产品之下
			versions := single.Group("/versions")
			{
				versions.POST("", handle.CreateVersion)
				versions.GET("", handle.ListVersions)
				versions.GET("/:versionId", handle.GetVersion)
				versions.POST("/:versionId/status", middleware.RequireMinRole(middleware.RoleAdmin), handle.TransitionVersionStatus)
				versions.POST("/:versionId/yank", handle.YankVersion)
			}
		}
	}
}
