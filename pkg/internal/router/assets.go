package router

import (
	"github.com/gin-gonic/gin"

	"github.com/allservices/registry/pkg/internal/handle"
)

// RegisterAssetRoutes 注册素材路由.
func RegisterAssetRoutes(g *gin.RouterGroup) {
	assets := g.Group("/assets")
	{
		assets.POST("/upload", handle.InitiateAssetUpload)
		assets.GET("/product/:productId", handle.ListProductAssets)
		assets.DELETE("/:assetId", handle.DeleteAsset)
	}
}
