package router

import (
	"github.com/gin-gonic/gin"

	"github.com/allservices/registry/pkg/internal/handle"
)

// RegisterManifestRoutes 注册启动器拉取清单的分发路由.
func RegisterManifestRoutes(g *gin.RouterGroup) {
	g.GET("/manifests/:productId/:versionId/:platform/:arch", handle.GetManifest)
}
