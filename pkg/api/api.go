// Package api 负责把各领域路由挂载到 gin 引擎上，对外暴露统一的 /api/v1 前缀.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/allservices/registry/pkg/internal/router"
	"github.com/allservices/registry/pkg/internal/storage"
)

// RegisterGroup 注册全部业务路由组到传入的 gin 引擎.
func RegisterGroup(e *gin.Engine, mgr *storage.Manager) *gin.Engine {
	router.RegisterAPIRoutes(e.Group("/api/v1"), mgr)

	return e
}
