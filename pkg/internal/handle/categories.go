package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allservices/registry/pkg/internal/service"
)

// GetCategoryTree 获取完整分类树.
//
//	@Summary	分类树
//	@Tags		分类
//	@Produce	json
//	@Success	200	{array}		types.Category
//	@Failure	500	{object}	map[string]string
//	@Router		/api/v1/categories [get]
func GetCategoryTree(c *gin.Context) {
	svc := service.NewCategoryService(c.Request.Context())

	resp, err := svc.GetTree(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetCategoryBySlug 按 slug 查询分类.
//
//	@Summary	按 slug 查询分类
//	@Tags		分类
//	@Produce	json
//	@Param		slug	path		string	true	"分类slug"
//	@Success	200		{object}	types.Category
//	@Failure	404		{object}	map[string]string
//	@Router		/api/v1/categories/by-slug/{slug} [get]
func GetCategoryBySlug(c *gin.Context) {
	svc := service.NewCategoryService(c.Request.Context())

	resp, err := svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
