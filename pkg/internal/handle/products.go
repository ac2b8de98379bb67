package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allservices/registry/pkg/internal/service"
	"github.com/allservices/registry/pkg/internal/types"
	"github.com/allservices/registry/pkg/log"
)

// CreateProduct 创建产品.
//
//	@Summary		创建产品
//	@Description	以 draft 状态创建新产品，slug 全局唯一（大小写无关）
//	@Tags			产品
//	@Accept			json
//	@Produce		json
//	@Param			body	body		types.CreateProductRequest	true	"创建参数"
//	@Success		201		{object}	types.ProductDetail
//	@Failure		400		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Router			/api/v1/products [post]
func CreateProduct(c *gin.Context) {
	l := log.Logger()

	user, err := checkUser(c)
	if err != nil {
		l.Warn().Err(err).Msg("missing or invalid user")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})

		return
	}

	var req types.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}

	svc := service.NewProductService(c.Request.Context())

	resp, err := svc.CreateProduct(c.Request.Context(), user, &req)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetProduct 按 ID 查询产品.
//
//	@Summary	产品详情
//	@Tags		产品
//	@Produce	json
//	@Param		id	path		string	true	"产品ID"
//	@Success	200	{object}	types.ProductDetail
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/products/{id} [get]
func GetProduct(c *gin.Context) {
	svc := service.NewProductService(c.Request.Context())

	resp, err := svc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetProductBySlug 按 slug 查询产品.
//
//	@Summary	按 slug 查询产品
//	@Tags		产品
//	@Produce	json
//	@Param		slug	path		string	true	"产品slug"
//	@Success	200		{object}	types.ProductDetail
//	@Failure	404		{object}	map[string]string
//	@Router		/api/v1/products/by-slug/{slug} [get]
func GetProductBySlug(c *gin.Context) {
	svc := service.NewProductService(c.Request.Context())

	resp, err := svc.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListProducts 产品列表.
//
//	@Summary	产品列表
//	@Tags		产品
//	@Produce	json
//	@Param		developer_id	query		string	false	"开发者ID"
//	@Param		status			query		string	false	"状态过滤"
//	@Param		category_id		query		string	false	"分类ID"
//	@Param		search			query		string	false	"名称/描述模糊搜索"
//	@Param		page			query		int		false	"页码"
//	@Param		page_size		query		int		false	"每页条数"
//	@Success	200				{object}	types.Paged[types.ProductSummary]
//	@Failure	400				{object}	map[string]string
//	@Router		/api/v1/products [get]
func ListProducts(c *gin.Context) {
	l := log.Logger()

	var q types.ListProductsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		l.Warn().Err(err).Msg("invalid query")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	svc := service.NewProductService(c.Request.Context())

	resp, err := svc.ListProducts(c.Request.Context(), &q)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateProduct 局部更新产品.
//
//	@Summary		更新产品
//	@Description	只应用请求体中显式出现的字段
//	@Tags			产品
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"产品ID"
//	@Param			body	body		types.UpdateProductRequest	true	"更新参数"
//	@Success		200		{object}	types.ProductDetail
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Router			/api/v1/products/{id} [patch]
func UpdateProduct(c *gin.Context) {
	var req types.UpdateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}

	svc := service.NewProductService(c.Request.Context())

	resp, err := svc.UpdateProduct(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteProduct 软删除产品（下架）.
//
//	@Summary	删除产品
//	@Tags		产品
//	@Param		id	path	string	true	"产品ID"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/products/{id} [delete]
func DeleteProduct(c *gin.Context) {
	svc := service.NewProductService(c.Request.Context())

	if err := svc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		writeDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SuspendProduct 暂停产品（管理操作）.
//
//	@Summary	暂停产品
//	@Tags		产品
//	@Param		id	path	string	true	"产品ID"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/products/{id}/suspend [post]
func SuspendProduct(c *gin.Context) {
	l := log.Logger()

	user, err := checkUser(c)
	if err != nil {
		l.Warn().Err(err).Msg("missing or invalid user")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})

		return
	}

	svc := service.NewProductService(c.Request.Context())

	if err := svc.SuspendProduct(c.Request.Context(), c.Param("id")); err != nil {
		writeDomainError(c, err)
		return
	}

	l.Info().Str("product_id", c.Param("id")).Str("user", user).Msg("product suspended")

	c.Status(http.StatusNoContent)
}

// UnsuspendProduct 解除暂停（管理操作）.
//
//	@Summary	解除暂停
//	@Tags		产品
//	@Param		id	path	string	true	"产品ID"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Failure	409	{object}	map[string]string
//	@Router		/api/v1/products/{id}/unsuspend [post]
func UnsuspendProduct(c *gin.Context) {
	l := log.Logger()

	user, err := checkUser(c)
	if err != nil {
		l.Warn().Err(err).Msg("missing or invalid user")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})

		return
	}

	svc := service.NewProductService(c.Request.Context())

	if err := svc.UnsuspendProduct(c.Request.Context(), c.Param("id")); err != nil {
		writeDomainError(c, err)
		return
	}

	l.Info().Str("product_id", c.Param("id")).Str("user", user).Msg("product unsuspended")

	c.Status(http.StatusNoContent)
}
