package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allservices/registry/pkg/internal/model"
	"github.com/allservices/registry/pkg/internal/service"
	"github.com/allservices/registry/pkg/internal/types"
	"github.com/allservices/registry/pkg/log"
	"github.com/allservices/registry/pkg/metrics"
)

// CreateVersion 为产品创建新版本.
//
//	@Summary		创建版本
//	@Description	新版本以 uploading 状态进入审核流水线
//	@Tags			版本
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"产品ID"
//	@Param			body	body		types.CreateVersionRequest	true	"创建参数"
//	@Success		201		{object}	types.VersionDetail
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Router			/api/v1/products/{id}/versions [post]
func CreateVersion(c *gin.Context) {
	var req types.CreateVersionRequest
	if !bindAndValidate(c, &req) {
		return
	}

	svc := service.NewVersionService(c.Request.Context())

	resp, err := svc.CreateVersion(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListVersions 列出产品的版本.
//
//	@Summary	版本列表
//	@Tags		版本
//	@Produce	json
//	@Param		id			path		string	true	"产品ID"
//	@Param		status		query		string	false	"状态过滤"
//	@Param		channel		query		string	false	"渠道过滤"
//	@Param		page		query		int		false	"页码"
//	@Param		page_size	query		int		false	"每页条数"
//	@Success	200			{object}	types.Paged[types.VersionSummary]
//	@Failure	400			{object}	map[string]string
//	@Router		/api/v1/products/{id}/versions [get]
func ListVersions(c *gin.Context) {
	l := log.Logger()

	var q types.ListVersionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		l.Warn().Err(err).Msg("invalid query")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	svc := service.NewVersionService(c.Request.Context())

	resp, err := svc.ListVersions(c.Request.Context(), c.Param("id"), &q)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetVersion 版本详情.
//
//	@Summary	版本详情
//	@Tags		版本
//	@Produce	json
//	@Param		id			path		string	true	"产品ID"
//	@Param		versionId	path		string	true	"版本ID"
//	@Success	200			{object}	types.VersionDetail
//	@Failure	404			{object}	map[string]string
//	@Router		/api/v1/products/{id}/versions/{versionId} [get]
func GetVersion(c *gin.Context) {
	svc := service.NewVersionService(c.Request.Context())

	resp, err := svc.GetVersion(c.Request.Context(), c.Param("id"), c.Param("versionId"))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// TransitionVersionStatus 沿审核流水线迁移版本状态（管理操作）.
//
//	@Summary		迁移版本状态
//	@Description	只允许邻接表内的迁移，表外迁移返回 409
//	@Tags			版本
//	@Accept			json
//	@Param			id			path	string							true	"产品ID"
//	@Param			versionId	path	string							true	"版本ID"
//	@Param			body		body	types.TransitionStatusRequest	true	"目标状态"
//	@Success		204
//	@Failure		400	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Failure		409	{object}	map[string]string
//	@Router			/api/v1/products/{id}/versions/{versionId}/status [post]
func TransitionVersionStatus(c *gin.Context) {
	var req types.TransitionStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}

	svc := service.NewVersionService(c.Request.Context())

	if err := svc.TransitionStatus(c.Request.Context(), c.Param("id"), c.Param("versionId"), req.Status); err != nil {
		writeDomainError(c, err)
		return
	}

	metrics.VersionTransitions.WithLabelValues(req.Status).Inc()

	c.Status(http.StatusNoContent)
}

// YankVersion 撤回已批准的版本.
//
//	@Summary		撤回版本
//	@Description	从分发中撤下版本但保留记录，重复撤回返回 409
//	@Tags			版本
//	@Param			id			path	string	true	"产品ID"
//	@Param			versionId	path	string	true	"版本ID"
//	@Success		204
//	@Failure		404	{object}	map[string]string
//	@Failure		409	{object}	map[string]string
//	@Router			/api/v1/products/{id}/versions/{versionId}/yank [post]
func YankVersion(c *gin.Context) {
	l := log.Logger()

	user, err := checkUser(c)
	if err != nil {
		l.Warn().Err(err).Msg("missing or invalid user")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})

		return
	}

	svc := service.NewVersionService(c.Request.Context())

	if err := svc.Yank(c.Request.Context(), c.Param("id"), c.Param("versionId")); err != nil {
		writeDomainError(c, err)
		return
	}

	metrics.VersionTransitions.WithLabelValues(string(model.VersionStatusYanked)).Inc()

	l.Info().
		Str("version_id", c.Param("versionId")).
		Str("user", user).
		Msg("version yanked")

	c.Status(http.StatusNoContent)
}
