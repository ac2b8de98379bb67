package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allservices/registry/pkg/internal/service"
	"github.com/allservices/registry/pkg/internal/types"
	"github.com/allservices/registry/pkg/log"
	"github.com/allservices/registry/pkg/metrics"
)

// InitiateAssetUpload 签发素材上传 URL.
//
//	@Summary		签发素材上传
//	@Description	返回 15 分钟有效的预签名 PUT URL 与最终公开 URL
//	@Tags			素材
//	@Accept			json
//	@Produce		json
//	@Param			body	body		types.InitiateAssetUploadRequest	true	"上传参数"
//	@Success		201		{object}	types.AssetUpload
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Router			/api/v1/assets/upload [post]
func InitiateAssetUpload(c *gin.Context) {
	l := log.Logger()

	user, err := checkUser(c)
	if err != nil {
		l.Warn().Err(err).Msg("missing or invalid user")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})

		return
	}

	var req types.InitiateAssetUploadRequest
	if !bindAndValidate(c, &req) {
		return
	}

	svc := service.NewAssetService(c.Request.Context())

	resp, err := svc.InitiateUpload(c.Request.Context(), user, &req)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	metrics.AssetUploadsInitiated.WithLabelValues(req.Type).Inc()

	c.JSON(http.StatusCreated, resp)
}

// ListProductAssets 列出产品素材.
//
//	@Summary	素材列表
//	@Tags		素材
//	@Produce	json
//	@Param		productId	path		string	true	"产品ID"
//	@Param		type		query		string	false	"类型过滤"
//	@Success	200			{array}		types.AssetInfo
//	@Failure	400			{object}	map[string]string
//	@Router		/api/v1/assets/product/{productId} [get]
func ListProductAssets(c *gin.Context) {
	svc := service.NewAssetService(c.Request.Context())

	resp, err := svc.ListAssets(c.Request.Context(), c.Param("productId"), c.Query("type"))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteAsset 删除素材.
//
//	@Summary	删除素材
//	@Tags		素材
//	@Param		assetId	path	string	true	"素材ID"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/assets/{assetId} [delete]
func DeleteAsset(c *gin.Context) {
	svc := service.NewAssetService(c.Request.Context())

	if err := svc.DeleteAsset(c.Request.Context(), c.Param("assetId")); err != nil {
		writeDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
