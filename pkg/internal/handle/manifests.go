package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allservices/registry/pkg/internal/model"
	"github.com/allservices/registry/pkg/internal/service"
	"github.com/allservices/registry/pkg/log"
	"github.com/allservices/registry/pkg/metrics"
)

// GetManifest 启动器拉取分块清单.
//
//	@Summary		获取分块清单
//	@Description	仅 approved 版本可解析；分块按序号升序，URL 为短时效签名链接
//	@Tags			分发
//	@Produce		json
//	@Param			productId	path		string	true	"产品ID"
//	@Param			versionId	path		string	true	"版本ID"
//	@Param			platform	path		string	true	"平台"	Enums(windows, macos, linux)
//	@Param			arch		path		string	true	"架构"	Enums(x64, arm64, universal)
//	@Success		200			{object}	types.Manifest
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Router			/api/v1/manifests/{productId}/{versionId}/{platform}/{arch} [get]
func GetManifest(c *gin.Context) {
	l := log.Logger()

	platform, err := model.ParsePlatform(c.Param("platform"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	arch, err := model.ParseArchitecture(c.Param("arch"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	productID := c.Param("productId")
	versionID := c.Param("versionId")

	svc := service.NewManifestService(c.Request.Context())

	resp, err := svc.GetManifest(c.Request.Context(), productID, versionID, platform, arch)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	metrics.ManifestsServed.WithLabelValues(string(platform), string(arch)).Inc()

	l.Info().
		Str("product_id", productID).
		Str("version_id", versionID).
		Str("platform", string(platform)).
		Str("arch", string(arch)).
		Int("chunks", len(resp.Chunks)).
		Msg("manifest served")

	c.JSON(http.StatusOK, resp)
}
