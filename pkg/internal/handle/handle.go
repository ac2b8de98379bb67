// Package handle 提供 HTTP 请求处理器：绑定与校验入参、调用 service、
// 把领域错误映射为状态码.鉴权策略在上游（网关/代理）完成，这里只解析身份头.
package handle

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/allservices/registry/pkg/internal/service"
	"github.com/allservices/registry/pkg/log"
	"github.com/allservices/registry/pkg/rule"
)

func DefaultHandler(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"message": "Not Implemented"})
}

// checkUser 提取调用方身份：Header 优先 -> query 参数 -> 非 Release 模式下的测试默认值.
// 上游代理已完成认证，这里只要求身份非空.
func checkUser(c *gin.Context) (string, error) {
	user := c.GetHeader("X-User-Id")
	if user == "" {
		user = c.Query("user")
	}

	if user == "" && gin.Mode() != gin.ReleaseMode {
		user = "test-user"
	}

	user = strings.TrimSpace(user)

	if err := rule.ValidateVar(user, "required"); err != nil {
		return "", err
	}

	return user, nil
}

// bindAndValidate 绑定请求体并执行 rule 标签校验，失败时已写响应.
func bindAndValidate(c *gin.Context, req any) bool {
	l := log.Logger()

	if err := c.ShouldBind(req); err != nil {
		l.Warn().Err(err).Msg("invalid request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return false
	}

	if err := rule.ValidateStruct(req); err != nil {
		l.Warn().Err(err).Msg("validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return false
	}

	return true
}

// writeDomainError 把 service 层的领域错误映射为 HTTP 状态码.
func writeDomainError(c *gin.Context, err error) {
	l := log.Logger()

	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case service.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		l.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
