package rule

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// URL 安全的标识：小写字母数字段，连字符分隔
	slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	// 语义化版本号，允许预发布与构建元数据后缀
	semverRe = regexp.MustCompile(`^\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?(?:\+[0-9A-Za-z.-]+)?$`)
)

// 注册领域自定义规则：slug 与 semver.
func init() {
	_ = RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRe.MatchString(fl.Field().String())
	})

	_ = RegisterValidation("semver", func(fl validator.FieldLevel) bool {
		return semverRe.MatchString(fl.Field().String())
	})
}
