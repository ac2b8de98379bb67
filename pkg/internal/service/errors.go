package service

import (
	"errors"
	"fmt"

	"github.com/allservices/registry/pkg/internal/model"
)

// 领域错误哨兵.调用方（HTTP 层）负责把它们映射为状态码，service 层不打日志.
var (
	// ErrNotFound 实体不存在.按 ID、slug 或组合键查询落空时返回，
	// 清单查询对"版本未批准"同样返回该错误，不区分原因.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateSlug 产品 slug 已被占用（大小写无关）.
	ErrDuplicateSlug = errors.New("slug already taken")

	// ErrDuplicateVersion 同一产品下版本号重复.
	ErrDuplicateVersion = errors.New("version already exists")

	// ErrAlreadyYanked 对已撤回版本再次 yank.区别于一般的非法迁移，便于调用方提示.
	ErrAlreadyYanked = errors.New("version already yanked")

	// ErrInvalidState 实体不满足操作的前置状态（如对非 suspended 产品执行 unsuspend）.
	ErrInvalidState = errors.New("operation not allowed in current state")

	// ErrValidation 入参未通过领域校验（未知枚举值等）.
	ErrValidation = errors.New("validation failed")
)

// InvalidTransitionError 审核流水线的非法状态迁移，携带 from/to 供上层提示.
type InvalidTransitionError struct {
	From model.VersionStatus
	To   model.VersionStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition from %s to %s", e.From, e.To)
}

// IsConflict 判断错误是否属于冲突类（HTTP 409）.
func IsConflict(err error) bool {
	var te *InvalidTransitionError

	return errors.Is(err, ErrDuplicateSlug) ||
		errors.Is(err, ErrDuplicateVersion) ||
		errors.Is(err, ErrAlreadyYanked) ||
		errors.Is(err, ErrInvalidState) ||
		errors.As(err, &te)
}
