package errors

import (
	"errors"
	"fmt"
)

// ================= 业务领域错误定义 =================
// 所有业务逻辑相关的错误统一在此定义，避免跨包重复定义
// 五类错误（校验 / 未认证 / 限流 / 不存在 / 一致性）必须可区分，
// Controller 据此映射 HTTP 状态码

// ErrRestaurantNotFound 帖子不存在错误
// 当按业务 ID 查询不到帖子时返回此错误，属于正常的否定结果
var ErrRestaurantNotFound = errors.New("restaurant not found in database")

// ErrUnauthenticated 未认证错误
// 写操作没有解析到调用方身份时返回，无任何副作用
var ErrUnauthenticated = errors.New("caller is not authenticated")

// ErrRateLimited 限流错误
// 滑动窗口内写入次数超限时返回，窗口推进后可重试
var ErrRateLimited = errors.New("too many create requests, retry after the window advances")

// ErrAuthorNotFound 数据一致性错误
// 帖子引用的 userId 在身份服务中查不到档案时返回
// ⚠️ 这是 Store 与身份服务之间的数据完整性问题，绝不能静默吞掉，
// 也绝不能用 "Unknown User" 之类的占位档案兜底
var ErrAuthorNotFound = errors.New("user for restaurant not found")

// ValidationError 输入校验错误
// 记录哪个字段、因何原因（过短/过长）未通过校验，在到达 Store 之前拦截
type ValidationError struct {
	Field  string // "title" 或 "description"
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// NewValidationError 构造字段校验错误
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
