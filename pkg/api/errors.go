package api

import (
	"errors"
	"fmt"
)

// ErrorCodeAlreadyRegistered 事前预约邮箱重复
const ErrorCodeAlreadyRegistered = "PRELAUNCH_001"

var (
	// ErrAlreadyRegistered 邮箱已经登记过事前预约
	ErrAlreadyRegistered = errors.New("email already registered")
	// ErrInvalidEmail 邮箱格式不合法（必须包含 "@" 和 "."）
	ErrInvalidEmail = errors.New("invalid email address")
)

// APIError 服务端返回的业务错误
// 响应体中带有 errorCode 时由 Client 构造
type APIError struct {
	Message   string
	ErrorCode string
	Status    int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %s (status %d): %s", e.ErrorCode, e.Status, e.Message)
}

// Is 让 errors.Is 把已知错误码映射到哨兵错误
func (e *APIError) Is(target error) bool {
	return target == ErrAlreadyRegistered && e.ErrorCode == ErrorCodeAlreadyRegistered
}

// IsAPIError 判断 err 链中是否包含 *APIError
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
