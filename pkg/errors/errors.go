package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Status是边界层使用的HTTP状态码
// 2. Code是机器可读的错误码（如not_found），客户端据此判断错误类型
// 3. Message是用户友好的提示信息
// 4. Err是内部错误，仅记录到日志，不返回给客户端
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"error"`
	Err     error  `json:"-"`

	// base 指向派生出本错误的预定义错误，供errors.Is匹配
	base *AppError
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 同一预定义错误派生出的错误视为相等
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e == t || (e.base != nil && e.base == t)
}

// WithMessage 基于预定义错误生成一条带具体信息的错误
// 例如：product.ErrInsufficientStock.WithMessage("商品A库存不足")
func (e *AppError) WithMessage(message string) *AppError {
	base := e
	if e.base != nil {
		base = e.base
	}
	return &AppError{
		Status:  e.Status,
		Code:    e.Code,
		Message: message,
		Err:     e.Err,
		base:    base,
	}
}

// WithMessagef 格式化版本的WithMessage
func (e *AppError) WithMessagef(format string, args ...interface{}) *AppError {
	return e.WithMessage(fmt.Sprintf(format, args...))
}

// =========================================
// 错误码定义
// =========================================

const (
	CodeBadRequest      = "bad_request"
	CodeValidation      = "validation_error"
	CodeDomain          = "domain_error"
	CodeUnauthorized    = "unauthorized"
	CodeForbidden       = "forbidden"
	CodeNotFound        = "not_found"
	CodeConflict        = "conflict"
	CodeTooManyRequests = "rate_limit_exceeded"
	CodeInternal        = "internal_error"
)

// New 创建新的AppError
func New(status int, code, message string) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, CodeBadRequest, message)
}

func Validation(message string) *AppError {
	return New(http.StatusBadRequest, CodeValidation, message)
}

// Domain 业务规则校验失败
func Domain(message string) *AppError {
	return New(http.StatusBadRequest, CodeDomain, message)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, CodeUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, CodeForbidden, message)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, CodeNotFound, message)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, CodeConflict, message)
}

func TooManyRequests(message string) *AppError {
	return New(http.StatusTooManyRequests, CodeTooManyRequests, message)
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// =========================================
// 预定义错误
// =========================================

var (
	ErrInternal = Wrap(nil, "服务器内部错误")

	ErrUnauthorized = Unauthorized("请先登录")
	ErrInvalidToken = Unauthorized("无效的Token")
	ErrTokenExpired = Unauthorized("Token已过期")
	ErrTokenRevoked = Unauthorized("Token已失效，请重新登录")
	ErrForbidden    = Forbidden("无权限访问")

	ErrInvalidParams = Validation("参数错误")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "服务器内部错误")
}

// CodeOf 返回错误对应的机器可读错误码
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	return GetAppError(err).Code
}
