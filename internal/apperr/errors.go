package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ==================== 错误分类 ====================

// Kind 错误类型
type Kind string

const (
	KindValidation          Kind = "validation"           // 入参缺失/为空，调用方问题，不重试
	KindMalformedResponse   Kind = "malformed_response"   // 模型返回中找不到可解析的 JSON
	KindSchemaViolation     Kind = "schema_violation"     // JSON 缺字段、越界或枚举非法
	KindProviderUnavailable Kind = "provider_unavailable" // 调用模型网络/传输失败
	KindPersistence         Kind = "persistence"          // 存储操作失败
	KindUnauthenticated     Kind = "unauthenticated"
	KindNotEntitled         Kind = "not_entitled"
	KindNotFound            Kind = "not_found"
)

// Error 带分类的业务错误
type Error struct {
	Kind    Kind
	Message string
	// Field 出错字段（validation 为入参名，schema_violation 为 JSON 路径）
	Field string
	Err   error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ==================== 构造函数 ====================

func Validation(field, msg string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: msg}
}

func MalformedResponse(msg string, err error) *Error {
	return &Error{Kind: KindMalformedResponse, Message: msg, Err: err}
}

func SchemaViolation(path, msg string) *Error {
	return &Error{Kind: KindSchemaViolation, Field: path, Message: msg}
}

func ProviderUnavailable(msg string, err error) *Error {
	return &Error{Kind: KindProviderUnavailable, Message: msg, Err: err}
}

func Persistence(msg string, err error) *Error {
	return &Error{Kind: KindPersistence, Message: msg, Err: err}
}

func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

func NotEntitled(msg string) *Error {
	return &Error{Kind: KindNotEntitled, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// ==================== 辅助函数 ====================

// KindOf 取出错误链上第一个 *Error 的分类，非业务错误返回空串
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind 判断错误分类
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus 错误分类对应的 HTTP 状态码
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindNotEntitled:
		return http.StatusPaymentRequired
	case KindNotFound:
		return http.StatusNotFound
	case KindMalformedResponse, KindSchemaViolation:
		return http.StatusBadGateway
	case KindProviderUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
