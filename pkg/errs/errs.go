package errs

import (
	"net/http"
)

// Kind 错误分类，按 HTTP 语义划分
type Kind int

const (
	KindValidation Kind = iota // 参数缺失或格式不对
	KindConflict               // 唯一性冲突
	KindAuth                   // 凭证错误、未授权、账号停用
	KindNotFound               // 资源不存在
	KindInternal               // 存储或逻辑异常，细节只记日志
)

// Error 业务错误
// Message 是面向用户的本地化文案，Err 是内部原因，不对外输出
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus 错误分类对应的 HTTP 状态码
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Auth(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Internal 包装意外错误，对外只给通用文案
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "حدث خطأ في الخادم", Err: err}
}
