package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind 标记错误的类别，用于映射 HTTP 状态码
type Kind int

const (
	ConfigError Kind = iota
	MissingCredential
	TokenInvalid
	Unauthorized
	Forbidden
	Conflict
	ValidationError
	NotFound
	OperationFailed
	StoreError
	HashError
)

func (k Kind) String() string {
	switch k {
	case ConfigError:
		return "server misconfiguration"
	case MissingCredential:
		return "missing credential"
	case TokenInvalid:
		return "invalid token"
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	case Conflict:
		return "conflict"
	case ValidationError:
		return "validation error"
	case NotFound:
		return "not found"
	case OperationFailed:
		return "operation failed"
	case StoreError:
		return "store error"
	case HashError:
		return "hash error"
	default:
		return "internal error"
	}
}

func (k Kind) HTTPStatus() int {
	switch k {
	case MissingCredential, TokenInvalid, Unauthorized, Forbidden:
		return http.StatusForbidden
	case Conflict:
		return http.StatusConflict
	case ValidationError, OperationFailed:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	default:
		// ConfigError / StoreError / HashError
		return http.StatusInternalServerError
	}
}

// Error 携带类别与对人类可读的描述
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

func Wrap(kind Kind, detail string, err error) *Error {
	return &Error{Kind: kind, Detail: detail, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Detail, e.Err)
	}
	return e.Detail
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf 提取错误的类别，对不是 *Error 的错误返回 false
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Message 是对外错误响应的统一 JSON 载荷
type Message struct {
	Message string `json:"message"`
}

// HTTP 将错误映射为状态码和对外的消息，5xx 不暴露内部细节
func HTTP(err error) (int, string) {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError, "internal server error"
	}

	status := e.Kind.HTTPStatus()
	if status >= http.StatusInternalServerError {
		return status, e.Kind.String()
	}
	return status, e.Detail
}
