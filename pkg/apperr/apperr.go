package apperr

import (
	"errors"
	"fmt"
)

// Kind 错误分类，决定 HTTP 状态码与是否上报
type Kind int

const (
	KindFatal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "BadRequest"
	case KindUnauthorized:
		return "Unauthorized"
	case KindForbidden:
		return "Forbidden"
	case KindNotFound:
		return "NotFound"
	default:
		return "Fatal"
	}
}

// Error 业务错误。Resource 描述出错的对象（User、Notice …），Detail 为补充说明。
type Error struct {
	Kind     Kind
	Resource string
	Detail   string
	Err      error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Resource != "" {
		msg += ": " + e.Resource
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is 同 Kind 即视为相等，便于 errors.Is(err, apperr.ErrNotFound) 这类判断
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Resource == "" && t.Detail == "" && t.Err == nil
}

// 哨兵值，仅用于 errors.Is 比较
var (
	ErrFatal        = &Error{Kind: KindFatal}
	ErrBadRequest   = &Error{Kind: KindBadRequest}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
	ErrForbidden    = &Error{Kind: KindForbidden}
	ErrNotFound     = &Error{Kind: KindNotFound}
)

func BadRequest(resource, detail string) error {
	return &Error{Kind: KindBadRequest, Resource: resource, Detail: detail}
}

func Unauthorized(resource, detail string) error {
	return &Error{Kind: KindUnauthorized, Resource: resource, Detail: detail}
}

func Forbidden(resource, detail string) error {
	return &Error{Kind: KindForbidden, Resource: resource, Detail: detail}
}

func NotFound(resource, detail string) error {
	return &Error{Kind: KindNotFound, Resource: resource, Detail: detail}
}

// Fatal 包装存储层等不可恢复错误；已是 *Error 的直接透传
func Fatal(err error, format string, args ...any) error {
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	return &Error{Kind: KindFatal, Detail: fmt.Sprintf(format, args...), Err: err}
}

// KindOf 返回错误分类；非 *Error 一律视为 Fatal
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindFatal
}
