package errcode

import "fmt"

// Err 业务错误，code用于给前端分类，msg直接展示
type Err struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func (e *Err) Error() string {
	return fmt.Sprintf("code: %d, msg: %s", e.Code, e.Msg)
}

func NewErr(code int, msg string) *Err {
	return &Err{Code: code, Msg: msg}
}

func NewCustomErr(msg string) *Err {
	return NewErr(CodeCustom, msg)
}

const (
	CodeOK               = 200
	CodeCustom           = 10000
	CodeInvalidParams    = 10001
	CodeNotFound         = 10002
	CodeForbidden        = 10003
	CodeAlreadyCompleted = 10004
	CodeTimeout          = 10005
	CodeFatal            = 10500
)

var (
	NoErr               = NewErr(CodeOK, "success")
	ErrInvalidParams    = NewErr(CodeInvalidParams, "invalid params")
	ErrNotFound         = NewErr(CodeNotFound, "record not found")
	ErrForbidden        = NewErr(CodeForbidden, "forbidden")
	ErrAlreadyCompleted = NewErr(CodeAlreadyCompleted, "already completed")
	ErrTimeout          = NewErr(CodeTimeout, "confirmation timeout")
	ErrFatal            = NewErr(CodeFatal, "internal error")
)

// NewInvalidParamsErr 带详细原因的参数错误
func NewInvalidParamsErr(msg string) *Err {
	return NewErr(CodeInvalidParams, msg)
}

func NewNotFoundErr(msg string) *Err {
	return NewErr(CodeNotFound, msg)
}

func NewForbiddenErr(msg string) *Err {
	return NewErr(CodeForbidden, msg)
}

// ParseErr 从error还原业务错误，非业务错误一律按Fatal处理
func ParseErr(err error) *Err {
	if err == nil {
		return NoErr
	}
	if e, ok := err.(*Err); ok {
		return e
	}
	return NewErr(CodeFatal, err.Error())
}

// Is 判断error是否属于某个业务错误码
func Is(err error, code int) bool {
	e, ok := err.(*Err)
	return ok && e.Code == code
}
