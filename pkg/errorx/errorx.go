package errorx

import (
	"errors"
	"fmt"
)

// CodeError 带业务错误码的自定义错误
// 实现了 error 接口，支持 %w 包装底层错误，且能被 errors.Is/errors.As 识别
type CodeError struct {
	Code  int    // 业务错误码
	Msg   string // 错误消息（可直接展示给用户）
	cause error  // 被包装的底层错误
}

// Error 实现 Go 标准 error 接口
// 当存在底层错误时，返回格式为 "消息: 底层错误"；否则仅返回消息
func (e *CodeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.cause)
	}
	return e.Msg
}

// Unwrap 实现 errors.Unwrap 接口，支持 errors.Is/errors.As 向下追溯
func (e *CodeError) Unwrap() error {
	return e.cause
}

// Is 按错误码比较，使 errors.Is(err, errorx.ErrEventFull) 这类判断成立
func (e *CodeError) Is(target error) bool {
	var t *CodeError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// New 创建一个新的 CodeError
func New(code int, msg string) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  msg,
	}
}

// Newf 创建一个带格式化消息的 CodeError
func Newf(code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// Wrap 包装底层错误，添加业务错误码和消息
// 用法: errorx.Wrap(err, CodeNotFound, "活动不存在")
func Wrap(err error, code int, msg string) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   msg,
		cause: err,
	}
}

// Wrapf 包装底层错误，支持格式化消息
// 用法: errorx.Wrapf(err, CodeNotFound, "活动 %d 不存在", eventId)
func Wrapf(err error, code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   fmt.Sprintf(format, args...),
		cause: err,
	}
}

// GetCode 从错误中提取业务错误码，如果不是 CodeError 则返回默认码
func GetCode(err error) int {
	var codeErr *CodeError
	if errors.As(err, &codeErr) {
		return codeErr.Code
	}
	return CodeServerBusy // 默认返回服务繁忙
}

// 业务状态码常量定义
const (
	CodeSuccess      = 1000 // 成功
	CodeInvalidParam = 1001 // 请求参数错误（InvalidInput）
	CodeUserExist    = 1002 // 用户已存在（DuplicateUser）
	CodeAuthFailed   = 1004 // 用户名或密码错误（AuthFailed）
	CodeServerBusy   = 1005 // 服务繁忙
	CodeUnauthorized = 1006 // 未登录/会话失效
	CodeEventFull    = 1007 // 活动已满员
	CodeNotFound     = 1008 // 资源不存在
	CodeDuplicate    = 1009 // 唯一约束冲突
	CodeDBError      = 1010 // 数据库错误
	CodeCacheError   = 1011 // 缓存错误
)

// 预定义常用错误实例
// 这些实例既可直接返回，也可用于 errors.Is 比较
var (
	ErrInvalidParam = New(CodeInvalidParam, "Username and password are required.")
	ErrPasswordLong = New(CodeInvalidParam, "Password must be at most 72 bytes.")
	ErrUserExist    = New(CodeUserExist, "User already exists!")
	ErrAuthFailed   = New(CodeAuthFailed, "Invalid username or password")
	ErrUnauthorized = New(CodeUnauthorized, "Please log in first.")
	ErrEventFull    = New(CodeEventFull, "This group is already full.")
	ErrNotFound     = New(CodeNotFound, "Not found")
	ErrServerBusy   = New(CodeServerBusy, "Server busy, please try again later.")
)

// IsNotFound 检查错误是否为"未找到"类型
func IsNotFound(err error) bool {
	return GetCode(err) == CodeNotFound
}

// IsDuplicate 检查错误是否为唯一约束冲突
func IsDuplicate(err error) bool {
	return GetCode(err) == CodeDuplicate
}
