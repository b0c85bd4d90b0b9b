package errs

import "fmt"

type Code string

const (
	CodeBadRequest   Code = "BAD_REQUEST"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeNotFound     Code = "NOT_FOUND"
	CodeConflict     Code = "CONFLICT"
	CodeInternal     Code = "INTERNAL"
)

// AppError 业务错误：service 层抛出，response 层映射为 HTTP 状态码
type AppError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

func BadRequest(msg string) *AppError   { return New(CodeBadRequest, msg) }
func Unauthorized(msg string) *AppError { return New(CodeUnauthorized, msg) }
func Forbidden(msg string) *AppError    { return New(CodeForbidden, msg) }
func NotFound(msg string) *AppError     { return New(CodeNotFound, msg) }
func Conflict(msg string) *AppError     { return New(CodeConflict, msg) }
func Internal(msg string) *AppError     { return New(CodeInternal, msg) }

func Conflictf(format string, args ...any) *AppError {
	return New(CodeConflict, fmt.Sprintf(format, args...))
}
