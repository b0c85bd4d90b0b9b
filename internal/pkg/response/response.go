package response

import (
	"errors"
	"net/http"

	"barhub/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// 统一响应信封 { data, meta, error }，error 成功时为 null

type ErrorBody struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

type Meta struct {
	Cursor  *string `json:"cursor"`
	HasMore bool    `json:"hasMore"`
}

type Envelope struct {
	Data  any        `json:"data"`
	Meta  *Meta      `json:"meta"`
	Error *ErrorBody `json:"error"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Data: data})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Envelope{Data: data})
}

// OKPage 分页响应；cursor 为空串时序列化为 null
func OKPage(c *gin.Context, data any, cursor string, hasMore bool) {
	meta := &Meta{HasMore: hasMore}
	if cursor != "" {
		meta.Cursor = &cursor
	}
	c.JSON(http.StatusOK, Envelope{Data: data, Meta: meta})
}

func Fail(c *gin.Context, err error) {
	var ae *errs.AppError
	if !errors.As(err, &ae) {
		ae = errs.Wrap(errs.CodeInternal, "internal error", err)
	}
	c.JSON(statusOf(ae.Code), Envelope{Error: &ErrorBody{Code: ae.Code, Message: ae.Message}})
}

func Abort(c *gin.Context, err error) {
	Fail(c, err)
	c.Abort()
}

func statusOf(code errs.Code) int {
	switch code {
	case errs.CodeBadRequest:
		return http.StatusBadRequest
	case errs.CodeUnauthorized:
		return http.StatusUnauthorized
	case errs.CodeForbidden:
		return http.StatusForbidden
	case errs.CodeNotFound:
		return http.StatusNotFound
	case errs.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
