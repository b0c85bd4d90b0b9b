package handler

import "barhub/internal/pkg/errs"

// badBody 请求体绑定失败统一转 BAD_REQUEST
func badBody(err error) error {
	return errs.Wrap(errs.CodeBadRequest, "invalid request body", err)
}
