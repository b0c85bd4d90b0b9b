package handler

import (
	"barhub/internal/middleware"
	"barhub/internal/pkg/response"
	"barhub/internal/service"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	svc *service.UploadService
}

func NewUploadHandler(svc *service.UploadService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

func (h *UploadHandler) Presign(c *gin.Context) {
	var in service.PresignInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, badBody(err))
		return
	}
	response.OK(c, h.svc.Presign(c.Request.Context(), in, middleware.UserID(c)))
}
