package handler

import (
	"barhub/internal/middleware"
	"barhub/internal/pkg/response"
	"barhub/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	svc *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) ListBars(c *gin.Context) {
	items, cursor, hasMore, err := h.svc.FindAllBars(c.Request.Context(), c.Query("status"), c.Query("cursor"), limitQuery(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OKPage(c, items, cursor, hasMore)
}

func (h *AdminHandler) ListActions(c *gin.Context) {
	items, cursor, hasMore, err := h.svc.FindAllActions(c.Request.Context(), c.Query("cursor"), limitQuery(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OKPage(c, items, cursor, hasMore)
}

func (h *AdminHandler) ApproveBar(c *gin.Context) {
	if err := h.svc.ApproveBar(c.Request.Context(), c.Param("barId"), middleware.UserID(c)); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, gin.H{"status": "active"})
}

func (h *AdminHandler) RejectBar(c *gin.Context) {
	var in struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, badBody(err))
		return
	}
	if err := h.svc.RejectBar(c.Request.Context(), c.Param("barId"), middleware.UserID(c), in.Reason); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, gin.H{"status": "rejected"})
}

func (h *AdminHandler) SuspendBar(c *gin.Context) {
	var in struct {
		Reason        string `json:"reason" binding:"required"`
		DurationHours int    `json:"durationHours" binding:"required,min=1,max=8760"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, badBody(err))
		return
	}
	if err := h.svc.SuspendBar(c.Request.Context(), c.Param("barId"), middleware.UserID(c), in.Reason, in.DurationHours); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, gin.H{"status": "suspended"})
}

func (h *AdminHandler) UnsuspendBar(c *gin.Context) {
	if err := h.svc.UnsuspendBar(c.Request.Context(), c.Param("barId"), middleware.UserID(c)); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, gin.H{"status": "active"})
}

func (h *AdminHandler) BanBar(c *gin.Context) {
	var in struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, badBody(err))
		return
	}
	if err := h.svc.BanBar(c.Request.Context(), c.Param("barId"), middleware.UserID(c), in.Reason); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, gin.H{"status": "permanently_banned"})
}

func (h *AdminHandler) CloseBar(c *gin.Context) {
	var in struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, badBody(err))
		return
	}
	if err := h.svc.CloseBar(c.Request.Context(), c.Param("barId"), middleware.UserID(c), in.Reason); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, gin.H{"status": "closed"})
}
