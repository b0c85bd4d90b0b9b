package handler

import (
	"strconv"

	"barhub/internal/middleware"
	"barhub/internal/pkg/response"
	"barhub/internal/service"

	"github.com/gin-gonic/gin"
)

type BarHandler struct {
	svc *service.BarService
}

func NewBarHandler() *BarHandler {
	return &BarHandler{svc: service.NewBarService()}
}

func limitQuery(c *gin.Context) int {
	n, _ := strconv.Atoi(c.Query("limit"))
	return n
}

func (h *BarHandler) Create(c *gin.Context) {
	var in service.CreateBarInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, badBody(err))
		return
	}
	bar, err := h.svc.Create(c.Request.Context(), in, middleware.UserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, bar)
}

func (h *BarHandler) List(c *gin.Context) {
	items, cursor, hasMore, err := h.svc.FindAll(c.Request.Context(), c.Query("cursor"), limitQuery(c), middleware.UserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OKPage(c, items, cursor, hasMore)
}

func (h *BarHandler) Get(c *gin.Context) {
	detail, err := h.svc.FindOne(c.Request.Context(), c.Param("barId"), middleware.UserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, detail)
}

func (h *BarHandler) Update(c *gin.Context) {
	var in service.UpdateBarInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, badBody(err))
		return
	}
	bar, err := h.svc.Update(c.Request.Context(), c.Param("barId"), in, middleware.UserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, bar)
}

func (h *BarHandler) Join(c *gin.Context) {
	member, err := h.svc.Join(c.Request.Context(), c.Param("barId"), middleware.UserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, member)
}

func (h *BarHandler) Leave(c *gin.Context) {
	if err := h.svc.Leave(c.Request.Context(), c.Param("barId"), middleware.UserID(c)); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, gin.H{"left": true})
}

func (h *BarHandler) Members(c *gin.Context) {
	items, cursor, hasMore, err := h.svc.GetMembers(
		c.Request.Context(), c.Param("barId"), middleware.UserID(c),
		c.Query("cursor"), limitQuery(c), c.Query("role"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OKPage(c, items, cursor, hasMore)
}

func (h *BarHandler) ChangeRole(c *gin.Context) {
	var in struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, badBody(err))
		return
	}
	member, err := h.svc.ChangeRole(c.Request.Context(), c.Param("barId"), c.Param("userId"), in.Role, middleware.UserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, member)
}

func (h *BarHandler) TransferOwnership(c *gin.Context) {
	var in struct {
		TargetUserID string `json:"targetUserId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, badBody(err))
		return
	}
	member, err := h.svc.TransferOwnership(c.Request.Context(), c.Param("barId"), in.TargetUserID, middleware.UserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, member)
}
