package handler

import (
	"barhub/internal/middleware"
	"barhub/internal/pkg/response"
	"barhub/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) Register(c *gin.Context) {
	var in service.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, badBody(err))
		return
	}
	result, err := h.svc.Register(c.Request.Context(), in)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, result)
}

func (h *UserHandler) Login(c *gin.Context) {
	var in service.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, badBody(err))
		return
	}
	result, err := h.svc.Login(c.Request.Context(), in)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, result)
}

func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.svc.FindByID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var in service.UpdateProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, badBody(err))
		return
	}
	user, err := h.svc.UpdateProfile(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, user)
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var in service.ChangePasswordInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, badBody(err))
		return
	}
	if err := h.svc.ChangePassword(c.Request.Context(), middleware.UserID(c), in); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, gin.H{"changed": true})
}

func (h *UserHandler) MyPosts(c *gin.Context) {
	items, cursor, hasMore, err := h.svc.MyPosts(c.Request.Context(), middleware.UserID(c), c.Query("cursor"), limitQuery(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OKPage(c, items, cursor, hasMore)
}

func (h *UserHandler) MyReplies(c *gin.Context) {
	items, cursor, hasMore, err := h.svc.MyReplies(c.Request.Context(), middleware.UserID(c), c.Query("cursor"), limitQuery(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OKPage(c, items, cursor, hasMore)
}

func (h *UserHandler) MyBars(c *gin.Context) {
	items, cursor, hasMore, err := h.svc.MyBars(c.Request.Context(), middleware.UserID(c), c.Query("cursor"), limitQuery(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OKPage(c, items, cursor, hasMore)
}

func (h *UserHandler) MyCreatedBars(c *gin.Context) {
	items, cursor, hasMore, err := h.svc.MyCreatedBars(c.Request.Context(), middleware.UserID(c), c.Query("cursor"), limitQuery(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OKPage(c, items, cursor, hasMore)
}
