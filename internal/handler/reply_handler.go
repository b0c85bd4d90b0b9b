package handler

import (
	"barhub/internal/middleware"
	"barhub/internal/model"
	"barhub/internal/pkg/response"
	"barhub/internal/service"

	"github.com/gin-gonic/gin"
)

type ReplyHandler struct {
	svc   *service.ReplyService
	likes *service.LikeService
}

func NewReplyHandler() *ReplyHandler {
	return &ReplyHandler{
		svc:   service.NewReplyService(),
		likes: service.NewLikeService(),
	}
}

func (h *ReplyHandler) Create(c *gin.Context) {
	var in service.CreateReplyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, badBody(err))
		return
	}
	reply, err := h.svc.Create(c.Request.Context(), c.Param("postId"), in, middleware.UserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, reply)
}

func (h *ReplyHandler) ListByPost(c *gin.Context) {
	items, cursor, hasMore, err := h.svc.FindByPost(
		c.Request.Context(), c.Param("postId"), middleware.UserID(c), c.Query("cursor"), limitQuery(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OKPage(c, items, cursor, hasMore)
}

func (h *ReplyHandler) Children(c *gin.Context) {
	items, cursor, hasMore, err := h.svc.FindChildren(
		c.Request.Context(), c.Param("replyId"), middleware.UserID(c), c.Query("cursor"), limitQuery(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OKPage(c, items, cursor, hasMore)
}

func (h *ReplyHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("replyId"), middleware.UserID(c)); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

func (h *ReplyHandler) Hide(c *gin.Context) {
	reply, err := h.svc.Hide(c.Request.Context(), c.Param("replyId"), middleware.UserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, reply)
}

func (h *ReplyHandler) Unhide(c *gin.Context) {
	reply, err := h.svc.Unhide(c.Request.Context(), c.Param("replyId"), middleware.UserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, reply)
}

func (h *ReplyHandler) Like(c *gin.Context) {
	result, err := h.likes.Like(c.Request.Context(), middleware.UserID(c), model.LikeTargetReply, c.Param("replyId"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, result)
}

func (h *ReplyHandler) Unlike(c *gin.Context) {
	result, err := h.likes.Unlike(c.Request.Context(), middleware.UserID(c), model.LikeTargetReply, c.Param("replyId"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, result)
}
