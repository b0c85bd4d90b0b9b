package handler

import (
	"barhub/internal/middleware"
	"barhub/internal/model"
	"barhub/internal/pkg/response"
	"barhub/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	svc       *service.PostService
	likes     *service.LikeService
	favorites *service.FavoriteService
}

func NewPostHandler() *PostHandler {
	return &PostHandler{
		svc:       service.NewPostService(),
		likes:     service.NewLikeService(),
		favorites: service.NewFavoriteService(),
	}
}

func (h *PostHandler) Create(c *gin.Context) {
	var in service.CreatePostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, badBody(err))
		return
	}
	post, err := h.svc.Create(c.Request.Context(), in, middleware.UserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, post)
}

func (h *PostHandler) List(c *gin.Context) {
	items, cursor, hasMore, err := h.svc.FindAll(c.Request.Context(), c.Query("barId"), c.Query("cursor"), limitQuery(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OKPage(c, items, cursor, hasMore)
}

func (h *PostHandler) Get(c *gin.Context) {
	detail, err := h.svc.FindOne(c.Request.Context(), c.Param("postId"), middleware.UserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, detail)
}

func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("postId"), middleware.UserID(c)); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

func (h *PostHandler) Hide(c *gin.Context) {
	post, err := h.svc.Hide(c.Request.Context(), c.Param("postId"), middleware.UserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, post)
}

func (h *PostHandler) Unhide(c *gin.Context) {
	post, err := h.svc.Unhide(c.Request.Context(), c.Param("postId"), middleware.UserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, post)
}

func (h *PostHandler) Share(c *gin.Context) {
	result, err := h.svc.Share(c.Request.Context(), c.Param("postId"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, result)
}

func (h *PostHandler) Like(c *gin.Context) {
	result, err := h.likes.Like(c.Request.Context(), middleware.UserID(c), model.LikeTargetPost, c.Param("postId"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, result)
}

func (h *PostHandler) Unlike(c *gin.Context) {
	result, err := h.likes.Unlike(c.Request.Context(), middleware.UserID(c), model.LikeTargetPost, c.Param("postId"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, result)
}

func (h *PostHandler) Favorite(c *gin.Context) {
	result, err := h.favorites.Favorite(c.Request.Context(), middleware.UserID(c), c.Param("postId"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, result)
}

func (h *PostHandler) Unfavorite(c *gin.Context) {
	result, err := h.favorites.Unfavorite(c.Request.Context(), middleware.UserID(c), c.Param("postId"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, result)
}
