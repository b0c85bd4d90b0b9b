package router

import (
	"barhub/internal/config"
	"barhub/internal/handler"
	"barhub/internal/middleware"
	"barhub/internal/pkg"
	"barhub/internal/service"

	"github.com/gin-gonic/gin"
)

func InitRouter(cfg *config.Config, producer service.EventProducer) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORS(cfg.CORSOrigins))

	issuer := pkg.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	userSvc := service.NewUserService(issuer)

	user := handler.NewUserHandler(userSvc)
	bar := handler.NewBarHandler()
	post := handler.NewPostHandler()
	reply := handler.NewReplyHandler()
	admin := handler.NewAdminHandler(service.NewAdminService(producer))
	upload := handler.NewUploadHandler(service.NewUploadService(cfg.S3Endpoint, cfg.S3Bucket))

	auth := middleware.RequireAuth(userSvc, issuer)
	optional := middleware.OptionalAuth(userSvc, issuer)

	api := r.Group("/api")

	// 注册登录
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", user.Register)
		authGroup.POST("/login", user.Login)
		authGroup.GET("/me", auth, user.Me)
		authGroup.PATCH("/me", auth, user.UpdateProfile)
		authGroup.POST("/change-password", auth, user.ChangePassword)
	}

	// 吧
	barGroup := api.Group("/bars")
	{
		barGroup.GET("", optional, bar.List)
		barGroup.POST("", auth, bar.Create)
		barGroup.GET("/:barId", optional, bar.Get)
		barGroup.PATCH("/:barId", auth, bar.Update)
		barGroup.POST("/:barId/join", auth, bar.Join)
		barGroup.POST("/:barId/leave", auth, bar.Leave)
		barGroup.GET("/:barId/members", auth, bar.Members)
		barGroup.PATCH("/:barId/members/:userId/role", auth, bar.ChangeRole)
		barGroup.POST("/:barId/transfer-ownership", auth, bar.TransferOwnership)
	}

	// 帖子（列表与详情匿名可读）
	postGroup := api.Group("/posts")
	{
		postGroup.GET("", optional, post.List)
		postGroup.POST("", auth, post.Create)
		postGroup.GET("/:postId", optional, post.Get)
		postGroup.DELETE("/:postId", auth, post.Delete)
		postGroup.POST("/:postId/hide", auth, post.Hide)
		postGroup.POST("/:postId/unhide", auth, post.Unhide)
		postGroup.POST("/:postId/share", optional, post.Share)
		postGroup.POST("/:postId/like", auth, post.Like)
		postGroup.DELETE("/:postId/like", auth, post.Unlike)
		postGroup.POST("/:postId/favorite", auth, post.Favorite)
		postGroup.DELETE("/:postId/favorite", auth, post.Unfavorite)
		postGroup.GET("/:postId/replies", optional, reply.ListByPost)
		postGroup.POST("/:postId/replies", auth, reply.Create)
	}

	// 回复
	replyGroup := api.Group("/replies")
	{
		replyGroup.GET("/:replyId/children", optional, reply.Children)
		replyGroup.DELETE("/:replyId", auth, reply.Delete)
		replyGroup.POST("/:replyId/hide", auth, reply.Hide)
		replyGroup.POST("/:replyId/unhide", auth, reply.Unhide)
		replyGroup.POST("/:replyId/like", auth, reply.Like)
		replyGroup.DELETE("/:replyId/like", auth, reply.Unlike)
	}

	// 个人中心
	meGroup := api.Group("/users/me")
	meGroup.Use(auth)
	{
		meGroup.GET("/posts", user.MyPosts)
		meGroup.GET("/replies", user.MyReplies)
		meGroup.GET("/bars", user.MyBars)
		meGroup.GET("/created-bars", user.MyCreatedBars)
	}

	// 上传
	api.POST("/uploads/presign", auth, upload.Presign)

	// 管理端
	adminGroup := api.Group("/admin")
	adminGroup.Use(auth, middleware.RequireAdmin())
	{
		adminGroup.GET("/bars", admin.ListBars)
		adminGroup.GET("/actions", admin.ListActions)
		adminGroup.POST("/bars/:barId/approve", admin.ApproveBar)
		adminGroup.POST("/bars/:barId/reject", admin.RejectBar)
		adminGroup.POST("/bars/:barId/suspend", admin.SuspendBar)
		adminGroup.POST("/bars/:barId/unsuspend", admin.UnsuspendBar)
		adminGroup.POST("/bars/:barId/ban", admin.BanBar)
		adminGroup.POST("/bars/:barId/close", admin.CloseBar)
	}

	return r
}
