package handlers

import (
	"github.com/gin-gonic/gin"

	"vidshare/pkg/middleware"
)

// RegisterRoutes mounts the whole API on the given engine.
func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/signup", Signup)
	authGroup.POST("/login", Login)
	authGroup.GET("/me", middleware.RequireAuth(), Me)

	channels := api.Group("/channels")
	channels.GET("", ListChannels)
	channels.POST("/create", middleware.RequireAuth(), CreateChannel)
	channels.GET("/user/:userId", ListChannelsByUser)
	channels.GET("/:id", GetChannel)
	channels.PUT("/:id", middleware.RequireAuth(), UpdateChannel)
	channels.DELETE("/:id", middleware.RequireAuth(), DeleteChannel)

	videos := api.Group("/videos")
	videos.GET("", middleware.OptionalAuth(), ListVideos)
	videos.POST("", middleware.RequireAuth(), CreateVideo)
	videos.GET("/channel/:channelId", ListVideosByChannel)
	videos.GET("/user/:userId", middleware.RequireAuth(), ListVideosByUser)
	videos.GET("/:id", middleware.OptionalAuth(), GetVideo)
	videos.POST("/:id/view", middleware.OptionalAuth(), RecordView)
	videos.PUT("/:id", middleware.RequireAuth(), UpdateVideo)
	videos.DELETE("/:id", middleware.RequireAuth(), DeleteVideo)
	videos.POST("/:id/like", middleware.RequireAuth(), LikeVideo)
	videos.POST("/:id/dislike", middleware.RequireAuth(), DislikeVideo)

	comments := api.Group("/comments")
	comments.POST("", middleware.RequireAuth(), CreateComment)
	comments.GET("/video/:videoId", ListCommentsByVideo)
	comments.PUT("/:commentId", middleware.RequireAuth(), UpdateComment)
	comments.DELETE("/:commentId", middleware.RequireAuth(), DeleteComment)

	api.POST("/uploads", middleware.RequireAuth(), UploadAsset)
}
