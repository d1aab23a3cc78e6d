// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"vidtube/internal/delivery/http/middleware"
	"vidtube/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler         *handler.UserHandler
	VideoHandler        *handler.VideoHandler
	CommentHandler      *handler.CommentHandler
	TweetHandler        *handler.TweetHandler
	PlaylistHandler     *handler.PlaylistHandler
	LikeHandler         *handler.LikeHandler
	SubscriptionHandler *handler.SubscriptionHandler
	ChannelHandler      *handler.ChannelHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler         *handler.UserHandler
	videoHandler        *handler.VideoHandler
	commentHandler      *handler.CommentHandler
	tweetHandler        *handler.TweetHandler
	playlistHandler     *handler.PlaylistHandler
	likeHandler         *handler.LikeHandler
	subscriptionHandler *handler.SubscriptionHandler
	channelHandler      *handler.ChannelHandler
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:         params.UserHandler,
		videoHandler:        params.VideoHandler,
		commentHandler:      params.CommentHandler,
		tweetHandler:        params.TweetHandler,
		playlistHandler:     params.PlaylistHandler,
		likeHandler:         params.LikeHandler,
		subscriptionHandler: params.SubscriptionHandler,
		channelHandler:      params.ChannelHandler,
		authMiddleware:      params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	authenticate := r.authMiddleware.Authenticate
	optionalAuth := r.authMiddleware.OptionalAuthenticate

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/refresh", r.userHandler.Refresh)
		authGroup.POST("/logout", r.userHandler.Logout, authenticate)
	}

	// Account routes for the authenticated caller
	meGroup := e.Group("/me", authenticate)
	{
		meGroup.GET("", r.userHandler.CurrentUser)
		meGroup.PATCH("", r.userHandler.UpdateProfile)
		meGroup.POST("/change-password", r.userHandler.ChangePassword)
		meGroup.GET("/history", r.channelHandler.WatchHistory)
		meGroup.GET("/liked-videos", r.channelHandler.LikedVideos)
		meGroup.GET("/subscriptions", r.subscriptionHandler.ListChannels)
	}

	// Video routes
	videoGroup := e.Group("/videos")
	{
		videoGroup.POST("", r.videoHandler.Publish, authenticate)
		videoGroup.GET("/:videoID", r.videoHandler.Get, optionalAuth)
		videoGroup.PATCH("/:videoID", r.videoHandler.Update, authenticate)
		videoGroup.DELETE("/:videoID", r.videoHandler.Delete, authenticate)
		videoGroup.POST("/:videoID/toggle-publish", r.videoHandler.TogglePublish, authenticate)
		videoGroup.POST("/:videoID/comments", r.commentHandler.Add, authenticate)
		videoGroup.GET("/:videoID/comments", r.commentHandler.List)
	}

	// Comment routes
	commentGroup := e.Group("/comments", authenticate)
	{
		commentGroup.PATCH("/:commentID", r.commentHandler.Update)
		commentGroup.DELETE("/:commentID", r.commentHandler.Delete)
	}

	// Tweet routes
	tweetGroup := e.Group("/tweets", authenticate)
	{
		tweetGroup.POST("", r.tweetHandler.Create)
		tweetGroup.PATCH("/:tweetID", r.tweetHandler.Update)
		tweetGroup.DELETE("/:tweetID", r.tweetHandler.Delete)
	}

	// Playlist routes
	playlistGroup := e.Group("/playlists")
	{
		playlistGroup.POST("", r.playlistHandler.Create, authenticate)
		playlistGroup.GET("/:playlistID", r.playlistHandler.Get)
		playlistGroup.PATCH("/:playlistID", r.playlistHandler.Update, authenticate)
		playlistGroup.DELETE("/:playlistID", r.playlistHandler.Delete, authenticate)
		playlistGroup.POST("/:playlistID/videos/:videoID", r.playlistHandler.AddVideo, authenticate)
		playlistGroup.DELETE("/:playlistID/videos/:videoID", r.playlistHandler.RemoveVideo, authenticate)
	}

	// Like routes over the generic (kind, target) relation
	likeGroup := e.Group("/likes")
	{
		likeGroup.POST("/:kind/:targetID/toggle", r.likeHandler.Toggle, authenticate)
		likeGroup.GET("/:kind/:targetID", r.likeHandler.State, optionalAuth)
	}

	// Subscription routes
	subscriptionGroup := e.Group("/subscriptions")
	{
		subscriptionGroup.POST("/:channelID/toggle", r.subscriptionHandler.Toggle, authenticate)
		subscriptionGroup.GET("/:channelID/subscribers", r.subscriptionHandler.ListSubscribers)
	}

	// Channel and per-user public listings
	channelGroup := e.Group("/channels")
	{
		channelGroup.GET("/:username", r.channelHandler.GetProfile, optionalAuth)
	}
	userGroup := e.Group("/users")
	{
		userGroup.GET("/:userID/videos", r.videoHandler.List)
		userGroup.GET("/:userID/tweets", r.tweetHandler.ListByOwner)
		userGroup.GET("/:userID/playlists", r.playlistHandler.ListByOwner)
	}
}
