package server

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/devzera/bear-blog/internal/database"
	"github.com/devzera/bear-blog/internal/feed"
	"github.com/devzera/bear-blog/internal/handlers"
	"github.com/devzera/bear-blog/internal/middleware"
)

type Server struct {
	db      database.Service
	handler *handlers.Handler
}

// NewServer creates and configures a new server
func NewServer() *http.Server {
	db := database.New()

	cache := feed.NewCache(cacheTTL())
	handler := handlers.NewHandler(db.GetDB(), cache)

	newServer := &Server{
		db:      db,
		handler: handler,
	}

	router := newServer.RegisterRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // local dev fallback
	}

	server := &http.Server{
		Addr:         "0.0.0.0:" + port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("Server starting on port %s", port)

	return server
}

// cacheTTL reads FEED_CACHE_TTL (seconds) with the 20s default.
func cacheTTL() time.Duration {
	if raw := os.Getenv("FEED_CACHE_TTL"); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return feed.DefaultTTL
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", s.handler.Auth.Register)
		api.POST("/login", s.handler.Auth.Login)

		// Feed routes (public reads)
		api.GET("/posts", s.handler.Feed.GetHomeFeed)
		api.GET("/groups", s.handler.Feed.GetGroups)
		api.GET("/groups/:slug/posts", s.handler.Feed.GetGroupFeed)

		// Post routes (public reads)
		api.GET("/posts/:id", s.handler.Post.GetPost)
		api.GET("/posts/:id/comments", s.handler.Comment.GetComments)

		// Profile varies with the viewer, so auth is optional here.
		api.GET("/users/:username", middleware.OptionalAuth(), s.handler.User.GetUserProfile)
		api.GET("/users/:username/followers", s.handler.User.GetFollowers)
		api.GET("/users/:username/following", s.handler.User.GetFollowing)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/me", s.handler.Auth.GetMe)

			protected.GET("/feed", s.handler.Feed.GetFollowFeed)

			protected.POST("/posts", s.handler.Post.CreatePost)
			protected.PUT("/posts/:id", s.handler.Post.UpdatePost)
			protected.DELETE("/posts/:id", s.handler.Post.DeletePost)

			protected.POST("/posts/:id/comments", s.handler.Comment.CreateComment)

			protected.PUT("/users/:username", s.handler.User.UpdateUserProfile)
			protected.POST("/users/:username/follow", s.handler.User.FollowUser)
			protected.DELETE("/users/:username/follow", s.handler.User.UnfollowUser)
		}
	}

	return r
}
