package main

import (
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *ImageAPIServer) SetupRoute() {
	s.route.Use(gin.Recovery())
	s.route.Use(sentrygin.New(sentrygin.Options{
		Repanic: true,
	}))

	s.route.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Content-Type", "X-User-Id"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	s.route.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": 1})
	})

	api := s.route.Group("/api", UserIdentity())

	api.POST("/images", s.UploadImage)
	api.GET("/images", s.ListImages)
	api.GET("/images/:id", s.GetImage)
	api.GET("/users/images", s.ListOwnImages)

	api.PUT("/images/:id/likes", s.ToggleLike)

	api.POST("/images/:id/comments", s.AddComment)
	api.GET("/images/:id/comments", s.ListComments)
	api.PUT("/images/:id/comments/:commentId", s.UpdateComment)
	api.DELETE("/images/:id/comments/:commentId", s.DeleteComment)
}
