package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/volunteerhub/volunteerhub-backend/internal/config"
	"github.com/volunteerhub/volunteerhub-backend/internal/handlers"
	"github.com/volunteerhub/volunteerhub-backend/internal/middleware"
	"github.com/volunteerhub/volunteerhub-backend/pkg/jwt"
	"go.uber.org/zap"
)

// HandlerDependencies collects the handlers wired in main
type HandlerDependencies struct {
	AuthHandler         *handlers.AuthHandler
	ProfileHandler      *handlers.ProfileHandler
	EventHandler        *handlers.EventHandler
	AssignmentHandler   *handlers.AssignmentHandler
	HistoryHandler      *handlers.HistoryHandler
	NotificationHandler *handlers.NotificationHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, tokens *jwt.Manager, logger *zap.Logger, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Public routes
	public := router.Group("/api")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
		}
	}

	// Protected routes
	protected := router.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware(tokens))
	{
		profiles := protected.Group("/profiles")
		{
			profiles.GET("/me", deps.ProfileHandler.GetMine)
			profiles.PUT("/me", deps.ProfileHandler.UpdateMine)
			profiles.GET("", middleware.RequireAdmin(), deps.ProfileHandler.GetAll)
			profiles.DELETE("/:userId", middleware.RequireAdmin(), deps.ProfileHandler.Delete)
		}

		events := protected.Group("/events")
		{
			events.GET("", deps.EventHandler.GetAll)
			events.GET("/:id", deps.EventHandler.GetByID)
			events.POST("", middleware.RequireAdmin(), deps.EventHandler.Create)
			events.PUT("/:id", middleware.RequireAdmin(), deps.EventHandler.Update)
			events.DELETE("/:id", middleware.RequireAdmin(), deps.EventHandler.Delete)
		}

		assignments := protected.Group("/assignments")
		{
			assignments.POST("", middleware.RequireAdmin(), deps.AssignmentHandler.Create)
			assignments.GET("/matches/:userId", middleware.RequireAdmin(), deps.AssignmentHandler.Matches)
			assignments.GET("/history", middleware.RequireAdmin(), deps.AssignmentHandler.ListAll)
			assignments.GET("/volunteers/:userId", deps.AssignmentHandler.ListForVolunteer)
			assignments.GET("/:id", deps.AssignmentHandler.GetByID)
			assignments.PATCH("/:id/status", deps.AssignmentHandler.UpdateStatus)
		}

		history := protected.Group("/history")
		{
			history.GET("/me", deps.HistoryHandler.GetMine)
		}

		notifications := protected.Group("/notifications")
		{
			notifications.GET("", deps.NotificationHandler.List)
			notifications.POST("", middleware.RequireAdmin(), deps.NotificationHandler.Create)
			notifications.PATCH("/:id/read", deps.NotificationHandler.MarkRead)
		}
	}

	return router
}
