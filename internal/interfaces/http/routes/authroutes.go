package routes

import (
	"github.com/gin-gonic/gin"

	"cardly/internal/interfaces/http/handlers"
	"cardly/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds the configuration for login and self-service routes
type AuthRouteConfig struct {
	AuthHandler      *handlers.AuthHandler
	UserHandler      *handlers.UserHandler
	AnalyticsHandler *handlers.AnalyticsHandler
	AuthMiddleware   *middleware.AuthMiddleware
	LoginRateLimiter *middleware.RateLimiter
}

func SetupAuthRoutes(engine *gin.Engine, config *AuthRouteConfig) {
	auth := engine.Group("/auth")
	{
		auth.POST("/login", config.LoginRateLimiter.Limit(), config.AuthHandler.Login)
	}

	me := engine.Group("/me")
	me.Use(config.AuthMiddleware.RequireAuth())
	{
		me.GET("", config.UserHandler.GetCurrentUser)
		me.GET("/stats", config.AnalyticsHandler.MyStats)
	}
}
