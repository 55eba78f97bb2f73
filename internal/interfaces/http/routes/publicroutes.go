package routes

import (
	"github.com/gin-gonic/gin"

	"cardly/internal/interfaces/http/handlers"
	"cardly/internal/interfaces/http/middleware"
)

// PublicRouteConfig holds the configuration for unauthenticated routes
type PublicRouteConfig struct {
	HealthHandler     *handlers.HealthHandler
	PublicCardHandler *handlers.PublicCardHandler
	ViewRateLimiter   *middleware.RateLimiter
}

// SetupPublicRoutes configures the health probe and the public card page
func SetupPublicRoutes(engine *gin.Engine, config *PublicRouteConfig) {
	engine.GET("/health", config.HealthHandler.Health)
	engine.GET("/c/:lookup", config.ViewRateLimiter.Limit(), config.PublicCardHandler.ViewCard)
}
