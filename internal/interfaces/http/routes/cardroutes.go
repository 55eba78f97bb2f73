package routes

import (
	"github.com/gin-gonic/gin"

	"cardly/internal/interfaces/http/handlers"
	"cardly/internal/interfaces/http/middleware"
)

// CardRouteConfig holds the configuration for card management routes
type CardRouteConfig struct {
	CardHandler      *handlers.CardHandler
	AnalyticsHandler *handlers.AnalyticsHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// SetupCardRoutes configures card routes shared by admins and card owners.
// Ownership is enforced by the use cases.
func SetupCardRoutes(engine *gin.Engine, config *CardRouteConfig) {
	cards := engine.Group("/cards")
	cards.Use(config.AuthMiddleware.RequireAuth())
	{
		cards.POST("", config.CardHandler.CreateCard)
		cards.GET("", config.CardHandler.ListCards)

		cards.GET("/:id", config.CardHandler.GetCard)
		cards.PATCH("/:id", config.CardHandler.UpdateCard)
		cards.DELETE("/:id", config.CardHandler.DeleteCard)
		cards.POST("/:id/toggle-status", config.CardHandler.ToggleStatus)
		cards.GET("/:id/analytics", config.AnalyticsHandler.CardAnalytics)
		cards.GET("/:id/activations/export", config.AnalyticsHandler.ExportActivations)
	}
}
