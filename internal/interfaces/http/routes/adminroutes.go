package routes

import (
	"github.com/gin-gonic/gin"

	"cardly/internal/interfaces/http/handlers"
	"cardly/internal/interfaces/http/middleware"
	"cardly/internal/shared/authorization"
)

// AdminRouteConfig holds the configuration for admin routes
type AdminRouteConfig struct {
	UserHandler           *handlers.UserHandler
	CardHandler           *handlers.CardHandler
	ActivationCodeHandler *handlers.ActivationCodeHandler
	AnalyticsHandler      *handlers.AnalyticsHandler
	SettingHandler        *handlers.SettingHandler
	AuthMiddleware        *middleware.AuthMiddleware
}

// SetupAdminRoutes configures admin-only routes
func SetupAdminRoutes(engine *gin.Engine, config *AdminRouteConfig) {
	admin := engine.Group("/admin")
	admin.Use(config.AuthMiddleware.RequireAuth())
	admin.Use(authorization.RequireAdmin())

	users := admin.Group("/users")
	{
		users.POST("", config.UserHandler.CreateUser)
		users.GET("", config.UserHandler.ListUsers)

		// named paths before /:id
		users.GET("/export", config.UserHandler.ExportUsers)
		users.POST("/bulk", config.UserHandler.BulkAction)

		users.GET("/:id", config.UserHandler.GetUser)
		users.PATCH("/:id", config.UserHandler.UpdateUser)
		users.DELETE("/:id", config.UserHandler.DeleteUser)
		users.POST("/:id/toggle-status", config.UserHandler.ToggleStatus)
		users.GET("/:id/stats", config.AnalyticsHandler.UserStats)
	}

	admin.POST("/cards/bulk", config.CardHandler.BulkAction)

	codes := admin.Group("/codes")
	{
		codes.GET("", config.ActivationCodeHandler.ListCodes)
		codes.GET("/stats", config.ActivationCodeHandler.Stats)
		codes.POST("/seed", config.ActivationCodeHandler.SeedCodes)
		codes.POST("/:code/sell", config.ActivationCodeHandler.MarkSold)
	}

	settings := admin.Group("/settings")
	{
		settings.GET("", config.SettingHandler.ListSettings)
		settings.PUT("/:key", config.SettingHandler.UpdateSetting)
	}
}
