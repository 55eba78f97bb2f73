package routes

import (
	"github.com/gin-gonic/gin"

	"cardly/internal/interfaces/http/handlers"
)

// WebhookRouteConfig holds the configuration for payment collaborator callbacks
type WebhookRouteConfig struct {
	PaymentHandler *handlers.PaymentHandler
	SecretCheck    gin.HandlerFunc
}

func SetupWebhookRoutes(engine *gin.Engine, config *WebhookRouteConfig) {
	webhooks := engine.Group("/webhooks")
	webhooks.Use(config.SecretCheck)
	{
		webhooks.POST("/payments", config.PaymentHandler.HandleWebhook)
	}
}
