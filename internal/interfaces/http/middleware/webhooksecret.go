package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"cardly/internal/shared/constants"
	"cardly/internal/shared/logger"
	"cardly/internal/shared/utils"
)

// WebhookSecret rejects requests whose X-Webhook-Secret header does not match secret.
// An empty secret disables the endpoint entirely.
func WebhookSecret(secret string, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			utils.ErrorResponse(c, http.StatusServiceUnavailable, "webhook not configured")
			c.Abort()
			return
		}
		got := c.GetHeader(constants.HeaderWebhookSecret)
		if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			log.Warnw("webhook rejected", "client_ip", c.ClientIP(), "path", c.Request.URL.Path)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid webhook secret")
			c.Abort()
			return
		}
		c.Next()
	}
}
