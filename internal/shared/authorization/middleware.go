package authorization

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cardly/internal/shared/constants"
	"cardly/internal/shared/utils"
)

// ActorFromContext returns the actor set by the auth middleware.
func ActorFromContext(c *gin.Context) (Actor, bool) {
	userID, ok := c.Get(constants.ContextKeyUserID)
	if !ok {
		return Actor{}, false
	}
	id, ok := userID.(uint)
	if !ok || id == 0 {
		return Actor{}, false
	}
	return Actor{
		UserID: id,
		Role:   ParseUserRole(c.GetString(constants.ContextKeyUserRole)),
	}, true
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, constants.ErrMsgUnauthorized)
			c.Abort()
			return
		}
		if !actor.IsAdmin() {
			utils.ErrorResponse(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
