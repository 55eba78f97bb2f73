package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	analyticsdto "cardly/internal/application/analytics/dto"
	"cardly/internal/domain/activationevent"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/constants"
	"cardly/internal/shared/errors"
	"cardly/internal/shared/utils"
)

// requireActor writes a 401 and returns false when the auth middleware set no user.
func requireActor(c *gin.Context) (authorization.Actor, bool) {
	actor, ok := authorization.ActorFromContext(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError(constants.ErrMsgUnauthorized))
		return authorization.Actor{}, false
	}
	return actor, true
}

func parseOptionalUintQuery(c *gin.Context, key string) (*uint, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return nil, errors.NewValidationError("invalid "+key, raw)
	}
	id := uint(n)
	return &id, nil
}

func requestMeta(c *gin.Context) activationevent.RequestMeta {
	return activationevent.RequestMeta{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Referrer:  c.GetHeader(constants.HeaderReferer),
	}
}

func sendFile(c *gin.Context, file *analyticsdto.ExportFile) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
