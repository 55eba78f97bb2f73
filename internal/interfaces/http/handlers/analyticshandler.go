package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cardly/internal/application/analytics/usecases"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/logger"
	"cardly/internal/shared/utils"
)

type AnalyticsHandler struct {
	cardUC   *usecases.CardAnalyticsUseCase
	userUC   *usecases.UserStatsUseCase
	exportUC *usecases.ExportActivationsUseCase
	logger   logger.Interface
}

func NewAnalyticsHandler(
	cardUC *usecases.CardAnalyticsUseCase,
	userUC *usecases.UserStatsUseCase,
	exportUC *usecases.ExportActivationsUseCase,
	logger logger.Interface,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		cardUC:   cardUC,
		userUC:   userUC,
		exportUC: exportUC,
		logger:   logger,
	}
}

// CardAnalytics handles GET /cards/:id/analytics
func (h *AnalyticsHandler) CardAnalytics(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	cardID, err := utils.ParseUintParam(c, "id", "card")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.cardUC.Execute(c.Request.Context(), actor, cardID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ExportActivations handles GET /cards/:id/activations/export
func (h *AnalyticsHandler) ExportActivations(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	cardID, err := utils.ParseUintParam(c, "id", "card")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	file, err := h.exportUC.Execute(c.Request.Context(), actor, cardID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	sendFile(c, file)
}

// UserStats handles GET /admin/users/:id/stats
func (h *AnalyticsHandler) UserStats(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	userID, err := utils.ParseUintParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	h.writeUserStats(c, actor, userID)
}

// MyStats handles GET /me/stats
func (h *AnalyticsHandler) MyStats(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	h.writeUserStats(c, actor, actor.UserID)
}

func (h *AnalyticsHandler) writeUserStats(c *gin.Context, actor authorization.Actor, userID uint) {
	result, err := h.userUC.Execute(c.Request.Context(), actor, userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}
