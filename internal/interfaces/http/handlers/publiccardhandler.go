package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cardly/internal/application/card/usecases"
	"cardly/internal/shared/logger"
	"cardly/internal/shared/utils"
)

// PublicCardHandler serves cards to anonymous visitors. Every successful view is counted.
type PublicCardHandler struct {
	viewUC *usecases.ViewPublicCardUseCase
	logger logger.Interface
}

func NewPublicCardHandler(viewUC *usecases.ViewPublicCardUseCase, logger logger.Interface) *PublicCardHandler {
	return &PublicCardHandler{
		viewUC: viewUC,
		logger: logger,
	}
}

// ViewCard handles GET /c/:lookup where lookup is a slug or a legacy numeric code.
func (h *PublicCardHandler) ViewCard(c *gin.Context) {
	result, err := h.viewUC.Execute(c.Request.Context(), usecases.RecordViewCommand{
		Lookup: c.Param("lookup"),
		Meta:   requestMeta(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	utils.SuccessResponse(c, http.StatusOK, "", result)
}
