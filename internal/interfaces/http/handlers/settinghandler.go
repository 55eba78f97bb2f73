package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cardly/internal/application/setting/dto"
	"cardly/internal/application/setting/usecases"
	"cardly/internal/shared/logger"
	"cardly/internal/shared/utils"
)

type SettingHandler struct {
	getUC    *usecases.GetSettingsUseCase
	updateUC *usecases.UpdateSettingUseCase
	logger   logger.Interface
}

func NewSettingHandler(getUC *usecases.GetSettingsUseCase, updateUC *usecases.UpdateSettingUseCase, logger logger.Interface) *SettingHandler {
	return &SettingHandler{
		getUC:    getUC,
		updateUC: updateUC,
		logger:   logger,
	}
}

// ListSettings handles GET /admin/settings
func (h *SettingHandler) ListSettings(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	result, err := h.getUC.Execute(c.Request.Context(), actor)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateSetting handles PUT /admin/settings/:key
func (h *SettingHandler) UpdateSetting(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.UpdateSettingRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateSettingCommand{
		Actor: actor,
		Key:   c.Param("key"),
		Value: req.Value,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Setting updated successfully", result)
}
