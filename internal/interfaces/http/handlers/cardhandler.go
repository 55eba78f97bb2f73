package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cardly/internal/application/card/dto"
	"cardly/internal/application/card/usecases"
	"cardly/internal/shared/logger"
	"cardly/internal/shared/utils"
)

// CardHandler serves card management for admins and card owners.
type CardHandler struct {
	createUC *usecases.CreateCardUseCase
	updateUC *usecases.UpdateCardUseCase
	toggleUC *usecases.ToggleCardStatusUseCase
	deleteUC *usecases.DeleteCardUseCase
	getUC    *usecases.GetCardUseCase
	listUC   *usecases.ListCardsUseCase
	bulkUC   *usecases.BulkCardsUseCase
	logger   logger.Interface
}

type CardUseCases struct {
	Create *usecases.CreateCardUseCase
	Update *usecases.UpdateCardUseCase
	Toggle *usecases.ToggleCardStatusUseCase
	Delete *usecases.DeleteCardUseCase
	Get    *usecases.GetCardUseCase
	List   *usecases.ListCardsUseCase
	Bulk   *usecases.BulkCardsUseCase
}

func NewCardHandler(ucs CardUseCases, logger logger.Interface) *CardHandler {
	return &CardHandler{
		createUC: ucs.Create,
		updateUC: ucs.Update,
		toggleUC: ucs.Toggle,
		deleteUC: ucs.Delete,
		getUC:    ucs.Get,
		listUC:   ucs.List,
		bulkUC:   ucs.Bulk,
		logger:   logger,
	}
}

// CreateCard handles POST /cards
func (h *CardHandler) CreateCard(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreateCardRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create card", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateCardCommand{Actor: actor, Request: req})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Card created successfully")
}

// ListCards handles GET /cards
func (h *CardHandler) ListCards(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	ownerID, err := parseOptionalUintQuery(c, "owner_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	pagination := utils.ParsePagination(c)

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListCardsQuery{
		Actor:         actor,
		Search:        c.Query("search"),
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
		Plan:          c.Query("plan"),
		OwnerID:       ownerID,
		Page:          pagination.Page,
		PerPage:       pagination.PerPage,
		SortBy:        c.Query("sort_by"),
		SortOrder:     c.Query("sort_order"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PerPage)
}

// GetCard handles GET /cards/:id
func (h *CardHandler) GetCard(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	cardID, err := utils.ParseUintParam(c, "id", "card")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), actor, cardID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateCard handles PATCH /cards/:id
func (h *CardHandler) UpdateCard(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	cardID, err := utils.ParseUintParam(c, "id", "card")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req dto.UpdateCardRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for update card", "card_id", cardID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateCardCommand{
		Actor:   actor,
		CardID:  cardID,
		Request: req,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Card updated successfully", result)
}

// ToggleStatus handles POST /cards/:id/toggle-status
func (h *CardHandler) ToggleStatus(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	cardID, err := utils.ParseUintParam(c, "id", "card")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.toggleUC.Execute(c.Request.Context(), actor, cardID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Card status changed", result)
}

// DeleteCard handles DELETE /cards/:id
func (h *CardHandler) DeleteCard(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	cardID, err := utils.ParseUintParam(c, "id", "card")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), actor, cardID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

// BulkAction handles POST /admin/cards/bulk
func (h *CardHandler) BulkAction(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.BulkCardsRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.bulkUC.Execute(c.Request.Context(), usecases.BulkCardsCommand{
		Actor:  actor,
		IDs:    req.IDs,
		Action: req.Action,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Bulk action applied", result)
}
