package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cardly/internal/application/activationcode/usecases"
	"cardly/internal/domain/activationcode"
	"cardly/internal/shared/logger"
	"cardly/internal/shared/utils"
)

type ActivationCodeHandler struct {
	seedUC     *usecases.SeedPoolUseCase
	markSoldUC *usecases.MarkSoldUseCase
	listUC     *usecases.ListCodesUseCase
	statsUC    *usecases.CodeStatsUseCase
	logger     logger.Interface
}

func NewActivationCodeHandler(
	seedUC *usecases.SeedPoolUseCase,
	markSoldUC *usecases.MarkSoldUseCase,
	listUC *usecases.ListCodesUseCase,
	statsUC *usecases.CodeStatsUseCase,
	logger logger.Interface,
) *ActivationCodeHandler {
	return &ActivationCodeHandler{
		seedUC:     seedUC,
		markSoldUC: markSoldUC,
		listUC:     listUC,
		statsUC:    statsUC,
		logger:     logger,
	}
}

type SeedCodesRequest struct {
	Count       int    `json:"count" binding:"required,min=1"`
	Plan        string `json:"plan" binding:"required"`
	AmountCents *int64 `json:"amount_cents,omitempty" binding:"omitempty,min=0"`
	Currency    string `json:"currency,omitempty" binding:"omitempty,len=3"`
}

type MarkSoldRequest struct {
	CustomerName       string `json:"customer_name" binding:"required,max=120"`
	CustomerEmail      string `json:"customer_email" binding:"required,email"`
	CustomerPhone      string `json:"customer_phone,omitempty" binding:"omitempty,max=40"`
	PaymentMethod      string `json:"payment_method,omitempty" binding:"omitempty,max=40"`
	PaymentReferenceID string `json:"payment_reference_id,omitempty" binding:"omitempty,max=120"`
}

// SeedCodes handles POST /admin/codes/seed
func (h *ActivationCodeHandler) SeedCodes(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req SeedCodesRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.seedUC.Execute(c.Request.Context(), usecases.SeedPoolCommand{
		Actor:       actor,
		Count:       req.Count,
		Plan:        req.Plan,
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Activation codes created")
}

// MarkSold handles POST /admin/codes/:code/sell
func (h *ActivationCodeHandler) MarkSold(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req MarkSoldRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.markSoldUC.Execute(c.Request.Context(), usecases.MarkSoldCommand{
		Actor: actor,
		Code:  c.Param("code"),
		Customer: activationcode.CustomerInfo{
			Name:  req.CustomerName,
			Email: req.CustomerEmail,
			Phone: req.CustomerPhone,
		},
		Payment: activationcode.PaymentInfo{
			Method:      req.PaymentMethod,
			ReferenceID: req.PaymentReferenceID,
		},
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Activation code sold", result)
}

// ListCodes handles GET /admin/codes
func (h *ActivationCodeHandler) ListCodes(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	pagination := utils.ParsePagination(c)

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListCodesQuery{
		Actor:     actor,
		Status:    c.Query("status"),
		Plan:      c.Query("plan"),
		Search:    c.Query("search"),
		Page:      pagination.Page,
		PerPage:   pagination.PerPage,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PerPage)
}

// Stats handles GET /admin/codes/stats
func (h *ActivationCodeHandler) Stats(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	result, err := h.statsUC.Execute(c.Request.Context(), actor)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}
