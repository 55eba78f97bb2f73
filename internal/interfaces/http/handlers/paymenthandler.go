package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cardly/internal/application/payment/usecases"
	"cardly/internal/shared/logger"
	"cardly/internal/shared/utils"
)

// PaymentWebhookRequest is the provider-neutral payload accepted on the webhook.
type PaymentWebhookRequest struct {
	Code          string `json:"code" binding:"required"`
	Status        string `json:"status" binding:"required"`
	Method        string `json:"method"`
	ReferenceID   string `json:"reference_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

type PaymentHandler struct {
	completedUC *usecases.HandlePaymentCompletedUseCase
	logger      logger.Interface
}

func NewPaymentHandler(completedUC *usecases.HandlePaymentCompletedUseCase, logger logger.Interface) *PaymentHandler {
	return &PaymentHandler{
		completedUC: completedUC,
		logger:      logger,
	}
}

// HandleWebhook handles POST /webhooks/payments
func (h *PaymentHandler) HandleWebhook(c *gin.Context) {
	var req PaymentWebhookRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid payment webhook payload", "error", err, "ip", c.ClientIP())
		utils.ErrorResponseWithError(c, err)
		return
	}

	outcome, err := h.completedUC.Execute(c.Request.Context(), usecases.PaymentCompletedEvent{
		Code:          req.Code,
		Status:        req.Status,
		Method:        req.Method,
		ReferenceID:   req.ReferenceID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"outcome": outcome})
}
