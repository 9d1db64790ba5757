package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solemart/solemart/internal/adapter/gateway"
	"github.com/solemart/solemart/internal/server/http/dto"
	"github.com/solemart/solemart/internal/usecase"
)

// SignatureHeader carries the gateway's webhook signature.
const SignatureHeader = "Gateway-Signature"

// PaymentHandler integrates the storefront with the payment gateway.
type PaymentHandler struct {
	facade        CheckoutFacade
	webhookSecret string
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade CheckoutFacade, webhookSecret string) *PaymentHandler {
	return &PaymentHandler{facade: facade, webhookSecret: webhookSecret}
}

// CreateIntent handles POST /api/payments/create-intent.
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req dto.CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body"})
		return
	}

	items := make([]usecase.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecase.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Color:     item.Color,
		})
	}

	intent, err := h.facade.CreatePaymentIntent(c.Request.Context(), CurrentUserID(c), items)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.IntentResponse{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Amount:          intent.AmountCents,
		Currency:        intent.Currency,
	})
}

// Confirm handles POST /api/payments/confirm.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	var req dto.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body"})
		return
	}

	order, err := h.facade.ConfirmPayment(c.Request.Context(), CurrentUserID(c), req.PaymentIntentID, req.ToInput())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// Webhook handles POST /api/payments/webhook. The request is
// authenticated by its signature header, not a user token.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	event, err := gateway.ParseEvent(payload, c.GetHeader(SignatureHeader), h.webhookSecret)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.HandleGatewayEvent(c.Request.Context(), event); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// Refund handles POST /api/payments/refund.
func (h *PaymentHandler) Refund(c *gin.Context) {
	var req struct {
		OrderID int64 `json:"orderId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body"})
		return
	}

	order, err := h.facade.RefundOrder(c.Request.Context(), CurrentUserID(c), IsAdmin(c), req.OrderID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Methods handles GET /api/payments/methods.
func (h *PaymentHandler) Methods(c *gin.Context) {
	c.JSON(http.StatusOK, h.facade.PaymentMethods())
}
