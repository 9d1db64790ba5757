package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solemart/solemart/internal/domain/model"
	"github.com/solemart/solemart/internal/domain/repository"
	"github.com/solemart/solemart/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body"})
		return
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), CurrentUserID(c), req.ToInput())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	page := QueryInt(c, "page", 1)
	limit := QueryInt(c, "limit", 10)
	orders, total, err := h.facade.Orders(c.Request.Context(), CurrentUserID(c), page, limit)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(orders, total, page, limit))
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, ok := PathID(c, "id")
	if !ok {
		return
	}
	order, err := h.facade.Order(c.Request.Context(), CurrentUserID(c), IsAdmin(c), orderID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Cancel handles PUT /api/orders/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	orderID, ok := PathID(c, "id")
	if !ok {
		return
	}
	order, err := h.facade.CancelOrder(c.Request.Context(), CurrentUserID(c), orderID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// ListAll handles GET /api/orders/admin/all. Admin only.
func (h *OrderHandler) ListAll(c *gin.Context) {
	filter := repository.OrderFilter{
		Status:        model.OrderStatus(c.Query("status")),
		PaymentStatus: model.PaymentStatus(c.Query("paymentStatus")),
		Page:          QueryInt(c, "page", 1),
		Limit:         QueryInt(c, "limit", 20),
	}
	orders, total, err := h.facade.AllOrders(c.Request.Context(), filter)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(orders, total, filter.Page, filter.Limit))
}

// Stats handles GET /api/orders/admin/stats. Admin only.
func (h *OrderHandler) Stats(c *gin.Context) {
	stats, err := h.facade.OrderStats(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	response := make([]dto.OrderStatsResponse, 0, len(stats))
	for _, s := range stats {
		response = append(response, dto.OrderStatsResponse{
			Status:     string(s.Status),
			Count:      s.Count,
			TotalValue: s.TotalValue,
		})
	}
	c.JSON(http.StatusOK, response)
}

// UpdateStatus handles PUT /api/orders/:id/status. Admin only.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, ok := PathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body"})
		return
	}

	order, err := h.facade.UpdateOrderStatus(
		c.Request.Context(),
		orderID,
		model.OrderStatus(req.Status),
		req.Note,
		req.Tracking,
		req.EstimatedDelivery,
	)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
