package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solemart/solemart/internal/server/http/dto"
)

// CartHandler manages the authenticated user's cart.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.facade.Cart(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// AddItem handles POST /api/cart/items.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body"})
		return
	}

	cart, err := h.facade.AddCartItem(c.Request.Context(), CurrentUserID(c), req.ProductID, req.Size, req.Color, req.Quantity)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// UpdateItem handles PUT /api/cart/items/:itemID.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	itemID, ok := PathID(c, "itemID")
	if !ok {
		return
	}
	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body"})
		return
	}

	cart, err := h.facade.UpdateCartItem(c.Request.Context(), CurrentUserID(c), itemID, req.Quantity)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// RemoveItem handles DELETE /api/cart/items/:itemID.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	itemID, ok := PathID(c, "itemID")
	if !ok {
		return
	}
	cart, err := h.facade.RemoveCartItem(c.Request.Context(), CurrentUserID(c), itemID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.facade.ClearCart(c.Request.Context(), CurrentUserID(c)); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
