package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solemart/solemart/internal/domain/model"
	"github.com/solemart/solemart/internal/server/http/dto"
)

// UserHandler serves wishlist endpoints and the admin user listing.
type UserHandler struct {
	facade UserFacade
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(facade UserFacade) *UserHandler {
	return &UserHandler{facade: facade}
}

// Wishlist handles GET /api/users/wishlist.
func (h *UserHandler) Wishlist(c *gin.Context) {
	products, err := h.facade.Wishlist(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	c.JSON(http.StatusOK, products)
}

// AddToWishlist handles POST /api/users/wishlist/:productID.
func (h *UserHandler) AddToWishlist(c *gin.Context) {
	productID, ok := PathID(c, "productID")
	if !ok {
		return
	}
	if err := h.facade.AddToWishlist(c.Request.Context(), CurrentUserID(c), productID); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveFromWishlist handles DELETE /api/users/wishlist/:productID.
func (h *UserHandler) RemoveFromWishlist(c *gin.Context) {
	productID, ok := PathID(c, "productID")
	if !ok {
		return
	}
	if err := h.facade.RemoveFromWishlist(c.Request.Context(), CurrentUserID(c), productID); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListUsers handles GET /api/admin/users. Admin only.
func (h *UserHandler) ListUsers(c *gin.Context) {
	page := QueryInt(c, "page", 1)
	limit := QueryInt(c, "limit", 20)
	users, total, err := h.facade.Users(c.Request.Context(), page, limit)
	if err != nil {
		RespondError(c, err)
		return
	}

	response := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		response = append(response, toUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, dto.NewListResponse(response, total, page, limit))
}
