package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/solemart/solemart/internal/domain/model"
	"github.com/solemart/solemart/internal/server/http/dto"
)

// ProductHandler serves the public catalog and admin product management.
type ProductHandler struct {
	facade CatalogFacade
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(facade CatalogFacade) *ProductHandler {
	return &ProductHandler{facade: facade}
}

// List handles GET /api/products.
func (h *ProductHandler) List(c *gin.Context) {
	filter := model.ProductFilter{
		Category:    c.Query("category"),
		Subcategory: c.Query("subcategory"),
		Brand:       c.Query("brand"),
		Search:      c.Query("search"),
		SortBy:      c.Query("sort"),
		Page:        QueryInt(c, "page", 1),
		Limit:       QueryInt(c, "limit", 12),
	}
	if raw := c.Query("minPrice"); raw != "" {
		if price, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinPrice = &price
		}
	}
	if raw := c.Query("maxPrice"); raw != "" {
		if price, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = &price
		}
	}
	if raw := c.Query("featured"); raw != "" {
		featured := raw == "true"
		filter.Featured = &featured
	}

	products, total, err := h.facade.Products(c.Request.Context(), filter)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(products, total, filter.Page, filter.Limit))
}

// Get handles GET /api/products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	product, err := h.facade.Product(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Categories handles GET /api/products/categories/list.
func (h *ProductHandler) Categories(c *gin.Context) {
	categories, err := h.facade.Categories(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	c.JSON(http.StatusOK, categories)
}

// Create handles POST /api/products. Admin only.
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body"})
		return
	}

	product, err := h.facade.CreateProduct(c.Request.Context(), req.ToModel())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// Update handles PUT /api/products/:id. Admin only.
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body"})
		return
	}

	product := req.ToModel()
	product.ID = id
	updated, err := h.facade.UpdateProduct(c.Request.Context(), product)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/products/:id. Admin only.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	if err := h.facade.DeleteProduct(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
