package dto

import "github.com/solemart/solemart/internal/domain/model"

// ProductRequest describes the admin create/update payload.
type ProductRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       float64           `json:"price"`
	Category    string            `json:"category"`
	Subcategory string            `json:"subcategory"`
	Brand       string            `json:"brand"`
	Sizes       []model.SizeStock `json:"sizes"`
	Colors      []model.Color     `json:"colors"`
	Images      []model.Image     `json:"images"`
	IsFeatured  bool              `json:"isFeatured"`
}

// ToModel converts the request into a domain product.
func (r ProductRequest) ToModel() *model.Product {
	return &model.Product{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		Subcategory: r.Subcategory,
		Brand:       r.Brand,
		Sizes:       r.Sizes,
		Colors:      r.Colors,
		Images:      r.Images,
		IsFeatured:  r.IsFeatured,
	}
}

// ListResponse wraps a page of results with pagination metadata.
type ListResponse[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
}

// NewListResponse assembles pagination metadata for a page of items.
func NewListResponse[T any](items []T, total, page, limit int) ListResponse[T] {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: total, Page: page, TotalPages: pages}
}
