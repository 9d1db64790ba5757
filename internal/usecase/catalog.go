package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/solemart/solemart/internal/domain/errors"
	"github.com/solemart/solemart/internal/domain/model"
	"github.com/solemart/solemart/internal/domain/repository"
)

// CatalogUseCase exposes product browsing and admin catalog management.
type CatalogUseCase struct {
	products repository.ProductRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products}
}

// List returns a filtered page of active products and the total match count.
func (u *CatalogUseCase) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 12
	}
	return u.products.List(ctx, filter)
}

// Get returns one active product for storefront views.
func (u *CatalogUseCase) Get(ctx context.Context, id int64) (*model.Product, error) {
	product, err := u.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, domainErrors.ErrNotFound
	}
	return product, nil
}

// Categories lists distinct categories of active products.
func (u *CatalogUseCase) Categories(ctx context.Context) ([]string, error) {
	return u.products.Categories(ctx)
}

// Create adds a catalog entry. Admin only, enforced by the transport layer.
func (u *CatalogUseCase) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	product.IsActive = true
	product.TotalStock = product.ComputeTotalStock()
	return u.products.Create(ctx, product)
}

// Update replaces a catalog entry's mutable fields.
func (u *CatalogUseCase) Update(ctx context.Context, product *model.Product) (*model.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if _, err := u.products.GetByID(ctx, product.ID); err != nil {
		return nil, err
	}
	product.TotalStock = product.ComputeTotalStock()
	if err := u.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return u.products.GetByID(ctx, product.ID)
}

// Delete deactivates a product. Existing orders keep their snapshots.
func (u *CatalogUseCase) Delete(ctx context.Context, id int64) error {
	return u.products.SoftDelete(ctx, id)
}

func validateProduct(product *model.Product) error {
	ve := &domainErrors.ValidationError{}
	if strings.TrimSpace(product.Name) == "" {
		ve.Add("name", "is required")
	}
	if product.Price <= 0 {
		ve.Add("price", "must be positive")
	}
	if strings.TrimSpace(product.Category) == "" {
		ve.Add("category", "is required")
	}
	for _, s := range product.Sizes {
		if s.Stock < 0 {
			ve.Add("sizes", "stock must not be negative")
			break
		}
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}
