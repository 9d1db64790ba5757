package repository

import (
	"context"

	"github.com/solemart/solemart/internal/domain/model"
)

// ProductRepository describes persistence operations for catalog entries.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	// SoftDelete clears the active flag; records referenced by orders
	// are never physically removed.
	SoftDelete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	// GetActiveByID returns ErrProductUnavailable for missing or
	// inactive products.
	GetActiveByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, int, error)
	Categories(ctx context.Context) ([]string, error)
	// DecrementStock atomically lowers one size bucket; it fails with
	// ErrInsufficientStock and mutates nothing when the bucket holds
	// less than quantity. Total stock is recomputed on success.
	DecrementStock(ctx context.Context, productID int64, size string, quantity int) error
	// RestoreStock is the inverse of DecrementStock; no upper bound is
	// enforced.
	RestoreStock(ctx context.Context, productID int64, size string, quantity int) error
}
