package usecase

import (
	"context"

	"github.com/solemart/solemart/internal/domain/model"
	"github.com/solemart/solemart/internal/domain/repository"
)

// WishlistUseCase manages the per-user wishlist.
type WishlistUseCase struct {
	wishlists repository.WishlistRepository
	products  repository.ProductRepository
}

// NewWishlistUseCase constructs WishlistUseCase.
func NewWishlistUseCase(wishlists repository.WishlistRepository, products repository.ProductRepository) *WishlistUseCase {
	return &WishlistUseCase{wishlists: wishlists, products: products}
}

// Add puts an active product on the user's wishlist. Adding twice is a
// no-op.
func (u *WishlistUseCase) Add(ctx context.Context, userID, productID int64) error {
	if _, err := u.products.GetActiveByID(ctx, productID); err != nil {
		return err
	}
	return u.wishlists.Add(ctx, userID, productID)
}

// Remove takes a product off the wishlist.
func (u *WishlistUseCase) Remove(ctx context.Context, userID, productID int64) error {
	return u.wishlists.Remove(ctx, userID, productID)
}

// List returns the wishlisted products.
func (u *WishlistUseCase) List(ctx context.Context, userID int64) ([]model.Product, error) {
	return u.wishlists.List(ctx, userID)
}
