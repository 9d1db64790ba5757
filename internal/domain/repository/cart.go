package repository

import (
	"context"

	"github.com/solemart/solemart/internal/domain/model"
)

// CartRepository describes persistence operations for user carts.
type CartRepository interface {
	// GetOrCreate returns the user's cart, creating an empty one on
	// first access.
	GetOrCreate(ctx context.Context, userID int64) (*model.Cart, error)
	InsertItem(ctx context.Context, cartID int64, item model.CartItem) (*model.CartItem, error)
	UpdateItemQuantity(ctx context.Context, cartID, itemID int64, quantity int) error
	DeleteItem(ctx context.Context, cartID, itemID int64) error
	// Clear removes all items but keeps the cart record.
	Clear(ctx context.Context, cartID int64) error
	// Delete removes the cart record entirely, used after a successful
	// checkout.
	Delete(ctx context.Context, userID int64) error
	// PruneInactive drops lines whose product is no longer active and
	// returns the number of removed lines.
	PruneInactive(ctx context.Context, cartID int64) (int, error)
}
