package repository

import (
	"context"

	"github.com/solemart/solemart/internal/domain/model"
)

// UserRepository describes persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context, page, limit int) ([]model.User, int, error)
}

// WishlistRepository manages per-user wishlists.
type WishlistRepository interface {
	Add(ctx context.Context, userID, productID int64) error
	Remove(ctx context.Context, userID, productID int64) error
	List(ctx context.Context, userID int64) ([]model.Product, error)
}
