package usecase

import (
	"context"

	domainErrors "github.com/solemart/solemart/internal/domain/errors"
	"github.com/solemart/solemart/internal/domain/model"
	"github.com/solemart/solemart/internal/domain/repository"
)

// CartUseCase manages the per-user shopping cart.
type CartUseCase struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(carts repository.CartRepository, products repository.ProductRepository) *CartUseCase {
	return &CartUseCase{carts: carts, products: products}
}

// Get returns the user's cart, dropping lines whose product has since
// been deactivated.
func (u *CartUseCase) Get(ctx context.Context, userID int64) (*model.Cart, error) {
	cart, err := u.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	pruned, err := u.carts.PruneInactive(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	if pruned > 0 {
		return u.carts.GetOrCreate(ctx, userID)
	}
	return cart, nil
}

// AddItem merges quantity into an existing (product, size, color) line
// or appends a new one. Stock is checked against the merged quantity.
func (u *CartUseCase) AddItem(ctx context.Context, userID, productID int64, size, color string, quantity int) (*model.Cart, error) {
	if quantity <= 0 {
		ve := &domainErrors.ValidationError{}
		return nil, ve.Add("quantity", "must be positive")
	}

	product, err := u.products.GetActiveByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	bucket, ok := product.SizeInfo(size)
	if !ok {
		return nil, domainErrors.ErrSizeUnavailable
	}
	if color != "" && !product.HasColor(color) {
		return nil, domainErrors.ErrColorUnavailable
	}

	cart, err := u.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := quantity
	if existing, ok := cart.FindItem(productID, size, color); ok {
		merged += existing.Quantity
	}
	if merged > bucket.Stock {
		return nil, domainErrors.ErrInsufficientStock
	}

	if _, err := u.carts.InsertItem(ctx, cart.ID, model.CartItem{
		ProductID: productID,
		Quantity:  quantity,
		Size:      size,
		Color:     color,
		Price:     product.Price,
	}); err != nil {
		return nil, err
	}

	return u.carts.GetOrCreate(ctx, userID)
}

// UpdateItemQuantity sets a line's quantity, re-validating stock.
func (u *CartUseCase) UpdateItemQuantity(ctx context.Context, userID, itemID int64, quantity int) (*model.Cart, error) {
	if quantity <= 0 {
		ve := &domainErrors.ValidationError{}
		return nil, ve.Add("quantity", "must be positive")
	}

	cart, err := u.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	var line *model.CartItem
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			line = &cart.Items[i]
			break
		}
	}
	if line == nil {
		return nil, domainErrors.ErrNotFound
	}

	product, err := u.products.GetActiveByID(ctx, line.ProductID)
	if err != nil {
		return nil, err
	}
	bucket, ok := product.SizeInfo(line.Size)
	if !ok || quantity > bucket.Stock {
		return nil, domainErrors.ErrInsufficientStock
	}

	if err := u.carts.UpdateItemQuantity(ctx, cart.ID, itemID, quantity); err != nil {
		return nil, err
	}
	return u.carts.GetOrCreate(ctx, userID)
}

// RemoveItem deletes one line from the cart.
func (u *CartUseCase) RemoveItem(ctx context.Context, userID, itemID int64) (*model.Cart, error) {
	cart, err := u.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := u.carts.DeleteItem(ctx, cart.ID, itemID); err != nil {
		return nil, err
	}
	return u.carts.GetOrCreate(ctx, userID)
}

// Clear removes every line but keeps the cart record.
func (u *CartUseCase) Clear(ctx context.Context, userID int64) error {
	cart, err := u.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	return u.carts.Clear(ctx, cart.ID)
}
