package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/solemart/solemart/internal/domain/errors"
	testhelpers "github.com/solemart/solemart/internal/test"
)

func newWishlistFixture() (*WishlistUseCase, *testhelpers.WishlistRepositoryStub, *testhelpers.ProductRepositoryStub) {
	wishlistRepo := testhelpers.NewWishlistRepositoryStub()
	productRepo := testhelpers.NewProductRepositoryStub(sneaker(1))
	wishlistRepo.Products = productRepo.Products
	return NewWishlistUseCase(wishlistRepo, productRepo), wishlistRepo, productRepo
}

func TestWishlistAdd(t *testing.T) {
	uc, wishlistRepo, _ := newWishlistFixture()

	if err := uc.Add(context.Background(), 7, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := uc.Add(context.Background(), 7, 1); err != nil {
		t.Fatalf("repeated add: %v", err)
	}
	if got := wishlistRepo.Items[7]; len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected single entry, got %v", got)
	}
}

func TestWishlistAddRejectsInactiveProduct(t *testing.T) {
	uc, wishlistRepo, productRepo := newWishlistFixture()
	productRepo.Products[1].IsActive = false

	if err := uc.Add(context.Background(), 7, 1); !errors.Is(err, domainErrors.ErrProductUnavailable) {
		t.Fatalf("expected ErrProductUnavailable, got %v", err)
	}
	if err := uc.Add(context.Background(), 7, 42); !errors.Is(err, domainErrors.ErrProductUnavailable) {
		t.Fatalf("expected ErrProductUnavailable for missing product, got %v", err)
	}
	if len(wishlistRepo.Items[7]) != 0 {
		t.Fatalf("expected empty wishlist, got %v", wishlistRepo.Items[7])
	}
}

func TestWishlistRemoveAndList(t *testing.T) {
	uc, _, _ := newWishlistFixture()

	if err := uc.Add(context.Background(), 7, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	products, err := uc.List(context.Background(), 7)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 1 || products[0].ID != 1 {
		t.Fatalf("expected wishlisted product, got %+v", products)
	}

	if err := uc.Remove(context.Background(), 7, 1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	products, err = uc.List(context.Background(), 7)
	if err != nil {
		t.Fatalf("list after remove: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("expected empty wishlist, got %+v", products)
	}
}
