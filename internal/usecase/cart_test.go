package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/solemart/solemart/internal/domain/errors"
	testhelpers "github.com/solemart/solemart/internal/test"
)

func newCartFixture() (*CartUseCase, *testhelpers.CartRepositoryStub, *testhelpers.ProductRepositoryStub) {
	cartRepo := testhelpers.NewCartRepositoryStub()
	productRepo := testhelpers.NewProductRepositoryStub(sneaker(1))
	return NewCartUseCase(cartRepo, productRepo), cartRepo, productRepo
}

func TestCartGetCreatesLazily(t *testing.T) {
	uc, cartRepo, _ := newCartFixture()
	cart, err := uc.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if cart.UserID != 7 || len(cart.Items) != 0 {
		t.Fatalf("expected fresh empty cart, got %+v", cart)
	}
	if len(cartRepo.Carts) != 1 {
		t.Fatalf("expected one cart record")
	}
}

func TestCartAddItemMergesLines(t *testing.T) {
	uc, _, _ := newCartFixture()

	if _, err := uc.AddItem(context.Background(), 7, 1, "9", "black", 2); err != nil {
		t.Fatalf("first add: %v", err)
	}
	cart, err := uc.AddItem(context.Background(), 7, 1, "9", "black", 1)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if len(cart.Items) != 1 {
		t.Fatalf("expected merged single line, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", cart.Items[0].Quantity)
	}
	if cart.Items[0].Price != 120 {
		t.Fatalf("expected captured price 120, got %v", cart.Items[0].Price)
	}
}

func TestCartAddItemSeparateLinePerVariant(t *testing.T) {
	uc, _, _ := newCartFixture()
	if _, err := uc.AddItem(context.Background(), 7, 1, "9", "black", 1); err != nil {
		t.Fatalf("add size 9: %v", err)
	}
	cart, err := uc.AddItem(context.Background(), 7, 1, "10", "black", 1)
	if err != nil {
		t.Fatalf("add size 10: %v", err)
	}
	if len(cart.Items) != 2 {
		t.Fatalf("expected two lines for distinct sizes, got %d", len(cart.Items))
	}
}

func TestCartAddItemFailures(t *testing.T) {
	tests := []struct {
		name      string
		productID int64
		size      string
		color     string
		quantity  int
		seed      int
		want      error
	}{
		{"missing product", 99, "9", "black", 1, 0, domainErrors.ErrProductUnavailable},
		{"unknown size", 1, "15", "black", 1, 0, domainErrors.ErrSizeUnavailable},
		{"unknown color", 1, "9", "magenta", 1, 0, domainErrors.ErrColorUnavailable},
		{"over stock", 1, "9", "black", 6, 0, domainErrors.ErrInsufficientStock},
		{"merged over stock", 1, "9", "black", 2, 4, domainErrors.ErrInsufficientStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, _ := newCartFixture()
			if tt.seed > 0 {
				if _, err := uc.AddItem(context.Background(), 7, 1, "9", "black", tt.seed); err != nil {
					t.Fatalf("seed add: %v", err)
				}
			}

			_, err := uc.AddItem(context.Background(), 7, tt.productID, tt.size, tt.color, tt.quantity)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}

			cart, _ := uc.Get(context.Background(), 7)
			total := 0
			for _, item := range cart.Items {
				total += item.Quantity
			}
			if total != tt.seed {
				t.Fatalf("expected cart unchanged at %d units, got %d", tt.seed, total)
			}
		})
	}
}

func TestCartAddItemRejectsNonPositiveQuantity(t *testing.T) {
	uc, _, _ := newCartFixture()
	_, err := uc.AddItem(context.Background(), 7, 1, "9", "black", 0)
	if _, ok := domainErrors.AsValidation(err); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCartUpdateItemQuantity(t *testing.T) {
	uc, _, _ := newCartFixture()
	cart, err := uc.AddItem(context.Background(), 7, 1, "9", "black", 2)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	itemID := cart.Items[0].ID

	updated, err := uc.UpdateItemQuantity(context.Background(), 7, itemID, 5)
	if err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if updated.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", updated.Items[0].Quantity)
	}

	if _, err := uc.UpdateItemQuantity(context.Background(), 7, itemID, 6); !errors.Is(err, domainErrors.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if _, err := uc.UpdateItemQuantity(context.Background(), 7, 999, 1); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing line, got %v", err)
	}
}

func TestCartRemoveAndClear(t *testing.T) {
	uc, cartRepo, _ := newCartFixture()
	cart, err := uc.AddItem(context.Background(), 7, 1, "9", "black", 2)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	removed, err := uc.RemoveItem(context.Background(), 7, cart.Items[0].ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(removed.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(removed.Items))
	}

	if err := uc.Clear(context.Background(), 7); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(cartRepo.Cleared) != 1 {
		t.Fatalf("expected one clear call")
	}
}
