package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/solemart/solemart/internal/adapter/gateway"
	domainErrors "github.com/solemart/solemart/internal/domain/errors"
	"github.com/solemart/solemart/internal/domain/model"
	testhelpers "github.com/solemart/solemart/internal/test"
)

func newPaymentFixture(products ...*model.Product) (*PaymentUseCase, *testhelpers.OrderRepositoryStub, *testhelpers.ProductRepositoryStub, *testhelpers.GatewayClientStub) {
	orderRepo := &testhelpers.OrderRepositoryStub{}
	productRepo := testhelpers.NewProductRepositoryStub(products...)
	client := &testhelpers.GatewayClientStub{}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewPaymentUseCase(orderRepo, productRepo, client, logger), orderRepo, productRepo, client
}

func TestCreateIntentComputesAmount(t *testing.T) {
	uc, _, productRepo, client := newPaymentFixture(sneaker(1))

	var captured struct {
		amount   int64
		currency string
		metadata map[string]string
	}
	client.CreateIntentFn = func(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*gateway.Intent, error) {
		captured.amount = amountCents
		captured.currency = currency
		captured.metadata = metadata
		return &gateway.Intent{ID: "pi_1", ClientSecret: "cs_1", AmountCents: amountCents, Currency: currency}, nil
	}

	intent, err := uc.CreateIntent(context.Background(), 7, []OrderItemInput{{ProductID: 1, Quantity: 2, Size: "9"}})
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}
	if intent.ID != "pi_1" {
		t.Fatalf("unexpected intent %+v", intent)
	}
	if captured.amount != 24000 {
		t.Fatalf("expected 24000 cents, got %d", captured.amount)
	}
	if captured.currency != "usd" {
		t.Fatalf("expected usd, got %s", captured.currency)
	}
	if captured.metadata["userId"] != "7" {
		t.Fatalf("expected user metadata, got %v", captured.metadata)
	}
	if len(productRepo.Decrements) != 0 {
		t.Fatal("intent creation must not reserve stock")
	}
}

func TestCreateIntentValidatesStock(t *testing.T) {
	uc, _, _, _ := newPaymentFixture(sneaker(1))

	if _, err := uc.CreateIntent(context.Background(), 7, []OrderItemInput{{ProductID: 1, Quantity: 9, Size: "9"}}); !errors.Is(err, domainErrors.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if _, err := uc.CreateIntent(context.Background(), 7, []OrderItemInput{{ProductID: 42, Quantity: 1, Size: "9"}}); !errors.Is(err, domainErrors.ErrProductUnavailable) {
		t.Fatalf("expected ErrProductUnavailable, got %v", err)
	}
	if _, err := uc.CreateIntent(context.Background(), 7, nil); err == nil {
		t.Fatal("expected validation error for empty items")
	}
}

func TestHandleEventPaymentSucceeded(t *testing.T) {
	uc, orderRepo, _, _ := newPaymentFixture(sneaker(1))
	orderRepo.Orders = []model.Order{{
		ID:      5,
		Status:  model.OrderStatusPending,
		Payment: model.PaymentInfo{Method: model.PaymentMethodCard, TransactionID: "pi_1", Status: model.PaymentStatusPending},
	}}

	err := uc.HandleEvent(context.Background(), &gateway.Event{ID: "evt_1", Type: gateway.EventPaymentSucceeded, IntentID: "pi_1"})
	if err != nil {
		t.Fatalf("handle event: %v", err)
	}
	if len(orderRepo.PaymentUpdates) != 1 || orderRepo.PaymentUpdates[0].Status != model.PaymentStatusCompleted {
		t.Fatalf("expected payment completed, got %+v", orderRepo.PaymentUpdates)
	}
}

func TestHandleEventPaymentFailedCancelsAndRestores(t *testing.T) {
	uc, orderRepo, productRepo, _ := newPaymentFixture(sneaker(1))
	orderRepo.Orders = []model.Order{{
		ID:      5,
		Status:  model.OrderStatusPending,
		Items:   []model.OrderItem{{ProductID: 1, Quantity: 2, Size: "9"}},
		Payment: model.PaymentInfo{Method: model.PaymentMethodCard, TransactionID: "pi_1", Status: model.PaymentStatusPending},
	}}

	err := uc.HandleEvent(context.Background(), &gateway.Event{Type: gateway.EventPaymentFailed, IntentID: "pi_1"})
	if err != nil {
		t.Fatalf("handle event: %v", err)
	}
	if orderRepo.PaymentUpdates[0].Status != model.PaymentStatusFailed {
		t.Fatalf("expected failed payment status, got %+v", orderRepo.PaymentUpdates)
	}
	if len(orderRepo.StatusCalls) != 1 || orderRepo.StatusCalls[0].Update.Status != model.OrderStatusCancelled {
		t.Fatalf("expected cancellation, got %+v", orderRepo.StatusCalls)
	}
	if len(productRepo.Restores) != 1 || productRepo.Restores[0].Quantity != 2 {
		t.Fatalf("expected stock restored, got %v", productRepo.Restores)
	}
}

func TestHandleEventPaymentFailedShippedOrderKeptAlive(t *testing.T) {
	uc, orderRepo, productRepo, _ := newPaymentFixture(sneaker(1))
	orderRepo.Orders = []model.Order{{
		ID:      5,
		Status:  model.OrderStatusShipped,
		Items:   []model.OrderItem{{ProductID: 1, Quantity: 2, Size: "9"}},
		Payment: model.PaymentInfo{TransactionID: "pi_1"},
	}}

	if err := uc.HandleEvent(context.Background(), &gateway.Event{Type: gateway.EventPaymentFailed, IntentID: "pi_1"}); err != nil {
		t.Fatalf("handle event: %v", err)
	}
	if len(orderRepo.StatusCalls) != 0 {
		t.Fatalf("expected no status transition for shipped order, got %+v", orderRepo.StatusCalls)
	}
	if len(productRepo.Restores) != 0 {
		t.Fatal("expected no stock restore for shipped order")
	}
}

func TestHandleEventUnknownIntentDropped(t *testing.T) {
	uc, orderRepo, _, _ := newPaymentFixture(sneaker(1))
	if err := uc.HandleEvent(context.Background(), &gateway.Event{Type: gateway.EventPaymentSucceeded, IntentID: "pi_unknown"}); err != nil {
		t.Fatalf("expected unknown intent to be dropped, got %v", err)
	}
	if len(orderRepo.PaymentUpdates) != 0 {
		t.Fatal("expected no payment update")
	}
}

func TestHandleEventDisputeLoggedOnly(t *testing.T) {
	uc, orderRepo, _, _ := newPaymentFixture(sneaker(1))
	if err := uc.HandleEvent(context.Background(), &gateway.Event{Type: gateway.EventDisputeCreated, IntentID: "pi_1"}); err != nil {
		t.Fatalf("handle dispute: %v", err)
	}
	if len(orderRepo.PaymentUpdates) != 0 || len(orderRepo.StatusCalls) != 0 {
		t.Fatal("dispute must not mutate orders")
	}
}

func TestRefund(t *testing.T) {
	uc, orderRepo, _, client := newPaymentFixture(sneaker(1))
	orderRepo.Orders = []model.Order{{
		ID:      5,
		UserID:  7,
		Status:  model.OrderStatusDelivered,
		Pricing: model.Pricing{Total: 120.50},
		Payment: model.PaymentInfo{Method: model.PaymentMethodCard, TransactionID: "pi_1", Status: model.PaymentStatusCompleted},
	}}

	order, err := uc.Refund(context.Background(), 7, false, 5)
	if err != nil {
		t.Fatalf("refund: %v", err)
	}
	if order.Status != model.OrderStatusReturned {
		t.Fatalf("expected returned status, got %s", order.Status)
	}
	if len(client.Refunds) != 1 || client.Refunds[0].AmountCents != 12050 {
		t.Fatalf("expected gateway refund of 12050 cents, got %+v", client.Refunds)
	}
	if orderRepo.PaymentUpdates[0].Status != model.PaymentStatusRefunded {
		t.Fatalf("expected refunded payment status, got %+v", orderRepo.PaymentUpdates)
	}
}

func TestRefundRejections(t *testing.T) {
	base := model.Order{
		ID:      5,
		UserID:  7,
		Pricing: model.Pricing{Total: 100},
		Payment: model.PaymentInfo{Method: model.PaymentMethodCard, TransactionID: "pi_1", Status: model.PaymentStatusCompleted},
	}

	tests := []struct {
		name    string
		userID  int64
		isAdmin bool
		mutate  func(*model.Order)
		want    error
	}{
		{"foreign user", 8, false, func(o *model.Order) {}, domainErrors.ErrForbidden},
		{"cash order", 7, false, func(o *model.Order) { o.Payment.Method = model.PaymentMethodCashOnDelivery }, domainErrors.ErrNotRefundable},
		{"pending payment", 7, false, func(o *model.Order) { o.Payment.Status = model.PaymentStatusPending }, domainErrors.ErrNotRefundable},
		{"already refunded", 7, false, func(o *model.Order) { o.Payment.Status = model.PaymentStatusRefunded }, domainErrors.ErrNotRefundable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, orderRepo, _, client := newPaymentFixture(sneaker(1))
			order := base
			tt.mutate(&order)
			orderRepo.Orders = []model.Order{order}

			_, err := uc.Refund(context.Background(), tt.userID, tt.isAdmin, 5)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if len(client.Refunds) != 0 {
				t.Fatal("expected no gateway refund")
			}
		})
	}
}

func TestRefundAdminOverridesOwnership(t *testing.T) {
	uc, orderRepo, _, _ := newPaymentFixture(sneaker(1))
	orderRepo.Orders = []model.Order{{
		ID:      5,
		UserID:  7,
		Pricing: model.Pricing{Total: 100},
		Payment: model.PaymentInfo{Method: model.PaymentMethodCard, TransactionID: "pi_1", Status: model.PaymentStatusCompleted},
	}}

	if _, err := uc.Refund(context.Background(), 99, true, 5); err != nil {
		t.Fatalf("admin refund: %v", err)
	}
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name        string
		status      gateway.IntentStatus
		wantPayment []model.PaymentStatus
	}{
		{"succeeded", gateway.IntentStatusSucceeded, []model.PaymentStatus{model.PaymentStatusCompleted}},
		{"failed", gateway.IntentStatusFailed, []model.PaymentStatus{model.PaymentStatusFailed}},
		{"still processing", gateway.IntentStatusProcessing, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, orderRepo, _, client := newPaymentFixture(sneaker(1))
			order := model.Order{
				ID:      5,
				Status:  model.OrderStatusPending,
				Payment: model.PaymentInfo{Method: model.PaymentMethodCard, TransactionID: "pi_1", Status: model.PaymentStatusPending},
			}
			orderRepo.Orders = []model.Order{order}
			client.Intents = []gateway.Intent{{ID: "pi_1", Status: tt.status}}

			if err := uc.Reconcile(context.Background(), order); err != nil {
				t.Fatalf("reconcile: %v", err)
			}
			if len(orderRepo.PaymentUpdates) != len(tt.wantPayment) {
				t.Fatalf("expected %d payment updates, got %+v", len(tt.wantPayment), orderRepo.PaymentUpdates)
			}
			for i, want := range tt.wantPayment {
				if orderRepo.PaymentUpdates[i].Status != want {
					t.Fatalf("expected %s, got %s", want, orderRepo.PaymentUpdates[i].Status)
				}
			}
		})
	}
}

func TestReconcileUnknownIntentSkipped(t *testing.T) {
	uc, orderRepo, _, _ := newPaymentFixture(sneaker(1))
	order := model.Order{ID: 5, Payment: model.PaymentInfo{TransactionID: "pi_gone"}}
	if err := uc.Reconcile(context.Background(), order); err != nil {
		t.Fatalf("expected unknown intent skipped, got %v", err)
	}
	if len(orderRepo.PaymentUpdates) != 0 {
		t.Fatal("expected no payment update")
	}
}

func TestMethodsCatalog(t *testing.T) {
	uc, _, _, _ := newPaymentFixture()
	methods := uc.Methods()
	if len(methods) != 3 {
		t.Fatalf("expected 3 methods, got %d", len(methods))
	}
	if methods[0].ID != model.PaymentMethodCard {
		t.Fatalf("expected card first, got %s", methods[0].ID)
	}
}
