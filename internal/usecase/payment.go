package usecase

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strconv"

	"github.com/solemart/solemart/internal/adapter/gateway"
	domainErrors "github.com/solemart/solemart/internal/domain/errors"
	"github.com/solemart/solemart/internal/domain/model"
	"github.com/solemart/solemart/internal/domain/repository"
)

// PaymentMethodInfo describes one enabled payment method for clients.
type PaymentMethodInfo struct {
	ID          model.PaymentMethod `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
}

// PaymentUseCase integrates orders with the external payment gateway.
type PaymentUseCase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	gateway  gateway.Client
	logger   *slog.Logger
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(orders repository.OrderRepository, products repository.ProductRepository, client gateway.Client, logger *slog.Logger) *PaymentUseCase {
	return &PaymentUseCase{orders: orders, products: products, gateway: client, logger: logger}
}

// CreateIntent validates the requested items read-only and registers a
// payment intent for their current catalog value. Stock is not
// reserved until the payment is confirmed.
func (u *PaymentUseCase) CreateIntent(ctx context.Context, userID int64, items []OrderItemInput) (*gateway.Intent, error) {
	ve := &domainErrors.ValidationError{}
	validateOrderItemInputs(items, ve)
	if ve.HasErrors() {
		return nil, ve
	}

	var total float64
	for _, in := range items {
		product, err := u.products.GetActiveByID(ctx, in.ProductID)
		if err != nil {
			return nil, err
		}
		bucket, ok := product.SizeInfo(in.Size)
		if !ok || bucket.Stock < in.Quantity {
			return nil, domainErrors.ErrInsufficientStock
		}
		total += product.Price * float64(in.Quantity)
	}

	amountCents := int64(math.Round(total * 100))
	return u.gateway.CreateIntent(ctx, amountCents, "usd", map[string]string{
		"userId": strconv.FormatInt(userID, 10),
	})
}

// HandleEvent applies one gateway webhook event to the matching order.
// Events for unknown intents are logged and dropped; the reconciler
// picks up anything the webhook missed.
func (u *PaymentUseCase) HandleEvent(ctx context.Context, event *gateway.Event) error {
	switch event.Type {
	case gateway.EventPaymentSucceeded:
		return u.applyPaymentResult(ctx, event.IntentID, true)
	case gateway.EventPaymentFailed:
		return u.applyPaymentResult(ctx, event.IntentID, false)
	case gateway.EventDisputeCreated:
		u.logger.Warn("payment dispute opened", "intent_id", event.IntentID, "event_id", event.ID)
		return nil
	default:
		u.logger.Debug("ignoring webhook event", "type", event.Type, "event_id", event.ID)
		return nil
	}
}

// Refund refunds a completed card payment and marks the order
// returned. Available to the order's owner and to admins.
func (u *PaymentUseCase) Refund(ctx context.Context, userID int64, isAdmin bool, orderID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID && !isAdmin {
		return nil, domainErrors.ErrForbidden
	}
	if order.Payment.Method != model.PaymentMethodCard ||
		order.Payment.Status != model.PaymentStatusCompleted ||
		order.Payment.TransactionID == "" {
		return nil, domainErrors.ErrNotRefundable
	}

	amountCents := int64(math.Round(order.Pricing.Total * 100))
	if _, err := u.gateway.RefundIntent(ctx, order.Payment.TransactionID, amountCents, "requested_by_customer"); err != nil {
		return nil, err
	}

	if err := u.orders.UpdatePaymentStatus(ctx, orderID, model.PaymentStatusRefunded); err != nil {
		return nil, err
	}
	if err := u.orders.AppendStatus(ctx, orderID, repository.StatusUpdate{
		Status: model.OrderStatusReturned,
		Note:   "Refund processed",
	}); err != nil {
		return nil, err
	}

	return u.orders.GetByID(ctx, orderID)
}

// PendingPayments returns a locked batch of card orders whose payment
// outcome is still unknown.
func (u *PaymentUseCase) PendingPayments(ctx context.Context, limit int) ([]model.Order, error) {
	return u.orders.SelectPendingPayments(ctx, limit)
}

// Reconcile queries the gateway for the order's intent and applies the
// final outcome if one is known. Intents still in flight are skipped.
func (u *PaymentUseCase) Reconcile(ctx context.Context, order model.Order) error {
	intent, err := u.gateway.RetrieveIntent(ctx, order.Payment.TransactionID)
	if err != nil {
		if errors.Is(err, gateway.ErrIntentNotFound) {
			u.logger.Warn("pending payment references unknown intent",
				"order_id", order.ID, "intent_id", order.Payment.TransactionID)
			return nil
		}
		return err
	}

	switch intent.Status {
	case gateway.IntentStatusSucceeded:
		return u.applyPaymentResult(ctx, intent.ID, true)
	case gateway.IntentStatusFailed, gateway.IntentStatusCanceled:
		return u.applyPaymentResult(ctx, intent.ID, false)
	default:
		return nil
	}
}

// Methods lists the payment methods the storefront accepts.
func (u *PaymentUseCase) Methods() []PaymentMethodInfo {
	return []PaymentMethodInfo{
		{ID: model.PaymentMethodCard, Name: "Card", Description: "Pay online with a credit or debit card"},
		{ID: model.PaymentMethodWallet, Name: "Wallet", Description: "Pay with your wallet balance"},
		{ID: model.PaymentMethodCashOnDelivery, Name: "Cash on delivery", Description: "Pay in cash when the order arrives"},
	}
}

func (u *PaymentUseCase) applyPaymentResult(ctx context.Context, intentID string, succeeded bool) error {
	order, err := u.orders.GetByTransactionID(ctx, intentID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			u.logger.Info("webhook for unknown intent", "intent_id", intentID)
			return nil
		}
		return err
	}

	if succeeded {
		return u.orders.UpdatePaymentStatus(ctx, order.ID, model.PaymentStatusCompleted)
	}

	if err := u.orders.UpdatePaymentStatus(ctx, order.ID, model.PaymentStatusFailed); err != nil {
		return err
	}
	if order.Status.Cancellable() {
		for _, item := range order.Items {
			if err := u.products.RestoreStock(ctx, item.ProductID, item.Size, item.Quantity); err != nil {
				return err
			}
		}
		return u.orders.AppendStatus(ctx, order.ID, repository.StatusUpdate{
			Status: model.OrderStatusCancelled,
			Note:   "Payment failed",
		})
	}
	return nil
}
