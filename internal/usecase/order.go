package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/solemart/solemart/internal/adapter/gateway"
	domainErrors "github.com/solemart/solemart/internal/domain/errors"
	"github.com/solemart/solemart/internal/domain/model"
	"github.com/solemart/solemart/internal/domain/repository"
)

// OrderItemInput is one requested line of a new order.
type OrderItemInput struct {
	ProductID int64
	Quantity  int
	Size      string
	Color     string
}

// PricingHints carries the caller-supplied secondary charges. The
// subtotal is always recomputed from catalog prices.
type PricingHints struct {
	Tax      float64
	Shipping float64
	Discount float64
}

// CreateOrderInput is the request for direct order creation.
type CreateOrderInput struct {
	Items           []OrderItemInput
	ShippingAddress model.Address
	BillingAddress  model.Address
	PaymentMethod   model.PaymentMethod
	Pricing         PricingHints
}

// OrderUseCase encapsulates the order lifecycle: creation, payment
// confirmation, cancellation and administrative transitions.
type OrderUseCase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	carts    repository.CartRepository
	gateway  gateway.Client
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, products repository.ProductRepository, carts repository.CartRepository, client gateway.Client) *OrderUseCase {
	return &OrderUseCase{orders: orders, products: products, carts: carts, gateway: client}
}

// Create validates every requested line against the catalog, reserves
// stock, and persists a pending order. Stock reservation is
// all-or-nothing: a failed decrement rolls back the ones already made.
// The user's cart record is deleted on success.
func (u *OrderUseCase) Create(ctx context.Context, userID int64, in CreateOrderInput) (*model.Order, error) {
	if err := validateCreateInput(in); err != nil {
		return nil, err
	}

	items, subtotal, err := u.validateItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	if err := u.reserveStock(ctx, in.Items); err != nil {
		return nil, err
	}

	order, err := u.persistOrder(ctx, userID, in, items, subtotal, model.PaymentInfo{
		Method: in.PaymentMethod,
		Status: model.PaymentStatusPending,
	}, []model.OrderStatus{model.OrderStatusPending})
	if err != nil {
		u.releaseStock(ctx, in.Items)
		return nil, err
	}

	if err := u.carts.Delete(ctx, userID); err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	return order, nil
}

// ConfirmPayment creates a confirmed order backed by a payment intent
// that the gateway reports as succeeded. Nothing is mutated when the
// intent is missing or not yet succeeded.
func (u *OrderUseCase) ConfirmPayment(ctx context.Context, userID int64, intentID string, in CreateOrderInput) (*model.Order, error) {
	if intentID == "" {
		return nil, domainErrors.ErrPaymentNotCompleted
	}
	if err := validateCreateInput(in); err != nil {
		return nil, err
	}

	intent, err := u.gateway.RetrieveIntent(ctx, intentID)
	if err != nil {
		if errors.Is(err, gateway.ErrIntentNotFound) {
			return nil, domainErrors.ErrPaymentNotCompleted
		}
		return nil, err
	}
	if intent.Status != gateway.IntentStatusSucceeded {
		return nil, domainErrors.ErrPaymentNotCompleted
	}

	if _, err := u.orders.GetByTransactionID(ctx, intentID); err == nil {
		return nil, domainErrors.ErrAlreadyExists
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	items, subtotal, err := u.validateItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	if err := u.reserveStock(ctx, in.Items); err != nil {
		return nil, err
	}

	order, err := u.persistOrder(ctx, userID, in, items, subtotal, model.PaymentInfo{
		Method:        model.PaymentMethodCard,
		TransactionID: intentID,
		Status:        model.PaymentStatusCompleted,
	}, []model.OrderStatus{model.OrderStatusPending, model.OrderStatusConfirmed})
	if err != nil {
		u.releaseStock(ctx, in.Items)
		return nil, err
	}

	return order, nil
}

// Cancel is the customer-initiated cancellation. Only the owner may
// cancel, and only while the order is pending or confirmed. Reserved
// stock is returned to its size buckets.
func (u *OrderUseCase) Cancel(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrForbidden
	}
	if !order.Status.Cancellable() {
		return nil, domainErrors.ErrInvalidOrderState
	}

	for _, item := range order.Items {
		if err := u.products.RestoreStock(ctx, item.ProductID, item.Size, item.Quantity); err != nil {
			return nil, err
		}
	}

	if err := u.orders.AppendStatus(ctx, orderID, repository.StatusUpdate{
		Status: model.OrderStatusCancelled,
		Note:   "Cancelled by customer",
	}); err != nil {
		return nil, err
	}

	return u.orders.GetByID(ctx, orderID)
}

// UpdateStatus applies an administrative status transition. Any status
// may follow any other; this is an intentional back-office override.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, note string, tracking *model.Tracking, estimatedDelivery *time.Time) (*model.Order, error) {
	if !model.ValidOrderStatus(status) {
		return nil, domainErrors.ErrInvalidStatus
	}
	if _, err := u.orders.GetByID(ctx, orderID); err != nil {
		return nil, err
	}

	update := repository.StatusUpdate{
		Status:   status,
		Note:     note,
		Tracking: tracking,
	}
	switch status {
	case model.OrderStatusShipped:
		update.EstimatedDelivery = estimatedDelivery
	case model.OrderStatusDelivered:
		now := time.Now()
		update.ActualDelivery = &now
	}

	if err := u.orders.AppendStatus(ctx, orderID, update); err != nil {
		return nil, err
	}
	return u.orders.GetByID(ctx, orderID)
}

// Get returns one order to its owner or to an admin.
func (u *OrderUseCase) Get(ctx context.Context, userID int64, isAdmin bool, orderID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID && !isAdmin {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}

// ListByUser returns a page of the caller's own orders.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64, page, limit int) ([]model.Order, int, error) {
	page, limit = normalizePage(page, limit)
	return u.orders.ListByUser(ctx, userID, page, limit)
}

// ListAll returns a filtered page of all orders for back-office views.
func (u *OrderUseCase) ListAll(ctx context.Context, filter repository.OrderFilter) ([]model.Order, int, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	if filter.Status != "" && !model.ValidOrderStatus(filter.Status) {
		return nil, 0, domainErrors.ErrInvalidStatus
	}
	return u.orders.ListAll(ctx, filter)
}

// StatsByStatus aggregates order counts and value per status.
func (u *OrderUseCase) StatsByStatus(ctx context.Context) ([]repository.StatusStat, error) {
	return u.orders.StatsByStatus(ctx)
}

// validateItems runs the read-only pass: every line is checked against
// the catalog and snapshotted, with the subtotal accumulated from
// current catalog prices. No stock is touched.
func (u *OrderUseCase) validateItems(ctx context.Context, items []OrderItemInput) ([]model.OrderItem, float64, error) {
	snapshots := make([]model.OrderItem, 0, len(items))
	var subtotal float64

	for _, in := range items {
		product, err := u.products.GetActiveByID(ctx, in.ProductID)
		if err != nil {
			return nil, 0, err
		}

		bucket, ok := product.SizeInfo(in.Size)
		if !ok || bucket.Stock < in.Quantity {
			return nil, 0, domainErrors.ErrInsufficientStock
		}
		if in.Color != "" && !product.HasColor(in.Color) {
			return nil, 0, domainErrors.ErrColorUnavailable
		}

		snapshots = append(snapshots, model.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  in.Quantity,
			Size:      in.Size,
			Color:     in.Color,
			Image:     product.PrimaryImage(),
		})
		subtotal += product.Price * float64(in.Quantity)
	}

	return snapshots, subtotal, nil
}

// reserveStock commits the decrements after validation. A failed
// decrement restores the buckets already taken so no partial
// reservation survives.
func (u *OrderUseCase) reserveStock(ctx context.Context, items []OrderItemInput) error {
	for i, in := range items {
		if err := u.products.DecrementStock(ctx, in.ProductID, in.Size, in.Quantity); err != nil {
			u.releaseStock(ctx, items[:i])
			return err
		}
	}
	return nil
}

func (u *OrderUseCase) releaseStock(ctx context.Context, items []OrderItemInput) {
	for _, in := range items {
		_ = u.products.RestoreStock(ctx, in.ProductID, in.Size, in.Quantity)
	}
}

func (u *OrderUseCase) persistOrder(ctx context.Context, userID int64, in CreateOrderInput, items []model.OrderItem, subtotal float64, payment model.PaymentInfo, statuses []model.OrderStatus) (*model.Order, error) {
	billing := in.BillingAddress
	if billing.Empty() {
		billing = in.ShippingAddress
	}

	now := time.Now()
	history := make([]model.StatusChange, 0, len(statuses))
	for _, s := range statuses {
		history = append(history, model.StatusChange{Status: s, Timestamp: now})
	}

	order := &model.Order{
		Number:          model.NewOrderNumber(),
		UserID:          userID,
		Items:           items,
		ShippingAddress: in.ShippingAddress,
		BillingAddress:  billing,
		Payment:         payment,
		Pricing: model.Pricing{
			Subtotal: subtotal,
			Tax:      in.Pricing.Tax,
			Shipping: in.Pricing.Shipping,
			Discount: in.Pricing.Discount,
			Total:    subtotal + in.Pricing.Tax + in.Pricing.Shipping - in.Pricing.Discount,
		},
		Status:        statuses[len(statuses)-1],
		StatusHistory: history,
	}

	return u.orders.Create(ctx, order)
}

func validateCreateInput(in CreateOrderInput) error {
	ve := &domainErrors.ValidationError{}
	validateOrderItemInputs(in.Items, ve)
	validateAddress("shippingAddress", in.ShippingAddress, ve)
	if !model.ValidPaymentMethod(in.PaymentMethod) {
		ve.Add("paymentInfo.method", "must be one of card, wallet, cash_on_delivery")
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
