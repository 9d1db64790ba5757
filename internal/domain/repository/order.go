package repository

import (
	"context"
	"time"

	"github.com/solemart/solemart/internal/domain/model"
)

// OrderFilter narrows admin order listings.
type OrderFilter struct {
	Status        model.OrderStatus
	PaymentStatus model.PaymentStatus
	Page          int
	Limit         int
}

// StatusStat aggregates order count and value per status.
type StatusStat struct {
	Status     model.OrderStatus
	Count      int
	TotalValue float64
}

// StatusUpdate carries one status transition to append.
type StatusUpdate struct {
	Status            model.OrderStatus
	Note              string
	Tracking          *model.Tracking
	EstimatedDelivery *time.Time
	ActualDelivery    *time.Time
}

// OrderRepository describes persistence operations for orders.
type OrderRepository interface {
	// Create persists the order together with its items and initial
	// status history in one transaction and fills in generated fields.
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	GetByTransactionID(ctx context.Context, transactionID string) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64, page, limit int) ([]model.Order, int, error)
	ListAll(ctx context.Context, filter OrderFilter) ([]model.Order, int, error)
	StatsByStatus(ctx context.Context) ([]StatusStat, error)
	// AppendStatus sets the current status and appends the matching
	// history entry atomically.
	AppendStatus(ctx context.Context, orderID int64, update StatusUpdate) error
	UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error
	// SelectPendingPayments picks card orders whose payment is still
	// pending, locking them against concurrent reconcilers.
	SelectPendingPayments(ctx context.Context, limit int) ([]model.Order, error)
}
