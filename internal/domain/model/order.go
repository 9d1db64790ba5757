package model

import (
	"fmt"
	"math/rand"
	"time"
)

// OrderStatus describes order lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusReturned   OrderStatus = "returned"
)

// ValidOrderStatus reports whether s is a member of the status enum.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled,
		OrderStatusReturned:
		return true
	}
	return false
}

// Cancellable reports whether the customer may still cancel.
func (s OrderStatus) Cancellable() bool {
	return s == OrderStatusPending || s == OrderStatusConfirmed
}

// PaymentMethod enumerates accepted payment methods.
type PaymentMethod string

const (
	PaymentMethodCard           PaymentMethod = "card"
	PaymentMethodWallet         PaymentMethod = "wallet"
	PaymentMethodCashOnDelivery PaymentMethod = "cash_on_delivery"
)

// ValidPaymentMethod reports whether m is an accepted method.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCard, PaymentMethodWallet, PaymentMethodCashOnDelivery:
		return true
	}
	return false
}

// PaymentStatus describes the state of the payment backing an order.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Address is a shipping or billing address.
type Address struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
}

// Empty reports whether no address was supplied.
func (a Address) Empty() bool {
	return a == Address{}
}

// PaymentInfo records how an order was (or will be) paid.
type PaymentInfo struct {
	Method        PaymentMethod `json:"method"`
	TransactionID string        `json:"transactionId,omitempty"`
	Status        PaymentStatus `json:"status"`
}

// Pricing is the order price breakdown. The invariant
// Total == Subtotal + Tax + Shipping - Discount holds at all times.
type Pricing struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// OrderItem is a frozen snapshot of a purchased product line,
// independent of later catalog edits.
type OrderItem struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Image     string  `json:"image"`
}

// StatusChange is one entry of the append-only status history.
type StatusChange struct {
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Note      string      `json:"note,omitempty"`
}

// Tracking holds shipment tracking details set by admins.
type Tracking struct {
	Carrier        string `json:"carrier,omitempty"`
	TrackingNumber string `json:"trackingNumber,omitempty"`
	TrackingURL    string `json:"trackingUrl,omitempty"`
}

// Order is an immutable-once-created purchase record. Items and
// pricing never change after creation; only status transitions are
// appended afterwards.
type Order struct {
	ID                int64          `json:"id"`
	Number            string         `json:"orderNumber"`
	UserID            int64          `json:"userId"`
	Items             []OrderItem    `json:"items"`
	ShippingAddress   Address        `json:"shippingAddress"`
	BillingAddress    Address        `json:"billingAddress"`
	Payment           PaymentInfo    `json:"paymentInfo"`
	Pricing           Pricing        `json:"pricing"`
	Status            OrderStatus    `json:"status"`
	Tracking          Tracking       `json:"tracking"`
	StatusHistory     []StatusChange `json:"statusHistory"`
	EstimatedDelivery *time.Time     `json:"estimatedDelivery,omitempty"`
	ActualDelivery    *time.Time     `json:"actualDelivery,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// NewOrderNumber generates a human-readable order number. Uniqueness
// is enforced by the storage layer's unique constraint.
func NewOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%03d", time.Now().UnixMilli(), rand.Intn(1000))
}
