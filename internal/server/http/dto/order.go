package dto

import (
	"time"

	"github.com/solemart/solemart/internal/domain/model"
	"github.com/solemart/solemart/internal/usecase"
)

// OrderItemRequest is one requested line of a new order.
type OrderItemRequest struct {
	ProductID int64  `json:"productId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// PricingRequest carries the caller-supplied secondary charges.
type PricingRequest struct {
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Discount float64 `json:"discount"`
}

// PaymentInfoRequest selects the payment method for a new order.
type PaymentInfoRequest struct {
	Method string `json:"method"`
}

// CreateOrderRequest describes the direct order creation payload.
type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items"`
	ShippingAddress model.Address      `json:"shippingAddress"`
	BillingAddress  model.Address      `json:"billingAddress"`
	PaymentInfo     PaymentInfoRequest `json:"paymentInfo"`
	Pricing         PricingRequest     `json:"pricing"`
}

// ToInput converts the request into the workflow input.
func (r CreateOrderRequest) ToInput() usecase.CreateOrderInput {
	items := make([]usecase.OrderItemInput, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, usecase.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Color:     item.Color,
		})
	}
	return usecase.CreateOrderInput{
		Items:           items,
		ShippingAddress: r.ShippingAddress,
		BillingAddress:  r.BillingAddress,
		PaymentMethod:   model.PaymentMethod(r.PaymentInfo.Method),
		Pricing: usecase.PricingHints{
			Tax:      r.Pricing.Tax,
			Shipping: r.Pricing.Shipping,
			Discount: r.Pricing.Discount,
		},
	}
}

// ConfirmPaymentRequest describes the gateway-confirmed creation payload.
type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
	CreateOrderRequest
}

// UpdateOrderStatusRequest describes the admin transition payload.
type UpdateOrderStatusRequest struct {
	Status            string          `json:"status"`
	Note              string          `json:"note"`
	Tracking          *model.Tracking `json:"tracking"`
	EstimatedDelivery *time.Time      `json:"estimatedDelivery"`
}

// OrderStatsResponse is one per-status aggregate row.
type OrderStatsResponse struct {
	Status     string  `json:"status"`
	Count      int     `json:"count"`
	TotalValue float64 `json:"totalValue"`
}
