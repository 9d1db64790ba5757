package dto

// CreateIntentRequest describes the payment intent creation payload.
type CreateIntentRequest struct {
	Items []OrderItemRequest `json:"items"`
}

// IntentResponse returns the client secret the storefront needs to
// complete the payment.
type IntentResponse struct {
	PaymentIntentID string `json:"paymentIntentId"`
	ClientSecret    string `json:"clientSecret"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
}
