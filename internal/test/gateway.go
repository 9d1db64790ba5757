package test

import (
	"context"

	"github.com/solemart/solemart/internal/adapter/gateway"
)

// GatewayClientStub simulates the payment gateway for tests.
type GatewayClientStub struct {
	CreateIntentFn   func(context.Context, int64, string, map[string]string) (*gateway.Intent, error)
	RetrieveIntentFn func(context.Context, string) (*gateway.Intent, error)
	RefundIntentFn   func(context.Context, string, int64, string) (*gateway.Refund, error)

	Intents []gateway.Intent
	Refunds []gateway.Refund
}

// CreateIntent records the request and returns a succeeded-free intent.
func (s *GatewayClientStub) CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*gateway.Intent, error) {
	if s.CreateIntentFn != nil {
		return s.CreateIntentFn(ctx, amountCents, currency, metadata)
	}
	intent := gateway.Intent{
		ID:           "pi_stub",
		ClientSecret: "pi_stub_secret",
		AmountCents:  amountCents,
		Currency:     currency,
		Status:       gateway.IntentStatusRequiresPayment,
	}
	s.Intents = append(s.Intents, intent)
	return &intent, nil
}

// RetrieveIntent returns the first stored intent matching id.
func (s *GatewayClientStub) RetrieveIntent(ctx context.Context, id string) (*gateway.Intent, error) {
	if s.RetrieveIntentFn != nil {
		return s.RetrieveIntentFn(ctx, id)
	}
	for i := range s.Intents {
		if s.Intents[i].ID == id {
			intent := s.Intents[i]
			return &intent, nil
		}
	}
	return nil, gateway.ErrIntentNotFound
}

// RefundIntent records the refund and reports success.
func (s *GatewayClientStub) RefundIntent(ctx context.Context, intentID string, amountCents int64, reason string) (*gateway.Refund, error) {
	if s.RefundIntentFn != nil {
		return s.RefundIntentFn(ctx, intentID, amountCents, reason)
	}
	refund := gateway.Refund{ID: "re_stub", AmountCents: amountCents, Status: "succeeded"}
	s.Refunds = append(s.Refunds, refund)
	return &refund, nil
}

var _ gateway.Client = (*GatewayClientStub)(nil)
