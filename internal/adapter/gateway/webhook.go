package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Webhook event types emitted by the gateway.
const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
	EventDisputeCreated   = "charge.dispute.created"
)

// ErrInvalidSignature indicates the webhook payload failed verification.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// Event is a gateway-originated notification delivered via webhook.
type Event struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	IntentID string `json:"intent_id"`
}

type eventEnvelope struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID            string `json:"id"`
			PaymentIntent string `json:"payment_intent"`
		} `json:"object"`
	} `json:"data"`
}

// signatureTolerance bounds the accepted clock skew between the
// gateway's timestamp and ours.
const signatureTolerance = 5 * time.Minute

// ParseEvent verifies the signature header against the raw payload and
// decodes the event. The header format is "t=<unix>,v1=<hex hmac>"
// where the signed message is "<unix>.<payload>".
func ParseEvent(payload []byte, sigHeader, secret string) (*Event, error) {
	timestamp, signature, err := splitSignatureHeader(sigHeader)
	if err != nil {
		return nil, err
	}

	issuedAt := time.Unix(timestamp, 0)
	if d := time.Since(issuedAt); d > signatureTolerance || d < -signatureTolerance {
		return nil, ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return nil, ErrInvalidSignature
	}

	var envelope eventEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("decode webhook payload: %w", err)
	}

	intentID := envelope.Data.Object.PaymentIntent
	if intentID == "" {
		intentID = envelope.Data.Object.ID
	}

	return &Event{ID: envelope.ID, Type: envelope.Type, IntentID: intentID}, nil
}

// SignPayload produces a signature header for payload, used by tests
// and local gateway emulation.
func SignPayload(payload []byte, secret string, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", at.Unix())
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func splitSignatureHeader(header string) (int64, string, error) {
	var timestampStr, signature string
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			timestampStr = value
		case "v1":
			signature = value
		}
	}
	if timestampStr == "" || signature == "" {
		return 0, "", ErrInvalidSignature
	}

	timestamp, err := strconv.ParseInt(timestampStr, 10, 64)
	if err != nil {
		return 0, "", ErrInvalidSignature
	}
	return timestamp, signature, nil
}
