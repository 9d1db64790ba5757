package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrIntentNotFound indicates the gateway doesn't know the payment intent.
var ErrIntentNotFound = errors.New("payment intent not found")

// TooManyRequestsError represents rate limiting signal from the gateway.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// IntentStatus enumerates gateway payment intent states.
type IntentStatus string

const (
	IntentStatusRequiresPayment IntentStatus = "requires_payment_method"
	IntentStatusProcessing      IntentStatus = "processing"
	IntentStatusSucceeded       IntentStatus = "succeeded"
	IntentStatusFailed          IntentStatus = "failed"
	IntentStatusCanceled        IntentStatus = "canceled"
)

// Intent is the gateway's view of one payment.
type Intent struct {
	ID           string
	ClientSecret string
	AmountCents  int64
	Currency     string
	Status       IntentStatus
}

// Refund is the gateway's record of a processed refund.
type Refund struct {
	ID          string
	AmountCents int64
	Status      string
}

// Client exposes operations against the payment gateway.
type Client interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*Intent, error)
	RetrieveIntent(ctx context.Context, id string) (*Intent, error)
	RefundIntent(ctx context.Context, intentID string, amountCents int64, reason string) (*Refund, error)
}

// HTTPClient implements Client via the gateway's HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	secretKey  string
	httpClient *http.Client
	logger     *slog.Logger
}

type intentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

type refundResponse struct {
	ID     string `json:"id"`
	Amount int64  `json:"amount"`
	Status string `json:"status"`
}

// NewHTTPClient creates HTTP gateway client with default timeout.
func NewHTTPClient(baseURL, secretKey string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	return &HTTPClient{
		baseURL:   parsed,
		secretKey: secretKey,
		logger:    logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// CreateIntent registers a new payment intent with the gateway.
func (c *HTTPClient) CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*Intent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", currency)
	for k, v := range metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	// Retries of the same logical charge must not double-bill.
	req.Header.Set("Idempotency-Key", uuid.NewString())

	return c.doIntent(req)
}

// RetrieveIntent queries the gateway for the current intent state.
func (c *HTTPClient) RetrieveIntent(ctx context.Context, id string) (*Intent, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path.Join("/v1/payment_intents", id), nil)
	if err != nil {
		return nil, err
	}
	return c.doIntent(req)
}

// RefundIntent asks the gateway to refund a captured intent. A zero
// amount refunds the full charge.
func (c *HTTPClient) RefundIntent(ctx context.Context, intentID string, amountCents int64, reason string) (*Refund, error) {
	form := url.Values{}
	form.Set("payment_intent", intentID)
	if amountCents > 0 {
		form.Set("amount", strconv.FormatInt(amountCents, 10))
	}
	if reason == "" {
		reason = "requested_by_customer"
	}
	form.Set("reason", reason)

	req, err := c.newRequest(ctx, http.MethodPost, "/v1/refunds", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var data refundResponse
		if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
			return nil, err
		}
		return &Refund{ID: data.ID, AmountCents: data.Amount, Status: data.Status}, nil
	case http.StatusNotFound:
		return nil, ErrIntentNotFound
	default:
		return nil, c.unexpectedStatus(resp)
	}
}

func (c *HTTPClient) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	target := *c.baseURL
	target.Path = path.Join(target.Path, endpoint)

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	return req, nil
}

func (c *HTTPClient) doIntent(req *http.Request) (*Intent, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var data intentResponse
		if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
			return nil, err
		}
		return &Intent{
			ID:           data.ID,
			ClientSecret: data.ClientSecret,
			AmountCents:  data.Amount,
			Currency:     data.Currency,
			Status:       IntentStatus(data.Status),
		}, nil
	case http.StatusNotFound:
		return nil, ErrIntentNotFound
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, TooManyRequestsError{RetryAfter: retryAfter}
	default:
		return nil, c.unexpectedStatus(resp)
	}
}

func (c *HTTPClient) unexpectedStatus(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	c.logger.Error("gateway request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
	return fmt.Errorf("gateway error: %s", resp.Status)
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
