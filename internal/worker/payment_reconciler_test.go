package worker

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/solemart/solemart/internal/adapter/gateway"
	"github.com/solemart/solemart/internal/domain/model"
	"github.com/solemart/solemart/internal/test/facades"
)

func TestNewPaymentReconcilerDefaults(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	rec := NewPaymentReconciler(&facades.WorkerFacadeStub{}, time.Second, 0, 0, logger)
	if rec.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", rec.batchSize)
	}
	if rec.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", rec.workers)
	}
}

func TestPaymentReconcilerProcessesOrders(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := &facades.WorkerFacadeStub{Batches: [][]model.Order{{{ID: 1, Number: "SM-1"}}}}
	rec := NewPaymentReconciler(facade, 10*time.Millisecond, 1, 1, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for {
		facade.Lock()
		processed := len(facade.Reconciled) > 0
		facade.Unlock()
		if processed {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for reconciliation")
		case <-time.After(10 * time.Millisecond):
		}
	}

	rec.Stop()
	facade.Lock()
	defer facade.Unlock()
	if len(facade.Reconciled) == 0 {
		t.Fatalf("expected reconciliation call")
	}
	if facade.Reconciled[0].OrderID != 1 {
		t.Fatalf("expected order 1 reconciled, got %v", facade.Reconciled[0].OrderID)
	}
}

func TestPaymentReconcilerHandlesRateLimiting(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	attempts := int32(0)
	processed := make(chan struct{}, 1)
	facade := &facades.WorkerFacadeStub{
		Batches: [][]model.Order{{{ID: 1, Number: "SM-1"}}, {{ID: 1, Number: "SM-1"}}},
		ReconcileFn: func(ctx context.Context, order model.Order) error {
			if atomic.AddInt32(&attempts, 1) == 1 {
				return gateway.TooManyRequestsError{RetryAfter: 10 * time.Millisecond}
			}
			select {
			case processed <- struct{}{}:
			default:
			}
			return nil
		},
	}

	rec := NewPaymentReconciler(facade, 5*time.Millisecond, 1, 1, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.Start(ctx)

	select {
	case <-processed:
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for retry")
	}
	rec.Stop()
}
