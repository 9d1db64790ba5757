package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/solemart/solemart/internal/adapter/gateway"
	"github.com/solemart/solemart/internal/domain/model"
)

// PaymentFacade exposes the subset of application functionality required by the worker.
type PaymentFacade interface {
	PendingPayments(ctx context.Context, limit int) ([]model.Order, error)
	ReconcilePayment(ctx context.Context, order model.Order) error
}

// PaymentReconciler polls the gateway for card orders whose payment
// outcome never arrived via webhook and applies the final state.
type PaymentReconciler struct {
	facade       PaymentFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewPaymentReconciler constructs the reconciliation worker pool.
func NewPaymentReconciler(facade PaymentFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *PaymentReconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &PaymentReconciler{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
	}
}

// Start launches background reconciliation.
func (p *PaymentReconciler) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *PaymentReconciler) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *PaymentReconciler) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *PaymentReconciler) fetchAndDispatch(ctx context.Context) {
	orders, err := p.facade.PendingPayments(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch pending payments failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- order:
		}
	}
}

func (p *PaymentReconciler) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handleOrder(ctx, order)
		}
	}
}

func (p *PaymentReconciler) handleOrder(ctx context.Context, order model.Order) {
	if err := p.facade.ReconcilePayment(ctx, order); err != nil {
		if rateLimited, ok := err.(gateway.TooManyRequestsError); ok {
			p.logger.Warn("gateway rate limited", slog.Duration("retry_after", rateLimited.RetryAfter))
			time.Sleep(rateLimited.RetryAfter)
			return
		}
		p.logger.Error("payment reconciliation failed",
			slog.String("order", order.Number), slog.String("error", err.Error()))
	}
}
