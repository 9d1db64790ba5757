package test

import (
	"context"
	"sync/atomic"

	"go.uber.org/fx"
)

// LifecycleRecorder captures lifecycle hooks appended during tests and can
// replay them the way fx would.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

// Append stores hook for later invocation.
func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// StartAll invokes OnStart for every recorded hook in append order and
// stops at the first error.
func (l *LifecycleRecorder) StartAll(ctx context.Context) error {
	for _, h := range l.Hooks {
		if h.OnStart == nil {
			continue
		}
		if err := h.OnStart(ctx); err != nil {
			return err
		}
	}
	return nil
}

// StopAll invokes OnStop for every recorded hook in reverse order,
// mirroring fx shutdown, and returns the first error.
func (l *LifecycleRecorder) StopAll(ctx context.Context) error {
	var firstErr error
	for i := len(l.Hooks) - 1; i >= 0; i-- {
		h := l.Hooks[i]
		if h.OnStop == nil {
			continue
		}
		if err := h.OnStop(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ShutdownerStub records shutdown invocations.
type ShutdownerStub struct {
	Called chan struct{}

	calls atomic.Int64
}

// Shutdown notifies tests about graceful termination.
func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	s.calls.Add(1)
	if s.Called != nil {
		select {
		case s.Called <- struct{}{}:
		default:
		}
	}
	return nil
}

// Calls reports how many times Shutdown was invoked.
func (s *ShutdownerStub) Calls() int64 {
	return s.calls.Load()
}
