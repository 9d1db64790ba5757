package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/solemart/solemart/internal/config"
	testhelpers "github.com/solemart/solemart/internal/test"
	"github.com/solemart/solemart/internal/test/facades"
	"github.com/solemart/solemart/internal/worker"
)

func newTestReconciler() *worker.PaymentReconciler {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return worker.NewPaymentReconciler(&facades.WorkerFacadeStub{}, 10*time.Millisecond, 1, 1, logger)
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{RunAddress: ":9999"}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router})
	if server.Addr != ":9999" {
		t.Fatalf("expected address :9999, got %q", server.Addr)
	}
	if server.Handler != router {
		t.Fatalf("expected handler to be router")
	}
}

func TestNewPaymentReconcilerUsesConfig(t *testing.T) {
	rec := newPaymentReconciler(workerParams{
		Facade: &StoreFacade{},
		Config: &config.Config{ReconcileInterval: 15 * time.Second, ReconcileBatch: 3, WorkerPoolSize: 4},
		Logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	})
	if rec == nil {
		t.Fatal("expected reconciler instance")
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	reconciler := newTestReconciler()
	cfg := &config.Config{ShutdownTimeout: 100 * time.Millisecond}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     logger,
		Server:     server,
		Worker:     reconciler,
		Config:     cfg,
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(recorder.Hooks))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := recorder.StartAll(ctx); err != nil {
		t.Fatalf("on start failed: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = recorder.StopAll(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected on stop to finish")
	}
}

func TestRegisterLifecycleShutdownOnServerError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	server := &http.Server{Addr: "bad addr"}
	reconciler := newTestReconciler()

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     logger,
		Server:     server,
		Worker:     reconciler,
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	hook := recorder.Hooks[0]
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("on start returned error: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown to be triggered on server error")
	}

	_ = hook.OnStop(context.Background())
}

func TestLifecycleRecorderReplay(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	recorder.Append(fx.Hook{})

	var order []string
	recorder.Append(fx.Hook{
		OnStart: func(context.Context) error { order = append(order, "start-a"); return nil },
		OnStop:  func(context.Context) error { order = append(order, "stop-a"); return nil },
	})
	recorder.Append(fx.Hook{
		OnStart: func(context.Context) error { order = append(order, "start-b"); return nil },
		OnStop:  func(context.Context) error { order = append(order, "stop-b"); return nil },
	})

	if len(recorder.Hooks) != 3 {
		t.Fatalf("expected three hooks, got %d", len(recorder.Hooks))
	}
	if err := recorder.StartAll(context.Background()); err != nil {
		t.Fatalf("start all: %v", err)
	}
	if err := recorder.StopAll(context.Background()); err != nil {
		t.Fatalf("stop all: %v", err)
	}

	want := []string{"start-a", "start-b", "stop-b", "stop-a"}
	if len(order) != len(want) {
		t.Fatalf("expected %d invocations, got %v", len(want), order)
	}
	for i, step := range want {
		if order[i] != step {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestShutdownerStub(t *testing.T) {
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	if err := shutdowner.Shutdown(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	select {
	case <-shutdowner.Called:
	default:
		t.Fatal("expected shutdown notification")
	}
	if shutdowner.Calls() != 1 {
		t.Fatalf("expected one shutdown call, got %d", shutdowner.Calls())
	}
}
