package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress           string
	DatabaseURI          string
	GatewayAddress       string
	GatewaySecretKey     string
	GatewayWebhookSecret string
	JWTSecret            string
	AllowedOrigins       []string
	RateLimitWindow      time.Duration
	RateLimitMax         int
	ReconcileInterval    time.Duration
	ReconcileBatch       int
	WorkerPoolSize       int
	ShutdownTimeout      time.Duration
}

const (
	defaultRunAddress        = ":8080"
	defaultJWTSecret         = "change-me-in-production"
	defaultAllowedOrigins    = "http://localhost:3000"
	defaultRateLimitWindow   = 15 * time.Minute
	defaultRateLimitMax      = 100
	defaultReconcileInterval = 30 * time.Second
	defaultReconcileBatch    = 32
	defaultWorkerPoolSize    = 4
	defaultShutdownTimeout   = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:           getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:          getString(lookup, "DATABASE_URI", ""),
		GatewayAddress:       getString(lookup, "GATEWAY_ADDRESS", ""),
		GatewaySecretKey:     getString(lookup, "GATEWAY_SECRET_KEY", ""),
		GatewayWebhookSecret: getString(lookup, "GATEWAY_WEBHOOK_SECRET", ""),
		JWTSecret:            getString(lookup, "JWT_SECRET", defaultJWTSecret),
		AllowedOrigins:       splitOrigins(getString(lookup, "ALLOWED_ORIGINS", defaultAllowedOrigins)),
		RateLimitWindow:      getDuration(lookup, "RATE_LIMIT_WINDOW", defaultRateLimitWindow),
		RateLimitMax:         getInt(lookup, "RATE_LIMIT_MAX", defaultRateLimitMax),
		ReconcileInterval:    getDuration(lookup, "RECONCILE_INTERVAL", defaultReconcileInterval),
		ReconcileBatch:       getInt(lookup, "RECONCILE_BATCH", defaultReconcileBatch),
		WorkerPoolSize:       getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:      getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("solemart", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		originsStr           = strings.Join(cfg.AllowedOrigins, ",")
		rateWindowStr        = cfg.RateLimitWindow.String()
		reconcileIntervalStr = cfg.ReconcileInterval.String()
		shutdownTimeoutStr   = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.GatewayAddress, "g", cfg.GatewayAddress, "Payment gateway base URL")
	fs.StringVar(&cfg.GatewaySecretKey, "gateway-secret", cfg.GatewaySecretKey, "Payment gateway API secret key")
	fs.StringVar(&cfg.GatewayWebhookSecret, "webhook-secret", cfg.GatewayWebhookSecret, "Payment gateway webhook signing secret")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&originsStr, "origins", originsStr, "Comma separated list of allowed CORS origins")
	fs.StringVar(&rateWindowStr, "rate-window", rateWindowStr, "Rate limit window")
	fs.IntVar(&cfg.RateLimitMax, "rate-max", cfg.RateLimitMax, "Maximum requests per rate limit window")
	fs.StringVar(&reconcileIntervalStr, "reconcile-interval", reconcileIntervalStr, "Interval between payment reconciliation polls")
	fs.IntVar(&cfg.ReconcileBatch, "reconcile-batch", cfg.ReconcileBatch, "Maximum orders per reconciliation batch")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent reconciliation workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	cfg.AllowedOrigins = splitOrigins(originsStr)

	if cfg.RateLimitWindow, err = time.ParseDuration(rateWindowStr); err != nil {
		return nil, fmt.Errorf("invalid rate limit window: %w", err)
	}

	if cfg.ReconcileInterval, err = time.ParseDuration(reconcileIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid reconcile interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = string(content)
	}

	if cfg.RateLimitMax <= 0 {
		cfg.RateLimitMax = defaultRateLimitMax
	}

	if cfg.RateLimitWindow <= 0 {
		cfg.RateLimitWindow = defaultRateLimitWindow
	}

	if cfg.ReconcileInterval <= 0 {
		cfg.ReconcileInterval = defaultReconcileInterval
	}

	if cfg.ReconcileBatch <= 0 {
		cfg.ReconcileBatch = defaultReconcileBatch
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.GatewayAddress == "" {
		return nil, fmt.Errorf("payment gateway address must be provided")
	}

	return cfg, nil
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
