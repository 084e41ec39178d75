package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/teddyboy999/ecommerce-with-stripe/pkg/database"
	"github.com/teddyboy999/ecommerce-with-stripe/pkg/health"
	"github.com/teddyboy999/ecommerce-with-stripe/pkg/httpclient"
	pkgkafka "github.com/teddyboy999/ecommerce-with-stripe/pkg/kafka"
	"github.com/teddyboy999/ecommerce-with-stripe/pkg/tracing"

	"github.com/teddyboy999/ecommerce-with-stripe/internal/catalog"
	"github.com/teddyboy999/ecommerce-with-stripe/internal/config"
	"github.com/teddyboy999/ecommerce-with-stripe/internal/event"
	handler "github.com/teddyboy999/ecommerce-with-stripe/internal/handler/http"
	"github.com/teddyboy999/ecommerce-with-stripe/internal/provider"
	"github.com/teddyboy999/ecommerce-with-stripe/internal/provider/hosted"
	"github.com/teddyboy999/ecommerce-with-stripe/internal/provider/mock"
	redisrepo "github.com/teddyboy999/ecommerce-with-stripe/internal/repository/redis"
	"github.com/teddyboy999/ecommerce-with-stripe/internal/service"
)

// App wires together all dependencies and runs the storefront.
type App struct {
	cfg             *config.Config
	logger          *slog.Logger
	rdb             *redis.Client
	producer        *pkgkafka.Producer
	httpServer      *http.Server
	tracingShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Tracing (no-op when disabled).
	tracingCfg := tracing.DefaultConfig("storefront")
	tracingCfg.Environment = cfg.Environment
	tracingCfg.OTLPEndpoint = cfg.OTLPEndpoint
	tracingCfg.SampleRate = cfg.TraceSampleRate
	tracingCfg.Enabled = cfg.TracingEnabled
	tracingShutdown, err := tracing.InitTracer(ctx, tracingCfg)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	// Product catalog; built before the server accepts any request.
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	logger.Info("catalog loaded", slog.Int("products", cat.Len()))

	// Redis.
	rdb, err := database.NewRedisClient(ctx, database.RedisConfig{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("host", cfg.RedisHost),
		slog.Int("db", cfg.RedisDB),
	)

	// Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Build the dependency graph.
	cartTTL := time.Duration(cfg.CartTTL) * time.Hour
	repo := redisrepo.NewCartRepository(rdb, cat, logger, cartTTL)
	eventProducer := event.NewProducer(producer, logger)
	cartService := service.NewCartService(repo, cat, eventProducer, logger, cartTTL)

	paymentProvider, err := newPaymentProvider(cfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("payment provider initialized", slog.String("provider", paymentProvider.Name()))

	checkoutService := service.NewCheckoutService(cartService, paymentProvider, eventProducer, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})

	// HTTP router.
	router := handler.NewRouter(handler.RouterConfig{
		CartService:     cartService,
		CheckoutService: checkoutService,
		Catalog:         cat,
		HealthHandler:   healthHandler,
		Logger:          logger,
		PprofCIDRs:      cfg.PprofCIDRs,
		CatalogCacheAge: cfg.CatalogCacheAge,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		rdb:             rdb,
		producer:        producer,
		httpServer:      httpServer,
		tracingShutdown: tracingShutdown,
	}, nil
}

// loadCatalog builds the catalog from CATALOG_PATH or the built-in set.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath != "" {
		return catalog.LoadFile(cfg.CatalogPath)
	}
	return catalog.NewDefault()
}

// newPaymentProvider builds the configured payment session provider.
func newPaymentProvider(cfg *config.Config, logger *slog.Logger) (provider.Provider, error) {
	switch cfg.PaymentProvider {
	case "hosted":
		client := httpclient.New(httpclient.DefaultConfig())
		cb := httpclient.NewCircuitBreakerClient(client, httpclient.DefaultCircuitBreakerConfig("payment-provider"), logger)
		return hosted.NewProvider(cb, cfg.PaymentEndpoint, logger), nil
	case "mock":
		return mock.NewProvider(), nil
	default:
		return nil, fmt.Errorf("unknown payment provider: %q", cfg.PaymentProvider)
	}
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	if err := a.tracingShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
