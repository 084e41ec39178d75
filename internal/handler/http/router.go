package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/teddyboy999/ecommerce-with-stripe/pkg/health"
	"github.com/teddyboy999/ecommerce-with-stripe/pkg/middleware"

	"github.com/teddyboy999/ecommerce-with-stripe/internal/catalog"
	"github.com/teddyboy999/ecommerce-with-stripe/internal/service"
)

// RouterConfig holds the dependencies and settings for the HTTP router.
type RouterConfig struct {
	CartService     *service.CartService
	CheckoutService *service.CheckoutService
	Catalog         *catalog.Catalog
	HealthHandler   *health.Handler
	Logger          *slog.Logger
	PprofCIDRs      []string
	CatalogCacheAge int
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(cfg.Logger))

	// Health check endpoints
	r.Get("/health/live", cfg.HealthHandler.LivenessHandler())
	r.Get("/health/ready", cfg.HealthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, cfg.PprofCIDRs, cfg.Logger)

	catalogHandler := NewCatalogHandler(cfg.Catalog, cfg.Logger)
	cartHandler := NewCartHandler(cfg.CartService, cfg.Logger)
	checkoutHandler := NewCheckoutHandler(cfg.CheckoutService, cfg.Logger)

	// The catalog is immutable for the process lifetime, so product
	// responses are cacheable.
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Use(middleware.CacheControl(cfg.CatalogCacheAge))

		r.Get("/", catalogHandler.ListProducts)
		r.Get("/{slug}", catalogHandler.GetProduct)
	})

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(SessionIDFromHeader)

		r.Get("/", cartHandler.GetCart)
		r.Delete("/", cartHandler.ClearCart)

		r.Post("/items", cartHandler.AddItem)
		r.Put("/items/{productId}", cartHandler.SetQuantity)
		r.Delete("/items/{productId}", cartHandler.RemoveItem)
	})

	r.Route("/api/v1/checkout", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(SessionIDFromHeader)

		r.Post("/", checkoutHandler.Initiate)
		r.Post("/complete", checkoutHandler.Complete)
	})

	return r
}
