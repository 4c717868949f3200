package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/nmoreno/ventapos/internal/adapter/http/handler"
	"github.com/nmoreno/ventapos/internal/adapter/http/middleware"
	"github.com/nmoreno/ventapos/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	ProductHandler   *handler.ProductHandler
	SaleHandler      *handler.SaleHandler
	BalanceHandler   *handler.BalanceHandler
	ExpenseHandler   *handler.ExpenseHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	RateLimiter      *middleware.RateLimiter
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API
	r.Route("/api", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Products
		r.Route("/productos", func(r chi.Router) {
			r.Post("/", cfg.ProductHandler.Create)
			r.Get("/", cfg.ProductHandler.List)
			r.Get("/{id}", cfg.ProductHandler.Get)
		})

		// Sales and balances
		r.Route("/ventas", func(r chi.Router) {
			r.Post("/", cfg.SaleHandler.Create)
			r.Get("/", cfg.SaleHandler.List)
			r.Get("/balance/dia", cfg.BalanceHandler.Daily)
			r.Get("/balance/general", cfg.BalanceHandler.General)
			r.Get("/{id}", cfg.SaleHandler.Get)
		})

		// Expenses
		r.Route("/gastos", func(r chi.Router) {
			r.Post("/", cfg.ExpenseHandler.Create)
			r.Get("/", cfg.ExpenseHandler.List)
		})
	})

	return r
}
