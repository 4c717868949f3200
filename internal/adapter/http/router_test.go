package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nmoreno/ventapos/internal/adapter/http/handler"
	apimiddleware "github.com/nmoreno/ventapos/internal/adapter/http/middleware"
	"github.com/nmoreno/ventapos/internal/domain"
	"github.com/nmoreno/ventapos/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"nombre":"Cafe","cantidad":3,"precio":"7.50"}`
	req := httptest.NewRequest(http.MethodPost, "/api/productos/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/productos/",
		"GET /api/productos/",
		"GET /api/productos/{id}",
		"POST /api/ventas/",
		"GET /api/ventas/{id}",
		"GET /api/ventas/balance/dia",
		"GET /api/ventas/balance/general",
		"POST /api/gastos/",
		"GET /api/gastos/",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	cfg := RouterConfig{
		HealthHandler:  &handler.HealthHandler{},
		ProductHandler: handler.NewProductHandler(&stubProductService{}),
		SaleHandler:    handler.NewSaleHandler(&stubSaleService{}),
		BalanceHandler: handler.NewBalanceHandler(&stubBalanceService{}),
		ExpenseHandler: handler.NewExpenseHandler(&stubExpenseService{}),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubProductService struct{}

func (stubProductService) CreateProduct(ctx context.Context, input usecase.CreateProductInput) (*domain.Product, error) {
	return &domain.Product{ID: "prod"}, nil
}

func (stubProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return &domain.Product{ID: id}, nil
}

func (stubProductService) ListProducts(ctx context.Context, input usecase.ListProductsInput) ([]*domain.Product, error) {
	return []*domain.Product{}, nil
}

type stubSaleService struct{}

func (stubSaleService) RegisterSale(ctx context.Context, input usecase.RegisterSaleInput) (*domain.Sale, []*domain.SaleLineItem, error) {
	return &domain.Sale{ID: "sale"}, nil, nil
}

func (stubSaleService) GetSale(ctx context.Context, id string) (*domain.Sale, []*domain.SaleLineItem, error) {
	return &domain.Sale{ID: id}, nil, nil
}

func (stubSaleService) ListSales(ctx context.Context, input usecase.ListSalesInput) ([]*domain.Sale, error) {
	return []*domain.Sale{}, nil
}

type stubBalanceService struct{}

func (stubBalanceService) DailyBalance(ctx context.Context, date time.Time) (domain.Balance, error) {
	return domain.Balance{}, nil
}

func (stubBalanceService) GeneralBalance(ctx context.Context) (domain.Balance, error) {
	return domain.Balance{}, nil
}

type stubExpenseService struct{}

func (stubExpenseService) RecordExpense(ctx context.Context, input usecase.RecordExpenseInput) (*domain.Expense, error) {
	return &domain.Expense{ID: "exp"}, nil
}

func (stubExpenseService) ListExpenses(ctx context.Context, input usecase.ListExpensesInput) ([]*domain.Expense, error) {
	return []*domain.Expense{}, nil
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
