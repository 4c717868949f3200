package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nmoreno/ventapos/internal/domain"
)

// ProductRepository defines data access for products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Product, error)
	DeductStock(ctx context.Context, tx Transaction, id string, qty int64, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Product, error)
}

// SaleRepository defines data access for sale headers.
type SaleRepository interface {
	Create(ctx context.Context, tx Transaction, sale *domain.Sale) error
	UpdateTotal(ctx context.Context, tx Transaction, id string, total decimal.Decimal) error
	GetByID(ctx context.Context, id string) (*domain.Sale, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Sale, error)
	// SumTotals sums sale totals with timestamps in [from, to). Nil bounds
	// mean unbounded. Zero rows sum to decimal zero.
	SumTotals(ctx context.Context, from, to *time.Time) (decimal.Decimal, error)
}

// LineItemRepository defines data access for sale line items.
type LineItemRepository interface {
	Create(ctx context.Context, tx Transaction, item *domain.SaleLineItem) error
	GetBySale(ctx context.Context, saleID string) ([]*domain.SaleLineItem, error)
}

// ExpenseRepository defines data access for expenses.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) error
	List(ctx context.Context, limit, offset int) ([]*domain.Expense, error)
	// SumAmounts sums expense amounts with timestamps in [from, to). Nil
	// bounds mean unbounded. Zero rows sum to decimal zero.
	SumAmounts(ctx context.Context, from, to *time.Time) (decimal.Decimal, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs an operation on transient store failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
