// Package metrics exposes Prometheus counters for business operations.
// HTTP-level metrics live in the router middleware; these count domain
// events regardless of which surface triggered them.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/nmoreno/ventapos/internal/domain"
)

var (
	ProductsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "products_created_total",
			Help: "Total number of products registered",
		},
	)

	SalesRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sales_registered_total",
			Help: "Total number of finalized sales",
		},
	)

	SaleFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sale_failures_total",
			Help: "Total number of rejected sale registrations",
		},
		[]string{"reason"},
	)

	ExpensesRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "expenses_recorded_total",
			Help: "Total number of recorded expenses",
		},
	)
)

// SaleFailureReason buckets a sale-registration error into a bounded
// label value for SaleFailures.
func SaleFailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrProductNotFound):
		return "product_not_found"
	case errors.Is(err, domain.ErrEmptyCart), errors.Is(err, domain.ErrInvalidQuantity):
		return "invalid_cart"
	default:
		return "internal"
	}
}
