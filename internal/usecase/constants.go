package usecase

import "time"

const (
	// DefaultPageSize is the page size applied when the caller sends none.
	DefaultPageSize = 20

	// MaxPageSize caps list queries.
	MaxPageSize = 100

	// GeneralBalanceCacheKey is the cache key for the unscoped balance.
	GeneralBalanceCacheKey = "balance:general"

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)
