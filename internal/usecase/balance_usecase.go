package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nmoreno/ventapos/internal/domain"
)

// BalanceUseCase is a pure reader that derives income/expense balances from
// the sales and expenses the other use cases persist.
type BalanceUseCase struct {
	saleRepo    SaleRepository
	expenseRepo ExpenseRepository
	cache       Cache
	cacheTTL    time.Duration
}

// NewBalanceUseCase creates a new BalanceUseCase. cache is optional; when set,
// the general balance is served read-through with cacheTTL.
func NewBalanceUseCase(saleRepo SaleRepository, expenseRepo ExpenseRepository, cache Cache, cacheTTL time.Duration) *BalanceUseCase {
	return &BalanceUseCase{
		saleRepo:    saleRepo,
		expenseRepo: expenseRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

// DailyBalance sums sales and expenses recorded within the calendar day of
// date, in UTC. The window is [00:00, next day 00:00).
func (uc *BalanceUseCase) DailyBalance(ctx context.Context, date time.Time) (domain.Balance, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	next := day.AddDate(0, 0, 1)

	income, err := uc.saleRepo.SumTotals(ctx, &day, &next)
	if err != nil {
		return domain.Balance{}, err
	}

	expenses, err := uc.expenseRepo.SumAmounts(ctx, &day, &next)
	if err != nil {
		return domain.Balance{}, err
	}

	balance := domain.NewBalance(income, expenses)
	balance.Date = &day

	return balance, nil
}

// GeneralBalance sums all sales and all expenses with no date filter.
func (uc *BalanceUseCase) GeneralBalance(ctx context.Context) (domain.Balance, error) {
	if uc.cache != nil {
		if raw, err := uc.cache.Get(ctx, GeneralBalanceCacheKey); err == nil {
			var balance domain.Balance
			if json.Unmarshal(raw, &balance) == nil {
				return balance, nil
			}
		}
	}

	income, err := uc.saleRepo.SumTotals(ctx, nil, nil)
	if err != nil {
		return domain.Balance{}, err
	}

	expenses, err := uc.expenseRepo.SumAmounts(ctx, nil, nil)
	if err != nil {
		return domain.Balance{}, err
	}

	balance := domain.NewBalance(income, expenses)

	if uc.cache != nil {
		if raw, err := json.Marshal(balance); err == nil {
			_ = uc.cache.Set(ctx, GeneralBalanceCacheKey, raw, uc.cacheTTL)
		}
	}

	return balance, nil
}
