package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nmoreno/ventapos/internal/domain"
)

// ExpenseUseCase handles expense business logic.
type ExpenseUseCase struct {
	expenseRepo ExpenseRepository
	idGen       IDGenerator
	cache       Cache
}

// NewExpenseUseCase creates a new ExpenseUseCase. cache is optional.
func NewExpenseUseCase(expenseRepo ExpenseRepository, idGen IDGenerator, cache Cache) *ExpenseUseCase {
	return &ExpenseUseCase{
		expenseRepo: expenseRepo,
		idGen:       idGen,
		cache:       cache,
	}
}

// RecordExpenseInput represents input for recording an expense.
type RecordExpenseInput struct {
	Amount      decimal.Decimal
	Description string
}

// RecordExpense records a new outflow.
func (uc *ExpenseUseCase) RecordExpense(ctx context.Context, input RecordExpenseInput) (*domain.Expense, error) {
	expense := &domain.Expense{
		ID:          uc.idGen.Generate(),
		Amount:      input.Amount,
		Description: input.Description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := expense.Validate(); err != nil {
		return nil, err
	}

	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, GeneralBalanceCacheKey)
	}

	return expense, nil
}

// ListExpensesInput represents input for listing expenses.
type ListExpensesInput struct {
	Limit  int
	Offset int
}

// ListExpenses lists expenses with pagination.
func (uc *ExpenseUseCase) ListExpenses(ctx context.Context, input ListExpensesInput) ([]*domain.Expense, error) {
	if input.Limit <= 0 {
		input.Limit = DefaultPageSize
	}

	if input.Limit > MaxPageSize {
		input.Limit = MaxPageSize
	}

	return uc.expenseRepo.List(ctx, input.Limit, input.Offset)
}
