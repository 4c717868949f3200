package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance is a derived income/expense view. It is computed, never persisted.
// Date is set only for daily balances.
type Balance struct {
	Date     *time.Time
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Balance  decimal.Decimal
}

// NewBalance derives a balance from income and expense totals.
func NewBalance(income, expenses decimal.Decimal) Balance {
	return Balance{
		Income:   income,
		Expenses: expenses,
		Balance:  income.Sub(expenses),
	}
}
