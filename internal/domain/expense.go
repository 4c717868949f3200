package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a recorded outflow.
type Expense struct {
	ID          string
	Amount      decimal.Decimal
	Description string
	CreatedAt   time.Time
}

// Validate checks the fields required to record an expense.
func (e *Expense) Validate() error {
	if e.Amount.IsNegative() {
		return ErrNegativeAmount
	}

	return nil
}
