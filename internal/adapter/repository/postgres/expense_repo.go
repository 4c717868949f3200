package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/nmoreno/ventapos/internal/domain"
)

// ExpenseRepository implements usecase.ExpenseRepository.
type ExpenseRepository struct {
	db queryer
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return newExpenseRepositoryWithDB(pool)
}

func newExpenseRepositoryWithDB(db queryer) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

const createExpenseSQL = `INSERT INTO gastos (id, monto, descripcion, fecha)
VALUES ($1, $2, $3, $4)`

// Create inserts a new expense.
func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	_, err := r.db.Exec(ctx, createExpenseSQL,
		expense.ID,
		decimalToNumeric(expense.Amount),
		expense.Description,
		timeToPgTimestamptz(expense.CreatedAt),
	)

	return err
}

const listExpensesSQL = `SELECT id, monto, descripcion, fecha
FROM gastos
ORDER BY fecha DESC, id
LIMIT $1 OFFSET $2`

// List retrieves expenses, newest first.
func (r *ExpenseRepository) List(ctx context.Context, limit, offset int) ([]*domain.Expense, error) {
	rows, err := r.db.Query(ctx, listExpensesSQL, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := make([]*domain.Expense, 0, limit)
	for rows.Next() {
		var (
			expense   domain.Expense
			amount    pgtype.Numeric
			createdAt pgtype.Timestamptz
		)

		if err := rows.Scan(&expense.ID, &amount, &expense.Description, &createdAt); err != nil {
			return nil, err
		}

		expense.Amount = numericToDecimal(amount)
		expense.CreatedAt = createdAt.Time
		expenses = append(expenses, &expense)
	}

	return expenses, rows.Err()
}

const sumExpenseAmountsSQL = `SELECT COALESCE(SUM(monto), 0)
FROM gastos`

const sumExpenseAmountsWindowSQL = sumExpenseAmountsSQL + `
WHERE fecha >= $1 AND fecha < $2`

// SumAmounts sums expense amounts with fecha in [from, to). Nil bounds
// mean the whole table.
func (r *ExpenseRepository) SumAmounts(ctx context.Context, from, to *time.Time) (decimal.Decimal, error) {
	var (
		row pgx.Row
		sum pgtype.Numeric
	)

	if from != nil && to != nil {
		row = r.db.QueryRow(ctx, sumExpenseAmountsWindowSQL, timeToPgTimestamptz(*from), timeToPgTimestamptz(*to))
	} else {
		row = r.db.QueryRow(ctx, sumExpenseAmountsSQL)
	}

	if err := row.Scan(&sum); err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}
