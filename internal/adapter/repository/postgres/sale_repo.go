package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/nmoreno/ventapos/internal/domain"
	"github.com/nmoreno/ventapos/internal/usecase"
)

// SaleRepository implements usecase.SaleRepository.
type SaleRepository struct {
	db queryer
}

// NewSaleRepository creates a new SaleRepository.
func NewSaleRepository(pool *pgxpool.Pool) *SaleRepository {
	return newSaleRepositoryWithDB(pool)
}

func newSaleRepositoryWithDB(db queryer) *SaleRepository {
	return &SaleRepository{db: db}
}

const createSaleSQL = `INSERT INTO ventas (id, total, fecha)
VALUES ($1, $2, $3)`

// Create inserts a sale header within a transaction.
func (r *SaleRepository) Create(ctx context.Context, tx usecase.Transaction, sale *domain.Sale) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, createSaleSQL,
		sale.ID,
		decimalToNumeric(sale.Total),
		timeToPgTimestamptz(sale.CreatedAt),
	)

	return err
}

const updateSaleTotalSQL = `UPDATE ventas
SET total = $2
WHERE id = $1`

// UpdateTotal finalizes the sale total within a transaction.
func (r *SaleRepository) UpdateTotal(ctx context.Context, tx usecase.Transaction, id string, total decimal.Decimal) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, updateSaleTotalSQL, id, decimalToNumeric(total))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrSaleNotFound
	}

	return nil
}

const getSaleByIDSQL = `SELECT id, total, fecha
FROM ventas
WHERE id = $1`

// GetByID retrieves a sale header by ID.
func (r *SaleRepository) GetByID(ctx context.Context, id string) (*domain.Sale, error) {
	sale, err := scanSale(r.db.QueryRow(ctx, getSaleByIDSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSaleNotFound
		}

		return nil, err
	}

	return sale, nil
}

const listSalesSQL = `SELECT id, total, fecha
FROM ventas
ORDER BY fecha DESC, id
LIMIT $1 OFFSET $2`

// List retrieves sale headers, newest first.
func (r *SaleRepository) List(ctx context.Context, limit, offset int) ([]*domain.Sale, error) {
	rows, err := r.db.Query(ctx, listSalesSQL, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := make([]*domain.Sale, 0, limit)
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}

		sales = append(sales, sale)
	}

	return sales, rows.Err()
}

const sumSaleTotalsSQL = `SELECT COALESCE(SUM(total), 0)
FROM ventas`

const sumSaleTotalsWindowSQL = sumSaleTotalsSQL + `
WHERE fecha >= $1 AND fecha < $2`

// SumTotals sums sale totals with fecha in [from, to). Nil bounds mean
// the whole table. COALESCE keeps an empty table summing to zero.
func (r *SaleRepository) SumTotals(ctx context.Context, from, to *time.Time) (decimal.Decimal, error) {
	var (
		row pgx.Row
		sum pgtype.Numeric
	)

	if from != nil && to != nil {
		row = r.db.QueryRow(ctx, sumSaleTotalsWindowSQL, timeToPgTimestamptz(*from), timeToPgTimestamptz(*to))
	} else {
		row = r.db.QueryRow(ctx, sumSaleTotalsSQL)
	}

	if err := row.Scan(&sum); err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

func scanSale(row rowScanner) (*domain.Sale, error) {
	var (
		sale      domain.Sale
		total     pgtype.Numeric
		createdAt pgtype.Timestamptz
	)

	if err := row.Scan(&sale.ID, &total, &createdAt); err != nil {
		return nil, err
	}

	sale.Total = numericToDecimal(total)
	sale.CreatedAt = createdAt.Time

	return &sale, nil
}
