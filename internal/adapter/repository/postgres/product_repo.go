package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/nmoreno/ventapos/internal/domain"
	"github.com/nmoreno/ventapos/internal/usecase"
)

// queryer is the subset of pgxpool.Pool the repositories need.
type queryer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

// ProductRepository implements usecase.ProductRepository.
type ProductRepository struct {
	db queryer
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return newProductRepositoryWithDB(pool)
}

func newProductRepositoryWithDB(db queryer) *ProductRepository {
	return &ProductRepository{db: db}
}

const createProductSQL = `INSERT INTO productos (id, nombre, descripcion, cantidad, precio, categoria, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

// Create inserts a new product.
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	_, err := r.db.Exec(ctx, createProductSQL,
		product.ID,
		product.Name,
		product.Description,
		product.Quantity,
		decimalToNumeric(product.Price),
		product.Category,
		timeToPgTimestamptz(product.CreatedAt),
		timeToPgTimestamptz(product.UpdatedAt),
	)

	return err
}

const getProductByIDSQL = `SELECT id, nombre, descripcion, cantidad, precio, categoria, created_at, updated_at
FROM productos
WHERE id = $1`

// GetByID retrieves a product by ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	product, err := scanProduct(r.db.QueryRow(ctx, getProductByIDSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}

		return nil, err
	}

	return product, nil
}

const getProductsByIDsForUpdateSQL = `SELECT id, nombre, descripcion, cantidad, precio, categoria, created_at, updated_at
FROM productos
WHERE id = ANY($1)
ORDER BY id
FOR UPDATE`

// GetByIDsForUpdate retrieves multiple products by IDs with FOR UPDATE locks.
// Rows come back in ID order so concurrent callers lock in the same order.
func (r *ProductRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Product, error) {
	pgxTx := tx.(*Tx).PgxTx()

	rows, err := pgxTx.Query(ctx, getProductsByIDsForUpdateSQL, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]*domain.Product, 0, len(ids))
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}

		products = append(products, product)
	}

	return products, rows.Err()
}

const deductStockSQL = `UPDATE productos
SET cantidad = cantidad - $2, updated_at = $3
WHERE id = $1 AND cantidad >= $2`

// DeductStock decrements a product's stock within a transaction. The
// cantidad >= $2 guard means the row is never driven below zero even if
// a writer slipped past the application-level check.
func (r *ProductRepository) DeductStock(ctx context.Context, tx usecase.Transaction, id string, qty int64, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, deductStockSQL, id, qty, timeToPgTimestamptz(updatedAt))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}

	return nil
}

const listProductsSQL = `SELECT id, nombre, descripcion, cantidad, precio, categoria, created_at, updated_at
FROM productos
ORDER BY created_at DESC, id
LIMIT $1 OFFSET $2`

// List retrieves products ordered by creation time, newest first.
func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*domain.Product, error) {
	rows, err := r.db.Query(ctx, listProductsSQL, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]*domain.Product, 0, limit)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}

		products = append(products, product)
	}

	return products, rows.Err()
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		product   domain.Product
		price     pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Quantity,
		&price,
		&product.Category,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	product.Price = numericToDecimal(price)
	product.CreatedAt = createdAt.Time
	product.UpdatedAt = updatedAt.Time

	return &product, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
