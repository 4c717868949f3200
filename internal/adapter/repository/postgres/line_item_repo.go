package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nmoreno/ventapos/internal/domain"
	"github.com/nmoreno/ventapos/internal/usecase"
)

// LineItemRepository implements usecase.LineItemRepository.
type LineItemRepository struct {
	db queryer
}

// NewLineItemRepository creates a new LineItemRepository.
func NewLineItemRepository(pool *pgxpool.Pool) *LineItemRepository {
	return newLineItemRepositoryWithDB(pool)
}

func newLineItemRepositoryWithDB(db queryer) *LineItemRepository {
	return &LineItemRepository{db: db}
}

const createLineItemSQL = `INSERT INTO ventas_productos (id, venta_id, producto_id, cantidad, precio_unitario, fecha)
VALUES ($1, $2, $3, $4, $5, $6)`

// Create inserts a sale line item within a transaction. The unit price is
// the price at the time of sale, not a reference to the product row.
func (r *LineItemRepository) Create(ctx context.Context, tx usecase.Transaction, item *domain.SaleLineItem) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, createLineItemSQL,
		item.ID,
		item.SaleID,
		item.ProductID,
		item.Quantity,
		decimalToNumeric(item.UnitPrice),
		timeToPgTimestamptz(item.CreatedAt),
	)

	return err
}

const getLineItemsBySaleSQL = `SELECT id, venta_id, producto_id, cantidad, precio_unitario, fecha
FROM ventas_productos
WHERE venta_id = $1
ORDER BY id`

// GetBySale retrieves all line items for a sale.
func (r *LineItemRepository) GetBySale(ctx context.Context, saleID string) ([]*domain.SaleLineItem, error) {
	rows, err := r.db.Query(ctx, getLineItemsBySaleSQL, saleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.SaleLineItem
	for rows.Next() {
		var (
			item      domain.SaleLineItem
			unitPrice pgtype.Numeric
			createdAt pgtype.Timestamptz
		)

		err := rows.Scan(
			&item.ID,
			&item.SaleID,
			&item.ProductID,
			&item.Quantity,
			&unitPrice,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		item.UnitPrice = numericToDecimal(unitPrice)
		item.CreatedAt = createdAt.Time
		items = append(items, &item)
	}

	return items, rows.Err()
}
