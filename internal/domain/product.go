package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a stockable item.
type Product struct {
	ID          string
	Name        string
	Description string
	Quantity    int64
	Price       decimal.Decimal
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the fields required to create a product.
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrNameRequired
	}

	if p.Price.IsNegative() {
		return ErrNegativePrice
	}

	if p.Quantity < 0 {
		return ErrNegativeStock
	}

	return nil
}

// CheckStock checks if qty units can be taken from stock.
func (p *Product) CheckStock(qty int64) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	if qty > p.Quantity {
		return fmt.Errorf("%w for %s", ErrInsufficientStock, p.Name)
	}

	return nil
}

// Deduct removes qty units from the in-memory stock count.
func (p *Product) Deduct(qty int64) {
	p.Quantity -= qty
}
