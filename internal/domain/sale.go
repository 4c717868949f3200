package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale represents the header of one completed transaction. It is created
// provisionally with a zero total and finalized once every line item has
// been recorded.
type Sale struct {
	ID        string
	Total     decimal.Decimal
	CreatedAt time.Time
}

// SaleLineItem records one product's contribution to a sale. UnitPrice is a
// snapshot of the product's price at sale time and never changes afterwards.
type SaleLineItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	CreatedAt time.Time
}

// Subtotal returns unit price times quantity.
func (li *SaleLineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(li.Quantity))
}

// SaleTotal sums the subtotals of a sale's line items.
func SaleTotal(items []*SaleLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, li := range items {
		total = total.Add(li.Subtotal())
	}

	return total
}
