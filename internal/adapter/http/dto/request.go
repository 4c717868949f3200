package dto

import (
	"github.com/shopspring/decimal"

	"github.com/nmoreno/ventapos/internal/usecase"
)

// CreateProductRequest represents a request to register a product.
// Precio is a pointer so an absent field is distinguishable from zero.
type CreateProductRequest struct {
	Nombre      string           `json:"nombre"`
	Descripcion string           `json:"descripcion"`
	Cantidad    int64            `json:"cantidad"`
	Precio      *decimal.Decimal `json:"precio"`
	Categoria   string           `json:"categoria"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateProductRequest) ToUseCaseInput() usecase.CreateProductInput {
	price := decimal.Zero
	if r.Precio != nil {
		price = *r.Precio
	}

	return usecase.CreateProductInput{
		Name:        r.Nombre,
		Description: r.Descripcion,
		Quantity:    r.Cantidad,
		Price:       price,
		Category:    r.Categoria,
	}
}

// SaleItemRequest represents a single cart entry.
type SaleItemRequest struct {
	ProductoID string `json:"producto_id"`
	Cantidad   int64  `json:"cantidad"`
}

// RegisterSaleRequest represents a request to register a sale.
type RegisterSaleRequest struct {
	Productos []SaleItemRequest `json:"productos"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterSaleRequest) ToUseCaseInput() usecase.RegisterSaleInput {
	items := make([]usecase.SaleItemInput, len(r.Productos))
	for i, p := range r.Productos {
		items[i] = usecase.SaleItemInput{
			ProductID: p.ProductoID,
			Quantity:  p.Cantidad,
		}
	}

	return usecase.RegisterSaleInput{Items: items}
}

// RecordExpenseRequest represents a request to record an expense.
type RecordExpenseRequest struct {
	Monto       decimal.Decimal `json:"monto"`
	Descripcion string          `json:"descripcion"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordExpenseRequest) ToUseCaseInput() usecase.RecordExpenseInput {
	return usecase.RecordExpenseInput{
		Amount:      r.Monto,
		Description: r.Descripcion,
	}
}
