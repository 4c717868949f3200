package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nmoreno/ventapos/internal/domain"
)

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// ProductResponse represents a product in API responses.
type ProductResponse struct {
	ID          string          `json:"id"`
	Nombre      string          `json:"nombre"`
	Descripcion string          `json:"descripcion"`
	Cantidad    int64           `json:"cantidad"`
	Precio      decimal.Decimal `json:"precio"`
	Categoria   string          `json:"categoria"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductFromDomain converts a domain product to a response.
func ProductFromDomain(p *domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID,
		Nombre:      p.Name,
		Descripcion: p.Description,
		Cantidad:    p.Quantity,
		Precio:      p.Price,
		Categoria:   p.Category,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ProductsFromDomain converts domain products to responses.
func ProductsFromDomain(products []*domain.Product) []*ProductResponse {
	result := make([]*ProductResponse, len(products))
	for i, p := range products {
		result[i] = ProductFromDomain(p)
	}
	return result
}

// ListProductsResponse wraps a product listing.
type ListProductsResponse struct {
	Productos []*ProductResponse `json:"productos"`
	Total     int64              `json:"total"`
}

// SaleResponse represents a sale header in API responses.
type SaleResponse struct {
	ID    string          `json:"id"`
	Total decimal.Decimal `json:"total"`
	Fecha time.Time       `json:"fecha"`
}

// SaleFromDomain converts a domain sale to a response.
func SaleFromDomain(s *domain.Sale) *SaleResponse {
	return &SaleResponse{
		ID:    s.ID,
		Total: s.Total,
		Fecha: s.CreatedAt,
	}
}

// SalesFromDomain converts domain sales to responses.
func SalesFromDomain(sales []*domain.Sale) []*SaleResponse {
	result := make([]*SaleResponse, len(sales))
	for i, s := range sales {
		result[i] = SaleFromDomain(s)
	}
	return result
}

// ListSalesResponse wraps a sale listing.
type ListSalesResponse struct {
	Ventas []*SaleResponse `json:"ventas"`
	Total  int64           `json:"total"`
}

// LineItemResponse represents a sale line item in API responses.
type LineItemResponse struct {
	ID             string          `json:"id"`
	VentaID        string          `json:"venta_id"`
	ProductoID     string          `json:"producto_id"`
	Cantidad       int64           `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Fecha          time.Time       `json:"fecha"`
}

// LineItemFromDomain converts a domain line item to a response.
func LineItemFromDomain(item *domain.SaleLineItem) *LineItemResponse {
	return &LineItemResponse{
		ID:             item.ID,
		VentaID:        item.SaleID,
		ProductoID:     item.ProductID,
		Cantidad:       item.Quantity,
		PrecioUnitario: item.UnitPrice,
		Fecha:          item.CreatedAt,
	}
}

// LineItemsFromDomain converts domain line items to responses.
func LineItemsFromDomain(items []*domain.SaleLineItem) []*LineItemResponse {
	result := make([]*LineItemResponse, len(items))
	for i, item := range items {
		result[i] = LineItemFromDomain(item)
	}
	return result
}

// RegisterSaleResponse is the payload returned after registering a sale:
// the finalized header plus its line items.
type RegisterSaleResponse struct {
	Venta     *SaleResponse       `json:"venta"`
	Productos []*LineItemResponse `json:"productos"`
}

// BalanceResponse represents an income/expense balance in API responses.
// Fecha is present only for daily balances.
type BalanceResponse struct {
	Fecha    string          `json:"fecha,omitempty"`
	Ingresos decimal.Decimal `json:"ingresos"`
	Gastos   decimal.Decimal `json:"gastos"`
	Balance  decimal.Decimal `json:"balance"`
}

// BalanceFromDomain converts a domain balance to a response.
func BalanceFromDomain(b domain.Balance) *BalanceResponse {
	resp := &BalanceResponse{
		Ingresos: b.Income,
		Gastos:   b.Expenses,
		Balance:  b.Balance,
	}
	if b.Date != nil {
		resp.Fecha = b.Date.Format(dateLayout)
	}
	return resp
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	Monto       decimal.Decimal `json:"monto"`
	Descripcion string          `json:"descripcion"`
	Fecha       time.Time       `json:"fecha"`
}

// ExpenseFromDomain converts a domain expense to a response.
func ExpenseFromDomain(e *domain.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		Monto:       e.Amount,
		Descripcion: e.Description,
		Fecha:       e.CreatedAt,
	}
}

// ExpensesFromDomain converts domain expenses to responses.
func ExpensesFromDomain(expenses []*domain.Expense) []*ExpenseResponse {
	result := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		result[i] = ExpenseFromDomain(e)
	}
	return result
}

// ListExpensesResponse wraps an expense listing.
type ListExpensesResponse struct {
	Gastos []*ExpenseResponse `json:"gastos"`
	Total  int64              `json:"total"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
