package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nmoreno/ventapos/internal/domain"
)

// ProductUseCase handles product business logic.
type ProductUseCase struct {
	productRepo ProductRepository
	idGen       IDGenerator
}

// NewProductUseCase creates a new ProductUseCase.
func NewProductUseCase(productRepo ProductRepository, idGen IDGenerator) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		idGen:       idGen,
	}
}

// CreateProductInput represents input for creating a product.
type CreateProductInput struct {
	Name        string
	Description string
	Quantity    int64
	Price       decimal.Decimal
	Category    string
}

// CreateProduct creates a new product with its initial stock.
func (uc *ProductUseCase) CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	now := time.Now().UTC()

	product := &domain.Product{
		ID:          uc.idGen.Generate(),
		Name:        input.Name,
		Description: input.Description,
		Quantity:    input.Quantity,
		Price:       input.Price,
		Category:    input.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProduct retrieves a product by ID.
func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return uc.productRepo.GetByID(ctx, id)
}

// ListProductsInput represents input for listing products.
type ListProductsInput struct {
	Limit  int
	Offset int
}

// ListProducts lists products with pagination.
func (uc *ProductUseCase) ListProducts(ctx context.Context, input ListProductsInput) ([]*domain.Product, error) {
	if input.Limit <= 0 {
		input.Limit = DefaultPageSize
	}

	if input.Limit > MaxPageSize {
		input.Limit = MaxPageSize
	}

	return uc.productRepo.List(ctx, input.Limit, input.Offset)
}
