package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nmoreno/ventapos/internal/domain"
)

// SaleUseCase owns the sale-registration transaction.
type SaleUseCase struct {
	txManager    TransactionManager
	productRepo  ProductRepository
	saleRepo     SaleRepository
	lineItemRepo LineItemRepository
	idGen        IDGenerator
	retrier      Retrier
	cache        Cache
}

// NewSaleUseCase creates a new SaleUseCase. retrier and cache are optional.
func NewSaleUseCase(
	txManager TransactionManager,
	productRepo ProductRepository,
	saleRepo SaleRepository,
	lineItemRepo LineItemRepository,
	idGen IDGenerator,
	retrier Retrier,
	cache Cache,
) *SaleUseCase {
	return &SaleUseCase{
		txManager:    txManager,
		productRepo:  productRepo,
		saleRepo:     saleRepo,
		lineItemRepo: lineItemRepo,
		idGen:        idGen,
		retrier:      retrier,
		cache:        cache,
	}
}

// SaleItemInput is one cart entry.
type SaleItemInput struct {
	ProductID string
	Quantity  int64
}

// RegisterSaleInput is the caller-supplied cart, in order.
type RegisterSaleInput struct {
	Items []SaleItemInput
}

// RegisterSale registers a sale: validates stock per item, records the header
// and one line item per cart entry, decrements stock and finalizes the total.
// All writes happen in one transaction; on any failure nothing is visible.
func (uc *SaleUseCase) RegisterSale(ctx context.Context, input RegisterSaleInput) (*domain.Sale, []*domain.SaleLineItem, error) {
	// 0. Validate the cart before touching the store
	if len(input.Items) == 0 {
		return nil, nil, domain.ErrEmptyCart
	}

	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, nil, domain.ErrInvalidQuantity
		}
	}

	var (
		sale  *domain.Sale
		items []*domain.SaleLineItem
	)

	op := func() error {
		var err error
		sale, items, err = uc.registerSaleTx(ctx, input)

		return err
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, op)
	} else {
		err = op()
	}

	if err != nil {
		return nil, nil, err
	}

	// Best effort; the cache TTL bounds staleness anyway.
	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, GeneralBalanceCacheKey)
	}

	return sale, items, nil
}

func (uc *SaleUseCase) registerSaleTx(ctx context.Context, input RegisterSaleInput) (*domain.Sale, []*domain.SaleLineItem, error) {
	// 1. Collect and sort unique product IDs (DEADLOCK PREVENTION)
	productIDs := uc.collectUniqueProductIDs(input.Items)
	sort.Strings(productIDs)

	// 2. Begin transaction
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	// 3. Lock product rows in sorted order
	products, err := uc.productRepo.GetByIDsForUpdate(ctx, tx, productIDs)
	if err != nil {
		return nil, nil, err
	}

	productMap := uc.buildProductMap(products)
	for _, id := range productIDs {
		if productMap[id] == nil {
			return nil, nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
		}
	}

	// 4. Provisional header with total 0; finalized before commit
	now := time.Now().UTC()
	sale := &domain.Sale{
		ID:        uc.idGen.Generate(),
		Total:     decimal.Zero,
		CreatedAt: now,
	}

	if err := uc.saleRepo.Create(ctx, tx, sale); err != nil {
		return nil, nil, err
	}

	// 5. Process cart entries in caller order. A product ID appearing twice
	// is validated each time against the already-decremented quantity, so a
	// combined overshoot fails instead of being merged silently.
	total := decimal.Zero
	items := make([]*domain.SaleLineItem, 0, len(input.Items))

	for _, entry := range input.Items {
		product := productMap[entry.ProductID]

		if err := product.CheckStock(entry.Quantity); err != nil {
			return nil, nil, err
		}

		item := &domain.SaleLineItem{
			ID:        uc.idGen.Generate(),
			SaleID:    sale.ID,
			ProductID: product.ID,
			Quantity:  entry.Quantity,
			UnitPrice: product.Price,
			CreatedAt: now,
		}

		if err := uc.lineItemRepo.Create(ctx, tx, item); err != nil {
			return nil, nil, err
		}

		if err := uc.productRepo.DeductStock(ctx, tx, product.ID, entry.Quantity, now); err != nil {
			return nil, nil, err
		}

		product.Deduct(entry.Quantity)
		total = total.Add(item.Subtotal())
		items = append(items, item)
	}

	// 6. Finalize header total and commit
	if err := uc.saleRepo.UpdateTotal(ctx, tx, sale.ID, total); err != nil {
		return nil, nil, err
	}

	sale.Total = total

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return sale, items, nil
}

// GetSale retrieves a sale and its line items.
func (uc *SaleUseCase) GetSale(ctx context.Context, id string) (*domain.Sale, []*domain.SaleLineItem, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	items, err := uc.lineItemRepo.GetBySale(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return sale, items, nil
}

// ListSalesInput represents input for listing sales.
type ListSalesInput struct {
	Limit  int
	Offset int
}

// ListSales lists sales with pagination.
func (uc *SaleUseCase) ListSales(ctx context.Context, input ListSalesInput) ([]*domain.Sale, error) {
	if input.Limit <= 0 {
		input.Limit = DefaultPageSize
	}

	if input.Limit > MaxPageSize {
		input.Limit = MaxPageSize
	}

	return uc.saleRepo.List(ctx, input.Limit, input.Offset)
}

func (uc *SaleUseCase) collectUniqueProductIDs(items []SaleItemInput) []string {
	seen := make(map[string]bool)

	var ids []string
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	return ids
}

func (uc *SaleUseCase) buildProductMap(products []*domain.Product) map[string]*domain.Product {
	m := make(map[string]*domain.Product)
	for _, p := range products {
		m[p.ID] = p
	}

	return m
}
