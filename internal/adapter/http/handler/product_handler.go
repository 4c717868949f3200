package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nmoreno/ventapos/internal/adapter/http/dto"
	"github.com/nmoreno/ventapos/internal/domain"
	"github.com/nmoreno/ventapos/internal/infrastructure/metrics"
	"github.com/nmoreno/ventapos/internal/usecase"
)

// ProductService defines the behavior needed by ProductHandler.
type ProductService interface {
	CreateProduct(ctx context.Context, input usecase.CreateProductInput) (*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context, input usecase.ListProductsInput) ([]*domain.Product, error)
}

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	productUC ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productUC ProductService) *ProductHandler {
	return &ProductHandler{productUC: productUC}
}

// Create registers a new product.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.Precio == nil {
		writeError(w, http.StatusBadRequest, "precio is required", "")
		return
	}

	product, err := h.productUC.CreateProduct(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create product", err.Error())

		return
	}

	metrics.ProductsCreated.Inc()

	writeJSON(w, http.StatusCreated, dto.ProductFromDomain(product))
}

// Get retrieves a product by ID.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing product ID", "")
		return
	}

	product, err := h.productUC.GetProduct(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get product", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ProductFromDomain(product))
}

// List lists products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	products, err := h.productUC.ListProducts(r.Context(), usecase.ListProductsInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list products", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListProductsResponse{
		Productos: dto.ProductsFromDomain(products),
		Total:     int64(len(products)),
	})
}
