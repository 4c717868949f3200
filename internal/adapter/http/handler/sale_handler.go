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

// SaleService defines the behavior needed by SaleHandler.
type SaleService interface {
	RegisterSale(ctx context.Context, input usecase.RegisterSaleInput) (*domain.Sale, []*domain.SaleLineItem, error)
	GetSale(ctx context.Context, id string) (*domain.Sale, []*domain.SaleLineItem, error)
	ListSales(ctx context.Context, input usecase.ListSalesInput) ([]*domain.Sale, error)
}

// SaleHandler handles sale-related HTTP requests.
type SaleHandler struct {
	saleUC SaleService
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(saleUC SaleService) *SaleHandler {
	return &SaleHandler{saleUC: saleUC}
}

// Create registers a new sale from a cart.
func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	sale, items, err := h.saleUC.RegisterSale(r.Context(), req.ToUseCaseInput())
	if err != nil {
		metrics.SaleFailures.WithLabelValues(metrics.SaleFailureReason(err)).Inc()

		status := mapDomainError(err)
		writeError(w, status, "failed to register sale", err.Error())

		return
	}

	metrics.SalesRegistered.Inc()

	writeJSON(w, http.StatusCreated, dto.RegisterSaleResponse{
		Venta:     dto.SaleFromDomain(sale),
		Productos: dto.LineItemsFromDomain(items),
	})
}

// Get retrieves a sale with its line items.
func (h *SaleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing sale ID", "")
		return
	}

	sale, items, err := h.saleUC.GetSale(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get sale", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.RegisterSaleResponse{
		Venta:     dto.SaleFromDomain(sale),
		Productos: dto.LineItemsFromDomain(items),
	})
}

// List lists sale headers.
func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	sales, err := h.saleUC.ListSales(r.Context(), usecase.ListSalesInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list sales", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListSalesResponse{
		Ventas: dto.SalesFromDomain(sales),
		Total:  int64(len(sales)),
	})
}
