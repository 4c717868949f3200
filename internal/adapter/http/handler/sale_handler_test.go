package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/nmoreno/ventapos/internal/adapter/http/dto"
	"github.com/nmoreno/ventapos/internal/domain"
	"github.com/nmoreno/ventapos/internal/usecase"
)

type saleServiceStub struct {
	registerFn func(ctx context.Context, input usecase.RegisterSaleInput) (*domain.Sale, []*domain.SaleLineItem, error)
	getFn      func(ctx context.Context, id string) (*domain.Sale, []*domain.SaleLineItem, error)
	listFn     func(ctx context.Context, input usecase.ListSalesInput) ([]*domain.Sale, error)
}

func (s *saleServiceStub) RegisterSale(ctx context.Context, input usecase.RegisterSaleInput) (*domain.Sale, []*domain.SaleLineItem, error) {
	return s.registerFn(ctx, input)
}

func (s *saleServiceStub) GetSale(ctx context.Context, id string) (*domain.Sale, []*domain.SaleLineItem, error) {
	return s.getFn(ctx, id)
}

func (s *saleServiceStub) ListSales(ctx context.Context, input usecase.ListSalesInput) ([]*domain.Sale, error) {
	return s.listFn(ctx, input)
}

func newSaleServiceStub() *saleServiceStub {
	return &saleServiceStub{
		registerFn: func(ctx context.Context, input usecase.RegisterSaleInput) (*domain.Sale, []*domain.SaleLineItem, error) {
			return nil, nil, nil
		},
		getFn: func(ctx context.Context, id string) (*domain.Sale, []*domain.SaleLineItem, error) {
			return nil, nil, nil
		},
		listFn: func(ctx context.Context, input usecase.ListSalesInput) ([]*domain.Sale, error) {
			return nil, nil
		},
	}
}

func TestSaleHandler_Create_Success(t *testing.T) {
	sale := &domain.Sale{ID: "sale-1", Total: decimal.NewFromFloat(15.00)}
	items := []*domain.SaleLineItem{
		{ID: "item-1", SaleID: "sale-1", ProductID: "prod-1", Quantity: 3, UnitPrice: decimal.NewFromFloat(5.00)},
	}

	stub := newSaleServiceStub()
	var captured usecase.RegisterSaleInput
	stub.registerFn = func(ctx context.Context, input usecase.RegisterSaleInput) (*domain.Sale, []*domain.SaleLineItem, error) {
		captured = input
		return sale, items, nil
	}

	handler := NewSaleHandler(stub)

	body, _ := json.Marshal(dto.RegisterSaleRequest{
		Productos: []dto.SaleItemRequest{{ProductoID: "prod-1", Cantidad: 3}},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/ventas", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if len(captured.Items) != 1 || captured.Items[0].ProductID != "prod-1" || captured.Items[0].Quantity != 3 {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.RegisterSaleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Venta == nil || resp.Venta.ID != "sale-1" {
		t.Fatalf("expected venta sale-1, got %+v", resp.Venta)
	}
	if len(resp.Productos) != 1 || resp.Productos[0].ProductoID != "prod-1" {
		t.Fatalf("expected one line item for prod-1, got %+v", resp.Productos)
	}
}

func TestSaleHandler_Create_InvalidJSON(t *testing.T) {
	stub := newSaleServiceStub()
	stub.registerFn = func(ctx context.Context, input usecase.RegisterSaleInput) (*domain.Sale, []*domain.SaleLineItem, error) {
		t.Fatal("RegisterSale should not be called for invalid payload")
		return nil, nil, nil
	}

	handler := NewSaleHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/ventas", bytes.NewBufferString("{invalid"))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSaleHandler_Create_EmptyCart(t *testing.T) {
	stub := newSaleServiceStub()
	stub.registerFn = func(ctx context.Context, input usecase.RegisterSaleInput) (*domain.Sale, []*domain.SaleLineItem, error) {
		return nil, nil, domain.ErrEmptyCart
	}

	handler := NewSaleHandler(stub)

	body, _ := json.Marshal(dto.RegisterSaleRequest{})
	req := httptest.NewRequest(http.MethodPost, "/api/ventas", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSaleHandler_Create_UnknownProduct(t *testing.T) {
	stub := newSaleServiceStub()
	stub.registerFn = func(ctx context.Context, input usecase.RegisterSaleInput) (*domain.Sale, []*domain.SaleLineItem, error) {
		return nil, nil, domain.ErrProductNotFound
	}

	handler := NewSaleHandler(stub)

	body, _ := json.Marshal(dto.RegisterSaleRequest{
		Productos: []dto.SaleItemRequest{{ProductoID: "ghost", Cantidad: 1}},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/ventas", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSaleHandler_Create_InsufficientStock(t *testing.T) {
	stub := newSaleServiceStub()
	stub.registerFn = func(ctx context.Context, input usecase.RegisterSaleInput) (*domain.Sale, []*domain.SaleLineItem, error) {
		return nil, nil, domain.ErrInsufficientStock
	}

	handler := NewSaleHandler(stub)

	body, _ := json.Marshal(dto.RegisterSaleRequest{
		Productos: []dto.SaleItemRequest{{ProductoID: "prod-1", Cantidad: 99}},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/ventas", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSaleHandler_Create_StoreFailureHidesDetail(t *testing.T) {
	stub := newSaleServiceStub()
	stub.registerFn = func(ctx context.Context, input usecase.RegisterSaleInput) (*domain.Sale, []*domain.SaleLineItem, error) {
		return nil, nil, errors.New(`connect to postgres host=db.internal:5432 failed: password authentication failed for user "ventapos"`)
	}

	handler := NewSaleHandler(stub)

	body, _ := json.Marshal(dto.RegisterSaleRequest{
		Productos: []dto.SaleItemRequest{{ProductoID: "prod-1", Cantidad: 1}},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/ventas", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if resp.Message != "" {
		t.Fatalf("expected store error detail to be withheld, got %q", resp.Message)
	}

	if strings.Contains(rec.Body.String(), "password authentication") {
		t.Fatalf("store error leaked into response body: %s", rec.Body.String())
	}
}

func TestSaleHandler_Get(t *testing.T) {
	sale := &domain.Sale{ID: "sale-1", Total: decimal.NewFromInt(20)}
	stub := newSaleServiceStub()
	stub.getFn = func(ctx context.Context, id string) (*domain.Sale, []*domain.SaleLineItem, error) {
		if id != "sale-1" {
			t.Fatalf("expected id sale-1, got %s", id)
		}
		return sale, nil, nil
	}

	handler := NewSaleHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/ventas/sale-1", nil)
	req = setChiURLParam(req, "id", "sale-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSaleHandler_Get_NotFound(t *testing.T) {
	stub := newSaleServiceStub()
	stub.getFn = func(ctx context.Context, id string) (*domain.Sale, []*domain.SaleLineItem, error) {
		return nil, nil, domain.ErrSaleNotFound
	}

	handler := NewSaleHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/ventas/missing", nil)
	req = setChiURLParam(req, "id", "missing")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSaleHandler_List(t *testing.T) {
	stub := newSaleServiceStub()
	stub.listFn = func(ctx context.Context, input usecase.ListSalesInput) ([]*domain.Sale, error) {
		return []*domain.Sale{{ID: "sale-1"}, {ID: "sale-2"}}, nil
	}

	handler := NewSaleHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/ventas", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListSalesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Ventas) != 2 {
		t.Fatalf("expected 2 sales, got %d", len(resp.Ventas))
	}
}
