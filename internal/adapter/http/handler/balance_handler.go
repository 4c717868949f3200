package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/nmoreno/ventapos/internal/adapter/http/dto"
	"github.com/nmoreno/ventapos/internal/domain"
)

const dateLayout = "2006-01-02"

// BalanceService defines the behavior needed by BalanceHandler.
type BalanceService interface {
	DailyBalance(ctx context.Context, date time.Time) (domain.Balance, error)
	GeneralBalance(ctx context.Context) (domain.Balance, error)
}

// BalanceHandler handles balance-related HTTP requests.
type BalanceHandler struct {
	balanceUC BalanceService
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(balanceUC BalanceService) *BalanceHandler {
	return &BalanceHandler{balanceUC: balanceUC}
}

// Daily returns the income/expense balance for one calendar day.
// The fecha query parameter is required and must be YYYY-MM-DD.
func (h *BalanceHandler) Daily(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("fecha")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "missing fecha parameter", "")
		return
	}

	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid fecha parameter", err.Error())
		return
	}

	balance, err := h.balanceUC.DailyBalance(r.Context(), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute daily balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromDomain(balance))
}

// General returns the all-time income/expense balance.
func (h *BalanceHandler) General(w http.ResponseWriter, r *http.Request) {
	balance, err := h.balanceUC.GeneralBalance(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute general balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromDomain(balance))
}
