package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/nmoreno/ventapos/internal/adapter/http/dto"
	"github.com/nmoreno/ventapos/internal/domain"
	"github.com/nmoreno/ventapos/internal/infrastructure/metrics"
	"github.com/nmoreno/ventapos/internal/usecase"
)

// ExpenseService defines the behavior needed by ExpenseHandler.
type ExpenseService interface {
	RecordExpense(ctx context.Context, input usecase.RecordExpenseInput) (*domain.Expense, error)
	ListExpenses(ctx context.Context, input usecase.ListExpensesInput) ([]*domain.Expense, error)
}

// ExpenseHandler handles expense-related HTTP requests.
type ExpenseHandler struct {
	expenseUC ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseUC ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseUC: expenseUC}
}

// Create records a new expense.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	expense, err := h.expenseUC.RecordExpense(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to record expense", err.Error())

		return
	}

	metrics.ExpensesRecorded.Inc()

	writeJSON(w, http.StatusCreated, dto.ExpenseFromDomain(expense))
}

// List lists expenses.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	expenses, err := h.expenseUC.ListExpenses(r.Context(), usecase.ListExpensesInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list expenses", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListExpensesResponse{
		Gastos: dto.ExpensesFromDomain(expenses),
		Total:  int64(len(expenses)),
	})
}
