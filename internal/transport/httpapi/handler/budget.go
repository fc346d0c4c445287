package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hieutran/moneykeeper/internal/module/budget"
	"github.com/hieutran/moneykeeper/internal/transport/httpapi/middleware"
)

// BudgetServiceInterface defines the interface for budget operations
type BudgetServiceInterface interface {
	SetLimit(ctx context.Context, userID uuid.UUID, category string, limit decimal.Decimal) (*budget.CategoryBudget, error)
	RemoveLimit(ctx context.Context, userID uuid.UUID, category string) error
	List(ctx context.Context, userID uuid.UUID) ([]*budget.CategoryBudget, error)
	BuildReport(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*budget.Report, error)
	SetPlannedIncome(ctx context.Context, userID uuid.UUID, year int, month time.Month, amount decimal.Decimal) error
	BuildJarsReport(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*budget.JarsReport, error)
}

// BudgetHandler handles budget-related HTTP requests
type BudgetHandler struct {
	budgetService BudgetServiceInterface
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(budgetService BudgetServiceInterface) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// BudgetRequest represents a category limit upsert request
type BudgetRequest struct {
	Category string          `json:"category"`
	Limit    decimal.Decimal `json:"limit"`
}

// PlannedIncomeRequest represents a planned income upsert request
type PlannedIncomeRequest struct {
	Year   int             `json:"year"`
	Month  int             `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

func budgetErrorStatus(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, budget.ErrBudgetNotFound):
		respondWithError(w, http.StatusNotFound, "budget not found")
	case errors.Is(err, budget.ErrMissingCategory),
		errors.Is(err, budget.ErrInvalidLimit),
		errors.Is(err, budget.ErrInvalidIncome):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "budget operation failed")
	}
}

// GetBudgets handles GET /budgets
func (h *BudgetHandler) GetBudgets(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	budgets, err := h.budgetService.List(r.Context(), userID)
	if err != nil {
		budgetErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{"budgets": budgets})
}

// SetBudget handles PUT /budgets
func (h *BudgetHandler) SetBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req BudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	b, err := h.budgetService.SetLimit(r.Context(), userID, req.Category, req.Limit)
	if err != nil {
		budgetErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, b)
}

// DeleteBudget handles DELETE /budgets/{category}
func (h *BudgetHandler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	cat, err := url.PathUnescape(chi.URLParam(r, "category"))
	if err != nil || cat == "" {
		respondWithError(w, http.StatusBadRequest, "category is required")
		return
	}

	if err := h.budgetService.RemoveLimit(r.Context(), userID, cat); err != nil {
		budgetErrorStatus(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetBudgetReport handles GET /budgets/report?year=&month=
func (h *BudgetHandler) GetBudgetReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	year, month, err := parseYearMonth(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.budgetService.BuildReport(r.Context(), userID, year, month)
	if err != nil {
		budgetErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}

// SetPlannedIncome handles PUT /budgets/planned-income
func (h *BudgetHandler) SetPlannedIncome(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req PlannedIncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Month < 1 || req.Month > 12 {
		respondWithError(w, http.StatusBadRequest, "invalid month")
		return
	}

	if err := h.budgetService.SetPlannedIncome(r.Context(), userID, req.Year, time.Month(req.Month), req.Amount); err != nil {
		budgetErrorStatus(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetJarsReport handles GET /budgets/jars?year=&month=
func (h *BudgetHandler) GetJarsReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	year, month, err := parseYearMonth(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.budgetService.BuildJarsReport(r.Context(), userID, year, month)
	if err != nil {
		budgetErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}
