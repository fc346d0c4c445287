package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hieutran/moneykeeper/internal/module/debt"
	"github.com/hieutran/moneykeeper/internal/transport/httpapi/middleware"
)

// DebtServiceInterface defines the interface for debt operations
type DebtServiceInterface interface {
	Create(ctx context.Context, d *debt.Debt, walletID *uuid.UUID) (*debt.Debt, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*debt.Debt, error)
	List(ctx context.Context, userID uuid.UUID) ([]*debt.Debt, error)
	Settle(ctx context.Context, id, userID uuid.UUID, walletID *uuid.UUID) (*debt.Debt, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// DebtHandler handles debt HTTP requests
type DebtHandler struct {
	debtService DebtServiceInterface
}

// NewDebtHandler creates a new debt handler
func NewDebtHandler(debtService DebtServiceInterface) *DebtHandler {
	return &DebtHandler{debtService: debtService}
}

// DebtRequest represents a debt create request
type DebtRequest struct {
	Person   string          `json:"person"`
	Amount   decimal.Decimal `json:"amount"`
	Type     string          `json:"type"`
	DueDate  *time.Time      `json:"due_date,omitempty"`
	Note     string          `json:"note"`
	WalletID *uuid.UUID      `json:"wallet_id,omitempty"`
}

// SettleDebtRequest represents a debt settlement request
type SettleDebtRequest struct {
	WalletID *uuid.UUID `json:"wallet_id,omitempty"`
}

func debtErrorStatus(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, debt.ErrDebtNotFound):
		respondWithError(w, http.StatusNotFound, "debt not found")
	case errors.Is(err, debt.ErrUnauthorizedAccess):
		respondWithError(w, http.StatusForbidden, "debt does not belong to user")
	case errors.Is(err, debt.ErrAlreadySettled):
		respondWithError(w, http.StatusConflict, "debt already settled")
	case errors.Is(err, debt.ErrMissingPerson),
		errors.Is(err, debt.ErrInvalidAmount),
		errors.Is(err, debt.ErrInvalidType):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "debt operation failed")
	}
}

// CreateDebt handles POST /debts
func (h *DebtHandler) CreateDebt(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req DebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.debtService.Create(r.Context(), &debt.Debt{
		UserID:  userID,
		Person:  req.Person,
		Amount:  req.Amount,
		Type:    debt.Type(req.Type),
		DueDate: req.DueDate,
		Note:    req.Note,
	}, req.WalletID)
	if err != nil {
		debtErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

// GetDebts handles GET /debts
func (h *DebtHandler) GetDebts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	debts, err := h.debtService.List(r.Context(), userID)
	if err != nil {
		debtErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{"debts": debts})
}

// GetDebt handles GET /debts/{id}
func (h *DebtHandler) GetDebt(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid debt ID")
		return
	}

	d, err := h.debtService.GetByID(r.Context(), id, userID)
	if err != nil {
		debtErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, d)
}

// SettleDebt handles POST /debts/{id}/settle
func (h *DebtHandler) SettleDebt(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid debt ID")
		return
	}

	var req SettleDebtRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	d, err := h.debtService.Settle(r.Context(), id, userID, req.WalletID)
	if err != nil {
		debtErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, d)
}

// DeleteDebt handles DELETE /debts/{id}
func (h *DebtHandler) DeleteDebt(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid debt ID")
		return
	}

	if err := h.debtService.Delete(r.Context(), id, userID); err != nil {
		debtErrorStatus(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
