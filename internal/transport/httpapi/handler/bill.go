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

	"github.com/hieutran/moneykeeper/internal/ledger"
	"github.com/hieutran/moneykeeper/internal/module/bill"
	"github.com/hieutran/moneykeeper/internal/transport/httpapi/middleware"
)

// BillServiceInterface defines the interface for recurring bill operations
type BillServiceInterface interface {
	Create(ctx context.Context, b *bill.RecurringBill) (*bill.RecurringBill, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*bill.RecurringBill, error)
	Update(ctx context.Context, b *bill.RecurringBill, userID uuid.UUID) (*bill.RecurringBill, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	Pay(ctx context.Context, id, userID uuid.UUID, walletID *uuid.UUID) (*ledger.Transaction, error)
	MonthlyStatus(ctx context.Context, userID uuid.UUID, year int, month time.Month) ([]*bill.Status, error)
}

// BillHandler handles recurring bill HTTP requests
type BillHandler struct {
	billService BillServiceInterface
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billService BillServiceInterface) *BillHandler {
	return &BillHandler{billService: billService}
}

// BillRequest represents a bill create/update request
type BillRequest struct {
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	DueDay   int             `json:"due_day"`
}

// PayBillRequest represents a bill payment request
type PayBillRequest struct {
	WalletID *uuid.UUID `json:"wallet_id,omitempty"`
}

func billErrorStatus(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, bill.ErrBillNotFound):
		respondWithError(w, http.StatusNotFound, "bill not found")
	case errors.Is(err, bill.ErrUnauthorizedAccess):
		respondWithError(w, http.StatusForbidden, "bill does not belong to user")
	case errors.Is(err, bill.ErrAlreadyPaid):
		respondWithError(w, http.StatusConflict, "bill already paid this month")
	case errors.Is(err, bill.ErrMissingName),
		errors.Is(err, bill.ErrInvalidAmount),
		errors.Is(err, bill.ErrMissingCategory),
		errors.Is(err, bill.ErrInvalidDueDay):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "bill operation failed")
	}
}

// CreateBill handles POST /bills
func (h *BillHandler) CreateBill(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req BillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.billService.Create(r.Context(), &bill.RecurringBill{
		UserID:   userID,
		Name:     req.Name,
		Amount:   req.Amount,
		Category: req.Category,
		DueDay:   req.DueDay,
	})
	if err != nil {
		billErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

// GetBills handles GET /bills?year=&month= returning each bill with its
// derived payment status for the month.
func (h *BillHandler) GetBills(w http.ResponseWriter, r *http.Request) {
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

	statuses, err := h.billService.MonthlyStatus(r.Context(), userID, year, month)
	if err != nil {
		billErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{"bills": statuses})
}

// GetBill handles GET /bills/{id}
func (h *BillHandler) GetBill(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid bill ID")
		return
	}

	b, err := h.billService.GetByID(r.Context(), id, userID)
	if err != nil {
		billErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, b)
}

// UpdateBill handles PUT /bills/{id}
func (h *BillHandler) UpdateBill(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid bill ID")
		return
	}

	var req BillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.billService.Update(r.Context(), &bill.RecurringBill{
		ID:       id,
		Name:     req.Name,
		Amount:   req.Amount,
		Category: req.Category,
		DueDay:   req.DueDay,
	}, userID)
	if err != nil {
		billErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

// DeleteBill handles DELETE /bills/{id}
func (h *BillHandler) DeleteBill(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid bill ID")
		return
	}

	if err := h.billService.Delete(r.Context(), id, userID); err != nil {
		billErrorStatus(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PayBill handles POST /bills/{id}/pay
func (h *BillHandler) PayBill(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid bill ID")
		return
	}

	var req PayBillRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	tx, err := h.billService.Pay(r.Context(), id, userID, req.WalletID)
	if err != nil {
		billErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, tx)
}
