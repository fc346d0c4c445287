package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hieutran/moneykeeper/internal/ledger"
	"github.com/hieutran/moneykeeper/internal/transport/httpapi/middleware"
)

// LedgerServiceInterface defines the interface for transaction operations
type LedgerServiceInterface interface {
	Record(ctx context.Context, tx *ledger.Transaction) (*ledger.Transaction, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*ledger.Transaction, error)
	Update(ctx context.Context, tx *ledger.Transaction, userID uuid.UUID) (*ledger.Transaction, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, f ledger.Filters) ([]*ledger.Transaction, error)
	Summarize(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*ledger.MonthlySummary, error)
}

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	ledgerService LedgerServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(ledgerService LedgerServiceInterface) *TransactionHandler {
	return &TransactionHandler{ledgerService: ledgerService}
}

// TransactionRequest represents a transaction create/update request
type TransactionRequest struct {
	Amount     decimal.Decimal `json:"amount"`
	Type       string          `json:"type"`
	Category   string          `json:"category"`
	Note       string          `json:"note"`
	OccurredAt time.Time       `json:"occurred_at"`
	WalletID   *uuid.UUID      `json:"wallet_id,omitempty"`
}

func ledgerErrorStatus(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrTransactionNotFound):
		respondWithError(w, http.StatusNotFound, "transaction not found")
	case errors.Is(err, ledger.ErrUnauthorizedAccess):
		respondWithError(w, http.StatusForbidden, "transaction does not belong to user")
	case errors.Is(err, ledger.ErrWalletNotOwned):
		respondWithError(w, http.StatusForbidden, "wallet does not belong to user")
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrInvalidType),
		errors.Is(err, ledger.ErrMissingCategory),
		errors.Is(err, ledger.ErrMissingDate):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "transaction operation failed")
	}
}

// CreateTransaction handles POST /transactions
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.ledgerService.Record(r.Context(), &ledger.Transaction{
		UserID:     userID,
		Amount:     req.Amount,
		Type:       ledger.Type(req.Type),
		Category:   req.Category,
		Note:       req.Note,
		OccurredAt: req.OccurredAt,
		WalletID:   req.WalletID,
	})
	if err != nil {
		ledgerErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

// GetTransactions handles GET /transactions with optional query filters
func (h *TransactionHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	f, err := parseFilters(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	txs, err := h.ledgerService.List(r.Context(), userID, f)
	if err != nil {
		ledgerErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{"transactions": txs})
}

// GetTransaction handles GET /transactions/{id}
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid transaction ID")
		return
	}

	tx, err := h.ledgerService.GetByID(r.Context(), id, userID)
	if err != nil {
		ledgerErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, tx)
}

// UpdateTransaction handles PUT /transactions/{id}
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid transaction ID")
		return
	}

	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.ledgerService.Update(r.Context(), &ledger.Transaction{
		ID:         id,
		Amount:     req.Amount,
		Type:       ledger.Type(req.Type),
		Category:   req.Category,
		Note:       req.Note,
		OccurredAt: req.OccurredAt,
		WalletID:   req.WalletID,
	}, userID)
	if err != nil {
		ledgerErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

// DeleteTransaction handles DELETE /transactions/{id}
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid transaction ID")
		return
	}

	if err := h.ledgerService.Delete(r.Context(), id, userID); err != nil {
		ledgerErrorStatus(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetMonthlySummary handles GET /transactions/summary?year=&month=
func (h *TransactionHandler) GetMonthlySummary(w http.ResponseWriter, r *http.Request) {
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

	summary, err := h.ledgerService.Summarize(r.Context(), userID, year, month)
	if err != nil {
		ledgerErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}

func parseFilters(r *http.Request) (ledger.Filters, error) {
	var f ledger.Filters
	q := r.URL.Query()

	if v := q.Get("wallet_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return f, errors.New("invalid wallet_id")
		}
		f.WalletID = &id
	}
	if v := q.Get("type"); v != "" {
		t := ledger.Type(v)
		if !t.IsValid() {
			return f, errors.New("invalid type")
		}
		f.Type = &t
	}
	if v := q.Get("category"); v != "" {
		f.Category = &v
	}
	if v := q.Get("from"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, errors.New("invalid from timestamp")
		}
		f.From = &ts
	}
	if v := q.Get("to"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, errors.New("invalid to timestamp")
		}
		f.To = &ts
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, errors.New("invalid limit")
		}
		f.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, errors.New("invalid offset")
		}
		f.Offset = n
	}
	return f, nil
}

// parseYearMonth reads year and month query params, defaulting to the current
// month.
func parseYearMonth(r *http.Request) (int, time.Month, error) {
	now := time.Now()
	year, month := now.Year(), now.Month()

	q := r.URL.Query()
	if v := q.Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, errors.New("invalid year")
		}
		year = n
	}
	if v := q.Get("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			return 0, 0, errors.New("invalid month")
		}
		month = time.Month(n)
	}
	return year, month, nil
}
