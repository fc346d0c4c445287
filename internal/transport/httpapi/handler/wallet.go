package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hieutran/moneykeeper/internal/platform/wallet"
	"github.com/hieutran/moneykeeper/internal/transport/httpapi/middleware"
)

// WalletServiceInterface defines the interface for wallet operations
type WalletServiceInterface interface {
	Create(ctx context.Context, w *wallet.Wallet) (*wallet.Wallet, error)
	GetBalance(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*wallet.Balance, error)
	ListBalances(ctx context.Context, userID uuid.UUID) ([]*wallet.Balance, error)
	Update(ctx context.Context, w *wallet.Wallet, userID uuid.UUID) (*wallet.Wallet, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

// WalletHandler handles wallet-related HTTP requests
type WalletHandler struct {
	walletService WalletServiceInterface
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletService WalletServiceInterface) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// WalletRequest represents a wallet create/update request
type WalletRequest struct {
	Name           string           `json:"name"`
	Type           string           `json:"type"`
	InitialBalance decimal.Decimal  `json:"initial_balance"`
	CreditLimit    *decimal.Decimal `json:"credit_limit,omitempty"`
}

// WalletResponse represents a wallet with its derived balance
type WalletResponse struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Type           string           `json:"type"`
	InitialBalance decimal.Decimal  `json:"initial_balance"`
	CurrentBalance decimal.Decimal  `json:"current_balance"`
	CreditLimit    *decimal.Decimal `json:"credit_limit,omitempty"`
}

func toWalletResponse(b *wallet.Balance) WalletResponse {
	return WalletResponse{
		ID:             b.Wallet.ID.String(),
		Name:           b.Wallet.Name,
		Type:           string(b.Wallet.Type),
		InitialBalance: b.Wallet.InitialBalance,
		CurrentBalance: b.CurrentBalance,
		CreditLimit:    b.Wallet.CreditLimit,
	}
}

func walletErrorStatus(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, wallet.ErrWalletNotFound):
		respondWithError(w, http.StatusNotFound, "wallet not found")
	case errors.Is(err, wallet.ErrUnauthorizedAccess):
		respondWithError(w, http.StatusForbidden, "wallet does not belong to user")
	case errors.Is(err, wallet.ErrDuplicateWalletName):
		respondWithError(w, http.StatusConflict, "wallet name already exists")
	case errors.Is(err, wallet.ErrWalletHasTransactions):
		respondWithError(w, http.StatusConflict, "wallet still has transactions")
	case errors.Is(err, wallet.ErrMissingWalletName),
		errors.Is(err, wallet.ErrWalletNameTooLong),
		errors.Is(err, wallet.ErrInvalidWalletType),
		errors.Is(err, wallet.ErrCreditLimitNotAllowed),
		errors.Is(err, wallet.ErrNegativeCreditLimit):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "wallet operation failed")
	}
}

// CreateWallet handles POST /wallets
func (h *WalletHandler) CreateWallet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req WalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.walletService.Create(r.Context(), &wallet.Wallet{
		UserID:         userID,
		Name:           req.Name,
		Type:           wallet.Type(req.Type),
		InitialBalance: req.InitialBalance,
		CreditLimit:    req.CreditLimit,
	})
	if err != nil {
		walletErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, toWalletResponse(&wallet.Balance{
		Wallet:         *created,
		CurrentBalance: created.InitialBalance,
	}))
}

// GetWallets handles GET /wallets
func (h *WalletHandler) GetWallets(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	balances, err := h.walletService.ListBalances(r.Context(), userID)
	if err != nil {
		walletErrorStatus(w, err)
		return
	}

	resp := make([]WalletResponse, 0, len(balances))
	for _, b := range balances {
		resp = append(resp, toWalletResponse(b))
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"wallets": resp})
}

// GetWallet handles GET /wallets/{id}
func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid wallet ID")
		return
	}

	balance, err := h.walletService.GetBalance(r.Context(), id, userID)
	if err != nil {
		walletErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toWalletResponse(balance))
}

// UpdateWallet handles PUT /wallets/{id}
func (h *WalletHandler) UpdateWallet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid wallet ID")
		return
	}

	var req WalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.walletService.Update(r.Context(), &wallet.Wallet{
		ID:             id,
		Name:           req.Name,
		Type:           wallet.Type(req.Type),
		InitialBalance: req.InitialBalance,
		CreditLimit:    req.CreditLimit,
	}, userID)
	if err != nil {
		walletErrorStatus(w, err)
		return
	}

	balance, err := h.walletService.GetBalance(r.Context(), updated.ID, userID)
	if err != nil {
		walletErrorStatus(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toWalletResponse(balance))
}

// DeleteWallet handles DELETE /wallets/{id}
func (h *WalletHandler) DeleteWallet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid wallet ID")
		return
	}

	if err := h.walletService.Delete(r.Context(), id, userID); err != nil {
		walletErrorStatus(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
