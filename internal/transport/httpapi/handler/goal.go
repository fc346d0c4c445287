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

	"github.com/hieutran/moneykeeper/internal/module/goal"
	"github.com/hieutran/moneykeeper/internal/transport/httpapi/middleware"
)

// GoalServiceInterface defines the interface for savings goal operations
type GoalServiceInterface interface {
	Create(ctx context.Context, g *goal.SavingsGoal) (*goal.SavingsGoal, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*goal.SavingsGoal, error)
	List(ctx context.Context, userID uuid.UUID) ([]*goal.SavingsGoal, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	Deposit(ctx context.Context, id, userID uuid.UUID, amount decimal.Decimal, walletID *uuid.UUID) (*goal.SavingsGoal, error)
	Withdraw(ctx context.Context, id, userID uuid.UUID, amount decimal.Decimal, walletID *uuid.UUID) (*goal.SavingsGoal, error)
}

// GoalHandler handles savings goal HTTP requests
type GoalHandler struct {
	goalService GoalServiceInterface
}

// NewGoalHandler creates a new goal handler
func NewGoalHandler(goalService GoalServiceInterface) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// GoalRequest represents a goal create request
type GoalRequest struct {
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Deadline      *time.Time      `json:"deadline,omitempty"`
	Image         string          `json:"image,omitempty"`
}

// GoalTransferRequest represents a deposit or withdrawal against a goal
type GoalTransferRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	WalletID *uuid.UUID      `json:"wallet_id,omitempty"`
}

// GoalResponse is a goal with its derived progress
type GoalResponse struct {
	*goal.SavingsGoal
	Progress float64 `json:"progress"`
}

func toGoalResponse(g *goal.SavingsGoal) GoalResponse {
	return GoalResponse{SavingsGoal: g, Progress: g.Progress()}
}

func goalErrorStatus(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, goal.ErrGoalNotFound):
		respondWithError(w, http.StatusNotFound, "goal not found")
	case errors.Is(err, goal.ErrUnauthorizedAccess):
		respondWithError(w, http.StatusForbidden, "goal does not belong to user")
	case errors.Is(err, goal.ErrMissingName),
		errors.Is(err, goal.ErrInvalidTarget),
		errors.Is(err, goal.ErrNegativeAmount),
		errors.Is(err, goal.ErrInvalidDeposit),
		errors.Is(err, goal.ErrInvalidWithdrawal):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "goal operation failed")
	}
}

// CreateGoal handles POST /goals
func (h *GoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req GoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.goalService.Create(r.Context(), &goal.SavingsGoal{
		UserID:        userID,
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Deadline:      req.Deadline,
		Image:         req.Image,
	})
	if err != nil {
		goalErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, toGoalResponse(created))
}

// GetGoals handles GET /goals
func (h *GoalHandler) GetGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	goals, err := h.goalService.List(r.Context(), userID)
	if err != nil {
		goalErrorStatus(w, err)
		return
	}

	resp := make([]GoalResponse, 0, len(goals))
	for _, g := range goals {
		resp = append(resp, toGoalResponse(g))
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"goals": resp})
}

// GetGoal handles GET /goals/{id}
func (h *GoalHandler) GetGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid goal ID")
		return
	}

	g, err := h.goalService.GetByID(r.Context(), id, userID)
	if err != nil {
		goalErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toGoalResponse(g))
}

// DeleteGoal handles DELETE /goals/{id}
func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid goal ID")
		return
	}

	if err := h.goalService.Delete(r.Context(), id, userID); err != nil {
		goalErrorStatus(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DepositGoal handles POST /goals/{id}/deposit
func (h *GoalHandler) DepositGoal(w http.ResponseWriter, r *http.Request) {
	h.transfer(w, r, h.goalService.Deposit)
}

// WithdrawGoal handles POST /goals/{id}/withdraw
func (h *GoalHandler) WithdrawGoal(w http.ResponseWriter, r *http.Request) {
	h.transfer(w, r, h.goalService.Withdraw)
}

func (h *GoalHandler) transfer(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, id, userID uuid.UUID, amount decimal.Decimal, walletID *uuid.UUID) (*goal.SavingsGoal, error),
) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid goal ID")
		return
	}

	var req GoalTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g, err := op(r.Context(), id, userID, req.Amount, req.WalletID)
	if err != nil {
		goalErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toGoalResponse(g))
}
