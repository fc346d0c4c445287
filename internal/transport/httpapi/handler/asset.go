package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hieutran/moneykeeper/internal/module/asset"
	"github.com/hieutran/moneykeeper/internal/transport/httpapi/middleware"
)

// AssetServiceInterface defines the interface for asset operations
type AssetServiceInterface interface {
	Create(ctx context.Context, a *asset.Asset) (*asset.Asset, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*asset.Asset, error)
	List(ctx context.Context, userID uuid.UUID) ([]*asset.Asset, error)
	Update(ctx context.Context, a *asset.Asset, userID uuid.UUID) (*asset.Asset, error)
	UpdatePrice(ctx context.Context, id, userID uuid.UUID, price decimal.Decimal) (*asset.Asset, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	BuildPortfolio(ctx context.Context, userID uuid.UUID) (*asset.Portfolio, error)
}

// AssetHandler handles asset HTTP requests
type AssetHandler struct {
	assetService AssetServiceInterface
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(assetService AssetServiceInterface) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// AssetRequest represents an asset create/update request
type AssetRequest struct {
	Name         string           `json:"name"`
	Kind         string           `json:"kind"`
	Value        decimal.Decimal  `json:"value"`
	InitialValue decimal.Decimal  `json:"initial_value"`
	Quantity     *decimal.Decimal `json:"quantity,omitempty"`
	BuyPrice     *decimal.Decimal `json:"buy_price,omitempty"`
	CurrentPrice *decimal.Decimal `json:"current_price,omitempty"`
	Note         string           `json:"note"`
}

// UpdatePriceRequest represents a price refresh for a unit-based asset
type UpdatePriceRequest struct {
	CurrentPrice decimal.Decimal `json:"current_price"`
}

func assetErrorStatus(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, asset.ErrAssetNotFound):
		respondWithError(w, http.StatusNotFound, "asset not found")
	case errors.Is(err, asset.ErrUnauthorizedAccess):
		respondWithError(w, http.StatusForbidden, "asset does not belong to user")
	case errors.Is(err, asset.ErrMissingName),
		errors.Is(err, asset.ErrInvalidKind),
		errors.Is(err, asset.ErrInvalidValue),
		errors.Is(err, asset.ErrMissingQuantity),
		errors.Is(err, asset.ErrMissingPrice):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "asset operation failed")
	}
}

func (req *AssetRequest) toAsset(userID uuid.UUID) *asset.Asset {
	return &asset.Asset{
		UserID:       userID,
		Name:         req.Name,
		Kind:         asset.Kind(req.Kind),
		Value:        req.Value,
		InitialValue: req.InitialValue,
		Quantity:     req.Quantity,
		BuyPrice:     req.BuyPrice,
		CurrentPrice: req.CurrentPrice,
		Note:         req.Note,
	}
}

// CreateAsset handles POST /assets
func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req AssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.assetService.Create(r.Context(), req.toAsset(userID))
	if err != nil {
		assetErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

// GetAssets handles GET /assets
func (h *AssetHandler) GetAssets(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	assets, err := h.assetService.List(r.Context(), userID)
	if err != nil {
		assetErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{"assets": assets})
}

// GetAsset handles GET /assets/{id}
func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid asset ID")
		return
	}

	a, err := h.assetService.GetByID(r.Context(), id, userID)
	if err != nil {
		assetErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, a)
}

// UpdateAsset handles PUT /assets/{id}
func (h *AssetHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid asset ID")
		return
	}

	var req AssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a := req.toAsset(uuid.Nil)
	a.ID = id
	updated, err := h.assetService.Update(r.Context(), a, userID)
	if err != nil {
		assetErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

// UpdateAssetPrice handles PUT /assets/{id}/price
func (h *AssetHandler) UpdateAssetPrice(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid asset ID")
		return
	}

	var req UpdatePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.assetService.UpdatePrice(r.Context(), id, userID, req.CurrentPrice)
	if err != nil {
		assetErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

// DeleteAsset handles DELETE /assets/{id}
func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid asset ID")
		return
	}

	if err := h.assetService.Delete(r.Context(), id, userID); err != nil {
		assetErrorStatus(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetPortfolio handles GET /assets/portfolio
func (h *AssetHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	p, err := h.assetService.BuildPortfolio(r.Context(), userID)
	if err != nil {
		assetErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, p)
}
