package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hieutran/moneykeeper/internal/platform/category"
	"github.com/hieutran/moneykeeper/internal/transport/httpapi/middleware"
)

// CategoryServiceInterface defines the interface for category operations
type CategoryServiceInterface interface {
	List(ctx context.Context, userID uuid.UUID) ([]category.Category, error)
	Add(ctx context.Context, userID uuid.UUID, name string) (*category.CustomCategory, error)
	Remove(ctx context.Context, userID uuid.UUID, name string) error
}

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService CategoryServiceInterface
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryRequest represents a custom category create request
type CategoryRequest struct {
	Name string `json:"name"`
}

func categoryErrorStatus(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, category.ErrCategoryNotFound):
		respondWithError(w, http.StatusNotFound, "category not found")
	case errors.Is(err, category.ErrDuplicateCategory),
		errors.Is(err, category.ErrShadowsStandard):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, category.ErrMissingName),
		errors.Is(err, category.ErrNameTooLong),
		errors.Is(err, category.ErrStandardReadOnly):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "category operation failed")
	}
}

// GetCategories handles GET /categories
func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	cats, err := h.categoryService.List(r.Context(), userID)
	if err != nil {
		categoryErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{"categories": cats})
}

// CreateCategory handles POST /categories
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.categoryService.Add(r.Context(), userID, req.Name)
	if err != nil {
		categoryErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

// DeleteCategory handles DELETE /categories/{name}
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil || name == "" {
		respondWithError(w, http.StatusBadRequest, "category name is required")
		return
	}

	if err := h.categoryService.Remove(r.Context(), userID, name); err != nil {
		categoryErrorStatus(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
