package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/hieutran/moneykeeper/internal/finmath"
	"github.com/hieutran/moneykeeper/internal/infra/gateway/genai"
	"github.com/hieutran/moneykeeper/internal/module/advisor"
	"github.com/hieutran/moneykeeper/internal/transport/httpapi/middleware"
)

// AdvisorServiceInterface defines the interface for advisor operations
type AdvisorServiceInterface interface {
	EvaluateDeal(input finmath.DealInput) finmath.DealAssessment
	StressTest(loan finmath.SplitRateLoan, monthlyIncome float64) advisor.StressResult
	HealthSnapshot(ctx context.Context, userID uuid.UUID) (*finmath.HealthScore, error)
	Consult(ctx context.Context, userID uuid.UUID, question string) (*advisor.Reply, error)
}

// AIToolsInterface defines the AI-assisted entry helpers
type AIToolsInterface interface {
	ScanReceipt(ctx context.Context, image []byte) (*genai.ReceiptFields, error)
	SuggestCategory(ctx context.Context, description string) (*genai.CategorySuggestion, error)
	ParseVoiceEntry(ctx context.Context, transcript string) (*genai.VoiceEntry, error)
}

// AdvisorHandler handles financial advisor HTTP requests
type AdvisorHandler struct {
	advisorService AdvisorServiceInterface
	aiTools        AIToolsInterface // nil when no AI gateway is configured
}

// NewAdvisorHandler creates a new advisor handler
func NewAdvisorHandler(advisorService AdvisorServiceInterface, aiTools AIToolsInterface) *AdvisorHandler {
	return &AdvisorHandler{
		advisorService: advisorService,
		aiTools:        aiTools,
	}
}

// DealRequest represents a deal evaluation request
type DealRequest struct {
	PurchasePrice   float64 `json:"purchase_price"`
	MonthlyRent     float64 `json:"monthly_rent"`
	CapRatePct      float64 `json:"cap_rate_pct"`
	LTVPct          float64 `json:"ltv_pct"`
	TermMonths      int     `json:"term_months"`
	PrefRatePct     float64 `json:"pref_rate_pct"`
	PrefMonths      int     `json:"pref_months"`
	FloatRatePct    float64 `json:"float_rate_pct"`
	PersonalIncome  float64 `json:"personal_income"`
	ExitPrice       float64 `json:"exit_price"`
	DiscountRatePct float64 `json:"discount_rate_pct"`
}

// StressTestRequest represents a loan stress test request
type StressTestRequest struct {
	Principal     float64 `json:"principal"`
	TermMonths    int     `json:"term_months"`
	PrefRatePct   float64 `json:"pref_rate_pct"`
	PrefMonths    int     `json:"pref_months"`
	FloatRatePct  float64 `json:"float_rate_pct"`
	MonthlyIncome float64 `json:"monthly_income"`
}

// ConsultRequest represents an AI consultation request
type ConsultRequest struct {
	Question string `json:"question"`
}

// ScanReceiptRequest carries a base64-encoded receipt image
type ScanReceiptRequest struct {
	Image string `json:"image"`
}

// SuggestCategoryRequest carries a transaction description to categorize
type SuggestCategoryRequest struct {
	Description string `json:"description"`
}

// VoiceEntryRequest carries a spoken transaction transcript
type VoiceEntryRequest struct {
	Transcript string `json:"transcript"`
}

func advisorErrorStatus(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, advisor.ErrAdvisorUnavailable), errors.Is(err, genai.ErrUnavailable):
		respondWithError(w, http.StatusServiceUnavailable, "AI advisor is unavailable")
	case errors.Is(err, advisor.ErrEmptyQuestion):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "advisor operation failed")
	}
}

// EvaluateDeal handles POST /advisor/evaluate-deal
func (h *AdvisorHandler) EvaluateDeal(w http.ResponseWriter, r *http.Request) {
	var req DealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PurchasePrice <= 0 || req.MonthlyRent <= 0 || req.CapRatePct <= 0 || req.TermMonths <= 0 {
		respondWithError(w, http.StatusBadRequest, "purchase price, rent, cap rate and term must be positive")
		return
	}

	assessment := h.advisorService.EvaluateDeal(finmath.DealInput{
		PurchasePrice:   req.PurchasePrice,
		MonthlyRent:     req.MonthlyRent,
		CapRatePct:      req.CapRatePct,
		LTVPct:          req.LTVPct,
		TermMonths:      req.TermMonths,
		PrefRatePct:     req.PrefRatePct,
		PrefMonths:      req.PrefMonths,
		FloatRatePct:    req.FloatRatePct,
		PersonalIncome:  req.PersonalIncome,
		ExitPrice:       req.ExitPrice,
		DiscountRatePct: req.DiscountRatePct,
	})

	respondWithJSON(w, http.StatusOK, assessment)
}

// StressTest handles POST /advisor/stress-test
func (h *AdvisorHandler) StressTest(w http.ResponseWriter, r *http.Request) {
	var req StressTestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Principal <= 0 || req.TermMonths <= 0 {
		respondWithError(w, http.StatusBadRequest, "principal and term must be positive")
		return
	}

	result := h.advisorService.StressTest(finmath.SplitRateLoan{
		Principal:    req.Principal,
		TermMonths:   req.TermMonths,
		PrefRatePct:  req.PrefRatePct,
		PrefMonths:   req.PrefMonths,
		FloatRatePct: req.FloatRatePct,
	}, req.MonthlyIncome)

	respondWithJSON(w, http.StatusOK, result)
}

// GetHealth handles GET /advisor/health
func (h *AdvisorHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	score, err := h.advisorService.HealthSnapshot(r.Context(), userID)
	if err != nil {
		advisorErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, score)
}

// Consult handles POST /advisor/consult
func (h *AdvisorHandler) Consult(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req ConsultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := h.advisorService.Consult(r.Context(), userID, req.Question)
	if err != nil {
		advisorErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, reply)
}

// ScanReceipt handles POST /advisor/tools/scan-receipt
func (h *AdvisorHandler) ScanReceipt(w http.ResponseWriter, r *http.Request) {
	if h.aiTools == nil {
		respondWithError(w, http.StatusServiceUnavailable, "AI advisor is unavailable")
		return
	}

	var req ScanReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil || len(image) == 0 {
		respondWithError(w, http.StatusBadRequest, "image must be base64 encoded")
		return
	}

	fields, err := h.aiTools.ScanReceipt(r.Context(), image)
	if err != nil {
		advisorErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, fields)
}

// SuggestCategory handles POST /advisor/tools/suggest-category
func (h *AdvisorHandler) SuggestCategory(w http.ResponseWriter, r *http.Request) {
	if h.aiTools == nil {
		respondWithError(w, http.StatusServiceUnavailable, "AI advisor is unavailable")
		return
	}

	var req SuggestCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Description == "" {
		respondWithError(w, http.StatusBadRequest, "description is required")
		return
	}

	suggestion, err := h.aiTools.SuggestCategory(r.Context(), req.Description)
	if err != nil {
		advisorErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, suggestion)
}

// ParseVoiceEntry handles POST /advisor/tools/voice-entry
func (h *AdvisorHandler) ParseVoiceEntry(w http.ResponseWriter, r *http.Request) {
	if h.aiTools == nil {
		respondWithError(w, http.StatusServiceUnavailable, "AI advisor is unavailable")
		return
	}

	var req VoiceEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Transcript == "" {
		respondWithError(w, http.StatusBadRequest, "transcript is required")
		return
	}

	entry, err := h.aiTools.ParseVoiceEntry(r.Context(), req.Transcript)
	if err != nil {
		advisorErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, entry)
}
