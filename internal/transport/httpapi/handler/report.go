package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/hieutran/moneykeeper/internal/module/report"
	"github.com/hieutran/moneykeeper/internal/transport/httpapi/middleware"
)

// maxBackupSize caps the accepted backup upload at 20 MiB
const maxBackupSize = 20 << 20

// ReportServiceInterface defines the interface for export and backup operations
type ReportServiceInterface interface {
	ExportCSV(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]byte, error)
	ExportBackup(ctx context.Context, userID uuid.UUID) ([]byte, error)
	ImportBackup(ctx context.Context, userID uuid.UUID, raw []byte) (*report.Backup, error)
}

// ReportHandler handles export and backup HTTP requests
type ReportHandler struct {
	reportService ReportServiceInterface
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService ReportServiceInterface) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func reportErrorStatus(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, report.ErrInvalidBackup):
		respondWithError(w, http.StatusBadRequest, "backup file is not valid")
	case errors.Is(err, report.ErrUnsupportedVersion):
		respondWithError(w, http.StatusBadRequest, "unsupported backup version")
	default:
		respondWithError(w, http.StatusInternalServerError, "report operation failed")
	}
}

// ExportCSV handles GET /reports/export/csv?from=&to=
func (h *ReportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var from, to *time.Time
	q := r.URL.Query()
	if v := q.Get("from"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid from timestamp")
			return
		}
		from = &ts
	}
	if v := q.Get("to"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid to timestamp")
			return
		}
		to = &ts
	}

	data, err := h.reportService.ExportCSV(r.Context(), userID, from, to)
	if err != nil {
		reportErrorStatus(w, err)
		return
	}

	filename := fmt.Sprintf("giao-dich-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// ExportBackup handles GET /reports/backup
func (h *ReportHandler) ExportBackup(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	data, err := h.reportService.ExportBackup(r.Context(), userID)
	if err != nil {
		reportErrorStatus(w, err)
		return
	}

	filename := fmt.Sprintf("moneykeeper-backup-%s.json", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// ImportBackup handles POST /reports/backup. The uploaded data replaces
// everything the user currently has.
func (h *ReportHandler) ImportBackup(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBackupSize))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "failed to read backup file")
		return
	}

	b, err := h.reportService.ImportBackup(r.Context(), userID, raw)
	if err != nil {
		reportErrorStatus(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"version":      b.Version,
		"transactions": len(b.Transactions),
		"wallets":      len(b.Wallets),
	})
}
