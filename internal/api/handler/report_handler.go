package handler

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"loan-office/internal/api/middleware"
	"loan-office/internal/pkg/apperrors"
	"loan-office/internal/report"
)

type ReportHandler struct {
	exporter *report.Exporter
	logger   *slog.Logger
}

func NewReportHandler(e *report.Exporter, l *slog.Logger) *ReportHandler {
	if e == nil {
		panic("report exporter cannot be nil")
	}
	return &ReportHandler{
		exporter: e,
		logger:   l.With("component", "ReportHandler"),
	}
}

// ExportLoans handles GET /reports/loans
// @Summary Export the loan book as CSV
// @Description Streams one CSV row per installment with statuses derived at export time. Moderators export only their own loans.
// @Tags Reports
// @Produce text/csv
// @Success 200 {string} string "CSV report"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/loans [get]
// @Security BearerAuth
func (h *ReportHandler) ExportLoans(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	filename := fmt.Sprintf("loan-report-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.exporter.WriteCSV(r.Context(), w, actor); err != nil {
		// Headers may already be on the wire; log and abort the stream.
		h.logger.ErrorContext(r.Context(), "Failed to export loan report", slog.Any("error", err))
		return
	}

	h.logger.InfoContext(r.Context(), "Loan report exported successfully")
}

// ExportLoan handles GET /reports/loans/{loanID}
// @Summary Export a single loan as CSV
// @Description Streams the loan with one CSV row per installment. Moderators can only export their own loans.
// @Tags Reports
// @Produce text/csv
// @Param loanID path string true "Loan ID"
// @Success 200 {string} string "CSV report"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/loans/{loanID} [get]
// @Security BearerAuth
func (h *ReportHandler) ExportLoan(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	loanID := chi.URLParam(r, "loanID")

	// Buffered so a missing loan still yields a JSON error instead of a
	// truncated CSV stream.
	var buf bytes.Buffer
	if err := h.exporter.WriteLoanCSV(r.Context(), &buf, loanID, actor); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			h.logger.ErrorContext(r.Context(), "Failed to export loan", slog.String("loan_id", loanID), slog.Any("error", err))
		}
		respondError(w, err)
		return
	}

	filename := fmt.Sprintf("loan-%s-%s.csv", loanID, time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed writing loan report response", slog.Any("error", err))
		return
	}

	h.logger.InfoContext(r.Context(), "Loan report exported successfully", slog.String("loan_id", loanID))
}
