package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"loan-office/internal/api/handler/dto"
	"loan-office/internal/api/middleware"
	"loan-office/internal/domain/loan"
	"loan-office/internal/pkg/apperrors"
)

type LoanHandler struct {
	service loan.LoanService
	logger  *slog.Logger
}

func NewLoanHandler(s loan.LoanService, l *slog.Logger) *LoanHandler {
	return &LoanHandler{
		service: s,
		logger:  l.With("component", "LoanHandler"),
	}
}

// timeNow is swapped out in tests that pin the installment status clock.
var timeNow = time.Now

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	if payload == nil {
		w.WriteHeader(status)
		return
	}
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, err error) {
	status, message, field := http.StatusInternalServerError, "An unexpected error occurred.", ""
	var validationError *apperrors.ValidationError
	var appErr *apperrors.AppError

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status, message = http.StatusNotFound, "Resource not found."
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrUnauthorized):
		status, message = http.StatusUnauthorized, "Invalid credentials."
	case errors.Is(err, apperrors.ErrForbidden):
		status, message = http.StatusForbidden, "You do not have permission to perform this action."
	case errors.Is(err, apperrors.ErrOutstandingLoan):
		status, message = http.StatusConflict, "Customer still has an outstanding loan."
	case errors.Is(err, apperrors.ErrAlreadyExists), errors.Is(err, apperrors.ErrConflict):
		status, message = http.StatusConflict, err.Error()
	case errors.As(err, &validationError):
		status, message, field = http.StatusBadRequest, validationError.Message, validationError.Field
	case errors.As(err, &appErr):
		message = appErr.Error()
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	resp := dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Message: message,
			Field:   field,
		},
	}
	respondJSON(w, status, resp)
}

func pageFilterFromQuery(r *http.Request) (page, limit int, search string) {
	q := r.URL.Query()
	page, _ = strconv.Atoi(q.Get("page"))
	limit, _ = strconv.Atoi(q.Get("limit"))
	return page, limit, q.Get("search")
}

// ApplyLoan handles POST /loans
// @Summary Apply for a loan
// @Description Creates a loan application and its full monthly payback schedule in one step. Rejected with 409 while the customer has any unpaid installment.
// @Tags Loans
// @Accept json
// @Produce json
// @Param request body dto.ApplyLoanRequest true "Loan application payload"
// @Success 201 {object} dto.LoanResponse "Loan successfully created with schedule"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload or validation error"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 409 {object} dto.ErrorResponse "Customer has an outstanding loan"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans [post]
// @Security BearerAuth
func (h *LoanHandler) ApplyLoan(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received apply loan request")

	var req dto.ApplyLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Loan application validation failed", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	createdLoan, err := h.service.ApplyLoan(r.Context(), req.CustomerID, actor, req.ToInput())
	if err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to apply loan", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewLoanResponse(createdLoan, true)
	h.logger.InfoContext(r.Context(), "Loan created successfully", slog.String("loanID", resp.ID))
	respondJSON(w, http.StatusCreated, resp)
}

// GetLoan handles GET /loans/{loanID}
// @Summary Retrieve a loan with its schedule
// @Description Returns the loan application and every installment with its derived status (PAID, OVERDUE or UPCOMING).
// @Tags Loans
// @Produce json
// @Param loanID path string true "Loan ID"
// @Success 200 {object} dto.LoanResponse "Loan details with installments"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans/{loanID} [get]
// @Security BearerAuth
func (h *LoanHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	loanID := chi.URLParam(r, "loanID")
	actor := middleware.ActorFromContext(r.Context())

	domainLoan, err := h.service.GetLoan(r.Context(), loanID, actor)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to get loan", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewLoanResponse(domainLoan, true)
	respondJSON(w, http.StatusOK, resp)
}

// ListLoans handles GET /loans
// @Summary List loans
// @Description Lists loans visible to the caller, paginated. Moderators only see loans they authored.
// @Tags Loans
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param search query string false "Match against customer email or names"
// @Param loanType query string false "Filter by loan type"
// @Success 200 {object} dto.LoanListResponse "Paginated loan list"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans [get]
// @Security BearerAuth
func (h *LoanHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	page, limit, search := pageFilterFromQuery(r)
	filter := loan.ListFilter{
		Page:     page,
		Limit:    limit,
		Search:   search,
		LoanType: r.URL.Query().Get("loanType"),
	}.Normalized()

	actor := middleware.ActorFromContext(r.Context())
	loans, total, err := h.service.ListLoans(r.Context(), actor, filter)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list loans", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.LoanListResponse{
		Loans: make([]dto.LoanResponse, len(loans)),
		Meta:  dto.PageMeta{Page: filter.Page, Limit: filter.Limit, Total: total},
	}
	for i, l := range loans {
		resp.Loans[i] = dto.NewLoanResponse(l, false)
	}

	h.logger.InfoContext(r.Context(), "Loans listed successfully", slog.Int("count", len(loans)))
	respondJSON(w, http.StatusOK, resp)
}

// EditLoan handles PUT /loans/{loanID}
// @Summary Edit a loan application
// @Description Corrects fees, dates and bank details. The payback schedule is never regenerated by an edit.
// @Tags Loans
// @Accept json
// @Produce json
// @Param loanID path string true "Loan ID"
// @Param request body dto.ApplyLoanRequest true "Fields to update"
// @Success 200 {object} dto.LoanResponse "Updated loan"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans/{loanID} [put]
// @Security BearerAuth
func (h *LoanHandler) EditLoan(w http.ResponseWriter, r *http.Request) {
	loanID := chi.URLParam(r, "loanID")

	var req dto.ApplyLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	updatedLoan, err := h.service.EditLoan(r.Context(), loanID, actor, req.ToInput())
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to edit loan", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewLoanResponse(updatedLoan, false)
	h.logger.InfoContext(r.Context(), "Loan edited successfully", slog.String("loanID", resp.ID))
	respondJSON(w, http.StatusOK, resp)
}

// DeleteLoan handles DELETE /loans/{loanID}
// @Summary Delete a loan application
// @Description Removes the loan and its entire payback schedule. Admin only.
// @Tags Loans
// @Produce json
// @Param loanID path string true "Loan ID"
// @Success 204 "Loan deleted"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an Admin"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans/{loanID} [delete]
// @Security BearerAuth
func (h *LoanHandler) DeleteLoan(w http.ResponseWriter, r *http.Request) {
	loanID := chi.URLParam(r, "loanID")
	actor := middleware.ActorFromContext(r.Context())

	if err := h.service.DeleteLoan(r.Context(), loanID, actor); err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrForbidden) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to delete loan", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Loan deleted successfully", slog.String("loanID", loanID))
	respondJSON(w, http.StatusNoContent, nil)
}

// ToggleInstallment handles PATCH /loans/{loanID}/installments/{installmentID}
// @Summary Toggle an installment's paid flag
// @Description Flips the paid flag on one installment. Toggling twice restores the original state, so a mistaken payment mark is reversible.
// @Tags Loans
// @Produce json
// @Param loanID path string true "Loan ID"
// @Param installmentID path string true "Installment ID"
// @Success 200 {object} dto.InstallmentResponse "Updated installment with derived status"
// @Failure 404 {object} dto.ErrorResponse "Loan or installment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans/{loanID}/installments/{installmentID} [patch]
// @Security BearerAuth
func (h *LoanHandler) ToggleInstallment(w http.ResponseWriter, r *http.Request) {
	loanID := chi.URLParam(r, "loanID")
	installmentID := chi.URLParam(r, "installmentID")
	actor := middleware.ActorFromContext(r.Context())

	installment, err := h.service.ToggleInstallmentPaid(r.Context(), loanID, installmentID, actor)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to toggle installment", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewInstallmentResponse(installment, timeNow())
	h.logger.InfoContext(r.Context(), "Installment toggled successfully",
		slog.String("installmentID", installmentID), slog.Bool("paid", installment.Paid))
	respondJSON(w, http.StatusOK, resp)
}
