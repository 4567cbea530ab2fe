package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"loan-office/internal/api/handler/dto"
	"loan-office/internal/domain/loan"
	"loan-office/internal/pkg/apperrors"
)

type CategoryHandler struct {
	service loan.LoanService
	logger  *slog.Logger
}

func NewCategoryHandler(s loan.LoanService, l *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: s,
		logger:  l.With("component", "CategoryHandler"),
	}
}

// AddCategory handles POST /loan-categories
// @Summary Add a loan category
// @Tags LoanCategories
// @Accept json
// @Produce json
// @Param request body dto.SaveCategoryRequest true "Category name and ceiling amount"
// @Success 201 {object} dto.CategoryResponse "Category created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loan-categories [post]
// @Security BearerAuth
func (h *CategoryHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	amount, _ := decimal.NewFromString(req.Amount)
	category, err := h.service.AddCategory(r.Context(), req.Name, amount)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to add category", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Loan category added", slog.String("categoryID", category.ID))
	respondJSON(w, http.StatusCreated, dto.NewCategoryResponse(category))
}

// GetCategory handles GET /loan-categories/{categoryID}
// @Summary Retrieve a loan category
// @Tags LoanCategories
// @Produce json
// @Param categoryID path string true "Category ID"
// @Success 200 {object} dto.CategoryResponse "Category details"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loan-categories/{categoryID} [get]
// @Security BearerAuth
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryID")

	category, err := h.service.GetCategory(r.Context(), categoryID)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to get category", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCategoryResponse(category))
}

// ListCategories handles GET /loan-categories
// @Summary List loan categories
// @Tags LoanCategories
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param search query string false "Match against category name"
// @Success 200 {object} dto.CategoryListResponse "Paginated category list"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loan-categories [get]
// @Security BearerAuth
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	page, limit, search := pageFilterFromQuery(r)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	categories, total, err := h.service.ListCategories(r.Context(), search, page, limit)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list categories", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.CategoryListResponse{
		Categories: make([]dto.CategoryResponse, len(categories)),
		Meta:       dto.PageMeta{Page: page, Limit: limit, Total: total},
	}
	for i, c := range categories {
		resp.Categories[i] = dto.NewCategoryResponse(c)
	}

	respondJSON(w, http.StatusOK, resp)
}

// EditCategory handles PUT /loan-categories/{categoryID}
// @Summary Edit a loan category
// @Tags LoanCategories
// @Accept json
// @Produce json
// @Param categoryID path string true "Category ID"
// @Param request body dto.SaveCategoryRequest true "New name and amount"
// @Success 200 {object} dto.CategoryResponse "Updated category"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loan-categories/{categoryID} [put]
// @Security BearerAuth
func (h *CategoryHandler) EditCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryID")

	var req dto.SaveCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	amount, _ := decimal.NewFromString(req.Amount)
	category, err := h.service.EditCategory(r.Context(), categoryID, req.Name, amount)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to edit category", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Loan category edited", slog.String("categoryID", categoryID))
	respondJSON(w, http.StatusOK, dto.NewCategoryResponse(category))
}

// DeleteCategory handles DELETE /loan-categories/{categoryID}
// @Summary Delete a loan category
// @Tags LoanCategories
// @Produce json
// @Param categoryID path string true "Category ID"
// @Success 204 "Category deleted"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loan-categories/{categoryID} [delete]
// @Security BearerAuth
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryID")

	if err := h.service.RemoveCategory(r.Context(), categoryID); err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to delete category", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Loan category deleted", slog.String("categoryID", categoryID))
	respondJSON(w, http.StatusNoContent, nil)
}
