package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"loan-office/internal/api/handler/dto"
	"loan-office/internal/api/middleware"
	"loan-office/internal/domain/guarantor"
	"loan-office/internal/pkg/apperrors"
)

type GuarantorHandler struct {
	service guarantor.GuarantorService
	logger  *slog.Logger
}

func NewGuarantorHandler(s guarantor.GuarantorService, l *slog.Logger) *GuarantorHandler {
	if s == nil {
		panic("guarantor service cannot be nil")
	}
	return &GuarantorHandler{
		service: s,
		logger:  l.With("component", "GuarantorHandler"),
	}
}

// AddGuarantor handles POST /guarantors
// @Summary Add a guarantor for a customer
// @Description The customer must be visible to the caller; a Moderator cannot attach a guarantor to another Moderator's customer.
// @Tags Guarantors
// @Accept json
// @Produce json
// @Param request body dto.AddGuarantorRequest true "Guarantor details"
// @Success 201 {object} dto.GuarantorResponse "Guarantor created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /guarantors [post]
// @Security BearerAuth
func (h *GuarantorHandler) AddGuarantor(w http.ResponseWriter, r *http.Request) {
	var req dto.AddGuarantorRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	created, err := h.service.AddGuarantor(r.Context(), req.CustomerID, actor, guarantor.GuarantorInput{
		Surname:    req.Surname,
		OtherNames: req.OtherNames,
		Email:      req.Email,
		Telephone:  req.Telephone,
		Address:    req.Address,
	})
	if err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to add guarantor", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewGuarantorResponse(created)
	h.logger.InfoContext(r.Context(), "Guarantor added successfully", slog.String("guarantorID", resp.ID))
	respondJSON(w, http.StatusCreated, resp)
}

// GetGuarantor handles GET /guarantors/{guarantorID}
// @Summary Retrieve guarantor details
// @Tags Guarantors
// @Produce json
// @Param guarantorID path string true "Guarantor ID"
// @Success 200 {object} dto.GuarantorResponse "Guarantor details"
// @Failure 404 {object} dto.ErrorResponse "Guarantor not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /guarantors/{guarantorID} [get]
// @Security BearerAuth
func (h *GuarantorHandler) GetGuarantor(w http.ResponseWriter, r *http.Request) {
	guarantorID := chi.URLParam(r, "guarantorID")
	actor := middleware.ActorFromContext(r.Context())

	g, err := h.service.GetGuarantor(r.Context(), guarantorID, actor)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to get guarantor", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewGuarantorResponse(g))
}

// ListGuarantors handles GET /guarantors
// @Summary List guarantors
// @Description Paginated guarantor listing with optional search. Scoped through the owning customer's author.
// @Tags Guarantors
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param search query string false "Match against email or names"
// @Success 200 {object} dto.GuarantorListResponse "Paginated guarantor list"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /guarantors [get]
// @Security BearerAuth
func (h *GuarantorHandler) ListGuarantors(w http.ResponseWriter, r *http.Request) {
	page, limit, search := pageFilterFromQuery(r)
	filter := guarantor.ListFilter{Page: page, Limit: limit, Search: search}.Normalized()

	actor := middleware.ActorFromContext(r.Context())
	guarantors, total, err := h.service.ListGuarantors(r.Context(), actor, filter)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list guarantors", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.GuarantorListResponse{
		Guarantors: make([]dto.GuarantorResponse, len(guarantors)),
		Meta:       dto.PageMeta{Page: filter.Page, Limit: filter.Limit, Total: total},
	}
	for i, g := range guarantors {
		resp.Guarantors[i] = dto.NewGuarantorResponse(g)
	}

	respondJSON(w, http.StatusOK, resp)
}

// ListCustomerGuarantors handles GET /customers/{customerID}/guarantors
// @Summary List a customer's guarantors
// @Tags Guarantors
// @Produce json
// @Param customerID path string true "Customer ID"
// @Success 200 {array} dto.GuarantorResponse "Guarantors for the customer"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID}/guarantors [get]
// @Security BearerAuth
func (h *GuarantorHandler) ListCustomerGuarantors(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerID")
	actor := middleware.ActorFromContext(r.Context())

	guarantors, err := h.service.ListCustomerGuarantors(r.Context(), customerID, actor)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to list customer guarantors", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := make([]dto.GuarantorResponse, len(guarantors))
	for i, g := range guarantors {
		resp[i] = dto.NewGuarantorResponse(g)
	}
	respondJSON(w, http.StatusOK, resp)
}

// UpdateGuarantor handles PUT /guarantors/{guarantorID}
// @Summary Update guarantor details
// @Tags Guarantors
// @Accept json
// @Produce json
// @Param guarantorID path string true "Guarantor ID"
// @Param request body dto.UpdateGuarantorRequest true "Fields to update; empty fields keep their value"
// @Success 200 {object} dto.GuarantorResponse "Updated guarantor"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 404 {object} dto.ErrorResponse "Guarantor not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /guarantors/{guarantorID} [put]
// @Security BearerAuth
func (h *GuarantorHandler) UpdateGuarantor(w http.ResponseWriter, r *http.Request) {
	guarantorID := chi.URLParam(r, "guarantorID")

	var req dto.UpdateGuarantorRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	updated, err := h.service.UpdateGuarantor(r.Context(), guarantorID, actor, guarantor.GuarantorInput{
		Surname:    req.Surname,
		OtherNames: req.OtherNames,
		Email:      req.Email,
		Telephone:  req.Telephone,
		Address:    req.Address,
	})
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to update guarantor", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Guarantor updated successfully", slog.String("guarantorID", guarantorID))
	respondJSON(w, http.StatusOK, dto.NewGuarantorResponse(updated))
}

// DeleteGuarantor handles DELETE /guarantors/{guarantorID}
// @Summary Delete a guarantor
// @Tags Guarantors
// @Produce json
// @Param guarantorID path string true "Guarantor ID"
// @Success 204 "Guarantor deleted"
// @Failure 404 {object} dto.ErrorResponse "Guarantor not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /guarantors/{guarantorID} [delete]
// @Security BearerAuth
func (h *GuarantorHandler) DeleteGuarantor(w http.ResponseWriter, r *http.Request) {
	guarantorID := chi.URLParam(r, "guarantorID")
	actor := middleware.ActorFromContext(r.Context())

	if err := h.service.DeleteGuarantor(r.Context(), guarantorID, actor); err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to delete guarantor", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Guarantor deleted successfully", slog.String("guarantorID", guarantorID))
	respondJSON(w, http.StatusNoContent, nil)
}
