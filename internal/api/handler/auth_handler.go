package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"loan-office/internal/api/handler/dto"
	"loan-office/internal/config"
	"loan-office/internal/domain/modmin"
	"loan-office/internal/pkg/apperrors"
)

type AuthHandler struct {
	service modmin.ModminService
	cfg     config.AuthConfig
	logger  *slog.Logger
}

func NewAuthHandler(s modmin.ModminService, cfg config.AuthConfig, l *slog.Logger) *AuthHandler {
	if s == nil {
		panic("modmin service cannot be nil")
	}
	return &AuthHandler{
		service: s,
		cfg:     cfg,
		logger:  l.With("component", "AuthHandler"),
	}
}

// Login handles POST /auth/login
// @Summary Authenticate a staff member
// @Description Verifies email and password, returning a signed JWT carrying the account's role.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse "Token issued"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 401 {object} dto.ErrorResponse "Unknown email or wrong password"
// @Failure 403 {object} dto.ErrorResponse "Account suspended"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received login request")

	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	account, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrUnauthorized) && !errors.Is(err, apperrors.ErrForbidden) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Authentication failed", slog.Any("error", err))
		respondError(w, err)
		return
	}

	expiresAt := time.Now().Add(h.cfg.TokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  account.ID,
		"role": string(account.Role),
		"iat":  time.Now().Unix(),
		"exp":  expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to sign JWT", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: failed to issue token", apperrors.ErrInternalServer))
		return
	}

	resp := dto.LoginResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		Modmin:    dto.NewModminResponse(account),
	}
	h.logger.InfoContext(r.Context(), "Login successful", slog.String("modminID", account.ID))
	respondJSON(w, http.StatusOK, resp)
}

// AddModerator handles POST /moderators
// @Summary Register a moderator account
// @Description Creates a moderator account. Admin only.
// @Tags Moderators
// @Accept json
// @Produce json
// @Param request body dto.AddModeratorRequest true "Moderator details"
// @Success 201 {object} dto.ModminResponse "Moderator created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an Admin"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /moderators [post]
// @Security BearerAuth
func (h *AuthHandler) AddModerator(w http.ResponseWriter, r *http.Request) {
	var req dto.AddModeratorRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	moderator, err := h.service.AddModerator(r.Context(), req.Email, req.Surname, req.OtherNames, req.Password)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to add moderator", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Moderator added successfully", slog.String("modminID", moderator.ID))
	respondJSON(w, http.StatusCreated, dto.NewModminResponse(moderator))
}

// ListModerators handles GET /moderators
// @Summary List moderator accounts
// @Tags Moderators
// @Produce json
// @Success 200 {array} dto.ModminResponse "Moderator accounts"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an Admin"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /moderators [get]
// @Security BearerAuth
func (h *AuthHandler) ListModerators(w http.ResponseWriter, r *http.Request) {
	moderators, err := h.service.ListModerators(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list moderators", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := make([]dto.ModminResponse, len(moderators))
	for i, m := range moderators {
		resp[i] = dto.NewModminResponse(m)
	}
	respondJSON(w, http.StatusOK, resp)
}

// ToggleModeratorStatus handles PATCH /moderators/{modminID}/status
// @Summary Suspend or reinstate a moderator
// @Description Flips the account's active flag. A suspended moderator cannot log in. Admin only.
// @Tags Moderators
// @Produce json
// @Param modminID path string true "Moderator ID"
// @Success 200 {object} dto.ModminResponse "Updated account"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an Admin"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /moderators/{modminID}/status [patch]
// @Security BearerAuth
func (h *AuthHandler) ToggleModeratorStatus(w http.ResponseWriter, r *http.Request) {
	modminID := chi.URLParam(r, "modminID")

	account, err := h.service.ToggleStatus(r.Context(), modminID)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to toggle moderator status", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Moderator status toggled", slog.String("modminID", modminID), slog.Bool("active", account.Active))
	respondJSON(w, http.StatusOK, dto.NewModminResponse(account))
}
