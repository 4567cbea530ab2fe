package modmin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"loan-office/internal/pkg/apperrors"
)

type ModminService interface {
	Authenticate(ctx context.Context, email, password string) (*Modmin, error)

	AddModerator(ctx context.Context, email, surname, otherNames, password string) (*Modmin, error)

	GetModmin(ctx context.Context, id string) (*Modmin, error)

	ListModerators(ctx context.Context) ([]*Modmin, error)

	ToggleStatus(ctx context.Context, id string) (*Modmin, error)
}

var _ ModminService = (*modminService)(nil)

type modminService struct {
	repo   Repository
	logger *slog.Logger
}

func NewModminService(repo Repository, logger *slog.Logger) ModminService {
	if repo == nil {
		panic("modmin repository cannot be nil")
	}
	return &modminService{
		repo:   repo,
		logger: logger.With(slog.String("component", "modminService")),
	}
}

func (s *modminService) Authenticate(ctx context.Context, email, password string) (*Modmin, error) {
	s.logger.InfoContext(ctx, "Attempting to authenticate modmin")

	email = strings.ToLower(strings.TrimSpace(email))
	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, "Authentication failed: account not found")
			return nil, apperrors.ErrUnauthorized
		}
		s.logger.ErrorContext(ctx, "Repository error finding modmin by email", slog.Any("error", err))
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if !account.Active {
		s.logger.WarnContext(ctx, "Authentication failed: account suspended")
		return nil, apperrors.ErrForbidden
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		s.logger.WarnContext(ctx, "Authentication failed: password mismatch")
		return nil, apperrors.ErrUnauthorized
	}

	s.logger.InfoContext(ctx, "Successfully authenticated modmin", slog.String("modminID", account.ID))
	return account, nil
}

func (s *modminService) AddModerator(ctx context.Context, email, surname, otherNames, password string) (*Modmin, error) {
	s.logger.InfoContext(ctx, "Attempting to add moderator")

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apperrors.NewValidationError("email", "is required")
	}
	if len(password) < 8 {
		return nil, apperrors.NewValidationError("password", "must be at least 8 characters")
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		s.logger.WarnContext(ctx, "Moderator email already registered")
		return nil, fmt.Errorf("%w: %s", apperrors.ErrAlreadyExists, email)
	} else if !errors.Is(err, ErrNotFound) {
		s.logger.ErrorContext(ctx, "Repository error checking email uniqueness", slog.Any("error", err))
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to hash moderator password", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to hash password: %v", apperrors.ErrInternalServer, err)
	}

	moderator := NewModmin(email, strings.TrimSpace(surname), strings.TrimSpace(otherNames), string(hash), RoleModerator)
	if err := s.repo.Save(ctx, moderator); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAlreadyExists, email)
		}
		s.logger.ErrorContext(ctx, "Repository failed to save moderator", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save moderator: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully added moderator", slog.String("modminID", moderator.ID))
	return moderator, nil
}

func (s *modminService) GetModmin(ctx context.Context, id string) (*Modmin, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding modmin", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get modmin %s: %w", id, err)
	}
	return account, nil
}

func (s *modminService) ListModerators(ctx context.Context) ([]*Modmin, error) {
	s.logger.InfoContext(ctx, "Attempting to list moderators")

	moderators, err := s.repo.FindAll(ctx, RoleModerator)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing moderators", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list moderators: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully listed moderators", slog.Int("count", len(moderators)))
	return moderators, nil
}

func (s *modminService) ToggleStatus(ctx context.Context, id string) (*Modmin, error) {
	s.logger.InfoContext(ctx, "Attempting to toggle modmin status", slog.String("modminID", id))

	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, "Modmin not found for status toggle")
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("cannot find modmin %s to toggle status: %w", id, err)
	}

	account.ToggleStatus()
	if err := s.repo.Save(ctx, account); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save toggled status", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save status for modmin %s: %w", id, err)
	}

	s.logger.InfoContext(ctx, "Successfully toggled modmin status", slog.Bool("active", account.Active))
	return account, nil
}
