package guarantor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"loan-office/internal/domain/customer"
	"loan-office/internal/domain/modmin"
	"loan-office/internal/pkg/apperrors"
)

type GuarantorInput struct {
	Surname    string
	OtherNames string
	Email      string
	Telephone  string
	Address    string
}

type GuarantorService interface {
	AddGuarantor(ctx context.Context, customerID string, actor modmin.Actor, input GuarantorInput) (*Guarantor, error)

	GetGuarantor(ctx context.Context, guarantorID string, actor modmin.Actor) (*Guarantor, error)

	ListGuarantors(ctx context.Context, actor modmin.Actor, filter ListFilter) ([]*Guarantor, int, error)

	ListCustomerGuarantors(ctx context.Context, customerID string, actor modmin.Actor) ([]*Guarantor, error)

	UpdateGuarantor(ctx context.Context, guarantorID string, actor modmin.Actor, input GuarantorInput) (*Guarantor, error)

	DeleteGuarantor(ctx context.Context, guarantorID string, actor modmin.Actor) error
}

var _ GuarantorService = (*guarantorService)(nil)

type guarantorService struct {
	repo            Repository
	customerService customer.CustomerService
	logger          *slog.Logger
}

func NewGuarantorService(repo Repository, cs customer.CustomerService, logger *slog.Logger) GuarantorService {
	if repo == nil {
		panic("guarantor repository cannot be nil")
	}
	return &guarantorService{
		repo:            repo,
		customerService: cs,
		logger:          logger.With(slog.String("component", "guarantorService")),
	}
}

func normalize(input GuarantorInput) (GuarantorInput, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Surname = strings.TrimSpace(input.Surname)
	input.OtherNames = strings.TrimSpace(input.OtherNames)
	input.Telephone = strings.TrimSpace(input.Telephone)
	input.Address = strings.TrimSpace(input.Address)

	if input.Surname == "" {
		return input, apperrors.NewValidationError("surname", "is required")
	}
	return input, nil
}

func (s *guarantorService) AddGuarantor(ctx context.Context, customerID string, actor modmin.Actor, input GuarantorInput) (*Guarantor, error) {
	s.logger.InfoContext(ctx, "Attempting to add guarantor", slog.String("customerID", customerID))

	input, err := normalize(input)
	if err != nil {
		s.logger.WarnContext(ctx, "Validation failed for new guarantor", slog.Any("error", err))
		return nil, err
	}

	// Resolving the customer enforces the actor's scope.
	if _, err := s.customerService.GetCustomer(ctx, customerID, actor); err != nil {
		return nil, err
	}

	g := NewGuarantor(customerID, input.Surname, input.OtherNames, input.Email, input.Telephone, input.Address)
	if err := s.repo.Save(ctx, g); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save guarantor", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save guarantor: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully added guarantor", slog.String("guarantorID", g.ID))
	return g, nil
}

func (s *guarantorService) GetGuarantor(ctx context.Context, guarantorID string, actor modmin.Actor) (*Guarantor, error) {
	g, err := s.repo.FindByID(ctx, guarantorID, actor)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, "Guarantor not found by repository")
			return nil, apperrors.ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding guarantor", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get guarantor %s: %w", guarantorID, err)
	}
	return g, nil
}

func (s *guarantorService) ListGuarantors(ctx context.Context, actor modmin.Actor, filter ListFilter) ([]*Guarantor, int, error) {
	s.logger.InfoContext(ctx, "Attempting to list guarantors")

	guarantors, total, err := s.repo.FindAll(ctx, actor, filter.Normalized())
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing guarantors", slog.Any("error", err))
		return nil, 0, fmt.Errorf("failed to list guarantors: %w", err)
	}

	return guarantors, total, nil
}

func (s *guarantorService) ListCustomerGuarantors(ctx context.Context, customerID string, actor modmin.Actor) ([]*Guarantor, error) {
	s.logger.InfoContext(ctx, "Attempting to list customer guarantors", slog.String("customerID", customerID))

	if _, err := s.customerService.GetCustomer(ctx, customerID, actor); err != nil {
		return nil, err
	}

	guarantors, err := s.repo.FindByCustomer(ctx, customerID, actor)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing customer guarantors", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list guarantors for customer %s: %w", customerID, err)
	}

	return guarantors, nil
}

func (s *guarantorService) UpdateGuarantor(ctx context.Context, guarantorID string, actor modmin.Actor, input GuarantorInput) (*Guarantor, error) {
	s.logger.InfoContext(ctx, "Attempting to update guarantor", slog.String("guarantorID", guarantorID))

	input, err := normalize(input)
	if err != nil {
		s.logger.WarnContext(ctx, "Validation failed for guarantor update", slog.Any("error", err))
		return nil, err
	}

	g, err := s.repo.FindByID(ctx, guarantorID, actor)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("cannot find guarantor %s to update: %w", guarantorID, err)
	}

	g.Surname = input.Surname
	g.OtherNames = input.OtherNames
	g.Email = input.Email
	g.Telephone = input.Telephone
	g.Address = input.Address

	if err := s.repo.Save(ctx, g); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save updated guarantor", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save updated guarantor %s: %w", guarantorID, err)
	}

	s.logger.InfoContext(ctx, "Successfully updated guarantor")
	return g, nil
}

func (s *guarantorService) DeleteGuarantor(ctx context.Context, guarantorID string, actor modmin.Actor) error {
	s.logger.InfoContext(ctx, "Attempting to delete guarantor", slog.String("guarantorID", guarantorID))

	if _, err := s.repo.FindByID(ctx, guarantorID, actor); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("cannot find guarantor %s to delete: %w", guarantorID, err)
	}

	if err := s.repo.Delete(ctx, guarantorID); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to delete guarantor", slog.Any("error", err))
		return fmt.Errorf("failed to delete guarantor %s: %w", guarantorID, err)
	}

	s.logger.InfoContext(ctx, "Successfully deleted guarantor")
	return nil
}
