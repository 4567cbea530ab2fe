package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"loan-office/internal/domain/modmin"
	"loan-office/internal/pkg/apperrors"
)

const customerNotFound = "Customer not found by repository"

type CustomerInput struct {
	Email      string
	Surname    string
	OtherNames string
	Telephone  string
	Address    string
}

type CustomerService interface {
	CreateCustomer(ctx context.Context, actor modmin.Actor, input CustomerInput) (*Customer, error)

	GetCustomer(ctx context.Context, customerID string, actor modmin.Actor) (*Customer, error)

	ListCustomers(ctx context.Context, actor modmin.Actor, filter ListFilter) ([]*Customer, int, error)

	UpdateCustomer(ctx context.Context, customerID string, actor modmin.Actor, input CustomerInput) (*Customer, error)

	DeleteCustomer(ctx context.Context, customerID string, actor modmin.Actor) error
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo   CustomerRepository
	logger *slog.Logger
}

func NewCustomerService(repo CustomerRepository, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}

	return &customerService{
		repo:   repo,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

func validateInput(input CustomerInput) (CustomerInput, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Surname = strings.TrimSpace(input.Surname)
	input.OtherNames = strings.TrimSpace(input.OtherNames)
	input.Telephone = strings.TrimSpace(input.Telephone)
	input.Address = strings.TrimSpace(input.Address)

	if input.Email == "" {
		return input, apperrors.NewValidationError("email", "is required")
	}
	if input.Surname == "" {
		return input, apperrors.NewValidationError("surname", "is required")
	}
	return input, nil
}

func (s *customerService) CreateCustomer(ctx context.Context, actor modmin.Actor, input CustomerInput) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to create new customer")

	input, err := validateInput(input)
	if err != nil {
		s.logger.WarnContext(ctx, "Validation failed for new customer", slog.Any("error", err))
		return nil, err
	}

	cust := NewCustomer(input.Email, input.Surname, input.OtherNames, input.Telephone, input.Address, actor.ID)
	if err := s.repo.Save(ctx, cust); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			s.logger.WarnContext(ctx, "Customer email already registered")
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAlreadyExists, input.Email)
		}
		s.logger.ErrorContext(ctx, "Repository failed to save new customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new customer: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully created new customer", slog.String("customerID", cust.ID))
	return cust, nil
}

func (s *customerService) GetCustomer(ctx context.Context, customerID string, actor modmin.Actor) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to get customer by ID")

	cust, err := s.repo.FindByID(ctx, customerID, actor)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, customerNotFound)
			return nil, apperrors.ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %s: %w", customerID, err)
	}

	return cust, nil
}

func (s *customerService) ListCustomers(ctx context.Context, actor modmin.Actor, filter ListFilter) ([]*Customer, int, error) {
	s.logger.InfoContext(ctx, "Attempting to list customers")

	customers, total, err := s.repo.FindAll(ctx, actor, filter.Normalized())
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing customers", slog.Any("error", err))
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully listed customers", slog.Int("count", len(customers)), slog.Int("total", total))
	return customers, total, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, actor modmin.Actor, input CustomerInput) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to update customer", slog.String("customerID", customerID))

	input, err := validateInput(input)
	if err != nil {
		s.logger.WarnContext(ctx, "Validation failed for customer update", slog.Any("error", err))
		return nil, err
	}

	cust, err := s.repo.FindByID(ctx, customerID, actor)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, customerNotFound)
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("cannot find customer %s to update: %w", customerID, err)
	}

	cust.Email = input.Email
	cust.Surname = input.Surname
	cust.OtherNames = input.OtherNames
	cust.Telephone = input.Telephone
	cust.Address = input.Address

	if err := s.repo.Save(ctx, cust); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save updated customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save updated customer %s: %w", customerID, err)
	}

	s.logger.InfoContext(ctx, "Successfully updated customer")
	return cust, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID string, actor modmin.Actor) error {
	s.logger.InfoContext(ctx, "Attempting to delete customer", slog.String("customerID", customerID))

	if !actor.IsAdmin() {
		s.logger.WarnContext(ctx, "Non-admin attempted customer deletion")
		return apperrors.ErrForbidden
	}

	if _, err := s.repo.FindByID(ctx, customerID, actor); err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, customerNotFound)
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("cannot find customer %s to delete: %w", customerID, err)
	}

	if err := s.repo.Delete(ctx, customerID); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to delete customer", slog.Any("error", err))
		return fmt.Errorf("failed to delete customer %s: %w", customerID, err)
	}

	s.logger.InfoContext(ctx, "Successfully deleted customer")
	return nil
}
