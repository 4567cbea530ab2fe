package loan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"loan-office/internal/domain/customer"
	"loan-office/internal/domain/modmin"
	"loan-office/internal/event"
	"loan-office/internal/infrastructure/monitoring"
	"loan-office/internal/pkg/apperrors"
)

// ApplicationInput carries the fields of a loan application form. A nil
// InterestRate falls back to the configured default.
type ApplicationInput struct {
	LoanType         string
	LoanAmount       decimal.Decimal
	ManagementFee    decimal.Decimal
	ApplicationFee   decimal.Decimal
	Equity           decimal.Decimal
	InterestRate     *decimal.Decimal
	LoanTenure       int
	DisbursedDate    time.Time
	PreLoanAmount    *decimal.Decimal
	PreLoanTenure    *int
	OfficeAddress    string
	SalaryDate       *time.Time
	SalaryAmount     *decimal.Decimal
	BankName         string
	BankAccNumber    string
	OutstandingLoans string
}

type LoanService interface {
	// ApplyLoan creates the application and its full payback schedule in one
	// unit. Rejected with apperrors.ErrOutstandingLoan while the customer has
	// a loan with any unpaid installment.
	ApplyLoan(ctx context.Context, customerID string, actor modmin.Actor, input ApplicationInput) (*LoanApplication, error)

	GetLoan(ctx context.Context, loanID string, actor modmin.Actor) (*LoanApplication, error)

	ListLoans(ctx context.Context, actor modmin.Actor, filter ListFilter) ([]*LoanApplication, int, error)

	EditLoan(ctx context.Context, loanID string, actor modmin.Actor, input ApplicationInput) (*LoanApplication, error)

	DeleteLoan(ctx context.Context, loanID string, actor modmin.Actor) error

	// ToggleInstallmentPaid flips the paid flag on one installment. Calling it
	// twice restores the original state; this is a switch, not a one-way
	// completion marker.
	ToggleInstallmentPaid(ctx context.Context, loanID, installmentID string, actor modmin.Actor) (*PaybackMonth, error)

	LoanCompleted(ctx context.Context, loanID string) (bool, error)

	HasOutstandingLoan(ctx context.Context, customerID string) (bool, error)

	AddCategory(ctx context.Context, name string, amount decimal.Decimal) (*LoanCategory, error)

	EditCategory(ctx context.Context, categoryID, name string, amount decimal.Decimal) (*LoanCategory, error)

	GetCategory(ctx context.Context, categoryID string) (*LoanCategory, error)

	ListCategories(ctx context.Context, search string, page, limit int) ([]*LoanCategory, int, error)

	RemoveCategory(ctx context.Context, categoryID string) error
}

var _ LoanService = (*loanServiceImpl)(nil)

type loanServiceImpl struct {
	repo            Repository
	customerService customer.CustomerService
	publisher       event.EventPublisher
	defaultRate     decimal.Decimal
	logger          *slog.Logger
}

func NewLoanService(r Repository, cs customer.CustomerService, pub event.EventPublisher, defaultRate decimal.Decimal, logger *slog.Logger) LoanService {
	if r == nil {
		panic("loan repository cannot be nil")
	}
	if pub == nil {
		pub = event.NoopEventPublisher{}
	}
	if defaultRate.IsZero() {
		defaultRate = decimal.NewFromInt(DefaultInterestRate)
	}
	return &loanServiceImpl{
		repo:            r,
		customerService: cs,
		publisher:       pub,
		defaultRate:     defaultRate,
		logger:          logger.With(slog.String("component", "loanService")),
	}
}

func (s *loanServiceImpl) ApplyLoan(ctx context.Context, customerID string, actor modmin.Actor, input ApplicationInput) (*LoanApplication, error) {
	s.logger.InfoContext(ctx, "Applying for new loan", slog.String("customerID", customerID))

	cust, err := s.customerService.GetCustomer(ctx, customerID, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Customer not found for loan application")
			return nil, apperrors.ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to resolve customer for loan application", slog.Any("error", err))
		return nil, fmt.Errorf("failed to verify customer: %w", err)
	}

	rate := s.defaultRate
	if input.InterestRate != nil {
		rate = *input.InterestRate
	}

	schedule, err := GenerateSchedule(input.LoanAmount, input.LoanTenure, input.DisbursedDate, rate)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to generate payback schedule", slog.Any("error", err))
		return nil, err
	}

	now := time.Now()
	app := &LoanApplication{
		ID:               uuid.NewString(),
		CustomerID:       cust.ID,
		ModminID:         actor.ID,
		LoanType:         strings.TrimSpace(input.LoanType),
		LoanAmount:       input.LoanAmount,
		ManagementFee:    input.ManagementFee,
		ApplicationFee:   input.ApplicationFee,
		Equity:           input.Equity,
		InterestRate:     rate,
		LoanTenure:       input.LoanTenure,
		DisbursedDate:    input.DisbursedDate,
		PreLoanAmount:    input.PreLoanAmount,
		PreLoanTenure:    input.PreLoanTenure,
		OfficeAddress:    strings.TrimSpace(input.OfficeAddress),
		SalaryDate:       input.SalaryDate,
		SalaryAmount:     input.SalaryAmount,
		BankName:         strings.TrimSpace(input.BankName),
		BankAccNumber:    strings.TrimSpace(input.BankAccNumber),
		OutstandingLoans: input.OutstandingLoans,
		CreatedAt:        now,
		UpdatedAt:        now,
		Installments:     schedule,
	}
	for i := range app.Installments {
		app.Installments[i].LoanID = app.ID
	}

	if err := s.repo.CreateLoanWithSchedule(ctx, app); err != nil {
		if errors.Is(err, apperrors.ErrOutstandingLoan) {
			s.logger.WarnContext(ctx, "Loan application rejected: customer has outstanding loan")
			monitoring.RecordLoanApplied("denied_outstanding")
			monitoring.Business.LoanApplicationsDenied.Inc()
			return nil, fmt.Errorf("%w: customer %s", apperrors.ErrOutstandingLoan, customerID)
		}
		s.logger.ErrorContext(ctx, "Failed to save loan and schedule", slog.Any("error", err))
		monitoring.RecordLoanApplied("failure")
		return nil, fmt.Errorf("%w: failed to save loan and schedule: %v", apperrors.ErrInternalServer, err)
	}
	monitoring.RecordLoanApplied("success")

	appliedEvent := event.LoanAppliedEvent{
		LoanID:        app.ID,
		CustomerID:    app.CustomerID,
		ModminID:      app.ModminID,
		LoanAmount:    app.LoanAmount.StringFixed(2),
		LoanTenure:    app.LoanTenure,
		InterestRate:  app.InterestRate.String(),
		DisbursedDate: app.DisbursedDate,
		Timestamp:     time.Now(),
	}
	if pubErr := s.publisher.PublishLoanApplied(ctx, appliedEvent); pubErr != nil {
		s.logger.ErrorContext(ctx, "Loan created, but FAILED to publish loan applied event", slog.Any("error", pubErr))
	}

	s.logger.InfoContext(ctx, "Loan application created successfully",
		slog.String("loanID", app.ID), slog.Int("installments", len(app.Installments)))
	return app, nil
}

func (s *loanServiceImpl) GetLoan(ctx context.Context, loanID string, actor modmin.Actor) (*LoanApplication, error) {
	s.logger.InfoContext(ctx, "Getting loan details", slog.String("loanID", loanID))

	app, err := s.repo.GetLoanByID(ctx, loanID, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Loan not found", slog.String("loanID", loanID))
			return nil, fmt.Errorf("%w: loan %s not found", apperrors.ErrNotFound, loanID)
		}
		s.logger.ErrorContext(ctx, "Failed to get loan", slog.String("loanID", loanID), slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get loan %s: %v", apperrors.ErrInternalServer, loanID, err)
	}

	installments, err := s.repo.GetInstallments(ctx, loanID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to get loan installments", slog.String("loanID", loanID), slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get installments for loan %s: %v", apperrors.ErrInternalServer, loanID, err)
	}

	app.Installments = installments
	return app, nil
}

func (s *loanServiceImpl) ListLoans(ctx context.Context, actor modmin.Actor, filter ListFilter) ([]*LoanApplication, int, error) {
	s.logger.InfoContext(ctx, "Listing loans")

	loans, total, err := s.repo.List(ctx, actor, filter.Normalized())
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list loans", slog.Any("error", err))
		return nil, 0, fmt.Errorf("%w: failed to list loans: %v", apperrors.ErrInternalServer, err)
	}

	return loans, total, nil
}

// EditLoan corrects fees, dates and bank details on an existing application.
// It deliberately does not regenerate the schedule.
func (s *loanServiceImpl) EditLoan(ctx context.Context, loanID string, actor modmin.Actor, input ApplicationInput) (*LoanApplication, error) {
	s.logger.InfoContext(ctx, "Editing loan application", slog.String("loanID", loanID))

	app, err := s.repo.GetLoanByID(ctx, loanID, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: loan %s not found", apperrors.ErrNotFound, loanID)
		}
		return nil, fmt.Errorf("%w: failed to get loan %s: %v", apperrors.ErrInternalServer, loanID, err)
	}

	if input.LoanType != "" {
		app.LoanType = strings.TrimSpace(input.LoanType)
	}
	app.ManagementFee = input.ManagementFee
	app.ApplicationFee = input.ApplicationFee
	app.Equity = input.Equity
	if !input.DisbursedDate.IsZero() {
		app.DisbursedDate = input.DisbursedDate
	}
	app.PreLoanAmount = input.PreLoanAmount
	app.PreLoanTenure = input.PreLoanTenure
	if input.OfficeAddress != "" {
		app.OfficeAddress = strings.TrimSpace(input.OfficeAddress)
	}
	app.SalaryDate = input.SalaryDate
	app.SalaryAmount = input.SalaryAmount
	if input.BankName != "" {
		app.BankName = strings.TrimSpace(input.BankName)
	}
	if input.BankAccNumber != "" {
		app.BankAccNumber = strings.TrimSpace(input.BankAccNumber)
	}
	if input.OutstandingLoans != "" {
		app.OutstandingLoans = input.OutstandingLoans
	}
	app.UpdatedAt = time.Now()

	if err := s.repo.UpdateLoan(ctx, app); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save edited loan", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to save loan %s: %v", apperrors.ErrInternalServer, loanID, err)
	}

	s.logger.InfoContext(ctx, "Loan application edited successfully")
	return app, nil
}

func (s *loanServiceImpl) DeleteLoan(ctx context.Context, loanID string, actor modmin.Actor) error {
	s.logger.InfoContext(ctx, "Deleting loan application", slog.String("loanID", loanID))

	if !actor.IsAdmin() {
		s.logger.WarnContext(ctx, "Non-admin attempted loan deletion")
		return apperrors.ErrForbidden
	}

	if _, err := s.repo.GetLoanByID(ctx, loanID, actor); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: loan %s not found", apperrors.ErrNotFound, loanID)
		}
		return fmt.Errorf("%w: failed to get loan %s: %v", apperrors.ErrInternalServer, loanID, err)
	}

	if err := s.repo.DeleteLoan(ctx, loanID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete loan", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete loan %s: %v", apperrors.ErrInternalServer, loanID, err)
	}

	s.logger.InfoContext(ctx, "Loan application deleted successfully")
	return nil
}

func (s *loanServiceImpl) ToggleInstallmentPaid(ctx context.Context, loanID, installmentID string, actor modmin.Actor) (*PaybackMonth, error) {
	s.logger.InfoContext(ctx, "Toggling installment paid flag",
		slog.String("loanID", loanID), slog.String("installmentID", installmentID))

	if _, err := s.repo.GetLoanByID(ctx, loanID, actor); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: loan %s not found", apperrors.ErrNotFound, loanID)
		}
		return nil, fmt.Errorf("%w: failed to get loan %s: %v", apperrors.ErrInternalServer, loanID, err)
	}

	installment, err := s.repo.ToggleInstallment(ctx, loanID, installmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Installment not found on loan")
			return nil, fmt.Errorf("%w: installment %s not found on loan %s", apperrors.ErrNotFound, installmentID, loanID)
		}
		s.logger.ErrorContext(ctx, "Failed to toggle installment", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to toggle installment %s: %v", apperrors.ErrInternalServer, installmentID, err)
	}
	monitoring.RecordInstallmentToggle()

	completed, err := s.LoanCompleted(ctx, loanID)
	if err != nil {
		s.logger.WarnContext(ctx, "Toggled installment but failed to derive loan completion", slog.Any("error", err))
		completed = false
	}

	toggledEvent := event.InstallmentToggledEvent{
		LoanID:        loanID,
		InstallmentID: installment.ID,
		Paid:          installment.Paid,
		LoanCompleted: completed,
		Timestamp:     time.Now(),
	}
	if pubErr := s.publisher.PublishInstallmentToggled(ctx, toggledEvent); pubErr != nil {
		s.logger.ErrorContext(ctx, "Installment toggled, but FAILED to publish event", slog.Any("error", pubErr))
	}

	s.logger.InfoContext(ctx, "Installment toggled successfully", slog.Bool("paid", installment.Paid))
	return installment, nil
}

func (s *loanServiceImpl) LoanCompleted(ctx context.Context, loanID string) (bool, error) {
	unpaid, err := s.repo.CountUnpaidInstallments(ctx, loanID)
	if err != nil {
		return false, fmt.Errorf("failed to count unpaid installments for loan %s: %w", loanID, err)
	}
	return unpaid == 0, nil
}

func (s *loanServiceImpl) HasOutstandingLoan(ctx context.Context, customerID string) (bool, error) {
	outstanding, err := s.repo.HasOutstandingLoan(ctx, customerID)
	if err != nil {
		return false, fmt.Errorf("failed to check outstanding loans for customer %s: %w", customerID, err)
	}
	return outstanding, nil
}

func (s *loanServiceImpl) AddCategory(ctx context.Context, name string, amount decimal.Decimal) (*LoanCategory, error) {
	s.logger.InfoContext(ctx, "Adding loan category")

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "is required")
	}

	category := NewLoanCategory(name, amount)
	if err := s.repo.SaveCategory(ctx, category); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save loan category", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to save loan category: %v", apperrors.ErrInternalServer, err)
	}

	s.logger.InfoContext(ctx, "Loan category added", slog.String("categoryID", category.ID))
	return category, nil
}

func (s *loanServiceImpl) EditCategory(ctx context.Context, categoryID, name string, amount decimal.Decimal) (*LoanCategory, error) {
	s.logger.InfoContext(ctx, "Editing loan category", slog.String("categoryID", categoryID))

	category, err := s.repo.GetCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: loan category %s not found", apperrors.ErrNotFound, categoryID)
		}
		return nil, fmt.Errorf("%w: failed to get loan category %s: %v", apperrors.ErrInternalServer, categoryID, err)
	}

	if name = strings.TrimSpace(name); name != "" {
		category.Name = name
	}
	category.Amount = amount
	category.UpdatedAt = time.Now()

	if err := s.repo.SaveCategory(ctx, category); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save edited loan category", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to save loan category %s: %v", apperrors.ErrInternalServer, categoryID, err)
	}

	return category, nil
}

func (s *loanServiceImpl) GetCategory(ctx context.Context, categoryID string) (*LoanCategory, error) {
	category, err := s.repo.GetCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: loan category %s not found", apperrors.ErrNotFound, categoryID)
		}
		return nil, fmt.Errorf("%w: failed to get loan category %s: %v", apperrors.ErrInternalServer, categoryID, err)
	}
	return category, nil
}

func (s *loanServiceImpl) ListCategories(ctx context.Context, search string, page, limit int) ([]*LoanCategory, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	categories, total, err := s.repo.ListCategories(ctx, search, page, limit)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list loan categories", slog.Any("error", err))
		return nil, 0, fmt.Errorf("%w: failed to list loan categories: %v", apperrors.ErrInternalServer, err)
	}
	return categories, total, nil
}

func (s *loanServiceImpl) RemoveCategory(ctx context.Context, categoryID string) error {
	s.logger.InfoContext(ctx, "Removing loan category", slog.String("categoryID", categoryID))

	if _, err := s.repo.GetCategoryByID(ctx, categoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: loan category %s not found", apperrors.ErrNotFound, categoryID)
		}
		return fmt.Errorf("%w: failed to get loan category %s: %v", apperrors.ErrInternalServer, categoryID, err)
	}

	if err := s.repo.DeleteCategory(ctx, categoryID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete loan category", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete loan category %s: %v", apperrors.ErrInternalServer, categoryID, err)
	}

	return nil
}
