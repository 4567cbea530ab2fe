package loan

import (
	"context"

	"loan-office/internal/domain/modmin"
)

// ListFilter narrows and pages loan listings. Search matches the owning
// customer's email, surname or other names, case-insensitively.
type ListFilter struct {
	Page     int
	Limit    int
	Search   string
	LoanType string
}

func (f ListFilter) Normalized() ListFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	return f
}

func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type Repository interface {
	// CreateLoanWithSchedule persists the application and every installment in
	// one transaction. The customer's row is locked for the duration so the
	// outstanding-loan gate cannot race with a concurrent application; the
	// gate failing surfaces apperrors.ErrOutstandingLoan and nothing is
	// written.
	CreateLoanWithSchedule(ctx context.Context, app *LoanApplication) error

	GetLoanByID(ctx context.Context, loanID string, actor modmin.Actor) (*LoanApplication, error)

	GetInstallments(ctx context.Context, loanID string) ([]PaybackMonth, error)

	// ToggleInstallment flips the paid flag on the installment and returns the
	// updated row. apperrors.ErrNotFound when the installment does not belong
	// to the loan.
	ToggleInstallment(ctx context.Context, loanID, installmentID string) (*PaybackMonth, error)

	CountUnpaidInstallments(ctx context.Context, loanID string) (int, error)

	HasOutstandingLoan(ctx context.Context, customerID string) (bool, error)

	List(ctx context.Context, actor modmin.Actor, filter ListFilter) ([]*LoanApplication, int, error)

	// ListWithInstallments loads every loan visible to the actor together with
	// its full schedule. Feeds the report export and the overdue snapshot job.
	ListWithInstallments(ctx context.Context, actor modmin.Actor) ([]*LoanApplication, error)

	UpdateLoan(ctx context.Context, app *LoanApplication) error

	// DeleteLoan removes the application and cascades to its installments.
	DeleteLoan(ctx context.Context, loanID string) error

	SaveCategory(ctx context.Context, category *LoanCategory) error

	GetCategoryByID(ctx context.Context, categoryID string) (*LoanCategory, error)

	ListCategories(ctx context.Context, search string, page, limit int) ([]*LoanCategory, int, error)

	DeleteCategory(ctx context.Context, categoryID string) error
}
