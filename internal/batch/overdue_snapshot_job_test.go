package batch

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"loan-office/internal/domain/loan"
	"loan-office/internal/domain/modmin"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stdout, nil))

// MockLoanRepository is a hand-written mock for the loan.Repository interface.
type MockLoanRepository struct {
	mock.Mock
}

var _ loan.Repository = (*MockLoanRepository)(nil)

func (_m *MockLoanRepository) CreateLoanWithSchedule(ctx context.Context, app *loan.LoanApplication) error {
	ret := _m.Called(ctx, app)
	return ret.Error(0)
}

func (_m *MockLoanRepository) GetLoanByID(ctx context.Context, loanID string, actor modmin.Actor) (*loan.LoanApplication, error) {
	ret := _m.Called(ctx, loanID, actor)
	var r0 *loan.LoanApplication
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*loan.LoanApplication)
	}
	return r0, ret.Error(1)
}

func (_m *MockLoanRepository) GetInstallments(ctx context.Context, loanID string) ([]loan.PaybackMonth, error) {
	ret := _m.Called(ctx, loanID)
	var r0 []loan.PaybackMonth
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]loan.PaybackMonth)
	}
	return r0, ret.Error(1)
}

func (_m *MockLoanRepository) ToggleInstallment(ctx context.Context, loanID, installmentID string) (*loan.PaybackMonth, error) {
	ret := _m.Called(ctx, loanID, installmentID)
	var r0 *loan.PaybackMonth
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*loan.PaybackMonth)
	}
	return r0, ret.Error(1)
}

func (_m *MockLoanRepository) CountUnpaidInstallments(ctx context.Context, loanID string) (int, error) {
	ret := _m.Called(ctx, loanID)
	return ret.Int(0), ret.Error(1)
}

func (_m *MockLoanRepository) HasOutstandingLoan(ctx context.Context, customerID string) (bool, error) {
	ret := _m.Called(ctx, customerID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *MockLoanRepository) List(ctx context.Context, actor modmin.Actor, filter loan.ListFilter) ([]*loan.LoanApplication, int, error) {
	ret := _m.Called(ctx, actor, filter)
	var r0 []*loan.LoanApplication
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*loan.LoanApplication)
	}
	return r0, ret.Int(1), ret.Error(2)
}

func (_m *MockLoanRepository) ListWithInstallments(ctx context.Context, actor modmin.Actor) ([]*loan.LoanApplication, error) {
	ret := _m.Called(ctx, actor)
	var r0 []*loan.LoanApplication
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*loan.LoanApplication)
	}
	return r0, ret.Error(1)
}

func (_m *MockLoanRepository) UpdateLoan(ctx context.Context, app *loan.LoanApplication) error {
	ret := _m.Called(ctx, app)
	return ret.Error(0)
}

func (_m *MockLoanRepository) DeleteLoan(ctx context.Context, loanID string) error {
	ret := _m.Called(ctx, loanID)
	return ret.Error(0)
}

func (_m *MockLoanRepository) SaveCategory(ctx context.Context, category *loan.LoanCategory) error {
	ret := _m.Called(ctx, category)
	return ret.Error(0)
}

func (_m *MockLoanRepository) GetCategoryByID(ctx context.Context, categoryID string) (*loan.LoanCategory, error) {
	ret := _m.Called(ctx, categoryID)
	var r0 *loan.LoanCategory
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*loan.LoanCategory)
	}
	return r0, ret.Error(1)
}

func (_m *MockLoanRepository) ListCategories(ctx context.Context, search string, page, limit int) ([]*loan.LoanCategory, int, error) {
	ret := _m.Called(ctx, search, page, limit)
	var r0 []*loan.LoanCategory
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*loan.LoanCategory)
	}
	return r0, ret.Int(1), ret.Error(2)
}

func (_m *MockLoanRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	ret := _m.Called(ctx, categoryID)
	return ret.Error(0)
}

func loanWithInstallments(id string, installments ...loan.PaybackMonth) *loan.LoanApplication {
	return &loan.LoanApplication{
		ID:           id,
		CustomerID:   "cust-1",
		LoanAmount:   decimal.NewFromInt(60000),
		Installments: installments,
	}
}

func TestOverdueSnapshotJobRun(t *testing.T) {
	ctx := context.Background()
	past := time.Now().AddDate(0, -1, 0)
	future := time.Now().AddDate(0, 1, 0)

	t.Run("should load the full book as an admin and finish cleanly", func(t *testing.T) {
		repo := new(MockLoanRepository)
		job := NewOverdueSnapshotJob(repo, testLogger)

		loans := []*loan.LoanApplication{
			loanWithInstallments("loan-1",
				loan.PaybackMonth{PaybackDate: past},
				loan.PaybackMonth{PaybackDate: future},
			),
			loanWithInstallments("loan-2",
				loan.PaybackMonth{PaybackDate: past, Paid: true},
			),
		}
		repo.On("ListWithInstallments", ctx, modmin.Actor{Role: modmin.RoleAdmin}).
			Return(loans, nil).Once()

		err := job.Run(ctx)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("should handle an empty loan book", func(t *testing.T) {
		repo := new(MockLoanRepository)
		job := NewOverdueSnapshotJob(repo, testLogger)

		repo.On("ListWithInstallments", ctx, modmin.Actor{Role: modmin.RoleAdmin}).
			Return([]*loan.LoanApplication{}, nil).Once()

		assert.NoError(t, job.Run(ctx))
		repo.AssertExpectations(t)
	})

	t.Run("should abort when loading the book fails", func(t *testing.T) {
		repo := new(MockLoanRepository)
		job := NewOverdueSnapshotJob(repo, testLogger)

		repoErr := errors.New("connection reset")
		repo.On("ListWithInstallments", ctx, modmin.Actor{Role: modmin.RoleAdmin}).
			Return(nil, repoErr).Once()

		err := job.Run(ctx)

		assert.Error(t, err)
		assert.ErrorIs(t, err, repoErr)
		repo.AssertExpectations(t)
	})
}

func TestNewOverdueSnapshotJobPanicsOnNilDeps(t *testing.T) {
	assert.Panics(t, func() { NewOverdueSnapshotJob(nil, testLogger) })
	assert.Panics(t, func() { NewOverdueSnapshotJob(new(MockLoanRepository), nil) })
}
