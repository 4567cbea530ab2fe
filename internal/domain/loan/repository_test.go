package loan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"loan-office/internal/domain/modmin"
)

type MockRepository struct {
	mock.Mock
}

func (_m *MockRepository) CreateLoanWithSchedule(ctx context.Context, app *LoanApplication) error {
	ret := _m.Called(ctx, app)
	return ret.Error(0)
}

func (_m *MockRepository) GetLoanByID(ctx context.Context, loanID string, actor modmin.Actor) (*LoanApplication, error) {
	ret := _m.Called(ctx, loanID, actor)

	var r0 *LoanApplication
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*LoanApplication)
	}
	return r0, ret.Error(1)
}

func (_m *MockRepository) GetInstallments(ctx context.Context, loanID string) ([]PaybackMonth, error) {
	ret := _m.Called(ctx, loanID)

	var r0 []PaybackMonth
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]PaybackMonth)
	}
	return r0, ret.Error(1)
}

func (_m *MockRepository) ToggleInstallment(ctx context.Context, loanID, installmentID string) (*PaybackMonth, error) {
	ret := _m.Called(ctx, loanID, installmentID)

	var r0 *PaybackMonth
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*PaybackMonth)
	}
	return r0, ret.Error(1)
}

func (_m *MockRepository) CountUnpaidInstallments(ctx context.Context, loanID string) (int, error) {
	ret := _m.Called(ctx, loanID)
	return ret.Int(0), ret.Error(1)
}

func (_m *MockRepository) HasOutstandingLoan(ctx context.Context, customerID string) (bool, error) {
	ret := _m.Called(ctx, customerID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *MockRepository) List(ctx context.Context, actor modmin.Actor, filter ListFilter) ([]*LoanApplication, int, error) {
	ret := _m.Called(ctx, actor, filter)

	var r0 []*LoanApplication
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*LoanApplication)
	}
	return r0, ret.Int(1), ret.Error(2)
}

func (_m *MockRepository) ListWithInstallments(ctx context.Context, actor modmin.Actor) ([]*LoanApplication, error) {
	ret := _m.Called(ctx, actor)

	var r0 []*LoanApplication
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*LoanApplication)
	}
	return r0, ret.Error(1)
}

func (_m *MockRepository) UpdateLoan(ctx context.Context, app *LoanApplication) error {
	ret := _m.Called(ctx, app)
	return ret.Error(0)
}

func (_m *MockRepository) DeleteLoan(ctx context.Context, loanID string) error {
	ret := _m.Called(ctx, loanID)
	return ret.Error(0)
}

func (_m *MockRepository) SaveCategory(ctx context.Context, category *LoanCategory) error {
	ret := _m.Called(ctx, category)
	return ret.Error(0)
}

func (_m *MockRepository) GetCategoryByID(ctx context.Context, categoryID string) (*LoanCategory, error) {
	ret := _m.Called(ctx, categoryID)

	var r0 *LoanCategory
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*LoanCategory)
	}
	return r0, ret.Error(1)
}

func (_m *MockRepository) ListCategories(ctx context.Context, search string, page, limit int) ([]*LoanCategory, int, error) {
	ret := _m.Called(ctx, search, page, limit)

	var r0 []*LoanCategory
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*LoanCategory)
	}
	return r0, ret.Int(1), ret.Error(2)
}

func (_m *MockRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	ret := _m.Called(ctx, categoryID)
	return ret.Error(0)
}

var _ Repository = (*MockRepository)(nil)

func TestMockRepositorySatisfiesInterface(t *testing.T) {
	assert.Implements(t, (*Repository)(nil), new(MockRepository))
}
