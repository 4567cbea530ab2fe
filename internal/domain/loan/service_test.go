package loan

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"loan-office/internal/domain/customer"
	"loan-office/internal/domain/modmin"
	"loan-office/internal/event"
	"loan-office/internal/pkg/apperrors"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, nil))

type MockCustomerService struct {
	mock.Mock
}

func (_m *MockCustomerService) CreateCustomer(ctx context.Context, actor modmin.Actor, input customer.CustomerInput) (*customer.Customer, error) {
	ret := _m.Called(ctx, actor, input)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) GetCustomer(ctx context.Context, customerID string, actor modmin.Actor) (*customer.Customer, error) {
	ret := _m.Called(ctx, customerID, actor)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) ListCustomers(ctx context.Context, actor modmin.Actor, filter customer.ListFilter) ([]*customer.Customer, int, error) {
	ret := _m.Called(ctx, actor, filter)

	var r0 []*customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*customer.Customer)
	}
	return r0, ret.Int(1), ret.Error(2)
}

func (_m *MockCustomerService) UpdateCustomer(ctx context.Context, customerID string, actor modmin.Actor, input customer.CustomerInput) (*customer.Customer, error) {
	ret := _m.Called(ctx, customerID, actor, input)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) DeleteCustomer(ctx context.Context, customerID string, actor modmin.Actor) error {
	ret := _m.Called(ctx, customerID, actor)
	return ret.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (_m *MockEventPublisher) PublishLoanApplied(ctx context.Context, e event.LoanAppliedEvent) error {
	ret := _m.Called(ctx, e)
	return ret.Error(0)
}

func (_m *MockEventPublisher) PublishInstallmentToggled(ctx context.Context, e event.InstallmentToggledEvent) error {
	ret := _m.Called(ctx, e)
	return ret.Error(0)
}

func newTestService(repo *MockRepository, cs *MockCustomerService, pub *MockEventPublisher) LoanService {
	return NewLoanService(repo, cs, pub, decimal.NewFromInt(5), logger)
}

func applicationInput() ApplicationInput {
	return ApplicationInput{
		LoanType:      "Personal",
		LoanAmount:    decimal.NewFromInt(60000),
		LoanTenure:    6,
		DisbursedDate: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestApplyLoan(t *testing.T) {
	ctx := context.Background()
	actor := modmin.Actor{ID: "mod-1", Role: modmin.RoleModerator}
	cust := &customer.Customer{ID: "cust-1", ModminID: "mod-1", Active: true}

	t.Run("should create the loan with a full schedule and publish an event", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCS := new(MockCustomerService)
		mockPub := new(MockEventPublisher)
		service := newTestService(mockRepo, mockCS, mockPub)

		mockCS.On("GetCustomer", ctx, "cust-1", actor).Return(cust, nil)
		mockRepo.On("CreateLoanWithSchedule", ctx, mock.AnythingOfType("*loan.LoanApplication")).Return(nil)
		mockPub.On("PublishLoanApplied", ctx, mock.AnythingOfType("event.LoanAppliedEvent")).Return(nil)

		app, err := service.ApplyLoan(ctx, "cust-1", actor, applicationInput())

		assert.NoError(t, err)
		assert.NotNil(t, app)
		assert.Equal(t, "cust-1", app.CustomerID)
		assert.Equal(t, "mod-1", app.ModminID)
		assert.Len(t, app.Installments, 6)
		for _, pm := range app.Installments {
			assert.Equal(t, app.ID, pm.LoanID)
		}
		mockRepo.AssertExpectations(t)
		mockPub.AssertExpectations(t)
	})

	t.Run("should fall back to the configured default interest rate", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCS := new(MockCustomerService)
		mockPub := new(MockEventPublisher)
		service := newTestService(mockRepo, mockCS, mockPub)

		mockCS.On("GetCustomer", ctx, "cust-1", actor).Return(cust, nil)
		mockRepo.On("CreateLoanWithSchedule", ctx, mock.Anything).Return(nil)
		mockPub.On("PublishLoanApplied", ctx, mock.Anything).Return(nil)

		app, err := service.ApplyLoan(ctx, "cust-1", actor, applicationInput())

		assert.NoError(t, err)
		assert.Equal(t, "5", app.InterestRate.String())
	})

	t.Run("should honor an explicit interest rate", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCS := new(MockCustomerService)
		mockPub := new(MockEventPublisher)
		service := newTestService(mockRepo, mockCS, mockPub)

		mockCS.On("GetCustomer", ctx, "cust-1", actor).Return(cust, nil)
		mockRepo.On("CreateLoanWithSchedule", ctx, mock.Anything).Return(nil)
		mockPub.On("PublishLoanApplied", ctx, mock.Anything).Return(nil)

		input := applicationInput()
		rate := decimal.NewFromFloat(7.5)
		input.InterestRate = &rate

		app, err := service.ApplyLoan(ctx, "cust-1", actor, input)

		assert.NoError(t, err)
		assert.Equal(t, "7.5", app.InterestRate.String())
	})

	t.Run("should reject the application while the customer has an outstanding loan", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCS := new(MockCustomerService)
		mockPub := new(MockEventPublisher)
		service := newTestService(mockRepo, mockCS, mockPub)

		mockCS.On("GetCustomer", ctx, "cust-1", actor).Return(cust, nil)
		mockRepo.On("CreateLoanWithSchedule", ctx, mock.Anything).Return(apperrors.ErrOutstandingLoan)

		app, err := service.ApplyLoan(ctx, "cust-1", actor, applicationInput())

		assert.ErrorIs(t, err, apperrors.ErrOutstandingLoan)
		assert.Nil(t, app)
		mockPub.AssertNotCalled(t, "PublishLoanApplied", mock.Anything, mock.Anything)
	})

	t.Run("should surface not found when the customer is out of scope", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCS := new(MockCustomerService)
		mockPub := new(MockEventPublisher)
		service := newTestService(mockRepo, mockCS, mockPub)

		mockCS.On("GetCustomer", ctx, "other-cust", actor).Return(nil, apperrors.ErrNotFound)

		app, err := service.ApplyLoan(ctx, "other-cust", actor, applicationInput())

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.Nil(t, app)
		mockRepo.AssertNotCalled(t, "CreateLoanWithSchedule", mock.Anything, mock.Anything)
	})

	t.Run("should reject an invalid tenure before touching the repository", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCS := new(MockCustomerService)
		mockPub := new(MockEventPublisher)
		service := newTestService(mockRepo, mockCS, mockPub)

		mockCS.On("GetCustomer", ctx, "cust-1", actor).Return(cust, nil)

		input := applicationInput()
		input.LoanTenure = 24

		_, err := service.ApplyLoan(ctx, "cust-1", actor, input)

		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
		mockRepo.AssertNotCalled(t, "CreateLoanWithSchedule", mock.Anything, mock.Anything)
	})

	t.Run("should still return the loan when event publishing fails", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCS := new(MockCustomerService)
		mockPub := new(MockEventPublisher)
		service := newTestService(mockRepo, mockCS, mockPub)

		mockCS.On("GetCustomer", ctx, "cust-1", actor).Return(cust, nil)
		mockRepo.On("CreateLoanWithSchedule", ctx, mock.Anything).Return(nil)
		mockPub.On("PublishLoanApplied", ctx, mock.Anything).Return(assert.AnError)

		app, err := service.ApplyLoan(ctx, "cust-1", actor, applicationInput())

		assert.NoError(t, err)
		assert.NotNil(t, app)
	})
}

func TestToggleInstallmentPaid(t *testing.T) {
	ctx := context.Background()
	actor := modmin.Actor{ID: "mod-1", Role: modmin.RoleModerator}
	app := &LoanApplication{ID: "loan-1", CustomerID: "cust-1", ModminID: "mod-1"}

	t.Run("should flip the paid flag and publish completion state", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCS := new(MockCustomerService)
		mockPub := new(MockEventPublisher)
		service := newTestService(mockRepo, mockCS, mockPub)

		toggled := &PaybackMonth{ID: "pm-1", LoanID: "loan-1", Paid: true}
		mockRepo.On("GetLoanByID", ctx, "loan-1", actor).Return(app, nil)
		mockRepo.On("ToggleInstallment", ctx, "loan-1", "pm-1").Return(toggled, nil)
		mockRepo.On("CountUnpaidInstallments", ctx, "loan-1").Return(0, nil)
		mockPub.On("PublishInstallmentToggled", ctx, mock.MatchedBy(func(e event.InstallmentToggledEvent) bool {
			return e.LoanID == "loan-1" && e.InstallmentID == "pm-1" && e.Paid && e.LoanCompleted
		})).Return(nil)

		result, err := service.ToggleInstallmentPaid(ctx, "loan-1", "pm-1", actor)

		assert.NoError(t, err)
		assert.True(t, result.Paid)
		mockRepo.AssertExpectations(t)
		mockPub.AssertExpectations(t)
	})

	t.Run("should report the loan as ongoing while installments remain unpaid", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCS := new(MockCustomerService)
		mockPub := new(MockEventPublisher)
		service := newTestService(mockRepo, mockCS, mockPub)

		toggled := &PaybackMonth{ID: "pm-1", LoanID: "loan-1", Paid: false}
		mockRepo.On("GetLoanByID", ctx, "loan-1", actor).Return(app, nil)
		mockRepo.On("ToggleInstallment", ctx, "loan-1", "pm-1").Return(toggled, nil)
		mockRepo.On("CountUnpaidInstallments", ctx, "loan-1").Return(3, nil)
		mockPub.On("PublishInstallmentToggled", ctx, mock.MatchedBy(func(e event.InstallmentToggledEvent) bool {
			return !e.Paid && !e.LoanCompleted
		})).Return(nil)

		result, err := service.ToggleInstallmentPaid(ctx, "loan-1", "pm-1", actor)

		assert.NoError(t, err)
		assert.False(t, result.Paid)
	})

	t.Run("should surface not found for an installment on another loan", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCS := new(MockCustomerService)
		mockPub := new(MockEventPublisher)
		service := newTestService(mockRepo, mockCS, mockPub)

		mockRepo.On("GetLoanByID", ctx, "loan-1", actor).Return(app, nil)
		mockRepo.On("ToggleInstallment", ctx, "loan-1", "stray").Return(nil, apperrors.ErrNotFound)

		_, err := service.ToggleInstallmentPaid(ctx, "loan-1", "stray", actor)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		mockPub.AssertNotCalled(t, "PublishInstallmentToggled", mock.Anything, mock.Anything)
	})

	t.Run("should surface not found when the loan is out of scope", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCS := new(MockCustomerService)
		mockPub := new(MockEventPublisher)
		service := newTestService(mockRepo, mockCS, mockPub)

		mockRepo.On("GetLoanByID", ctx, "loan-1", actor).Return(nil, apperrors.ErrNotFound)

		_, err := service.ToggleInstallmentPaid(ctx, "loan-1", "pm-1", actor)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		mockRepo.AssertNotCalled(t, "ToggleInstallment", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetLoanService(t *testing.T) {
	ctx := context.Background()
	actor := modmin.Actor{ID: "adm-1", Role: modmin.RoleAdmin}

	t.Run("should attach installments to the loan", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCS := new(MockCustomerService)
		service := newTestService(mockRepo, mockCS, new(MockEventPublisher))

		app := &LoanApplication{ID: "loan-1"}
		installments := []PaybackMonth{{ID: "pm-1", LoanID: "loan-1"}}
		mockRepo.On("GetLoanByID", ctx, "loan-1", actor).Return(app, nil)
		mockRepo.On("GetInstallments", ctx, "loan-1").Return(installments, nil)

		result, err := service.GetLoan(ctx, "loan-1", actor)

		assert.NoError(t, err)
		assert.Len(t, result.Installments, 1)
	})

	t.Run("should surface not found", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCS := new(MockCustomerService)
		service := newTestService(mockRepo, mockCS, new(MockEventPublisher))

		mockRepo.On("GetLoanByID", ctx, "missing", actor).Return(nil, apperrors.ErrNotFound)

		_, err := service.GetLoan(ctx, "missing", actor)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestEditLoan(t *testing.T) {
	ctx := context.Background()
	actor := modmin.Actor{ID: "adm-1", Role: modmin.RoleAdmin}

	t.Run("should update fields without regenerating the schedule", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCS := new(MockCustomerService)
		service := newTestService(mockRepo, mockCS, new(MockEventPublisher))

		app := &LoanApplication{
			ID:         "loan-1",
			LoanType:   "Personal",
			BankName:   "First Bank",
			LoanTenure: 6,
		}
		mockRepo.On("GetLoanByID", ctx, "loan-1", actor).Return(app, nil)
		mockRepo.On("UpdateLoan", ctx, app).Return(nil)

		input := ApplicationInput{
			LoanType:      "Mortgage",
			ManagementFee: decimal.NewFromInt(250),
		}
		result, err := service.EditLoan(ctx, "loan-1", actor, input)

		assert.NoError(t, err)
		assert.Equal(t, "Mortgage", result.LoanType)
		assert.Equal(t, "First Bank", result.BankName)
		assert.Equal(t, "250", result.ManagementFee.String())
		mockRepo.AssertNotCalled(t, "CreateLoanWithSchedule", mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("should keep populated fields when the input leaves them empty", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCS := new(MockCustomerService)
		service := newTestService(mockRepo, mockCS, new(MockEventPublisher))

		app := &LoanApplication{ID: "loan-1", LoanType: "Personal", OfficeAddress: "12 Main St"}
		mockRepo.On("GetLoanByID", ctx, "loan-1", actor).Return(app, nil)
		mockRepo.On("UpdateLoan", ctx, app).Return(nil)

		result, err := service.EditLoan(ctx, "loan-1", actor, ApplicationInput{})

		assert.NoError(t, err)
		assert.Equal(t, "Personal", result.LoanType)
		assert.Equal(t, "12 Main St", result.OfficeAddress)
	})
}

func TestDeleteLoanService(t *testing.T) {
	ctx := context.Background()

	t.Run("should refuse deletion for moderators", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCS := new(MockCustomerService)
		service := newTestService(mockRepo, mockCS, new(MockEventPublisher))

		err := service.DeleteLoan(ctx, "loan-1", modmin.Actor{ID: "mod-1", Role: modmin.RoleModerator})

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		mockRepo.AssertNotCalled(t, "DeleteLoan", mock.Anything, mock.Anything)
	})

	t.Run("should delete for admins", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCS := new(MockCustomerService)
		service := newTestService(mockRepo, mockCS, new(MockEventPublisher))

		admin := modmin.Actor{ID: "adm-1", Role: modmin.RoleAdmin}
		mockRepo.On("GetLoanByID", ctx, "loan-1", admin).Return(&LoanApplication{ID: "loan-1"}, nil)
		mockRepo.On("DeleteLoan", ctx, "loan-1").Return(nil)

		err := service.DeleteLoan(ctx, "loan-1", admin)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestCategoryService(t *testing.T) {
	ctx := context.Background()

	t.Run("should reject a category without a name", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := newTestService(mockRepo, new(MockCustomerService), new(MockEventPublisher))

		_, err := service.AddCategory(ctx, "   ", decimal.NewFromInt(50000))

		var vErr *apperrors.ValidationError
		assert.ErrorAs(t, err, &vErr)
		mockRepo.AssertNotCalled(t, "SaveCategory", mock.Anything, mock.Anything)
	})

	t.Run("should save a new category", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := newTestService(mockRepo, new(MockCustomerService), new(MockEventPublisher))

		mockRepo.On("SaveCategory", ctx, mock.AnythingOfType("*loan.LoanCategory")).Return(nil)

		category, err := service.AddCategory(ctx, "Asset Finance", decimal.NewFromInt(500000))

		assert.NoError(t, err)
		assert.Equal(t, "Asset Finance", category.Name)
		assert.NotEmpty(t, category.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("should keep the name when an edit leaves it blank", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := newTestService(mockRepo, new(MockCustomerService), new(MockEventPublisher))

		existing := &LoanCategory{ID: "cat-1", Name: "Asset Finance", Amount: decimal.NewFromInt(500000)}
		mockRepo.On("GetCategoryByID", ctx, "cat-1").Return(existing, nil)
		mockRepo.On("SaveCategory", ctx, existing).Return(nil)

		category, err := service.EditCategory(ctx, "cat-1", "", decimal.NewFromInt(750000))

		assert.NoError(t, err)
		assert.Equal(t, "Asset Finance", category.Name)
		assert.Equal(t, "750000", category.Amount.String())
	})

	t.Run("should surface not found on removal of a missing category", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := newTestService(mockRepo, new(MockCustomerService), new(MockEventPublisher))

		mockRepo.On("GetCategoryByID", ctx, "missing").Return(nil, apperrors.ErrNotFound)

		err := service.RemoveCategory(ctx, "missing")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		mockRepo.AssertNotCalled(t, "DeleteCategory", mock.Anything, mock.Anything)
	})
}
