package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"loan-office/internal/api/handler/dto"
	"loan-office/internal/domain/customer"
	"loan-office/internal/domain/modmin"
	"loan-office/internal/pkg/apperrors"
)

type MockCustomerService struct {
	mock.Mock
}

var _ customer.CustomerService = (*MockCustomerService)(nil)

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

func customerRouter(h *CustomerHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/customers", h.CreateCustomer)
	r.Get("/customers", h.ListCustomers)
	r.Get("/customers/{customerID}", h.GetCustomer)
	r.Put("/customers/{customerID}", h.UpdateCustomer)
	r.Delete("/customers/{customerID}", h.DeleteCustomer)
	return r
}

func sampleCustomer() *customer.Customer {
	return &customer.Customer{
		ID:         "cust-1",
		Email:      "jane.doe@example.com",
		Surname:    "Doe",
		OtherNames: "Jane",
		Telephone:  "08030000000",
		Address:    "12 Marina Rd",
		ModminID:   "mod-1",
		Active:     true,
	}
}

const createCustomerBody = `{"email":"jane.doe@example.com","surname":"Doe","otherNames":"Jane","telephone":"08030000000","address":"12 Marina Rd"}`

func TestCreateCustomerHandler(t *testing.T) {
	t.Run("should return 201 with the created customer", func(t *testing.T) {
		svc := new(MockCustomerService)
		router := customerRouter(NewCustomerHandler(svc, testLogger))

		expectedInput := customer.CustomerInput{
			Email:      "jane.doe@example.com",
			Surname:    "Doe",
			OtherNames: "Jane",
			Telephone:  "08030000000",
			Address:    "12 Marina Rd",
		}
		svc.On("CreateCustomer", mock.Anything, testActor, expectedInput).
			Return(sampleCustomer(), nil).Once()

		rr := doRequest(t, router, http.MethodPost, "/customers", createCustomerBody)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var resp dto.CustomerResponse
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "cust-1", resp.ID)
		assert.Equal(t, "mod-1", resp.ModminID)
		svc.AssertExpectations(t)
	})

	t.Run("should return 409 when the email is taken", func(t *testing.T) {
		svc := new(MockCustomerService)
		router := customerRouter(NewCustomerHandler(svc, testLogger))

		svc.On("CreateCustomer", mock.Anything, testActor, mock.Anything).
			Return(nil, apperrors.ErrAlreadyExists).Once()

		rr := doRequest(t, router, http.MethodPost, "/customers", createCustomerBody)

		assert.Equal(t, http.StatusConflict, rr.Code)
		svc.AssertExpectations(t)
	})

	t.Run("should return 400 on an invalid email without calling the service", func(t *testing.T) {
		svc := new(MockCustomerService)
		router := customerRouter(NewCustomerHandler(svc, testLogger))

		body := `{"email":"nope","surname":"Doe","otherNames":"Jane"}`
		rr := doRequest(t, router, http.MethodPost, "/customers", body)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		svc.AssertNotCalled(t, "CreateCustomer", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetCustomerHandler(t *testing.T) {
	t.Run("should return 200 with the customer", func(t *testing.T) {
		svc := new(MockCustomerService)
		router := customerRouter(NewCustomerHandler(svc, testLogger))

		svc.On("GetCustomer", mock.Anything, "cust-1", testActor).Return(sampleCustomer(), nil).Once()

		rr := doRequest(t, router, http.MethodGet, "/customers/cust-1", "")

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp dto.CustomerResponse
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "jane.doe@example.com", resp.Email)
		svc.AssertExpectations(t)
	})

	t.Run("should return 404 for a customer outside the caller's scope", func(t *testing.T) {
		svc := new(MockCustomerService)
		router := customerRouter(NewCustomerHandler(svc, testLogger))

		svc.On("GetCustomer", mock.Anything, "cust-9", testActor).
			Return(nil, apperrors.ErrNotFound).Once()

		rr := doRequest(t, router, http.MethodGet, "/customers/cust-9", "")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		svc.AssertExpectations(t)
	})
}

func TestListCustomersHandler(t *testing.T) {
	svc := new(MockCustomerService)
	router := customerRouter(NewCustomerHandler(svc, testLogger))

	expectedFilter := customer.ListFilter{Page: 1, Limit: 20, Search: "doe"}
	svc.On("ListCustomers", mock.Anything, testActor, expectedFilter).
		Return([]*customer.Customer{sampleCustomer()}, 1, nil).Once()

	rr := doRequest(t, router, http.MethodGet, "/customers?search=doe", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp dto.CustomerListResponse
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Len(t, resp.Customers, 1)
	assert.Equal(t, 1, resp.Meta.Total)
	svc.AssertExpectations(t)
}

func TestUpdateCustomerHandler(t *testing.T) {
	t.Run("should return the updated customer", func(t *testing.T) {
		svc := new(MockCustomerService)
		router := customerRouter(NewCustomerHandler(svc, testLogger))

		updated := sampleCustomer()
		updated.Telephone = "08031111111"
		svc.On("UpdateCustomer", mock.Anything, "cust-1", testActor,
			customer.CustomerInput{Telephone: "08031111111"}).
			Return(updated, nil).Once()

		rr := doRequest(t, router, http.MethodPut, "/customers/cust-1", `{"telephone":"08031111111"}`)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp dto.CustomerResponse
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "08031111111", resp.Telephone)
		svc.AssertExpectations(t)
	})
}

func TestDeleteCustomerHandler(t *testing.T) {
	t.Run("should return 204 on success", func(t *testing.T) {
		svc := new(MockCustomerService)
		router := customerRouter(NewCustomerHandler(svc, testLogger))

		svc.On("DeleteCustomer", mock.Anything, "cust-1", testActor).Return(nil).Once()

		rr := doRequest(t, router, http.MethodDelete, "/customers/cust-1", "")

		assert.Equal(t, http.StatusNoContent, rr.Code)
		svc.AssertExpectations(t)
	})

	t.Run("should return 403 for non-admins", func(t *testing.T) {
		svc := new(MockCustomerService)
		router := customerRouter(NewCustomerHandler(svc, testLogger))

		svc.On("DeleteCustomer", mock.Anything, "cust-1", testActor).
			Return(apperrors.ErrForbidden).Once()

		rr := doRequest(t, router, http.MethodDelete, "/customers/cust-1", "")

		assert.Equal(t, http.StatusForbidden, rr.Code)
		svc.AssertExpectations(t)
	})
}
