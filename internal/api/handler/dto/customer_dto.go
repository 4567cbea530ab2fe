package dto

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"loan-office/internal/domain/customer"
)

type CreateCustomerRequest struct {
	Email      string `json:"email"`
	Surname    string `json:"surname"`
	OtherNames string `json:"otherNames"`
	Telephone  string `json:"telephone"`
	Address    string `json:"address"`
}

func (r *CreateCustomerRequest) Validate() error {
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("invalid email address: %w", err)
	}
	if strings.TrimSpace(r.Surname) == "" {
		return fmt.Errorf("surname cannot be empty")
	}
	if strings.TrimSpace(r.OtherNames) == "" {
		return fmt.Errorf("otherNames cannot be empty")
	}
	return nil
}

type UpdateCustomerRequest struct {
	Email      string `json:"email"`
	Surname    string `json:"surname"`
	OtherNames string `json:"otherNames"`
	Telephone  string `json:"telephone"`
	Address    string `json:"address"`
}

func (r *UpdateCustomerRequest) Validate() error {
	if r.Email != "" {
		if _, err := mail.ParseAddress(r.Email); err != nil {
			return fmt.Errorf("invalid email address: %w", err)
		}
	}
	return nil
}

type CustomerResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Surname    string    `json:"surname"`
	OtherNames string    `json:"otherNames"`
	Telephone  string    `json:"telephone"`
	Address    string    `json:"address"`
	ModminID   string    `json:"modminId"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type CustomerListResponse struct {
	Customers []CustomerResponse `json:"customers"`
	Meta      PageMeta           `json:"meta"`
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}

	return CustomerResponse{
		ID:         cust.ID,
		Email:      cust.Email,
		Surname:    cust.Surname,
		OtherNames: cust.OtherNames,
		Telephone:  cust.Telephone,
		Address:    cust.Address,
		ModminID:   cust.ModminID,
		Active:     cust.Active,
		CreatedAt:  cust.CreatedAt,
		UpdatedAt:  cust.UpdatedAt,
	}
}
