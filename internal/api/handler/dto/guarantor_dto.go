package dto

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"loan-office/internal/domain/guarantor"
)

type AddGuarantorRequest struct {
	CustomerID string `json:"customerId"`
	Surname    string `json:"surname"`
	OtherNames string `json:"otherNames"`
	Email      string `json:"email"`
	Telephone  string `json:"telephone"`
	Address    string `json:"address"`
}

func (r *AddGuarantorRequest) Validate() error {
	if strings.TrimSpace(r.CustomerID) == "" {
		return fmt.Errorf("customerId cannot be empty")
	}
	if strings.TrimSpace(r.Surname) == "" {
		return fmt.Errorf("surname cannot be empty")
	}
	if strings.TrimSpace(r.OtherNames) == "" {
		return fmt.Errorf("otherNames cannot be empty")
	}
	if r.Email != "" {
		if _, err := mail.ParseAddress(r.Email); err != nil {
			return fmt.Errorf("invalid email address: %w", err)
		}
	}
	return nil
}

type UpdateGuarantorRequest struct {
	Surname    string `json:"surname"`
	OtherNames string `json:"otherNames"`
	Email      string `json:"email"`
	Telephone  string `json:"telephone"`
	Address    string `json:"address"`
}

func (r *UpdateGuarantorRequest) Validate() error {
	if r.Email != "" {
		if _, err := mail.ParseAddress(r.Email); err != nil {
			return fmt.Errorf("invalid email address: %w", err)
		}
	}
	return nil
}

type GuarantorResponse struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customerId"`
	Surname    string    `json:"surname"`
	OtherNames string    `json:"otherNames"`
	Email      string    `json:"email"`
	Telephone  string    `json:"telephone"`
	Address    string    `json:"address"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type GuarantorListResponse struct {
	Guarantors []GuarantorResponse `json:"guarantors"`
	Meta       PageMeta            `json:"meta"`
}

func NewGuarantorResponse(g *guarantor.Guarantor) GuarantorResponse {
	if g == nil {
		return GuarantorResponse{}
	}

	return GuarantorResponse{
		ID:         g.ID,
		CustomerID: g.CustomerID,
		Surname:    g.Surname,
		OtherNames: g.OtherNames,
		Email:      g.Email,
		Telephone:  g.Telephone,
		Address:    g.Address,
		CreatedAt:  g.CreatedAt,
		UpdatedAt:  g.UpdatedAt,
	}
}
