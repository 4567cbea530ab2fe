package dto

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"loan-office/internal/domain/modmin"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if r.Password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	return nil
}

type LoginResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	Modmin    ModminResponse `json:"modmin"`
}

type AddModeratorRequest struct {
	Email      string `json:"email"`
	Surname    string `json:"surname"`
	OtherNames string `json:"otherNames"`
	Password   string `json:"password"`
}

func (r *AddModeratorRequest) Validate() error {
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("invalid email address: %w", err)
	}
	if strings.TrimSpace(r.Surname) == "" {
		return fmt.Errorf("surname cannot be empty")
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

type ModminResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Surname    string    `json:"surname"`
	OtherNames string    `json:"otherNames"`
	Role       string    `json:"role"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func NewModminResponse(m *modmin.Modmin) ModminResponse {
	if m == nil {
		return ModminResponse{}
	}

	return ModminResponse{
		ID:         m.ID,
		Email:      m.Email,
		Surname:    m.Surname,
		OtherNames: m.OtherNames,
		Role:       string(m.Role),
		Active:     m.Active,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
