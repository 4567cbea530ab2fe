package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"loan-office/internal/domain/loan"
)

type SaveCategoryRequest struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

func (r *SaveCategoryRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	if amount.IsNegative() {
		return fmt.Errorf("amount cannot be negative")
	}
	return nil
}

type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Amount    string    `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Meta       PageMeta           `json:"meta"`
}

func NewCategoryResponse(c *loan.LoanCategory) CategoryResponse {
	if c == nil {
		return CategoryResponse{}
	}

	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Amount:    c.Amount.StringFixed(2),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
