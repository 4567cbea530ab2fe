package loan

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanCategory is a named loan product with a headline amount.
type LoanCategory struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func NewLoanCategory(name string, amount decimal.Decimal) *LoanCategory {
	now := time.Now()
	return &LoanCategory{
		ID:        uuid.NewString(),
		Name:      name,
		Amount:    amount,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
