package guarantor

import (
	"time"

	"github.com/google/uuid"
)

// Guarantor vouches for exactly one customer.
type Guarantor struct {
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

func NewGuarantor(customerID, surname, otherNames, email, telephone, address string) *Guarantor {
	now := time.Now()
	return &Guarantor{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		Surname:    surname,
		OtherNames: otherNames,
		Email:      email,
		Telephone:  telephone,
		Address:    address,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
