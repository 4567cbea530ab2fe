package customer

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
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

func NewCustomer(email, surname, otherNames, telephone, address, modminID string) *Customer {
	now := time.Now()
	return &Customer{
		ID:         uuid.NewString(),
		Email:      email,
		Surname:    surname,
		OtherNames: otherNames,
		Telephone:  telephone,
		Address:    address,
		ModminID:   modminID,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (c *Customer) Deactivate() {
	if c.Active {
		c.Active = false
		c.UpdatedAt = time.Now()
	}
}
