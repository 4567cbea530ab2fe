package customer

import (
	"context"
	"errors"

	"loan-office/internal/domain/modmin"
)

var (
	ErrNotFound = errors.New("customer not found")

	ErrEmailTaken = errors.New("customer email already registered")
)

// ListFilter pages and searches customer listings. Search matches email,
// surname or other names, case-insensitively.
type ListFilter struct {
	Page   int
	Limit  int
	Search string
}

func (f ListFilter) Normalized() ListFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	return f
}

func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type CustomerRepository interface {
	Save(ctx context.Context, customer *Customer) error

	// FindByID scopes the lookup by actor: Moderators only resolve customers
	// they authored.
	FindByID(ctx context.Context, customerID string, actor modmin.Actor) (*Customer, error)

	FindAll(ctx context.Context, actor modmin.Actor, filter ListFilter) ([]*Customer, int, error)

	// Delete removes the customer and cascades to guarantors, loans and
	// installments.
	Delete(ctx context.Context, customerID string) error
}
