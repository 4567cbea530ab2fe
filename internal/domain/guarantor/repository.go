package guarantor

import (
	"context"
	"errors"

	"loan-office/internal/domain/modmin"
)

var ErrNotFound = errors.New("guarantor not found")

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

type Repository interface {
	Save(ctx context.Context, g *Guarantor) error

	// FindByID scopes through the owning customer: Moderators only resolve
	// guarantors of customers they authored.
	FindByID(ctx context.Context, guarantorID string, actor modmin.Actor) (*Guarantor, error)

	FindAll(ctx context.Context, actor modmin.Actor, filter ListFilter) ([]*Guarantor, int, error)

	FindByCustomer(ctx context.Context, customerID string, actor modmin.Actor) ([]*Guarantor, error)

	Delete(ctx context.Context, guarantorID string) error
}
