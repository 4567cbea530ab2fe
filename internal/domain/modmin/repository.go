package modmin

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("modmin not found")

	ErrEmailTaken = errors.New("email already registered")
)

type Repository interface {
	Save(ctx context.Context, m *Modmin) error

	FindByID(ctx context.Context, id string) (*Modmin, error)

	FindByEmail(ctx context.Context, email string) (*Modmin, error)

	FindAll(ctx context.Context, role Role) ([]*Modmin, error)
}
