package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"loan-office/internal/domain/guarantor"
	"loan-office/internal/domain/modmin"
	"loan-office/internal/pkg/apperrors"
)

const guarantorColumns = `g.id, g.customer_id, g.surname, g.other_names, g.email, g.telephone, g.address, g.created_at, g.updated_at`

type GuarantorRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ guarantor.Repository = (*GuarantorRepository)(nil)

func NewGuarantorRepository(db DBPool, logger *slog.Logger) *GuarantorRepository {
	return &GuarantorRepository{db: db, logger: logger.With("component", "GuarantorRepository")}
}

func scanGuarantor(row pgx.Row, g *guarantor.Guarantor) error {
	return row.Scan(
		&g.ID, &g.CustomerID, &g.Surname, &g.OtherNames, &g.Email,
		&g.Telephone, &g.Address, &g.CreatedAt, &g.UpdatedAt,
	)
}

func (r *GuarantorRepository) Save(ctx context.Context, g *guarantor.Guarantor) error {
	sql := `
        INSERT INTO guarantors (id, customer_id, surname, other_names, email, telephone, address, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (id) DO UPDATE
        SET surname = EXCLUDED.surname, other_names = EXCLUDED.other_names, email = EXCLUDED.email,
            telephone = EXCLUDED.telephone, address = EXCLUDED.address, updated_at = EXCLUDED.updated_at`

	_, err := r.db.Exec(ctx, sql,
		g.ID, g.CustomerID, g.Surname, g.OtherNames, g.Email,
		g.Telephone, g.Address, g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to save guarantor", "guarantor_id", g.ID, "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return nil
}

// Scoping goes through the owning customer's modmin_id: a Moderator resolves
// a guarantor only when they authored the customer being vouched for.
func (r *GuarantorRepository) FindByID(ctx context.Context, guarantorID string, actor modmin.Actor) (*guarantor.Guarantor, error) {
	query := `
        SELECT ` + guarantorColumns + `
        FROM guarantors g
        JOIN customers c ON c.id = g.customer_id
        WHERE g.id = $1`
	args := []any{guarantorID}
	if !actor.IsAdmin() {
		query += ` AND c.modmin_id = $2`
		args = append(args, actor.ID)
	}

	var g guarantor.Guarantor
	err := scanGuarantor(r.db.QueryRow(ctx, query, args...), &g)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, guarantor.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to find guarantor by ID", "guarantor_id", guarantorID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return &g, nil
}

func (r *GuarantorRepository) FindAll(ctx context.Context, actor modmin.Actor, filter guarantor.ListFilter) ([]*guarantor.Guarantor, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if !actor.IsAdmin() {
		args = append(args, actor.ID)
		where += fmt.Sprintf(" AND c.modmin_id = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND (g.email ILIKE $%d OR g.surname ILIKE $%d OR g.other_names ILIKE $%d)",
			len(args), len(args), len(args))
	}

	countSQL := `SELECT COUNT(*) FROM guarantors g JOIN customers c ON c.id = g.customer_id` + where
	var total int
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		r.logger.ErrorContext(ctx, "Failed to count guarantors", "error", err)
		return nil, 0, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	args = append(args, filter.Limit, filter.Offset())
	query := `SELECT ` + guarantorColumns + ` FROM guarantors g JOIN customers c ON c.id = g.customer_id` + where +
		fmt.Sprintf(" ORDER BY g.surname ASC, g.other_names ASC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query guarantors", "error", err)
		return nil, 0, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	guarantors := make([]*guarantor.Guarantor, 0)
	for rows.Next() {
		var g guarantor.Guarantor
		if err := scanGuarantor(rows, &g); err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan guarantor row", "error", err)
			return nil, 0, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		guarantors = append(guarantors, &g)
	}
	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating guarantor rows", "error", err)
		return nil, 0, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	return guarantors, total, nil
}

func (r *GuarantorRepository) FindByCustomer(ctx context.Context, customerID string, actor modmin.Actor) ([]*guarantor.Guarantor, error) {
	query := `
        SELECT ` + guarantorColumns + `
        FROM guarantors g
        JOIN customers c ON c.id = g.customer_id
        WHERE g.customer_id = $1`
	args := []any{customerID}
	if !actor.IsAdmin() {
		query += ` AND c.modmin_id = $2`
		args = append(args, actor.ID)
	}
	query += ` ORDER BY g.created_at ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query customer guarantors", "customer_id", customerID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	guarantors := make([]*guarantor.Guarantor, 0)
	for rows.Next() {
		var g guarantor.Guarantor
		if err := scanGuarantor(rows, &g); err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan guarantor row", "customer_id", customerID, "error", err)
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		guarantors = append(guarantors, &g)
	}
	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating guarantor rows", "customer_id", customerID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	return guarantors, nil
}

func (r *GuarantorRepository) Delete(ctx context.Context, guarantorID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM guarantors WHERE id = $1`, guarantorID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete guarantor", "guarantor_id", guarantorID, "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return guarantor.ErrNotFound
	}
	r.logger.InfoContext(ctx, "Guarantor deleted from DB", "guarantor_id", guarantorID)
	return nil
}
