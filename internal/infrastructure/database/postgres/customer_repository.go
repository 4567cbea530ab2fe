package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"loan-office/internal/domain/customer"
	"loan-office/internal/domain/modmin"
	"loan-office/internal/infrastructure/monitoring"
	"loan-office/internal/pkg/apperrors"
)

const customerColumns = `id, email, surname, other_names, telephone, address, modmin_id, active, created_at, updated_at`

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	return &CustomerRepository{db: db, logger: logger.With("component", "CustomerRepository")}
}

func scanCustomer(row pgx.Row, c *customer.Customer) error {
	return row.Scan(
		&c.ID, &c.Email, &c.Surname, &c.OtherNames, &c.Telephone,
		&c.Address, &c.ModminID, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
}

func (r *CustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	sql := `
        INSERT INTO customers (` + customerColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        ON CONFLICT (id) DO UPDATE
        SET email = EXCLUDED.email, surname = EXCLUDED.surname, other_names = EXCLUDED.other_names,
            telephone = EXCLUDED.telephone, address = EXCLUDED.address, active = EXCLUDED.active,
            updated_at = EXCLUDED.updated_at`

	_, err := r.db.Exec(ctx, sql,
		c.ID, c.Email, c.Surname, c.OtherNames, c.Telephone,
		c.Address, c.ModminID, c.Active, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.logger.WarnContext(ctx, "Customer email already registered", "constraint", pgErr.ConstraintName)
			return customer.ErrEmailTaken
		}
		r.logger.ErrorContext(ctx, "Failed to save customer", "customer_id", c.ID, "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID string, actor modmin.Actor) (*customer.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	args := []any{customerID}
	if !actor.IsAdmin() {
		query += ` AND modmin_id = $2`
		args = append(args, actor.ID)
	}

	status := "success"
	startTime := time.Now()

	var c customer.Customer
	err := scanCustomer(r.db.QueryRow(ctx, query, args...), &c)

	if err != nil {
		status = "error"
	}
	monitoring.RecordDBQuery("FindCustomerByID", status, time.Since(startTime))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customer.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to find customer by ID", "customer_id", customerID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return &c, nil
}

func (r *CustomerRepository) FindAll(ctx context.Context, actor modmin.Actor, filter customer.ListFilter) ([]*customer.Customer, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if !actor.IsAdmin() {
		args = append(args, actor.ID)
		where += fmt.Sprintf(" AND modmin_id = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND (email ILIKE $%d OR surname ILIKE $%d OR other_names ILIKE $%d)",
			len(args), len(args), len(args))
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customers`+where, args...).Scan(&total); err != nil {
		r.logger.ErrorContext(ctx, "Failed to count customers", "error", err)
		return nil, 0, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	args = append(args, filter.Limit, filter.Offset())
	query := `SELECT ` + customerColumns + ` FROM customers` + where +
		fmt.Sprintf(" ORDER BY surname ASC, other_names ASC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query customers", "error", err)
		return nil, 0, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	customers := make([]*customer.Customer, 0)
	for rows.Next() {
		var c customer.Customer
		if err := scanCustomer(rows, &c); err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan customer row", "error", err)
			return nil, 0, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		customers = append(customers, &c)
	}
	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating customer rows", "error", err)
		return nil, 0, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	return customers, total, nil
}

// Delete removes the customer together with their guarantors, loans and
// installments, all in one transaction.
func (r *CustomerRepository) Delete(ctx context.Context, customerID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to begin transaction", "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			r.logger.ErrorContext(ctx, "Failed to rollback transaction", "error", rbErr)
		}
	}()

	steps := []string{
		`DELETE FROM payback_months WHERE loan_id IN (SELECT id FROM loans WHERE customer_id = $1)`,
		`DELETE FROM loans WHERE customer_id = $1`,
		`DELETE FROM guarantors WHERE customer_id = $1`,
	}
	for _, sql := range steps {
		if _, err := tx.Exec(ctx, sql, customerID); err != nil {
			r.logger.ErrorContext(ctx, "Failed cascading customer deletion", "customer_id", customerID, "error", err)
			return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM customers WHERE id = $1`, customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete customer", "customer_id", customerID, "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return customer.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.ErrorContext(ctx, "Failed to commit customer deletion", "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	r.logger.InfoContext(ctx, "Customer deleted from DB", "customer_id", customerID)
	return nil
}
