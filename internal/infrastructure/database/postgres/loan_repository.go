package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v4"

	"loan-office/internal/domain/loan"
	"loan-office/internal/domain/modmin"
	"loan-office/internal/infrastructure/monitoring"
	"loan-office/internal/pkg/apperrors"
)

type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Acquire(ctx context.Context) (*pgxpool.Conn, error)
	Close()
}

var _ DBPool = (*pgxpool.Pool)(nil)

var _ DBPool = (pgxmock.PgxPoolIface)(nil)

var errMsgFormat = "%w: %w"

const loanColumns = `id, customer_id, modmin_id, loan_type, loan_amount, management_fee,
        application_fee, equity, interest_rate, loan_tenure, disbursed_date,
        pre_loan_amount, pre_loan_tenure, office_address, salary_date, salary_amount,
        bank_name, bank_acc_number, outstanding_loans, created_at, updated_at`

const installmentColumns = `id, loan_id, amount, rate, interest, monthly_repayment,
        payback_date, paid, created_at, updated_at`

type LoanRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ loan.Repository = (*LoanRepository)(nil)

func NewLoanRepository(db DBPool, logger *slog.Logger) *LoanRepository {
	return &LoanRepository{db: db, logger: logger.With("component", "LoanRepository")}
}

func (r *LoanRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to begin transaction", "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return tx, nil
}

func (r *LoanRepository) rollbackTx(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		r.logger.ErrorContext(ctx, "Failed to rollback transaction", "error", err)
	}
}

func scanLoan(row pgx.Row, l *loan.LoanApplication) error {
	return row.Scan(
		&l.ID, &l.CustomerID, &l.ModminID, &l.LoanType, &l.LoanAmount, &l.ManagementFee,
		&l.ApplicationFee, &l.Equity, &l.InterestRate, &l.LoanTenure, &l.DisbursedDate,
		&l.PreLoanAmount, &l.PreLoanTenure, &l.OfficeAddress, &l.SalaryDate, &l.SalaryAmount,
		&l.BankName, &l.BankAccNumber, &l.OutstandingLoans, &l.CreatedAt, &l.UpdatedAt,
	)
}

func scanInstallment(row pgx.Row, p *loan.PaybackMonth) error {
	return row.Scan(
		&p.ID, &p.LoanID, &p.Amount, &p.Rate, &p.Interest, &p.MonthlyRepayment,
		&p.PaybackDate, &p.Paid, &p.CreatedAt, &p.UpdatedAt,
	)
}

func (r *LoanRepository) CreateLoanWithSchedule(ctx context.Context, app *loan.LoanApplication) error {
	tx, err := r.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer r.rollbackTx(ctx, tx)

	// Lock the customer row first so two concurrent applications for the same
	// customer serialize on it; the unpaid-installment check below is then
	// race-free.
	lockSQL := `SELECT id FROM customers WHERE id = $1 FOR UPDATE`
	var lockedID string
	if err := tx.QueryRow(ctx, lockSQL, app.CustomerID).Scan(&lockedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Customer not found while locking for loan creation", "customer_id", app.CustomerID)
			return apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to lock customer row", "customer_id", app.CustomerID, "error", err)
		return fmt.Errorf("%w: failed to lock customer row: %w", apperrors.ErrDatabase, err)
	}

	gateSQL := `
        SELECT COUNT(*)
        FROM payback_months pm
        JOIN loans l ON l.id = pm.loan_id
        WHERE l.customer_id = $1 AND pm.paid = FALSE`

	var unpaid int
	if err := tx.QueryRow(ctx, gateSQL, app.CustomerID).Scan(&unpaid); err != nil {
		r.logger.ErrorContext(ctx, "Failed to count unpaid installments for gate check", "customer_id", app.CustomerID, "error", err)
		return fmt.Errorf("%w: failed outstanding-loan check: %w", apperrors.ErrDatabase, err)
	}
	if unpaid > 0 {
		r.logger.WarnContext(ctx, "Customer still has unpaid installments", "customer_id", app.CustomerID, "unpaid", unpaid)
		return apperrors.ErrOutstandingLoan
	}

	loanSQL := `
        INSERT INTO loans (` + loanColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	if _, err := tx.Exec(ctx, loanSQL,
		app.ID, app.CustomerID, app.ModminID, app.LoanType, app.LoanAmount, app.ManagementFee,
		app.ApplicationFee, app.Equity, app.InterestRate, app.LoanTenure, app.DisbursedDate,
		app.PreLoanAmount, app.PreLoanTenure, app.OfficeAddress, app.SalaryDate, app.SalaryAmount,
		app.BankName, app.BankAccNumber, app.OutstandingLoans, app.CreatedAt, app.UpdatedAt,
	); err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert loan", "error", err)
		return fmt.Errorf("%w: failed to insert loan: %w", apperrors.ErrDatabase, err)
	}
	r.logger.InfoContext(ctx, "Loan created in DB", "loan_id", app.ID)

	if len(app.Installments) > 0 {
		installmentSQL := `
            INSERT INTO payback_months (` + installmentColumns + `)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())`

		batch := &pgx.Batch{}
		for _, pm := range app.Installments {
			batch.Queue(installmentSQL, pm.ID, app.ID, pm.Amount, pm.Rate, pm.Interest,
				pm.MonthlyRepayment, pm.PaybackDate, pm.Paid)
		}

		results := tx.SendBatch(ctx, batch)
		for i := range app.Installments {
			if _, err := results.Exec(); err != nil {
				results.Close()
				r.logger.ErrorContext(ctx, "Failed executing installment batch insert", "error", err, "entry_index", i, "loan_id", app.ID)
				return fmt.Errorf("%w: failed inserting installment %d: %w", apperrors.ErrDatabase, i+1, err)
			}
		}
		if err := results.Close(); err != nil {
			r.logger.ErrorContext(ctx, "Failed closing installment batch results", "error", err, "loan_id", app.ID)
			return fmt.Errorf("%w: closing batch results failed: %w", apperrors.ErrDatabase, err)
		}
	}
	r.logger.InfoContext(ctx, "Payback schedule created in DB", "loan_id", app.ID, "num_entries", len(app.Installments))

	if err := tx.Commit(ctx); err != nil {
		r.logger.ErrorContext(ctx, "Failed to commit loan creation", "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return nil
}

func (r *LoanRepository) GetLoanByID(ctx context.Context, loanID string, actor modmin.Actor) (*loan.LoanApplication, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	args := []any{loanID}
	if !actor.IsAdmin() {
		query += ` AND modmin_id = $2`
		args = append(args, actor.ID)
	}

	status := "success"
	startTime := time.Now()

	var l loan.LoanApplication
	err := scanLoan(r.db.QueryRow(ctx, query, args...), &l)

	if err != nil {
		status = "error"
	}
	monitoring.RecordDBQuery("GetLoanByID", status, time.Since(startTime))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Loan not found", "loan_id", loanID)
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get loan by ID", "loan_id", loanID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return &l, nil
}

func (r *LoanRepository) GetInstallments(ctx context.Context, loanID string) ([]loan.PaybackMonth, error) {
	query := `
        SELECT ` + installmentColumns + `
        FROM payback_months
        WHERE loan_id = $1
        ORDER BY payback_date ASC`

	rows, err := r.db.Query(ctx, query, loanID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query payback schedule", "loan_id", loanID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	installments := make([]loan.PaybackMonth, 0)
	for rows.Next() {
		var pm loan.PaybackMonth
		if err := scanInstallment(rows, &pm); err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan installment row", "loan_id", loanID, "error", err)
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		installments = append(installments, pm)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating installment rows", "loan_id", loanID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	return installments, nil
}

func (r *LoanRepository) ToggleInstallment(ctx context.Context, loanID, installmentID string) (*loan.PaybackMonth, error) {
	sql := `
        UPDATE payback_months
        SET paid = NOT paid, updated_at = NOW()
        WHERE id = $1 AND loan_id = $2
        RETURNING ` + installmentColumns

	var pm loan.PaybackMonth
	err := scanInstallment(r.db.QueryRow(ctx, sql, installmentID, loanID), &pm)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Installment not found on loan", "loan_id", loanID, "installment_id", installmentID)
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to toggle installment", "loan_id", loanID, "installment_id", installmentID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Installment toggled in DB", "loan_id", loanID, "installment_id", installmentID, "paid", pm.Paid)
	return &pm, nil
}

func (r *LoanRepository) CountUnpaidInstallments(ctx context.Context, loanID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM payback_months WHERE loan_id = $1 AND paid = FALSE`
	if err := r.db.QueryRow(ctx, query, loanID).Scan(&count); err != nil {
		r.logger.ErrorContext(ctx, "Failed to count unpaid installments", "loan_id", loanID, "error", err)
		return 0, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return count, nil
}

func (r *LoanRepository) HasOutstandingLoan(ctx context.Context, customerID string) (bool, error) {
	var count int
	query := `
        SELECT COUNT(*)
        FROM payback_months pm
        JOIN loans l ON l.id = pm.loan_id
        WHERE l.customer_id = $1 AND pm.paid = FALSE`

	if err := r.db.QueryRow(ctx, query, customerID).Scan(&count); err != nil {
		r.logger.ErrorContext(ctx, "Failed to check outstanding loans", "customer_id", customerID, "error", err)
		return false, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return count > 0, nil
}

func (r *LoanRepository) List(ctx context.Context, actor modmin.Actor, filter loan.ListFilter) ([]*loan.LoanApplication, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if !actor.IsAdmin() {
		args = append(args, actor.ID)
		where += fmt.Sprintf(" AND l.modmin_id = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(` AND EXISTS (
            SELECT 1 FROM customers c
            WHERE c.id = l.customer_id
            AND (c.email ILIKE $%d OR c.surname ILIKE $%d OR c.other_names ILIKE $%d))`,
			len(args), len(args), len(args))
	}
	if filter.LoanType != "" {
		args = append(args, filter.LoanType)
		where += fmt.Sprintf(" AND l.loan_type = $%d", len(args))
	}

	countSQL := `SELECT COUNT(*) FROM loans l` + where
	var total int
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		r.logger.ErrorContext(ctx, "Failed to count loans", "error", err)
		return nil, 0, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	args = append(args, filter.Limit, filter.Offset())
	listSQL := `SELECT ` + loanColumns + ` FROM loans l` + where +
		fmt.Sprintf(" ORDER BY l.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, listSQL, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query loans", "error", err)
		return nil, 0, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	loans := make([]*loan.LoanApplication, 0)
	for rows.Next() {
		var l loan.LoanApplication
		if err := scanLoan(rows, &l); err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan loan row", "error", err)
			return nil, 0, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		loans = append(loans, &l)
	}
	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating loan rows", "error", err)
		return nil, 0, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	rows.Close()

	// Loan status is derived from the installments, so a listing without them
	// would report every loan as completed.
	if err := r.attachInstallments(ctx, loans); err != nil {
		return nil, 0, err
	}

	return loans, total, nil
}

func (r *LoanRepository) ListWithInstallments(ctx context.Context, actor modmin.Actor) ([]*loan.LoanApplication, error) {
	query := `SELECT ` + loanColumns + ` FROM loans`
	args := []any{}
	if !actor.IsAdmin() {
		query += ` WHERE modmin_id = $1`
		args = append(args, actor.ID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query loans with installments", "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	loans := make([]*loan.LoanApplication, 0)
	for rows.Next() {
		var l loan.LoanApplication
		if err := scanLoan(rows, &l); err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan loan row", "error", err)
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		loans = append(loans, &l)
	}
	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating loan rows", "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	rows.Close()

	if err := r.attachInstallments(ctx, loans); err != nil {
		return nil, err
	}

	return loans, nil
}

// attachInstallments loads the schedules for every loan in one query and
// distributes the rows onto the matching applications.
func (r *LoanRepository) attachInstallments(ctx context.Context, loans []*loan.LoanApplication) error {
	if len(loans) == 0 {
		return nil
	}

	byID := make(map[string]*loan.LoanApplication, len(loans))
	ids := make([]string, 0, len(loans))
	for _, l := range loans {
		byID[l.ID] = l
		ids = append(ids, l.ID)
	}

	installmentSQL := `
        SELECT ` + installmentColumns + `
        FROM payback_months
        WHERE loan_id = ANY($1)
        ORDER BY loan_id, payback_date ASC`

	irows, err := r.db.Query(ctx, installmentSQL, ids)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query installments for loans", "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer irows.Close()

	for irows.Next() {
		var pm loan.PaybackMonth
		if err := scanInstallment(irows, &pm); err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan installment row", "error", err)
			return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		if l, ok := byID[pm.LoanID]; ok {
			l.Installments = append(l.Installments, pm)
		}
	}
	if err = irows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating installment rows", "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	return nil
}

func (r *LoanRepository) UpdateLoan(ctx context.Context, app *loan.LoanApplication) error {
	sql := `
        UPDATE loans
        SET loan_type = $1, management_fee = $2, application_fee = $3, equity = $4,
            disbursed_date = $5, pre_loan_amount = $6, pre_loan_tenure = $7,
            office_address = $8, salary_date = $9, salary_amount = $10,
            bank_name = $11, bank_acc_number = $12, outstanding_loans = $13, updated_at = NOW()
        WHERE id = $14`

	cmdTag, err := r.db.Exec(ctx, sql,
		app.LoanType, app.ManagementFee, app.ApplicationFee, app.Equity,
		app.DisbursedDate, app.PreLoanAmount, app.PreLoanTenure,
		app.OfficeAddress, app.SalaryDate, app.SalaryAmount,
		app.BankName, app.BankAccNumber, app.OutstandingLoans, app.ID,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update loan", "loan_id", app.ID, "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Loan update affected zero rows", "loan_id", app.ID)
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *LoanRepository) DeleteLoan(ctx context.Context, loanID string) error {
	tx, err := r.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer r.rollbackTx(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM payback_months WHERE loan_id = $1`, loanID); err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete loan installments", "loan_id", loanID, "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM loans WHERE id = $1`, loanID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete loan", "loan_id", loanID, "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.ErrorContext(ctx, "Failed to commit loan deletion", "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	r.logger.InfoContext(ctx, "Loan deleted from DB", "loan_id", loanID)
	return nil
}

func (r *LoanRepository) SaveCategory(ctx context.Context, category *loan.LoanCategory) error {
	sql := `
        INSERT INTO loan_categories (id, name, amount, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (id) DO UPDATE
        SET name = EXCLUDED.name, amount = EXCLUDED.amount, updated_at = EXCLUDED.updated_at`

	if _, err := r.db.Exec(ctx, sql, category.ID, category.Name, category.Amount, category.CreatedAt, category.UpdatedAt); err != nil {
		return translateDBError(err, r.logger)
	}
	return nil
}

func (r *LoanRepository) GetCategoryByID(ctx context.Context, categoryID string) (*loan.LoanCategory, error) {
	query := `SELECT id, name, amount, created_at, updated_at FROM loan_categories WHERE id = $1`

	var c loan.LoanCategory
	err := r.db.QueryRow(ctx, query, categoryID).Scan(&c.ID, &c.Name, &c.Amount, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get loan category", "category_id", categoryID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return &c, nil
}

func (r *LoanRepository) ListCategories(ctx context.Context, search string, page, limit int) ([]*loan.LoanCategory, int, error) {
	where := ``
	args := []any{}
	if search != "" {
		args = append(args, "%"+search+"%")
		where = ` WHERE name ILIKE $1`
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM loan_categories`+where, args...).Scan(&total); err != nil {
		r.logger.ErrorContext(ctx, "Failed to count loan categories", "error", err)
		return nil, 0, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	args = append(args, limit, (page-1)*limit)
	query := `SELECT id, name, amount, created_at, updated_at FROM loan_categories` + where +
		fmt.Sprintf(` ORDER BY name ASC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query loan categories", "error", err)
		return nil, 0, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	categories := make([]*loan.LoanCategory, 0)
	for rows.Next() {
		var c loan.LoanCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Amount, &c.CreatedAt, &c.UpdatedAt); err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan loan category row", "error", err)
			return nil, 0, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		categories = append(categories, &c)
	}
	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating loan category rows", "error", err)
		return nil, 0, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	return categories, total, nil
}

func (r *LoanRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM loan_categories WHERE id = $1`, categoryID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete loan category", "category_id", categoryID, "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func translateDBError(err error, contextLogger *slog.Logger) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			contextLogger.Warn("Database unique constraint violation", "detail", pgErr.Detail, "constraint", pgErr.ConstraintName)
			return fmt.Errorf("%w: %s", apperrors.ErrAlreadyExists, pgErr.ConstraintName)
		}
		contextLogger.Error("PostgreSQL specific error", "code", pgErr.Code, "message", pgErr.Message, "detail", pgErr.Detail)
		return fmt.Errorf("%w: db error code %s", apperrors.ErrDatabase, pgErr.Code)
	}

	contextLogger.Error("Generic database error", "error", err)
	return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
}
