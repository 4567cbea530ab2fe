package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"loan-office/internal/domain/modmin"
	"loan-office/internal/pkg/apperrors"
)

const modminColumns = `id, email, surname, other_names, password_hash, role, active, created_at, updated_at`

type ModminRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ modmin.Repository = (*ModminRepository)(nil)

func NewModminRepository(db DBPool, logger *slog.Logger) *ModminRepository {
	return &ModminRepository{db: db, logger: logger.With("component", "ModminRepository")}
}

func scanModmin(row pgx.Row, m *modmin.Modmin) error {
	return row.Scan(
		&m.ID, &m.Email, &m.Surname, &m.OtherNames, &m.PasswordHash,
		&m.Role, &m.Active, &m.CreatedAt, &m.UpdatedAt,
	)
}

func (r *ModminRepository) Save(ctx context.Context, m *modmin.Modmin) error {
	sql := `
        INSERT INTO modmins (` + modminColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (id) DO UPDATE
        SET email = EXCLUDED.email, surname = EXCLUDED.surname, other_names = EXCLUDED.other_names,
            password_hash = EXCLUDED.password_hash, active = EXCLUDED.active, updated_at = EXCLUDED.updated_at`

	_, err := r.db.Exec(ctx, sql,
		m.ID, m.Email, m.Surname, m.OtherNames, m.PasswordHash,
		m.Role, m.Active, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.logger.WarnContext(ctx, "Modmin email already registered", "constraint", pgErr.ConstraintName)
			return modmin.ErrEmailTaken
		}
		r.logger.ErrorContext(ctx, "Failed to save modmin", "modmin_id", m.ID, "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return nil
}

func (r *ModminRepository) FindByID(ctx context.Context, id string) (*modmin.Modmin, error) {
	query := `SELECT ` + modminColumns + ` FROM modmins WHERE id = $1`

	var m modmin.Modmin
	if err := scanModmin(r.db.QueryRow(ctx, query, id), &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, modmin.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to find modmin by ID", "modmin_id", id, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return &m, nil
}

func (r *ModminRepository) FindByEmail(ctx context.Context, email string) (*modmin.Modmin, error) {
	query := `SELECT ` + modminColumns + ` FROM modmins WHERE LOWER(email) = LOWER($1)`

	var m modmin.Modmin
	if err := scanModmin(r.db.QueryRow(ctx, query, email), &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, modmin.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to find modmin by email", "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return &m, nil
}

func (r *ModminRepository) FindAll(ctx context.Context, role modmin.Role) ([]*modmin.Modmin, error) {
	query := `SELECT ` + modminColumns + ` FROM modmins`
	args := []any{}
	if role != "" {
		query += ` WHERE role = $1`
		args = append(args, role)
	}
	query += ` ORDER BY surname ASC, other_names ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query modmins", "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	modmins := make([]*modmin.Modmin, 0)
	for rows.Next() {
		var m modmin.Modmin
		if err := scanModmin(rows, &m); err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan modmin row", "error", err)
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		modmins = append(modmins, &m)
	}
	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating modmin rows", "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	return modmins, nil
}
