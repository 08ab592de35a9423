package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aussiebroadwan/intake/internal/intake/domain"
	"github.com/aussiebroadwan/intake/internal/intake/store"
)

type operatorsRepo struct {
	db dbtx
}

const selectOperator = `SELECT id, email, password_hash, confirmed_at, created_at, updated_at FROM operators`

func scanOperator(row *sql.Row) (domain.Operator, error) {
	var (
		o           domain.Operator
		confirmedAt sql.NullTime
	)
	if err := row.Scan(&o.ID, &o.Email, &o.PasswordHash, &confirmedAt, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return domain.Operator{}, mapNotFound(err)
	}
	if confirmedAt.Valid {
		t := confirmedAt.Time.UTC()
		o.ConfirmedAt = &t
	}
	o.CreatedAt = o.CreatedAt.UTC()
	o.UpdatedAt = o.UpdatedAt.UTC()
	return o, nil
}

func (r *operatorsRepo) GetOperatorByID(ctx context.Context, id string) (domain.Operator, error) {
	return scanOperator(r.db.QueryRowContext(ctx, selectOperator+` WHERE id = $1`, id))
}

func (r *operatorsRepo) GetOperatorByEmail(ctx context.Context, email string) (domain.Operator, error) {
	return scanOperator(r.db.QueryRowContext(ctx, selectOperator+` WHERE email = $1`, email))
}

func (r *operatorsRepo) CreateOperator(ctx context.Context, o domain.Operator) error {
	var confirmedAt sql.NullTime
	if o.ConfirmedAt != nil {
		confirmedAt = sql.NullTime{Time: *o.ConfirmedAt, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO operators (id, email, password_hash, confirmed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, o.ID, o.Email, o.PasswordHash, confirmedAt, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		if _, ok := asUniqueViolation(err); ok {
			return fmt.Errorf("%w: operator %s", store.ErrAlreadyExists, o.Email)
		}
		return mapUnavailable(err)
	}
	return nil
}

func (r *operatorsRepo) MarkOperatorConfirmed(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE operators SET confirmed_at = $1, updated_at = $1 WHERE id = $2`, at, id)
	if err != nil {
		return mapUnavailable(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
