package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aussiebroadwan/intake/internal/intake/domain"
	"github.com/aussiebroadwan/intake/internal/intake/store"
)

type operatorsRepo struct {
	q *queries
}

func (r *operatorsRepo) GetOperatorByID(ctx context.Context, id string) (domain.Operator, error) {
	row, err := r.q.GetOperatorByID(ctx, id)
	if err != nil {
		return domain.Operator{}, mapNotFound(err)
	}
	return mapOperator(row), nil
}

func (r *operatorsRepo) GetOperatorByEmail(ctx context.Context, email string) (domain.Operator, error) {
	row, err := r.q.GetOperatorByEmail(ctx, email)
	if err != nil {
		return domain.Operator{}, mapNotFound(err)
	}
	return mapOperator(row), nil
}

func (r *operatorsRepo) CreateOperator(ctx context.Context, o domain.Operator) error {
	row := operatorRow{
		ID:           o.ID,
		Email:        o.Email,
		PasswordHash: o.PasswordHash,
		CreatedAt:    toMillis(o.CreatedAt),
		UpdatedAt:    toMillis(o.UpdatedAt),
	}
	if o.ConfirmedAt != nil {
		row.ConfirmedAt = sql.NullInt64{Int64: toMillis(*o.ConfirmedAt), Valid: true}
	}

	if err := r.q.CreateOperator(ctx, row); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: operator %s", store.ErrAlreadyExists, o.Email)
		}
		return mapUnavailable(err)
	}
	return nil
}

func (r *operatorsRepo) MarkOperatorConfirmed(ctx context.Context, id string, at time.Time) error {
	n, err := r.q.MarkOperatorConfirmed(ctx, id, toMillis(at))
	if err != nil {
		return mapUnavailable(err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func mapOperator(row operatorRow) domain.Operator {
	return domain.Operator{
		ID:           row.ID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		ConfirmedAt:  fromNullMillis(row.ConfirmedAt),
		CreatedAt:    fromMillis(row.CreatedAt),
		UpdatedAt:    fromMillis(row.UpdatedAt),
	}
}
