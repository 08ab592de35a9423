package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/intake/internal/intake/domain"
)

type confirmationsRepo struct {
	q *queries
}

func (r *confirmationsRepo) CreateConfirmation(ctx context.Context, c domain.Confirmation) error {
	return mapUnavailable(r.q.CreateConfirmation(ctx, confirmationRow{
		ID:         c.ID,
		OperatorID: c.OperatorID,
		TokenHash:  c.TokenHash,
		ExpiresAt:  toMillis(c.ExpiresAt),
		CreatedAt:  toMillis(c.CreatedAt),
	}))
}

func (r *confirmationsRepo) GetConfirmationByTokenHash(ctx context.Context, hash string) (domain.Confirmation, error) {
	row, err := r.q.GetConfirmationByTokenHash(ctx, hash)
	if err != nil {
		return domain.Confirmation{}, mapNotFound(err)
	}
	return domain.Confirmation{
		ID:         row.ID,
		OperatorID: row.OperatorID,
		TokenHash:  row.TokenHash,
		ExpiresAt:  fromMillis(row.ExpiresAt),
		CreatedAt:  fromMillis(row.CreatedAt),
	}, nil
}

func (r *confirmationsRepo) DeleteConfirmationsForOperator(ctx context.Context, operatorID string) error {
	return mapUnavailable(r.q.DeleteConfirmationsForOperator(ctx, operatorID))
}

func (r *confirmationsRepo) DeleteExpiredConfirmations(ctx context.Context, now time.Time) (int64, error) {
	n, err := r.q.DeleteExpiredConfirmations(ctx, toMillis(now))
	if err != nil {
		return 0, mapUnavailable(err)
	}
	return n, nil
}
