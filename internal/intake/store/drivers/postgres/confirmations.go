package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/intake/internal/intake/domain"
)

type confirmationsRepo struct {
	db dbtx
}

func (r *confirmationsRepo) CreateConfirmation(ctx context.Context, c domain.Confirmation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO confirmations (id, operator_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, c.ID, c.OperatorID, c.TokenHash, c.ExpiresAt, c.CreatedAt)
	return mapUnavailable(err)
}

func (r *confirmationsRepo) GetConfirmationByTokenHash(ctx context.Context, hash string) (domain.Confirmation, error) {
	var c domain.Confirmation
	err := r.db.QueryRowContext(ctx, `
		SELECT id, operator_id, token_hash, expires_at, created_at
		FROM confirmations WHERE token_hash = $1
	`, hash).Scan(&c.ID, &c.OperatorID, &c.TokenHash, &c.ExpiresAt, &c.CreatedAt)
	if err != nil {
		return domain.Confirmation{}, mapNotFound(err)
	}
	c.ExpiresAt = c.ExpiresAt.UTC()
	c.CreatedAt = c.CreatedAt.UTC()
	return c, nil
}

func (r *confirmationsRepo) DeleteConfirmationsForOperator(ctx context.Context, operatorID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM confirmations WHERE operator_id = $1`, operatorID)
	return mapUnavailable(err)
}

func (r *confirmationsRepo) DeleteExpiredConfirmations(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM confirmations WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, mapUnavailable(err)
	}
	return res.RowsAffected()
}
