package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/intake/internal/intake/domain"
	"github.com/aussiebroadwan/intake/pkg/idx"
)

type clientsRepo struct {
	db  dbtx
	now func() time.Time
}

func (r *clientsRepo) ListClients(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, business_name, created_at
		FROM clients
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: list clients: %w", mapUnavailable(err))
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.BusinessName, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres: scan client: %w", err)
		}
		c.CreatedAt = c.CreatedAt.UTC()
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list clients: %w", mapUnavailable(err))
	}
	return clients, nil
}

func (r *clientsRepo) CreateClient(ctx context.Context, d domain.Draft) (domain.Client, error) {
	// TIMESTAMPTZ keeps microseconds.
	now := r.now().UTC().Truncate(time.Microsecond)
	c := domain.Client{
		ID:           idx.NewAt(now).String(),
		Name:         d.Name,
		Email:        d.Email,
		BusinessName: d.BusinessName,
		CreatedAt:    now,
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clients (id, name, email, business_name, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, c.ID, c.Name, c.Email, c.BusinessName, c.CreatedAt)
	if err != nil {
		return domain.Client{}, mapClientInsert(err)
	}
	return c, nil
}

func (r *clientsRepo) CountClients(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&n); err != nil {
		return 0, mapUnavailable(err)
	}
	return n, nil
}
