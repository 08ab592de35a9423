package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/intake/internal/intake/domain"
	"github.com/aussiebroadwan/intake/internal/intake/store"
	"github.com/aussiebroadwan/intake/pkg/idx"
)

type clientsRepo struct {
	q   *queries
	now func() time.Time
}

func (r *clientsRepo) ListClients(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.q.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list clients: %w", mapUnavailable(err))
	}

	clients := make([]domain.Client, len(rows))
	for i, row := range rows {
		clients[i] = mapClient(row)
	}
	return clients, nil
}

func (r *clientsRepo) CreateClient(ctx context.Context, d domain.Draft) (domain.Client, error) {
	now := r.now().UTC()
	row := clientRow{
		ID:           idx.NewAt(now).String(),
		Name:         d.Name,
		Email:        d.Email,
		BusinessName: d.BusinessName,
		CreatedAt:    toMillis(now),
	}

	if err := r.q.CreateClient(ctx, row); err != nil {
		if isUniqueViolation(err) {
			return domain.Client{}, r.conflict(ctx, d, err)
		}
		return domain.Client{}, fmt.Errorf("sqlite: create client: %w", mapUnavailable(err))
	}
	return mapClient(row), nil
}

// conflict attributes a unique violation to a field. SQLite reports
// whichever index it checked first, so a draft duplicating both fields is
// resolved to email by looking it up; otherwise the message names the column.
func (r *clientsRepo) conflict(ctx context.Context, d domain.Draft, cause error) error {
	if exists, err := r.q.ClientEmailExists(ctx, d.Email); err == nil && exists {
		return store.NewClientConflict(domain.FieldEmail, "", cause)
	}
	return store.NewClientConflict("", "", cause)
}

func (r *clientsRepo) CountClients(ctx context.Context) (int64, error) {
	n, err := r.q.CountClients(ctx)
	if err != nil {
		return 0, mapUnavailable(err)
	}
	return n, nil
}

func mapClient(row clientRow) domain.Client {
	return domain.Client{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		BusinessName: row.BusinessName,
		CreatedAt:    fromMillis(row.CreatedAt),
	}
}
