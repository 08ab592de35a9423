package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/intake/internal/intake/store"
)

type txStore struct {
	tx  *sql.Tx
	q   *queries
	now func() time.Time
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the caller commits or rolls back and the DB stays open.
func (t *txStore) Close() error { return nil }

func (t *txStore) Ping(ctx context.Context) error { return nil }

// Nested transactions are not supported.
func (t *txStore) Tx(ctx context.Context) (store.Tx, error) { return nil, sql.ErrTxDone }

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

// Migrations must be applied before a transaction starts.
func (t *txStore) ApplyMigrations() error { return nil }

func (t *txStore) Clients() store.Clients             { return &clientsRepo{q: t.q, now: t.now} }
func (t *txStore) Operators() store.Operators         { return &operatorsRepo{q: t.q} }
func (t *txStore) Confirmations() store.Confirmations { return &confirmationsRepo{q: t.q} }

var _ store.Tx = (*txStore)(nil)
