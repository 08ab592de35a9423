package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/intake/internal/intake/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrUnavailable wraps transport, connection and authentication failures
	// reaching the database.
	ErrUnavailable = errors.New("store: unavailable")
)

// Store is the root data access interface implemented by the sqlite and
// postgres drivers. Repositories hang off it so transactions can hand out the
// same repositories bound to a Tx.
type Store interface {
	Clients() Clients
	Operators() Operators
	Confirmations() Confirmations

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Clients interface {
	// ListClients returns every client, newest CreatedAt first with ID
	// descending as the tie-break. Connection failures wrap ErrUnavailable.
	ListClients(ctx context.Context) ([]domain.Client, error)

	// CreateClient inserts d, assigning ID and CreatedAt. A unique violation
	// on email or business_name is returned as *ConflictError.
	CreateClient(ctx context.Context, d domain.Draft) (domain.Client, error)

	CountClients(ctx context.Context) (int64, error)
}

type Operators interface {
	GetOperatorByID(ctx context.Context, id string) (domain.Operator, error)
	GetOperatorByEmail(ctx context.Context, email string) (domain.Operator, error)

	// CreateOperator inserts o. A duplicate email wraps ErrAlreadyExists.
	CreateOperator(ctx context.Context, o domain.Operator) error

	// MarkOperatorConfirmed sets confirmed_at and bumps updated_at.
	MarkOperatorConfirmed(ctx context.Context, id string, at time.Time) error
}

type Confirmations interface {
	CreateConfirmation(ctx context.Context, c domain.Confirmation) error
	GetConfirmationByTokenHash(ctx context.Context, hash string) (domain.Confirmation, error)
	DeleteConfirmationsForOperator(ctx context.Context, operatorID string) error

	// DeleteExpiredConfirmations removes tokens expired at now and returns
	// how many were deleted.
	DeleteExpiredConfirmations(ctx context.Context, now time.Time) (int64, error)
}
