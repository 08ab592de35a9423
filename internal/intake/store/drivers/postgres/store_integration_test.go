//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/intake/internal/intake/domain"
	"github.com/aussiebroadwan/intake/internal/intake/store"
	"github.com/aussiebroadwan/intake/internal/intake/store/drivers/postgres"
	"github.com/aussiebroadwan/intake/pkg/idx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

func newTestStore(t *testing.T, opts ...postgres.Option) *postgres.Store {
	t.Helper()
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("intake"),
		tcpostgres.WithUsername("intake"),
		tcpostgres.WithPassword("intake"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := postgres.NewStore(dsn, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestPostgresClients(t *testing.T) {
	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := newTestStore(t, postgres.WithClock(func() time.Time { return clock }))
	ctx := context.Background()

	for _, d := range []domain.Draft{
		{Name: "First", Email: "one@a.co", BusinessName: "One"},
		{Name: "Second", Email: "two@a.co", BusinessName: "Two"},
		{Name: "Third", Email: "three@a.co", BusinessName: "Three"},
	} {
		_, err := s.Clients().CreateClient(ctx, d)
		require.NoError(t, err)
		clock = clock.Add(time.Second)
	}

	list, err := s.Clients().ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "Third", list[0].Name)
	require.Equal(t, "Second", list[1].Name)
	require.Equal(t, "First", list[2].Name)

	t.Run("email conflict", func(t *testing.T) {
		_, err := s.Clients().CreateClient(ctx, domain.Draft{Name: "Dup", Email: "one@a.co", BusinessName: "Fresh"})
		var conflict *store.ConflictError
		require.ErrorAs(t, err, &conflict)
		require.Equal(t, domain.FieldEmail, conflict.Field)
		require.Equal(t, "clients_email_key", conflict.Constraint)
	})

	t.Run("business name conflict", func(t *testing.T) {
		_, err := s.Clients().CreateClient(ctx, domain.Draft{Name: "Dup", Email: "fresh@a.co", BusinessName: "Two"})
		var conflict *store.ConflictError
		require.ErrorAs(t, err, &conflict)
		require.Equal(t, domain.FieldBusinessName, conflict.Field)
	})

	n, err := s.Clients().CountClients(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 3, n)
}

func TestPostgresOperatorsAndConfirmations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	op := domain.Operator{ID: idx.New().String(), Email: "ops@firm.com", PasswordHash: "h", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.Operators().CreateOperator(ctx, op))
	require.ErrorIs(t, s.Operators().CreateOperator(ctx, op), store.ErrAlreadyExists)

	c := domain.Confirmation{ID: idx.New().String(), OperatorID: op.ID, TokenHash: "t", ExpiresAt: now.Add(-time.Minute), CreatedAt: now}
	require.NoError(t, s.Confirmations().CreateConfirmation(ctx, c))

	got, err := s.Confirmations().GetConfirmationByTokenHash(ctx, "t")
	require.NoError(t, err)
	require.Equal(t, c, got)

	require.NoError(t, s.Operators().MarkOperatorConfirmed(ctx, op.ID, now))
	loaded, err := s.Operators().GetOperatorByEmail(ctx, "ops@firm.com")
	require.NoError(t, err)
	require.True(t, loaded.Confirmed())

	deleted, err := s.Confirmations().DeleteExpiredConfirmations(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, deleted)
}
