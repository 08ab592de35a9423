package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/intake/internal/intake/domain"
	"github.com/aussiebroadwan/intake/internal/intake/store"
	"github.com/aussiebroadwan/intake/internal/intake/store/drivers/sqlite"
	"github.com/aussiebroadwan/intake/pkg/idx"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(t *testing.T, opts ...sqlite.Option) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:", opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func jane() domain.Draft {
	return domain.Draft{Name: "Jane Doe", Email: "jane@acme.com", BusinessName: "Acme"}
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intake.db")

	s, err := sqlite.NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Close())

	s, err = sqlite.NewStore(path)
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.ApplyMigrations())
}

func TestCreateClientAssignsIDAndTimestamp(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)}
	s := newTestStore(t, sqlite.WithClock(clock.Now))
	ctx := context.Background()

	c, err := s.Clients().CreateClient(ctx, jane())
	require.NoError(t, err)

	_, err = idx.Parse(c.ID)
	require.NoError(t, err)
	require.Equal(t, clock.t, c.CreatedAt)
	require.Equal(t, "Jane Doe", c.Name)
	require.Equal(t, "jane@acme.com", c.Email)
	require.Equal(t, "Acme", c.BusinessName)

	list, err := s.Clients().ListClients(ctx)
	require.NoError(t, err)
	require.Equal(t, []domain.Client{c}, list)
}

func TestListClientsNewestFirst(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	s := newTestStore(t, sqlite.WithClock(clock.Now))
	ctx := context.Background()

	var names []string
	for _, d := range []domain.Draft{
		{Name: "First", Email: "one@a.co", BusinessName: "One"},
		{Name: "Second", Email: "two@a.co", BusinessName: "Two"},
		{Name: "Third", Email: "three@a.co", BusinessName: "Three"},
	} {
		_, err := s.Clients().CreateClient(ctx, d)
		require.NoError(t, err)
		clock.Advance(time.Second)
	}

	list, err := s.Clients().ListClients(ctx)
	require.NoError(t, err)
	for _, c := range list {
		names = append(names, c.Name)
	}
	require.Equal(t, []string{"Third", "Second", "First"}, names)
}

func TestListClientsSameInstantUsesIDOrder(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	s := newTestStore(t, sqlite.WithClock(clock.Now))
	ctx := context.Background()

	a, err := s.Clients().CreateClient(ctx, domain.Draft{Name: "Ann", Email: "a@a.co", BusinessName: "A"})
	require.NoError(t, err)
	b, err := s.Clients().CreateClient(ctx, domain.Draft{Name: "Bob", Email: "b@a.co", BusinessName: "B"})
	require.NoError(t, err)

	list, err := s.Clients().ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, b.ID, list[0].ID)
	require.Equal(t, a.ID, list[1].ID)
}

func TestListClientsEmpty(t *testing.T) {
	s := newTestStore(t)

	list, err := s.Clients().ListClients(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestCreateClientConflicts(t *testing.T) {
	tests := []struct {
		name  string
		draft domain.Draft
		field domain.Field
	}{
		{"email", domain.Draft{Name: "Other", Email: "jane@acme.com", BusinessName: "Other Co"}, domain.FieldEmail},
		{"business name", domain.Draft{Name: "Other", Email: "other@acme.com", BusinessName: "Acme"}, domain.FieldBusinessName},
		{"both fields resolve to email", jane(), domain.FieldEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			ctx := context.Background()

			_, err := s.Clients().CreateClient(ctx, jane())
			require.NoError(t, err)

			_, err = s.Clients().CreateClient(ctx, tt.draft)
			var conflict *store.ConflictError
			require.ErrorAs(t, err, &conflict)
			require.Equal(t, tt.field, conflict.Field)
			require.ErrorIs(t, err, store.ErrAlreadyExists)

			n, err := s.Clients().CountClients(ctx)
			require.NoError(t, err)
			require.EqualValues(t, 1, n)
		})
	}
}

func TestOperators(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	op := domain.Operator{
		ID:           idx.New().String(),
		Email:        "ops@firm.com",
		PasswordHash: "$argon2id$fake",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.Operators().CreateOperator(ctx, op))

	got, err := s.Operators().GetOperatorByEmail(ctx, "ops@firm.com")
	require.NoError(t, err)
	require.Equal(t, op, got)
	require.False(t, got.Confirmed())

	dup := op
	dup.ID = idx.New().String()
	err = s.Operators().CreateOperator(ctx, dup)
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	confirmedAt := now.Add(time.Minute)
	require.NoError(t, s.Operators().MarkOperatorConfirmed(ctx, op.ID, confirmedAt))

	got, err = s.Operators().GetOperatorByID(ctx, op.ID)
	require.NoError(t, err)
	require.True(t, got.Confirmed())
	require.Equal(t, confirmedAt, *got.ConfirmedAt)
	require.Equal(t, confirmedAt, got.UpdatedAt)

	_, err = s.Operators().GetOperatorByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, s.Operators().MarkOperatorConfirmed(ctx, "missing", now), store.ErrNotFound)
}

func TestConfirmations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	op := domain.Operator{ID: idx.New().String(), Email: "ops@firm.com", PasswordHash: "x", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.Operators().CreateOperator(ctx, op))

	live := domain.Confirmation{ID: idx.New().String(), OperatorID: op.ID, TokenHash: "live", ExpiresAt: now.Add(time.Hour), CreatedAt: now}
	stale := domain.Confirmation{ID: idx.New().String(), OperatorID: op.ID, TokenHash: "stale", ExpiresAt: now.Add(-time.Hour), CreatedAt: now}
	require.NoError(t, s.Confirmations().CreateConfirmation(ctx, live))
	require.NoError(t, s.Confirmations().CreateConfirmation(ctx, stale))

	got, err := s.Confirmations().GetConfirmationByTokenHash(ctx, "live")
	require.NoError(t, err)
	require.Equal(t, live, got)

	n, err := s.Confirmations().DeleteExpiredConfirmations(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	_, err = s.Confirmations().GetConfirmationByTokenHash(ctx, "stale")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Confirmations().DeleteConfirmationsForOperator(ctx, op.ID))
	_, err = s.Confirmations().GetConfirmationByTokenHash(ctx, "live")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxRollsBack(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Clients().CreateClient(ctx, jane()); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	n, err := s.Clients().CountClients(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	err = s.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Clients().CreateClient(ctx, jane())
		return err
	})
	require.NoError(t, err)

	n, err = s.Clients().CountClients(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestClosedStoreIsUnavailable(t *testing.T) {
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Close())

	_, err = s.Clients().ListClients(context.Background())
	require.ErrorIs(t, err, store.ErrUnavailable)
	require.ErrorIs(t, s.Ping(context.Background()), store.ErrUnavailable)
}
