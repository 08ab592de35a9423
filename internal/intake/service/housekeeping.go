package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/intake/internal/intake/store"
)

// HousekeepingService periodically deletes expired confirmation tokens,
// evicts idle intake workflows and forgets expired sign-outs.
type HousekeepingService struct {
	Store    store.Store
	Intake   *IntakeService
	Auth     *AuthService
	Logger   *slog.Logger
	Interval time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

// NewHousekeepingService creates a housekeeping service. A non-positive
// interval defaults to one hour.
func NewHousekeepingService(s store.Store, intake *IntakeService, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &HousekeepingService{
		Store:    s,
		Intake:   intake,
		Logger:   logger,
		Interval: interval,
		Now:      time.Now,
	}
}

// Run cleans up immediately and then on every tick until ctx is done.
func (s *HousekeepingService) Run(ctx context.Context) error {
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
	defer s.Logger.Info("housekeeping service stopped")

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(ctx)
	for {
		select {
		case <-ticker.C:
			s.Cleanup(ctx)
		case <-ctx.Done():
			return nil
		}
	}
}

// Cleanup runs one pass. Each step is independent; a failure in one does
// not stop the other.
func (s *HousekeepingService) Cleanup(ctx context.Context) {
	now := s.Now().UTC()

	deleted, err := s.Store.Confirmations().DeleteExpiredConfirmations(ctx, now)
	if err != nil {
		s.Logger.Error("failed to delete expired confirmations", "error", err)
	} else if deleted > 0 {
		s.Logger.Info("deleted expired confirmations", "count", deleted)
	}

	if s.Intake != nil {
		if n := s.Intake.EvictIdle(now); n > 0 {
			s.Logger.Info("evicted idle workflows", "count", n)
		}
	}

	if s.Auth != nil {
		if n := s.Auth.PruneRevoked(now); n > 0 {
			s.Logger.Debug("pruned expired revocations", "count", n)
		}
	}
}
