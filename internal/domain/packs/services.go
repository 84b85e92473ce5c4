package packs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/arcana-cards/arcana/internal/domain/transactor"
)

type Service struct {
	store  Store
	tx     transactor.Transactor
	clock  Clock
	now    func() time.Time
	logger *slog.Logger
}

func NewService(store Store, tx transactor.Transactor, clock Clock) *Service {
	return &Service{
		store:  store,
		tx:     tx,
		clock:  clock,
		now:    time.Now,
		logger: slog.With(slog.String("service", "packs")),
	}
}

// WithNow replaces the wall clock, for tests and replays.
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Clock() Clock {
	return s.clock
}

// Ensure creates the initial status for a user if none exists.
func (s *Service) Ensure(ctx context.Context, userID string) error {
	created, err := s.store.Create(ctx, ptr(s.clock.Initial(userID, s.now())))
	if err != nil {
		return fmt.Errorf("failed to create pack status: %w", err)
	}
	if created {
		s.logger.Info("Pack status created", slog.String("user_id", userID))
	}
	return nil
}

// Status returns the regenerated status, persisting it when intervals elapsed.
func (s *Service) Status(ctx context.Context, userID string) (*Status, error) {
	var result *Status
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		status, err := s.load(ctx, userID)
		if err != nil {
			return err
		}
		result = status
		return nil
	})
	return result, err
}

// CheckAndConsume regenerates then takes one pack. It joins the caller's
// transaction when there is one, so a later failure in the same claim also
// rolls back the consumption.
func (s *Service) CheckAndConsume(ctx context.Context, userID string) (*Status, error) {
	var result *Status
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		status, err := s.load(ctx, userID)
		if err != nil {
			return err
		}

		consumed, err := s.clock.Consume(*status, s.now())
		if err != nil {
			result = status
			return err
		}

		if err := s.store.Save(ctx, &consumed); err != nil {
			return fmt.Errorf("failed to save pack status: %w", err)
		}
		result = &consumed
		return nil
	})
	if errors.Is(err, ErrNoPacksAvailable) {
		return result, err
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("Pack consumed",
		slog.String("user_id", userID),
		slog.Int("packs_left", result.PacksAvailable))
	return result, nil
}

// load locks the row, recovering a missing status with the initial state.
func (s *Service) load(ctx context.Context, userID string) (*Status, error) {
	status, err := s.store.GetForUpdate(ctx, userID)
	if errors.Is(err, ErrStatusNotFound) {
		s.logger.Warn("Pack status missing, creating initial state", slog.String("user_id", userID))
		if err := s.Ensure(ctx, userID); err != nil {
			return nil, err
		}
		status, err = s.store.GetForUpdate(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load pack status: %w", err)
	}

	regenerated, changed := s.clock.Regenerate(*status, s.now())
	if !changed {
		return status, nil
	}

	if err := s.store.Save(ctx, &regenerated); err != nil {
		return nil, fmt.Errorf("failed to save regenerated pack status: %w", err)
	}
	s.logger.Debug("Packs regenerated",
		slog.String("user_id", userID),
		slog.Int("packs", regenerated.PacksAvailable))

	return &regenerated, nil
}

func ptr[T any](v T) *T {
	return &v
}
