package claims

import (
	"context"
	"errors"
	"log/slog"

	"github.com/arcana-cards/arcana/internal/domain/catalog"
	"github.com/arcana-cards/arcana/internal/domain/collection"
	"github.com/arcana-cards/arcana/internal/domain/packs"
	"github.com/arcana-cards/arcana/internal/domain/transactor"
)

const DefaultCardsPerPack = 5

type Result struct {
	Cards  []collection.MergedCard
	Status packs.Status
}

type Service struct {
	packs        PackConsumer
	drawer       Drawer
	ledger       Ledger
	provisioner  CollectionProvisioner
	tx           transactor.Transactor
	cardsPerPack int
	logger       *slog.Logger
}

func NewService(p PackConsumer, d Drawer, l Ledger, cp CollectionProvisioner, tx transactor.Transactor, cardsPerPack int) *Service {
	if cardsPerPack < 1 {
		cardsPerPack = DefaultCardsPerPack
	}
	return &Service{
		packs:        p,
		drawer:       d,
		ledger:       l,
		provisioner:  cp,
		tx:           tx,
		cardsPerPack: cardsPerPack,
		logger:       slog.With(slog.String("service", "claims")),
	}
}

func (s *Service) CardsPerPack() int {
	return s.cardsPerPack
}

// OpenPack consumes one pack, draws from the set and merges the cards into
// the user's collection as a single transaction. Nothing is consumed when any
// step fails. With ErrNoPacksAvailable the result carries the current status.
func (s *Service) OpenPack(ctx context.Context, userID string, setID int64) (*Result, error) {
	var result Result
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		status, err := s.packs.CheckAndConsume(ctx, userID)
		if status != nil {
			result.Status = *status
		}
		if err != nil {
			return err
		}

		drawn, err := s.drawer.Draw(ctx, setID, s.cardsPerPack)
		if err != nil {
			return err
		}

		result.Cards, err = s.merge(ctx, userID, drawn)
		return err
	})

	switch {
	case errors.Is(err, packs.ErrNoPacksAvailable):
		s.logger.Info("No packs available",
			slog.String("user_id", userID),
			slog.Time("last_opened_at", result.Status.LastOpenedAt))
		return &Result{Status: result.Status}, err
	case err != nil:
		s.logger.Error("Pack opening failed",
			slog.String("user_id", userID),
			slog.Int64("set_id", setID),
			slog.Any("error", err))
		return nil, err
	}

	newCards := 0
	for _, c := range result.Cards {
		if c.IsNew {
			newCards++
		}
	}
	s.logger.Info("Pack opened",
		slog.String("user_id", userID),
		slog.Int64("set_id", setID),
		slog.Int("cards", len(result.Cards)),
		slog.Int("new", newCards),
		slog.Int("packs_left", result.Status.PacksAvailable))
	return &result, nil
}

// merge recreates a missing collection once before giving up.
func (s *Service) merge(ctx context.Context, userID string, drawn []catalog.Card) ([]collection.MergedCard, error) {
	var merged []collection.MergedCard
	coll, err := s.ledger.Get(ctx, userID)
	if err == nil {
		merged, err = s.ledger.Merge(ctx, coll.ID, drawn)
	}
	if !errors.Is(err, collection.ErrNoCollection) {
		return merged, err
	}

	s.logger.Warn("Collection missing, recreating", slog.String("user_id", userID))
	coll, err = s.provisioner.EnsureCollection(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.ledger.Merge(ctx, coll.ID, drawn)
}
