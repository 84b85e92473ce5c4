package collection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/arcana-cards/arcana/internal/domain/catalog"
	"github.com/arcana-cards/arcana/internal/domain/transactor"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoCollection     = errors.New("collection not found")
	ErrConcurrentUpdate = errors.New("concurrent collection update")
)

const maxAddAttempts = 2

type Catalog interface {
	Sets(ctx context.Context) ([]catalog.CardSet, error)
	CardsInSet(ctx context.Context, setID int64) ([]catalog.Card, error)
}

type Ledger struct {
	store   Store
	tx      transactor.Transactor
	catalog Catalog
	logger  *slog.Logger
}

func NewLedger(store Store, tx transactor.Transactor, catalog Catalog) *Ledger {
	return &Ledger{
		store:   store,
		tx:      tx,
		catalog: catalog,
		logger:  slog.With(slog.String("service", "collection")),
	}
}

func (l *Ledger) Get(ctx context.Context, userID string) (*Collection, error) {
	return l.store.GetByUserID(ctx, userID)
}

// Ensure returns the user's collection, creating it on first use.
func (l *Ledger) Ensure(ctx context.Context, userID string) (*Collection, error) {
	created, err := l.store.Create(ctx, &Collection{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}
	if created {
		l.logger.Info("Collection created", slog.String("user_id", userID))
	}
	return l.store.GetByUserID(ctx, userID)
}

// Merge adds the drawn cards to the collection. All cards are checked against
// the ownership snapshot taken before the first one is applied, so a card
// drawn twice in one batch is new for both occurrences if it was not owned.
func (l *Ledger) Merge(ctx context.Context, collectionID int64, drawn []catalog.Card) ([]MergedCard, error) {
	var merged []MergedCard
	err := l.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := l.store.Lock(ctx, collectionID); err != nil {
			return err
		}

		ownedIDs, err := l.store.OwnedCardIDs(ctx, collectionID)
		if err != nil {
			return fmt.Errorf("failed to snapshot collection: %w", err)
		}
		owned := make(map[int64]struct{}, len(ownedIDs))
		for _, id := range ownedIDs {
			owned[id] = struct{}{}
		}

		merged = make([]MergedCard, 0, len(drawn))
		for _, card := range drawn {
			quantity, err := l.add(ctx, collectionID, card.ID)
			if err != nil {
				return err
			}
			_, had := owned[card.ID]
			merged = append(merged, MergedCard{
				Card:        card,
				IsNew:       !had,
				NewQuantity: quantity,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.logger.Debug("Cards merged",
		slog.Int64("collection_id", collectionID),
		slog.Int("cards", len(merged)))
	return merged, nil
}

// add increments the entry or creates it. A lost insert race is retried once
// as an increment.
func (l *Ledger) add(ctx context.Context, collectionID, cardID int64) (int64, error) {
	for attempt := 1; attempt <= maxAddAttempts; attempt++ {
		quantity, found, err := l.store.Increment(ctx, collectionID, cardID)
		if err != nil {
			return 0, fmt.Errorf("failed to increment card %d: %w", cardID, err)
		}
		if found {
			return quantity, nil
		}

		inserted, err := l.store.Insert(ctx, collectionID, cardID)
		if err != nil {
			return 0, fmt.Errorf("failed to insert card %d: %w", cardID, err)
		}
		if inserted {
			return 1, nil
		}

		l.logger.Warn("Collection entry insert lost a race",
			slog.Int64("collection_id", collectionID),
			slog.Int64("card_id", cardID),
			slog.Int("attempt", attempt))
	}
	return 0, fmt.Errorf("%w: card %d in collection %d", ErrConcurrentUpdate, cardID, collectionID)
}

func (l *Ledger) Entries(ctx context.Context, userID string) ([]OwnedCard, error) {
	c, err := l.store.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return l.store.ListOwned(ctx, c.ID)
}

// Progress reports owned and total distinct cards per set, ordered by set id.
func (l *Ledger) Progress(ctx context.Context, userID string) ([]SetProgress, error) {
	c, err := l.store.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	sets, err := l.catalog.Sets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sets: %w", err)
	}

	progress := make([]SetProgress, len(sets))
	var owned map[int64]int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		owned, err = l.store.CountOwnedBySet(gctx, c.ID)
		return err
	})
	for i, set := range sets {
		g.Go(func() error {
			cards, err := l.catalog.CardsInSet(gctx, set.ID)
			if err != nil && !errors.Is(err, catalog.ErrEmptySet) {
				return err
			}
			progress[i] = SetProgress{Set: set, Total: len(cards)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compute progress: %w", err)
	}

	for i := range progress {
		progress[i].Owned = owned[progress[i].Set.ID]
	}
	sort.Slice(progress, func(i, j int) bool {
		return progress[i].Set.ID < progress[j].Set.ID
	})
	return progress, nil
}
