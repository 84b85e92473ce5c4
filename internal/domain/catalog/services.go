package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/arcana-cards/arcana/internal/domain/rarity"
	lru "github.com/hashicorp/golang-lru"
	"github.com/sahilm/fuzzy"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrEmptySet means the requested set has no cards and cannot be drawn from.
	ErrEmptySet = errors.New("card set has no cards")
	// ErrSetNotFound is returned by repositories for unknown set ids.
	ErrSetNotFound = errors.New("card set not found")
)

const DefaultCacheSize = 256

type Service struct {
	repo   Repository
	cache  *lru.Cache
	group  singleflight.Group
	logger *slog.Logger

	mu       sync.RWMutex
	rarities *rarity.Table
}

func NewService(repo Repository, cacheSize int) (*Service, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog cache: %w", err)
	}

	return &Service{
		repo:   repo,
		cache:  cache,
		logger: slog.With(slog.String("service", "catalog")),
	}, nil
}

// RarityTable returns the rarity registry, loading it once per purge.
func (s *Service) RarityTable(ctx context.Context) (*rarity.Table, error) {
	s.mu.RLock()
	table := s.rarities
	s.mu.RUnlock()
	if table != nil {
		return table, nil
	}

	v, err, _ := s.group.Do("rarities", func() (interface{}, error) {
		s.mu.RLock()
		loaded := s.rarities
		s.mu.RUnlock()
		if loaded != nil {
			return loaded, nil
		}

		rarities, err := s.repo.ListRarities(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load rarities: %w", err)
		}
		return rarity.NewTable(rarities)
	})
	if err != nil {
		return nil, err
	}

	table = v.(*rarity.Table)
	s.mu.Lock()
	s.rarities = table
	s.mu.Unlock()
	return table, nil
}

// CardsInSet returns every card of the set. The result is a copy the caller may keep.
func (s *Service) CardsInSet(ctx context.Context, setID int64) ([]Card, error) {
	key := setKey(setID)
	if cached, ok := s.cache.Get(key); ok {
		return cloneCards(cached.([]Card)), nil
	}

	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		return s.loadSet(ctx, setID)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("Shared catalog load", slog.Int64("set_id", setID))
	}

	return cloneCards(v.([]Card)), nil
}

func (s *Service) loadSet(ctx context.Context, setID int64) ([]Card, error) {
	// another load may have finished between the cache miss and this call
	if cached, ok := s.cache.Get(setKey(setID)); ok {
		return cached.([]Card), nil
	}

	if _, err := s.repo.GetSet(ctx, setID); err != nil {
		return nil, err
	}

	table, err := s.RarityTable(ctx)
	if err != nil {
		return nil, err
	}

	cards, err := s.repo.ListCardsBySet(ctx, setID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cards for set %d: %w", setID, err)
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrEmptySet, setID)
	}

	for _, card := range cards {
		if _, err := table.WeightOf(card.RarityID); err != nil {
			return nil, fmt.Errorf("card %d (%s): %w", card.ID, card.Title, err)
		}
	}

	s.cache.Add(setKey(setID), cards)
	s.logger.Info("Card set loaded",
		slog.Int64("set_id", setID),
		slog.Int("cards", len(cards)))

	return cards, nil
}

func (s *Service) Sets(ctx context.Context) ([]CardSet, error) {
	return s.repo.ListSets(ctx)
}

// Search fuzzy-matches card titles, best match first.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]Card, error) {
	cards, err := s.repo.ListCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	titles := make([]string, len(cards))
	for i, card := range cards {
		titles[i] = card.Title
	}

	matches := fuzzy.Find(query, titles)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	results := make([]Card, 0, len(matches))
	for _, m := range matches {
		results = append(results, cards[m.Index])
	}
	return results, nil
}

func (s *Service) Invalidate(setID int64) {
	s.cache.Remove(setKey(setID))
}

// Purge drops every cached set and the rarity table.
func (s *Service) Purge() {
	s.cache.Purge()
	s.mu.Lock()
	s.rarities = nil
	s.mu.Unlock()
}

func setKey(setID int64) string {
	return "set:" + strconv.FormatInt(setID, 10)
}

func cloneCards(cards []Card) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}
