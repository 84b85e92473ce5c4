package opening

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/arcana-cards/arcana/internal/domain/catalog"
	"github.com/arcana-cards/arcana/internal/domain/rarity"
)

var ErrInvalidCount = errors.New("draw count must be at least 1")

type Catalog interface {
	CardsInSet(ctx context.Context, setID int64) ([]catalog.Card, error)
	RarityTable(ctx context.Context) (*rarity.Table, error)
}

// Engine draws cards from a set with replacement. Each card's chance is its
// rarity weight over the sum of weights of every card in the set, so weights
// are per card and a set full of common cards is dominated by them.
type Engine struct {
	catalog Catalog
	random  RandomSource
}

func NewEngine(catalog Catalog, random RandomSource) *Engine {
	return &Engine{
		catalog: catalog,
		random:  random,
	}
}

type pool struct {
	cards      []catalog.Card
	cumulative []float64
}

func (e *Engine) Draw(ctx context.Context, setID int64, count int) ([]catalog.Card, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, count)
	}

	p, err := e.buildPool(ctx, setID)
	if err != nil {
		return nil, err
	}

	drawn := make([]catalog.Card, count)
	for i := range drawn {
		drawn[i] = p.pick(e.random.Float64())
	}
	return drawn, nil
}

// Odds returns each card's probability for a single draw from the set.
func (e *Engine) Odds(ctx context.Context, setID int64) (map[int64]float64, error) {
	p, err := e.buildPool(ctx, setID)
	if err != nil {
		return nil, err
	}

	total := p.cumulative[len(p.cumulative)-1]
	odds := make(map[int64]float64, len(p.cards))
	prev := 0.0
	for i, card := range p.cards {
		odds[card.ID] += (p.cumulative[i] - prev) / total
		prev = p.cumulative[i]
	}
	return odds, nil
}

func (e *Engine) buildPool(ctx context.Context, setID int64) (*pool, error) {
	cards, err := e.catalog.CardsInSet(ctx, setID)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("%w: %d", catalog.ErrEmptySet, setID)
	}

	table, err := e.catalog.RarityTable(ctx)
	if err != nil {
		return nil, err
	}

	p := &pool{
		cards:      cards,
		cumulative: make([]float64, len(cards)),
	}
	sum := 0.0
	for i, card := range cards {
		w, err := table.WeightOf(card.RarityID)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", card.ID, err)
		}
		sum += w
		p.cumulative[i] = sum
	}
	return p, nil
}

// pick maps u in [0, 1) onto the cumulative weights.
func (p *pool) pick(u float64) catalog.Card {
	target := u * p.cumulative[len(p.cumulative)-1]
	i := sort.Search(len(p.cumulative), func(i int) bool {
		return p.cumulative[i] > target
	})
	if i == len(p.cumulative) {
		i--
	}
	return p.cards[i]
}
