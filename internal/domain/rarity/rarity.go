package rarity

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrNotFound      = errors.New("rarity not found")
	ErrInvalidWeight = errors.New("rarity weight must be in (0, 1]")
	ErrDuplicate     = errors.New("duplicate rarity id")
)

type Rarity struct {
	ID          int64
	Title       string
	Description string
	Weight      float64
}

// Table is the read-only registry of rarity weights used during draws.
type Table struct {
	byID map[int64]Rarity
	all  []Rarity
}

func NewTable(rarities []Rarity) (*Table, error) {
	t := &Table{
		byID: make(map[int64]Rarity, len(rarities)),
		all:  make([]Rarity, 0, len(rarities)),
	}

	for _, r := range rarities {
		if r.Weight <= 0 || r.Weight > 1 {
			return nil, fmt.Errorf("%w: %s has %v", ErrInvalidWeight, r.Title, r.Weight)
		}
		if _, exists := t.byID[r.ID]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicate, r.ID)
		}
		t.byID[r.ID] = r
		t.all = append(t.all, r)
	}

	sort.Slice(t.all, func(i, j int) bool {
		return t.all[i].ID < t.all[j].ID
	})

	return t, nil
}

func (t *Table) WeightOf(id int64) (float64, error) {
	r, ok := t.byID[id]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return r.Weight, nil
}

func (t *Table) Get(id int64) (Rarity, error) {
	r, ok := t.byID[id]
	if !ok {
		return Rarity{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return r, nil
}

// All returns the rarities ordered by id. The slice is a copy.
func (t *Table) All() []Rarity {
	out := make([]Rarity, len(t.all))
	copy(out, t.all)
	return out
}

func (t *Table) Len() int {
	return len(t.all)
}
