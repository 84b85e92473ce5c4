package rarity

import (
	"errors"
	"testing"
)

var seedRarities = []Rarity{
	{ID: 4, Title: "Legendary", Weight: 0.05},
	{ID: 1, Title: "Common", Weight: 0.6},
	{ID: 3, Title: "Epic", Weight: 0.1},
	{ID: 2, Title: "Rare", Weight: 0.25},
}

func TestTable_WeightOf(t *testing.T) {
	table, err := NewTable(seedRarities)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}

	tests := []struct {
		name    string
		id      int64
		want    float64
		wantErr error
	}{
		{name: "Common", id: 1, want: 0.6},
		{name: "Legendary", id: 4, want: 0.05},
		{name: "Unknown", id: 99, wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.WeightOf(tt.id)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("WeightOf() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("WeightOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewTable_Validation(t *testing.T) {
	tests := []struct {
		name     string
		rarities []Rarity
		wantErr  error
	}{
		{name: "zero weight", rarities: []Rarity{{ID: 1, Weight: 0}}, wantErr: ErrInvalidWeight},
		{name: "negative weight", rarities: []Rarity{{ID: 1, Weight: -0.2}}, wantErr: ErrInvalidWeight},
		{name: "weight above one", rarities: []Rarity{{ID: 1, Weight: 1.5}}, wantErr: ErrInvalidWeight},
		{name: "duplicate id", rarities: []Rarity{{ID: 1, Weight: 0.5}, {ID: 1, Weight: 0.2}}, wantErr: ErrDuplicate},
		{name: "weight of one", rarities: []Rarity{{ID: 1, Weight: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.rarities)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewTable() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTable_AllIsOrderedCopy(t *testing.T) {
	table, err := NewTable(seedRarities)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}

	all := table.All()
	for i := 1; i < len(all); i++ {
		if all[i-1].ID >= all[i].ID {
			t.Fatalf("All() not ordered by id: %v", all)
		}
	}

	all[0].Weight = 1
	if w, _ := table.WeightOf(all[0].ID); w == 1 {
		t.Errorf("All() exposed internal state")
	}
}
