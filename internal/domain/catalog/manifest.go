package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/arcana-cards/arcana/internal/domain/rarity"
	"github.com/arcana-cards/arcana/internal/domain/transactor"
	"github.com/pelletier/go-toml/v2"
)

// Manifest describes catalog reference data in TOML:
//
//	[[rarity]]
//	title = "Common"
//	weight = 0.6
//
//	[[set]]
//	title = "Unleashed Arcana"
//	  [[set.card]]
//	  title = "Mentor Latra"
//	  rarity = "Legendary"
type Manifest struct {
	Rarities []ManifestRarity `toml:"rarity"`
	Sets     []ManifestSet    `toml:"set"`
}

type ManifestRarity struct {
	Title       string  `toml:"title"`
	Description string  `toml:"description"`
	Weight      float64 `toml:"weight"`
}

type ManifestSet struct {
	Title       string         `toml:"title"`
	Description string         `toml:"description"`
	Image       string         `toml:"image"`
	Cards       []ManifestCard `toml:"card"`
}

type ManifestCard struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Image       string `toml:"image"`
	Rarity      string `toml:"rarity"`
}

type ImportReport struct {
	Rarities int
	Sets     int
	Cards    int
}

func DecodeManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	return &m, nil
}

func LoadManifest(path string) (*Manifest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer file.Close()

	return DecodeManifest(file)
}

// Validate checks weights and that every card names a declared rarity.
// Card titles are unique within a set; different sets may reuse them.
func (m *Manifest) Validate() error {
	rarities := make([]rarity.Rarity, 0, len(m.Rarities))
	titles := make(map[string]bool, len(m.Rarities))
	for i, r := range m.Rarities {
		if r.Title == "" {
			return fmt.Errorf("rarity #%d has no title", i+1)
		}
		titles[r.Title] = true
		rarities = append(rarities, rarity.Rarity{ID: int64(i), Title: r.Title, Weight: r.Weight})
	}
	if _, err := rarity.NewTable(rarities); err != nil {
		return err
	}

	for _, set := range m.Sets {
		if set.Title == "" {
			return fmt.Errorf("set without title")
		}
		cardTitles := make(map[string]bool, len(set.Cards))
		for _, card := range set.Cards {
			if card.Title == "" {
				return fmt.Errorf("set %q has a card without title", set.Title)
			}
			if cardTitles[card.Title] {
				return fmt.Errorf("set %q lists card %q twice", set.Title, card.Title)
			}
			cardTitles[card.Title] = true
			if !titles[card.Rarity] {
				return fmt.Errorf("card %q: %w: %q", card.Title, rarity.ErrNotFound, card.Rarity)
			}
		}
	}
	return nil
}

// Import upserts the manifest in one transaction and purges the service cache.
func (s *Service) Import(ctx context.Context, tx transactor.Transactor, m *Manifest) (*ImportReport, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}

	report := &ImportReport{}
	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		rarityIDs := make(map[string]int64, len(m.Rarities))
		for _, mr := range m.Rarities {
			r := &rarity.Rarity{Title: mr.Title, Description: mr.Description, Weight: mr.Weight}
			if err := s.repo.UpsertRarity(ctx, r); err != nil {
				return fmt.Errorf("failed to upsert rarity %q: %w", mr.Title, err)
			}
			rarityIDs[mr.Title] = r.ID
			report.Rarities++
		}

		for _, ms := range m.Sets {
			set := &CardSet{Title: ms.Title, Description: ms.Description, ImageRef: ms.Image}
			if err := s.repo.UpsertSet(ctx, set); err != nil {
				return fmt.Errorf("failed to upsert set %q: %w", ms.Title, err)
			}
			report.Sets++

			for _, mc := range ms.Cards {
				card := &Card{
					Title:       mc.Title,
					Description: mc.Description,
					ImageRef:    mc.Image,
					RarityID:    rarityIDs[mc.Rarity],
					SetID:       set.ID,
				}
				if err := s.repo.UpsertCard(ctx, card); err != nil {
					return fmt.Errorf("failed to upsert card %q: %w", mc.Title, err)
				}
				report.Cards++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Purge()
	s.logger.Info("Catalog imported",
		slog.Int("rarities", report.Rarities),
		slog.Int("sets", report.Sets),
		slog.Int("cards", report.Cards))

	return report, nil
}
