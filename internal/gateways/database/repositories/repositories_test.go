package repositories

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/arcana-cards/arcana/internal/domain/accounts"
	"github.com/arcana-cards/arcana/internal/domain/catalog"
	"github.com/arcana-cards/arcana/internal/domain/collection"
	"github.com/arcana-cards/arcana/internal/domain/packs"
	"github.com/arcana-cards/arcana/internal/domain/rarity"
	"github.com/arcana-cards/arcana/internal/gateways/database"
)

// openTestDB connects to ARCANA_TEST_DATABASE_URL and starts from empty
// tables. Tests are skipped when the variable is unset.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("ARCANA_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("ARCANA_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.Open(ctx, dsn)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(db.Close)

	if err := db.InitializeSchema(ctx); err != nil {
		t.Fatalf("InitializeSchema() error = %v", err)
	}
	if err := db.ResetAppTables(ctx); err != nil {
		t.Fatalf("ResetAppTables() error = %v", err)
	}
	return db
}

type seeded struct {
	common, rare rarity.Rarity
	set          catalog.CardSet
	cards        []catalog.Card
}

func seedCatalog(t *testing.T, repo *cardRepository) seeded {
	t.Helper()
	ctx := context.Background()

	s := seeded{
		common: rarity.Rarity{Title: "Common", Weight: 0.6},
		rare:   rarity.Rarity{Title: "Rare", Weight: 0.05},
		set:    catalog.CardSet{Title: "Major Arcana"},
	}
	for _, r := range []*rarity.Rarity{&s.common, &s.rare} {
		if err := repo.UpsertRarity(ctx, r); err != nil {
			t.Fatalf("UpsertRarity() error = %v", err)
		}
	}
	if err := repo.UpsertSet(ctx, &s.set); err != nil {
		t.Fatalf("UpsertSet() error = %v", err)
	}

	for _, c := range []catalog.Card{
		{Title: "The Fool", RarityID: s.common.ID, SetID: s.set.ID},
		{Title: "The Tower", RarityID: s.rare.ID, SetID: s.set.ID},
	} {
		if err := repo.UpsertCard(ctx, &c); err != nil {
			t.Fatalf("UpsertCard() error = %v", err)
		}
		s.cards = append(s.cards, c)
	}
	return s
}

func TestCardRepository_UpsertIsKeyedByTitle(t *testing.T) {
	db := openTestDB(t)
	repo := NewCardRepository(db.BunDB())
	ctx := context.Background()
	s := seedCatalog(t, repo)

	again := rarity.Rarity{Title: "Common", Description: "most cards", Weight: 0.5}
	if err := repo.UpsertRarity(ctx, &again); err != nil {
		t.Fatalf("UpsertRarity() error = %v", err)
	}
	if again.ID != s.common.ID {
		t.Errorf("UpsertRarity() id = %d, want %d", again.ID, s.common.ID)
	}

	rarities, err := repo.ListRarities(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(rarities) != 2 || rarities[0].Weight != 0.5 {
		t.Errorf("ListRarities() = %+v", rarities)
	}

	cards, err := repo.ListCardsBySet(ctx, s.set.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(cards) != 2 {
		t.Errorf("ListCardsBySet() = %d cards, want 2", len(cards))
	}

	if _, err := repo.GetSet(ctx, s.set.ID+100); !errors.Is(err, catalog.ErrSetNotFound) {
		t.Errorf("GetSet() error = %v, want ErrSetNotFound", err)
	}
}

func TestCardRepository_TitleIsUniquePerSet(t *testing.T) {
	db := openTestDB(t)
	repo := NewCardRepository(db.BunDB())
	ctx := context.Background()
	s := seedCatalog(t, repo)

	other := catalog.CardSet{Title: "Minor Arcana"}
	if err := repo.UpsertSet(ctx, &other); err != nil {
		t.Fatal(err)
	}
	fool := catalog.Card{Title: "The Fool", RarityID: s.rare.ID, SetID: other.ID}
	if err := repo.UpsertCard(ctx, &fool); err != nil {
		t.Fatalf("UpsertCard() error = %v", err)
	}
	if fool.ID == s.cards[0].ID {
		t.Fatalf("UpsertCard() reused card %d from another set", fool.ID)
	}

	// re-importing the first set keeps both cards where they are
	again := catalog.Card{Title: "The Fool", Description: "zero", RarityID: s.common.ID, SetID: s.set.ID}
	if err := repo.UpsertCard(ctx, &again); err != nil {
		t.Fatal(err)
	}
	if again.ID != s.cards[0].ID {
		t.Errorf("UpsertCard() id = %d, want %d", again.ID, s.cards[0].ID)
	}

	for setID, want := range map[int64]int{s.set.ID: 2, other.ID: 1} {
		cards, err := repo.ListCardsBySet(ctx, setID)
		if err != nil {
			t.Fatal(err)
		}
		if len(cards) != want {
			t.Errorf("ListCardsBySet(%d) = %d cards, want %d", setID, len(cards), want)
		}
	}
}

func TestUserLifecycle_CreateIsIdempotentAndDeleteCascades(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := NewUserRepository(db.BunDB())
	collections := NewCollectionRepository(db.BunDB())
	statuses := NewPackStatusRepository(db.BunDB())

	for i, wantCreated := range []bool{true, false} {
		created, err := users.Create(ctx, "u1")
		if err != nil || created != wantCreated {
			t.Fatalf("users.Create() #%d = %v, %v", i, created, err)
		}
		created, err = collections.Create(ctx, &collection.Collection{UserID: "u1"})
		if err != nil || created != wantCreated {
			t.Fatalf("collections.Create() #%d = %v, %v", i, created, err)
		}
		created, err = statuses.Create(ctx, &packs.Status{UserID: "u1", PacksAvailable: 2, LastOpenedAt: time.Now()})
		if err != nil || created != wantCreated {
			t.Fatalf("statuses.Create() #%d = %v, %v", i, created, err)
		}
	}

	deleted, err := users.Delete(ctx, "u1")
	if err != nil || !deleted {
		t.Fatalf("Delete() = %v, %v", deleted, err)
	}
	if _, err := collections.GetByUserID(ctx, "u1"); !errors.Is(err, collection.ErrNoCollection) {
		t.Errorf("GetByUserID() after delete error = %v, want ErrNoCollection", err)
	}
	if _, err := users.Get(ctx, "u1"); !errors.Is(err, accounts.ErrUserNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrUserNotFound", err)
	}
}

func TestPackStatusRepository_TransactionRollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	tx := database.NewTxManager(db.BunDB(), database.StandardTxOptions())
	repo := NewPackStatusRepository(db.BunDB())

	if _, err := NewUserRepository(db.BunDB()).Create(ctx, "u1"); err != nil {
		t.Fatal(err)
	}
	start := time.Date(2024, 11, 4, 8, 0, 0, 0, time.UTC)
	if _, err := repo.Create(ctx, &packs.Status{UserID: "u1", PacksAvailable: 2, LastOpenedAt: start}); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("draw failed")
	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		status, err := repo.GetForUpdate(ctx, "u1")
		if err != nil {
			return err
		}
		status.PacksAvailable--
		if err := repo.Save(ctx, status); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithinTransaction() error = %v, want %v", err, boom)
	}

	status, err := repo.GetForUpdate(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if status.PacksAvailable != 2 {
		t.Errorf("PacksAvailable = %d after rollback, want 2", status.PacksAvailable)
	}

	if _, err := repo.GetForUpdate(ctx, "ghost"); !errors.Is(err, packs.ErrStatusNotFound) {
		t.Errorf("GetForUpdate() error = %v, want ErrStatusNotFound", err)
	}
}

func TestPackStatus_ConcurrentClaimsConsumeOnePack(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	tx := database.NewTxManager(db.BunDB(), database.StandardTxOptions())
	store := NewPackStatusRepository(db.BunDB())

	if _, err := NewUserRepository(db.BunDB()).Create(ctx, "u1"); err != nil {
		t.Fatal(err)
	}
	now := time.Now().UTC().Truncate(time.Microsecond)
	if _, err := store.Create(ctx, &packs.Status{UserID: "u1", PacksAvailable: 1, LastOpenedAt: now}); err != nil {
		t.Fatal(err)
	}

	svc := packs.NewService(store, tx, packs.NewClock(packs.DefaultInterval, packs.DefaultMaxPacks)).
		WithNow(func() time.Time { return now.Add(time.Minute) })

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CheckAndConsume(ctx, "u1")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, empty int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, packs.ErrNoPacksAvailable):
			empty++
		default:
			t.Errorf("CheckAndConsume() unexpected error = %v", err)
		}
	}
	if succeeded != 1 || empty != workers-1 {
		t.Errorf("CheckAndConsume() succeeded = %d, no packs = %d, want 1 and %d", succeeded, empty, workers-1)
	}

	status, err := store.GetForUpdate(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if status.PacksAvailable != 0 {
		t.Errorf("PacksAvailable = %d, want 0", status.PacksAvailable)
	}
}

func TestPackStatusRepository_CapIsEnforced(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	store := NewPackStatusRepository(db.BunDB())

	if _, err := NewUserRepository(db.BunDB()).Create(ctx, "u1"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Create(ctx, &packs.Status{UserID: "u1", PacksAvailable: 2, LastOpenedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}

	over := &packs.Status{UserID: "u1", PacksAvailable: packs.DefaultMaxPacks + 1, LastOpenedAt: time.Now()}
	if err := store.Save(ctx, over); err == nil {
		t.Fatalf("Save() with %d packs succeeded, want check violation", over.PacksAvailable)
	}
	if err := store.Save(ctx, &packs.Status{UserID: "u1", PacksAvailable: -1, LastOpenedAt: time.Now()}); err == nil {
		t.Fatalf("Save() with negative packs succeeded, want check violation")
	}

	db.SetPackCap(packs.DefaultMaxPacks + 1)
	if err := db.InitializeSchema(ctx); err != nil {
		t.Fatalf("InitializeSchema() error = %v", err)
	}
	if err := store.Save(ctx, over); err != nil {
		t.Errorf("Save() after raising the cap error = %v", err)
	}

	db.SetPackCap(1)
	if err := db.InitializeSchema(ctx); err != nil {
		t.Fatalf("InitializeSchema() error = %v", err)
	}
	status, err := store.GetForUpdate(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if status.PacksAvailable != 1 {
		t.Errorf("PacksAvailable = %d after lowering the cap, want 1", status.PacksAvailable)
	}
}

func TestCollectionRepository_ConcurrentMerges(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	s := seedCatalog(t, NewCardRepository(db.BunDB()))
	tx := database.NewTxManager(db.BunDB(), database.StandardTxOptions())
	store := NewCollectionRepository(db.BunDB())

	if _, err := NewUserRepository(db.BunDB()).Create(ctx, "u1"); err != nil {
		t.Fatal(err)
	}
	ledger := collection.NewLedger(store, tx, nil)
	coll, err := ledger.Ensure(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}

	const workers = 8
	drawn := []catalog.Card{s.cards[0], s.cards[1], s.cards[0]}

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.Merge(ctx, coll.ID, drawn)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("Merge() error = %v", err)
		}
	}

	owned, err := store.ListOwned(ctx, coll.ID)
	if err != nil {
		t.Fatal(err)
	}
	quantities := map[int64]int64{}
	for _, o := range owned {
		quantities[o.Card.ID] = o.Quantity
	}
	if len(owned) != 2 {
		t.Fatalf("ListOwned() = %d entries, want 2 unique entries", len(owned))
	}
	if quantities[s.cards[0].ID] != 2*workers || quantities[s.cards[1].ID] != workers {
		t.Errorf("quantities = %v, want %d and %d", quantities, 2*workers, workers)
	}

	counts, err := store.CountOwnedBySet(ctx, coll.ID)
	if err != nil {
		t.Fatal(err)
	}
	if counts[s.set.ID] != 2 {
		t.Errorf("CountOwnedBySet() = %v, want 2 for set %d", counts, s.set.ID)
	}
}

func TestUploadRepository_Replace(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	s := seedCatalog(t, NewCardRepository(db.BunDB()))
	repo := NewUploadRepository(db.BunDB())

	if _, err := NewUserRepository(db.BunDB()).Create(ctx, "u1"); err != nil {
		t.Fatal(err)
	}

	first := &accounts.UserCard{UserID: "u1", Title: "Card 1", ImageRef: "uploads/u1/1", RarityID: s.common.ID}
	if err := repo.Insert(ctx, first); err != nil {
		t.Fatal(err)
	}
	if first.ID == 0 {
		t.Errorf("Insert() did not fill the id")
	}

	n, err := repo.DeleteByUser(ctx, "u1")
	if err != nil || n != 1 {
		t.Fatalf("DeleteByUser() = %d, %v", n, err)
	}
	if err := repo.Insert(ctx, &accounts.UserCard{UserID: "u1", Title: "Card 2", ImageRef: "uploads/u1/2", RarityID: s.common.ID}); err != nil {
		t.Fatal(err)
	}

	uploads, err := repo.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(uploads) != 1 || uploads[0].Title != "Card 2" {
		t.Errorf("ListByUser() = %+v, want only Card 2", uploads)
	}
}
