package arcana

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/arcana-cards/arcana/internal/domain/accounts"
	"github.com/arcana-cards/arcana/internal/domain/catalog"
	"github.com/arcana-cards/arcana/internal/domain/claims"
	"github.com/arcana-cards/arcana/internal/domain/collection"
	"github.com/arcana-cards/arcana/internal/domain/opening"
	"github.com/arcana-cards/arcana/internal/domain/packs"
	"github.com/arcana-cards/arcana/internal/gateways/database"
	"github.com/arcana-cards/arcana/internal/gateways/database/repositories"
	"github.com/arcana-cards/arcana/internal/gateways/storage"
)

type App struct {
	Cfg     Config
	Version string
	Commit  string

	DB *database.DB
	Tx *database.TxManager

	Catalog  *catalog.Service
	Engine   *opening.Engine
	Packs    *packs.Service
	Ledger   *collection.Ledger
	Accounts *accounts.Service
	Claims   *claims.Service
}

// New connects to the database and wires the services. The schema is not
// touched; run InitializeSchema for that.
func New(ctx context.Context, cfg Config, version, commit string) (*App, error) {
	dbStart := time.Now()
	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	db.SetPackCap(cfg.Packs.MaxPacks)
	slog.Info("Database connected",
		slog.String("type", "sys"),
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(dbStart)))

	var objects accounts.ObjectStore = storage.Disabled{}
	if cfg.Storage.Bucket != "" {
		s3Store, err := storage.NewS3Store(ctx, cfg.Storage)
		if err != nil {
			db.Close()
			return nil, err
		}
		objects = s3Store
	}

	app, err := Wire(cfg, db, objects)
	if err != nil {
		db.Close()
		return nil, err
	}
	app.Version = version
	app.Commit = commit
	return app, nil
}

// Wire builds the services on an open database.
func Wire(cfg Config, db *database.DB, objects accounts.ObjectStore) (*App, error) {
	bunDB := db.BunDB()
	tx := database.NewTxManager(bunDB, database.TxOptions{
		IsolationLevel: sql.LevelReadCommitted,
		Timeout:        cfg.Packs.TxTimeout.Std(),
	})

	catalogService, err := catalog.NewService(repositories.NewCardRepository(bunDB), cfg.Catalog.CacheSize)
	if err != nil {
		return nil, err
	}

	seed := cfg.Packs.Seed
	if seed == 0 {
		if seed, err = opening.NewSeed(); err != nil {
			return nil, err
		}
	}
	engine := opening.NewEngine(catalogService, opening.NewRandomSource(seed))

	packService := packs.NewService(
		repositories.NewPackStatusRepository(bunDB),
		tx,
		packs.NewClock(cfg.Packs.Interval.Std(), cfg.Packs.MaxPacks),
	)
	ledger := collection.NewLedger(repositories.NewCollectionRepository(bunDB), tx, catalogService)

	accountService := accounts.NewService(accounts.Deps{
		Users:       repositories.NewUserRepository(bunDB),
		Uploads:     repositories.NewUploadRepository(bunDB),
		Objects:     objects,
		Collections: ledger,
		Packs:       packService,
		Rarities:    catalogService,
		Tx:          tx,
	})

	return &App{
		Cfg:      cfg,
		DB:       db,
		Tx:       tx,
		Catalog:  catalogService,
		Engine:   engine,
		Packs:    packService,
		Ledger:   ledger,
		Accounts: accountService,
		Claims:   claims.NewService(packService, engine, ledger, accountService, tx, cfg.Packs.CardsPerPack),
	}, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}
