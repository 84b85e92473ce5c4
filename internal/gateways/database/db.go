package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/arcana-cards/arcana/arcana/config"
	"github.com/arcana-cards/arcana/internal/domain/logger"
	"github.com/arcana-cards/arcana/internal/gateways/database/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

const (
	defaultConnTimeout   = 5 * time.Second
	defaultMaxRetries    = 3
	defaultRetryInterval = time.Second
	schemaVersion        = 2 // bump when schema/migrations change
)

type DBConfig struct {
	Host         string `toml:"host" env:"HOST"`
	Port         int    `toml:"port" env:"PORT"`
	User         string `toml:"user" env:"USER"`
	Password     string `toml:"password" env:"PASSWORD"`
	Database     string `toml:"database" env:"NAME"`
	SSLMode      string `toml:"ssl_mode" env:"SSL_MODE"`
	PoolSize     int    `toml:"pool_size" env:"POOL_SIZE"`
	MaxIdleConns int    `toml:"max_idle_conns" env:"MAX_IDLE_CONNS"`
	MaxLifetime  int    `toml:"max_lifetime" env:"MAX_LIFETIME"`
	// FastInit skips schema initialization when app_meta already records the
	// current schema version.
	FastInit bool `toml:"fast_init" env:"FAST_INIT"`
}

type DB struct {
	pool     *pgxpool.Pool
	bunDB    *bun.DB
	fastInit bool
	packCap  int
}

func New(ctx context.Context, cfg DBConfig) (*DB, error) {
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	var conn net.Conn
	var err error
	for i := 0; i < defaultMaxRetries; i++ {
		conn, err = net.DialTimeout("tcp", addr, defaultConnTimeout)
		if err == nil {
			break
		}
		slog.Warn("Database unreachable, retrying",
			slog.String("type", "db"),
			slog.String("addr", addr),
			slog.Int("attempt", i+1),
			slog.Any("error", err))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(defaultRetryInterval):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("database server unreachable after %d attempts: %w", defaultMaxRetries, err)
	}
	conn.Close()

	return connect(ctx, buildConnString(cfg), cfg)
}

// Open connects to dsn without the reachability probe.
func Open(ctx context.Context, dsn string) (*DB, error) {
	return connect(ctx, dsn, DBConfig{})
}

func connect(ctx context.Context, dsn string, cfg DBConfig) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	if cfg.PoolSize > 0 {
		poolConfig.MaxConns = int32(cfg.PoolSize)
	}
	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = int32(cfg.MaxIdleConns)
	}
	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = time.Duration(cfg.MaxLifetime) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	return &DB{
		pool:     pool,
		bunDB:    newBunDB(dsn, cfg.PoolSize),
		fastInit: cfg.FastInit,
		packCap:  config.MaxPacks,
	}, nil
}

func buildConnString(cfg DBConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s&connect_timeout=5",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, sslMode,
	)
}

func newBunDB(dsn string, poolSize int) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	if poolSize > 0 {
		sqldb.SetMaxOpenConns(poolSize)
	}
	db := bun.NewDB(sqldb, pgdialect.New())
	db.AddQueryHook(queryHook{})
	return db
}

func (db *DB) GetPool() *pgxpool.Pool {
	return db.pool
}

func (db *DB) BunDB() *bun.DB {
	return db.bunDB
}

func (db *DB) ExecWithLog(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	ql := logger.NewQueryLogger("exec", sql, args...)
	result, err := db.pool.Exec(ctx, sql, args...)
	ql.Log(err, result.RowsAffected())
	return result, err
}

func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
	if db.bunDB != nil {
		db.bunDB.Close()
	}
}

// Ping verifies both database connections are working
func (db *DB) Ping(ctx context.Context) error {
	if err := db.pool.Ping(ctx); err != nil {
		return fmt.Errorf("pgxpool ping failed: %w", err)
	}
	if err := db.bunDB.PingContext(ctx); err != nil {
		return fmt.Errorf("bun ping failed: %w", err)
	}
	return nil
}

// SetPackCap sets the upper bound enforced on pack_statuses.packs_available.
// It takes effect on the next InitializeSchema.
func (db *DB) SetPackCap(n int) {
	if n > 0 {
		db.packCap = n
	}
}

// InitializeSchema creates all tables, constraints and indexes. It is safe to
// run on every start.
func (db *DB) InitializeSchema(ctx context.Context) error {
	if err := db.ensureAppMeta(ctx); err != nil {
		return fmt.Errorf("failed to create app_meta: %w", err)
	}
	if db.fastInit {
		v, _ := db.getAppMeta(ctx, "schema_version")
		packCap, _ := db.getAppMeta(ctx, "pack_cap")
		if v == strconv.Itoa(schemaVersion) && packCap == strconv.Itoa(db.packCap) {
			slog.Info("Fast DB init: schema up-to-date, skipping initialization",
				slog.String("type", "db"),
				slog.Int("schema_version", schemaVersion))
			return nil
		}
	}

	// Ordered so foreign keys resolve
	tables := []struct {
		model       any
		foreignKeys []string
	}{
		{model: (*models.User)(nil)},
		{model: (*models.Rarity)(nil)},
		{model: (*models.CardSet)(nil)},
		{
			model: (*models.Card)(nil),
			foreignKeys: []string{
				`("rarity_id") REFERENCES "rarities" ("id") ON DELETE RESTRICT`,
				`("set_id") REFERENCES "card_sets" ("id") ON DELETE CASCADE`,
			},
		},
		{
			model:       (*models.Collection)(nil),
			foreignKeys: []string{`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`},
		},
		{
			model: (*models.CollectionEntry)(nil),
			foreignKeys: []string{
				`("collection_id") REFERENCES "collections" ("id") ON DELETE CASCADE`,
				`("card_id") REFERENCES "cards" ("id") ON DELETE CASCADE`,
			},
		},
		{
			model:       (*models.PackStatus)(nil),
			foreignKeys: []string{`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`},
		},
		{
			model: (*models.UserUpload)(nil),
			foreignKeys: []string{
				`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`,
				`("rarity_id") REFERENCES "rarities" ("id") ON DELETE RESTRICT`,
			},
		},
	}

	for _, t := range tables {
		query := db.bunDB.NewCreateTable().
			Model(t.model).
			IfNotExists()
		for _, fk := range t.foreignKeys {
			query = query.ForeignKey(fk)
		}
		if _, err := query.Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	if err := db.MigrateSchema(ctx); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_cards_set_id ON cards(set_id);",
		"CREATE INDEX IF NOT EXISTS idx_cards_rarity_id ON cards(rarity_id);",
		"CREATE INDEX IF NOT EXISTS idx_collection_entries_card_id ON collection_entries(card_id);",
		"CREATE INDEX IF NOT EXISTS idx_user_uploads_user_id ON user_uploads(user_id);",
	}
	for _, idx := range indexes {
		if _, err := db.ExecWithLog(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	if err := db.setAppMeta(ctx, "schema_version", strconv.Itoa(schemaVersion)); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}
	if err := db.setAppMeta(ctx, "pack_cap", strconv.Itoa(db.packCap)); err != nil {
		return fmt.Errorf("failed to record pack cap: %w", err)
	}
	slog.Info("Database schema initialized",
		slog.String("type", "db"),
		slog.Int("schema_version", schemaVersion))
	return nil
}

// MigrateSchema adds the check constraints bun cannot express in model tags
// and upgrades older layouts in place.
func (db *DB) MigrateSchema(ctx context.Context) error {
	constraints := []struct {
		table, name, check string
	}{
		{"rarities", "rarities_weight_range", "probability_weight > 0 AND probability_weight <= 1"},
		{"collection_entries", "collection_entries_quantity_positive", "quantity >= 1"},
	}

	for _, c := range constraints {
		stmt := fmt.Sprintf(`
			DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint WHERE conname = '%s'
				) THEN
					ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s);
				END IF;
			END $$;`, c.name, c.table, c.name, c.check)
		if _, err := db.ExecWithLog(ctx, stmt); err != nil {
			return fmt.Errorf("failed to add constraint %s: %w", c.name, err)
		}
	}

	// Card titles used to be unique across all sets.
	cardKey := []string{
		`ALTER TABLE cards DROP CONSTRAINT IF EXISTS cards_title_key;`,
		`CREATE UNIQUE INDEX IF NOT EXISTS cards_set_id_title_key ON cards(set_id, title);`,
	}
	for _, stmt := range cardKey {
		if _, err := db.ExecWithLog(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate card key: %w", err)
		}
	}

	for _, stmt := range packCapStatements(db.packCap) {
		if _, err := db.ExecWithLog(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply pack cap %d: %w", db.packCap, err)
		}
	}
	return nil
}

// packCapStatements rebuilds the packs_available range check for packCap.
// Rows above a lowered cap are clamped first.
func packCapStatements(packCap int) []string {
	return []string{
		`ALTER TABLE pack_statuses DROP CONSTRAINT IF EXISTS pack_statuses_packs_non_negative;`,
		`ALTER TABLE pack_statuses DROP CONSTRAINT IF EXISTS pack_statuses_packs_range;`,
		fmt.Sprintf(`UPDATE pack_statuses SET packs_available = %d WHERE packs_available > %d;`, packCap, packCap),
		fmt.Sprintf(`ALTER TABLE pack_statuses ADD CONSTRAINT pack_statuses_packs_range CHECK (packs_available BETWEEN 0 AND %d);`, packCap),
	}
}

// ResetAppTables truncates every application table. Used by tests and the
// migrate --reset flag.
func (db *DB) ResetAppTables(ctx context.Context) error {
	stmt := `TRUNCATE TABLE "user_uploads", "pack_statuses", "collection_entries", "collections",
		"cards", "card_sets", "rarities", "users" RESTART IDENTITY CASCADE;`
	if _, err := db.ExecWithLog(ctx, stmt); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	slog.Info("App tables truncated", slog.String("type", "db"))
	return nil
}

func (db *DB) ensureAppMeta(ctx context.Context) error {
	_, err := db.bunDB.NewCreateTable().Model((*models.AppMeta)(nil)).IfNotExists().Exec(ctx)
	return err
}

func (db *DB) getAppMeta(ctx context.Context, key string) (string, error) {
	meta := new(models.AppMeta)
	if err := db.bunDB.NewSelect().Model(meta).Where("key = ?", key).Scan(ctx); err != nil {
		return "", err
	}
	return meta.Value, nil
}

func (db *DB) setAppMeta(ctx context.Context, key, value string) error {
	_, err := db.bunDB.NewInsert().
		Model(&models.AppMeta{Key: key, Value: value}).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Exec(ctx)
	return err
}
