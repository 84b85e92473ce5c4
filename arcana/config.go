package arcana

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/arcana-cards/arcana/arcana/config"
	"github.com/arcana-cards/arcana/internal/gateways/database"
	"github.com/arcana-cards/arcana/internal/gateways/storage"
	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is prepended to every environment override, e.g. ARCANA_DB_HOST.
const EnvPrefix = "ARCANA_"

// LoadConfig reads the TOML file at path, then applies environment
// overrides. A missing file is not an error when allowMissing is set.
func LoadConfig(path string, allowMissing bool) (*Config, error) {
	cfg := DefaultConfig()

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		if err := toml.NewDecoder(file).DisallowUnknownFields().Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist) && allowMissing:
	default:
		return nil, fmt.Errorf("failed to open config: %w", err)
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  slog.LevelInfo,
			Format: "text",
		},
		DB: database.DBConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "arcana",
			Database: "arcana",
			PoolSize: 10,
		},
		Storage: storage.Config{
			Region:    "us-east-1",
			KeyPrefix: config.UploadKeyPrefix,
		},
		Packs: PacksConfig{
			Interval:     Duration(config.PackInterval),
			MaxPacks:     config.MaxPacks,
			CardsPerPack: config.CardsPerPack,
			TxTimeout:    Duration(config.TxTimeout),
		},
		Catalog: CatalogConfig{
			CacheSize: config.CatalogCacheSize,
		},
	}
}

type Config struct {
	Log     LogConfig         `toml:"log" envPrefix:"LOG_"`
	DB      database.DBConfig `toml:"db" envPrefix:"DB_"`
	Storage storage.Config    `toml:"storage" envPrefix:"STORAGE_"`
	Packs   PacksConfig       `toml:"packs" envPrefix:"PACKS_"`
	Catalog CatalogConfig     `toml:"catalog" envPrefix:"CATALOG_"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level" env:"LEVEL"`
	Format    string     `toml:"format" env:"FORMAT"`
	AddSource bool       `toml:"add_source" env:"ADD_SOURCE"`
}

type PacksConfig struct {
	Interval     Duration `toml:"interval" env:"INTERVAL"`
	MaxPacks     int      `toml:"max_packs" env:"MAX_PACKS"`
	CardsPerPack int      `toml:"cards_per_pack" env:"CARDS_PER_PACK"`
	TxTimeout    Duration `toml:"tx_timeout" env:"TX_TIMEOUT"`
	// Seed fixes the draw sequence. Zero seeds from crypto/rand.
	Seed uint64 `toml:"seed" env:"SEED"`
}

type CatalogConfig struct {
	CacheSize int `toml:"cache_size" env:"CACHE_SIZE"`
}

func (c *Config) Validate() error {
	var errs []error
	if c.Packs.Interval <= 0 {
		errs = append(errs, errors.New("packs.interval must be positive"))
	}
	if c.Packs.MaxPacks < 1 {
		errs = append(errs, errors.New("packs.max_packs must be at least 1"))
	}
	if c.Packs.CardsPerPack < 1 {
		errs = append(errs, errors.New("packs.cards_per_pack must be at least 1"))
	}
	if c.Catalog.CacheSize < 1 {
		errs = append(errs, errors.New("catalog.cache_size must be at least 1"))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not text or json", c.Log.Format))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Duration decodes Go duration strings such as "4h" from TOML and env.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
