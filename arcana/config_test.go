package arcana

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"
format = "json"

[db]
host = "db.internal"
port = 6432

[packs]
interval = "2h"
cards_per_pack = 3
`)
	t.Setenv("ARCANA_DB_PASSWORD", "from-env")
	t.Setenv("ARCANA_PACKS_MAX_PACKS", "4")

	cfg, err := LoadConfig(path, false)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Log.Level != slog.LevelDebug || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.DB.Host != "db.internal" || cfg.DB.Port != 6432 || cfg.DB.Password != "from-env" {
		t.Errorf("DB = %+v", cfg.DB)
	}
	if cfg.DB.Database != "arcana" {
		t.Errorf("DB.Database = %q, want default", cfg.DB.Database)
	}
	if cfg.Packs.Interval.Std() != 2*time.Hour || cfg.Packs.MaxPacks != 4 || cfg.Packs.CardsPerPack != 3 {
		t.Errorf("Packs = %+v", cfg.Packs)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")

	if _, err := LoadConfig(missing, false); err == nil {
		t.Errorf("LoadConfig() error = nil for a missing file")
	}

	cfg, err := LoadConfig(missing, true)
	if err != nil {
		t.Fatalf("LoadConfig(allowMissing) error = %v", err)
	}
	if cfg.Packs.Interval.Std() != 4*time.Hour || cfg.Packs.MaxPacks != 2 || cfg.Packs.CardsPerPack != 5 {
		t.Errorf("defaults = %+v", cfg.Packs)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "unknown key", body: "[db]\nhostname = \"x\"\n", want: "decode"},
		{name: "zero cap", body: "[packs]\nmax_packs = 0\n", want: "max_packs"},
		{name: "bad format", body: "[log]\nformat = \"xml\"\n", want: "log.format"},
		{name: "bad duration", body: "[packs]\ninterval = \"soon\"\n", want: "decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body), false)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadConfig() error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}
