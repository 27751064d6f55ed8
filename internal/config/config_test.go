package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("KITZ_CONFIG", filepath.Join(t.TempDir(), "missing.json"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Ledger.Backend != "file" {
		t.Fatalf("default backend = %s, want file", cfg.Ledger.Backend)
	}
	if cfg.Ack.WindowMinutes != 5 {
		t.Fatalf("default ack window = %d, want 5", cfg.Ack.WindowMinutes)
	}
	if cfg.WarRoom.WindowMinutes != 10 || cfg.WarRoom.Threshold != 3 {
		t.Fatalf("unexpected war room defaults: %+v", cfg.WarRoom)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"ledger":{"backend":"sqlite","dbPath":"/tmp/kitz.db"},"warRoom":{"windowMinutes":20,"threshold":5}}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("KITZ_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Ledger.Backend != "sqlite" || cfg.Ledger.DBPath != "/tmp/kitz.db" {
		t.Fatalf("file settings not applied: %+v", cfg.Ledger)
	}
	if cfg.WarRoom.Threshold != 5 {
		t.Fatalf("war room threshold = %d, want 5", cfg.WarRoom.Threshold)
	}
	// Untouched sections keep defaults.
	if cfg.Ack.WindowMinutes != 5 {
		t.Fatalf("ack window = %d, want default 5", cfg.Ack.WindowMinutes)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"ledger":{"backend":"file"}}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("KITZ_CONFIG", path)
	t.Setenv("KITZ_LEDGER_BACKEND", "sqlite")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Ledger.Backend != "sqlite" {
		t.Fatalf("env override not applied: %s", cfg.Ledger.Backend)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"ledger":{"backend":"carrier-pigeon"}}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("KITZ_CONFIG", path)

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for unknown backend")
	}
}
