package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9000
storage:
  driver: sqlite3
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Storage.Driver != "sqlite3" {
		t.Errorf("Storage.Driver = %q, want sqlite3", cfg.Storage.Driver)
	}
	if cfg.Sync.AutoSyncIntervalSeconds != 30 {
		t.Errorf("AutoSyncIntervalSeconds default = %d, want 30", cfg.Sync.AutoSyncIntervalSeconds)
	}
	if cfg.AutoSyncInterval() != 30*time.Second {
		t.Errorf("AutoSyncInterval() = %s, want 30s", cfg.AutoSyncInterval())
	}
	if cfg.Sync.DigestHour != 8 {
		t.Errorf("DigestHour default = %d, want 8", cfg.Sync.DigestHour)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/no/such/config.yaml"); err == nil {
		t.Error("Load() on missing file succeeded, want error")
	}
}
