package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileIsZeroConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Redis.Addr != "" || cfg.Postgres.URL != "" {
		t.Errorf("missing file should yield the zero config, got %+v", cfg)
	}
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  port: "9090"
redis:
  addr: localhost:6379
  db: 2
postgres:
  url: postgres://quiz@localhost/quizdb
  bank: practice
bank:
  ttl: 5m
quiz:
  language: hi
  timeLimitMinutes: 15
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q", cfg.Server.Port)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.DB != 2 {
		t.Errorf("redis = %+v", cfg.Redis)
	}
	if cfg.Postgres.Bank != "practice" {
		t.Errorf("postgres bank = %q", cfg.Postgres.Bank)
	}
	if cfg.Quiz.Language != "hi" || cfg.Quiz.TimeLimitMinutes != 15 {
		t.Errorf("quiz = %+v", cfg.Quiz)
	}
	if got := TTLDuration(cfg.Bank.TTL, time.Minute); got != 5*time.Minute {
		t.Errorf("ttl = %s", got)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [broken"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("malformed yaml accepted")
	}
}

func TestTTLDurationFallbacks(t *testing.T) {
	if got := TTLDuration("", time.Minute); got != time.Minute {
		t.Errorf("empty ttl = %s, want fallback", got)
	}
	if got := TTLDuration("junk", time.Minute); got != time.Minute {
		t.Errorf("invalid ttl = %s, want fallback", got)
	}
}
