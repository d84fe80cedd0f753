package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "forgeboard.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FORGEBOARD_JWT_SECRET", "s3cret")
	t.Setenv("FORGEBOARD_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Database.Path != "data/forgeboard.db" {
		t.Errorf("db path = %q", cfg.Database.Path)
	}
	if cfg.Session.HistoryLimit != 50 {
		t.Errorf("history limit = %d", cfg.Session.HistoryLimit)
	}
	if time.Duration(cfg.Session.MirrorTTL) != 7*24*time.Hour {
		t.Errorf("mirror ttl = %v", time.Duration(cfg.Session.MirrorTTL))
	}
	if time.Duration(cfg.Worker.ReaperInterval) != time.Hour {
		t.Errorf("reaper interval = %v", time.Duration(cfg.Worker.ReaperInterval))
	}
	if cfg.Redis.Addr != "" {
		t.Errorf("redis addr = %q, want empty (memory mirror)", cfg.Redis.Addr)
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("FORGEBOARD_JWT_SECRET", "s3cret")

	path := writeConfigFile(t, `
server:
  port: 9090
  read_timeout: 10s
redis:
  addr: localhost:6379
  db: 2
session:
  history_limit: 25
  mirror_ttl: 48h
worker:
  reaper_interval: 30m
log:
  level: debug
  format: text
`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if time.Duration(cfg.Server.ReadTimeout) != 10*time.Second {
		t.Errorf("read timeout = %v", time.Duration(cfg.Server.ReadTimeout))
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.DB != 2 {
		t.Errorf("redis = %+v", cfg.Redis)
	}
	if cfg.Session.HistoryLimit != 25 {
		t.Errorf("history limit = %d", cfg.Session.HistoryLimit)
	}
	if time.Duration(cfg.Session.MirrorTTL) != 48*time.Hour {
		t.Errorf("mirror ttl = %v", time.Duration(cfg.Session.MirrorTTL))
	}
	if time.Duration(cfg.Worker.ReaperInterval) != 30*time.Minute {
		t.Errorf("reaper interval = %v", time.Duration(cfg.Worker.ReaperInterval))
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("log = %+v", cfg.Log)
	}

	// Partial files keep defaults for the rest
	if time.Duration(cfg.Server.WriteTimeout) != 30*time.Second {
		t.Errorf("write timeout default lost: %v", time.Duration(cfg.Server.WriteTimeout))
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9090
`)
	t.Setenv("FORGEBOARD_CONFIG_PATH", path)
	t.Setenv("FORGEBOARD_JWT_SECRET", "s3cret")
	t.Setenv("FORGEBOARD_PORT", "7070")
	t.Setenv("FORGEBOARD_REDIS_ADDR", "redis:6379")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("env did not override file: port = %d", cfg.Server.Port)
	}
	if cfg.Redis.Addr != "redis:6379" {
		t.Errorf("redis addr = %q", cfg.Redis.Addr)
	}
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("FORGEBOARD_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("FORGEBOARD_JWT_SECRET", "")
	t.Setenv("FORGEBOARD_DEV_MODE", "")

	if _, err := Load(); err == nil {
		t.Error("expected error without FORGEBOARD_JWT_SECRET")
	}
}

func TestLoad_DevModeSkipsSecret(t *testing.T) {
	t.Setenv("FORGEBOARD_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("FORGEBOARD_JWT_SECRET", "")
	t.Setenv("FORGEBOARD_DEV_MODE", "true")

	if _, err := Load(); err != nil {
		t.Errorf("dev mode should skip secret validation: %v", err)
	}
}

func TestLoad_HistoryLimitFloor(t *testing.T) {
	t.Setenv("FORGEBOARD_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("FORGEBOARD_JWT_SECRET", "s3cret")
	t.Setenv("FORGEBOARD_SESSION_HISTORY_LIMIT", "1")

	if _, err := Load(); err == nil {
		t.Error("expected error for history_limit below 2")
	}
}

func TestDuration_UnmarshalRejectsGarbage(t *testing.T) {
	path := writeConfigFile(t, `
server:
  read_timeout: not-a-duration
`)
	t.Setenv("FORGEBOARD_JWT_SECRET", "s3cret")

	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected error for invalid duration")
	}
}
