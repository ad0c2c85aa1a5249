package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TELEGRAM_BOT_TOKEN", "ADMIN_USERS", "BOT_MODE", "WEBHOOK_URL", "LISTEN_ADDR",
		"DEBUG", "STORAGE_TYPE", "DATABASE_URL", "REDIS_ADDR",
	} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
telegram_bot:
  token: file-token
  poll_interval: 5s
server:
  host: 127.0.0.1
  port: "9090"
quiz:
  default_time_limit: 45
  default_negative_marking: 0.5
  advance_delay: 1s
admins: [1, 2]
storage:
  type: redis
  redis:
    addr: localhost:6379
    session_ttl: 30m
debug: true
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.TelegramBot.Token != "file-token" || cfg.TelegramBot.PollInterval != 5*time.Second {
		t.Errorf("unexpected telegram section: %+v", cfg.TelegramBot)
	}
	if cfg.TelegramBot.Mode != ModePolling {
		t.Errorf("expected default polling mode, got %q", cfg.TelegramBot.Mode)
	}
	if cfg.HTTPAddr() != "127.0.0.1:9090" {
		t.Errorf("unexpected http addr %q", cfg.HTTPAddr())
	}
	if cfg.Quiz.DefaultTimeLimit != 45 || cfg.Quiz.DefaultNegativeMarking != 0.5 || cfg.Quiz.AdvanceDelay != time.Second {
		t.Errorf("unexpected quiz section: %+v", cfg.Quiz)
	}
	if !cfg.IsAdmin(2) || cfg.IsAdmin(3) {
		t.Errorf("unexpected admins: %v", cfg.Admins)
	}
	if cfg.Storage.Type != StorageRedis || cfg.Storage.Redis.SessionTTL != 30*time.Minute {
		t.Errorf("unexpected storage section: %+v", cfg.Storage)
	}
	if !cfg.Debug {
		t.Errorf("expected debug on")
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "telegram_bot:\n  token: file-token\n")
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("ADMIN_USERS", "10, 20")
	t.Setenv("STORAGE_TYPE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/quiz")
	t.Setenv("DEBUG", "1")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.TelegramBot.Token != "env-token" {
		t.Errorf("env token not applied: %q", cfg.TelegramBot.Token)
	}
	if len(cfg.Admins) != 2 || cfg.Admins[0] != 10 || cfg.Admins[1] != 20 {
		t.Errorf("unexpected admins %v", cfg.Admins)
	}
	if cfg.Storage.Type != StoragePostgres || cfg.Storage.DatabaseURL == "" {
		t.Errorf("unexpected storage %+v", cfg.Storage)
	}
	if !cfg.Debug {
		t.Errorf("expected debug on")
	}
}

func TestLoadConfigWithoutFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Quiz.DefaultTimeLimit != 60 || cfg.Quiz.DefaultNegativeMarking != 0.25 || cfg.Quiz.AdvanceDelay != 2*time.Second {
		t.Errorf("unexpected defaults: %+v", cfg.Quiz)
	}
	if cfg.Storage.Type != StorageMemory {
		t.Errorf("expected memory storage, got %q", cfg.Storage.Type)
	}
}

func TestLoadConfigBadAdmins(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "x")
	t.Setenv("ADMIN_USERS", "1,abc")
	if _, err := LoadConfig(""); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing token", func(c *Config) { c.TelegramBot.Token = "" }},
		{"unknown mode", func(c *Config) { c.TelegramBot.Mode = "push" }},
		{"time limit too small", func(c *Config) { c.Quiz.DefaultTimeLimit = 5 }},
		{"time limit too large", func(c *Config) { c.Quiz.DefaultTimeLimit = 301 }},
		{"negative marking above one", func(c *Config) { c.Quiz.DefaultNegativeMarking = 1.5 }},
		{"negative advance delay", func(c *Config) { c.Quiz.AdvanceDelay = -time.Second }},
		{"postgres without url", func(c *Config) { c.Storage.Type = StoragePostgres }},
		{"redis without addr", func(c *Config) { c.Storage.Type = StorageRedis }},
		{"unknown storage", func(c *Config) { c.Storage.Type = "json" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.TelegramBot.Token = "x"
			tc.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	cfg := Default()
	cfg.TelegramBot.Token = "x"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults with token must be valid: %v", err)
	}
}

func TestDecodeSkipsValidation(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/quiz")

	cfg, err := Decode("")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cfg.Storage.DatabaseURL != "postgres://localhost/quiz" {
		t.Errorf("env not applied: %+v", cfg.Storage)
	}
	if _, err := LoadConfig(""); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadConfig without token must fail, got %v", err)
	}
}
