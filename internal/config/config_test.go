package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "DB_DSN", "TOKEN_TTL", "PASSWORD_SCHEME", "AMQP_URL", "SEED_DEMO", "JWT_SECRET"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Port != "8080" || cfg.DBDriver != "sqlite" || cfg.DBDSN != "storefront.db" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.TokenTTL != 24*time.Hour || cfg.PasswordScheme != "bcrypt" || !cfg.SeedDemo {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.AMQPURL != "" {
		t.Fatal("events should be off by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("DB_DSN", "postgres://u:p@localhost/shop")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("SEED_DEMO", "false")
	t.Setenv("PASSWORD_SCHEME", "argon2")

	cfg := Load()
	if cfg.Port != "9090" || cfg.DBDriver != "pgx" || cfg.TokenTTL != 90*time.Minute {
		t.Fatalf("overrides ignored: %+v", cfg)
	}
	if cfg.SeedDemo || cfg.PasswordScheme != "argon2" {
		t.Fatalf("overrides ignored: %+v", cfg)
	}
	if mask(cfg.DBDriver, cfg.DBDSN) != "***" {
		t.Fatal("postgres dsn must be masked in logs")
	}
}

func TestLoadBadTTL(t *testing.T) {
	t.Setenv("TOKEN_TTL", "soon")
	if cfg := Load(); cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("bad TTL should fall back to 24h, got %s", cfg.TokenTTL)
	}
}
