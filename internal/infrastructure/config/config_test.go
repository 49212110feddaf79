package config_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL == "" {
		t.Fatalf("expected default database URL to be set")
	}

	if cfg.JWTSecret != "" {
		t.Fatalf("expected JWT secret default to be empty, got %q", cfg.JWTSecret)
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.GoldPricePerGram != "5000" {
		t.Fatalf("expected default gold price 5000, got %s", cfg.GoldPricePerGram)
	}

	if cfg.StartingBalance != "10000" {
		t.Fatalf("expected default starting balance 10000, got %s", cfg.StartingBalance)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("JWT_SECRET", "top-secret")
	t.Setenv("JWT_EXPIRATION", "1h")
	t.Setenv("GOLD_PRICE_PER_GRAM", "6500.50")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}

	if cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.DatabaseTimeout != 45*time.Second {
		t.Fatalf("expected database timeout override, got %s", cfg.DatabaseTimeout)
	}

	if cfg.JWTSecret != "top-secret" || cfg.JWTExpiration != time.Hour {
		t.Fatalf("expected auth settings to be set, got secret=%s expiration=%s", cfg.JWTSecret, cfg.JWTExpiration)
	}

	price, err := cfg.GoldPrice()
	if err != nil {
		t.Fatalf("unexpected gold price error: %v", err)
	}
	if !price.Equal(decimal.RequireFromString("6500.50")) {
		t.Fatalf("expected gold price override, got %s", price)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestGoldPriceValidation(t *testing.T) {
	cfg := &config.Config{GoldPricePerGram: "abc"}
	if _, err := cfg.GoldPrice(); err == nil {
		t.Fatalf("expected error for non-numeric gold price")
	}

	cfg.GoldPricePerGram = "0"
	if _, err := cfg.GoldPrice(); err == nil {
		t.Fatalf("expected error for non-positive gold price")
	}
}

func TestDefaultBalanceValidation(t *testing.T) {
	cfg := &config.Config{StartingBalance: "0"}
	balance, err := cfg.DefaultBalance()
	if err != nil {
		t.Fatalf("expected zero balance to be allowed, got %v", err)
	}
	if !balance.IsZero() {
		t.Fatalf("expected zero balance, got %s", balance)
	}

	cfg.StartingBalance = "-5"
	if _, err := cfg.DefaultBalance(); err == nil {
		t.Fatalf("expected error for negative starting balance")
	}

	cfg.StartingBalance = "nope"
	if _, err := cfg.DefaultBalance(); err == nil {
		t.Fatalf("expected error for non-numeric starting balance")
	}
}
