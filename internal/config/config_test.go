package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_DefaultValues(t *testing.T) {
	os.Clearenv()

	cfg := Load()

	if cfg.HTTP.Addr != ":5000" {
		t.Errorf("Expected HTTP_ADDR default ':5000', got '%s'", cfg.HTTP.Addr)
	}
	if cfg.Database.Database != "ade" {
		t.Errorf("Expected DB_NAME default 'ade', got '%s'", cfg.Database.Database)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Expected REDIS_ADDR default 'localhost:6379', got '%s'", cfg.Redis.Addr)
	}
	if cfg.Events.Stream != "ade:events" {
		t.Errorf("Expected EVENTS_STREAM default 'ade:events', got '%s'", cfg.Events.Stream)
	}
	if cfg.Content.CacheTTL != 300*time.Second {
		t.Errorf("Expected content cache TTL 300s, got %v", cfg.Content.CacheTTL)
	}
	if cfg.MQTT.Enabled {
		t.Error("Expected MQTT disabled by default")
	}
	if cfg.Payments.SuccessURL != "http://localhost:5173/donation-success" {
		t.Errorf("Unexpected success URL '%s'", cfg.Payments.SuccessURL)
	}
	if cfg.Payments.CancelURL != "http://localhost:5173/donate?cancelled=true" {
		t.Errorf("Unexpected cancel URL '%s'", cfg.Payments.CancelURL)
	}
	if cfg.Admin.TokenTTL != 24*time.Hour {
		t.Errorf("Expected 24h token TTL, got %v", cfg.Admin.TokenTTL)
	}
	if cfg.HTTP.RateLimitRPS != 1 || cfg.HTTP.RateLimitBurst != 5 {
		t.Errorf("Unexpected rate limit %v/%d", cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst)
	}
	if len(cfg.HTTP.TrustedProxies) != 0 {
		t.Errorf("Expected no trusted proxies by default, got %v", cfg.HTTP.TrustedProxies)
	}
	if cfg.Events.MaxLen != 100000 {
		t.Errorf("Expected events stream cap 100000, got %d", cfg.Events.MaxLen)
	}
	if cfg.Cart.TTL != 24*time.Hour {
		t.Errorf("Expected 24h cart TTL, got %v", cfg.Cart.TTL)
	}
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	os.Clearenv()
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DB_ENABLED", "false")
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("FRONTEND_URL", "https://ade.org/")
	t.Setenv("CORS_ORIGINS", "https://ade.org, https://admin.ade.org ,")
	t.Setenv("MQTT_ENABLED", "true")

	cfg := Load()

	if cfg.HTTP.Addr != ":9090" {
		t.Errorf("Expected ':9090', got '%s'", cfg.HTTP.Addr)
	}
	if cfg.DBEnabled {
		t.Error("Expected DB disabled")
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Expected invalid DB_PORT to fall back to 5432, got %d", cfg.Database.Port)
	}
	if cfg.Payments.FrontendURL != "https://ade.org" {
		t.Errorf("Expected trailing slash trimmed, got '%s'", cfg.Payments.FrontendURL)
	}
	if len(cfg.HTTP.CORSOrigins) != 2 || cfg.HTTP.CORSOrigins[1] != "https://admin.ade.org" {
		t.Errorf("Unexpected CORS origins %v", cfg.HTTP.CORSOrigins)
	}
	if !cfg.MQTT.Enabled {
		t.Error("Expected MQTT enabled")
	}
}
