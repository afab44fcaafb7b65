package config

import (
	"os"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	env := []string{
		"APP_ENV", "APP_HTTP_ADDR", "METRICS_ADDR", "STORE_TYPE", "DB_DSN",
		"ADMIN_API_KEY", "NONCE_SECRET", "NONCE_LIFETIME", "SETTINGS_URL",
		"LOOKUP_RATE_PER_IP", "ZONES_FILE", "GATEWAYS_FILE",
		"WEBHOOK_ENDPOINTS", "WEBHOOK_SECRET",
	}
	for _, key := range env {
		os.Unsetenv(key)
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.AppEnv != "dev" {
		t.Errorf("Expected AppEnv='dev', got '%s'", cfg.AppEnv)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("Expected HTTPAddr=':8080', got '%s'", cfg.HTTPAddr)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("Expected MetricsAddr=':9090', got '%s'", cfg.MetricsAddr)
	}
	if cfg.StoreType != "memory" {
		t.Errorf("Expected StoreType='memory', got '%s'", cfg.StoreType)
	}
	if cfg.AdminAPIKey != "admin-123" {
		t.Errorf("Expected AdminAPIKey='admin-123', got '%s'", cfg.AdminAPIKey)
	}
	if cfg.NonceLifetime != 12*time.Hour {
		t.Errorf("Expected NonceLifetime=12h, got %v", cfg.NonceLifetime)
	}
	if cfg.SettingsURL != "/admin/settings" {
		t.Errorf("Expected SettingsURL='/admin/settings', got '%s'", cfg.SettingsURL)
	}
	if cfg.LookupRatePerIP != 120 {
		t.Errorf("Expected LookupRatePerIP=120, got %d", cfg.LookupRatePerIP)
	}
	if cfg.NonceSecret == "" {
		t.Error("Expected a generated NonceSecret, got empty")
	}
	if len(cfg.WebhookEndpoints) != 0 {
		t.Errorf("Expected no webhook endpoints, got %v", cfg.WebhookEndpoints)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	os.Setenv("APP_ENV", "test")
	os.Setenv("APP_HTTP_ADDR", ":9999")
	os.Setenv("STORE_TYPE", "postgres")
	os.Setenv("NONCE_SECRET", "fixed-secret")
	os.Setenv("WEBHOOK_ENDPOINTS", " https://a.example/hook , https://b.example/hook ")
	defer clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.AppEnv != "test" {
		t.Errorf("Expected AppEnv='test', got '%s'", cfg.AppEnv)
	}
	if cfg.HTTPAddr != ":9999" {
		t.Errorf("Expected HTTPAddr=':9999', got '%s'", cfg.HTTPAddr)
	}
	if cfg.StoreType != "postgres" {
		t.Errorf("Expected StoreType='postgres', got '%s'", cfg.StoreType)
	}
	if cfg.NonceSecret != "fixed-secret" {
		t.Errorf("Expected configured nonce secret, got '%s'", cfg.NonceSecret)
	}
	if len(cfg.WebhookEndpoints) != 2 || cfg.WebhookEndpoints[0] != "https://a.example/hook" {
		t.Errorf("WebhookEndpoints = %v", cfg.WebhookEndpoints)
	}
}

func TestValidate_StoreType(t *testing.T) {
	cfg := &Config{StoreType: "redis", HTTPAddr: ":8080", MetricsAddr: ":9090"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unsupported store type")
	}

	cfg = &Config{StoreType: "postgres", HTTPAddr: ":8080", MetricsAddr: ":9090"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for postgres without DSN")
	}
}

func TestValidate_WebhookSecretRequired(t *testing.T) {
	cfg := &Config{
		StoreType:        "memory",
		HTTPAddr:         ":8080",
		MetricsAddr:      ":9090",
		WebhookEndpoints: []string{"https://a.example/hook"},
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for webhook endpoints without a secret")
	}
}

func TestValidate_ProductionConstraints(t *testing.T) {
	cfg := &Config{
		AppEnv:      "prod",
		StoreType:   "memory",
		HTTPAddr:    ":8080",
		MetricsAddr: ":9090",
		AdminAPIKey: "admin-123",
		NonceSecret: "s",
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for default admin key in production")
	}

	cfg.AdminAPIKey = "real-key"
	cfg.nonceSecretGenerated = true
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for auto-generated nonce secret in production")
	}

	cfg.nonceSecretGenerated = false
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}
