package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_DefaultPort(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port default = %d, want %d", cfg.Server.Port, 8080)
	}
}

func TestConfig_PortEnvOverride(t *testing.T) {
	t.Setenv("FINBOARD_PORT", "9090")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d after env override, want %d", cfg.Server.Port, 9090)
	}
}

func TestConfig_AuthEnvOverrides(t *testing.T) {
	t.Setenv("FINBOARD_AUTH_JWT_SECRET", "env-secret")
	t.Setenv("FINBOARD_AUTH_TOKEN_EXPIRY", "2h")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Auth.JWTSecret != "env-secret" {
		t.Errorf("JWTSecret = %q, want env-secret", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.GetTokenExpiry() != 2*time.Hour {
		t.Errorf("TokenExpiry = %v, want 2h", cfg.Auth.GetTokenExpiry())
	}
}

func TestConfig_DurationFallbacks(t *testing.T) {
	fx := FxRatesConfig{Timeout: "garbage", CacheTTL: ""}
	if fx.GetTimeout() != 30*time.Second {
		t.Errorf("GetTimeout fallback = %v, want 30s", fx.GetTimeout())
	}
	if fx.GetCacheTTL() != 15*time.Minute {
		t.Errorf("GetCacheTTL fallback = %v, want 15m", fx.GetCacheTTL())
	}

	wf := WorkflowConfig{Timeout: "not-a-duration"}
	if wf.GetTimeout() != 60*time.Second {
		t.Errorf("workflow GetTimeout fallback = %v, want 60s", wf.GetTimeout())
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Clients.FxRates.BaseURL != "https://api.frankfurter.dev/v1" {
		t.Errorf("unexpected default FX base URL: %s", cfg.Clients.FxRates.BaseURL)
	}
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "finboard.toml")
	content := `
environment = "production"

[server]
port = 9000

[clients.workflow]
base_url = "http://engine:5678/webhook"
webhook_key = "hook-key"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.IsProduction() {
		t.Error("expected production environment")
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Clients.Workflow.BaseURL != "http://engine:5678/webhook" {
		t.Errorf("unexpected workflow base URL: %s", cfg.Clients.Workflow.BaseURL)
	}
	// Untouched sections keep their defaults.
	if cfg.Clients.FxRates.RateLimit != 10 {
		t.Errorf("FX rate limit = %d, want default 10", cfg.Clients.FxRates.RateLimit)
	}
}

func TestIsProduction(t *testing.T) {
	for env, want := range map[string]bool{
		"production":  true,
		"PROD":        true,
		"development": false,
		"":            false,
	} {
		cfg := &Config{Environment: env}
		if cfg.IsProduction() != want {
			t.Errorf("IsProduction(%q) = %v, want %v", env, !want, want)
		}
	}
}
