package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("API_BASE_URL", "")
	t.Setenv("SESSION_STORE", "memory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != defaultDevAPIURL {
		t.Errorf("base url = %q", cfg.API.BaseURL)
	}
	if cfg.API.Prefix != "/api" {
		t.Errorf("prefix = %q", cfg.API.Prefix)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("timeout = %v", cfg.API.Timeout)
	}
	if cfg.Session.MaxLoginAttempts != 5 || cfg.Session.LockoutDuration != 15*time.Minute {
		t.Errorf("lockout = %d/%v", cfg.Session.MaxLoginAttempts, cfg.Session.LockoutDuration)
	}
	if cfg.Session.TokenTTL != 24*time.Hour {
		t.Errorf("token ttl = %v", cfg.Session.TokenTTL)
	}
	if cfg.Session.StorageKey != "thermoguard_data" {
		t.Errorf("storage key = %q", cfg.Session.StorageKey)
	}
}

func TestLoadProductionURL(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("API_BASE_URL", "")
	t.Setenv("SESSION_STORE", "memory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != defaultProdAPIURL {
		t.Errorf("base url = %q", cfg.API.BaseURL)
	}
}

func TestLoadRejectsRedisWithoutURL(t *testing.T) {
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("REDIS_URL", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("SESSION_STORE", "memory")
	t.Setenv("API_TIMEOUT", "trinta")
	if _, err := Load(); err == nil {
		t.Fatal("expected error")
	}
}

func TestNormalizePrefix(t *testing.T) {
	cases := map[string]string{"/api": "/api", "api/": "/api", "": "", " /v1/ ": "/v1"}
	for in, want := range cases {
		if got := normalizePrefix(in); got != want {
			t.Errorf("normalizePrefix(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadMockAPIRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "curto")
	if _, err := LoadMockAPI(); err == nil {
		t.Fatal("expected error for short secret")
	}

	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("ALLOW_ORIGINS", "http://localhost:8081, ,http://x")
	cfg, err := LoadMockAPI()
	if err != nil {
		t.Fatalf("LoadMockAPI: %v", err)
	}
	if len(cfg.AllowOrigins) != 2 {
		t.Errorf("origins = %v", cfg.AllowOrigins)
	}
	if cfg.AdminEmail != "admin@thermoguard.com" {
		t.Errorf("admin = %q", cfg.AdminEmail)
	}
}
