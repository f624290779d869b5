package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.BaseURL != "https://localhost:5001" {
		t.Fatalf("unexpected base url %q", cfg.BaseURL)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.HTTPTimeout)
	}
	if cfg.KeychainType != "bbolt" {
		t.Fatalf("unexpected keychain type %q", cfg.KeychainType)
	}
	if cfg.InsecureSkipVerify {
		t.Fatalf("insecure_skip_verify should default to false")
	}
}

func TestLoadEnvOverridesAndTrimsSlash(t *testing.T) {
	t.Setenv("BASE_URL", "https://charge.example.com/")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://charge.example.com" {
		t.Fatalf("unexpected base url %q", cfg.BaseURL)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.HTTPTimeout)
	}
}

func TestLoadRejectsInvalidTimeout(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT_SECONDS", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero timeout")
	}
}
