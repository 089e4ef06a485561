package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mwapio/console/pkg/observability"
)

func validEnv(t *testing.T) {
	t.Setenv("MWAP_API_URL", "https://api.mwap.example.com/api/v1")
	t.Setenv("MWAP_OIDC_ISSUER_URL", "https://mwap.eu.auth0.com/")
	t.Setenv("MWAP_OIDC_CLIENT_ID", "client-abc")
}

func TestLoadConfigDefaults(t *testing.T) {
	validEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("expected default API timeout 30s, got %v", cfg.API.Timeout)
	}
	if !cfg.Cache.Enabled || cfg.Cache.Size != 512 {
		t.Errorf("unexpected cache defaults: %+v", cfg.Cache)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("expected 3 retry attempts, got %d", cfg.Retry.MaxAttempts)
	}
	if cfg.Observability.LogLevel != observability.InfoLevel {
		t.Errorf("expected info log level, got %v", cfg.Observability.LogLevel)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	validEnv(t)
	t.Setenv("MWAP_API_TIMEOUT", "5s")
	t.Setenv("MWAP_CACHE_ENABLED", "false")
	t.Setenv("MWAP_RETRY_MAX_ATTEMPTS", "1")
	t.Setenv("MWAP_LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.API.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.API.Timeout)
	}
	if cfg.Cache.Enabled {
		t.Error("expected cache disabled")
	}
	if cfg.Retry.MaxAttempts != 1 {
		t.Errorf("expected 1 retry attempt, got %d", cfg.Retry.MaxAttempts)
	}
	if cfg.Observability.LogLevel != observability.DebugLevel {
		t.Errorf("expected debug log level, got %v", cfg.Observability.LogLevel)
	}
}

func TestValidateRejectsMissingAPIURL(t *testing.T) {
	t.Setenv("MWAP_OIDC_ISSUER_URL", "https://mwap.eu.auth0.com/")
	t.Setenv("MWAP_OIDC_CLIENT_ID", "client-abc")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for missing API URL")
	}
}

func TestValidateRejectsInvalidURL(t *testing.T) {
	validEnv(t)
	t.Setenv("MWAP_API_URL", "not a url")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for invalid API URL")
	}
}

func TestValidateRequiresOpenIDScope(t *testing.T) {
	validEnv(t)
	t.Setenv("MWAP_OIDC_SCOPES", "profile email")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for missing openid scope")
	}
}

func TestApplyContextRespectsEnvPrecedence(t *testing.T) {
	validEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	cfg.ApplyContext(&NamedContext{
		Name:       "staging",
		APIBaseURL: "https://staging.mwap.example.com/api/v1",
	})

	// MWAP_API_URL is set, so the context must not win.
	if cfg.API.BaseURL != "https://api.mwap.example.com/api/v1" {
		t.Errorf("env var should take precedence over context, got %s", cfg.API.BaseURL)
	}
}

func TestContextsFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cf := &ContextsFile{}
	cf.Set(NamedContext{Name: "prod", APIBaseURL: "https://api.mwap.example.com/api/v1"})
	cf.Set(NamedContext{Name: "staging", APIBaseURL: "https://staging.mwap.example.com/api/v1"})
	if err := cf.Use("staging"); err != nil {
		t.Fatalf("Use failed: %v", err)
	}
	if err := cf.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadContexts(path)
	if err != nil {
		t.Fatalf("LoadContexts failed: %v", err)
	}
	if loaded.CurrentContext != "staging" {
		t.Errorf("expected current context staging, got %s", loaded.CurrentContext)
	}
	if loaded.Current() == nil || loaded.Current().APIBaseURL != "https://staging.mwap.example.com/api/v1" {
		t.Errorf("unexpected current context: %+v", loaded.Current())
	}
}

func TestLoadContextsMissingFile(t *testing.T) {
	cf, err := LoadContexts(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if len(cf.Contexts) != 0 {
		t.Error("expected empty context set")
	}
}

func TestUseUnknownContext(t *testing.T) {
	cf := &ContextsFile{}
	if err := cf.Use("ghost"); err == nil {
		t.Fatal("expected error for unknown context")
	}
}
