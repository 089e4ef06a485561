package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mwapio/console/pkg/observability"
)

// Config holds all console client configuration
type Config struct {
	// API configuration
	API APIConfig

	// Identity provider configuration
	OIDC OIDCConfig

	// Entity cache configuration
	Cache CacheConfig

	// Retry policy for idempotent GET requests
	Retry RetryConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// APIConfig holds backend API settings
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// OIDCConfig holds identity provider settings
type OIDCConfig struct {
	IssuerURL    string
	ClientID     string
	ClientSecret string
	Scopes       []string

	// CallbackAddr is the loopback address the login flow listens on
	// for the authorization-code redirect.
	CallbackAddr string

	// CredentialsPath overrides the default credential cache location.
	CredentialsPath string

	// LoginTimeout bounds how long Login waits for the browser redirect.
	LoginTimeout time.Duration
}

// CacheConfig holds entity cache settings
type CacheConfig struct {
	Enabled bool
	Size    int
	TTL     time.Duration
}

// RetryConfig holds the GET retry policy
type RetryConfig struct {
	MaxAttempts int
	Backoff     time.Duration
	MaxBackoff  time.Duration
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	LogLevel       observability.LogLevel
	MetricsEnabled bool

	OTelEnabled        bool
	OTelEndpoint       string
	OTelServiceName    string
	OTelServiceVersion string
	OTelInsecure       bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Load reads configuration from the environment without validating it.
// Callers that overlay a named context validate after the overlay.
func Load() *Config {
	return &Config{
		API:           loadAPIConfig(),
		OIDC:          loadOIDCConfig(),
		Cache:         loadCacheConfig(),
		Retry:         loadRetryConfig(),
		Observability: loadObservabilityConfig(),
	}
}

func loadAPIConfig() APIConfig {
	return APIConfig{
		BaseURL: getEnv("MWAP_API_URL", ""),
		Timeout: getEnvDuration("MWAP_API_TIMEOUT", 30*time.Second),
	}
}

func loadOIDCConfig() OIDCConfig {
	scopes := strings.Split(getEnv("MWAP_OIDC_SCOPES", "openid profile email offline_access"), " ")
	return OIDCConfig{
		IssuerURL:       getEnv("MWAP_OIDC_ISSUER_URL", ""),
		ClientID:        getEnv("MWAP_OIDC_CLIENT_ID", ""),
		ClientSecret:    getEnv("MWAP_OIDC_CLIENT_SECRET", ""),
		Scopes:          scopes,
		CallbackAddr:    getEnv("MWAP_OIDC_CALLBACK_ADDR", "127.0.0.1:8765"),
		CredentialsPath: getEnv("MWAP_CREDENTIALS_PATH", ""),
		LoginTimeout:    getEnvDuration("MWAP_LOGIN_TIMEOUT", 5*time.Minute),
	}
}

func loadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: getEnvBool("MWAP_CACHE_ENABLED", true),
		Size:    getEnvInt("MWAP_CACHE_SIZE", 512),
		TTL:     getEnvDuration("MWAP_CACHE_TTL", 60*time.Second),
	}
}

func loadRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: getEnvInt("MWAP_RETRY_MAX_ATTEMPTS", 3),
		Backoff:     getEnvDuration("MWAP_RETRY_BACKOFF", 250*time.Millisecond),
		MaxBackoff:  getEnvDuration("MWAP_RETRY_MAX_BACKOFF", 5*time.Second),
	}
}

func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:           ParseLogLevel(getEnv("MWAP_LOG_LEVEL", "info")),
		MetricsEnabled:     getEnvBool("MWAP_METRICS_ENABLED", true),
		OTelEnabled:        getEnvBool("MWAP_OTEL_ENABLED", false),
		OTelEndpoint:       getEnv("MWAP_OTEL_ENDPOINT", "localhost:4317"),
		OTelServiceName:    getEnv("MWAP_OTEL_SERVICE_NAME", "mwap-console"),
		OTelServiceVersion: getEnv("MWAP_OTEL_SERVICE_VERSION", "1.0.0"),
		OTelInsecure:       getEnvBool("MWAP_OTEL_INSECURE", true),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API base URL is required (MWAP_API_URL)")
	}
	if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API base URL is not a valid absolute URL: %s", c.API.BaseURL)
	}

	if c.OIDC.IssuerURL == "" {
		return fmt.Errorf("OIDC issuer URL is required (MWAP_OIDC_ISSUER_URL)")
	}
	if c.OIDC.ClientID == "" {
		return fmt.Errorf("OIDC client ID is required (MWAP_OIDC_CLIENT_ID)")
	}

	hasOpenID := false
	for _, scope := range c.OIDC.Scopes {
		if scope == "openid" {
			hasOpenID = true
			break
		}
	}
	if !hasOpenID {
		return fmt.Errorf("'openid' scope is required for OIDC")
	}

	if c.Cache.Enabled && c.Cache.Size <= 0 {
		return fmt.Errorf("cache size must be positive when cache is enabled")
	}

	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry max attempts must be at least 1")
	}
	if c.Retry.Backoff <= 0 {
		return fmt.Errorf("retry backoff must be positive")
	}

	if c.Observability.OTelEnabled && c.Observability.OTelEndpoint == "" {
		return fmt.Errorf("OpenTelemetry endpoint is required when OTel is enabled")
	}

	return nil
}

// ApplyContext overlays a named context's values where the environment
// did not set an explicit value.
func (c *Config) ApplyContext(nc *NamedContext) {
	if nc == nil {
		return
	}
	if os.Getenv("MWAP_API_URL") == "" && nc.APIBaseURL != "" {
		c.API.BaseURL = nc.APIBaseURL
	}
	if os.Getenv("MWAP_OIDC_ISSUER_URL") == "" && nc.IssuerURL != "" {
		c.OIDC.IssuerURL = nc.IssuerURL
	}
	if os.Getenv("MWAP_OIDC_CLIENT_ID") == "" && nc.ClientID != "" {
		c.OIDC.ClientID = nc.ClientID
	}
}

// ParseLogLevel parses a log level string
func ParseLogLevel(level string) observability.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return observability.DebugLevel
	case "info":
		return observability.InfoLevel
	case "warn", "warning":
		return observability.WarnLevel
	case "error":
		return observability.ErrorLevel
	default:
		return observability.InfoLevel
	}
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
