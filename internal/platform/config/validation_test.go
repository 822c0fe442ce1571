package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a fully valid configuration for testing.
func validConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "quote-fetcher",
			Version:     "1.0.0",
			Environment: "test",
		},
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RequestTimeout:  30 * time.Second,
			MaxRequestSize:  DefaultMaxRequestSize,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Client: ClientConfig{
			Timeout: 30 * time.Second,
			Retry: RetryConfig{
				MaxAttempts:     3,
				InitialInterval: 100 * time.Millisecond,
				MaxInterval:     5 * time.Second,
				Multiplier:      2.0,
				JitterFactor:    0.25,
			},
			CircuitBreaker: CircuitBreakerConfig{
				MaxFailures:   5,
				Timeout:       30 * time.Second,
				HalfOpenLimit: 3,
			},
			Transport: TransportConfig{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		Services: ServicesConfig{
			Quote: QuoteServiceConfig{
				BaseURL:       DefaultQuoteBaseURL,
				Name:          "quote-service",
				RetryAttempts: 1,
			},
		},
	}
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestConfig_Validate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		contains []string
	}{
		{
			name:     "missing app name",
			mutate:   func(c *Config) { c.App.Name = "" },
			contains: []string{"app.name is required"},
		},
		{
			name:     "invalid environment",
			mutate:   func(c *Config) { c.App.Environment = "staging" },
			contains: []string{"app.environment must be one of"},
		},
		{
			name:     "port out of range",
			mutate:   func(c *Config) { c.Server.Port = 70000 },
			contains: []string{"server.port must be at most 65535"},
		},
		{
			name:     "unknown log format",
			mutate:   func(c *Config) { c.Log.Format = "xml" },
			contains: []string{"log.format must be one of"},
		},
		{
			name: "log file enabled without path",
			mutate: func(c *Config) {
				c.Log.File.Enabled = true
				c.Log.File.Path = ""
			},
			contains: []string{"log.file.path is required when"},
		},
		{
			name:     "quote base url invalid",
			mutate:   func(c *Config) { c.Services.Quote.BaseURL = "not a url" },
			contains: []string{"services.quote.base_url must be a valid URL"},
		},
		{
			name:     "quote retry attempts zero",
			mutate:   func(c *Config) { c.Services.Quote.RetryAttempts = 0 },
			contains: []string{"services.quote.retry_attempts is required"},
		},
		{
			name: "cache enabled without ttl",
			mutate: func(c *Config) {
				c.Cache.Enabled = true
				c.Cache.MaxSize = 10
			},
			contains: []string{"cache.ttl is required when"},
		},
		{
			name:     "telemetry enabled without endpoint",
			mutate:   func(c *Config) { c.Telemetry.Enabled = true; c.Telemetry.ServiceName = "qf" },
			contains: []string{"telemetry.endpoint is required when"},
		},
		{
			name:     "retry multiplier too small",
			mutate:   func(c *Config) { c.Client.Retry.Multiplier = 1.0 },
			contains: []string{"client.retry.multiplier must be at least 1.1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			require.Error(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, err.Error(), s)
			}
		})
	}
}

func TestConfig_Validate_CacheEnabled(t *testing.T) {
	cfg := validConfig()
	cfg.Cache = CacheConfig{Enabled: true, TTL: time.Minute, MaxSize: 100}

	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_MultipleErrors(t *testing.T) {
	cfg := validConfig()
	cfg.App.Name = ""
	cfg.Server.Port = 0

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "app.name")
	assert.Contains(t, err.Error(), "server.port")
}

func TestFormatFieldPath(t *testing.T) {
	assert.Equal(t, "server.port", formatFieldPath("Config.server.port"))
	assert.Equal(t, "services.quote.base_url", formatFieldPath("Config.services.quote.base_url"))
	assert.Equal(t, "Config", formatFieldPath("Config"))
}
