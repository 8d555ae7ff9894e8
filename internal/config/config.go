// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML or TOML file, a dotenv file, and environment variables
//   over the defaults.
// - Errors returned by Load wrap this package's sentinels.
package config

import (
	"regexp"
	"strings"
	"time"

	"github.com/okian/featurelab/internal/domain/cities"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text, json or tint.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// APIKey is the shared secret expected in the api-key header.
	APIKey string `koanf:"api_key"`

	// Banner is the text of the root page heading.
	Banner string `koanf:"banner"`

	// Colors is the list served by GET /colors.
	Colors []string `koanf:"colors"`

	// CityFacts maps city names to their one-sentence description.
	CityFacts map[string]string `koanf:"city_facts"`

	// MaxBodyBytes caps JSON request bodies.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// CORSAllowedOrigins enables CORS for the listed origins; empty disables it.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// MetricsEnabled exposes GET /metrics.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// Prometheus naming: <namespace>_<subsystem>_requests_total.
	MetricsNamespace   string            `koanf:"metrics_namespace"`
	MetricsSubsystem   string            `koanf:"metrics_subsystem"`
	MetricsBuckets     []float64         `koanf:"metrics_buckets"`
	MetricsConstLabels map[string]string `koanf:"metrics_const_labels"`

	// DocsEnabled exposes GET /openapi.yaml and GET /api-docs.
	DocsEnabled bool `koanf:"docs_enabled"`

	// HTTP server timeouts.
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":8080",
		APIKey:           "mysecretkey",
		Banner:           "Welcome to Feature Lab Service!",
		Colors:           []string{"red", "blue", "green", "yellow"},
		CityFacts:        cities.DefaultFacts(),
		MaxBodyBytes:     100 << 10,
		MetricsEnabled:   true,
		MetricsNamespace: "featurelab",
		MetricsSubsystem: "http",
		MetricsBuckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250},
		DocsEnabled:      true,
		ReadTimeout:      10 * time.Second,
		WriteTimeout:     10 * time.Second,
		IdleTimeout:      60 * time.Second,
		ShutdownTimeout:  30 * time.Second,
	}
}

// metricName matches Prometheus metric and label name components.
var metricName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return NewInvalid("addr must not be empty")
	case c.APIKey == "":
		return NewInvalid("api_key must not be empty")
	case c.MaxBodyBytes <= 0:
		return NewInvalid("max_body_bytes must be positive")
	case !metricName.MatchString(c.MetricsNamespace):
		return NewInvalid("invalid metrics_namespace " + c.MetricsNamespace)
	case !metricName.MatchString(c.MetricsSubsystem):
		return NewInvalid("invalid metrics_subsystem " + c.MetricsSubsystem)
	}
	switch c.LogFormat {
	case "", "text", "json", "tint":
	default:
		return NewInvalid("unknown log_format " + c.LogFormat)
	}
	for i := 1; i < len(c.MetricsBuckets); i++ {
		if c.MetricsBuckets[i] <= c.MetricsBuckets[i-1] {
			return NewInvalid("metrics_buckets must be strictly increasing")
		}
	}
	for name := range c.MetricsConstLabels {
		if !metricName.MatchString(name) || strings.HasPrefix(name, "__") {
			return NewInvalid("invalid metrics_const_labels name " + name)
		}
	}
	return nil
}
