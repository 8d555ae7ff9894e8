package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/docker/go-units"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pelletier/go-toml/v2"
)

// Environment variable names.
const (
	EnvPrefix   = "FEATURELAB_"
	EnvFile     = EnvPrefix + "CONFIG"
	EnvDotenv   = EnvPrefix + "ENV_FILE"
	bodySizeKey = "max_body_bytes"
)

// listKeys are split on commas when they come from the environment.
var listKeys = map[string]bool{
	"colors":               true,
	"cors_allowed_origins": true,
	"metrics_buckets":      true,
}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML, or TOML by extension) if FEATURELAB_CONFIG is set
//  3. dotenv file if FEATURELAB_ENV_FILE is set
//  4. env (prefix FEATURELAB_)
//
// max_body_bytes accepts plain byte counts and human sizes such as "100kb".
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(EnvFile); path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, wrapLoad("file "+path, err)
		}
	}

	if path := os.Getenv(EnvDotenv); path != "" {
		if err := k.Load(dotenvProvider{path: path}, nil); err != nil {
			return nil, wrapLoad("dotenv "+path, err)
		}
	}

	// FEATURELAB_MAX_BODY_BYTES -> max_body_bytes (flat keys).
	envProvider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		return envKey(key), envValue(envKey(key), value)
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, wrapLoad("env", err)
	}

	if k.Exists(bodySizeKey) {
		n, err := units.RAMInBytes(k.String(bodySizeKey))
		if err != nil {
			return nil, wrapLoad(bodySizeKey, err)
		}
		if err := k.Set(bodySizeKey, n); err != nil {
			return nil, wrapLoad(bodySizeKey, err)
		}
	}

	cfg := *base
	// Collections provided by a layer replace the defaults instead of
	// being merged into them element by element.
	if k.Exists("colors") {
		cfg.Colors = nil
	}
	if k.Exists("cors_allowed_origins") {
		cfg.CORSAllowedOrigins = nil
	}
	if k.Exists("city_facts") {
		cfg.CityFacts = nil
	}
	if k.Exists("metrics_buckets") {
		cfg.MetricsBuckets = nil
	}
	if k.Exists("metrics_const_labels") {
		cfg.MetricsConstLabels = nil
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, wrapLoad("decode", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func envKey(key string) string {
	return strings.TrimPrefix(strings.ToLower(key), strings.ToLower(EnvPrefix))
}

func envValue(key, value string) any {
	if listKeys[key] {
		return splitList(value)
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parserFor(path string) koanf.Parser {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return tomlParser{}
	}
	return yaml.Parser()
}

// tomlParser adapts go-toml to koanf.Parser.
type tomlParser struct{}

func (tomlParser) Unmarshal(b []byte) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := toml.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (tomlParser) Marshal(m map[string]interface{}) ([]byte, error) {
	return toml.Marshal(m)
}

// dotenvProvider reads FEATURELAB_* entries from a dotenv file without
// touching the process environment.
type dotenvProvider struct {
	path string
}

func (p dotenvProvider) Read() (map[string]interface{}, error) {
	vars, err := godotenv.Read(p.path)
	if err != nil {
		return nil, err
	}
	out := make(map[string]interface{}, len(vars))
	for name, value := range vars {
		if !strings.HasPrefix(name, EnvPrefix) || name == EnvFile || name == EnvDotenv {
			continue
		}
		key := envKey(name)
		out[key] = envValue(key, value)
	}
	return out, nil
}

func (dotenvProvider) ReadBytes() ([]byte, error) {
	return nil, errors.New("dotenv provider does not support ReadBytes")
}
