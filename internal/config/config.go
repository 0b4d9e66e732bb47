// Package config loads the JSON configuration file consumed by cmd/annctl
// at startup (spec §6.5): endpoint, credentials, and deployment identifier
// for the embedder, store, and HTTP layer.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/annvec/annvec/internal/apperr"
)

// Config is the top-level configuration document.
type Config struct {
	Deployment string         `json:"deployment,omitempty"`
	Dims       int            `json:"dims"`
	Embedder   EmbedderConfig `json:"embedder"`
	Store      StoreConfig    `json:"store"`
	HTTP       HTTPConfig     `json:"http"`
	Search     SearchConfig   `json:"search"`
}

// EmbedderConfig selects and configures the Embedder collaborator.
type EmbedderConfig struct {
	// Kind is "openai" or "hash". "hash" needs no credentials and is
	// meant for offline/test deployments.
	Kind    string `json:"kind"`
	APIKey  string `json:"api_key,omitempty"`  // may be "$ENV_VAR_NAME"
	BaseURL string `json:"base_url,omitempty"` // for OpenAI-compatible providers
	Model   string `json:"model,omitempty"`
}

// StoreConfig selects and configures the Store collaborator.
type StoreConfig struct {
	// Kind is "badger" or "mem".
	Kind string `json:"kind"`
	Dir  string `json:"dir,omitempty"` // required when Kind == "badger"
}

// HTTPConfig configures the operational HTTP surface.
type HTTPConfig struct {
	Addr           string `json:"addr"`
	JWTSecret      string `json:"jwt_secret,omitempty"` // may be "$ENV_VAR_NAME"
	RateLimitRPS   int    `json:"rate_limit_rps,omitempty"`
	RateLimitBurst int    `json:"rate_limit_burst,omitempty"`
}

// SearchConfig configures default search behavior.
type SearchConfig struct {
	DefaultK         int  `json:"default_k,omitempty"`
	DefaultReorder   bool `json:"default_reorder,omitempty"`
	DefaultOvershoot int  `json:"default_overshoot,omitempty"`
}

// Default returns a configuration suitable for local/offline use: a
// hash-based embedder and an in-memory store.
func Default() Config {
	return Config{
		Deployment: "dev",
		Dims:       1536,
		Embedder:   EmbedderConfig{Kind: "hash"},
		Store:      StoreConfig{Kind: "mem"},
		HTTP: HTTPConfig{
			Addr:           ":8080",
			RateLimitRPS:   50,
			RateLimitBurst: 100,
		},
		Search: SearchConfig{
			DefaultK:         10,
			DefaultReorder:   true,
			DefaultOvershoot: 30,
		},
	}
}

// Load reads and parses a JSON configuration file from path. The
// embedder.api_key and http.jwt_secret values, when of the form
// "$ENV_VAR_NAME", are expanded against the process environment; no
// other field is expanded.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, apperr.Wrap(apperr.Internal, err, "read config file %s", path)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, apperr.Wrap(apperr.Internal, err, "parse config file %s", path)
	}

	cfg.Embedder.APIKey = expandEnv(cfg.Embedder.APIKey)
	cfg.HTTP.JWTSecret = expandEnv(cfg.HTTP.JWTSecret)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// expandEnv resolves a "$ENV_VAR_NAME" placeholder to the named
// environment variable's value; any other string passes through as-is.
func expandEnv(v string) string {
	if strings.HasPrefix(v, "$") {
		return os.Getenv(strings.TrimPrefix(v, "$"))
	}
	return v
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	if c.Dims <= 0 {
		return apperr.New(apperr.InvalidArgument, "dims must be positive, got %d", c.Dims)
	}
	switch c.Embedder.Kind {
	case "openai":
		if c.Embedder.APIKey == "" {
			return apperr.New(apperr.InvalidArgument, "embedder.api_key is required for kind=openai")
		}
	case "hash":
	default:
		return apperr.New(apperr.InvalidArgument, "unknown embedder.kind %q", c.Embedder.Kind)
	}
	switch c.Store.Kind {
	case "badger":
		if c.Store.Dir == "" {
			return apperr.New(apperr.InvalidArgument, "store.dir is required for kind=badger")
		}
	case "mem":
	default:
		return apperr.New(apperr.InvalidArgument, "unknown store.kind %q", c.Store.Kind)
	}
	if c.HTTP.Addr == "" {
		return apperr.New(apperr.InvalidArgument, "http.addr must be set")
	}
	if c.Search.DefaultK <= 0 {
		return fmt.Errorf("search.default_k must be positive, got %d", c.Search.DefaultK)
	}
	return nil
}
