// Package config loads service settings from the environment.
package config

import (
	"cmp"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every environment-sourced setting. Provider credentials are
// optional here; their absence only fails the first call that needs them.
type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	Env      string `envconfig:"APP_ENV"` // "development", "production"
	NodeEnv  string `envconfig:"NODE_ENV"`
	LogLevel string `envconfig:"LOG_LEVEL"`

	AIProvider    string `envconfig:"AI_PROVIDER" default:"openai"` // "openai", "gemini"
	OpenAIKey     string `envconfig:"OPENAI_API_KEY"`
	OpenAIModel   string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL"`
	GeminiKey     string `envconfig:"GEMINI_API_KEY"`
	GeminiModel   string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`

	// StructuredOutput requests the story as schema-checked JSON. Disable it
	// for OpenAI-compatible servers that reject response_format.
	StructuredOutput bool `envconfig:"STRUCTURED_OUTPUT" default:"true"`

	PublicAPIOrigin  string        `envconfig:"PUBLIC_API_ORIGIN"`
	OpenverseURL     string        `envconfig:"OPENVERSE_URL" default:"https://api.openverse.engineering"`
	WikimediaURL     string        `envconfig:"WIKIMEDIA_URL" default:"https://commons.wikimedia.org"`
	PlaceholderURL   string        `envconfig:"PLACEHOLDER_URL" default:"https://placehold.co/800x500"`
	ImageTimeout     time.Duration `envconfig:"IMAGE_TIMEOUT" default:"15s"`
	ProxyTimeout     time.Duration `envconfig:"PROXY_TIMEOUT" default:"30s"`
	ImageConcurrency int           `envconfig:"IMAGE_CONCURRENCY" default:"11"`
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// envconfig keeps a variable that is set but empty, so fall back by hand.
	cfg.AIProvider = cmp.Or(strings.ToLower(strings.TrimSpace(cfg.AIProvider)), "openai")
	cfg.OpenAIModel = cmp.Or(cfg.OpenAIModel, "gpt-4o-mini")
	cfg.GeminiModel = cmp.Or(cfg.GeminiModel, "gemini-2.5-flash")
	// APP_ENV wins over NODE_ENV
	cfg.Env = cmp.Or(strings.ToLower(strings.TrimSpace(cmp.Or(cfg.Env, cfg.NodeEnv))), "development")
	cfg.Port = cmp.Or(cfg.Port, "8080")
	switch cfg.AIProvider {
	case "openai", "gemini":
	default:
		return nil, fmt.Errorf("load config: unsupported AI_PROVIDER %q", cfg.AIProvider)
	}
	if cfg.ImageConcurrency <= 0 {
		cfg.ImageConcurrency = 1
	}
	cfg.PublicAPIOrigin = strings.TrimRight(cfg.PublicAPIOrigin, "/")

	return &cfg, nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// IsDev reports whether diagnostics may be exposed to clients.
func (c *Config) IsDev() bool {
	return c.Env != "production"
}

// Model returns the model name of the active provider.
func (c *Config) Model() string {
	if c.AIProvider == "gemini" {
		return c.GeminiModel
	}
	return c.OpenAIModel
}
