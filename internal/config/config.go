package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/openrag/llm-playground/internal/playground"
)

// envPrefix marks environment overrides: PLAYGROUND_MAX_TOKENS -> max_tokens,
// PLAYGROUND_SERVER__PORT -> server.port.
const envPrefix = "PLAYGROUND_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (PLAYGROUND_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base_url %q", c.BaseURL)
	}

	if _, err := playground.ParseModel(c.DefaultModel); err != nil {
		return fmt.Errorf("invalid default_model: %w", err)
	}

	if c.Temperature < playground.MinTemperature || c.Temperature > playground.MaxTemperature {
		return fmt.Errorf("temperature must be between %.1f and %.1f", playground.MinTemperature, playground.MaxTemperature)
	}

	if c.MaxTokens < playground.MinMaxTokens || c.MaxTokens > playground.MaxMaxTokens {
		return fmt.Errorf("max_tokens must be between %d and %d", playground.MinMaxTokens, playground.MaxMaxTokens)
	}

	if c.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("request_timeout_seconds must be positive")
	}

	if c.RateLimitRPM < 0 {
		return fmt.Errorf("rate_limit_rpm must be non-negative")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	return nil
}

// RequestTimeout returns the per-request timeout as a Duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// BaseRequest returns a playground request prefilled with the configured
// generation defaults.
func (c *Config) BaseRequest(prompt, apiKey string) playground.Request {
	return playground.Request{
		Model:       playground.Model(c.DefaultModel),
		Prompt:      prompt,
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
		Stream:      c.Stream,
		APIKey:      apiKey,
	}
}
