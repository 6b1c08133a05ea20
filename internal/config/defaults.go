package config

import (
	"github.com/openrag/llm-playground/internal/llm"
	"github.com/openrag/llm-playground/internal/playground"
)

// DefaultPath is the config file read when --config is not given.
const DefaultPath = ".playground.yml"

// APIKeyEnvVar is consulted by the CLI when no --api-key flag is given.
const APIKeyEnvVar = "GROQ_API_KEY"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:               llm.DefaultGroqBaseURL,
		DefaultModel:          string(playground.DefaultModel),
		Temperature:           playground.DefaultTemperature,
		MaxTokens:             playground.DefaultMaxTokens,
		Stream:                playground.DefaultStream,
		RequestTimeoutSeconds: 60,
		RateLimitRPM:          0,
		Server: ServerConfig{
			Port:            8080,
			AllowAllOrigins: false,
		},
	}
}
