package config

// Config is the top-level playground configuration, corresponding to .playground.yml.
type Config struct {
	// BaseURL is the OpenAI-compatible inference endpoint.
	BaseURL               string       `yaml:"base_url" koanf:"base_url"`
	DefaultModel          string       `yaml:"default_model" koanf:"default_model"`
	Temperature           float64      `yaml:"temperature" koanf:"temperature"`
	MaxTokens             int          `yaml:"max_tokens" koanf:"max_tokens"`
	Stream                bool         `yaml:"stream" koanf:"stream"`
	RequestTimeoutSeconds int          `yaml:"request_timeout_seconds" koanf:"request_timeout_seconds"`
	RateLimitRPM          int          `yaml:"rate_limit_rpm" koanf:"rate_limit_rpm"`
	Server                ServerConfig `yaml:"server" koanf:"server"`
}

// ServerConfig holds web server settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
