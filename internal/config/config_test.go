package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/openrag/llm-playground/internal/llm"
	"github.com/openrag/llm-playground/internal/playground"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.BaseURL != llm.DefaultGroqBaseURL {
		t.Errorf("expected default base_url %q, got %q", llm.DefaultGroqBaseURL, cfg.BaseURL)
	}
	if cfg.DefaultModel != string(playground.DefaultModel) {
		t.Errorf("expected default model %q, got %q", playground.DefaultModel, cfg.DefaultModel)
	}
	if cfg.Temperature != 0.5 {
		t.Errorf("expected default temperature 0.5, got %f", cfg.Temperature)
	}
	if cfg.MaxTokens != 1024 {
		t.Errorf("expected default max_tokens 1024, got %d", cfg.MaxTokens)
	}
	if !cfg.Stream {
		t.Error("expected streaming on by default")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.playground.yml")

	original := DefaultConfig()
	original.DefaultModel = "gemma2-9b-it"
	original.Temperature = 0.9
	original.MaxTokens = 256
	original.Stream = false
	original.RateLimitRPM = 30
	original.Server.Port = 9090
	original.Server.AllowAllOrigins = true

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.DefaultModel != original.DefaultModel {
		t.Errorf("default_model: got %q, want %q", loaded.DefaultModel, original.DefaultModel)
	}
	if loaded.Temperature != original.Temperature {
		t.Errorf("temperature: got %f, want %f", loaded.Temperature, original.Temperature)
	}
	if loaded.MaxTokens != original.MaxTokens {
		t.Errorf("max_tokens: got %d, want %d", loaded.MaxTokens, original.MaxTokens)
	}
	if loaded.Stream != original.Stream {
		t.Errorf("stream: got %v, want %v", loaded.Stream, original.Stream)
	}
	if loaded.RateLimitRPM != original.RateLimitRPM {
		t.Errorf("rate_limit_rpm: got %d, want %d", loaded.RateLimitRPM, original.RateLimitRPM)
	}
	if loaded.Server != original.Server {
		t.Errorf("server: got %+v, want %+v", loaded.Server, original.Server)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.DefaultModel != string(playground.DefaultModel) {
		t.Errorf("expected default model, got %q", cfg.DefaultModel)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yml")
	if err := os.WriteFile(path, []byte("max_tokens: 64\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MaxTokens != 64 {
		t.Errorf("max_tokens: got %d, want 64", cfg.MaxTokens)
	}
	if cfg.Temperature != 0.5 {
		t.Errorf("temperature should keep its default, got %f", cfg.Temperature)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("PLAYGROUND_DEFAULT_MODEL", "llama3-70b-8192")
	t.Setenv("PLAYGROUND_MAX_TOKENS", "512")
	t.Setenv("PLAYGROUND_SERVER__PORT", "3000")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.DefaultModel != "llama3-70b-8192" {
		t.Errorf("env override failed: got %q", loaded.DefaultModel)
	}
	if loaded.MaxTokens != 512 {
		t.Errorf("env override failed: got max_tokens %d", loaded.MaxTokens)
	}
	if loaded.Server.Port != 3000 {
		t.Errorf("nested env override failed: got port %d", loaded.Server.Port)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yml")
	if err := os.WriteFile(path, []byte("max_tokens: [unclosed\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base url", func(c *Config) { c.BaseURL = "" }},
		{"relative base url", func(c *Config) { c.BaseURL = "api/v1" }},
		{"unknown model", func(c *Config) { c.DefaultModel = "gpt-4o" }},
		{"temperature too high", func(c *Config) { c.Temperature = 1.1 }},
		{"negative temperature", func(c *Config) { c.Temperature = -0.1 }},
		{"zero max tokens", func(c *Config) { c.MaxTokens = 0 }},
		{"max tokens too high", func(c *Config) { c.MaxTokens = 2049 }},
		{"zero timeout", func(c *Config) { c.RequestTimeoutSeconds = 0 }},
		{"negative rate limit", func(c *Config) { c.RateLimitRPM = -1 }},
		{"zero port", func(c *Config) { c.Server.Port = 0 }},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestRequestTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RequestTimeoutSeconds = 15
	if got := cfg.RequestTimeout(); got != 15*time.Second {
		t.Errorf("RequestTimeout() = %v, want 15s", got)
	}
}

func TestBaseRequest(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultModel = "gemma-7b-it"
	cfg.Temperature = 0.1
	cfg.MaxTokens = 10
	cfg.Stream = false

	req := cfg.BaseRequest("hello", "key")
	want := playground.Request{
		Model:       playground.ModelGemma7B,
		Prompt:      "hello",
		Temperature: 0.1,
		MaxTokens:   10,
		Stream:      false,
		APIKey:      "key",
	}
	if req != want {
		t.Errorf("BaseRequest() = %+v, want %+v", req, want)
	}
}

func TestValidators(t *testing.T) {
	vf := validateFloatRange(0, 1)
	if vf("0.5") != nil || vf("1.5") == nil || vf("abc") == nil {
		t.Error("validateFloatRange misbehaves")
	}
	vi := validateIntRange(1, 2048)
	if vi("1024") != nil || vi("0") == nil || vi("1.5") == nil {
		t.Error("validateIntRange misbehaves")
	}
}
