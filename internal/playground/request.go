package playground

import (
	"fmt"
	"strings"
)

// Parameter bounds and defaults for the generation controls.
const (
	MinTemperature     = 0.0
	MaxTemperature     = 1.0
	DefaultTemperature = 0.5
	MinMaxTokens       = 1
	MaxMaxTokens       = 2048
	DefaultMaxTokens   = 1024
	DefaultStream      = true
)

// Request is one user submission. It lives only for the duration of a call.
type Request struct {
	Model       Model
	Prompt      string
	Temperature float64
	MaxTokens   int
	Stream      bool
	APIKey      string
}

// NewRequest returns a Request with the default generation parameters.
func NewRequest(model Model, prompt, apiKey string) Request {
	return Request{
		Model:       model,
		Prompt:      prompt,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
		Stream:      DefaultStream,
		APIKey:      apiKey,
	}
}

// Validate checks the request without contacting the backend.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" || strings.TrimSpace(r.APIKey) == "" {
		field := "prompt"
		if strings.TrimSpace(r.Prompt) != "" {
			field = "api_key"
		}
		return &ValidationError{Field: field, Message: "Please enter a prompt and API key."}
	}
	if !r.Model.Valid() {
		return &ValidationError{Field: "model", Message: fmt.Sprintf("unsupported model %q", r.Model)}
	}
	if r.Temperature < MinTemperature || r.Temperature > MaxTemperature {
		return &ValidationError{
			Field:   "temperature",
			Message: fmt.Sprintf("temperature must be between %.1f and %.1f", MinTemperature, MaxTemperature),
		}
	}
	if r.MaxTokens < MinMaxTokens || r.MaxTokens > MaxMaxTokens {
		return &ValidationError{
			Field:   "max_tokens",
			Message: fmt.Sprintf("max tokens must be between %d and %d", MinMaxTokens, MaxMaxTokens),
		}
	}
	return nil
}

// WithModel returns a copy of r targeting model m.
func (r Request) WithModel(m Model) Request {
	r.Model = m
	return r
}
