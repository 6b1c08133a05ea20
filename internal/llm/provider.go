package llm

import "context"

// Provider defines the interface for LLM providers.
type Provider interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Stream sends a streaming completion request, calling fn for every text
	// delta, and returns the assembled response once the stream ends.
	Stream(ctx context.Context, req CompletionRequest, fn DeltaFunc) (*CompletionResponse, error)
	// Name returns the name of this provider.
	Name() string
}

// Factory builds a Provider bound to the given API key. Keys are supplied per
// request by the user, so providers are constructed on demand.
type Factory func(apiKey string) Provider
