package llm

import (
	"context"
	"errors"
	"io"
	"math"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultGroqBaseURL is the OpenAI-compatible endpoint of the Groq API.
const DefaultGroqBaseURL = "https://api.groq.com/openai/v1"

// GroqProvider implements Provider using the Groq Chat Completions API (OpenAI-compatible).
type GroqProvider struct {
	client *openai.Client
}

// Compile-time check that GroqProvider satisfies the Provider interface.
var _ Provider = (*GroqProvider)(nil)

// GroqOption configures a GroqProvider.
type GroqOption func(*openai.ClientConfig)

// WithBaseURL points the provider at a different OpenAI-compatible endpoint.
func WithBaseURL(url string) GroqOption {
	return func(c *openai.ClientConfig) {
		if url != "" {
			c.BaseURL = url
		}
	}
}

// WithHTTPClient overrides the HTTP client used for API calls.
func WithHTTPClient(hc *http.Client) GroqOption {
	return func(c *openai.ClientConfig) {
		if hc != nil {
			c.HTTPClient = hc
		}
	}
}

// NewGroqProvider creates a new Groq provider bound to apiKey.
func NewGroqProvider(apiKey string, opts ...GroqOption) *GroqProvider {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = DefaultGroqBaseURL
	for _, o := range opts {
		o(&cfg)
	}
	return &GroqProvider{client: openai.NewClientWithConfig(cfg)}
}

// NewGroqFactory returns a Factory that builds Groq providers sharing opts.
func NewGroqFactory(opts ...GroqOption) Factory {
	return func(apiKey string) Provider {
		return NewGroqProvider(apiKey, opts...)
	}
}

func (p *GroqProvider) Name() string {
	return "groq"
}

func (p *GroqProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	resp, err := p.client.CreateChatCompletion(ctx, toOpenAIRequest(req))
	if err != nil {
		return nil, err
	}

	var content, finishReason string
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
		finishReason = string(resp.Choices[0].FinishReason)
	}

	return &CompletionResponse{
		Content:      content,
		Usage:        fromOpenAIUsage(&resp.Usage),
		Model:        resp.Model,
		FinishReason: finishReason,
	}, nil
}

func (p *GroqProvider) Stream(ctx context.Context, req CompletionRequest, fn DeltaFunc) (*CompletionResponse, error) {
	apiReq := toOpenAIRequest(req)
	apiReq.Stream = true
	apiReq.StreamOptions = &openai.StreamOptions{IncludeUsage: true}

	stream, err := p.client.CreateChatCompletionStream(ctx, apiReq)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	out := &CompletionResponse{Model: req.Model}
	var content []byte
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		if chunk.Model != "" {
			out.Model = chunk.Model
		}
		if chunk.Usage != nil {
			out.Usage = fromOpenAIUsage(chunk.Usage)
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		choice := chunk.Choices[0]
		if choice.FinishReason != "" {
			out.FinishReason = string(choice.FinishReason)
		}
		if delta := choice.Delta.Content; delta != "" {
			content = append(content, delta...)
			if fn != nil {
				fn(delta)
			}
		}
	}

	out.Content = string(content)
	return out, nil
}

func toOpenAIRequest(req CompletionRequest) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	// go-openai drops a zero temperature via omitempty, which the API then
	// reads as its own default.
	temperature := float32(req.Temperature)
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	return openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: temperature,
	}
}

// fromOpenAIUsage treats an all-zero usage block as absent: go-openai
// decodes a missing "usage" object into the zero value.
func fromOpenAIUsage(u *openai.Usage) *Usage {
	if u == nil || (u.TotalTokens == 0 && u.PromptTokens == 0 && u.CompletionTokens == 0) {
		return nil
	}
	return &Usage{
		PromptTokens:     u.PromptTokens,
		CompletionTokens: u.CompletionTokens,
		TotalTokens:      u.TotalTokens,
	}
}
