// Package playground implements the prompt form controller: it validates a
// single submission, forwards it to the inference backend and reports the
// returned text together with latency and token statistics.
package playground

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/openrag/llm-playground/internal/llm"
)

// Controller turns form submissions into backend calls. It holds no
// per-submission state and is safe for concurrent use.
type Controller struct {
	providers llm.Factory
	logger    *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for submission records.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewController creates a Controller that builds a backend provider for each
// submission's API key using providers.
func NewController(providers llm.Factory, opts ...Option) *Controller {
	c := &Controller{
		providers: providers,
		logger:    slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Submit validates req and performs one blocking backend call. It returns a
// *ValidationError without calling the backend when the input is rejected,
// and a *CallError when the backend call fails.
func (c *Controller) Submit(ctx context.Context, req Request) (*Response, error) {
	return c.SubmitStream(ctx, req, nil)
}

// SubmitStream is Submit with a callback for incremental text. onDelta is
// only invoked when req.Stream is set; it may be nil.
func (c *Controller) SubmitStream(ctx context.Context, req Request, onDelta llm.DeltaFunc) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if onDelta == nil {
		onDelta = func(string) {}
	}

	id := uuid.New().String()
	provider := c.providers(req.APIKey)
	apiReq := llm.CompletionRequest{
		Model:       string(req.Model),
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: req.Prompt}},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	start := time.Now()
	out, err := call(ctx, provider, apiReq, req.Stream, onDelta)
	elapsed := time.Since(start)

	if err != nil {
		callErr := newCallError(req.Model, err)
		c.logger.Warn("submission failed",
			"id", id,
			"model", req.Model,
			"duration", elapsed,
			"kind", callErr.Kind,
			"error", callErr.Message,
		)
		return nil, callErr
	}

	tokens := Unknown()
	if out.Usage != nil {
		tokens = Tokens(out.Usage.TotalTokens)
	}

	resp := &Response{
		ID:           id,
		Model:        req.Model,
		Text:         out.Content,
		Duration:     elapsed,
		Tokens:       tokens,
		FinishReason: out.FinishReason,
	}
	c.logger.Info("submission complete",
		"id", id,
		"model", req.Model,
		"stream", req.Stream,
		"duration", elapsed,
		"tokens", tokens.String(),
	)
	return resp, nil
}

// call performs the backend request, converting a provider panic into an error.
func call(ctx context.Context, p llm.Provider, req llm.CompletionRequest, stream bool, onDelta llm.DeltaFunc) (out *llm.CompletionResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("provider panic: %v", r)
		}
	}()

	if stream {
		out, err = p.Stream(ctx, req, onDelta)
	} else {
		out, err = p.Complete(ctx, req)
	}
	if err == nil && out == nil {
		err = fmt.Errorf("provider %s returned no response", p.Name())
	}
	return out, err
}

// Result is one side of a comparison: exactly one of Response and Err is set.
type Result struct {
	Model    Model
	Response *Response
	Err      error
}

// Comparison holds the independent results for the two comparison slots.
type Comparison struct {
	A Result
	B Result
}

// Compare submits base once for modelA and once for modelB. The two calls run
// concurrently and independently: a failure on one side is recorded in its
// Result and never cancels or alters the other.
func (c *Controller) Compare(ctx context.Context, base Request, modelA, modelB Model) Comparison {
	cmp := Comparison{
		A: Result{Model: modelA},
		B: Result{Model: modelB},
	}

	var g errgroup.Group
	for _, res := range []*Result{&cmp.A, &cmp.B} {
		g.Go(func() error {
			res.Response, res.Err = c.Submit(ctx, base.WithModel(res.Model))
			return nil
		})
	}
	_ = g.Wait()

	return cmp
}
