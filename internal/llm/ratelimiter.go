package llm

import (
	"context"
	"sync"
	"time"
)

// Limiter is a token bucket allowing at most rpm requests per minute. A
// single Limiter is shared by every provider the server builds, since
// providers are created per API key.
type Limiter struct {
	rpm      int
	mu       sync.Mutex
	tokens   int
	lastFill time.Time
}

// NewLimiter returns a limiter for rpm requests per minute, or nil when rpm
// is not positive. A nil *Limiter never blocks.
func NewLimiter(rpm int) *Limiter {
	if rpm <= 0 {
		return nil
	}
	return &Limiter{
		rpm:      rpm,
		tokens:   rpm,
		lastFill: time.Now(),
	}
}

// Wait blocks until a request may proceed or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}
	for {
		l.mu.Lock()
		now := time.Now()
		elapsed := now.Sub(l.lastFill)

		// Refill tokens based on elapsed time.
		refill := int(elapsed.Seconds() * float64(l.rpm) / 60.0)
		if refill > 0 {
			l.tokens += refill
			if l.tokens > l.rpm {
				l.tokens = l.rpm
			}
			l.lastFill = now
		}

		if l.tokens > 0 {
			l.tokens--
			l.mu.Unlock()
			return nil
		}
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
}

// RateLimitedProvider wraps a Provider with a shared Limiter.
type RateLimitedProvider struct {
	provider Provider
	limiter  *Limiter
}

// NewRateLimitedProvider wraps provider so every call first waits on limiter.
// It returns provider unchanged when limiter is nil.
func NewRateLimitedProvider(provider Provider, limiter *Limiter) Provider {
	if limiter == nil {
		return provider
	}
	return &RateLimitedProvider{provider: provider, limiter: limiter}
}

// RateLimitFactory applies limiter to every provider built by f.
func RateLimitFactory(f Factory, limiter *Limiter) Factory {
	return func(apiKey string) Provider {
		return NewRateLimitedProvider(f(apiKey), limiter)
	}
}

func (r *RateLimitedProvider) Name() string {
	return r.provider.Name()
}

func (r *RateLimitedProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.provider.Complete(ctx, req)
}

func (r *RateLimitedProvider) Stream(ctx context.Context, req CompletionRequest, fn DeltaFunc) (*CompletionResponse, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.provider.Stream(ctx, req, fn)
}
