package playground

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openrag/llm-playground/internal/llm"
)

// stubProvider is a backend stand-in with scriptable behaviour per model.
type stubProvider struct {
	mu      sync.Mutex
	calls   []llm.CompletionRequest
	streams int32
	keys    []string

	text      string
	echoModel bool
	usage     *llm.Usage
	deltas []string
	delay  time.Duration
	errFor map[string]error
	panics bool
}

func (s *stubProvider) factory() llm.Factory {
	return func(apiKey string) llm.Provider {
		s.mu.Lock()
		s.keys = append(s.keys, apiKey)
		s.mu.Unlock()
		return s
	}
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	s.mu.Unlock()

	if s.panics {
		panic("backend exploded")
	}
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := s.errFor[req.Model]; err != nil {
		return nil, err
	}
	content := s.text
	if s.echoModel {
		content += req.Model
	}
	return &llm.CompletionResponse{
		Content: content,
		Usage:   s.usage,
		Model:   req.Model,
	}, nil
}

func (s *stubProvider) Stream(ctx context.Context, req llm.CompletionRequest, fn llm.DeltaFunc) (*llm.CompletionResponse, error) {
	atomic.AddInt32(&s.streams, 1)
	resp, err := s.Complete(ctx, req)
	if err != nil {
		return nil, err
	}
	for _, d := range s.deltas {
		if fn != nil {
			fn(d)
		}
	}
	return resp, nil
}

func (s *stubProvider) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func TestSubmitExample(t *testing.T) {
	stub := &stubProvider{text: "Hi there!", usage: &llm.Usage{TotalTokens: 5}}
	c := NewController(stub.factory())

	req := Request{
		Model:       ModelLlama3_8B,
		Prompt:      "Say hi",
		APIKey:      "valid-key",
		Temperature: 0.5,
		MaxTokens:   1024,
		Stream:      true,
	}
	resp, err := c.Submit(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "Hi there!", resp.Text)
	n, ok := resp.Tokens.Value()
	assert.True(t, ok)
	assert.Equal(t, 5, n)
	assert.GreaterOrEqual(t, resp.Duration, time.Duration(0))
	assert.Equal(t, ModelLlama3_8B, resp.Model)
	assert.NotEmpty(t, resp.ID)
}

func TestSubmitSendsSingleUserMessage(t *testing.T) {
	stub := &stubProvider{}
	c := NewController(stub.factory())

	req := NewRequest(ModelGemma2_9B, "What is Go?", "secret")
	req.Temperature = 0.2
	req.MaxTokens = 64
	req.Stream = false
	_, err := c.Submit(context.Background(), req)
	require.NoError(t, err)

	require.Equal(t, 1, stub.callCount())
	got := stub.calls[0]
	assert.Equal(t, "gemma2-9b-it", got.Model)
	assert.Equal(t, 64, got.MaxTokens)
	assert.InDelta(t, 0.2, got.Temperature, 1e-9)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, llm.RoleUser, got.Messages[0].Role)
	assert.Equal(t, "What is Go?", got.Messages[0].Content)
	assert.Equal(t, []string{"secret"}, stub.keys)
	assert.Zero(t, atomic.LoadInt32(&stub.streams))
}

func TestSubmitValidationNeverCallsBackend(t *testing.T) {
	tests := []struct {
		name  string
		req   Request
		field string
	}{
		{"empty prompt", NewRequest(ModelLlama3_8B, "", "key"), "prompt"},
		{"blank prompt", NewRequest(ModelLlama3_8B, "   \n", "key"), "prompt"},
		{"empty key", NewRequest(ModelLlama3_8B, "hello", ""), "api_key"},
		{"both empty", NewRequest(ModelLlama3_8B, "", ""), "prompt"},
		{"unsupported model", NewRequest(Model("gpt-4o"), "hello", "key"), "model"},
		{"temperature too high", Request{Model: ModelLlama3_8B, Prompt: "p", APIKey: "k", Temperature: 1.5, MaxTokens: 10}, "temperature"},
		{"temperature negative", Request{Model: ModelLlama3_8B, Prompt: "p", APIKey: "k", Temperature: -0.1, MaxTokens: 10}, "temperature"},
		{"max tokens zero", Request{Model: ModelLlama3_8B, Prompt: "p", APIKey: "k", MaxTokens: 0}, "max_tokens"},
		{"max tokens too high", Request{Model: ModelLlama3_8B, Prompt: "p", APIKey: "k", MaxTokens: 4096}, "max_tokens"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubProvider{}
			c := NewController(stub.factory())

			resp, err := c.Submit(context.Background(), tt.req)
			assert.Nil(t, resp)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
			assert.Zero(t, stub.callCount(), "backend must not be called")
			assert.Empty(t, stub.keys, "no provider should be built")
		})
	}
}

func TestSubmitEmptyInputMessage(t *testing.T) {
	c := NewController((&stubProvider{}).factory())
	_, err := c.Submit(context.Background(), NewRequest(ModelLlama3_8B, "", "k"))
	require.Error(t, err)
	assert.Equal(t, "Please enter a prompt and API key.", err.Error())
}

func TestSubmitTokenAccounting(t *testing.T) {
	t.Run("usage present", func(t *testing.T) {
		stub := &stubProvider{usage: &llm.Usage{PromptTokens: 7, CompletionTokens: 35, TotalTokens: 42}}
		resp, err := NewController(stub.factory()).Submit(context.Background(), NewRequest(ModelGemma7B, "p", "k"))
		require.NoError(t, err)
		n, ok := resp.Tokens.Value()
		assert.True(t, ok)
		assert.Equal(t, 42, n)
		assert.Equal(t, "42", resp.Tokens.String())
	})

	t.Run("usage absent", func(t *testing.T) {
		stub := &stubProvider{}
		resp, err := NewController(stub.factory()).Submit(context.Background(), NewRequest(ModelGemma7B, "p", "k"))
		require.NoError(t, err)
		assert.False(t, resp.Tokens.Known())
		assert.Equal(t, UnknownTokens, resp.Tokens.String())
		_, ok := resp.TokensPerSecond()
		assert.False(t, ok)
	})

	t.Run("zero usage reported", func(t *testing.T) {
		stub := &stubProvider{usage: &llm.Usage{}}
		resp, err := NewController(stub.factory()).Submit(context.Background(), NewRequest(ModelGemma7B, "p", "k"))
		require.NoError(t, err)
		n, ok := resp.Tokens.Value()
		assert.True(t, ok)
		assert.Zero(t, n)
	})
}

func TestSubmitCallError(t *testing.T) {
	apiErr := &openai.APIError{HTTPStatusCode: 401, Message: "Invalid API Key"}
	stub := &stubProvider{errFor: map[string]error{"llama3-8b-8192": apiErr}}
	c := NewController(stub.factory())

	resp, err := c.Submit(context.Background(), NewRequest(ModelLlama3_8B, "p", "bad-key"))
	assert.Nil(t, resp)

	var callErr *CallError
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, ModelLlama3_8B, callErr.Model)
	assert.Equal(t, llm.KindAuth, callErr.Kind)
	assert.Equal(t, "*openai.APIError", callErr.Type)
	assert.Equal(t, apiErr.Error(), callErr.Message)
	assert.ErrorIs(t, err, apiErr)
}

func TestSubmitRecoversProviderPanic(t *testing.T) {
	stub := &stubProvider{panics: true}
	c := NewController(stub.factory())

	var resp *Response
	var err error
	require.NotPanics(t, func() {
		resp, err = c.Submit(context.Background(), NewRequest(ModelLlama3_8B, "p", "k"))
	})
	assert.Nil(t, resp)
	var callErr *CallError
	require.ErrorAs(t, err, &callErr)
	assert.Contains(t, callErr.Message, "backend exploded")

	// The controller remains usable afterwards.
	stub.panics = false
	_, err = c.Submit(context.Background(), NewRequest(ModelLlama3_8B, "p", "k"))
	assert.NoError(t, err)
}

func TestSubmitDurationCoversDelay(t *testing.T) {
	delay := 50 * time.Millisecond
	stub := &stubProvider{delay: delay}
	c := NewController(stub.factory())

	resp, err := c.Submit(context.Background(), NewRequest(ModelLlama3_8B, "p", "k"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, resp.Duration, delay)
}

func TestSubmitStreamForwardsDeltas(t *testing.T) {
	stub := &stubProvider{deltas: []string{"a", "b", "c"}}
	c := NewController(stub.factory())

	var got []string
	req := NewRequest(ModelLlama3_8B, "p", "k")
	_, err := c.SubmitStream(context.Background(), req, func(d string) { got = append(got, d) })
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.EqualValues(t, 1, atomic.LoadInt32(&stub.streams))

	// Non-streaming requests never invoke the callback.
	got = nil
	req.Stream = false
	_, err = c.SubmitStream(context.Background(), req, func(d string) { got = append(got, d) })
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCompareIndependentResults(t *testing.T) {
	stub := &stubProvider{
		text:      "answer from ",
		echoModel: true,
		usage:     &llm.Usage{TotalTokens: 9},
		errFor:    map[string]error{"gemma-7b-it": errors.New("model decommissioned")},
	}
	c := NewController(stub.factory())

	cmp := c.Compare(context.Background(), NewRequest(ModelLlama3_8B, "p", "k"), ModelLlama3_70B, ModelGemma7B)

	require.NoError(t, cmp.A.Err)
	require.NotNil(t, cmp.A.Response)
	assert.Equal(t, ModelLlama3_70B, cmp.A.Model)
	assert.Equal(t, "answer from llama3-70b-8192", cmp.A.Response.Text)

	assert.Nil(t, cmp.B.Response)
	var callErr *CallError
	require.ErrorAs(t, cmp.B.Err, &callErr)
	assert.Equal(t, ModelGemma7B, callErr.Model)
	assert.Equal(t, "model decommissioned", callErr.Message)
	assert.Equal(t, 2, stub.callCount())
}

func TestCompareValidatesEachSide(t *testing.T) {
	stub := &stubProvider{errFor: map[string]error{"mixtral-8x7b-32768": errors.New("boom")}}
	c := NewController(stub.factory())

	cmp := c.Compare(context.Background(), NewRequest(ModelLlama3_8B, "", "k"), ModelLlama3_8B, ModelMixtral8x7B)

	// Validation failures are per side too.
	var vErr *ValidationError
	assert.ErrorAs(t, cmp.A.Err, &vErr)
	assert.ErrorAs(t, cmp.B.Err, &vErr)
	assert.Zero(t, stub.callCount())
}

func TestCompareRunsConcurrently(t *testing.T) {
	delay := 100 * time.Millisecond
	stub := &stubProvider{delay: delay}
	c := NewController(stub.factory())

	start := time.Now()
	cmp := c.Compare(context.Background(), NewRequest(ModelLlama3_8B, "p", "k"), ModelLlama31_8BInstant, ModelGemma2_9B)
	elapsed := time.Since(start)

	require.NoError(t, cmp.A.Err)
	require.NoError(t, cmp.B.Err)
	assert.Less(t, elapsed, 2*delay)
}

func TestParseModel(t *testing.T) {
	for _, m := range Models() {
		got, err := ParseModel(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	_, err := ParseModel("llama-2-70b")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "model", vErr.Field)
}

func TestModelCatalog(t *testing.T) {
	assert.Len(t, Models(), 7)
	assert.Equal(t, DefaultModel, Models()[0])
	assert.Equal(t, []Model{ModelLlama31_8BInstant, ModelLlama3_8B, ModelLlama3_70B}, SlotModels(SlotA))
	assert.Equal(t, []Model{ModelMixtral8x7B, ModelGemma7B, ModelGemma2_9B}, SlotModels(SlotB))
	for _, slot := range []Slot{SlotA, SlotB} {
		for _, m := range SlotModels(slot) {
			assert.True(t, m.Valid(), "slot model %s must be in the catalog", m)
		}
	}

	// Returned slices are copies.
	models := Models()
	models[0] = "mutated"
	assert.Equal(t, DefaultModel, Models()[0])
}

func TestTokenCountJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		A TokenCount `json:"a"`
		B TokenCount `json:"b"`
	}{Tokens(12), Unknown()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 12, "b": null}`, string(data))

	var decoded struct {
		A TokenCount `json:"a"`
		B TokenCount `json:"b"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, Tokens(12), decoded.A)
	assert.False(t, decoded.B.Known())
}

func TestTokensPerSecond(t *testing.T) {
	r := &Response{Tokens: Tokens(50), Duration: 2 * time.Second}
	tps, ok := r.TokensPerSecond()
	assert.True(t, ok)
	assert.InDelta(t, 25.0, tps, 1e-9)

	r.Duration = 0
	_, ok = r.TokensPerSecond()
	assert.False(t, ok)
}

func TestCallErrorFormatting(t *testing.T) {
	err := newCallError(ModelGemma7B, errors.New("dial tcp: connection refused"))
	assert.Equal(t, "gemma-7b-it: dial tcp: connection refused", err.Error())
	assert.Equal(t, "*errors.errorString", err.Type)
}
