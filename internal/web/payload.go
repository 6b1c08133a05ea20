package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/thedevsaddam/govalidator"

	"github.com/openrag/llm-playground/internal/llm"
	"github.com/openrag/llm-playground/internal/playground"
	"github.com/openrag/llm-playground/internal/render"
)

// submitPayload is the JSON body of a submission. Pointer fields fall back
// to the configured defaults when omitted.
type submitPayload struct {
	APIKey      string   `json:"api_key"`
	Model       string   `json:"model"`
	Prompt      string   `json:"prompt"`
	Temperature *float64 `json:"temperature"`
	MaxTokens   *int     `json:"max_tokens"`
	Stream      *bool    `json:"stream"`
}

// comparePayload adds the two comparison slots to a submission.
type comparePayload struct {
	APIKey      string   `json:"api_key"`
	Prompt      string   `json:"prompt"`
	Temperature *float64 `json:"temperature"`
	MaxTokens   *int     `json:"max_tokens"`
	Stream      *bool    `json:"stream"`
	ModelA      string   `json:"model_a"`
	ModelB      string   `json:"model_b"`
}

func (p comparePayload) submission() submitPayload {
	return submitPayload{
		APIKey:      p.APIKey,
		Prompt:      p.Prompt,
		Temperature: p.Temperature,
		MaxTokens:   p.MaxTokens,
		Stream:      p.Stream,
	}
}

// request converts the payload into a controller request.
func (p submitPayload) request(d Defaults) playground.Request {
	req := playground.Request{
		Model:       d.Model,
		Prompt:      p.Prompt,
		Temperature: d.Temperature,
		MaxTokens:   d.MaxTokens,
		Stream:      d.Stream,
		APIKey:      p.APIKey,
	}
	if p.Model != "" {
		req.Model = playground.Model(p.Model)
	}
	if p.Temperature != nil {
		req.Temperature = *p.Temperature
	}
	if p.MaxTokens != nil {
		req.MaxTokens = *p.MaxTokens
	}
	if p.Stream != nil {
		req.Stream = *p.Stream
	}
	return req
}

// submitRules checks the payload's shape; emptiness of prompt and key is
// left to the controller so that it reports its own validation message.
func submitRules() govalidator.MapData {
	return govalidator.MapData{
		"model":       []string{"in:" + joinModels(playground.Models())},
		"temperature": []string{"numeric_between:0.0,1.0"},
		"max_tokens":  []string{"numeric_between:1,2048"},
	}
}

func compareRules() govalidator.MapData {
	rules := submitRules()
	rules["model_a"] = []string{"required", "in:" + joinModels(playground.SlotModels(playground.SlotA))}
	rules["model_b"] = []string{"required", "in:" + joinModels(playground.SlotModels(playground.SlotB))}
	return rules
}

func joinModels(models []playground.Model) string {
	names := make([]string, len(models))
	for i, m := range models {
		names[i] = string(m)
	}
	return strings.Join(names, ",")
}

// maxBodyBytes caps submission bodies; prompts are typed by hand.
const maxBodyBytes = 1 << 20

// decodeAndValidate applies rules to the JSON body of r and, when it passes,
// decodes the body into dst. Rules run against the raw JSON values so that
// type mismatches are reported per field.
func decodeAndValidate(r *http.Request, rules govalidator.MapData, dst any) url.Values {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return url.Values{"_error": []string{"reading request body: " + err.Error()}}
	}

	raw := make(map[string]interface{})
	r.Body = io.NopCloser(bytes.NewReader(body))
	v := govalidator.New(govalidator.Options{
		Request: r,
		Data:    &raw,
		Rules:   rules,
	})
	if errs := v.ValidateJSON(); len(errs) > 0 {
		return errs
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return url.Values{"_error": []string{err.Error()}}
	}
	return nil
}

// resultBody is the JSON form of a successful response.
type resultBody struct {
	ID              string                `json:"id"`
	Model           playground.Model      `json:"model"`
	Text            string                `json:"text"`
	HTML            string                `json:"html"`
	DurationSeconds float64               `json:"duration_seconds"`
	Tokens          playground.TokenCount `json:"tokens"`
	TokensPerSecond *float64              `json:"tokens_per_second"`
	FinishReason    string                `json:"finish_reason,omitempty"`
	Stats           string                `json:"stats"`
}

func newResultBody(resp *playground.Response) resultBody {
	html, err := render.HTML(resp.Text)
	if err != nil {
		html = ""
	}
	body := resultBody{
		ID:              resp.ID,
		Model:           resp.Model,
		Text:            resp.Text,
		HTML:            html,
		DurationSeconds: resp.Duration.Seconds(),
		Tokens:          resp.Tokens,
		FinishReason:    resp.FinishReason,
		Stats:           render.Stats(resp),
	}
	if tps, ok := resp.TokensPerSecond(); ok {
		body.TokensPerSecond = &tps
	}
	return body
}

// errorBody is the JSON form of a failed submission.
type errorBody struct {
	Error  string        `json:"error"`
	Kind   string        `json:"kind"`
	Type   string        `json:"type,omitempty"`
	Field  string        `json:"field,omitempty"`
	Model  string        `json:"model,omitempty"`
	Fields url.Values    `json:"fields,omitempty"`
	Reason llm.ErrorKind `json:"reason,omitempty"`
}

const (
	kindValidation = "validation"
	kindCall       = "call"
	kindInternal   = "internal"
)

// newErrorBody maps a controller error to its JSON form and HTTP status.
func newErrorBody(err error) (int, errorBody) {
	var vErr *playground.ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, errorBody{
			Error: vErr.Message,
			Kind:  kindValidation,
			Field: vErr.Field,
		}
	}

	var callErr *playground.CallError
	if errors.As(err, &callErr) {
		return http.StatusBadGateway, errorBody{
			Error:  callErr.Message,
			Kind:   kindCall,
			Type:   callErr.Type,
			Model:  string(callErr.Model),
			Reason: callErr.Kind,
		}
	}

	return http.StatusInternalServerError, errorBody{Error: err.Error(), Kind: kindInternal}
}
