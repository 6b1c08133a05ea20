package web

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/openrag/llm-playground/internal/playground"
)

// modelsResponse is the JSON response for the models endpoint.
type modelsResponse struct {
	Models   []playground.Model `json:"models"`
	SlotA    []playground.Model `json:"slot_a"`
	SlotB    []playground.Model `json:"slot_b"`
	Defaults defaultsBody       `json:"defaults"`
}

type defaultsBody struct {
	Model          playground.Model `json:"model"`
	Temperature    float64          `json:"temperature"`
	MinTemperature float64          `json:"min_temperature"`
	MaxTemperature float64          `json:"max_temperature"`
	MaxTokens      int              `json:"max_tokens"`
	MinMaxTokens   int              `json:"min_max_tokens"`
	MaxMaxTokens   int              `json:"max_max_tokens"`
	Stream         bool             `json:"stream"`
}

// sideBody is one half of a comparison; exactly one of Result and Error is set.
type sideBody struct {
	Model  playground.Model `json:"model"`
	Result *resultBody      `json:"result,omitempty"`
	Error  *errorBody       `json:"error,omitempty"`
}

type compareResponse struct {
	A sideBody `json:"a"`
	B sideBody `json:"b"`
}

func (w *Web) handleModels(rw http.ResponseWriter, r *http.Request) {
	writeJSON(rw, http.StatusOK, modelsResponse{
		Models: playground.Models(),
		SlotA:  playground.SlotModels(playground.SlotA),
		SlotB:  playground.SlotModels(playground.SlotB),
		Defaults: defaultsBody{
			Model:          w.defaults.Model,
			Temperature:    w.defaults.Temperature,
			MinTemperature: playground.MinTemperature,
			MaxTemperature: playground.MaxTemperature,
			MaxTokens:      w.defaults.MaxTokens,
			MinMaxTokens:   playground.MinMaxTokens,
			MaxMaxTokens:   playground.MaxMaxTokens,
			Stream:         w.defaults.Stream,
		},
	})
}

func (w *Web) handleSubmit(rw http.ResponseWriter, r *http.Request) {
	var payload submitPayload
	if errs := decodeAndValidate(r, submitRules(), &payload); len(errs) > 0 {
		writeValidationErrors(rw, errs)
		return
	}

	resp, err := w.controller.Submit(r.Context(), payload.request(w.defaults))
	if err != nil {
		status, body := newErrorBody(err)
		writeJSON(rw, status, body)
		return
	}

	writeJSON(rw, http.StatusOK, newResultBody(resp))
}

func (w *Web) handleCompare(rw http.ResponseWriter, r *http.Request) {
	var payload comparePayload
	if errs := decodeAndValidate(r, compareRules(), &payload); len(errs) > 0 {
		writeValidationErrors(rw, errs)
		return
	}

	base := payload.submission().request(w.defaults)
	cmp := w.controller.Compare(r.Context(), base, playground.Model(payload.ModelA), playground.Model(payload.ModelB))

	writeJSON(rw, http.StatusOK, compareResponse{
		A: newSideBody(cmp.A),
		B: newSideBody(cmp.B),
	})
}

func newSideBody(res playground.Result) sideBody {
	side := sideBody{Model: res.Model}
	if res.Err != nil {
		_, body := newErrorBody(res.Err)
		side.Error = &body
		return side
	}
	result := newResultBody(res.Response)
	side.Result = &result
	return side
}

func writeValidationErrors(w http.ResponseWriter, errs url.Values) {
	writeJSON(w, http.StatusBadRequest, errorBody{
		Error:  "invalid request",
		Kind:   kindValidation,
		Fields: errs,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
