// Package web serves the playground form and its JSON and websocket API.
package web

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/openrag/llm-playground/internal/playground"
)

// Defaults prefill the form and fill in fields an API client omits.
type Defaults struct {
	Model       playground.Model
	Temperature float64
	MaxTokens   int
	Stream      bool
}

// Web provides the form page and the submit/compare endpoints.
type Web struct {
	controller *playground.Controller
	defaults   Defaults
	// timeout bounds each websocket submission; HTTP routes inherit the
	// server's request timeout instead.
	timeout time.Duration
}

// New creates a new Web surface around controller.
func New(controller *playground.Controller, defaults Defaults, timeout time.Duration) *Web {
	if defaults.Model == "" {
		defaults.Model = playground.DefaultModel
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Web{
		controller: controller,
		defaults:   defaults,
		timeout:    timeout,
	}
}

// RegisterRoutes mounts request/response routes on api and the websocket
// route on stream.
func (w *Web) RegisterRoutes(api, stream chi.Router) {
	api.Get("/", w.ServeIndex)
	api.Get("/api/models", w.handleModels)
	api.Post("/api/submit", w.handleSubmit)
	api.Post("/api/compare", w.handleCompare)
	stream.Get("/ws/submit", w.handleWebSocket)
}
