package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/openrag/llm-playground/internal/playground"
	"github.com/openrag/llm-playground/internal/render"
)

// baseRequest builds a request from the shared tool arguments, falling back
// to configured defaults.
func (s *Server) baseRequest(request mcp.CallToolRequest, prompt string) playground.Request {
	req := s.cfg.BaseRequest(prompt, request.GetString("api_key", s.apiKey))
	req.Temperature = request.GetFloat("temperature", req.Temperature)
	req.MaxTokens = request.GetInt("max_tokens", req.MaxTokens)
	req.Stream = request.GetBool("stream", req.Stream)
	return req
}

// handleSubmitPrompt runs one submission.
func (s *Server) handleSubmitPrompt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt, err := request.RequireString("prompt")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: prompt"), nil
	}

	req := s.baseRequest(request, prompt)
	if model := request.GetString("model", ""); model != "" {
		req.Model = playground.Model(model)
	}

	resp, err := s.controller.Submit(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(formatError(err)), nil
	}

	return mcp.NewToolResultText(formatResponse(resp)), nil
}

// handleCompareModels runs the same prompt against two models.
func (s *Server) handleCompareModels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt, err := request.RequireString("prompt")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: prompt"), nil
	}
	modelA, err := request.RequireString("model_a")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: model_a"), nil
	}
	modelB, err := request.RequireString("model_b")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: model_b"), nil
	}

	cmp := s.controller.Compare(ctx, s.baseRequest(request, prompt), playground.Model(modelA), playground.Model(modelB))

	var sb strings.Builder
	for i, res := range []playground.Result{cmp.A, cmp.B} {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("=== Model %d: %s ===\n", i+1, res.Model))
		if res.Err != nil {
			sb.WriteString(formatError(res.Err))
			sb.WriteString("\n")
			continue
		}
		sb.WriteString(formatResponse(res.Response))
	}

	// Only a double failure is reported as a tool error.
	result := mcp.NewToolResultText(sb.String())
	result.IsError = cmp.A.Err != nil && cmp.B.Err != nil
	return result, nil
}

// handleListModels returns the model catalog.
func (s *Server) handleListModels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sb strings.Builder
	sb.WriteString("Supported models:\n")
	for _, m := range playground.Models() {
		marker := ""
		if string(m) == s.cfg.DefaultModel {
			marker = " (default)"
		}
		sb.WriteString(fmt.Sprintf("- %s%s\n", m, marker))
	}
	sb.WriteString("\nComparison model 1 choices: ")
	sb.WriteString(strings.Join(modelNames(playground.SlotModels(playground.SlotA)), ", "))
	sb.WriteString("\nComparison model 2 choices: ")
	sb.WriteString(strings.Join(modelNames(playground.SlotModels(playground.SlotB)), ", "))
	sb.WriteString("\n")
	return mcp.NewToolResultText(sb.String()), nil
}

func formatResponse(resp *playground.Response) string {
	return fmt.Sprintf("%s\n\n%s\n", resp.Text, render.Stats(resp))
}

func formatError(err error) string {
	var vErr *playground.ValidationError
	if errors.As(err, &vErr) {
		return "Validation error: " + vErr.Message
	}
	var callErr *playground.CallError
	if errors.As(err, &callErr) {
		return fmt.Sprintf("An error occurred: %s\nError type: %s (%s)", callErr.Message, callErr.Type, callErr.Kind)
	}
	return "An error occurred: " + err.Error()
}
