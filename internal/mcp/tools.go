package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/openrag/llm-playground/internal/playground"
)

func modelNames(models []playground.Model) []string {
	names := make([]string, len(models))
	for i, m := range models {
		names[i] = string(m)
	}
	return names
}

// submitPromptTool defines the submit_prompt MCP tool.
var submitPromptTool = mcp.NewTool("submit_prompt",
	mcp.WithDescription("Send a single prompt to a hosted LLM and return its answer with inference time and token usage."),
	mcp.WithString("prompt",
		mcp.Required(),
		mcp.Description("Prompt text sent as the only user message"),
	),
	mcp.WithString("model",
		mcp.Description("Model identifier (defaults to the configured model)"),
		mcp.Enum(modelNames(playground.Models())...),
	),
	mcp.WithString("api_key",
		mcp.Description("Groq API key (defaults to the server's GROQ_API_KEY)"),
	),
	mcp.WithNumber("temperature",
		mcp.Description("Sampling temperature between 0.0 and 1.0"),
	),
	mcp.WithNumber("max_tokens",
		mcp.Description("Maximum tokens to generate, 1 to 2048"),
	),
	mcp.WithBoolean("stream",
		mcp.Description("Use the streaming API (the full text is still returned at once)"),
	),
)

// compareModelsTool defines the compare_models MCP tool.
var compareModelsTool = mcp.NewTool("compare_models",
	mcp.WithDescription("Send the same prompt to two models and return both answers side by side. A failure of one model does not affect the other."),
	mcp.WithString("prompt",
		mcp.Required(),
		mcp.Description("Prompt text sent to both models"),
	),
	mcp.WithString("model_a",
		mcp.Required(),
		mcp.Description("First model"),
		mcp.Enum(modelNames(playground.SlotModels(playground.SlotA))...),
	),
	mcp.WithString("model_b",
		mcp.Required(),
		mcp.Description("Second model"),
		mcp.Enum(modelNames(playground.SlotModels(playground.SlotB))...),
	),
	mcp.WithString("api_key",
		mcp.Description("Groq API key (defaults to the server's GROQ_API_KEY)"),
	),
	mcp.WithNumber("temperature",
		mcp.Description("Sampling temperature between 0.0 and 1.0"),
	),
	mcp.WithNumber("max_tokens",
		mcp.Description("Maximum tokens to generate, 1 to 2048"),
	),
)

// listModelsTool defines the list_models MCP tool.
var listModelsTool = mcp.NewTool("list_models",
	mcp.WithDescription("List the supported model identifiers and the comparison slot choices."),
)
