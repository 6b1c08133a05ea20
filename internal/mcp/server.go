package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/openrag/llm-playground/internal/config"
	"github.com/openrag/llm-playground/internal/playground"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the playground to AI agents.
type Server struct {
	controller *playground.Controller
	cfg        *config.Config
	apiKey     string // used when a tool call carries no api_key argument
	mcp        *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(controller *playground.Controller, cfg *config.Config, apiKey string) *Server {
	s := &Server{
		controller: controller,
		cfg:        cfg,
		apiKey:     apiKey,
	}

	s.mcp = server.NewMCPServer(
		"llm-playground",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(submitPromptTool, s.handleSubmitPrompt)
	s.mcp.AddTool(compareModelsTool, s.handleCompareModels)
	s.mcp.AddTool(listModelsTool, s.handleListModels)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
