package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openrag/llm-playground/internal/config"
	mcpserver "github.com/openrag/llm-playground/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long: `Starts a Model Context Protocol (MCP) server on stdio exposing submit_prompt,
compare_models and list_models. Tool calls without an api_key argument use
$` + config.APIKeyEnvVar + `.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		apiKey := resolveAPIKey("")
		logger.Info("playground MCP server started on stdio",
			"default_model", cfg.DefaultModel,
			"api_key_set", apiKey != "",
		)

		srv := mcpserver.NewServer(newController(cfg), cfg, apiKey)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
