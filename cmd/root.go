package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/openrag/llm-playground/internal/config"
	applog "github.com/openrag/llm-playground/internal/log"
)

var (
	cfgFile string
	verbose bool
	quiet   bool
	logger  = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "playground",
	Short: "Try prompts against hosted LLMs and compare models side by side",
	Long: `LLM Playground sends a prompt to a hosted large language model and
reports the answer together with inference time and token usage. It can
run as a web form, answer one-shot prompts from the terminal, compare two
models on the same prompt, or expose the same tools to AI agents via MCP.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = applog.Setup(verbose, quiet)
		slog.SetDefault(logger)

		// A missing .env is fine; the key may come from the environment or flags.
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("could not read .env", "error", err)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errSilent) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log errors")
}
