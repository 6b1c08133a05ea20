package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/openrag/llm-playground/internal/config"
	"github.com/openrag/llm-playground/internal/playground"
	"github.com/openrag/llm-playground/internal/progress"
)

var promptCmd = &cobra.Command{
	Use:   "prompt [text]",
	Short: "Send a single prompt to a model",
	Long: `Sends a prompt to the selected model and prints the answer followed by
inference time and token usage. The prompt is read from stdin when no
argument is given.`,
	RunE: runPrompt,
}

func init() {
	addGenerationFlags(promptCmd)
	promptCmd.Flags().StringP("model", "m", "", "model identifier (prompted for when omitted on a terminal)")
	promptCmd.Flags().Bool("stream", playground.DefaultStream, "stream the answer as it is generated")
	rootCmd.AddCommand(promptCmd)
}

// addGenerationFlags registers the flags shared by prompt and compare.
func addGenerationFlags(cmd *cobra.Command) {
	cmd.Flags().Float64P("temperature", "t", playground.DefaultTemperature, "sampling temperature (0.0-1.0)")
	cmd.Flags().Int("max-tokens", playground.DefaultMaxTokens, "maximum tokens to generate (1-2048)")
	cmd.Flags().String("api-key", "", "Groq API key (defaults to $"+config.APIKeyEnvVar+")")
}

// baseRequest merges config defaults with any flags set on the command line.
func baseRequest(cmd *cobra.Command, cfg *config.Config, prompt string) playground.Request {
	apiKey, _ := cmd.Flags().GetString("api-key")
	req := cfg.BaseRequest(prompt, resolveAPIKey(apiKey))

	if cmd.Flags().Changed("temperature") {
		req.Temperature, _ = cmd.Flags().GetFloat64("temperature")
	}
	if cmd.Flags().Changed("max-tokens") {
		req.MaxTokens, _ = cmd.Flags().GetInt("max-tokens")
	}
	if f := cmd.Flags().Lookup("stream"); f != nil && f.Changed {
		req.Stream, _ = cmd.Flags().GetBool("stream")
	}
	return req
}

// commandContext returns a context cancelled on SIGINT/SIGTERM or after the
// configured request timeout.
func commandContext(cfg *config.Config) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout())
	return ctx, func() {
		cancel()
		stop()
	}
}

func runPrompt(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	text, err := readPrompt(args)
	if err != nil {
		return err
	}
	req := baseRequest(cmd, cfg, text)

	modelFlag, _ := cmd.Flags().GetString("model")
	switch {
	case modelFlag != "":
		req.Model = playground.Model(modelFlag)
	case isTerminal():
		req.Model, err = selectModel("Select LLM Model", playground.Models(), req.Model)
		if err != nil {
			return err
		}
	}

	ctx, cancel := commandContext(cfg)
	defer cancel()

	out := cmd.OutOrStdout()
	reporter := progress.NewReporter(os.Stderr)
	reporter.Start(fmt.Sprintf("Generating response using %s...", req.Model))

	streamed := false
	onDelta := func(delta string) {
		if !streamed {
			reporter.Finish()
			headerColor.Fprintln(out, "Response:")
			streamed = true
		}
		fmt.Fprint(out, delta)
	}

	resp, err := newController(cfg).SubmitStream(ctx, req, onDelta)
	reporter.Finish()
	if err != nil {
		if streamed {
			fmt.Fprintln(out)
		}
		printError(os.Stderr, err)
		return errSilent
	}

	if !streamed {
		headerColor.Fprintln(out, "Response:")
	} else {
		fmt.Fprintln(out)
	}
	printResponse(out, resp, streamed)
	return nil
}

// errSilent signals a failure that has already been reported to the user.
var errSilent = errors.New("request failed")
