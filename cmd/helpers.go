package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"

	"github.com/openrag/llm-playground/internal/config"
	"github.com/openrag/llm-playground/internal/llm"
	"github.com/openrag/llm-playground/internal/playground"
	"github.com/openrag/llm-playground/internal/render"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	statsColor  = color.New(color.FgHiBlack)
	errorColor  = color.New(color.FgRed)
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `playground init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newController builds the Groq-backed controller from config settings.
func newController(cfg *config.Config) *playground.Controller {
	factory := llm.RateLimitFactory(
		llm.NewGroqFactory(llm.WithBaseURL(cfg.BaseURL)),
		llm.NewLimiter(cfg.RateLimitRPM),
	)
	return playground.NewController(factory, playground.WithLogger(logger))
}

// resolveAPIKey prefers the flag value, then GROQ_API_KEY.
func resolveAPIKey(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(config.APIKeyEnvVar)
}

// isTerminal reports whether stdin is an interactive terminal.
func isTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// readPrompt joins positional args, or reads stdin when it is piped.
func readPrompt(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if isTerminal() {
		return "", nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading prompt from stdin: %w", err)
	}
	return string(data), nil
}

// selectModel asks the user to pick one of models.
func selectModel(label string, models []playground.Model, current playground.Model) (playground.Model, error) {
	cursor := 0
	for i, m := range models {
		if m == current {
			cursor = i
		}
	}
	sel := promptui.Select{
		Label:     label,
		Items:     models,
		CursorPos: cursor,
	}
	idx, _, err := sel.Run()
	if err != nil {
		return "", fmt.Errorf("model selection: %w", err)
	}
	return models[idx], nil
}

// printResponse writes the answer text followed by the colored stats line.
func printResponse(w io.Writer, resp *playground.Response, textShown bool) {
	if !textShown {
		fmt.Fprintln(w, resp.Text)
	}
	fmt.Fprintln(w)
	statsColor.Fprintln(w, render.Stats(resp))
}

// printError renders a controller error the way the web form does.
func printError(w io.Writer, err error) {
	var vErr *playground.ValidationError
	if errors.As(err, &vErr) {
		errorColor.Fprintln(w, vErr.Message)
		return
	}
	var callErr *playground.CallError
	if errors.As(err, &callErr) {
		errorColor.Fprintf(w, "An error occurred: %s\n", callErr.Message)
		errorColor.Fprintf(w, "Error type: %s (%s)\n", callErr.Type, callErr.Kind)
		return
	}
	errorColor.Fprintf(w, "An error occurred: %v\n", err)
}
