package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"

	"github.com/openrag/llm-playground/internal/playground"
)

// RunWizard runs an interactive configuration wizard and saves the resulting
// Config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to the LLM Playground! Let's configure your defaults.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Default model.
	models := playground.Models()
	items := make([]string, len(models))
	for i, m := range models {
		items[i] = string(m)
	}
	modelPrompt := promptui.Select{
		Label: "Select default model",
		Items: items,
	}
	_, model, err := modelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("model selection: %w", err)
	}
	cfg.DefaultModel = model

	// 2. Temperature.
	tempPrompt := promptui.Prompt{
		Label:    "Temperature (0.0-1.0)",
		Default:  strconv.FormatFloat(cfg.Temperature, 'f', 1, 64),
		Validate: validateFloatRange(playground.MinTemperature, playground.MaxTemperature),
	}
	tempStr, err := tempPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("temperature: %w", err)
	}
	cfg.Temperature, _ = strconv.ParseFloat(tempStr, 64)

	// 3. Max tokens.
	tokensPrompt := promptui.Prompt{
		Label:    fmt.Sprintf("Max tokens (%d-%d)", playground.MinMaxTokens, playground.MaxMaxTokens),
		Default:  strconv.Itoa(cfg.MaxTokens),
		Validate: validateIntRange(playground.MinMaxTokens, playground.MaxMaxTokens),
	}
	tokensStr, err := tokensPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("max tokens: %w", err)
	}
	cfg.MaxTokens, _ = strconv.Atoi(tokensStr)

	// 4. Streaming.
	streamPrompt := promptui.Select{
		Label: "Stream responses",
		Items: []string{"yes", "no"},
	}
	streamIdx, _, err := streamPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("stream selection: %w", err)
	}
	cfg.Stream = streamIdx == 0

	// 5. Server port.
	portPrompt := promptui.Prompt{
		Label:    "Web server port",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validateIntRange(1, 65535),
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("server port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	if os.Getenv(APIKeyEnvVar) == "" {
		fmt.Printf("\nNote: the web form asks for your key; for the CLI set %s or pass --api-key.\n", APIKeyEnvVar)
		fmt.Println("Get a key at https://console.groq.com/keys (it is shown only once, store it somewhere safe).")
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validateFloatRange(min, max float64) promptui.ValidateFunc {
	return func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("not a number")
		}
		if v < min || v > max {
			return fmt.Errorf("must be between %g and %g", min, max)
		}
		return nil
	}
}

func validateIntRange(min, max int) promptui.ValidateFunc {
	return func(s string) error {
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("not an integer")
		}
		if v < min || v > max {
			return fmt.Errorf("must be between %d and %d", min, max)
		}
		return nil
	}
}
