package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openrag/llm-playground/internal/playground"
	"github.com/openrag/llm-playground/internal/progress"
)

var compareCmd = &cobra.Command{
	Use:   "compare [text]",
	Short: "Send the same prompt to two models and show both answers",
	Long: `Runs the prompt against one model from each comparison slot in parallel.
A failure of one model is reported next to the other model's answer.`,
	RunE: runCompare,
}

func init() {
	addGenerationFlags(compareCmd)
	compareCmd.Flags().String("model-a", "", "first model (prompted for when omitted on a terminal)")
	compareCmd.Flags().String("model-b", "", "second model (prompted for when omitted on a terminal)")
	rootCmd.AddCommand(compareCmd)
}

// slotModel resolves a comparison model from its flag, an interactive
// selection, or the first model of the slot.
func slotModel(cmd *cobra.Command, flag string, slot playground.Slot, label string) (playground.Model, error) {
	value, _ := cmd.Flags().GetString(flag)
	if value != "" {
		return playground.Model(value), nil
	}
	models := playground.SlotModels(slot)
	if isTerminal() {
		return selectModel(label, models, models[0])
	}
	return models[0], nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	text, err := readPrompt(args)
	if err != nil {
		return err
	}
	base := baseRequest(cmd, cfg, text)

	modelA, err := slotModel(cmd, "model-a", playground.SlotA, "Select Model 1")
	if err != nil {
		return err
	}
	modelB, err := slotModel(cmd, "model-b", playground.SlotB, "Select Model 2")
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cfg)
	defer cancel()

	reporter := progress.NewReporter(os.Stderr)
	reporter.Start(fmt.Sprintf("Generating responses using %s and %s...", modelA, modelB))
	cmp := newController(cfg).Compare(ctx, base, modelA, modelB)
	reporter.Finish()

	out := cmd.OutOrStdout()
	for i, res := range []playground.Result{cmp.A, cmp.B} {
		if i > 0 {
			fmt.Fprintln(out)
		}
		headerColor.Fprintf(out, "=== Model %d: %s ===\n", i+1, res.Model)
		if res.Err != nil {
			printError(out, res.Err)
			continue
		}
		printResponse(out, res.Response, false)
	}

	if cmp.A.Err != nil && cmp.B.Err != nil {
		return errSilent
	}
	return nil
}
