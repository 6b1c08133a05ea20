package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openrag/llm-playground/internal/playground"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the supported models",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		headerColor.Fprintln(out, "Models:")
		for _, m := range playground.Models() {
			if string(m) == cfg.DefaultModel {
				fmt.Fprintf(out, "  %s %s\n", m, statsColor.Sprint("(default)"))
				continue
			}
			fmt.Fprintf(out, "  %s\n", m)
		}

		for i, slot := range []playground.Slot{playground.SlotA, playground.SlotB} {
			fmt.Fprintln(out)
			headerColor.Fprintf(out, "Compare model %d:\n", i+1)
			for _, m := range playground.SlotModels(slot) {
				fmt.Fprintf(out, "  %s\n", m)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
