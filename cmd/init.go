package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openrag/llm-playground/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a playground configuration with an interactive wizard",
	Long:  `Runs an interactive wizard for the default model and generation parameters and writes ` + config.DefaultPath + ` (or the --config path).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
