package main

import (
	"os"

	"github.com/openrag/llm-playground/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
