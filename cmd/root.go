package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "photo-mapper",
	Short: "A CLI tool for mapping player photos to roster records",
	Long: `Photo Mapper matches player photos to roster records by name.
It runs a deterministic name-similarity tier first and escalates only the
ambiguous remainder to an AI comparator (OpenAI, Gemini or Ollama).`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
