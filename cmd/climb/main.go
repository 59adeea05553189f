// Package main provides the climb CLI: the HTTP API server plus offline
// forecast and ATS commands that work from local JSON files.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "climb",
	Short: "Climb job search API and tools",
	Long:  "Climb tracks job applications, forecasts the hiring pipeline from past outcomes and scores resumes against job postings.",
	// main prints the error; usage is noise on a runtime failure
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ./climb.yaml or ./configs/climb.yaml)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
