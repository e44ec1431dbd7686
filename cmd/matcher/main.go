// Package main provides the entry point for the resume matcher CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// version is overridden at build time via -ldflags
var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "matcher",
	Short:   "Resume Matcher batch pipeline",
	Long:    "Resume Matcher extracts, anonymizes, and scores batches of resumes against a job profile, persisting ranked match results.",
	Version: version,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
