package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/db"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "List stored match results for a job",
	RunE:  runResults,
}

var (
	resultsConfigFile string
	resultsJobID      string
	resultsLimit      int
)

func init() {
	resultsCmd.Flags().StringVarP(&resultsConfigFile, "config", "c", "", "Path to JSON config file")
	resultsCmd.Flags().StringVar(&resultsJobID, "job-id", "", "Job ID to list results for (required)")
	resultsCmd.Flags().IntVar(&resultsLimit, "limit", 50, "Maximum number of results")

	rootCmd.AddCommand(resultsCmd)
}

func runResults(_ *cobra.Command, _ []string) error {
	if resultsJobID == "" {
		return fmt.Errorf("--job-id is required")
	}

	cfg, err := loadEffectiveConfig(resultsConfigFile)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database URL is required (set DATABASE_URL or 'database_url' in the config file)")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	results, err := database.ListMatchResults(ctx, resultsJobID, resultsLimit)
	if err != nil {
		return err
	}
	printResults(results)
	return nil
}
