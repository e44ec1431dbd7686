package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/anonymize"
	"github.com/jonathan/resume-matcher/internal/batch"
	"github.com/jonathan/resume-matcher/internal/blob"
	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/extraction"
	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/profile"
	"github.com/jonathan/resume-matcher/internal/types"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run a resume batch against a job profile",
	Long:  "Submit a batch of stored resume documents for extraction, anonymization, structured profiling, and scoring against a job profile, then wait for completion.",
	RunE:  runProcess,
}

var (
	processConfigFile string
	processJobFile    string
	processJobID      string
	processDocs       []string
	processWeightEdu  float64
	processWeightExp  float64
	processWeightSkl  float64
	processCleanup    bool
	processVerbose    bool
)

func init() {
	processCmd.Flags().StringVarP(&processConfigFile, "config", "c", "", "Path to JSON config file")
	processCmd.Flags().StringVarP(&processJobFile, "job", "j", "", "Path to job profile JSON file (required)")
	processCmd.Flags().StringVar(&processJobID, "job-id", "", "Job ID for the batch (generated if omitted)")
	processCmd.Flags().StringSliceVarP(&processDocs, "doc", "d", nil, "Resume document key in the bucket (repeatable, required)")
	processCmd.Flags().Float64Var(&processWeightEdu, "weight-education", 0.2, "Education weight")
	processCmd.Flags().Float64Var(&processWeightExp, "weight-experience", 0.4, "Experience weight")
	processCmd.Flags().Float64Var(&processWeightSkl, "weight-skills", 0.4, "Skills weight")
	processCmd.Flags().BoolVar(&processCleanup, "cleanup", false, "Delete documents from the bucket after the batch completes")
	processCmd.Flags().BoolVarP(&processVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(processCmd)
}

func loadEffectiveConfig(path string) (config.Config, error) {
	cfg := config.FromEnv()
	if path != "" {
		fileCfg, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	} else {
		cfg = cfg.MergeWithDefaults(config.Config{})
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func loadJobProfile(path string) (*types.JobProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job profile: %w", err)
	}
	var job types.JobProfile
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to parse job profile JSON: %w", err)
	}
	return &job, nil
}

func runProcess(_ *cobra.Command, _ []string) error {
	if processJobFile == "" {
		return fmt.Errorf("--job is required")
	}
	if len(processDocs) == 0 {
		return fmt.Errorf("at least one --doc is required")
	}

	cfg, err := loadEffectiveConfig(processConfigFile)
	if err != nil {
		return err
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY or 'api_key' in the config file)")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database URL is required (set DATABASE_URL or 'database_url' in the config file)")
	}

	log, err := logger.New(processVerbose || cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	job, err := loadJobProfile(processJobFile)
	if err != nil {
		return err
	}

	ctx := context.Background()

	store, err := blob.NewStore(blob.Config{
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		UseSSL:    cfg.S3UseSSL,
	})
	if err != nil {
		return err
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	llmCfg := llm.DefaultConfig()
	if cfg.Model != "" {
		llmCfg.Model = cfg.Model
	}
	client, err := llm.NewGeminiClient(ctx, llmCfg, cfg.APIKey)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	orchestrator := batch.NewOrchestrator(
		extraction.NewExtractor(store, log),
		anonymize.NewAnonymizer(log),
		profile.NewExtractor(llm.NewService(client, log), log),
		database,
		batch.NewStatusStore(),
		cfg.Workers,
		log,
	)

	jobID, err := orchestrator.Submit(batch.Request{
		JobID:        processJobID,
		Job:          job,
		DocumentKeys: processDocs,
		Weighting: types.Weighting{
			Education:  processWeightEdu,
			Experience: processWeightExp,
			Skills:     processWeightSkl,
		},
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Batch submitted (job: %s, documents: %d)\n", jobID, len(processDocs))

	status := waitForBatch(orchestrator, jobID)
	fmt.Fprintf(os.Stdout, "Batch %s: %d processed, %d failed of %d\n",
		status.State, status.Processed, status.Failed, status.Total)
	if status.State == types.BatchFailed {
		return fmt.Errorf("batch failed: %s", status.Error)
	}

	results, err := database.ListMatchResults(ctx, jobID, len(processDocs))
	if err != nil {
		return err
	}
	printResults(results)

	if processCleanup {
		for _, key := range processDocs {
			if _, err := store.Delete(ctx, key); err != nil {
				log.Warn("cleanup failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return nil
}

// waitForBatch polls the status store until the batch reaches a terminal state
func waitForBatch(o *batch.Orchestrator, jobID string) types.BatchStatus {
	for {
		status := o.Status(jobID)
		if status.State == types.BatchCompleted || status.State == types.BatchFailed {
			return status
		}
		time.Sleep(250 * time.Millisecond)
	}
}

func printResults(results []db.RankedResult) {
	if len(results) == 0 {
		fmt.Fprintln(os.Stdout, "No match results.")
		return
	}
	fmt.Fprintln(os.Stdout, "\nRank  Score   Skills  Resume")
	for i, r := range results {
		fmt.Fprintf(os.Stdout, "%-5d %6.2f  %6.2f  %s\n", i+1, r.TotalScore, r.SkillScore, r.ResumeKey)
	}
}
