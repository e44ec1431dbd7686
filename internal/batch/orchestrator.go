package batch

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/types"
)

// TextExtractor converts a stored document into plain text
type TextExtractor interface {
	Extract(ctx context.Context, key string) (string, error)
}

// Anonymizer extracts and redacts identity data
type Anonymizer interface {
	Identify(text string) types.Identity
	Redact(text string, identity types.Identity) string
}

// ProfileExtractor derives a structured profile from redacted resume text
type ProfileExtractor interface {
	Extract(ctx context.Context, anonymizedText, jobText string) (*types.StructuredProfile, error)
}

// DocumentResult is everything persisted for one successfully matched resume
type DocumentResult struct {
	JobID     string
	ResumeKey string
	Identity  types.Identity
	Profile   types.StructuredProfile
	Result    types.MatchResult
}

// ResultStore persists one document's outcome. Implementations must make the
// write atomic per document: a failure rolls back all of that document's
// writes and none of any other document's.
type ResultStore interface {
	SaveDocumentResult(ctx context.Context, res *DocumentResult) error
}

// Request describes one batch submission
type Request struct {
	// JobID keys the batch status; generated when empty
	JobID        string
	Job          *types.JobProfile
	DocumentKeys []string
	Weighting    types.Weighting
}

// Orchestrator drives the matching pipeline for submitted batches. One
// orchestrator serves many jobs; each submission runs on its own goroutine
// off the caller's path.
type Orchestrator struct {
	extractor  TextExtractor
	anonymizer Anonymizer
	profiles   ProfileExtractor
	results    ResultStore
	statuses   *StatusStore
	workers    int
	log        *zap.Logger
}

// NewOrchestrator wires an orchestrator from its collaborators. workers
// bounds per-batch document parallelism; values below 1 mean sequential.
func NewOrchestrator(extractor TextExtractor, anonymizer Anonymizer, profiles ProfileExtractor, results ResultStore, statuses *StatusStore, workers int, log *zap.Logger) *Orchestrator {
	if workers < 1 {
		workers = 1
	}
	return &Orchestrator{
		extractor:  extractor,
		anonymizer: anonymizer,
		profiles:   profiles,
		results:    results,
		statuses:   statuses,
		workers:    workers,
		log:        logger.NopIfNil(log),
	}
}

// Submit validates the batch preconditions and, when they hold, starts the
// batch in the background and returns its job handle immediately. A
// precondition failure (bad weighting, incomplete job profile, no documents)
// creates no batch at all.
func (o *Orchestrator) Submit(req Request) (string, error) {
	if req.Job == nil {
		return "", fmt.Errorf("job profile is required")
	}
	if err := req.Job.Validate(); err != nil {
		return "", err
	}
	if err := req.Weighting.Validate(); err != nil {
		return "", err
	}
	if len(req.DocumentKeys) == 0 {
		return "", fmt.Errorf("batch has no documents")
	}
	if req.JobID == "" {
		req.JobID = uuid.NewString()
	}

	o.statuses.begin(req.JobID, len(req.DocumentKeys))
	o.log.Info("batch submitted",
		zap.String("job_id", req.JobID),
		zap.Int("documents", len(req.DocumentKeys)))

	// The batch is decoupled from the caller: it gets its own context and
	// runs to completion, there is no cancellation primitive.
	go o.run(context.Background(), req)

	return req.JobID, nil
}

// Status returns the current status snapshot for a job id
func (o *Orchestrator) Status(jobID string) types.BatchStatus {
	return o.statuses.Get(jobID)
}

// run processes every document of one batch with bounded parallelism.
// Individual document failures are counted and never abort the batch; the
// batch always finishes in the completed state once every document has been
// attempted.
func (o *Orchestrator) run(ctx context.Context, req Request) {
	defer func() {
		if r := recover(); r != nil {
			o.log.Error("batch panicked",
				zap.String("job_id", req.JobID),
				zap.Any("panic", r))
			o.statuses.fail(req.JobID, fmt.Sprintf("batch aborted: %v", r))
		}
	}()

	o.statuses.setState(req.JobID, types.BatchProcessing)
	jobText := req.Job.Text()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for _, key := range req.DocumentKeys {
		key := key
		g.Go(func() error {
			err := o.processDocument(gctx, req, jobText, key)
			if err != nil {
				o.log.Warn("document processing failed",
					zap.String("job_id", req.JobID),
					zap.String("key", key),
					zap.Error(err))
			}
			o.statuses.recordDocument(req.JobID, err != nil)
			// Errors are absorbed here so one document can never cancel
			// the group for the others.
			return nil
		})
	}
	_ = g.Wait()

	o.statuses.setState(req.JobID, types.BatchCompleted)
	final := o.statuses.Get(req.JobID)
	o.log.Info("batch completed",
		zap.String("job_id", req.JobID),
		zap.Int("total", final.Total),
		zap.Int("processed", final.Processed),
		zap.Int("failed", final.Failed))
}

// processDocument runs the full pipeline for a single resume document
func (o *Orchestrator) processDocument(ctx context.Context, req Request, jobText, key string) error {
	text, err := o.extractor.Extract(ctx, key)
	if err != nil {
		return err
	}
	if text == "" {
		return fmt.Errorf("document %s produced no text", key)
	}

	identity := o.anonymizer.Identify(text)
	redacted := o.anonymizer.Redact(text, identity)

	structured, err := o.profiles.Extract(ctx, redacted, jobText)
	if err != nil {
		return err
	}

	skillMatch, err := scoring.ScoreSkills(structured.Skills, req.Job.Skills)
	if err != nil {
		return err
	}

	total := scoring.Aggregate(
		structured.Education.MatchPercent,
		structured.Experience.MatchPercent,
		skillMatch.Score,
		req.Weighting,
	)

	result := &DocumentResult{
		JobID:     req.JobID,
		ResumeKey: key,
		Identity:  identity,
		Profile:   *structured,
		Result: types.MatchResult{
			EducationScore:  structured.Education.MatchPercent,
			ExperienceScore: structured.Experience.MatchPercent,
			SkillScore:      skillMatch.Score,
			TotalScore:      total,
			MatchedSkills:   skillMatch.Matched,
			MissingSkills:   skillMatch.Missing,
			ExtraSkills:     skillMatch.Extra,
			Summary:         structured.Summary,
		},
	}

	if err := o.results.SaveDocumentResult(ctx, result); err != nil {
		return err
	}

	o.log.Debug("document matched",
		zap.String("job_id", req.JobID),
		zap.String("key", key),
		zap.Float64("total_score", total))
	return nil
}
