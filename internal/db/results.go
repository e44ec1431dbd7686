package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jonathan/resume-matcher/internal/batch"
	"github.com/jonathan/resume-matcher/internal/types"
)

// querier is satisfied by the pool and by a transaction
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// UpsertIdentity stores the extracted identity for one resume within a job
func (db *DB) UpsertIdentity(ctx context.Context, jobID, resumeKey string, identity types.Identity) error {
	return upsertIdentity(ctx, db.pool, jobID, resumeKey, identity)
}

// UpsertProfile stores the structured profile for one resume within a job
func (db *DB) UpsertProfile(ctx context.Context, jobID, resumeKey string, profile types.StructuredProfile) error {
	return upsertProfile(ctx, db.pool, jobID, resumeKey, profile)
}

// InsertMatchResult stores the computed match scores for one resume
func (db *DB) InsertMatchResult(ctx context.Context, jobID, resumeKey string, result types.MatchResult) error {
	return insertMatchResult(ctx, db.pool, jobID, resumeKey, result)
}

// SaveDocumentResult persists one document's identity, profile, and match
// result in a single transaction. A failure leaves no partial writes for the
// document; other documents of the batch are unaffected.
func (db *DB) SaveDocumentResult(ctx context.Context, res *batch.DocumentResult) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return &PersistenceError{Message: "begin transaction", Cause: err}
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := upsertIdentity(ctx, tx, res.JobID, res.ResumeKey, res.Identity); err != nil {
		return &PersistenceError{Message: "save identity " + res.ResumeKey, Cause: err}
	}
	if err := upsertProfile(ctx, tx, res.JobID, res.ResumeKey, res.Profile); err != nil {
		return &PersistenceError{Message: "save profile " + res.ResumeKey, Cause: err}
	}
	if err := insertMatchResult(ctx, tx, res.JobID, res.ResumeKey, res.Result); err != nil {
		return &PersistenceError{Message: "save match result " + res.ResumeKey, Cause: err}
	}

	if err := tx.Commit(ctx); err != nil {
		return &PersistenceError{Message: "commit document result " + res.ResumeKey, Cause: err}
	}
	return nil
}

func upsertIdentity(ctx context.Context, q querier, jobID, resumeKey string, identity types.Identity) error {
	_, err := q.Exec(ctx,
		`INSERT INTO identities (job_id, resume_key, name, email, phone)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (job_id, resume_key) DO UPDATE SET
		     name = $3, email = $4, phone = $5, updated_at = NOW()`,
		jobID, resumeKey, identity.Name, identity.Email, identity.Phone,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert identity for %s: %w", resumeKey, err)
	}
	return nil
}

func upsertProfile(ctx context.Context, q querier, jobID, resumeKey string, profile types.StructuredProfile) error {
	content, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	_, err = q.Exec(ctx,
		`INSERT INTO profiles (job_id, resume_key, content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (job_id, resume_key) DO UPDATE SET
		     content = $3, updated_at = NOW()`,
		jobID, resumeKey, content,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile for %s: %w", resumeKey, err)
	}
	return nil
}

func insertMatchResult(ctx context.Context, q querier, jobID, resumeKey string, result types.MatchResult) error {
	_, err := q.Exec(ctx,
		`INSERT INTO match_results (job_id, resume_key, education_score, experience_score,
		                            skill_score, total_score, matched_skills, missing_skills,
		                            extra_skills, summary)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (job_id, resume_key) DO UPDATE SET
		     education_score = $3, experience_score = $4, skill_score = $5, total_score = $6,
		     matched_skills = $7, missing_skills = $8, extra_skills = $9, summary = $10,
		     created_at = NOW()`,
		jobID, resumeKey, result.EducationScore, result.ExperienceScore,
		result.SkillScore, result.TotalScore, result.MatchedSkills, result.MissingSkills,
		result.ExtraSkills, result.Summary,
	)
	if err != nil {
		return fmt.Errorf("failed to insert match result for %s: %w", resumeKey, err)
	}
	return nil
}

// RankedResult is one row of a job's leaderboard
type RankedResult struct {
	ResumeKey  string    `json:"resume_key"`
	TotalScore float64   `json:"total_score"`
	SkillScore float64   `json:"skill_score"`
	Summary    string    `json:"summary"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListMatchResults returns a job's match results ordered by total score
func (db *DB) ListMatchResults(ctx context.Context, jobID string, limit int) ([]RankedResult, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT resume_key, total_score, skill_score, summary, created_at
		 FROM match_results WHERE job_id = $1
		 ORDER BY total_score DESC LIMIT $2`,
		jobID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list match results: %w", err)
	}
	defer rows.Close()

	var results []RankedResult
	for rows.Next() {
		var r RankedResult
		if err := rows.Scan(&r.ResumeKey, &r.TotalScore, &r.SkillScore, &r.Summary, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match result: %w", err)
		}
		results = append(results, r)
	}
	return results, nil
}
