// Package profile derives a structured candidate profile from redacted
// resume text via the text-generation collaborator.
package profile

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/prompts"
	"github.com/jonathan/resume-matcher/internal/repair"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
)

// TextGenerationService is the external prompt-in/text-out collaborator.
// Implementations must accept the two named templates in internal/prompts
// with the documented resume_text / job_description placeholders.
type TextGenerationService interface {
	Complete(ctx context.Context, templateKey string, vars map[string]string) (string, error)
}

// Extractor turns (redacted resume text, job text) into a StructuredProfile
type Extractor struct {
	gen TextGenerationService
	log *zap.Logger
}

// NewExtractor creates an Extractor using the given generation service
func NewExtractor(gen TextGenerationService, log *zap.Logger) *Extractor {
	return &Extractor{gen: gen, log: logger.NopIfNil(log)}
}

// combinedResponse is the canonical shape of the combined match prompt
type combinedResponse struct {
	Education struct {
		Degree       string `json:"degree"`
		Field        string `json:"field"`
		Institution  string `json:"institution"`
		Year         int    `json:"year"`
		MatchPercent string `json:"match_percentage"`
	} `json:"education"`
	Experience struct {
		Positions []struct {
			Organization string   `json:"organization"`
			Role         string   `json:"role"`
			Duration     float64  `json:"duration"`
			Achievements []string `json:"achievements"`
		} `json:"positions"`
		TotalDuration float64 `json:"total_duration"`
		MatchPercent  string  `json:"match_percentage"`
	} `json:"experience"`
}

// summaryResponse is the canonical shape of the summary prompt
type summaryResponse struct {
	Skills struct {
		HardSkills []string `json:"hard_skills"`
		Tools      []string `json:"tools"`
		SoftSkills []string `json:"soft_skills"`
	} `json:"skills"`
	Summary string `json:"summary"`
}

// Extract makes two independent generation calls (combined match data and
// skills/summary), repairs and validates each response, and assembles the
// structured profile. Failures are per-item: an InvocationError or
// MalformedResponseError fails this resume only.
func (e *Extractor) Extract(ctx context.Context, anonymizedText, jobText string) (*types.StructuredProfile, error) {
	var combined combinedResponse
	err := e.completeInto(ctx, prompts.KeyCombinedMatch, map[string]string{
		"resume_text":     anonymizedText,
		"job_description": jobText,
	}, schemas.CombinedMatch, &combined)
	if err != nil {
		return nil, err
	}

	var summary summaryResponse
	err = e.completeInto(ctx, prompts.KeyResumeSummary, map[string]string{
		"resume_text": anonymizedText,
	}, schemas.ResumeSummary, &summary)
	if err != nil {
		return nil, err
	}

	eduPercent, err := ParsePercent(combined.Education.MatchPercent)
	if err != nil {
		return nil, &repair.MalformedResponseError{Message: "education match percentage", Cause: err}
	}
	expPercent, err := ParsePercent(combined.Experience.MatchPercent)
	if err != nil {
		return nil, &repair.MalformedResponseError{Message: "experience match percentage", Cause: err}
	}

	result := &types.StructuredProfile{
		Education: types.Education{
			Degree:       combined.Education.Degree,
			Field:        combined.Education.Field,
			Institution:  combined.Education.Institution,
			Year:         combined.Education.Year,
			MatchPercent: eduPercent,
		},
		Experience: types.Experience{
			TotalDuration: combined.Experience.TotalDuration,
			MatchPercent:  expPercent,
		},
		Skills: types.SkillSet{
			HardSkills: summary.Skills.HardSkills,
			Tools:      summary.Skills.Tools,
			SoftSkills: summary.Skills.SoftSkills,
		},
		Summary: summary.Summary,
	}
	for _, pos := range combined.Experience.Positions {
		result.Experience.Positions = append(result.Experience.Positions, types.Position{
			Organization: pos.Organization,
			Role:         pos.Role,
			Duration:     pos.Duration,
			Achievements: pos.Achievements,
		})
	}

	e.log.Debug("structured profile extracted",
		zap.Float64("education_match", eduPercent),
		zap.Float64("experience_match", expPercent),
		zap.Int("positions", len(result.Experience.Positions)))
	return result, nil
}

// completeInto runs one generation call and decodes the repaired, validated
// response into out.
func (e *Extractor) completeInto(ctx context.Context, templateKey string, vars map[string]string, schemaName string, out any) error {
	raw, err := e.gen.Complete(ctx, templateKey, vars)
	if err != nil {
		return fmt.Errorf("generation call %s: %w", templateKey, err)
	}

	repaired, err := repair.Repair(raw)
	if err != nil {
		return fmt.Errorf("generation call %s: %w", templateKey, err)
	}

	if err := schemas.Validate(schemaName, repaired); err != nil {
		return &repair.MalformedResponseError{
			Message: fmt.Sprintf("response for %s has wrong shape", templateKey),
			Cause:   err,
		}
	}

	if err := json.Unmarshal([]byte(repaired), out); err != nil {
		return &repair.MalformedResponseError{
			Message: fmt.Sprintf("response for %s failed to decode", templateKey),
			Cause:   err,
		}
	}
	return nil
}
