// Package scoring computes skill match scores and the weighted total for a
// (job, resume) pair.
package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Weights for the hybrid exact/fuzzy skill algorithm. The similarity measure
// is normalized Levenshtein similarity (1 - distance/maxLen), which fixes the
// partial-match threshold at 0.7.
const (
	exactMatchWeight    = 0.7
	partialMatchWeight  = 0.3
	hardSkillsWeight    = 0.8
	softSkillsWeight    = 0.2
	similarityThreshold = 0.7
)

// ScoringError indicates a malformed skill input shape
type ScoringError struct {
	Message string
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("scoring error: %s", e.Message)
}

type categoryResult struct {
	score   float64
	matched []string
	missing []string
	extra   []string
}

// ScoreSkills scores resume skills against job skills per category and
// combines the categories 0.8 hard / 0.2 soft. Matching is case-insensitive
// over deduplicated sets; extra skills are resume skills not matched exactly.
func ScoreSkills(resume types.SkillSet, job types.JobSkills) (types.SkillMatch, error) {
	hard := scoreCategory(resume.HardSkills, job.HardSkills)
	soft := scoreCategory(resume.SoftSkills, job.SoftSkills)

	total := (hardSkillsWeight*hard.score + softSkillsWeight*soft.score) /
		(hardSkillsWeight + softSkillsWeight)
	if math.IsNaN(total) || total < 0 || total > 100 {
		return types.SkillMatch{}, &ScoringError{Message: fmt.Sprintf("combined score %f out of range", total)}
	}

	return types.SkillMatch{
		Score:   total,
		Matched: mergeSorted(hard.matched, soft.matched),
		Missing: mergeSorted(hard.missing, soft.missing),
		Extra:   mergeSorted(hard.extra, soft.extra),
	}, nil
}

// scoreCategory runs the hybrid algorithm for one skill category:
// exact set intersection first, then a best-similarity partial pool over the
// leftovers, blended 0.7 exact / 0.3 partial and scaled to 0-100.
func scoreCategory(resumeSkills, jobSkills []string) categoryResult {
	resumeSet := normalizeSet(resumeSkills)
	jobSet := normalizeSet(jobSkills)

	var result categoryResult
	for skill := range jobSet {
		if resumeSet[skill] {
			result.matched = append(result.matched, skill)
		} else {
			result.missing = append(result.missing, skill)
		}
	}
	for skill := range resumeSet {
		if !jobSet[skill] {
			result.extra = append(result.extra, skill)
		}
	}

	exactRatio := 0.0
	if len(jobSet) > 0 {
		exactRatio = float64(len(result.matched)) / float64(len(jobSet))
	}

	// Partial pool: for every unmatched job skill keep the best similarity
	// against the unmatched resume skills, admitted above the threshold.
	var pool []float64
	for _, jobSkill := range result.missing {
		best := 0.0
		for _, resumeSkill := range result.extra {
			if sim := similarity(jobSkill, resumeSkill); sim > best {
				best = sim
			}
		}
		if best > similarityThreshold {
			pool = append(pool, best)
		}
	}

	partial := 0.0
	if len(pool) > 0 {
		sum := 0.0
		for _, sim := range pool {
			sum += sim
		}
		partial = sum / float64(len(pool))
	}

	result.score = (exactMatchWeight*exactRatio + partialMatchWeight*partial) * 100
	return result
}

// similarity is the normalized Levenshtein similarity of two skill names
func similarity(a, b string) float64 {
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 0
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(distance)/float64(maxLen)
}

// normalizeSet lowercases, trims, and deduplicates a skill list
func normalizeSet(skills []string) map[string]bool {
	set := make(map[string]bool, len(skills))
	for _, skill := range skills {
		normalized := strings.ToLower(strings.TrimSpace(skill))
		if normalized != "" {
			set[normalized] = true
		}
	}
	return set
}

// mergeSorted merges two skill lists into one deduplicated, sorted list.
// Sorting keeps output deterministic across runs.
func mergeSorted(lists ...[]string) []string {
	seen := make(map[string]bool)
	merged := make([]string, 0)
	for _, list := range lists {
		for _, skill := range list {
			if !seen[skill] {
				seen[skill] = true
				merged = append(merged, skill)
			}
		}
	}
	sort.Strings(merged)
	return merged
}
