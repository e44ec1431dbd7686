// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

// weightingEpsilon is the tolerance when checking that weights sum to 1.0
const weightingEpsilon = 1e-6

var validate = validator.New()

// JobProfile represents the job opening resumes are matched against
type JobProfile struct {
	Title            string    `json:"title" validate:"required"`
	Description      string    `json:"description" validate:"required"`
	Responsibilities []string  `json:"responsibilities"`
	Requirements     []string  `json:"requirements"`
	NiceToHave       []string  `json:"nice_to_have"`
	Skills           JobSkills `json:"skills"`
}

// JobSkills holds the required skill sets for a job, split by category
type JobSkills struct {
	HardSkills []string `json:"hard_skills"`
	SoftSkills []string `json:"soft_skills"`
}

// Weighting is the three-way split of importance between education,
// experience, and skills when computing a total match score.
type Weighting struct {
	Education  float64 `json:"education" validate:"gte=0"`
	Experience float64 `json:"experience" validate:"gte=0"`
	Skills     float64 `json:"skills" validate:"gte=0"`
}

// Validate checks that all weights are non-negative and sum to 1.0
// within tolerance.
func (w Weighting) Validate() error {
	if err := validate.Struct(w); err != nil {
		return fmt.Errorf("invalid weighting: %w", err)
	}
	sum := w.Education + w.Experience + w.Skills
	if math.Abs(sum-1.0) > weightingEpsilon {
		return fmt.Errorf("weighting must sum to 1.0, got %.6f", sum)
	}
	return nil
}

// Validate checks that the job profile carries the fields required before
// a batch may be submitted against it.
func (j *JobProfile) Validate() error {
	if err := validate.Struct(j); err != nil {
		return fmt.Errorf("invalid job profile: %w", err)
	}
	return nil
}

// Text renders the job profile into the plain-text form used in prompts.
// Sections are emitted in a fixed order; empty sections are skipped.
func (j *JobProfile) Text() string {
	var sb strings.Builder
	writeSection := func(name, value string) {
		if value != "" {
			sb.WriteString(name)
			sb.WriteString(": ")
			sb.WriteString(value)
			sb.WriteString("\n")
		}
	}
	writeSection("description", j.Description)
	writeSection("responsibilities", strings.Join(j.Responsibilities, ", "))
	writeSection("requirements", strings.Join(j.Requirements, ", "))
	writeSection("nice_to_have", strings.Join(j.NiceToHave, ", "))
	return sb.String()
}
