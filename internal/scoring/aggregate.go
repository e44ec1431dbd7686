package scoring

import "github.com/jonathan/resume-matcher/internal/types"

// Aggregate combines the three component scores into the weighted total.
// Weighting validity (non-negative, sums to 1.0) is a submission-time
// precondition and is not re-checked here.
func Aggregate(educationScore, experienceScore, skillScore float64, w types.Weighting) float64 {
	return educationScore*w.Education +
		skillScore*w.Skills +
		experienceScore*w.Experience
}
