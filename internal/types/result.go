package types

// SkillMatch is the outcome of scoring resume skills against job skills.
// Skill lists are lowercase and deduplicated.
type SkillMatch struct {
	Score   float64  `json:"score"` // 0-100
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
	Extra   []string `json:"extra"`
}

// MatchResult is the final outcome for one (job, resume) pair. It is created
// once per successful pipeline run; re-processing creates a new result.
type MatchResult struct {
	EducationScore  float64  `json:"education_score"`
	ExperienceScore float64  `json:"experience_score"`
	SkillScore      float64  `json:"skill_score"`
	TotalScore      float64  `json:"total_score"` // weighted, 0-100
	MatchedSkills   []string `json:"matched_skills"`
	MissingSkills   []string `json:"missing_skills"`
	ExtraSkills     []string `json:"extra_skills"`
	Summary         string   `json:"summary"`
}
