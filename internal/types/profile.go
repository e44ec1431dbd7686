package types

// Identity holds the personal data extracted from a resume before redaction.
// Each field is independently optional; extraction is best-effort and a nil
// field means nothing was found, never that something was invented.
type Identity struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// IsEmpty reports whether no identity field was extracted
func (id Identity) IsEmpty() bool {
	return id.Name == nil && id.Email == nil && id.Phone == nil
}

// Education is the education section of a structured profile.
// MatchPercent is parsed from the "N%" string the extraction boundary returns.
type Education struct {
	Degree       string  `json:"degree"`
	Field        string  `json:"field"`
	Institution  string  `json:"institution"`
	Year         int     `json:"year"`
	MatchPercent float64 `json:"match_percent"`
}

// Position is a single role within the experience section
type Position struct {
	Organization string   `json:"organization"`
	Role         string   `json:"role"`
	Duration     float64  `json:"duration"`
	Achievements []string `json:"achievements"`
}

// Experience is the experience section of a structured profile
type Experience struct {
	Positions     []Position `json:"positions"`
	TotalDuration float64    `json:"total_duration"`
	MatchPercent  float64    `json:"match_percent"`
}

// SkillSet is the skills taxonomy extracted from a resume
type SkillSet struct {
	HardSkills []string `json:"hard_skills"`
	Tools      []string `json:"tools"`
	SoftSkills []string `json:"soft_skills"`
}

// StructuredProfile is the normalized education/experience/skills/summary
// record derived from free-text resume content.
type StructuredProfile struct {
	Education  Education  `json:"education"`
	Experience Experience `json:"experience"`
	Skills     SkillSet   `json:"skills"`
	Summary    string     `json:"summary"`
}
