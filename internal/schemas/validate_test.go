package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validCombined = `{
	"education": {
		"degree": "BSc",
		"field": "Computer Science",
		"institution": "MIT",
		"year": 2019,
		"match_percentage": "85%"
	},
	"experience": {
		"positions": [
			{
				"organization": "Acme",
				"role": "Engineer",
				"duration": 3,
				"achievements": ["shipped the thing"]
			}
		],
		"total_duration": 3,
		"match_percentage": "72%"
	}
}`

const validSummary = `{
	"skills": {
		"hard_skills": ["go", "sql"],
		"tools": ["docker"],
		"soft_skills": ["communication"]
	},
	"summary": "Seasoned engineer."
}`

func TestValidate_CombinedMatchValid(t *testing.T) {
	assert.NoError(t, Validate(CombinedMatch, validCombined))
}

func TestValidate_ResumeSummaryValid(t *testing.T) {
	assert.NoError(t, Validate(ResumeSummary, validSummary))
}

func TestValidate_MissingMatchPercentage(t *testing.T) {
	doc := `{
		"education": {"degree": "BSc"},
		"experience": {"match_percentage": "50%"}
	}`
	err := Validate(CombinedMatch, doc)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, CombinedMatch, validationErr.Schema)
}

func TestValidate_RejectsUnknownShape(t *testing.T) {
	// The original service sometimes answered with a "companies" list;
	// anything outside the canonical shape is rejected, not coerced.
	doc := `{
		"education": {"match_percentage": "50%"},
		"experience": {"companies": [], "match_percentage": "50%"}
	}`
	err := Validate(CombinedMatch, doc)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestValidate_PercentagePattern(t *testing.T) {
	doc := `{
		"education": {"match_percentage": "eighty"},
		"experience": {"match_percentage": "70%"}
	}`
	assert.Error(t, Validate(CombinedMatch, doc))
}

func TestValidate_SummaryMissingSkillCategory(t *testing.T) {
	doc := `{
		"skills": {"hard_skills": [], "tools": []},
		"summary": "text"
	}`
	assert.Error(t, Validate(ResumeSummary, doc))
}

func TestValidate_UnknownSchemaName(t *testing.T) {
	assert.Error(t, Validate("nope", `{}`))
}
