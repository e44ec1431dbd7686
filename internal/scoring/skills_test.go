package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/types"
)

func TestScoreSkills_EmptyResumeAgainstOneJobSkill(t *testing.T) {
	match, err := ScoreSkills(
		types.SkillSet{},
		types.JobSkills{HardSkills: []string{"python"}},
	)
	require.NoError(t, err)

	assert.Equal(t, 0.0, match.Score)
	assert.Empty(t, match.Matched)
	assert.Equal(t, []string{"python"}, match.Missing)
	assert.Empty(t, match.Extra)
}

func TestScoreSkills_ExactSingleMatch(t *testing.T) {
	match, err := ScoreSkills(
		types.SkillSet{HardSkills: []string{"python"}},
		types.JobSkills{HardSkills: []string{"python"}},
	)
	require.NoError(t, err)

	// exact_ratio 1.0, empty partial pool: 0.7 * 1.0 * 100 for the hard
	// category, soft category contributes 0 against an empty requirement,
	// combined (0.8*70 + 0.2*0) / 1.0
	assert.InDelta(t, 56.0, match.Score, 1e-9)
	assert.Equal(t, []string{"python"}, match.Matched)
	assert.Empty(t, match.Missing)
	assert.Empty(t, match.Extra)
}

func TestScoreSkills_HardCategoryAlone(t *testing.T) {
	match, err := ScoreSkills(
		types.SkillSet{
			HardSkills: []string{"python"},
			SoftSkills: []string{"teamwork"},
		},
		types.JobSkills{
			HardSkills: []string{"python"},
			SoftSkills: []string{"teamwork"},
		},
	)
	require.NoError(t, err)

	// both categories score 70, combined stays 70
	assert.InDelta(t, 70.0, match.Score, 1e-9)
}

func TestScoreSkills_CaseInsensitiveDeduplicated(t *testing.T) {
	match, err := ScoreSkills(
		types.SkillSet{HardSkills: []string{"Python", "PYTHON", "Go"}},
		types.JobSkills{HardSkills: []string{"python", "go"}},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"go", "python"}, match.Matched)
	assert.Empty(t, match.Missing)
	assert.InDelta(t, 56.0, match.Score, 1e-9)
}

func TestScoreSkills_PartialMatchAboveThreshold(t *testing.T) {
	// "postgresql" vs "postgres": distance 2 over length 10, similarity 0.8
	match, err := ScoreSkills(
		types.SkillSet{HardSkills: []string{"postgres"}},
		types.JobSkills{HardSkills: []string{"postgresql"}},
	)
	require.NoError(t, err)

	// hard category: exact 0, partial pool mean 0.8 -> 0.3*0.8*100 = 24
	// combined: 0.8*24 / 1.0
	assert.InDelta(t, 19.2, match.Score, 1e-9)
	assert.Equal(t, []string{"postgresql"}, match.Missing,
		"partial matches still count as missing")
	assert.Equal(t, []string{"postgres"}, match.Extra)
}

func TestScoreSkills_PartialMatchBelowThresholdIgnored(t *testing.T) {
	match, err := ScoreSkills(
		types.SkillSet{HardSkills: []string{"java"}},
		types.JobSkills{HardSkills: []string{"haskell"}},
	)
	require.NoError(t, err)
	assert.Equal(t, 0.0, match.Score)
}

func TestScoreSkills_ExtraSkillsReported(t *testing.T) {
	match, err := ScoreSkills(
		types.SkillSet{
			HardSkills: []string{"go", "rust"},
			SoftSkills: []string{"mentoring"},
		},
		types.JobSkills{HardSkills: []string{"go"}},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"mentoring", "rust"}, match.Extra)
}

func TestScoreSkills_EmptyJobSkills(t *testing.T) {
	match, err := ScoreSkills(
		types.SkillSet{HardSkills: []string{"go"}},
		types.JobSkills{},
	)
	require.NoError(t, err)
	assert.Equal(t, 0.0, match.Score)
	assert.Equal(t, []string{"go"}, match.Extra)
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, similarity("go", "go"), 1e-9)
	assert.InDelta(t, 0.8, similarity("postgresql", "postgres"), 1e-9)
	assert.Equal(t, 0.0, similarity("", ""))
}
