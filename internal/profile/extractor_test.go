package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/prompts"
	"github.com/jonathan/resume-matcher/internal/repair"
)

// fakeGen returns canned responses keyed by template
type fakeGen struct {
	responses map[string]string
	err       error
	calls     []string
}

func (f *fakeGen) Complete(_ context.Context, templateKey string, vars map[string]string) (string, error) {
	f.calls = append(f.calls, templateKey)
	if f.err != nil {
		return "", f.err
	}
	if _, ok := vars["resume_text"]; !ok {
		return "", errors.New("resume_text variable missing")
	}
	return f.responses[templateKey], nil
}

const goodCombined = `{
	"education": {
		"degree": "BSc",
		"field": "Computer Science",
		"institution": "State University",
		"year": 2018,
		"match_percentage": "85%"
	},
	"experience": {
		"positions": [
			{"organization": "Acme", "role": "Backend Engineer", "duration": 3, "achievements": ["cut latency 40%"]}
		],
		"total_duration": 3,
		"match_percentage": "72%"
	}
}`

const goodSummary = `{
	"skills": {
		"hard_skills": ["go", "sql"],
		"tools": ["docker"],
		"soft_skills": ["communication"]
	},
	"summary": "Backend engineer with three years of experience."
}`

func newFake() *fakeGen {
	return &fakeGen{responses: map[string]string{
		prompts.KeyCombinedMatch: goodCombined,
		prompts.KeyResumeSummary: goodSummary,
	}}
}

func TestExtract_HappyPath(t *testing.T) {
	gen := newFake()
	ex := NewExtractor(gen, nil)

	profile, err := ex.Extract(context.Background(), "resume text", "job text")
	require.NoError(t, err)

	assert.Equal(t, 85.0, profile.Education.MatchPercent)
	assert.Equal(t, 72.0, profile.Experience.MatchPercent)
	assert.Equal(t, "BSc", profile.Education.Degree)
	require.Len(t, profile.Experience.Positions, 1)
	assert.Equal(t, "Acme", profile.Experience.Positions[0].Organization)
	assert.Equal(t, []string{"go", "sql"}, profile.Skills.HardSkills)
	assert.Equal(t, "Backend engineer with three years of experience.", profile.Summary)
	assert.Equal(t, []string{prompts.KeyCombinedMatch, prompts.KeyResumeSummary}, gen.calls,
		"both prompts must be invoked")
}

func TestExtract_RepairsDirtyJSON(t *testing.T) {
	gen := newFake()
	gen.responses[prompts.KeyResumeSummary] = `{
		"skills": {
			"hard_skills": ["go",],
			"tools": [],
			"soft_skills": [],
		},
		"summary": "ok",
	}`
	ex := NewExtractor(gen, nil)

	profile, err := ex.Extract(context.Background(), "resume", "job")
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, profile.Skills.HardSkills)
}

func TestExtract_InvocationErrorPropagates(t *testing.T) {
	gen := newFake()
	gen.err = errors.New("service unavailable")
	ex := NewExtractor(gen, nil)

	_, err := ex.Extract(context.Background(), "resume", "job")
	assert.ErrorContains(t, err, "service unavailable")
}

func TestExtract_UnrepairableResponse(t *testing.T) {
	gen := newFake()
	gen.responses[prompts.KeyCombinedMatch] = "I could not produce JSON, sorry {{{"
	ex := NewExtractor(gen, nil)

	_, err := ex.Extract(context.Background(), "resume", "job")
	var malformed *repair.MalformedResponseError
	require.ErrorAs(t, err, &malformed)
}

func TestExtract_NonCanonicalShapeRejected(t *testing.T) {
	gen := newFake()
	gen.responses[prompts.KeyCombinedMatch] = `{
		"education": {"match_percentage": "50%"},
		"experience": {"companies": [{"name": "Acme"}], "match_percentage": "50%"}
	}`
	ex := NewExtractor(gen, nil)

	_, err := ex.Extract(context.Background(), "resume", "job")
	var malformed *repair.MalformedResponseError
	require.ErrorAs(t, err, &malformed)
}

func TestParsePercent(t *testing.T) {
	value, err := ParsePercent("72%")
	require.NoError(t, err)
	assert.Equal(t, 72.0, value)

	value, err = ParsePercent(" 33.5 % ")
	require.NoError(t, err)
	assert.Equal(t, 33.5, value)

	_, err = ParsePercent("")
	assert.Error(t, err)

	_, err = ParsePercent("150%")
	assert.Error(t, err)

	_, err = ParsePercent("high")
	assert.Error(t, err)
}
