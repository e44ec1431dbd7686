package batch

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/types"
)

type fakeExtractor struct {
	mu    sync.Mutex
	texts map[string]string
	fail  map[string]bool
	calls int
}

func (f *fakeExtractor) Extract(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fail[key] {
		return "", fmt.Errorf("extraction failed for %s", key)
	}
	return f.texts[key], nil
}

type fakeAnonymizer struct{}

func (fakeAnonymizer) Identify(string) types.Identity { return types.Identity{} }

func (fakeAnonymizer) Redact(text string, _ types.Identity) string { return text }

type fakeProfiles struct {
	err error
}

func (f *fakeProfiles) Extract(_ context.Context, _, _ string) (*types.StructuredProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &types.StructuredProfile{
		Education:  types.Education{MatchPercent: 80},
		Experience: types.Experience{MatchPercent: 60},
		Skills:     types.SkillSet{HardSkills: []string{"go"}},
		Summary:    "solid candidate",
	}, nil
}

type fakeResults struct {
	mu    sync.Mutex
	saved []*DocumentResult
	err   error
}

func (f *fakeResults) SaveDocumentResult(_ context.Context, res *DocumentResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, res)
	return nil
}

func (f *fakeResults) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saved)
}

func testJob() *types.JobProfile {
	return &types.JobProfile{
		Title:       "Backend Engineer",
		Description: "Build services",
		Skills:      types.JobSkills{HardSkills: []string{"go"}},
	}
}

func evenWeighting() types.Weighting {
	return types.Weighting{Education: 0.3, Experience: 0.3, Skills: 0.4}
}

func newTestOrchestrator(ext *fakeExtractor, prof *fakeProfiles, res *fakeResults) *Orchestrator {
	return NewOrchestrator(ext, fakeAnonymizer{}, prof, res, NewStatusStore(), 2, nil)
}

func waitForState(t *testing.T, o *Orchestrator, jobID string, state types.BatchState) types.BatchStatus {
	t.Helper()
	require.Eventually(t, func() bool {
		return o.Status(jobID).State == state
	}, 2*time.Second, 5*time.Millisecond)
	return o.Status(jobID)
}

func TestSubmit_ProcessesAllDocuments(t *testing.T) {
	ext := &fakeExtractor{texts: map[string]string{
		"a.pdf": "resume a",
		"b.pdf": "resume b",
		"c.pdf": "resume c",
	}}
	results := &fakeResults{}
	o := newTestOrchestrator(ext, &fakeProfiles{}, results)

	jobID, err := o.Submit(Request{
		Job:          testJob(),
		DocumentKeys: []string{"a.pdf", "b.pdf", "c.pdf"},
		Weighting:    evenWeighting(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, jobID)

	status := waitForState(t, o, jobID, types.BatchCompleted)
	assert.Equal(t, 3, status.Total)
	assert.Equal(t, 3, status.Processed)
	assert.Equal(t, 0, status.Failed)
	assert.Equal(t, 3, results.count())
}

func TestSubmit_DocumentFailureIsIsolated(t *testing.T) {
	ext := &fakeExtractor{
		texts: map[string]string{"a.pdf": "resume a", "c.pdf": "resume c"},
		fail:  map[string]bool{"b.pdf": true},
	}
	results := &fakeResults{}
	o := newTestOrchestrator(ext, &fakeProfiles{}, results)

	jobID, err := o.Submit(Request{
		Job:          testJob(),
		DocumentKeys: []string{"a.pdf", "b.pdf", "c.pdf"},
		Weighting:    evenWeighting(),
	})
	require.NoError(t, err)

	status := waitForState(t, o, jobID, types.BatchCompleted)
	assert.Equal(t, 3, status.Total)
	assert.Equal(t, 2, status.Processed)
	assert.Equal(t, 1, status.Failed)
	assert.Equal(t, 2, results.count())
}

func TestSubmit_InvalidWeightingRejectedBeforeProcessing(t *testing.T) {
	ext := &fakeExtractor{texts: map[string]string{"a.pdf": "resume a"}}
	o := newTestOrchestrator(ext, &fakeProfiles{}, &fakeResults{})

	_, err := o.Submit(Request{
		JobID:        "job-1",
		Job:          testJob(),
		DocumentKeys: []string{"a.pdf"},
		Weighting:    types.Weighting{Education: 0.5, Experience: 0.3, Skills: 0.3},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum to 1.0")
	assert.Equal(t, types.BatchUnknown, o.Status("job-1").State)
	assert.Equal(t, 0, ext.calls)
}

func TestSubmit_IncompleteJobRejected(t *testing.T) {
	o := newTestOrchestrator(&fakeExtractor{}, &fakeProfiles{}, &fakeResults{})

	_, err := o.Submit(Request{
		Job:          &types.JobProfile{Title: "No description"},
		DocumentKeys: []string{"a.pdf"},
		Weighting:    evenWeighting(),
	})
	require.Error(t, err)

	_, err = o.Submit(Request{
		DocumentKeys: []string{"a.pdf"},
		Weighting:    evenWeighting(),
	})
	require.Error(t, err)
}

func TestSubmit_EmptyBatchRejected(t *testing.T) {
	o := newTestOrchestrator(&fakeExtractor{}, &fakeProfiles{}, &fakeResults{})

	_, err := o.Submit(Request{
		Job:       testJob(),
		Weighting: evenWeighting(),
	})
	require.Error(t, err)
}

func TestSubmit_PersistenceFailureCountsAsFailed(t *testing.T) {
	ext := &fakeExtractor{texts: map[string]string{"a.pdf": "resume a"}}
	results := &fakeResults{err: fmt.Errorf("database unavailable")}
	o := newTestOrchestrator(ext, &fakeProfiles{}, results)

	jobID, err := o.Submit(Request{
		Job:          testJob(),
		DocumentKeys: []string{"a.pdf"},
		Weighting:    evenWeighting(),
	})
	require.NoError(t, err)

	status := waitForState(t, o, jobID, types.BatchCompleted)
	assert.Equal(t, 0, status.Processed)
	assert.Equal(t, 1, status.Failed)
}

func TestSubmit_IndependentBatchesDoNotInterfere(t *testing.T) {
	ext := &fakeExtractor{texts: map[string]string{
		"a.pdf": "resume a",
		"b.pdf": "resume b",
	}}
	o := newTestOrchestrator(ext, &fakeProfiles{}, &fakeResults{})

	first, err := o.Submit(Request{
		Job:          testJob(),
		DocumentKeys: []string{"a.pdf"},
		Weighting:    evenWeighting(),
	})
	require.NoError(t, err)
	second, err := o.Submit(Request{
		Job:          testJob(),
		DocumentKeys: []string{"a.pdf", "b.pdf"},
		Weighting:    evenWeighting(),
	})
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	firstStatus := waitForState(t, o, first, types.BatchCompleted)
	secondStatus := waitForState(t, o, second, types.BatchCompleted)
	assert.Equal(t, 1, firstStatus.Total)
	assert.Equal(t, 2, secondStatus.Total)
}

func TestSubmit_SavedResultCarriesScores(t *testing.T) {
	ext := &fakeExtractor{texts: map[string]string{"a.pdf": "resume a"}}
	results := &fakeResults{}
	o := newTestOrchestrator(ext, &fakeProfiles{}, results)

	jobID, err := o.Submit(Request{
		Job:          testJob(),
		DocumentKeys: []string{"a.pdf"},
		Weighting:    evenWeighting(),
	})
	require.NoError(t, err)
	waitForState(t, o, jobID, types.BatchCompleted)

	require.Equal(t, 1, results.count())
	saved := results.saved[0]
	assert.Equal(t, jobID, saved.JobID)
	assert.Equal(t, "a.pdf", saved.ResumeKey)
	assert.Equal(t, 80.0, saved.Result.EducationScore)
	assert.Equal(t, 60.0, saved.Result.ExperienceScore)
	// single exact hard match against an empty soft requirement
	assert.InDelta(t, 56.0, saved.Result.SkillScore, 1e-9)
	assert.InDelta(t, 80*0.3+60*0.3+56.0*0.4, saved.Result.TotalScore, 1e-9)
	assert.Equal(t, "solid candidate", saved.Result.Summary)
}

func TestStatusStore_UnknownJob(t *testing.T) {
	store := NewStatusStore()
	status := store.Get("never-ran")
	assert.Equal(t, types.BatchUnknown, status.State)
	assert.Equal(t, "never-ran", status.JobID)
}
