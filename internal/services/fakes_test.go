package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonathan/gapmap/internal/db"
	"github.com/jonathan/gapmap/internal/llm"
	"github.com/jonathan/gapmap/internal/types"
)

type fakeJobs struct {
	descriptions []string
	err          error
	calls        int
}

func (f *fakeJobs) JobDescriptions(_ context.Context, _ string, limit int) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.descriptions) > limit {
		return f.descriptions[:limit], nil
	}
	return f.descriptions, nil
}

type fakeAnalyzer struct {
	resumeText string
	jobs       []string
	result     *types.SkillAnalysis
	err        error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, resumeText string, jobs []string) (*types.SkillAnalysis, error) {
	f.resumeText = resumeText
	f.jobs = jobs
	return f.result, f.err
}

type fakeLLM struct {
	mu      sync.Mutex
	prompts []string
	text    string
	err     error
}

func (f *fakeLLM) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	return f.text, f.err
}

func (f *fakeLLM) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.GenerateContent(ctx, prompt, tier)
}

func (f *fakeLLM) Close() error { return nil }

type fakeRepos struct {
	repos map[string][]types.Repository
	err   error
}

func (f *fakeRepos) TopRepositories(_ context.Context, skill string, limit int) ([]types.Repository, error) {
	if f.err != nil {
		return nil, f.err
	}
	repos := f.repos[skill]
	if len(repos) > limit {
		repos = repos[:limit]
	}
	return repos, nil
}

type fakeProfiles struct {
	profiles []types.Profile
	err      error
	limit    int
}

func (f *fakeProfiles) Profiles(_ context.Context, _, _ string, limit int) ([]types.Profile, error) {
	f.limit = limit
	return f.profiles, f.err
}

type fakeCache struct {
	set      *db.JobDescriptionSet
	getErr   error
	putErr   error
	stored   []string
	storedAt time.Duration
}

func (f *fakeCache) GetFreshJobDescriptions(context.Context, string) (*db.JobDescriptionSet, error) {
	return f.set, f.getErr
}

func (f *fakeCache) UpsertJobDescriptions(_ context.Context, domain string, descriptions []string, ttl time.Duration) (*db.JobDescriptionSet, error) {
	f.stored = descriptions
	f.storedAt = ttl
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &db.JobDescriptionSet{Domain: domain, Descriptions: descriptions}, nil
}

var errUpstream = errors.New("upstream down")
