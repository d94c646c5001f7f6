package services

import (
	"context"
	"log"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/gapmap/internal/llm"
	"github.com/jonathan/gapmap/internal/prompts"
	"github.com/jonathan/gapmap/internal/types"
)

const (
	// DefaultRepositoryLimit is the number of repositories returned per skill.
	DefaultRepositoryLimit = 3
	defaultConcurrency     = 4
)

// Resources builds learning resources for each requested skill.
type Resources struct {
	LLM   llm.Client
	Repos RepoSource
	// RepoLimit defaults to DefaultRepositoryLimit.
	RepoLimit int
	// Concurrency bounds the number of skills processed at once.
	Concurrency int
}

// Find returns a map keyed by exactly the requested skills. Project idea and
// repository failures degrade to fallback content rather than failing the map.
func (r *Resources) Find(ctx context.Context, skills []string) (types.ResourceMap, error) {
	if len(skills) == 0 {
		return nil, invalid("No skills provided", nil)
	}

	limit := r.RepoLimit
	if limit <= 0 {
		limit = DefaultRepositoryLimit
	}
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	result := make(types.ResourceMap, len(skills))
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, skill := range skills {
		g.Go(func() error {
			res := types.LearningResource{
				ProjectIdeas: r.projectIdeas(gCtx, skill),
				Repositories: r.repositories(gCtx, skill, limit),
			}
			mu.Lock()
			result[skill] = res
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Resources) projectIdeas(ctx context.Context, skill string) string {
	fallback := prompts.MustGet(prompts.ResourcesFile, "project-ideas-fallback")
	if r.LLM == nil {
		return fallback
	}

	template := prompts.MustGet(prompts.ResourcesFile, "project-ideas")
	prompt := prompts.Format(template, map[string]string{"Skill": skill})

	text, err := r.LLM.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		log.Printf("[resources] project ideas for %q failed: %v", skill, err)
		return fallback
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return fallback
	}
	return text
}

func (r *Resources) repositories(ctx context.Context, skill string, limit int) []types.Repository {
	if r.Repos == nil {
		return []types.Repository{}
	}
	repos, err := r.Repos.TopRepositories(ctx, skill, limit)
	if err != nil {
		log.Printf("[resources] repository search for %q failed: %v", skill, err)
		return []types.Repository{}
	}
	if repos == nil {
		repos = []types.Repository{}
	}
	return repos
}
