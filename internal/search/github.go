package search

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/jonathan/gapmap/internal/fetch"
	"github.com/jonathan/gapmap/internal/types"
)

// DefaultGitHubURL is the repository search endpoint.
const DefaultGitHubURL = "https://api.github.com/search/repositories"

const noDescription = "No description available"

// RepoSearcher finds reference repositories for a skill.
type RepoSearcher struct {
	BaseURL string
	token   string
	opts    *fetch.Options
}

// NewRepoSearcher creates a GitHub search client. Without a token every
// search returns no repositories.
func NewRepoSearcher(token string, opts *fetch.Options) *RepoSearcher {
	if opts == nil {
		opts = fetch.DefaultOptions()
	}
	return &RepoSearcher{BaseURL: DefaultGitHubURL, token: token, opts: opts}
}

type githubResponse struct {
	Items []struct {
		Name        string  `json:"name"`
		FullName    string  `json:"full_name"`
		HTMLURL     string  `json:"html_url"`
		Description *string `json:"description"`
	} `json:"items"`
}

// TopRepositories returns up to limit repositories whose readme or
// description mentions skill.
func (s *RepoSearcher) TopRepositories(ctx context.Context, skill string, limit int) ([]types.Repository, error) {
	if s.token == "" {
		return []types.Repository{}, nil
	}
	endpoint, err := withQuery(s.BaseURL, url.Values{
		"q":        {skill + " in:readme in:description"},
		"order":    {"desc"},
		"per_page": {strconv.Itoa(limit)},
	})
	if err != nil {
		return nil, fmt.Errorf("github: invalid base URL: %w", err)
	}

	opts := *s.opts
	opts.Headers = map[string]string{
		"Accept":               "application/vnd.github+json",
		"Authorization":        "Bearer " + s.token,
		"X-GitHub-Api-Version": "2022-11-28",
	}

	var resp githubResponse
	if err := fetch.GetJSON(ctx, endpoint, &opts, &resp); err != nil {
		return nil, fmt.Errorf("github: %w", err)
	}

	repos := make([]types.Repository, 0, len(resp.Items))
	for _, item := range resp.Items {
		if limit > 0 && len(repos) >= limit {
			break
		}
		desc := noDescription
		if item.Description != nil && *item.Description != "" {
			desc = *item.Description
		}
		repos = append(repos, types.Repository{Name: item.Name, URL: item.HTMLURL, Description: desc})
	}
	return repos, nil
}
