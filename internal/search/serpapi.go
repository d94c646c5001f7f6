package search

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/jonathan/gapmap/internal/fetch"
	"github.com/jonathan/gapmap/internal/types"
)

// DefaultSerpAPIURL is the SerpAPI search endpoint.
const DefaultSerpAPIURL = "https://serpapi.com/search"

// ProfileSearcher finds public professional profiles through a web search.
type ProfileSearcher struct {
	BaseURL string
	apiKey  string
	opts    *fetch.Options
}

// NewProfileSearcher creates a SerpAPI client. Without a key every search
// returns an empty list.
func NewProfileSearcher(apiKey string, opts *fetch.Options) *ProfileSearcher {
	if opts == nil {
		opts = fetch.DefaultOptions()
	}
	return &ProfileSearcher{BaseURL: DefaultSerpAPIURL, apiKey: apiKey, opts: opts}
}

type serpResponse struct {
	OrganicResults []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
}

// ProfileQuery builds the site-restricted query for a title and location.
func ProfileQuery(title, location string) string {
	return fmt.Sprintf("site:linkedin.com/in/ %q %q", title, location)
}

// Profiles returns up to limit profiles in search-engine order.
func (s *ProfileSearcher) Profiles(ctx context.Context, title, location string, limit int) ([]types.Profile, error) {
	if s.apiKey == "" {
		return []types.Profile{}, nil
	}
	endpoint, err := withQuery(s.BaseURL, url.Values{
		"engine":  {"google"},
		"q":       {ProfileQuery(title, location)},
		"api_key": {s.apiKey},
		"num":     {strconv.Itoa(limit)},
	})
	if err != nil {
		return nil, fmt.Errorf("serpapi: invalid base URL: %w", err)
	}

	var resp serpResponse
	if err := fetch.GetJSON(ctx, endpoint, s.opts, &resp); err != nil {
		return nil, fmt.Errorf("serpapi: %w", err)
	}

	profiles := make([]types.Profile, 0, len(resp.OrganicResults))
	for _, r := range resp.OrganicResults {
		if limit > 0 && len(profiles) >= limit {
			break
		}
		if r.Link == "" {
			continue
		}
		profiles = append(profiles, types.Profile{Title: r.Title, Link: r.Link, Snippet: r.Snippet})
	}
	return profiles, nil
}
