package search

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jonathan/gapmap/internal/fetch"
)

// DefaultJSearchURL is the RapidAPI JSearch endpoint.
const DefaultJSearchURL = "https://jsearch.p.rapidapi.com/search"

const jsearchHost = "jsearch.p.rapidapi.com"

// JobSearcher fetches job descriptions for a job title.
type JobSearcher struct {
	BaseURL string
	apiKey  string
	opts    *fetch.Options
}

// NewJobSearcher creates a JSearch client. opts may be nil.
func NewJobSearcher(apiKey string, opts *fetch.Options) *JobSearcher {
	if opts == nil {
		opts = fetch.DefaultOptions()
	}
	return &JobSearcher{BaseURL: DefaultJSearchURL, apiKey: apiKey, opts: opts}
}

type jsearchResponse struct {
	Data []struct {
		JobTitle       string `json:"job_title"`
		EmployerName   string `json:"employer_name"`
		JobDescription string `json:"job_description"`
	} `json:"data"`
}

// JobDescriptions returns up to limit plain-text descriptions for
// "<domain> jobs". Empty descriptions are skipped.
func (s *JobSearcher) JobDescriptions(ctx context.Context, domain string, limit int) ([]string, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("jsearch: %w", ErrMissingAPIKey)
	}
	endpoint, err := withQuery(s.BaseURL, url.Values{
		"query":       {domain + " jobs"},
		"page":        {"1"},
		"num_pages":   {"1"},
		"date_posted": {"all"},
	})
	if err != nil {
		return nil, fmt.Errorf("jsearch: invalid base URL: %w", err)
	}

	opts := *s.opts
	opts.Headers = map[string]string{
		"X-RapidAPI-Key":  s.apiKey,
		"X-RapidAPI-Host": jsearchHost,
	}

	var resp jsearchResponse
	if err := fetch.GetJSON(ctx, endpoint, &opts, &resp); err != nil {
		return nil, fmt.Errorf("jsearch: %w", err)
	}

	var out []string
	for _, job := range resp.Data {
		if limit > 0 && len(out) >= limit {
			break
		}
		text := fetch.HTMLToText(job.JobDescription)
		if strings.TrimSpace(text) == "" {
			continue
		}
		out = append(out, text)
	}
	return out, nil
}
