// Package search wraps the third-party search APIs used by the collaborator
// service: JSearch for job descriptions, GitHub for reference repositories
// and SerpAPI for public profile search.
package search

import (
	"errors"
	"net/url"
)

// ErrMissingAPIKey is returned by searchers that cannot run without a key.
var ErrMissingAPIKey = errors.New("search: API key not configured")

func withQuery(base string, params url.Values) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
