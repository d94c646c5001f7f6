package services

import (
	"context"
	"log"
	"strings"

	"github.com/jonathan/gapmap/internal/types"
)

// DefaultProfileLimit is the number of profiles returned per search.
const DefaultProfileLimit = 5

// Profiles searches professional profiles by domain and location.
type Profiles struct {
	Source ProfileSource
	// Limit defaults to DefaultProfileLimit.
	Limit int
}

// Search returns matching profiles. A failing search yields an empty list.
func (p *Profiles) Search(ctx context.Context, domain, location string) ([]types.Profile, error) {
	domain, location = strings.TrimSpace(domain), strings.TrimSpace(location)
	if domain == "" || location == "" {
		return nil, invalid("Job title and location are required", nil)
	}

	limit := p.Limit
	if limit <= 0 {
		limit = DefaultProfileLimit
	}
	profiles, err := p.Source.Profiles(ctx, domain, location, limit)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		log.Printf("[profiles] search for %q in %q failed: %v", domain, location, err)
		return []types.Profile{}, nil
	}
	if profiles == nil {
		profiles = []types.Profile{}
	}
	return profiles, nil
}
