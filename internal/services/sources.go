package services

import (
	"context"
	"log"
	"time"

	"github.com/jonathan/gapmap/internal/db"
	"github.com/jonathan/gapmap/internal/types"
)

// JobSource returns job description texts for a domain.
type JobSource interface {
	JobDescriptions(ctx context.Context, domain string, limit int) ([]string, error)
}

// RepoSource returns repositories for practicing a skill.
type RepoSource interface {
	TopRepositories(ctx context.Context, skill string, limit int) ([]types.Repository, error)
}

// ProfileSource returns professional profiles for a title and location.
type ProfileSource interface {
	Profiles(ctx context.Context, title, location string, limit int) ([]types.Profile, error)
}

// Analyzer turns resume text and job descriptions into a skill analysis.
type Analyzer interface {
	Analyze(ctx context.Context, resumeText string, jobDescriptions []string) (*types.SkillAnalysis, error)
}

// JobCache is the subset of the database used to cache job descriptions.
type JobCache interface {
	GetFreshJobDescriptions(ctx context.Context, domain string) (*db.JobDescriptionSet, error)
	UpsertJobDescriptions(ctx context.Context, domain string, descriptions []string, ttl time.Duration) (*db.JobDescriptionSet, error)
}

// CachedJobSource serves job descriptions from a cache, falling back to the
// wrapped source on a miss. Cache failures are logged and never fatal.
type CachedJobSource struct {
	Source JobSource
	Cache  JobCache
	TTL    time.Duration
}

// JobDescriptions implements JobSource.
func (c *CachedJobSource) JobDescriptions(ctx context.Context, domain string, limit int) ([]string, error) {
	cached, err := c.Cache.GetFreshJobDescriptions(ctx, domain)
	if err != nil {
		log.Printf("[jobs] cache lookup for %q failed: %v", domain, err)
	} else if cached != nil && len(cached.Descriptions) >= limit {
		log.Printf("[jobs] cache hit for %q (%d descriptions)", domain, len(cached.Descriptions))
		return cached.Descriptions[:limit], nil
	}

	descriptions, err := c.Source.JobDescriptions(ctx, domain, limit)
	if err != nil {
		return nil, err
	}
	if len(descriptions) == 0 {
		return descriptions, nil
	}

	ttl := c.TTL
	if ttl <= 0 {
		ttl = db.DefaultJobDescriptionCacheTTL
	}
	if _, err := c.Cache.UpsertJobDescriptions(ctx, domain, descriptions, ttl); err != nil {
		log.Printf("[jobs] cache store for %q failed: %v", domain, err)
	}
	return descriptions, nil
}
