package workflow

import (
	"context"

	"github.com/jonathan/gapmap/internal/types"
)

// ExtractionRequest carries the inputs of the extraction stage.
type ExtractionRequest struct {
	Document Document
	Domain   string
}

// Extractor extracts resume and job skills for a document and target domain.
type Extractor interface {
	Extract(ctx context.Context, req ExtractionRequest) (*types.SkillAnalysis, error)
}

// ResourceFinder retrieves learning resources for a set of skills.
type ResourceFinder interface {
	FindResources(ctx context.Context, skills []string) (types.ResourceMap, error)
}

// ProfileSearcher finds professional profiles for a domain and location.
type ProfileSearcher interface {
	SearchProfiles(ctx context.Context, domain, location string) ([]types.Profile, error)
}

// Collaborators groups the external services the coordinator drives.
type Collaborators struct {
	Extractor Extractor
	Resources ResourceFinder
	Profiles  ProfileSearcher
}
