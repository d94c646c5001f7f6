package services

import (
	"context"
	"log"
	"strings"

	"github.com/jonathan/gapmap/internal/ingestion"
	"github.com/jonathan/gapmap/internal/types"
)

// DefaultJobDescriptionLimit is the number of postings compared against a resume.
const DefaultJobDescriptionLimit = 10

// Extraction analyzes a resume against job postings for a domain.
type Extraction struct {
	Jobs     JobSource
	Analyzer Analyzer
	// JobLimit defaults to DefaultJobDescriptionLimit.
	JobLimit int
}

// Analyze extracts the relevant resume sections, fetches job descriptions for
// the domain and asks the analyzer for both skill lists.
func (e *Extraction) Analyze(ctx context.Context, mediaType string, data []byte, domain string) (*types.SkillAnalysis, error) {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return nil, invalid("No domain provided", nil)
	}

	text, err := ingestion.ExtractText(mediaType, data)
	if err != nil {
		log.Printf("[extract] text extraction failed: %v", err)
		return nil, invalid("Failed to extract text from file", err)
	}

	sections := ingestion.ExtractRelevantSections(text)
	if sections == "" {
		return nil, invalid("No relevant sections found in resume", nil)
	}

	limit := e.JobLimit
	if limit <= 0 {
		limit = DefaultJobDescriptionLimit
	}
	jobs, err := e.Jobs.JobDescriptions(ctx, domain, limit)
	if err != nil {
		log.Printf("[extract] job search for %q failed: %v", domain, err)
		return nil, invalid("Failed to fetch job descriptions", err)
	}
	if len(jobs) == 0 {
		return nil, invalid("Failed to fetch job descriptions", nil)
	}
	log.Printf("[extract] analyzing %d resume characters against %d job descriptions", len(sections), len(jobs))

	analysis, err := e.Analyzer.Analyze(ctx, sections, jobs)
	if err != nil {
		return nil, &UpstreamError{Op: "skill analysis", Cause: err}
	}
	return analysis, nil
}
