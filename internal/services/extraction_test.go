package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/gapmap/internal/ingestion"
	"github.com/jonathan/gapmap/internal/types"
)

const resumeText = `Jane Doe

Experience
- Built data pipelines in Python and SQL

Projects
- Churn model with scikit-learn

Education
- BSc Statistics
`

func TestExtraction_Analyze(t *testing.T) {
	jobs := &fakeJobs{descriptions: []string{"jd1", "jd2", "jd3"}}
	analyzer := &fakeAnalyzer{result: &types.SkillAnalysis{
		ResumeSkills: []string{"Python", "SQL"},
		JobSkills:    []string{"Python", "SQL", "Docker"},
	}}
	e := &Extraction{Jobs: jobs, Analyzer: analyzer, JobLimit: 2}

	got, err := e.Analyze(context.Background(), ingestion.MediaTypeText, []byte(resumeText), " Data Scientist ")
	require.NoError(t, err)
	assert.Equal(t, analyzer.result, got)

	assert.Equal(t, []string{"jd1", "jd2"}, analyzer.jobs)
	assert.Contains(t, analyzer.resumeText, "Built data pipelines")
	assert.Contains(t, analyzer.resumeText, "Churn model")
	assert.NotContains(t, analyzer.resumeText, "BSc Statistics")
}

func TestExtraction_InputFailures(t *testing.T) {
	okJobs := &fakeJobs{descriptions: []string{"jd"}}
	analyzer := &fakeAnalyzer{result: &types.SkillAnalysis{}}

	tests := []struct {
		name      string
		mediaType string
		data      string
		domain    string
		jobs      *fakeJobs
		message   string
	}{
		{"no domain", ingestion.MediaTypeText, resumeText, "  ", okJobs, "No domain provided"},
		{"unreadable", "image/png", "png", "Data", okJobs, "Failed to extract text from file"},
		{"no sections", ingestion.MediaTypeText, "Jane Doe\nEducation\nBSc", "Data", okJobs, "No relevant sections found in resume"},
		{"job search error", ingestion.MediaTypeText, resumeText, "Data", &fakeJobs{err: errUpstream}, "Failed to fetch job descriptions"},
		{"no jobs", ingestion.MediaTypeText, resumeText, "Data", &fakeJobs{}, "Failed to fetch job descriptions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Extraction{Jobs: tt.jobs, Analyzer: analyzer}
			_, err := e.Analyze(context.Background(), tt.mediaType, []byte(tt.data), tt.domain)
			require.Error(t, err)

			var inputErr *InputError
			require.True(t, errors.As(err, &inputErr))
			assert.Equal(t, tt.message, inputErr.Message)
		})
	}
}

func TestExtraction_AnalyzerFailure(t *testing.T) {
	e := &Extraction{
		Jobs:     &fakeJobs{descriptions: []string{"jd"}},
		Analyzer: &fakeAnalyzer{err: errUpstream},
	}
	_, err := e.Analyze(context.Background(), ingestion.MediaTypeText, []byte(resumeText), "Data")
	require.Error(t, err)

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, "skill analysis", upstream.Op)
	assert.ErrorIs(t, err, errUpstream)
}
