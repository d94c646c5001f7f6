package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractRelevantSections(t *testing.T) {
	resume := `Jane Doe
jane@example.com

Summary
Data person who likes pipelines.

Professional Experience
Acme Corp, Data Engineer
- Built ETL jobs in Python and Airflow
- Migrated the warehouse to Snowflake

Education
BSc Computer Science

Projects
Churn model with scikit-learn

Skills
Python, SQL`

	got := ExtractRelevantSections(resume)
	assert.Equal(t, "Acme Corp, Data Engineer\n- Built ETL jobs in Python and Airflow\n- Migrated the warehouse to Snowflake\n\nChurn model with scikit-learn", got)
}

func TestExtractRelevantSections_KeywordsInsideBodyDoNotSplit(t *testing.T) {
	resume := `Work Experience
- Led a project to rewrite billing in Go
Improved developer experience across twelve internal services and teams
Languages
English`

	got := ExtractRelevantSections(resume)
	assert.Contains(t, got, "Led a project to rewrite billing in Go")
	assert.Contains(t, got, "Improved developer experience")
	assert.NotContains(t, got, "English")
}

func TestExtractRelevantSections_NoSections(t *testing.T) {
	assert.Empty(t, ExtractRelevantSections("Jane Doe\nSkills\nGo, SQL"))
	assert.Empty(t, ExtractRelevantSections(""))
}

func TestExtractRelevantSections_UnterminatedSection(t *testing.T) {
	got := ExtractRelevantSections("Projects\nKubernetes operator\nTerraform modules")
	assert.Equal(t, "Kubernetes operator\nTerraform modules", got)
}
