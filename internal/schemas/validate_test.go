package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rootschemas "github.com/jonathan/gapmap/schemas"
)

func TestLoad_CachesEmbeddedSchemas(t *testing.T) {
	for _, name := range rootschemas.Names {
		first, err := Load(name)
		require.NoError(t, err, name)
		second, err := Load(name)
		require.NoError(t, err)
		assert.Same(t, first, second)
	}
}

func TestLoad_UnknownSchema(t *testing.T) {
	_, err := Load("nope.schema.json")
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "nope.schema.json", loadErr.Path)
}

func TestValidate_ReportsFieldPaths(t *testing.T) {
	err := Validate(rootschemas.SkillAnalysis, []byte(`{"resume_skills":["Go"],"job_skills":"Go"}`))
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, rootschemas.SkillAnalysis, verr.Schema)
	require.NotEmpty(t, verr.Errors)
	assert.Equal(t, "job_skills", verr.Errors[0].Field)
	assert.Contains(t, err.Error(), "skill_analysis.schema.json validation failed: job_skills:")
}

func TestValidate_RootError(t *testing.T) {
	err := Validate(rootschemas.Profiles, []byte(`{"title":"not a list"}`))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "(root)", verr.Errors[0].Field)
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(rootschemas.Profiles, []byte("{ invalid json }"))
	require.Error(t, err)
	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "profiles.json")
	require.NoError(t, os.WriteFile(valid, []byte(`[{"title":"A","link":"https://linkedin.com/in/a"}]`), 0o644))
	assert.NoError(t, ValidateFile(rootschemas.Profiles, valid))

	err := ValidateFile(rootschemas.Profiles, filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "not found")
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Schema: rootschemas.LearningResources,
		Errors: []FieldError{
			{Field: "Go.repositories", Message: "Invalid type. Expected: array, given: string"},
			{Field: "Go", Message: "project_ideas is required"},
		},
	}
	assert.Equal(t,
		"learning_resources.schema.json validation failed: Go.repositories: Invalid type. Expected: array, given: string; Go: project_ideas is required",
		err.Error())
}
