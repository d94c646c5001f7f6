// Package schemas embeds the JSON Schemas for the collaborator responses.
package schemas

import "embed"

// Schema file names.
const (
	SkillAnalysis     = "skill_analysis.schema.json"
	LearningResources = "learning_resources.schema.json"
	Profiles          = "profiles.schema.json"
)

//go:embed *.schema.json
var FS embed.FS

// Names lists every embedded schema.
var Names = []string{SkillAnalysis, LearningResources, Profiles}
