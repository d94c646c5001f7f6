// Package types provides the request and response shapes exchanged between the
// workflow and its collaborators.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SkillAnalysis is the extraction collaborator's response. MissingSkills is
// informational only; the workflow recomputes it from the other two lists.
type SkillAnalysis struct {
	AnalysisText  string   `json:"analysis_text,omitempty"`
	ResumeSkills  []string `json:"resume_skills"`
	JobSkills     []string `json:"job_skills"`
	MissingSkills []string `json:"missing_skills,omitempty"`
}
