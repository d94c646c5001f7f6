package parsing

import (
	"fmt"
	"strings"

	"github.com/jonathan/gapmap/internal/prompts"
)

// JobDescriptionSeparator joins job descriptions in the analysis prompt.
const JobDescriptionSeparator = "\n---\n"

type outputField struct {
	name     string
	hint     string
	required bool
}

// analysisFields is the JSON shape requested from the model.
var analysisFields = []outputField{
	{"resume_skills", "Every technical skill found in the resume, one per entry", true},
	{"job_skills", "Every technical skill required by the job descriptions, one per entry", true},
	{"missing_skills", "Entries of job_skills that do not appear in resume_skills", false},
}

// BuildSkillAnalysisPrompt renders the extraction prompt for a resume and a
// set of job descriptions.
func BuildSkillAnalysisPrompt(resumeText string, jobDescriptions []string) string {
	var sb strings.Builder
	sb.WriteString(prompts.MustGet(prompts.AnalysisFile, "skill-analysis"))
	sb.WriteString("\n\nReturn ONLY valid JSON with this structure:\n{\n")
	for i, f := range analysisFields {
		req := ""
		if f.required {
			req = " (required)"
		}
		fmt.Fprintf(&sb, "  %q: [\"string\"]%s // %s", f.name, req, f.hint)
		if i < len(analysisFields)-1 {
			sb.WriteByte(',')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("}\n\n")
	sb.WriteString("Only list skills that appear in the text. No markdown, no explanation.\n\n")
	sb.WriteString(prompts.Format(prompts.MustGet(prompts.AnalysisFile, "skill-analysis-input"), map[string]string{
		"ResumeText":      resumeText,
		"JobDescriptions": strings.Join(jobDescriptions, JobDescriptionSeparator),
	}))
	sb.WriteByte('\n')
	return sb.String()
}
