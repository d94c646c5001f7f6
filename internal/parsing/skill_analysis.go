package parsing

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/gapmap/internal/gap"
	"github.com/jonathan/gapmap/internal/llm"
	"github.com/jonathan/gapmap/internal/types"
)

// SkillAnalyzer extracts resume and job skills with an LLM.
type SkillAnalyzer struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewSkillAnalyzer creates an analyzer that uses client at TierStandard.
func NewSkillAnalyzer(client llm.Client) *SkillAnalyzer {
	return &SkillAnalyzer{client: client, tier: llm.TierStandard}
}

// Analyze compares resumeText with jobDescriptions. Skill names are
// normalized and the missing list is recomputed from the two skill lists.
func (a *SkillAnalyzer) Analyze(ctx context.Context, resumeText string, jobDescriptions []string) (*types.SkillAnalysis, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, ErrEmptyResume
	}
	if len(jobDescriptions) == 0 {
		return nil, ErrNoJobDescriptions
	}

	responseText, err := a.client.GenerateJSON(ctx, BuildSkillAnalysisPrompt(resumeText, jobDescriptions), a.tier)
	if err != nil {
		return nil, &GenerationError{Cause: err}
	}
	return ParseSkillAnalysis(responseText)
}

type skillAnalysisJSON struct {
	ResumeSkills []string `json:"resume_skills"`
	JobSkills    []string `json:"job_skills"`
}

// ParseSkillAnalysis reads an LLM response. JSON output is preferred; a
// response written as bracketed sections ("[Resume Skills]", "[JD Skills]")
// with bullet lists is accepted as well.
func ParseSkillAnalysis(responseText string) (*types.SkillAnalysis, error) {
	var resume, job []string

	var parsed skillAnalysisJSON
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(responseText)), &parsed); err == nil {
		resume, job = parsed.ResumeSkills, parsed.JobSkills
	} else {
		sections := ParseSkillSections(responseText)
		if len(sections[SectionResume]) == 0 && len(sections[SectionJob]) == 0 {
			return nil, &ResponseError{Excerpt: excerpt(strings.TrimSpace(responseText)), Cause: err}
		}
		resume, job = sections[SectionResume], sections[SectionJob]
	}

	resume = NormalizeSkills(resume)
	job = NormalizeSkills(job)

	result := gap.Compute(resume, job)
	analysis := &types.SkillAnalysis{
		ResumeSkills:  result.ResumeSkills,
		JobSkills:     result.JobSkills,
		MissingSkills: result.MissingSkills,
	}
	analysis.AnalysisText = FormatAnalysisText(result)
	return analysis, nil
}

// Section names recognized by ParseSkillSections.
const (
	SectionResume  = "Resume Skills"
	SectionJob     = "JD Skills"
	SectionMissing = "Missing Skills"
)

var (
	sectionHeader = regexp.MustCompile(`^\[([^\]]+)\]`)
	bulletItem    = regexp.MustCompile(`^(?:[-*•]|\d+[.)])\s+(.+)$`)
)

// ParseSkillSections collects bullet items under each bracketed heading.
// Lines outside a known section are ignored.
func ParseSkillSections(text string) map[string][]string {
	out := make(map[string][]string)
	current := ""
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := sectionHeader.FindStringSubmatch(strings.TrimLeft(line, "#* ")); m != nil {
			switch name := strings.TrimSpace(m[1]); name {
			case SectionResume, SectionJob, SectionMissing:
				current = name
			default:
				current = ""
			}
			continue
		}
		if current == "" {
			continue
		}
		if m := bulletItem.FindStringSubmatch(line); m != nil {
			skill := strings.Trim(strings.TrimSpace(m[1]), "*")
			if skill != "" {
				out[current] = append(out[current], skill)
			}
		}
	}
	return out
}

// FormatAnalysisText renders a gap result in the bracketed section format.
func FormatAnalysisText(r gap.Result) string {
	var sb strings.Builder
	writeSection := func(name string, skills []string) {
		sb.WriteString("[" + name + "]\n")
		for _, s := range skills {
			sb.WriteString("- " + s + "\n")
		}
		sb.WriteString("\n")
	}
	writeSection(SectionResume, r.ResumeSkills)
	writeSection(SectionJob, r.JobSkills)
	writeSection(SectionMissing, r.MissingSkills)

	missingPct := 0
	if len(r.JobSkills) > 0 {
		missingPct = 100 - r.MatchPercentage()
	}
	sb.WriteString(fmt.Sprintf("[Missing Percentage]\n%d", missingPct))
	return sb.String()
}
