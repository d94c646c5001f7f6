// Package gap computes the skill gap between a resume and a target role.
//
// Skill names are compared with exact string equality. "Go" and "golang" are
// different skills here; any normalization is the extraction collaborator's job.
package gap

import "math"

// Result holds the three skill sets of an analysis. MissingSkills is always
// JobSkills minus ResumeSkills.
type Result struct {
	ResumeSkills  []string `json:"resume_skills"`
	JobSkills     []string `json:"job_skills"`
	MissingSkills []string `json:"missing_skills"`
}

// Compute returns the gap between resumeSkills and jobSkills. Duplicates and
// empty names are dropped; first-seen order is kept so output is stable.
func Compute(resumeSkills, jobSkills []string) Result {
	resume := dedupe(resumeSkills)
	job := dedupe(jobSkills)

	have := make(map[string]struct{}, len(resume))
	for _, s := range resume {
		have[s] = struct{}{}
	}

	missing := make([]string, 0, len(job))
	for _, s := range job {
		if _, ok := have[s]; !ok {
			missing = append(missing, s)
		}
	}

	return Result{
		ResumeSkills:  resume,
		JobSkills:     job,
		MissingSkills: missing,
	}
}

// MatchPercentage returns the share of job skills covered by the resume,
// rounded to the nearest integer and clamped to [0, 100].
func (r Result) MatchPercentage() int {
	return MatchPercentage(len(r.JobSkills), len(r.MissingSkills))
}

// MatchPercentage computes round(100 * (jobCount - missingCount) / max(jobCount, 1)).
func MatchPercentage(jobCount, missingCount int) int {
	denom := max(jobCount, 1)
	pct := int(math.Round(100 * float64(jobCount-missingCount) / float64(denom)))
	return min(max(pct, 0), 100)
}

// IsMissing reports whether skill is in MissingSkills.
func (r Result) IsMissing(skill string) bool {
	for _, s := range r.MissingSkills {
		if s == skill {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (r Result) Clone() Result {
	return Result{
		ResumeSkills:  append([]string(nil), r.ResumeSkills...),
		JobSkills:     append([]string(nil), r.JobSkills...),
		MissingSkills: append([]string(nil), r.MissingSkills...),
	}
}

func dedupe(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
