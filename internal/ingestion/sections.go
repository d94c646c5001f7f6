package ingestion

import "strings"

// SectionKeywords open a section whose lines are kept.
var SectionKeywords = []string{
	"experience", "projects", "work history", "professional experience", "work experience", "project",
}

// StopKeywords close the current section.
var StopKeywords = []string{
	"education", "certifications", "skills", "summary", "achievements", "languages",
}

// maxHeadingWords bounds how long a line may be and still count as a
// section heading.
const maxHeadingWords = 6

// ExtractRelevantSections keeps the experience and project sections of a
// resume and drops everything else. Sections are joined by a blank line.
func ExtractRelevantSections(text string) string {
	var (
		sections []string
		current  []string
		open     bool
	)
	closeSection := func() {
		if open && len(current) > 0 {
			sections = append(sections, strings.Join(current, "\n"))
		}
		current = nil
		open = false
	}

	for _, line := range strings.Split(text, "\n") {
		switch {
		case isHeading(line, SectionKeywords):
			closeSection()
			open = true
		case isHeading(line, StopKeywords):
			closeSection()
		case open:
			if strings.TrimSpace(line) != "" {
				current = append(current, line)
			}
		}
	}
	closeSection()

	return strings.TrimSpace(strings.Join(sections, "\n\n"))
}

func isHeading(line string, keywords []string) bool {
	if isBulletLine(line) {
		return false
	}
	lower := strings.ToLower(strings.TrimSpace(line))
	if lower == "" || len(strings.Fields(lower)) > maxHeadingWords {
		return false
	}
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
