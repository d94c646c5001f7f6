//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

const (
	whatToBuildPrefix = "What to build:"
	outcomesPrefix    = "Key Learning Outcomes:"
)

// ProjectIdea is one paragraph of a project-ideas narrative.
type ProjectIdea struct {
	Title       string   `json:"title"`
	WhatToBuild string   `json:"what_to_build"`
	Outcomes    []string `json:"outcomes"`
}

// ParseProjectIdeas splits narrative text into paragraphs of exactly three
// lines: title, what to build, and semicolon-separated outcomes. Paragraphs
// that do not follow that shape are skipped.
func ParseProjectIdeas(text string) []ProjectIdea {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var ideas []ProjectIdea
	for _, paragraph := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(paragraph) == "" {
			continue
		}

		var lines []string
		for _, line := range strings.Split(paragraph, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) != 3 {
			continue
		}

		idea := ProjectIdea{
			Title:       lines[0],
			WhatToBuild: strings.TrimSpace(strings.TrimPrefix(lines[1], whatToBuildPrefix)),
		}
		for _, outcome := range strings.Split(strings.TrimPrefix(lines[2], outcomesPrefix), ";") {
			if outcome = strings.TrimSpace(outcome); outcome != "" {
				idea.Outcomes = append(idea.Outcomes, outcome)
			}
		}
		ideas = append(ideas, idea)
	}
	return ideas
}
