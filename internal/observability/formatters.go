// Package observability provides formatted terminal output for workflow
// sessions: analysis summaries, learning resources, profiles and events.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/jonathan/gapmap/internal/gap"
	"github.com/jonathan/gapmap/internal/types"
	"github.com/jonathan/gapmap/internal/workflow"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
)

// Printer handles formatted output. It is safe for concurrent use, since
// workflow events may arrive from several goroutines.
type Printer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to a terminal; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range wrap(strings.TrimRight(content, "\n"), boxWidth-4) {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// wrap splits content into lines of at most width runes, breaking on spaces
// and keeping indentation of the original line on continuation lines.
// Lines that already fit are returned untouched.
func wrap(content string, width int) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		if len([]rune(line)) <= width {
			out = append(out, line)
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " "))]
		words := strings.Fields(line)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		current := indent + words[0]
		for _, w := range words[1:] {
			if len([]rune(current))+1+len([]rune(w)) > width {
				out = append(out, current)
				current = indent + "  " + w
				continue
			}
			current += " " + w
		}
		out = append(out, current)
	}
	return out
}

func writeList(sb *strings.Builder, label string, items []string) {
	fmt.Fprintf(sb, "%s (%d):\n", label, len(items))
	if len(items) == 0 {
		sb.WriteString("  (none)\n")
		return
	}
	count := min(len(items), maxItemsToShow)
	for _, item := range items[:count] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > maxItemsToShow {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-maxItemsToShow)
	}
}

// PrintAnalysis outputs the skill gap and match percentage.
func (p *Printer) PrintAnalysis(result *gap.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Match: %d%%\n\n", result.MatchPercentage())
	writeList(&sb, "Resume skills", result.ResumeSkills)
	sb.WriteString("\n")
	writeList(&sb, "Job skills", result.JobSkills)
	sb.WriteString("\n")
	writeList(&sb, "Missing skills", result.MissingSkills)

	p.printBox("SKILL GAP", sb.String())
}

// PrintResources outputs learning resources in the order of skills. Project
// idea narratives are split into structured ideas; a narrative that does not
// follow the three-line shape is printed verbatim.
func (p *Printer) PrintResources(resources types.ResourceMap, skills []string) {
	if len(resources) == 0 {
		return
	}
	if len(skills) == 0 {
		for skill := range resources {
			skills = append(skills, skill)
		}
		sort.Strings(skills)
	}

	for _, skill := range skills {
		res, ok := resources[skill]
		if !ok {
			continue
		}

		var sb strings.Builder
		ideas := types.ParseProjectIdeas(res.ProjectIdeas)
		if len(ideas) == 0 {
			sb.WriteString(strings.TrimSpace(res.ProjectIdeas))
			sb.WriteString("\n")
		}
		for i, idea := range ideas {
			if i > 0 {
				sb.WriteString("\n")
			}
			fmt.Fprintf(&sb, "%s\n", idea.Title)
			if idea.WhatToBuild != "" {
				fmt.Fprintf(&sb, "  Build: %s\n", idea.WhatToBuild)
			}
			if len(idea.Outcomes) > 0 {
				fmt.Fprintf(&sb, "  Learn: %s\n", strings.Join(idea.Outcomes, ", "))
			}
		}

		if len(res.Repositories) > 0 {
			sb.WriteString("\nRepositories:\n")
			for _, repo := range res.Repositories {
				fmt.Fprintf(&sb, "  • %s  %s\n", repo.Name, repo.URL)
				if repo.Description != "" {
					fmt.Fprintf(&sb, "    %s\n", repo.Description)
				}
			}
		}

		p.printBox("LEARN: "+strings.ToUpper(skill), sb.String())
	}
}

// PrintProfiles outputs professional profiles.
func (p *Printer) PrintProfiles(profiles []types.Profile) {
	var sb strings.Builder
	if len(profiles) == 0 {
		sb.WriteString("No profiles found\n")
	}
	for i, profile := range profiles {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%d. %s\n", i+1, profile.Title)
		fmt.Fprintf(&sb, "   %s\n", profile.Link)
		if profile.Snippet != "" {
			fmt.Fprintf(&sb, "   %s\n", profile.Snippet)
		}
	}
	p.printBox("PROFILES", sb.String())
}

// PrintSnapshot outputs a session summary followed by every available result.
func (p *Printer) PrintSnapshot(s workflow.Snapshot) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Session:  %s\n", s.SessionID)
	fmt.Fprintf(&sb, "State:    %s / %s\n", s.State, s.ProfileState)
	if s.Document != nil {
		fmt.Fprintf(&sb, "Document: %s (%d bytes)\n", s.Document.Name, s.Document.Size)
	}
	if s.Domain != "" {
		fmt.Fprintf(&sb, "Domain:   %s\n", s.Domain)
	}
	if s.Location != "" {
		fmt.Fprintf(&sb, "Location: %s\n", s.Location)
	}
	if len(s.Selection) > 0 {
		fmt.Fprintf(&sb, "Selected: %s\n", strings.Join(s.Selection, ", "))
	}
	p.printBox("SESSION", sb.String())

	p.PrintAnalysis(s.Analysis)
	p.PrintResources(s.Resources, s.ResourceSkills)
	if s.ProfileState == workflow.ProfilesReady {
		p.PrintProfiles(s.Profiles)
	}
}

// PrintEvent outputs a single workflow notification on one line.
//
//nolint:errcheck // writing to a terminal; errors are not recoverable
func (p *Printer) PrintEvent(e workflow.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch e.Kind {
	case workflow.EventFailure:
		fmt.Fprintf(p.out, "✗ [%s] %s\n", e.Stage, e.Message)
	case workflow.EventSuccess:
		fmt.Fprintf(p.out, "✓ [%s] %s\n", e.Stage, e.Message)
	default:
		fmt.Fprintf(p.out, "→ [%s] %s / %s\n", e.Stage, e.State, e.ProfileState)
	}
}

// Notify implements workflow.Sink.
func (p *Printer) Notify(e workflow.Event) {
	p.PrintEvent(e)
}
