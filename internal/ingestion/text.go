package ingestion

import (
	"regexp"
	"strings"
)

var (
	horizontalSpace = regexp.MustCompile(`[ \t\x{00A0}\x{2007}\x{202F}]+`)
	blankRuns       = regexp.MustCompile(`\n{3,}`)
	// Glyphs that PDF and Word exports use for list items.
	bulletGlyph = regexp.MustCompile(`^[•●▪■◦·‣∙\x{F0B7}\x{F0A7}]\s*`)
	numbered    = regexp.MustCompile(`^\d{1,2}[.)]\s`)
)

// invisible drops zero-width and control characters left by extractors.
var invisible = strings.NewReplacer(
	"\u200b", "", "\u200c", "", "\u200d", "", "\ufeff", "", "\u00ad", "",
	"\f", "\n", "\v", "\n",
)

// CleanText normalizes extracted resume text. Line endings become LF,
// horizontal whitespace inside a line collapses to one space, list glyphs
// become "- " and at most one blank line separates blocks.
func CleanText(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = invisible.Replace(content)

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}
	content = blankRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(content)
}

func cleanLine(line string) string {
	line = strings.TrimSpace(horizontalSpace.ReplaceAllString(line, " "))
	if loc := bulletGlyph.FindStringIndex(line); loc != nil {
		line = "- " + line[loc[1]:]
	}
	return line
}

// isBulletLine reports whether line is a list item rather than prose or a
// heading.
func isBulletLine(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "- ") || strings.HasPrefix(t, "* ") ||
		bulletGlyph.MatchString(t) || numbered.MatchString(t)
}
