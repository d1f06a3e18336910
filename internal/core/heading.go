package core

import (
	"strings"

	"github.com/perinote/perinote/pkg/models"
)

// DefaultHeading is the fallback used when a configured heading string does
// not parse as "#+<space><text>".
var DefaultHeading = models.TargetHeading{Level: 2, Text: "Log"}

// ParseHeading parses a configured heading string like "## Log".
func ParseHeading(s string) (models.TargetHeading, bool) {
	level := 0
	for level < len(s) && s[level] == '#' {
		level++
	}
	if level == 0 || level >= len(s) || s[level] != ' ' {
		return models.TargetHeading{}, false
	}
	text := strings.TrimSpace(s[level+1:])
	if text == "" {
		return models.TargetHeading{}, false
	}
	return models.TargetHeading{Level: level, Text: text}, true
}

// HeadingOrDefault parses s, falling back to DefaultHeading.
func HeadingOrDefault(s string) models.TargetHeading {
	if h, ok := ParseHeading(s); ok {
		return h
	}
	return DefaultHeading
}

// findHeadingLine returns the line number of the first line matching the
// heading exactly, or -1.
func findHeadingLine(lines []string, h models.TargetHeading) int {
	want := h.String()
	for i, line := range lines {
		if strings.TrimRight(line, " \t") == want {
			return i
		}
	}
	return -1
}

// frontmatterEnd returns the first line after a leading YAML frontmatter
// block, or 0 when the document has none. The closing fence may be "---"
// or "...".
func frontmatterEnd(lines []string) int {
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t") != "---" {
		return 0
	}
	for i := 1; i < len(lines); i++ {
		fence := strings.TrimRight(lines[i], " \t")
		if fence == "---" || fence == "..." {
			return i + 1
		}
	}
	return 0
}
