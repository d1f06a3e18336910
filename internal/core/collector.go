package core

import (
	"regexp"
	"strings"

	"github.com/perinote/perinote/pkg/models"
)

var (
	quotedKeywordPattern = regexp.MustCompile(`"([^"]+)"`)
	wikilinkPattern      = regexp.MustCompile(`\[\[([^\]|#]+)(?:[|#][^\]]*)?\]\]`)
)

// ParseKeywords extracts every quoted substring from a settings string like
// `"Push", "Finish"`. Text outside quotes is ignored.
func ParseKeywords(raw string) []string {
	var keywords []string
	for _, m := range quotedKeywordPattern.FindAllStringSubmatch(raw, -1) {
		keywords = append(keywords, m[1])
	}
	return keywords
}

// FindCollectorTask returns the line of the first incomplete (Open or
// Started) task whose post-checkbox text starts with exactly
// "<keyword> [[<projectName>]]". The keyword prefix must match as a whole
// word followed by the link: "Pushing" does not match "Push". Returns -1
// when no collector task exists.
func FindCollectorTask(lines []string, projectName string, keywords []string) int {
	for i, line := range lines {
		task, ok := ParseTaskLine(line)
		if !ok || (task.State != models.StateOpen && task.State != models.StateStarted) {
			continue
		}
		for _, kw := range keywords {
			if strings.HasPrefix(task.Text, kw+" [["+projectName+"]]") {
				return i
			}
		}
	}
	return -1
}

// LinkResolver resolves a wikilink target, relative to the note the link
// appears in, to a vault path. It reports false when the link resolves to
// nothing.
type LinkResolver func(target, fromPath string) (string, bool)

// FindProjectLinkInAncestors searches the task's own line and then its
// ancestor chain for the first wikilink resolving to a project note: a
// markdown file directly inside the projects root. The walk stops at the
// first ancestor missing a parent and is depth-bounded like every other
// ancestor walk.
func FindProjectLinkInAncestors(
	taskLine int,
	lines []string,
	index map[int]models.ListItemRecord,
	fromPath string,
	settings models.Settings,
	resolve LinkResolver,
) (string, bool) {
	line := taskLine
	for steps := 0; steps <= len(index)+1; steps++ {
		if line < 0 || line >= len(lines) {
			return "", false
		}
		if name, ok := projectLinkOnLine(lines[line], fromPath, settings, resolve); ok {
			return name, true
		}
		item, ok := index[line]
		if !ok || item.Parent < 0 {
			return "", false
		}
		line = item.Parent
	}
	return "", false
}

// projectLinkOnLine returns the project name of the first wikilink on the
// line that resolves to a note directly inside the projects root.
func projectLinkOnLine(line, fromPath string, settings models.Settings, resolve LinkResolver) (string, bool) {
	for _, m := range wikilinkPattern.FindAllStringSubmatch(line, -1) {
		target := strings.TrimSpace(m[1])
		resolved, ok := resolve(target, fromPath)
		if !ok {
			continue
		}
		if name, ok := ProjectName(resolved, settings); ok {
			return name, true
		}
	}
	return "", false
}

// ProjectName reports whether a vault path denotes a project note (a
// markdown file directly, non-nested, inside the projects root) and returns
// its name without the extension.
func ProjectName(vaultPath string, settings models.Settings) (string, bool) {
	root := strings.TrimSuffix(settings.ProjectsRoot, "/")
	if root == "" || !strings.HasPrefix(vaultPath, root+"/") {
		return "", false
	}
	rest := strings.TrimPrefix(vaultPath, root+"/")
	if strings.Contains(rest, "/") || !strings.HasSuffix(rest, ".md") {
		return "", false
	}
	return strings.TrimSuffix(rest, ".md"), true
}
