package vault

import (
	"regexp"
	"strings"

	"github.com/perinote/perinote/pkg/models"
)

// listMarkerPattern matches the start of a markdown list item after its
// indentation: "- ", "* ", "+ " or an ordered marker like "3. ".
var listMarkerPattern = regexp.MustCompile(`^([-*+]|\d+[.)])\s`)

// ListItems builds the flat list-item index for a document: one record per
// list item with its line span and the start line of its parent item, or -1
// at top level. Parents are inferred from indentation. The index describes
// the text it was built from and must be rebuilt after any edit.
func ListItems(lines []string) []models.ListItemRecord {
	type frame struct {
		indent int
		item   int // index into items
	}
	var stack []frame
	var items []models.ListItemRecord

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := indentWidth(line)

		if listMarkerPattern.MatchString(line[indent:]) {
			for len(stack) > 0 && stack[len(stack)-1].indent >= indent {
				stack = stack[:len(stack)-1]
			}
			parent := -1
			if len(stack) > 0 {
				parent = items[stack[len(stack)-1].item].StartLine
			}
			items = append(items, models.ListItemRecord{StartLine: i, EndLine: i, Parent: parent})
			stack = append(stack, frame{indent: indent, item: len(items) - 1})
			continue
		}

		// Non-list line: a continuation of the innermost item it is
		// indented past, otherwise a paragraph that closes the list.
		for len(stack) > 0 && stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			continue
		}
		items[stack[len(stack)-1].item].EndLine = i
	}
	return items
}

func indentWidth(line string) int {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return i
		}
	}
	return len(line)
}
