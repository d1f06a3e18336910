package core

import (
	"github.com/perinote/perinote/pkg/models"
)

// SweepCompleted relocates Completed task blocks from the section under
// fromHeading to the end of the section under toHeading within one document.
// Blocks move verbatim: no marker transitions, no deduplication, children
// spans computed by indentation with the embedded-blank-line rule. It
// returns the new lines and how many blocks moved.
func SweepCompleted(lines []string, fromHeading, toHeading models.TargetHeading) ([]string, int) {
	from := findHeadingLine(lines, fromHeading)
	if from < 0 {
		return lines, 0
	}
	sectionEnd := sectionEndLine(lines, from, fromHeading.Level)

	// Collect completed top-level task blocks inside the section.
	type span struct{ start, end int }
	var spans []span
	i := from + 1
	for i < sectionEnd {
		task, ok := ParseTaskLine(lines[i])
		if !ok || task.State != models.StateCompleted {
			i++
			continue
		}
		end := childrenSpanEnd(lines, i, task.Indent)
		if end > sectionEnd {
			end = sectionEnd
		}
		spans = append(spans, span{start: i, end: end})
		i = end
	}
	if len(spans) == 0 {
		return lines, 0
	}

	var moved []string
	for _, s := range spans {
		moved = append(moved, lines[s.start:s.end]...)
	}

	// Delete bottom-to-top so earlier spans keep their positions.
	out := append([]string(nil), lines...)
	for i := len(spans) - 1; i >= 0; i-- {
		out = append(out[:spans[i].start], out[spans[i].end:]...)
	}

	out, after := ensureHeading(out, toHeading)
	at := sectionEndLine(out, after-1, toHeading.Level)
	return insertLines(out, at, moved), len(spans)
}

// sectionEndLine returns the exclusive end of the section opened by the
// heading at headingLine: the next heading of the same or shallower level,
// or the end of the document.
func sectionEndLine(lines []string, headingLine, level int) int {
	for i := headingLine + 1; i < len(lines); i++ {
		if h, ok := ParseHeading(lines[i]); ok && h.Level <= level {
			return i
		}
	}
	return len(lines)
}
