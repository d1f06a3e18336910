package models

// TaskState represents the checkbox glyph of a markdown task line.
type TaskState string

const (
	StateOpen      TaskState = "open"      // "- [ ]"
	StateStarted   TaskState = "started"   // "- [/]"
	StateCompleted TaskState = "completed" // "- [x]" (or "- [X]", normalized)
	StateMigrated  TaskState = "migrated"  // "- [>]"
	StateScheduled TaskState = "scheduled" // "- [<]"
)

// Transferable reports whether a task in this state may be moved to another
// note. Completed and Migrated are terminal; Scheduled is already in flight.
func (s TaskState) Transferable() bool {
	return s == StateOpen || s == StateStarted
}

// ListItemRecord describes one markdown list item in a flat, host-maintained
// index. Parent is the start line of the enclosing list item, or -1 for a
// top-level item. Records are rebuilt after every edit and must never be
// cached across mutations: line numbers shift.
type ListItemRecord struct {
	StartLine int
	EndLine   int
	Parent    int
}

// TaskBlock is a task line plus its verbatim nested content, captured from a
// source note for one transfer and discarded afterwards.
type TaskBlock struct {
	MarkerLine   int
	Children     []string
	SourceIndent int
}

// TargetHeading is a parsed markdown heading under which transferred tasks
// are inserted, e.g. "## Log" parses to {Level: 2, Text: "Log"}.
type TargetHeading struct {
	Level int
	Text  string
}

func (h TargetHeading) String() string {
	s := ""
	for i := 0; i < h.Level; i++ {
		s += "#"
	}
	return s + " " + h.Text
}
