package core

import (
	"strings"

	"github.com/perinote/perinote/pkg/models"
)

// glyphs maps each task state to the character inside its checkbox. All
// transitions between states go through the functions below rather than
// ad hoc string rewrites scattered across commands.
var glyphs = map[models.TaskState]byte{
	models.StateOpen:      ' ',
	models.StateStarted:   '/',
	models.StateCompleted: 'x',
	models.StateMigrated:  '>',
	models.StateScheduled: '<',
}

// TaskLine is one parsed markdown task line.
type TaskLine struct {
	Indent int
	State  models.TaskState
	// Text is everything after the closing "] ".
	Text string
}

// ParseTaskLine recognizes lines of the form
//
//	<whitespace>- [<glyph>] <text>
//
// where glyph is one of ' ', '/', 'x', 'X', '>', '<'. Any other bracket
// content makes the line invisible to the engine: custom markers used by
// other tooling are not transfer-eligible.
func ParseTaskLine(line string) (TaskLine, bool) {
	indent := CountIndent(line)
	rest := line[indent:]
	if len(rest) < len("- [?] ") || !strings.HasPrefix(rest, "- [") {
		return TaskLine{}, false
	}
	glyph := rest[3]
	if rest[4] != ']' || rest[5] != ' ' {
		return TaskLine{}, false
	}
	var state models.TaskState
	switch glyph {
	case ' ':
		state = models.StateOpen
	case '/':
		state = models.StateStarted
	case 'x', 'X':
		state = models.StateCompleted
	case '>':
		state = models.StateMigrated
	case '<':
		state = models.StateScheduled
	default:
		return TaskLine{}, false
	}
	return TaskLine{Indent: indent, State: state, Text: rest[6:]}, true
}

// Render reassembles the task line with its current state glyph.
func (t TaskLine) Render() string {
	return strings.Repeat(" ", t.Indent) + "- [" + string(glyphs[t.State]) + "] " + t.Text
}

// WithState returns a copy of the line carrying the given state.
func (t TaskLine) WithState(s models.TaskState) TaskLine {
	t.State = s
	return t
}

// SourceMigrated is the source-side transition for a migrate command:
// the original line is left behind marked Migrated.
func (t TaskLine) SourceMigrated() TaskLine {
	return t.WithState(models.StateMigrated)
}

// SourceScheduled is the source-side transition for push and pull:
// the original line is left behind marked Scheduled.
func (t TaskLine) SourceScheduled() TaskLine {
	return t.WithState(models.StateScheduled)
}

// DestinationCopy is the destination-side transition common to every
// transfer: Started is normalized to Open because progress does not carry
// across a period boundary.
func (t TaskLine) DestinationCopy() TaskLine {
	if t.State == models.StateStarted {
		return t.WithState(models.StateOpen)
	}
	return t
}

// Reopened fulfils a Scheduled commitment on merge: the matched destination
// task returns to Open. Other states are unchanged.
func (t TaskLine) Reopened() TaskLine {
	if t.State == models.StateScheduled {
		return t.WithState(models.StateOpen)
	}
	return t
}
