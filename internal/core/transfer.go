package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/perinote/perinote/pkg/models"
)

// childIndent is the indentation added when a transferred task becomes the
// child of a collector task in the destination.
const childIndent = 4

// TransferMode selects the source-side marker transition.
type TransferMode int

const (
	// ModeMigrate leaves the source task marked Migrated ([>]).
	ModeMigrate TransferMode = iota
	// ModeSchedule leaves the source task marked Scheduled ([<]),
	// used by both downward pushes and upward pulls.
	ModeSchedule
)

// Destination describes where one task lands.
type Destination struct {
	// Path is the vault path of the destination note.
	Path string
	// Project, when non-empty, enables collector matching: the incoming
	// task may be adopted as a child of a task pre-declaring intent to
	// collect work for that project.
	Project string
	// Heading receives tasks that match nothing in the destination.
	Heading models.TargetHeading
}

// DestinationResolver maps a source task line to its destination. Returning
// an error skips that task only; the rest of the batch proceeds.
type DestinationResolver func(taskLine int) (Destination, error)

// TransferRequest is one batch of task transfers out of a single source
// document. Lines and Items describe the current source text; the items are
// host-maintained and consumed read-only.
type TransferRequest struct {
	SourcePath string
	Lines      []string
	Items      []models.ListItemRecord
	// From and To bound the selection, inclusive. A single cursor is the
	// degenerate range From == To.
	From, To int
	Mode     TransferMode
	Resolve  DestinationResolver
	Settings models.Settings
}

// Skip records one task left untouched in the source and why.
type Skip struct {
	Line int
	Err  error
}

// Report aggregates the outcome of one transfer command. Commands surface a
// single summary, not per-task notifications.
type Report struct {
	Succeeded int
	New       int
	Merged    int
	Skips     []Skip
}

func (r Report) Summary() string {
	s := fmt.Sprintf("%d transferred (%d new, %d merged)", r.Succeeded, r.New, r.Merged)
	if len(r.Skips) > 0 {
		s += fmt.Sprintf(", %d skipped", len(r.Skips))
	}
	return s
}

// Vault is the whole-file transaction surface the engine writes destinations
// through. The engine never issues partial writes: it hands the vault a
// function from full old text to full new text.
type Vault interface {
	Exists(path string) bool
	ReadModifyWrite(path string, fn func(old string) (string, error)) error
	ResolveLink(target, fromPath string) (string, bool)
}

// TransferEngine moves task blocks between notes.
type TransferEngine struct {
	vault Vault
}

// NewTransferEngine creates a TransferEngine writing through the given vault.
func NewTransferEngine(v Vault) *TransferEngine {
	return &TransferEngine{vault: v}
}

// pending is one captured task awaiting destination insertion.
type pending struct {
	order    int
	dest     Destination
	task     TaskLine
	children []string
}

// Transfer executes one batch: capture and remove each selected task from
// the source, then merge the captured blocks into their destinations. It
// returns the new source lines and an aggregate report. Source deletions run
// bottom-to-top so unprocessed ranges never shift; destination insertions
// are re-ordered back to the tasks' original top-to-bottom order, and all
// tasks bound for the same note share a single read-modify-write.
//
// A per-task failure (missing destination, unresolved link) skips only that
// task; edits already committed for earlier tasks are not rolled back.
func (e *TransferEngine) Transfer(req TransferRequest) ([]string, Report, error) {
	if req.Resolve == nil {
		return nil, Report{}, fmt.Errorf("transfer: no destination resolver")
	}

	index := BuildLineIndex(req.Items)
	isEligible := func(line int) bool {
		if line < 0 || line >= len(req.Lines) {
			return false
		}
		task, ok := ParseTaskLine(req.Lines[line])
		return ok && task.State.Transferable()
	}

	taskLines := FindTopLevelTasksInRange(req.From, req.To, req.Items, isEligible)
	if len(taskLines) == 0 {
		return nil, Report{}, errValidation("no transfer-eligible task in the selected lines")
	}

	// Process bottom-to-top for source safety.
	sort.Sort(sort.Reverse(sort.IntSlice(taskLines)))

	lines := append([]string(nil), req.Lines...)
	var report Report
	var queue []pending

	for i, markerLine := range taskLines {
		task, _ := ParseTaskLine(lines[markerLine])

		dest, err := req.Resolve(markerLine)
		if err != nil {
			report.Skips = append(report.Skips, Skip{Line: markerLine, Err: err})
			continue
		}
		if !e.vault.Exists(dest.Path) {
			report.Skips = append(report.Skips, Skip{
				Line: markerLine,
				Err:  NotFoundError{Kind: "destination note", Name: dest.Path},
			})
			continue
		}

		var children []string
		if block, ok := FindChildrenBlock(index[markerLine], req.Items, req.Lines); ok {
			children = DedentBy(block.Lines, task.Indent)
			lines = append(lines[:block.Start], lines[block.End:]...)
		}

		var src TaskLine
		switch req.Mode {
		case ModeMigrate:
			src = task.SourceMigrated()
		default:
			src = task.SourceScheduled()
		}
		lines[markerLine] = src.Render()

		copyLine := task.DestinationCopy()
		copyLine.Indent = 0
		queue = append(queue, pending{
			// taskLines is descending, so invert i to recover the
			// original top-to-bottom order.
			order:    len(taskLines) - 1 - i,
			dest:     dest,
			task:     copyLine,
			children: children,
		})
	}

	if err := e.flush(queue, req.Settings, &report); err != nil {
		return lines, report, err
	}
	return lines, report, nil
}

// flush groups queued tasks by destination note and performs one whole-file
// read-modify-write per note, inserting in original order.
func (e *TransferEngine) flush(queue []pending, settings models.Settings, report *Report) error {
	sort.Slice(queue, func(i, j int) bool { return queue[i].order < queue[j].order })

	byPath := make(map[string][]pending)
	var paths []string
	for _, p := range queue {
		if _, seen := byPath[p.dest.Path]; !seen {
			paths = append(paths, p.dest.Path)
		}
		byPath[p.dest.Path] = append(byPath[p.dest.Path], p)
	}

	keywords := ParseKeywords(settings.CollectorKeywords)
	for _, path := range paths {
		batch := byPath[path]
		err := e.vault.ReadModifyWrite(path, func(old string) (string, error) {
			lines := splitLines(old)
			cursor := -1
			for _, p := range batch {
				var merged bool
				lines, merged, cursor = mergeTask(lines, p, keywords, cursor)
				if merged {
					report.Merged++
				} else {
					report.New++
				}
				report.Succeeded++
			}
			return strings.Join(lines, "\n"), nil
		})
		if err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}

// mergeTask inserts one captured task into the destination lines, choosing
// the insertion point in precedence order: collector match, text match,
// configured heading. The cursor tracks the end of blocks already inserted
// under the heading during this write, so a batch lands in its original
// top-to-bottom order.
func mergeTask(lines []string, p pending, keywords []string, cursor int) (out []string, merged bool, newCursor int) {
	// Collector match applies only in project-task mode and never
	// deduplicates: the incoming task becomes an indented child placed
	// after the collector's existing children.
	if p.dest.Project != "" {
		if cl := FindCollectorTask(lines, p.dest.Project, keywords); cl >= 0 {
			collector, _ := ParseTaskLine(lines[cl])
			at := childrenSpanEnd(lines, cl, collector.Indent)
			child := p.task
			child.Indent = collector.Indent + childIndent
			block := append([]string{child.Render()}, IndentLines(p.children, child.Indent)...)
			if at <= cursor {
				cursor += len(block)
			}
			return insertLines(lines, at, block), false, cursor
		}
	}

	// Text match against Open, Started, and Scheduled tasks. Completed and
	// Migrated tasks are invisible: a new line is added alongside them.
	if ml := findMatchingTask(lines, p.task.Text); ml >= 0 {
		match, _ := ParseTaskLine(lines[ml])
		lines[ml] = match.Reopened().Render()
		at := childrenSpanEnd(lines, ml, match.Indent)
		insert := IndentLines(p.children, match.Indent)
		if at <= cursor {
			cursor += len(insert)
		}
		return insertLines(lines, at, insert), true, cursor
	}

	// No match: insert under the configured heading, creating it after any
	// leading frontmatter when absent.
	lines, at := ensureHeading(lines, p.dest.Heading)
	if cursor > at {
		at = cursor
	}
	block := append([]string{p.task.Render()}, p.children...)
	return insertLines(lines, at, block), false, at + len(block)
}

// findMatchingTask returns the line of the first Open, Started, or Scheduled
// task whose marker-stripped text equals text, or -1.
func findMatchingTask(lines []string, text string) int {
	for i, line := range lines {
		task, ok := ParseTaskLine(line)
		if !ok {
			continue
		}
		switch task.State {
		case models.StateOpen, models.StateStarted, models.StateScheduled:
			if task.Text == text {
				return i
			}
		}
	}
	return -1
}

// childrenSpanEnd returns the exclusive end of the child block under the
// task at taskLine: lines indented deeper than taskIndent. An embedded blank
// line stays inside the block only when deeper-indented content follows it.
func childrenSpanEnd(lines []string, taskLine, taskIndent int) int {
	end := taskLine + 1
	i := taskLine + 1
	for i < len(lines) {
		if isBlank(lines[i]) {
			j := i
			for j < len(lines) && isBlank(lines[j]) {
				j++
			}
			if j < len(lines) && CountIndent(lines[j]) > taskIndent {
				i = j
				continue
			}
			break
		}
		if CountIndent(lines[i]) <= taskIndent {
			break
		}
		i++
		end = i
	}
	return end
}

// ensureHeading returns lines guaranteed to contain the heading and the line
// number directly after it, where new blocks are inserted. A created heading
// goes after a leading frontmatter block, else at line 0.
func ensureHeading(lines []string, h models.TargetHeading) ([]string, int) {
	if at := findHeadingLine(lines, h); at >= 0 {
		return lines, at + 1
	}
	at := frontmatterEnd(lines)
	return insertLines(lines, at, []string{h.String()}), at + 1
}

func insertLines(lines []string, at int, insert []string) []string {
	if at > len(lines) {
		at = len(lines)
	}
	out := make([]string, 0, len(lines)+len(insert))
	out = append(out, lines[:at]...)
	out = append(out, insert...)
	out = append(out, lines[at:]...)
	return out
}

// splitLines splits text into lines without treating a trailing newline as
// an extra empty line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
