package core

import "github.com/perinote/perinote/pkg/models"

// The host metadata stores each list item's parent as a line number, not an
// object reference. The index below is rebuilt once per operation and never
// persisted across edits: every mutation shifts line numbers.

// BuildLineIndex maps each item's start line to the item itself.
func BuildLineIndex(items []models.ListItemRecord) map[int]models.ListItemRecord {
	index := make(map[int]models.ListItemRecord, len(items))
	for _, item := range items {
		index[item.StartLine] = item
	}
	return index
}

// IsDescendantOf walks the parent chain of item until it reaches
// ancestorLine. A parent missing from the index or an exhausted chain means
// false. The walk is bounded by the index size: a malformed chain that loops
// is treated as "not a descendant" rather than traversed forever.
func IsDescendantOf(item models.ListItemRecord, ancestorLine int, index map[int]models.ListItemRecord) bool {
	current := item
	for steps := 0; steps <= len(index); steps++ {
		if current.Parent < 0 {
			return false
		}
		if current.Parent == ancestorLine {
			return true
		}
		parent, ok := index[current.Parent]
		if !ok {
			return false
		}
		current = parent
	}
	return false
}

// ChildrenBlock is the contiguous text range holding every descendant of a
// list item. End is exclusive.
type ChildrenBlock struct {
	Start int
	End   int
	Lines []string
}

// FindChildrenBlock collects every item starting after root that descends
// from it and returns the raw text spanning min start to max end, including
// any blank or non-list lines inside that range. It returns false when root
// has no descendants.
func FindChildrenBlock(root models.ListItemRecord, items []models.ListItemRecord, lines []string) (ChildrenBlock, bool) {
	index := BuildLineIndex(items)

	start, end := -1, -1
	for _, item := range items {
		if item.StartLine <= root.StartLine {
			continue
		}
		if !IsDescendantOf(item, root.StartLine, index) {
			continue
		}
		if start < 0 || item.StartLine < start {
			start = item.StartLine
		}
		if item.EndLine+1 > end {
			end = item.EndLine + 1
		}
	}
	if start < 0 {
		return ChildrenBlock{}, false
	}
	if end > len(lines) {
		end = len(lines)
	}
	block := ChildrenBlock{Start: start, End: end}
	block.Lines = append(block.Lines, lines[start:end]...)
	return block, true
}

// FindTopLevelTasksInRange returns, in order, the start lines of items within
// [from, to] that satisfy isTask and whose ancestor chain contains no other
// task-satisfying item. A multi-select transfer must not process both a
// parent task and a nested task child: the child moves with its parent.
func FindTopLevelTasksInRange(from, to int, items []models.ListItemRecord, isTask func(line int) bool) []int {
	index := BuildLineIndex(items)

	var result []int
	for _, item := range items {
		if item.StartLine < from || item.StartLine > to {
			continue
		}
		if !isTask(item.StartLine) {
			continue
		}
		if taskInAncestors(item, index, isTask) {
			continue
		}
		result = append(result, item.StartLine)
	}
	return result
}

// taskInAncestors reports whether any ancestor of item is itself a task.
// The walk is depth-bounded like IsDescendantOf.
func taskInAncestors(item models.ListItemRecord, index map[int]models.ListItemRecord, isTask func(line int) bool) bool {
	current := item
	for steps := 0; steps <= len(index); steps++ {
		if current.Parent < 0 {
			return false
		}
		parent, ok := index[current.Parent]
		if !ok {
			return false
		}
		if isTask(parent.StartLine) {
			return true
		}
		current = parent
	}
	return false
}
