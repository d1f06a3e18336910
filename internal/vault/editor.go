package vault

import (
	"fmt"
	"strings"
)

// Buffer is an in-memory line editor over one note's text. Commands load a
// file into a buffer, let the engine rewrite it, and write the result back
// in a single atomic step.
type Buffer struct {
	lines []string
	// Selection anchor and head lines. A single cursor is anchor == head.
	anchor int
	head   int
}

// NewBuffer creates a Buffer holding the given text.
func NewBuffer(text string) *Buffer {
	return &Buffer{lines: splitText(text)}
}

func splitText(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// Line returns line n, or the empty string when n is out of range.
func (b *Buffer) Line(n int) string {
	if n < 0 || n >= len(b.lines) {
		return ""
	}
	return b.lines[n]
}

// LineCount returns the number of lines in the buffer.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Lines returns a copy of the buffer's lines.
func (b *Buffer) Lines() []string {
	return append([]string(nil), b.lines...)
}

// SetLines replaces the entire buffer content.
func (b *Buffer) SetLines(lines []string) {
	b.lines = append([]string(nil), lines...)
}

// SetLine replaces line n.
func (b *Buffer) SetLine(n int, text string) error {
	if n < 0 || n >= len(b.lines) {
		return fmt.Errorf("setting line %d: out of range (0..%d)", n, len(b.lines)-1)
	}
	b.lines[n] = text
	return nil
}

// ReplaceRange replaces the lines in [from, to) with the given lines. The
// range is end-exclusive; an empty replacement deletes the range.
func (b *Buffer) ReplaceRange(replacement []string, from, to int) error {
	if from < 0 || to < from || to > len(b.lines) {
		return fmt.Errorf("replacing lines %d..%d: out of range (0..%d)", from, to, len(b.lines))
	}
	out := make([]string, 0, len(b.lines)-(to-from)+len(replacement))
	out = append(out, b.lines[:from]...)
	out = append(out, replacement...)
	out = append(out, b.lines[to:]...)
	b.lines = out
	return nil
}

// Select sets the selection to the inclusive line range anchor..head.
func (b *Buffer) Select(anchor, head int) {
	b.anchor = anchor
	b.head = head
}

// Selection returns the selection normalized so from <= to.
func (b *Buffer) Selection() (from, to int) {
	if b.anchor <= b.head {
		return b.anchor, b.head
	}
	return b.head, b.anchor
}

// Text reassembles the buffer into file text with a trailing newline.
func (b *Buffer) Text() string {
	if len(b.lines) == 0 {
		return ""
	}
	return strings.Join(b.lines, "\n") + "\n"
}
