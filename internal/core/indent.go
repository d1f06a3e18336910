package core

import "strings"

// CountIndent returns the length of the leading run of spaces and tabs.
func CountIndent(line string) int {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return i
		}
	}
	return len(line)
}

// isBlank reports whether a line is empty or whitespace only.
func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// DedentLines strips the minimum indent found among non-blank lines from
// every non-blank line, preserving relative indentation. Blank lines become
// empty. If every line is blank the input is returned unchanged.
func DedentLines(lines []string) []string {
	minIndent := -1
	for _, line := range lines {
		if isBlank(line) {
			continue
		}
		n := CountIndent(line)
		if minIndent < 0 || n < minIndent {
			minIndent = n
		}
	}
	if minIndent < 0 {
		return lines
	}
	return DedentBy(lines, minIndent)
}

// DedentBy strips min(actualIndent, n) characters of leading whitespace from
// each line. Blank lines become empty. Use it when the exact amount to remove
// is already known, e.g. a child block dedented by its task's own indent.
func DedentBy(lines []string, n int) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if isBlank(line) {
			out[i] = ""
			continue
		}
		strip := CountIndent(line)
		if strip > n {
			strip = n
		}
		out[i] = line[strip:]
	}
	return out
}

// IndentLines prepends n spaces to every non-blank line.
func IndentLines(lines []string, n int) []string {
	prefix := strings.Repeat(" ", n)
	out := make([]string, len(lines))
	for i, line := range lines {
		if isBlank(line) {
			out[i] = line
			continue
		}
		out[i] = prefix + line
	}
	return out
}
