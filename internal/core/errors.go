package core

import "fmt"

// ValidationError reports a precondition failure with zero side effects:
// cursor not on an eligible task, file not a periodic note, already at the
// topmost or bottommost period, or a reference date outside the note's span.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return e.Reason
}

func errValidation(format string, args ...any) error {
	return ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing resource (destination note, project note).
// In a batch only the affected task is skipped.
type NotFoundError struct {
	Kind string
	Name string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Name)
}

// LinkError reports that no project link could be resolved for a task or any
// of its ancestors. The task is skipped and left untouched in the source.
type LinkError struct {
	Line int
}

func (e LinkError) Error() string {
	return fmt.Sprintf("no project link found on task at line %d or its ancestors", e.Line)
}
