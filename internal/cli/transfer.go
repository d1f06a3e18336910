package cli

import (
	"fmt"
	"path"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/perinote/perinote/internal/core"
	"github.com/perinote/perinote/internal/observability"
	"github.com/perinote/perinote/internal/vault"
	"github.com/perinote/perinote/pkg/models"
)

var (
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	skipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("178"))
)

// selectionFlags identify the task lines a transfer command operates on:
// either a single cursor line or an inclusive from/to selection.
type selectionFlags struct {
	line int
	from int
	to   int
}

func addSelectionFlags(cmd *cobra.Command, f *selectionFlags) {
	cmd.Flags().IntVar(&f.line, "line", -1, "Cursor line (0-based)")
	cmd.Flags().IntVar(&f.from, "from", -1, "Selection start line (0-based, inclusive)")
	cmd.Flags().IntVar(&f.to, "to", -1, "Selection end line (0-based, inclusive)")
}

// bounds normalizes the flags into an inclusive line range.
func (f selectionFlags) bounds(buf *vault.Buffer) (int, int, error) {
	if f.line >= 0 {
		buf.Select(f.line, f.line)
	} else if f.from >= 0 && f.to >= 0 {
		buf.Select(f.from, f.to)
	} else {
		return 0, 0, core.ValidationError{Reason: "no cursor: pass --line or --from/--to"}
	}
	from, to := buf.Selection()
	if to >= buf.LineCount() {
		return 0, 0, core.ValidationError{Reason: fmt.Sprintf(
			"selection %d..%d is outside the file (%d lines)", from, to, buf.LineCount())}
	}
	return from, to, nil
}

// sourceNote is one loaded source document plus its host metadata.
type sourceNote struct {
	path     string
	buf      *vault.Buffer
	items    []models.ListItemRecord
	identity models.PeriodIdentity
	periodic bool
	project  string
}

// loadSource reads a note and builds its list-item index. The identity is
// parsed from the basename when the note is periodic; the project name is
// set when the note sits directly inside the projects root.
func loadSource(file string) (*sourceNote, error) {
	if !Notes.Exists(file) {
		return nil, core.NotFoundError{Kind: "note", Name: file}
	}
	text, err := Notes.Read(file)
	if err != nil {
		return nil, err
	}
	src := &sourceNote{path: file, buf: vault.NewBuffer(text)}
	src.items = vault.ListItems(src.buf.Lines())
	src.identity, src.periodic = core.ParseBasename(path.Base(file))
	src.project, _ = core.ProjectName(file, Settings)
	return src, nil
}

// requirePeriodic fails with a validation error when the note's filename
// does not parse as a periodic note.
func (s *sourceNote) requirePeriodic() error {
	if !s.periodic {
		return core.ValidationError{Reason: fmt.Sprintf("%s is not a periodic note", s.path)}
	}
	return nil
}

// runTransfer executes one transfer batch against a loaded source, writes
// the modified source back, and emits the single per-command summary plus
// structured events.
func runTransfer(eventType string, src *sourceNote, sel selectionFlags, mode core.TransferMode, resolve core.DestinationResolver) error {
	from, to, err := sel.bounds(src.buf)
	if err != nil {
		return err
	}

	newLines, report, err := Engine.Transfer(core.TransferRequest{
		SourcePath: src.path,
		Lines:      src.buf.Lines(),
		Items:      src.items,
		From:       from,
		To:         to,
		Mode:       mode,
		Resolve:    resolve,
		Settings:   Settings,
	})
	if err != nil {
		logEvent(observability.EventError, "ERROR", err.Error(), map[string]any{"command": eventType})
		return err
	}

	src.buf.SetLines(newLines)
	if err := Notes.Write(src.path, src.buf.Text()); err != nil {
		return fmt.Errorf("writing source %s: %w", src.path, err)
	}

	reportOutcome(eventType, src.path, report)
	return nil
}

// reportOutcome prints the aggregate summary, logs it, and notifies the
// configured webhook. Skipped tasks are listed under the summary; there is
// no per-task notification.
func reportOutcome(eventType, file string, report core.Report) {
	fmt.Println(summaryStyle.Render(report.Summary()))
	for _, skip := range report.Skips {
		fmt.Println(skipStyle.Render(fmt.Sprintf("  skipped line %d: %v", skip.Line, skip.Err)))
	}

	logEvent(eventType, "INFO", report.Summary(), map[string]any{
		"file":      file,
		"succeeded": report.Succeeded,
		"new":       report.New,
		"merged":    report.Merged,
		"skipped":   len(report.Skips),
	})
	for _, skip := range report.Skips {
		logEvent(observability.EventSkip, "WARN", skip.Err.Error(), map[string]any{
			"file": file,
			"line": skip.Line,
		})
	}

	if Notifier != nil {
		if err := Notifier.Notify(fmt.Sprintf("perinote %s: %s", eventType, report.Summary())); err != nil {
			fmt.Println(skipStyle.Render(fmt.Sprintf("  webhook: %v", err)))
		}
	}
}

func logEvent(eventType, level, msg string, data map[string]any) {
	if EventLog == nil {
		return
	}
	_ = EventLog.Write(observability.Event{
		Time:    time.Now(),
		Level:   level,
		Type:    eventType,
		Message: msg,
		Data:    data,
	})
}

// fixedDestination resolves every task in a batch to the same note.
func fixedDestination(dest core.Destination, create bool) core.DestinationResolver {
	materialized := false
	return func(int) (core.Destination, error) {
		if create && !materialized {
			if err := Notes.Create(dest.Path); err != nil {
				return core.Destination{}, err
			}
			materialized = true
		}
		return dest, nil
	}
}
