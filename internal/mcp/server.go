// Package mcp provides an MCP (Model Context Protocol) server that exposes
// perinote functionality as MCP tools for AI coding assistants.
package mcp

import (
	"context"
	"fmt"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/perinote/perinote/internal/core"
	"github.com/perinote/perinote/internal/observability"
	"github.com/perinote/perinote/internal/vault"
	"github.com/perinote/perinote/pkg/models"
)

// Server wraps perinote services and exposes them as MCP tools.
type Server struct {
	server      *gomcp.Server
	notes       *vault.Vault
	engine      *core.TransferEngine
	settings    models.Settings
	metricsCalc observability.MetricsCalculator
}

// NewServer creates a new MCP server with the given perinote service
// dependencies. metricsCalc may be nil if observability is disabled.
func NewServer(notes *vault.Vault, engine *core.TransferEngine, settings models.Settings, metricsCalc observability.MetricsCalculator, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		notes:       notes,
		engine:      engine,
		settings:    settings,
		metricsCalc: metricsCalc,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "perinote", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on the given transport, blocking until the client
// disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type resolvePeriodInput struct {
	Period    string `json:"period,omitempty" jsonschema:"periodic note basename (e.g. 2026-01-15 Thu, 2026-01-W03, 2026-01 Jan, 2026). Defaults to today's daily note."`
	Direction string `json:"direction,omitempty" jsonschema:"chain direction to follow: next, up, or down. Empty resolves the period itself."`
	Date      string `json:"date,omitempty" jsonschema:"reference date in YYYY-MM-DD form. Defaults to today."`
}

type resolvePeriodOutput struct {
	Period string `json:"period"`
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}

type listTasksInput struct {
	Period string `json:"period,omitempty" jsonschema:"periodic note basename to list tasks from. Defaults to today's daily note."`
	State  string `json:"state,omitempty" jsonschema:"filter tasks by state (open, started, completed, migrated, scheduled)"`
}

type taskOutput struct {
	Line   int    `json:"line"`
	State  string `json:"state"`
	Text   string `json:"text"`
	Indent int    `json:"indent"`
}

type listTasksOutput struct {
	Period string       `json:"period"`
	Path   string       `json:"path"`
	Tasks  []taskOutput `json:"tasks"`
	Count  int          `json:"count"`
}

type transferTasksInput struct {
	Period string `json:"period" jsonschema:"required,source periodic note basename"`
	Line   int    `json:"line,omitempty" jsonschema:"cursor line of the task to transfer (0-based). Mutually exclusive with from/to."`
	From   int    `json:"from,omitempty" jsonschema:"first line of a multi-task selection (0-based)"`
	To     int    `json:"to,omitempty" jsonschema:"last line of a multi-task selection (0-based, inclusive)"`
	Mode   string `json:"mode,omitempty" jsonschema:"transfer mode: migrate (forward, marks source [>]) or schedule (marks source [<]). Defaults to migrate."`
	Create bool   `json:"create,omitempty" jsonschema:"create the destination note when it does not exist yet"`
}

type transferTasksOutput struct {
	Summary     string `json:"summary"`
	Destination string `json:"destination"`
	Succeeded   int    `json:"succeeded"`
	New         int    `json:"new"`
	Merged      int    `json:"merged"`
	Skipped     int    `json:"skipped"`
}

type getMetricsInput struct {
	Since string `json:"since,omitempty" jsonschema:"time window for metrics (e.g. 7d, 30d, 24h). Defaults to 7d."`
}

type metricsOutput struct {
	Transferred int            `json:"transferred"`
	New         int            `json:"new"`
	Merged      int            `json:"merged"`
	Skipped     int            `json:"skipped"`
	Swept       int            `json:"swept"`
	ByCommand   map[string]int `json:"by_command"`
	EventCount  int            `json:"event_count"`
	OldestEvent string         `json:"oldest_event,omitempty"`
	NewestEvent string         `json:"newest_event,omitempty"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "resolve_period",
		Description: "Resolve a periodic note identity to its vault path, optionally following the period chain (next, up, down).",
	}, s.handleResolvePeriod)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_tasks",
		Description: "List task lines in a periodic note with an optional state filter.",
	}, s.handleListTasks)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "transfer_tasks",
		Description: "Transfer selected tasks from a periodic note to the next period (migrate) or down the chain (schedule), merging duplicates at the destination.",
	}, s.handleTransferTasks)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_metrics",
		Description: "Get aggregated transfer metrics from the event log, including counts of transferred, merged, and skipped tasks.",
	}, s.handleGetMetrics)
}

// --- Tool handlers ---

func (s *Server) handleResolvePeriod(_ context.Context, _ *gomcp.CallToolRequest, input resolvePeriodInput) (*gomcp.CallToolResult, resolvePeriodOutput, error) {
	today, err := referenceDate(input.Date)
	if err != nil {
		return errorResult(fmt.Sprintf("parsing date: %s", err)), resolvePeriodOutput{}, nil
	}

	id, err := s.periodOrToday(input.Period, today)
	if err != nil {
		return errorResult(err.Error()), resolvePeriodOutput{}, nil
	}

	switch input.Direction {
	case "":
	case "next":
		id, err = core.NextPeriod(id)
	case "up":
		id, err = core.HigherPeriod(id, core.AnchorDate(id, s.settings.PullUp, today))
	case "down":
		id, err = core.LowerPeriod(id, today)
	default:
		return errorResult(fmt.Sprintf("invalid direction %q: must be next, up, or down", input.Direction)), resolvePeriodOutput{}, nil
	}
	if err != nil {
		return errorResult(fmt.Sprintf("resolving period: %s", err)), resolvePeriodOutput{}, nil
	}

	path := core.NotePath(id, s.settings)
	out := resolvePeriodOutput{
		Period: core.Basename(id),
		Path:   path,
		Exists: s.notes.Exists(path),
	}
	return nil, out, nil
}

func (s *Server) handleListTasks(_ context.Context, _ *gomcp.CallToolRequest, input listTasksInput) (*gomcp.CallToolResult, listTasksOutput, error) {
	today, _ := referenceDate("")

	id, err := s.periodOrToday(input.Period, today)
	if err != nil {
		return errorResult(err.Error()), listTasksOutput{}, nil
	}

	path := core.NotePath(id, s.settings)
	if !s.notes.Exists(path) {
		return errorResult(fmt.Sprintf("note %s does not exist", path)), listTasksOutput{}, nil
	}

	text, err := s.notes.Read(path)
	if err != nil {
		return errorResult(fmt.Sprintf("reading note: %s", err)), listTasksOutput{}, nil
	}

	out := listTasksOutput{
		Period: core.Basename(id),
		Path:   path,
		Tasks:  []taskOutput{},
	}
	buf := vault.NewBuffer(text)
	for i := 0; i < buf.LineCount(); i++ {
		task, ok := core.ParseTaskLine(buf.Line(i))
		if !ok {
			continue
		}
		if input.State != "" && string(task.State) != input.State {
			continue
		}
		out.Tasks = append(out.Tasks, taskOutput{
			Line:   i,
			State:  string(task.State),
			Text:   task.Text,
			Indent: task.Indent,
		})
	}
	out.Count = len(out.Tasks)

	return nil, out, nil
}

func (s *Server) handleTransferTasks(_ context.Context, _ *gomcp.CallToolRequest, input transferTasksInput) (*gomcp.CallToolResult, transferTasksOutput, error) {
	if input.Period == "" {
		return errorResult("period is required"), transferTasksOutput{}, nil
	}

	id, ok := core.ParseBasename(input.Period)
	if !ok {
		return errorResult(fmt.Sprintf("invalid period %q", input.Period)), transferTasksOutput{}, nil
	}

	mode := core.ModeMigrate
	switch input.Mode {
	case "", "migrate":
	case "schedule":
		mode = core.ModeSchedule
	default:
		return errorResult(fmt.Sprintf("invalid mode %q: must be migrate or schedule", input.Mode)), transferTasksOutput{}, nil
	}

	from, to := input.From, input.To
	if from == 0 && to == 0 {
		from, to = input.Line, input.Line
	}
	if from > to {
		return errorResult(fmt.Sprintf("invalid selection: from %d past to %d", from, to)), transferTasksOutput{}, nil
	}

	srcPath := core.NotePath(id, s.settings)
	if !s.notes.Exists(srcPath) {
		return errorResult(fmt.Sprintf("note %s does not exist", srcPath)), transferTasksOutput{}, nil
	}

	var next models.PeriodIdentity
	var err error
	if mode == core.ModeMigrate {
		next, err = core.NextPeriod(id)
	} else {
		today, _ := referenceDate("")
		next, err = core.LowerPeriod(id, today)
	}
	if err != nil {
		return errorResult(fmt.Sprintf("resolving destination period: %s", err)), transferTasksOutput{}, nil
	}

	dest := core.Destination{
		Path:    core.NotePath(next, s.settings),
		Heading: core.HeadingOrDefault(s.settings.PeriodicTaskHeading),
	}
	if input.Create && !s.notes.Exists(dest.Path) {
		if err := s.notes.Create(dest.Path); err != nil {
			return errorResult(fmt.Sprintf("creating destination note: %s", err)), transferTasksOutput{}, nil
		}
	}

	text, err := s.notes.Read(srcPath)
	if err != nil {
		return errorResult(fmt.Sprintf("reading source note: %s", err)), transferTasksOutput{}, nil
	}
	buf := vault.NewBuffer(text)
	lines := buf.Lines()

	newLines, report, err := s.engine.Transfer(core.TransferRequest{
		SourcePath: srcPath,
		Lines:      lines,
		Items:      vault.ListItems(lines),
		From:       from,
		To:         to,
		Mode:       mode,
		Resolve: func(int) (core.Destination, error) {
			return dest, nil
		},
		Settings: s.settings,
	})
	if err != nil {
		return errorResult(fmt.Sprintf("transferring tasks: %s", err)), transferTasksOutput{}, nil
	}

	buf.SetLines(newLines)
	if err := s.notes.Write(srcPath, buf.Text()); err != nil {
		return errorResult(fmt.Sprintf("writing source note: %s", err)), transferTasksOutput{}, nil
	}

	out := transferTasksOutput{
		Summary:     report.Summary(),
		Destination: dest.Path,
		Succeeded:   report.Succeeded,
		New:         report.New,
		Merged:      report.Merged,
		Skipped:     len(report.Skips),
	}
	return nil, out, nil
}

func (s *Server) handleGetMetrics(_ context.Context, _ *gomcp.CallToolRequest, input getMetricsInput) (*gomcp.CallToolResult, metricsOutput, error) {
	if s.metricsCalc == nil {
		return errorResult("metrics calculator not available (observability may be disabled)"), emptyMetricsOutput(), nil
	}

	sinceStr := input.Since
	if sinceStr == "" {
		sinceStr = "7d"
	}

	sinceTime, err := parseSince(sinceStr)
	if err != nil {
		return errorResult(fmt.Sprintf("parsing since duration: %s", err)), emptyMetricsOutput(), nil
	}

	metrics, err := s.metricsCalc.Calculate(sinceTime)
	if err != nil {
		return errorResult(fmt.Sprintf("calculating metrics: %s", err)), emptyMetricsOutput(), nil
	}

	out := metricsOutput{
		Transferred: metrics.Transferred,
		New:         metrics.New,
		Merged:      metrics.Merged,
		Skipped:     metrics.Skipped,
		Swept:       metrics.Swept,
		ByCommand:   metrics.ByCommand,
		EventCount:  metrics.EventCount,
	}
	if metrics.OldestEvent != nil {
		out.OldestEvent = metrics.OldestEvent.Format(time.RFC3339)
	}
	if metrics.NewestEvent != nil {
		out.NewestEvent = metrics.NewestEvent.Format(time.RFC3339)
	}

	return nil, out, nil
}

// --- Helpers ---

func (s *Server) periodOrToday(period string, today time.Time) (models.PeriodIdentity, error) {
	if period == "" {
		return core.DailyIdentity(today), nil
	}
	id, ok := core.ParseBasename(period)
	if !ok {
		return models.PeriodIdentity{}, fmt.Errorf("invalid period %q", period)
	}
	return id, nil
}

func referenceDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", s)
}

func emptyMetricsOutput() metricsOutput {
	return metricsOutput{
		ByCommand: make(map[string]int),
	}
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}

// parseSince parses a human-friendly duration string like "7d", "30d", or "24h"
// into the corresponding time in the past.
func parseSince(s string) (time.Time, error) {
	now := time.Now().UTC()

	if len(s) < 2 {
		return time.Time{}, fmt.Errorf("invalid duration %q", s)
	}

	suffix := s[len(s)-1]
	numStr := s[:len(s)-1]
	var num int
	if _, err := fmt.Sscanf(numStr, "%d", &num); err != nil {
		return time.Time{}, fmt.Errorf("invalid duration %q: %w", s, err)
	}

	switch suffix {
	case 'd':
		return now.AddDate(0, 0, -num), nil
	case 'h':
		return now.Add(-time.Duration(num) * time.Hour), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported duration suffix %q (use d or h)", string(suffix))
	}
}
