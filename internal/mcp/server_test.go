package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/perinote/perinote/internal/core"
	"github.com/perinote/perinote/internal/vault"
)

// newTestServer builds a Server over a throwaway vault seeded with notes.
func newTestServer(t *testing.T, notes map[string]string) (*Server, *vault.Vault) {
	t.Helper()
	dir := t.TempDir()
	for p, text := range notes {
		full := filepath.Join(dir, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	v, err := vault.Open(dir)
	if err != nil {
		t.Fatalf("vault.Open: %v", err)
	}
	settings := *core.DefaultSettings()
	srv := NewServer(v, core.NewTransferEngine(v), settings, nil, "test")
	return srv, v
}

// callTool is a helper that connects a client to the server and calls a tool.
func callTool(t *testing.T, srv *Server, toolName string, args map[string]any) *gomcp.CallToolResult {
	t.Helper()

	ctx := context.Background()
	client := gomcp.NewClient(&gomcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)

	t1, t2 := gomcp.NewInMemoryTransports()

	// Connect server (non-blocking).
	go func() {
		_ = srv.MCPServer().Run(ctx, t1)
	}()

	session, err := client.Connect(ctx, t2, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	defer session.Close()

	result, err := session.CallTool(ctx, &gomcp.CallToolParams{
		Name:      toolName,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("call tool %s: %v", toolName, err)
	}

	return result
}

func decodeResult(t *testing.T, result *gomcp.CallToolResult, out any) {
	t.Helper()
	text := extractText(result)
	if err := json.Unmarshal([]byte(text), out); err != nil {
		// The SDK may deliver the structured output separately; fall back
		// to the structured content.
		if result.StructuredContent == nil {
			t.Fatalf("unmarshalling result: %v (text was: %s)", err, text)
		}
		data, _ := json.Marshal(result.StructuredContent)
		if err2 := json.Unmarshal(data, out); err2 != nil {
			t.Fatalf("unmarshalling structured result: %v", err2)
		}
	}
}

func extractText(result *gomcp.CallToolResult) string {
	for _, c := range result.Content {
		if tc, ok := c.(*gomcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// --- Tests ---

func TestResolvePeriod(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{
		"journal/2026/01/2026-01-W04.md": "## Log\n",
	})

	result := callTool(t, srv, "resolve_period", map[string]any{
		"period":    "2026-01-18 Sun",
		"direction": "next",
	})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", extractText(result))
	}

	var out resolvePeriodOutput
	decodeResult(t, result, &out)

	if out.Period != "2026-01-W04" {
		t.Errorf("period = %q, want 2026-01-W04", out.Period)
	}
	if out.Path != "journal/2026/01/2026-01-W04.md" {
		t.Errorf("path = %q", out.Path)
	}
	if !out.Exists {
		t.Error("expected the weekly note to exist")
	}
}

func TestResolvePeriod_UpAnchorsOnSource(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	result := callTool(t, srv, "resolve_period", map[string]any{
		"period":    "2026-01-W05",
		"direction": "up",
		"date":      "2026-02-01",
	})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", extractText(result))
	}

	var out resolvePeriodOutput
	decodeResult(t, result, &out)

	// Week 5 spans Jan 26 to Feb 1; its Thursday is Jan 29, so the source
	// anchor resolves to January regardless of the reference date.
	if out.Period != "2026-01 Jan" {
		t.Errorf("period = %q, want 2026-01 Jan", out.Period)
	}
	if out.Exists {
		t.Error("monthly note should not exist")
	}
}

func TestResolvePeriod_InvalidInput(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	result := callTool(t, srv, "resolve_period", map[string]any{"period": "not-a-period"})
	if !result.IsError {
		t.Fatal("expected error for invalid period")
	}

	result = callTool(t, srv, "resolve_period", map[string]any{
		"period":    "2026",
		"direction": "sideways",
	})
	if !result.IsError {
		t.Fatal("expected error for invalid direction")
	}

	result = callTool(t, srv, "resolve_period", map[string]any{
		"period":    "2026",
		"direction": "up",
	})
	if !result.IsError {
		t.Fatal("expected error for up from a yearly note")
	}
}

func TestListTasks(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{
		"journal/2026/01/2026-01-18 Sun.md": "## Log\n- [ ] open one\n- [/] going\n- [x] finished\n",
	})

	result := callTool(t, srv, "list_tasks", map[string]any{"period": "2026-01-18 Sun"})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", extractText(result))
	}

	var out listTasksOutput
	decodeResult(t, result, &out)

	if out.Count != 3 {
		t.Errorf("count = %d, want 3", out.Count)
	}

	result = callTool(t, srv, "list_tasks", map[string]any{
		"period": "2026-01-18 Sun",
		"state":  "open",
	})
	decodeResult(t, result, &out)
	if out.Count != 1 || out.Tasks[0].Text != "open one" {
		t.Errorf("filtered tasks = %+v", out.Tasks)
	}
}

func TestListTasks_MissingNote(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	result := callTool(t, srv, "list_tasks", map[string]any{"period": "2026-01-18 Sun"})
	if !result.IsError {
		t.Fatal("expected error for a missing note")
	}
}

func TestTransferTasks_Migrate(t *testing.T) {
	srv, v := newTestServer(t, map[string]string{
		"journal/2026/01/2026-01-18 Sun.md": "## Log\n- [ ] ship release\n    - check changelog\n",
	})

	result := callTool(t, srv, "transfer_tasks", map[string]any{
		"period": "2026-01-18 Sun",
		"line":   1,
		"create": true,
	})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", extractText(result))
	}

	var out transferTasksOutput
	decodeResult(t, result, &out)

	if out.Succeeded != 1 || out.New != 1 {
		t.Errorf("output = %+v", out)
	}
	if out.Destination != "journal/2026/01/2026-01-W04.md" {
		t.Errorf("destination = %q", out.Destination)
	}

	src, err := v.Read("journal/2026/01/2026-01-18 Sun.md")
	if err != nil {
		t.Fatalf("reading source: %v", err)
	}
	if src != "## Log\n- [>] ship release\n" {
		t.Errorf("source = %q", src)
	}

	dst, err := v.Read("journal/2026/01/2026-01-W04.md")
	if err != nil {
		t.Fatalf("reading destination: %v", err)
	}
	want := "## Log\n- [ ] ship release\n    - check changelog"
	if dst != want {
		t.Errorf("destination = %q, want %q", dst, want)
	}
}

func TestTransferTasks_MissingDestinationWithoutCreate(t *testing.T) {
	srv, v := newTestServer(t, map[string]string{
		"journal/2026/01/2026-01-18 Sun.md": "## Log\n- [ ] ship release\n",
	})

	result := callTool(t, srv, "transfer_tasks", map[string]any{
		"period": "2026-01-18 Sun",
		"line":   1,
	})
	if result.IsError {
		t.Fatalf("expected a skip report, got error: %s", extractText(result))
	}

	var out transferTasksOutput
	decodeResult(t, result, &out)
	if out.Succeeded != 0 || out.Skipped != 1 {
		t.Errorf("output = %+v", out)
	}

	src, _ := v.Read("journal/2026/01/2026-01-18 Sun.md")
	if src != "## Log\n- [ ] ship release\n" {
		t.Errorf("source changed despite skip: %q", src)
	}
}

func TestGetMetrics_Unavailable(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	result := callTool(t, srv, "get_metrics", map[string]any{})
	if !result.IsError {
		t.Fatal("expected error when no metrics calculator is wired")
	}
}
