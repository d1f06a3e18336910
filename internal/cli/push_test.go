package cli

import (
	"strings"
	"testing"
)

func TestPushCmd_Registration(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "push" {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected 'push' command to be registered on root")
	}
}

func TestPush_WeeklyIntoTodaysDaily(t *testing.T) {
	v := setupTestVault(t)
	seedNote(t, v, "journal/2026/01/2026-01-W03.md", "## Log\n- [ ] write retro\n")

	origFile, origSel, origCreate := pushFile, pushSel, pushCreate
	defer func() { pushFile, pushSel, pushCreate = origFile, origSel, origCreate }()
	pushFile = "journal/2026/01/2026-01-W03.md"
	pushSel = selectionFlags{line: 1, from: -1, to: -1}
	pushCreate = true
	dateFlag = "2026-01-15"

	if err := pushCmd.RunE(pushCmd, nil); err != nil {
		t.Fatalf("push: %v", err)
	}

	if got := readNote(t, v, "journal/2026/01/2026-01-W03.md"); got != "## Log\n- [<] write retro\n" {
		t.Errorf("source after push:\n%q", got)
	}
	if got := readNote(t, v, "journal/2026/01/2026-01-15 Thu.md"); got != "## Log\n- [ ] write retro" {
		t.Errorf("destination after push:\n%q", got)
	}
}

func TestPush_TodayOutsideSourcePeriod(t *testing.T) {
	v := setupTestVault(t)
	seedNote(t, v, "journal/2026/01/2026-01-W03.md", "## Log\n- [ ] write retro\n")

	origFile, origSel := pushFile, pushSel
	defer func() { pushFile, pushSel = origFile, origSel }()
	pushFile = "journal/2026/01/2026-01-W03.md"
	pushSel = selectionFlags{line: 1, from: -1, to: -1}
	dateFlag = "2026-02-10"

	err := pushCmd.RunE(pushCmd, nil)
	if err == nil {
		t.Fatal("expected error when today is outside the source week")
	}
}

func TestPush_ProjectTaskAdoptedByCollector(t *testing.T) {
	v := setupTestVault(t)
	seedNote(t, v, "projects/infra.md", "## Tasks\n- [ ] rotate certs\n")
	seedNote(t, v, "journal/2026/01/2026-01-18 Sun.md", "## Log\n- [ ] Push [[infra]]\n")

	origFile, origSel, origCreate := pushFile, pushSel, pushCreate
	defer func() { pushFile, pushSel, pushCreate = origFile, origSel, origCreate }()
	pushFile = "projects/infra.md"
	pushSel = selectionFlags{line: 1, from: -1, to: -1}
	pushCreate = false
	dateFlag = "2026-01-18"

	if err := pushCmd.RunE(pushCmd, nil); err != nil {
		t.Fatalf("push: %v", err)
	}

	if got := readNote(t, v, "projects/infra.md"); got != "## Tasks\n- [<] rotate certs\n" {
		t.Errorf("project note after push:\n%q", got)
	}
	want := "## Log\n- [ ] Push [[infra]]\n    - [ ] rotate certs"
	if got := readNote(t, v, "journal/2026/01/2026-01-18 Sun.md"); got != want {
		t.Errorf("daily note after push:\n%q\nwant:\n%q", got, want)
	}
}

func TestPush_ProjectTaskWithoutCollectorUsesHeading(t *testing.T) {
	v := setupTestVault(t)
	seedNote(t, v, "projects/infra.md", "## Tasks\n- [ ] rotate certs\n")
	seedNote(t, v, "journal/2026/01/2026-01-18 Sun.md", "## Log\n- [ ] unrelated\n")

	origFile, origSel := pushFile, pushSel
	defer func() { pushFile, pushSel = origFile, origSel }()
	pushFile = "projects/infra.md"
	pushSel = selectionFlags{line: 1, from: -1, to: -1}
	dateFlag = "2026-01-18"

	if err := pushCmd.RunE(pushCmd, nil); err != nil {
		t.Fatalf("push: %v", err)
	}

	got := readNote(t, v, "journal/2026/01/2026-01-18 Sun.md")
	if !strings.Contains(got, "## Log\n- [ ] rotate certs\n- [ ] unrelated") {
		t.Errorf("expected insertion right under the heading, got:\n%q", got)
	}
}
