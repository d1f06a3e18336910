package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/perinote/perinote/internal/core"
	"github.com/perinote/perinote/pkg/models"
)

// Dashboard panel indices.
const (
	panelTasks = iota
	panelPeriods
	panelMetrics
	panelCount
)

type dashboardModel struct {
	activePanel int
	width       int
	height      int

	// Data.
	taskCounts  map[models.TaskState]int
	periods     []periodSnapshot
	metricsData *metricsSnapshot

	// State.
	loading bool
	err     error
}

type periodSnapshot struct {
	label    string
	basename string
	exists   bool
}

type metricsSnapshot struct {
	transferred int
	created     int
	merged      int
	skipped     int
	swept       int
	eventCount  int
}

// dataLoadedMsg carries loaded data back to the model.
type dataLoadedMsg struct {
	taskCounts map[models.TaskState]int
	periods    []periodSnapshot
	metrics    *metricsSnapshot
	err        error
}

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(1, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			MarginBottom(1)

	stateOpen      = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	stateStarted   = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	stateScheduled = lipgloss.NewStyle().Foreground(lipgloss.Color("141"))
	stateMigrated  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	stateCompleted = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))

	noteExists  = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	noteMissing = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newDashboardModel() dashboardModel {
	return dashboardModel{
		activePanel: panelTasks,
		loading:     true,
		taskCounts:  make(map[models.TaskState]int),
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return loadData
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activePanel = (m.activePanel + 1) % panelCount
			return m, nil
		case "shift+tab":
			m.activePanel = (m.activePanel - 1 + panelCount) % panelCount
			return m, nil
		case "r":
			m.loading = true
			return m, loadData
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dataLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.taskCounts = msg.taskCounts
		m.periods = msg.periods
		m.metricsData = msg.metrics
		m.err = nil
		return m, nil
	}

	return m, nil
}

func (m dashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := titleStyle.Render(" Perinote Dashboard ")
	help := helpStyle.Render("tab: switch panel | r: refresh | q: quit")

	if m.loading {
		return fmt.Sprintf("%s\n\n  Loading data...\n\n%s", title, help)
	}

	if m.err != nil {
		return fmt.Sprintf("%s\n\n  Error: %s\n\n%s", title, m.err, help)
	}

	tasksPanel := m.renderTasksPanel()
	periodsPanel := m.renderPeriodsPanel()
	metricsPanel := m.renderMetricsPanel()

	// Available width for panels after accounting for margins.
	availableWidth := m.width - 2

	var body string
	if availableWidth > 120 {
		// Horizontal layout: three columns.
		colWidth := availableWidth / 3
		tasksPanel = m.applyPanelStyle(panelTasks, tasksPanel, colWidth-4)
		periodsPanel = m.applyPanelStyle(panelPeriods, periodsPanel, colWidth-4)
		metricsPanel = m.applyPanelStyle(panelMetrics, metricsPanel, colWidth-4)
		body = lipgloss.JoinHorizontal(lipgloss.Top, tasksPanel, periodsPanel, metricsPanel)
	} else {
		// Vertical layout: stacked.
		panelWidth := availableWidth - 4
		if panelWidth < 20 {
			panelWidth = 20
		}
		tasksPanel = m.applyPanelStyle(panelTasks, tasksPanel, panelWidth)
		periodsPanel = m.applyPanelStyle(panelPeriods, periodsPanel, panelWidth)
		metricsPanel = m.applyPanelStyle(panelMetrics, metricsPanel, panelWidth)
		body = lipgloss.JoinVertical(lipgloss.Left, tasksPanel, periodsPanel, metricsPanel)
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", title, body, help)
}

func (m dashboardModel) applyPanelStyle(panel int, content string, width int) string {
	style := panelStyle
	if m.activePanel == panel {
		style = activePanelStyle
	}
	return style.Width(width).Render(content)
}

func (m dashboardModel) renderTasksPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Today's Tasks"))
	b.WriteString("\n")

	if len(m.taskCounts) == 0 {
		b.WriteString("  No tasks found.")
		return b.String()
	}

	// Display in lifecycle order.
	order := []models.TaskState{
		models.StateOpen,
		models.StateStarted,
		models.StateScheduled,
		models.StateMigrated,
		models.StateCompleted,
	}
	for _, state := range order {
		count, ok := m.taskCounts[state]
		if !ok || count == 0 {
			continue
		}
		label := fmt.Sprintf("  %-14s %d", state, count)
		b.WriteString(styleForState(state).Render(label))
		b.WriteString("\n")
	}

	total := 0
	for _, c := range m.taskCounts {
		total += c
	}
	b.WriteString(fmt.Sprintf("\n  Total: %d", total))

	return b.String()
}

func (m dashboardModel) renderPeriodsPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Periods"))
	b.WriteString("\n")

	if len(m.periods) == 0 {
		b.WriteString("  No periodic notes configured.")
		return b.String()
	}

	for _, p := range m.periods {
		mark := noteMissing.Render("absent")
		if p.exists {
			mark = noteExists.Render("exists")
		}
		b.WriteString(fmt.Sprintf("  %-8s %-18s %s\n", p.label, p.basename, mark))
	}

	return b.String()
}

func (m dashboardModel) renderMetricsPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Metrics (7d)"))
	b.WriteString("\n")

	if m.metricsData == nil {
		b.WriteString("  No metrics available.")
		return b.String()
	}

	md := m.metricsData
	lines := []struct {
		label string
		value int
	}{
		{"Events", md.eventCount},
		{"Transferred", md.transferred},
		{"Created", md.created},
		{"Merged", md.merged},
		{"Skipped", md.skipped},
		{"Swept", md.swept},
	}

	for _, l := range lines {
		b.WriteString(fmt.Sprintf("  %-14s %d\n", l.label, l.value))
	}

	return b.String()
}

func styleForState(state models.TaskState) lipgloss.Style {
	switch state {
	case models.StateOpen:
		return stateOpen
	case models.StateStarted:
		return stateStarted
	case models.StateScheduled:
		return stateScheduled
	case models.StateMigrated:
		return stateMigrated
	case models.StateCompleted:
		return stateCompleted
	default:
		return lipgloss.NewStyle()
	}
}

func loadData() tea.Msg {
	result := dataLoadedMsg{
		taskCounts: make(map[models.TaskState]int),
	}

	now := time.Now().UTC()
	chain := []struct {
		label string
		id    models.PeriodIdentity
	}{
		{"daily", core.DailyIdentity(now)},
		{"weekly", core.WeeklyIdentity(now)},
		{"monthly", core.MonthlyIdentity(now)},
		{"yearly", core.YearlyIdentity(now)},
	}

	for _, link := range chain {
		notePath := core.NotePath(link.id, Settings)
		exists := Notes != nil && Notes.Exists(notePath)
		result.periods = append(result.periods, periodSnapshot{
			label:    link.label,
			basename: core.Basename(link.id),
			exists:   exists,
		})

		if !exists || link.label != "daily" {
			continue
		}
		text, err := Notes.Read(notePath)
		if err != nil {
			result.err = fmt.Errorf("reading daily note: %w", err)
			return result
		}
		for _, line := range strings.Split(text, "\n") {
			if task, ok := core.ParseTaskLine(line); ok {
				result.taskCounts[task.State]++
			}
		}
	}

	// Load metrics from MetricsCalc.
	if MetricsCalc != nil {
		since := time.Now().UTC().AddDate(0, 0, -7)
		metrics, err := MetricsCalc.Calculate(since)
		if err != nil {
			result.err = fmt.Errorf("loading metrics: %w", err)
			return result
		}
		result.metrics = &metricsSnapshot{
			transferred: metrics.Transferred,
			created:     metrics.New,
			merged:      metrics.Merged,
			skipped:     metrics.Skipped,
			swept:       metrics.Swept,
			eventCount:  metrics.EventCount,
		}
	}

	return result
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI dashboard for periodic notes and transfer metrics",
	Long: `Launch an interactive terminal dashboard showing today's task counts,
the periodic note chain around today, and recent transfer metrics.

Navigate between panels with Tab, refresh with r, quit with q.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Notes == nil {
			return fmt.Errorf("vault not initialized")
		}
		p := tea.NewProgram(newDashboardModel(), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
