package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/marquee/internal/logtail"
)

// diagnosticsState holds the log overlay. Failures the UI swallows (trend
// store reads and writes, catalog errors) end up in the log file, and this is
// where they can be read without leaving the program.
type diagnosticsState struct {
	open     bool
	problems bool
	lines    []string
	err      error
	viewport viewport.Model
}

func newDiagnosticsState() diagnosticsState {
	return diagnosticsState{viewport: viewport.New(0, 0)}
}

type diagnosticsMsg struct {
	Lines []string
	Err   error
}

func (m Model) openDiagnostics() (tea.Model, tea.Cmd) {
	m.diag.open = true
	m.resizeDiagnostics()
	return m, m.loadDiagnosticsCmd()
}

func (m Model) loadDiagnosticsCmd() tea.Cmd {
	path := m.logPath
	var keep logtail.Filter
	if m.diag.problems {
		keep = logtail.Problems
	}
	return func() tea.Msg {
		lines, err := logtail.Read(path, DiagnosticsLines, keep)
		return diagnosticsMsg{Lines: lines, Err: err}
	}
}

func (m *Model) handleDiagnostics(msg diagnosticsMsg) {
	m.diag.lines = msg.Lines
	m.diag.err = msg.Err
	m.diag.viewport.SetContent(m.diagnosticsContent())
	m.diag.viewport.GotoBottom()
}

func (m *Model) resizeDiagnostics() {
	// Box border (2) plus title and status rows.
	m.diag.viewport.Width = max(m.width-4, 0)
	m.diag.viewport.Height = max(m.height-4, 0)
	m.diag.viewport.SetContent(m.diagnosticsContent())
}

func (m Model) handleDiagnosticsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Close):
		m.diag.open = false
		return m, nil
	case key.Matches(msg, m.keys.ToggleProblems):
		m.diag.problems = !m.diag.problems
		return m, m.loadDiagnosticsCmd()
	case key.Matches(msg, m.keys.Reload):
		return m, m.loadDiagnosticsCmd()
	}

	var cmd tea.Cmd
	m.diag.viewport, cmd = m.diag.viewport.Update(msg)
	return m, cmd
}

func (m Model) diagnosticsContent() string {
	styles := m.theme.Styles()
	switch {
	case m.diag.err != nil:
		return styles.DangerText.Render("Unable to read log: " + m.diag.err.Error())
	case m.logPath == "":
		return styles.FaintText.Render("Logging to a file is disabled.")
	case len(m.diag.lines) == 0:
		if m.diag.problems {
			return styles.FaintText.Render("No warnings or errors logged.")
		}
		return styles.FaintText.Render("Log is empty.")
	}

	width := m.diag.viewport.Width
	var b strings.Builder
	for i, line := range m.diag.lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(colorizeLogLine(styles, truncate(line, width)))
	}
	return b.String()
}

// colorizeLogLine tints a line by its charmbracelet/log level token.
func colorizeLogLine(styles Styles, line string) string {
	switch {
	case strings.Contains(line, " ERRO "):
		return styles.DangerText.Render(line)
	case strings.Contains(line, " WARN "):
		return styles.WarningText.Render(line)
	case strings.Contains(line, " DEBU "):
		return styles.FaintText.Render(line)
	default:
		return styles.Text.Render(line)
	}
}

// renderDiagnostics renders the log overlay.
func (m Model) renderDiagnostics() string {
	styles := m.theme.Styles()

	title := "Diagnostics"
	if m.diag.problems {
		title += " · problems"
	}
	if m.logPath != "" {
		title += "  " + styles.FaintText.Render(truncate(m.logPath, max(m.width-30, 10)))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Width(max(m.width-2, 0)).
		Height(max(m.height-4, 0))

	status := styles.AccentText.Render("p") + styles.MutedText.Render(":Problems  ") +
		styles.AccentText.Render("r") + styles.MutedText.Render(":Reload  ") +
		styles.AccentText.Render("esc") + styles.MutedText.Render(":Close")

	return styles.SectionTitle.Render(title) + "\n" +
		box.Render(m.diag.viewport.View()) + "\n" +
		status
}
