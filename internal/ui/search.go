package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// searchPlaceholder is shown while the query is empty.
const searchPlaceholder = "Search through thousands of movies"

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = searchPlaceholder
	ti.Prompt = "⌕ "
	ti.CharLimit = 100
	ti.Focus()
	return ti
}

// applyThemeToWidgets restyles the bubbles components after a theme change.
func (m *Model) applyThemeToWidgets() {
	m.search.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
	m.search.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Text))
	m.search.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Faint))
	m.search.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
}

// handleSearchKey feeds a key to the focused search box. Every edit that
// changes the raw value bumps the debouncer; the settled value becomes the
// effective query.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Blur) {
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.debouncer.Bump(m.search.Value()))
}

// renderSearch renders the bordered search box.
func (m Model) renderSearch() string {
	border := m.theme.Border
	if m.search.Focused() {
		border = m.theme.BorderFocus
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1).
		Width(max(m.width-2, 0))
	return box.Render(m.search.View())
}
