package ui

import (
	"fmt"
	"strings"

	"github.com/five82/marquee/internal/trends"
)

// renderTrending renders the "Trending Movies" section. It returns "" when
// there is nothing to show, which hides the section entirely.
func (m Model) renderTrending() string {
	if len(m.trending) == 0 {
		return ""
	}
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.SectionTitle.Render("Trending Movies"))
	b.WriteString("\n")
	for i, entry := range m.trending {
		b.WriteString(renderTrendingRow(styles, i+1, entry, m.width))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderTrendingRow(styles Styles, rank int, entry trends.Entry, width int) string {
	num := styles.WarningText.Bold(true).Render(fmt.Sprintf("%2d", rank))
	count := styles.FaintText.Render(fmt.Sprintf("×%d", entry.Count))
	title := entry.Title
	if title == "" {
		title = entry.SearchTerm
	}
	room := width - 12
	return " " + num + "  " + styles.Text.Render(truncate(title, room)) + "  " + count
}
