package ui

import (
	"strings"
)

// tagline is the header's subtitle.
const tagline = "Find Movies You'll Enjoy Without the Hassle"

// renderHeader renders the title bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{bg.Render("marquee", styles.Logo)}
	if m.width >= LayoutCompactWidth {
		parts = append(parts, bg.Render(tagline, styles.MutedText))
	}
	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// renderFooter renders the command hints bar.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd
	if m.search.Focused() {
		commands = []cmd{
			{"esc", "Leave search"},
			{"↑/↓", "Navigate"},
			{"ctrl+c", "Quit"},
		}
	} else {
		commands = []cmd{
			{"/", "Search"},
			{"j/k", "Navigate"},
			{"o", "Overviews"},
			{"L", "Diagnostics"},
			{"?", "More"},
			{"q", "Quit"},
		}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Footer.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}
