package ui

import (
	"fmt"
	"strings"

	"github.com/five82/marquee/internal/catalog"
	"github.com/five82/marquee/internal/state"
)

const (
	loadingLabel = "Loading movies..."
	emptyLabel   = "No movies found."
)

// renderMovies renders the "All Movies" section into exactly height lines:
// the spinner while loading, the error line after a failure, otherwise the
// movie cards scrolled so the cursor stays visible.
func (m Model) renderMovies(height int) string {
	styles := m.theme.Styles()
	snap := m.cycle.Snapshot()

	title := styles.SectionTitle.Render("All Movies")
	if snap.Phase == state.Ready && len(snap.Movies) > 0 {
		title += styles.FaintText.Render(fmt.Sprintf("  %d/%d", m.cursor+1, len(snap.Movies)))
	}
	lines := []string{title}

	switch snap.Phase {
	case state.Loading, state.Idle:
		lines = append(lines, " "+m.spinner.View()+" "+styles.MutedText.Render(loadingLabel))
	case state.Failed:
		lines = append(lines, " "+styles.DangerText.Render(snap.Message))
	default:
		if len(snap.Movies) == 0 {
			lines = append(lines, " "+styles.FaintText.Render(emptyLabel))
			break
		}
		lines = append(lines, m.renderCards(snap.Movies, height-1)...)
	}

	return fitLines(lines, height)
}

// renderCards renders the window of cards around the cursor that fits in height lines.
func (m Model) renderCards(movies []catalog.Movie, height int) []string {
	per := m.cardHeight() + cardGap
	visible := max((height+cardGap)/per, 1)
	start := clampInt(m.cursor-visible+1, 0, len(movies)-1)
	end := min(start+visible, len(movies))

	var lines []string
	for i := start; i < end; i++ {
		if i > start {
			lines = append(lines, "")
		}
		lines = append(lines, m.renderCard(movies[i], i == m.cursor)...)
	}
	return lines
}

func (m Model) cardHeight() int {
	if m.showOverview {
		return 3
	}
	return 2
}

// renderCard renders one movie: title, then rating, language and year.
func (m Model) renderCard(movie catalog.Movie, selected bool) []string {
	styles := m.theme.Styles()
	width := max(m.width-4, 10)

	marker := "  "
	titleStyle := styles.Text.Bold(true)
	if selected {
		marker = styles.AccentText.Render("▸ ")
		titleStyle = styles.Selected.Bold(true)
	}
	title := marker + titleStyle.Render(truncate(movie.Title, width))

	dot := styles.FaintText.Render(" • ")
	meta := "  " + styles.RatingText.Render("★ "+ratingLabel(movie)) +
		dot + styles.MutedText.Render(languageLabel(movie)) +
		dot + styles.MutedText.Render(movie.Year())

	lines := []string{title, meta}
	if m.showOverview {
		overview := strings.TrimSpace(movie.Overview)
		if overview == "" {
			overview = "No overview available."
		}
		lines = append(lines, "  "+styles.FaintText.Render(truncate(overview, width)))
	}
	return lines
}

// ratingLabel formats the vote average with one decimal; zero means unrated.
func ratingLabel(movie catalog.Movie) string {
	if movie.VoteAverage <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", movie.VoteAverage)
}

func languageLabel(movie catalog.Movie) string {
	lang := strings.TrimSpace(movie.OriginalLanguage)
	if lang == "" {
		return "N/A"
	}
	return lang
}

// fitLines truncates or pads lines to exactly height rows.
func fitLines(lines []string, height int) string {
	if height <= 0 {
		return ""
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
