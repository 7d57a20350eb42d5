package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/five82/marquee/internal/catalog"
	"github.com/five82/marquee/internal/debounce"
	"github.com/five82/marquee/internal/logging"
	"github.com/five82/marquee/internal/prefs"
	"github.com/five82/marquee/internal/state"
	"github.com/five82/marquee/internal/trends"
)

// Options configures the UI.
type Options struct {
	Context       context.Context
	Catalog       catalog.Fetcher
	Trends        trends.Store
	Logger        *log.Logger
	Debounce      time.Duration
	TrendingLimit int
	LogPath       string
	ThemeName     string
	ShowOverview  bool
	PrefsPath     string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx           context.Context
	catalog       catalog.Fetcher
	trends        trends.Store
	logger        *log.Logger
	trendingLimit int
	logPath       string
	prefsPath     string

	// UI state
	theme        Theme
	keys         keyMap
	width        int
	height       int
	ready        bool
	showOverview bool
	showHelp     bool

	// Query state
	search    textinput.Model
	debouncer *debounce.Debouncer
	effective string

	// Fetch cycle
	cycle    state.Cycle
	spinner  spinner.Model
	cursor   int
	trending []trends.Entry

	// Diagnostics overlay
	diag diagnosticsState
}

// New creates a new Bubble Tea model. The model starts in the loading phase
// of the mount cycle, which fetches the discover feed.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.DefaultTheme
	}

	limit := opts.TrendingLimit
	if limit <= 0 {
		limit = trends.DefaultLimit
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:           ctx,
		catalog:       opts.Catalog,
		trends:        opts.Trends,
		logger:        logger,
		trendingLimit: limit,
		logPath:       opts.LogPath,
		prefsPath:     opts.PrefsPath,
		theme:         GetTheme(themeName),
		keys:          DefaultKeyMap(),
		showOverview:  opts.ShowOverview,
		search:        newSearchInput(),
		debouncer:     debounce.New(opts.Debounce),
		spinner:       sp,
		diag:          newDiagnosticsState(),
	}
	m.cycle.Begin("")
	m.applyThemeToWidgets()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		m.fetchMoviesCmd(m.cycle.Seq(), m.cycle.Query()),
		m.loadTrendingCmd(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.search.Width = max(m.width-searchChrome, 10)
		m.resizeDiagnostics()
		return m, nil

	case debounce.SettledMsg:
		value, ok := m.debouncer.Settle(msg)
		if !ok {
			return m, nil
		}
		return m.applyQuery(value)

	case moviesLoadedMsg:
		return m.handleMoviesLoaded(msg)

	case trendingLoadedMsg:
		if msg.Err != nil {
			m.logger.Warn("trending load failed", "error", msg.Err)
			m.trending = nil
			return m, nil
		}
		m.trending = msg.Entries
		return m, nil

	case searchRecordedMsg:
		if msg.Err != nil {
			m.logger.Warn("record search failed", "query", msg.Query, "error", msg.Err)
		} else {
			m.logger.Debug("search recorded", "query", msg.Query)
		}
		return m, nil

	case diagnosticsMsg:
		m.handleDiagnostics(msg)
		return m, nil

	case spinner.TickMsg:
		// Let the tick chain lapse outside the loading phase; applyQuery restarts it.
		if m.cycle.Phase() != state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Cursor blink and other textinput internals.
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.diag.open {
		return m.renderDiagnostics()
	}
	return m.renderMain()
}

// applyQuery starts a fetch cycle when the debounced value changes the
// effective query.
func (m Model) applyQuery(raw string) (Model, tea.Cmd) {
	query := state.NormalizeQuery(raw)
	if query == m.effective {
		return m, nil
	}
	m.effective = query
	seq := m.cycle.Begin(query)
	m.cursor = 0
	m.logger.Debug("catalog fetch", "query", query, "seq", seq)
	return m, tea.Batch(m.spinner.Tick, m.fetchMoviesCmd(seq, query))
}

func (m Model) handleMoviesLoaded(msg moviesLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.cycle.Resolve(msg.Seq, msg.Movies, msg.Err) {
		m.logger.Debug("stale catalog result dropped", "query", msg.Query, "seq", msg.Seq)
		return m, nil
	}
	m.cursor = 0
	if msg.Err != nil {
		m.logCatalogError(msg.Query, msg.Err)
		return m, nil
	}
	if !m.cycle.ShouldRecord() {
		return m, nil
	}
	movies := m.cycle.Snapshot().Movies
	return m, m.recordSearchCmd(m.cycle.Query(), movies[0])
}

func (m Model) logCatalogError(query string, err error) {
	var transport *catalog.TransportError
	var domain *catalog.DomainError
	switch {
	case errors.As(err, &transport):
		m.logger.Warn("catalog fetch failed", "query", query, "status", transport.StatusCode, "error", err)
	case errors.As(err, &domain):
		m.logger.Warn("catalog rejected query", "query", query, "message", domain.Message)
	default:
		m.logger.Warn("catalog fetch failed", "query", query, "error", err)
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.diag.open {
		return m.handleDiagnosticsKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil
	}

	if m.search.Focused() {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.QuitBlurred):
		return m.quit()
	case key.Matches(msg, m.keys.Focus):
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.UpBlurred):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.DownBlurred):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = max(len(m.cycle.Snapshot().Movies)-1, 0)
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyThemeToWidgets()
		m.savePrefs()
	case key.Matches(msg, m.keys.ToggleOverview):
		m.showOverview = !m.showOverview
		m.savePrefs()
	case key.Matches(msg, m.keys.Diagnostics):
		return m.openDiagnostics()
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	if m.cycle.Phase() != state.Ready {
		return
	}
	count := len(m.cycle.Snapshot().Movies)
	m.cursor = clampInt(m.cursor+delta, 0, count-1)
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, ShowOverview: m.showOverview}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs failed", "path", m.prefsPath, "error", err)
	}
}

// quit cancels any pending debounce before leaving so no fetch outlives the UI.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.debouncer.Stop()
	return m, tea.Quit
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderSearch())
	b.WriteString("\n")

	if trending := m.renderTrending(); trending != "" {
		b.WriteString(trending)
		b.WriteString("\n")
	}

	footer := m.renderFooter()
	used := lineCount(b.String()) + 1
	b.WriteString(m.renderMovies(m.height - used))
	b.WriteString("\n")
	b.WriteString(footer)

	return b.String()
}

func lineCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(strings.TrimSuffix(s, "\n"), "\n") + 1
}

// Messages

type moviesLoadedMsg struct {
	Seq    uint64
	Query  string
	Movies []catalog.Movie
	Err    error
}

type trendingLoadedMsg struct {
	Entries []trends.Entry
	Err     error
}

type searchRecordedMsg struct {
	Query string
	Err   error
}

// Commands

var errNoCatalog = errors.New("no catalog configured")

func (m Model) fetchMoviesCmd(seq uint64, query string) tea.Cmd {
	ctx, client := m.ctx, m.catalog
	return func() tea.Msg {
		if client == nil {
			return moviesLoadedMsg{Seq: seq, Query: query, Err: errNoCatalog}
		}
		movies, err := client.FetchCatalog(ctx, query)
		return moviesLoadedMsg{Seq: seq, Query: query, Movies: movies, Err: err}
	}
}

func (m Model) loadTrendingCmd() tea.Cmd {
	ctx, store, limit := m.ctx, m.trends, m.trendingLimit
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		entries, err := store.Top(ctx, limit)
		return trendingLoadedMsg{Entries: entries, Err: err}
	}
}

func (m Model) recordSearchCmd(query string, movie catalog.Movie) tea.Cmd {
	ctx, store := m.ctx, m.trends
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		return searchRecordedMsg{Query: query, Err: store.RecordSearch(ctx, query, movie)}
	}
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is done.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	m := New(opts)
	defer m.debouncer.Stop()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
