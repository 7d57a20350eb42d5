package ui

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/marquee/internal/catalog"
	"github.com/five82/marquee/internal/debounce"
	"github.com/five82/marquee/internal/prefs"
	"github.com/five82/marquee/internal/state"
	"github.com/five82/marquee/internal/trends"
)

type fakeCatalog struct {
	mu      sync.Mutex
	queries []string
	results map[string][]catalog.Movie
	errs    map[string]error
}

func (f *fakeCatalog) FetchCatalog(_ context.Context, query string) ([]catalog.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	if err := f.errs[query]; err != nil {
		return nil, err
	}
	return f.results[query], nil
}

func (f *fakeCatalog) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

type failingStore struct{}

func (failingStore) Top(context.Context, int) ([]trends.Entry, error) {
	return nil, errors.New("store offline")
}

func (failingStore) RecordSearch(context.Context, string, catalog.Movie) error {
	return errors.New("store offline")
}

func (failingStore) Close() error { return nil }

var (
	dune  = catalog.Movie{ID: 438631, Title: "Dune", VoteAverage: 7.8, OriginalLanguage: "en", ReleaseDate: "2021-09-15"}
	heat  = catalog.Movie{ID: 949, Title: "Heat", VoteAverage: 7.9, OriginalLanguage: "en", ReleaseDate: "1995-12-15"}
	ronin = catalog.Movie{ID: 8195, Title: "Ronin", OriginalLanguage: "en"}
)

func newFake() *fakeCatalog {
	return &fakeCatalog{
		results: map[string][]catalog.Movie{
			"":     {heat, ronin},
			"dune": {dune},
		},
		errs: map[string]error{},
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	um, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return um, cmd
}

func typeText(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func pressKey(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	switch k {
	case "esc":
		return update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	case "ctrl+c":
		return update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	case "down":
		return update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	case "up":
		return update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	default:
		return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	}
}

// settle delivers the debounce message for the latest bump.
func settle(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	return update(t, m, debounce.SettledMsg{Tag: m.debouncer.Tag()})
}

// fetch runs the catalog command for the current cycle and feeds its result back.
func fetch(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	msg := m.fetchMoviesCmd(m.cycle.Seq(), m.cycle.Query())()
	return update(t, m, msg)
}

func newModel(t *testing.T, f catalog.Fetcher, store trends.Store) Model {
	t.Helper()
	m := New(Options{Catalog: f, Trends: store, ThemeName: "Nightfox"})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

// mounted returns a model whose mount cycle has resolved.
func mounted(t *testing.T, f catalog.Fetcher, store trends.Store) Model {
	t.Helper()
	m := newModel(t, f, store)
	m, cmd := fetch(t, m)
	if cmd != nil {
		t.Fatalf("mount cycle returned a command, want none")
	}
	return m
}

func TestNew_MountFetchesDiscoverFeed(t *testing.T) {
	f := newFake()
	m := newModel(t, f, trends.NewMemory(""))

	if m.cycle.Phase() != state.Loading {
		t.Fatalf("phase = %v, want loading", m.cycle.Phase())
	}
	if !strings.Contains(m.View(), loadingLabel) {
		t.Fatalf("View() missing loading indicator:\n%s", m.View())
	}

	m, _ = fetch(t, m)
	if got := f.calls(); len(got) != 1 || got[0] != "" {
		t.Fatalf("catalog calls = %q, want one discover call", got)
	}
	snap := m.cycle.Snapshot()
	if snap.Phase != state.Ready || len(snap.Movies) != 2 {
		t.Fatalf("snapshot = %+v, want ready with 2 movies", snap)
	}
	view := m.View()
	if strings.Contains(view, loadingLabel) {
		t.Fatalf("View() still shows loading after results:\n%s", view)
	}
	for _, want := range []string{"All Movies", "Heat", "★ 7.9", "1995", "Ronin", "N/A"} {
		if !strings.Contains(view, want) {
			t.Fatalf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestSearch_DebouncedFetchRecordsOnce(t *testing.T) {
	f := newFake()
	store := trends.NewMemory("")
	m := mounted(t, f, store)

	m, cmd := typeText(t, m, "dune")
	if cmd == nil || !m.debouncer.Pending() {
		t.Fatal("typing should schedule a debounced propagation")
	}
	if m.effective != "" {
		t.Fatalf("effective = %q before settle, want empty", m.effective)
	}

	m, cmd = settle(t, m)
	if cmd == nil {
		t.Fatal("settle on a new query should start a fetch")
	}
	if m.effective != "dune" || m.cycle.Phase() != state.Loading {
		t.Fatalf("effective = %q phase = %v, want dune loading", m.effective, m.cycle.Phase())
	}

	msg := m.fetchMoviesCmd(m.cycle.Seq(), m.cycle.Query())()
	m, cmd = update(t, m, msg)
	if cmd == nil {
		t.Fatal("resolved search with results should record the search")
	}
	recorded, ok := cmd().(searchRecordedMsg)
	if !ok || recorded.Err != nil || recorded.Query != "dune" {
		t.Fatalf("record command returned %#v, want success for dune", recorded)
	}
	m, _ = update(t, m, recorded)

	// Redelivering the same outcome must not record twice.
	if _, cmd := update(t, m, msg); cmd != nil {
		t.Fatal("duplicate completion should be ignored")
	}

	entries, err := store.Top(context.Background(), 5)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(entries) != 1 || entries[0].Count != 1 || entries[0].MovieID != dune.ID {
		t.Fatalf("entries = %+v, want one dune entry with count 1", entries)
	}
	if got := f.calls(); len(got) != 2 || got[1] != "dune" {
		t.Fatalf("catalog calls = %q, want discover then dune", got)
	}
}

func TestSearch_ZeroResultsNotRecorded(t *testing.T) {
	f := newFake()
	store := trends.NewMemory("")
	m := mounted(t, f, store)

	m, _ = typeText(t, m, "zzzz")
	m, _ = settle(t, m)
	m, cmd := fetch(t, m)
	if cmd != nil {
		t.Fatal("zero results should not record a search")
	}
	if !strings.Contains(m.View(), emptyLabel) {
		t.Fatalf("View() missing empty label:\n%s", m.View())
	}
	if entries, _ := store.Top(context.Background(), 5); len(entries) != 0 {
		t.Fatalf("entries = %+v, want none", entries)
	}
}

func TestSearch_OnlyLastValueInBurstPropagates(t *testing.T) {
	f := newFake()
	m := mounted(t, f, trends.NewMemory(""))

	m, _ = typeText(t, m, "d")
	first := m.debouncer.Tag()
	m, _ = typeText(t, m, "une")

	m, cmd := update(t, m, debounce.SettledMsg{Tag: first})
	if cmd != nil || m.effective != "" {
		t.Fatalf("superseded settle changed effective query to %q", m.effective)
	}

	m, _ = settle(t, m)
	if m.effective != "dune" {
		t.Fatalf("effective = %q, want dune", m.effective)
	}
}

func TestSearch_WhitespaceIsEmptyQuery(t *testing.T) {
	f := newFake()
	m := mounted(t, f, trends.NewMemory(""))
	seq := m.cycle.Seq()

	m, _ = typeText(t, m, "   ")
	m, cmd := settle(t, m)
	if cmd != nil || m.cycle.Seq() != seq {
		t.Fatal("whitespace-only query should not start a new cycle")
	}
}

func TestSearch_ClearingQueryReturnsToDiscover(t *testing.T) {
	f := newFake()
	m := mounted(t, f, trends.NewMemory(""))

	m, _ = typeText(t, m, "dune")
	m, _ = settle(t, m)
	m, _ = fetch(t, m)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = settle(t, m)
	if m.cycle.Query() != "" || m.cycle.Phase() != state.Loading {
		t.Fatalf("query = %q phase = %v, want discover reload", m.cycle.Query(), m.cycle.Phase())
	}
	m, cmd := fetch(t, m)
	if cmd != nil {
		t.Fatal("discover results should never be recorded")
	}
	if got := f.calls(); got[len(got)-1] != "" {
		t.Fatalf("last catalog call = %q, want discover", got[len(got)-1])
	}
}

func TestMoviesLoaded_StaleCompletionDropped(t *testing.T) {
	f := newFake()
	m := mounted(t, f, trends.NewMemory(""))

	m, _ = typeText(t, m, "heat")
	m, _ = settle(t, m)
	staleSeq := m.cycle.Seq()

	m, _ = typeText(t, m, "x")
	m, _ = settle(t, m)
	currentSeq := m.cycle.Seq()

	m, cmd := update(t, m, moviesLoadedMsg{Seq: staleSeq, Query: "heat", Movies: []catalog.Movie{heat}})
	if cmd != nil || m.cycle.Phase() != state.Loading {
		t.Fatalf("stale completion applied: phase = %v", m.cycle.Phase())
	}

	m, _ = update(t, m, moviesLoadedMsg{Seq: currentSeq, Query: "heatx", Movies: []catalog.Movie{ronin}})
	snap := m.cycle.Snapshot()
	if snap.Phase != state.Ready || len(snap.Movies) != 1 || snap.Movies[0].Title != "Ronin" {
		t.Fatalf("snapshot = %+v, want ready with Ronin", snap)
	}
}

func TestMoviesLoaded_ErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "transport",
			err:  &catalog.TransportError{Endpoint: "search/movie", StatusCode: http.StatusInternalServerError},
			want: catalog.GenericFailureMessage,
		},
		{
			name: "domain",
			err:  &catalog.DomainError{Message: "Invalid API key"},
			want: "Invalid API key",
		},
		{
			name: "network",
			err:  &catalog.TransportError{Endpoint: "search/movie", Err: errors.New("connection refused")},
			want: catalog.GenericFailureMessage,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFake()
			f.errs["dune"] = tt.err
			store := trends.NewMemory("")
			m := mounted(t, f, store)

			m, _ = typeText(t, m, "dune")
			m, _ = settle(t, m)
			m, cmd := fetch(t, m)
			if cmd != nil {
				t.Fatal("failed fetch should not record a search")
			}
			snap := m.cycle.Snapshot()
			if snap.Phase != state.Failed || snap.Message != tt.want || len(snap.Movies) != 0 {
				t.Fatalf("snapshot = %+v, want failed with %q", snap, tt.want)
			}
			view := m.View()
			if !strings.Contains(view, tt.want) {
				t.Fatalf("View() missing %q:\n%s", tt.want, view)
			}
			if strings.Contains(view, loadingLabel) {
				t.Fatalf("View() shows loading alongside error:\n%s", view)
			}
		})
	}
}

func TestTrending_RenderedWithRanks(t *testing.T) {
	store := trends.NewMemory("")
	ctx := context.Background()
	_ = store.RecordSearch(ctx, "dune", dune)
	_ = store.RecordSearch(ctx, "dune", dune)
	_ = store.RecordSearch(ctx, "heat", heat)

	m := mounted(t, newFake(), store)
	if strings.Contains(m.View(), "Trending Movies") {
		t.Fatal("trending section should be hidden before it loads")
	}

	m, _ = update(t, m, m.loadTrendingCmd()())
	view := m.View()
	for _, want := range []string{"Trending Movies", " 1  Dune", " 2  Heat", "×2"} {
		if !strings.Contains(view, want) {
			t.Fatalf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestTrending_FailureHiddenAndRecordFailureSwallowed(t *testing.T) {
	m := mounted(t, newFake(), failingStore{})

	m, cmd := update(t, m, m.loadTrendingCmd()())
	if cmd != nil || len(m.trending) != 0 {
		t.Fatalf("trending = %+v, want empty after failure", m.trending)
	}
	if strings.Contains(m.View(), "Trending Movies") {
		t.Fatal("trending section should be hidden after a failed load")
	}

	m, _ = typeText(t, m, "dune")
	m, _ = settle(t, m)
	m, cmd = fetch(t, m)
	if cmd == nil {
		t.Fatal("expected record command")
	}
	m, _ = update(t, m, cmd())
	snap := m.cycle.Snapshot()
	if snap.Phase != state.Ready || len(snap.Movies) != 1 {
		t.Fatalf("record failure affected results: %+v", snap)
	}
	if strings.Contains(m.View(), "store offline") {
		t.Fatal("store failure leaked into the view")
	}
}

func TestKeys_BlurredNavigation(t *testing.T) {
	m := mounted(t, newFake(), trends.NewMemory(""))

	// While focused, letters go to the query.
	m, _ = typeText(t, m, "j")
	if m.search.Value() != "j" || m.cursor != 0 {
		t.Fatalf("value = %q cursor = %d, want typed j", m.search.Value(), m.cursor)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})

	m, _ = pressKey(t, m, "esc")
	if m.search.Focused() {
		t.Fatal("esc should blur the search box")
	}
	m, _ = pressKey(t, m, "j")
	if m.cursor != 1 {
		t.Fatalf("cursor = %d after j, want 1", m.cursor)
	}
	m, _ = pressKey(t, m, "j")
	if m.cursor != 1 {
		t.Fatalf("cursor = %d past the end, want 1", m.cursor)
	}
	m, _ = pressKey(t, m, "k")
	m, _ = pressKey(t, m, "up")
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", m.cursor)
	}
	m, _ = pressKey(t, m, "G")
	if m.cursor != 1 {
		t.Fatalf("cursor = %d after G, want 1", m.cursor)
	}

	m, _ = pressKey(t, m, "/")
	if !m.search.Focused() {
		t.Fatal("/ should focus the search box")
	}
	m, _ = pressKey(t, m, "down")
	if m.cursor != 1 {
		t.Fatalf("down while focused: cursor = %d, want 1", m.cursor)
	}
}

func TestKeys_ThemeAndOverviewPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	m := New(Options{Catalog: newFake(), ThemeName: "Nightfox", PrefsPath: path})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m, _ = fetch(t, m)
	m, _ = pressKey(t, m, "esc")

	m, _ = pressKey(t, m, "T")
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	m, _ = pressKey(t, m, "o")
	if !m.showOverview {
		t.Fatal("o should enable overviews")
	}
	if !strings.Contains(m.View(), "No overview available.") {
		t.Fatalf("View() missing overview line:\n%s", m.View())
	}

	p := prefs.Load(path)
	if p.Theme != "Kanagawa" || !p.ShowOverview {
		t.Fatalf("saved prefs = %+v, want Kanagawa with overview", p)
	}
}

func TestKeys_HelpOverlay(t *testing.T) {
	m := mounted(t, newFake(), trends.NewMemory(""))

	m, _ = pressKey(t, m, "?")
	if m.showHelp {
		t.Fatal("? while focused should be typed, not open help")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = pressKey(t, m, "esc")
	m, _ = pressKey(t, m, "?")
	if !m.showHelp || !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatal("? should open help")
	}
	m, _ = pressKey(t, m, "x")
	if m.showHelp {
		t.Fatal("any key should close help")
	}
}

func TestKeys_QuitStopsDebouncer(t *testing.T) {
	m := mounted(t, newFake(), trends.NewMemory(""))
	m, _ = typeText(t, m, "du")

	m, cmd := pressKey(t, m, "ctrl+c")
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("ctrl+c should return tea.Quit")
	}
	if !m.debouncer.Stopped() {
		t.Fatal("quit should stop the debouncer")
	}
	if _, cmd := settle(t, m); cmd != nil {
		t.Fatal("settle after quit should not fetch")
	}
}

func TestDiagnostics_ShowsLogTail(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "marquee.log")
	content := strings.Join([]string{
		"2025-01-01T00:00:00Z INFO catalog fetch query=dune",
		"2025-01-01T00:00:01Z WARN trending load failed error=\"store offline\"",
	}, "\n") + "\n"
	if err := os.WriteFile(logPath, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m := New(Options{Catalog: newFake(), LogPath: logPath})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	m, _ = pressKey(t, m, "esc")

	m, cmd := pressKey(t, m, "L")
	if !m.diag.open || cmd == nil {
		t.Fatal("L should open diagnostics and load the log")
	}
	m, _ = update(t, m, cmd())
	view := m.View()
	if !strings.Contains(view, "catalog fetch") || !strings.Contains(view, "trending load failed") {
		t.Fatalf("View() missing log lines:\n%s", view)
	}

	m, cmd = pressKey(t, m, "p")
	m, _ = update(t, m, cmd())
	if len(m.diag.lines) != 1 || !strings.Contains(m.diag.lines[0], "WARN") {
		t.Fatalf("problem lines = %q, want the warning only", m.diag.lines)
	}

	m, _ = pressKey(t, m, "esc")
	if m.diag.open {
		t.Fatal("esc should close diagnostics")
	}
}
