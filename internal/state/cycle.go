package state

import (
	"strings"

	"github.com/five82/marquee/internal/catalog"
)

// Phase is where the current fetch cycle stands.
type Phase int

const (
	Idle Phase = iota
	Loading
	Ready
	Failed
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Cycle tracks the catalog fetch cycle. The zero value is Idle.
type Cycle struct {
	phase   Phase
	seq     uint64
	query   string
	message string
	movies  []catalog.Movie
}

// Snapshot is an immutable copy of a Cycle for rendering.
type Snapshot struct {
	Phase   Phase
	Query   string
	Message string
	Movies  []catalog.Movie
}

// NormalizeQuery trims query; whitespace-only input is the empty query.
func NormalizeQuery(query string) string {
	return strings.TrimSpace(query)
}

// Begin starts a new cycle for query: the phase becomes Loading, any previous
// error is cleared, and the returned sequence number identifies this cycle.
func (c *Cycle) Begin(query string) uint64 {
	c.seq++
	c.phase = Loading
	c.query = NormalizeQuery(query)
	c.message = ""
	return c.seq
}

// Resolve applies the outcome of the cycle identified by seq. Outcomes of a
// superseded cycle are dropped and Resolve reports false.
func (c *Cycle) Resolve(seq uint64, movies []catalog.Movie, err error) bool {
	if seq != c.seq || c.phase != Loading {
		return false
	}
	if err != nil {
		c.phase = Failed
		c.message = catalog.UserMessage(err)
		c.movies = nil
		return true
	}
	c.phase = Ready
	c.message = ""
	c.movies = cloneMovies(movies)
	return true
}

// Seq is the sequence number of the latest cycle.
func (c *Cycle) Seq() uint64 {
	return c.seq
}

// Phase reports the current phase.
func (c *Cycle) Phase() Phase {
	return c.phase
}

// Query is the effective query of the latest cycle.
func (c *Cycle) Query() string {
	return c.query
}

// ShouldRecord reports whether the settled cycle is a non-empty search that
// returned at least one movie.
func (c *Cycle) ShouldRecord() bool {
	return c.phase == Ready && c.query != "" && len(c.movies) > 0
}

// Snapshot returns a copy of the current state.
func (c *Cycle) Snapshot() Snapshot {
	return Snapshot{
		Phase:   c.phase,
		Query:   c.query,
		Message: c.message,
		Movies:  cloneMovies(c.movies),
	}
}

func cloneMovies(movies []catalog.Movie) []catalog.Movie {
	if len(movies) == 0 {
		return nil
	}
	dup := make([]catalog.Movie, len(movies))
	copy(dup, movies)
	return dup
}
