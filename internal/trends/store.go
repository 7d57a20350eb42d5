// Package trends persists how often each query has been searched and serves
// the most-searched queries back as a trending list.
package trends

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/five82/marquee/internal/catalog"
)

// DefaultLimit is the number of trending entries shown when none is configured.
const DefaultLimit = 5

// ErrEmptyQuery is returned when RecordSearch is called without a search term.
var ErrEmptyQuery = errors.New("search term is empty")

// Entry is one aggregate row: a search term and how many times it was searched,
// decorated with the movie that topped its results.
type Entry struct {
	ID         string
	SearchTerm string
	Count      int
	MovieID    int64
	Title      string
	PosterURL  string
	UpdatedAt  time.Time
}

// Store is the trend store contract the UI relies on. Implementations must
// increment an existing entry rather than add a second row for the same term.
type Store interface {
	Top(ctx context.Context, limit int) ([]Entry, error)
	RecordSearch(ctx context.Context, query string, movie catalog.Movie) error
	Close() error
}

var (
	_ Store = (*SQLite)(nil)
	_ Store = (*Memory)(nil)
)

// normalizeTerm is the key both stores match on.
func normalizeTerm(query string) string {
	return strings.TrimSpace(query)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
