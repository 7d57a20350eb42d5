package trends

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/five82/marquee/internal/catalog"
)

// Memory is a process-local trend store. Nothing survives a restart.
// All methods are safe for concurrent use.
type Memory struct {
	mu        sync.RWMutex
	entries   map[string]Entry // keyed by search term
	imageBase string
	now       func() time.Time
}

// NewMemory returns an empty Memory store.
func NewMemory(imageBase string) *Memory {
	return &Memory{
		entries:   make(map[string]Entry),
		imageBase: imageBase,
		now:       time.Now,
	}
}

// RecordSearch counts one more search for query.
func (m *Memory) RecordSearch(_ context.Context, query string, movie catalog.Movie) error {
	term := normalizeTerm(query)
	if term == "" {
		return ErrEmptyQuery
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if e, ok := m.entries[term]; ok {
		e.Count++
		e.UpdatedAt = now
		m.entries[term] = e
		return nil
	}
	m.entries[term] = Entry{
		ID:         uuid.NewString(),
		SearchTerm: term,
		Count:      1,
		MovieID:    movie.ID,
		Title:      movie.Title,
		PosterURL:  movie.PosterURL(m.imageBase),
		UpdatedAt:  now,
	}
	return nil
}

// Top returns up to limit entries, most searched first.
func (m *Memory) Top(_ context.Context, limit int) ([]Entry, error) {
	m.mu.RLock()
	entries := make([]Entry, 0, len(m.entries))
	for _, e := range m.entries {
		entries = append(entries, e)
	}
	m.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
		return a.SearchTerm < b.SearchTerm
	})

	if limit = clampLimit(limit); len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}
